package devapi

import "github.com/five82/foodbites/internal/api"

func seed() ([]api.Food, []api.Restaurant, map[string]user) {
	restaurants := []api.Restaurant{
		{ID: "r1", Name: "Luigi's Trattoria", Location: "Downtown", Cuisine: "Italian", Rating: 4.6},
		{ID: "r2", Name: "El Fogón", Location: "Mission", Cuisine: "Mexican", Rating: 4.4},
		{ID: "r3", Name: "Sakura House", Location: "Uptown", Cuisine: "Japanese", Rating: 4.8},
		{ID: "r4", Name: "Spice Route", Location: "Riverside", Cuisine: "Indian", Rating: 4.5},
		{ID: "r5", Name: "Patty Shack", Location: "Downtown", Cuisine: "American", Rating: 4.1},
	}
	ref := func(i int) api.RestaurantRef {
		return api.RestaurantRef{ID: restaurants[i].ID, Name: restaurants[i].Name}
	}
	foods := []api.Food{
		{MongoID: "f01", Name: "Margherita Pizza", Description: "Tomato, mozzarella and basil", Price: 12.5, Cuisine: "Italian", Category: "Pizza", Image: "/images/margherita.jpg", Restaurant: ref(0)},
		{MongoID: "f02", Name: "Pepperoni Pizza", Description: "Spicy pepperoni and mozzarella", Price: 14, Cuisine: "Italian", Category: "Pizza", Restaurant: ref(0)},
		{MongoID: "f03", Name: "Spaghetti Carbonara", Description: "Egg, pecorino and guanciale", Price: 13.5, Cuisine: "Italian", Category: "Pasta", Restaurant: ref(0)},
		{MongoID: "f04", Name: "Tiramisu", Description: "Coffee-soaked ladyfingers", Price: 6.5, Cuisine: "Italian", Category: "Dessert", Restaurant: ref(0)},
		{MongoID: "f05", Name: "Chicken Tacos", Description: "Three corn tortillas with salsa verde", Price: 9, Cuisine: "Mexican", Category: "Tacos", Restaurant: ref(1)},
		{MongoID: "f06", Name: "Beef Burrito", Description: "Rice, beans and slow-cooked beef", Price: 11, Cuisine: "Mexican", Category: "Burritos", Restaurant: ref(1)},
		{MongoID: "f07", Name: "Nachos Supreme", Description: "Cheese, jalapeños and guacamole", Price: 8.5, Cuisine: "Mexican", Category: "Snacks", Restaurant: ref(1)},
		{MongoID: "f08", Name: "Salmon Sushi Set", Description: "Twelve pieces of salmon nigiri and maki", Price: 18, Cuisine: "Japanese", Category: "Sushi", Restaurant: ref(2)},
		{MongoID: "f09", Name: "Tonkotsu Ramen", Description: "Pork broth, chashu and soft egg", Price: 15, Cuisine: "Japanese", Category: "Noodles", Restaurant: ref(2)},
		{MongoID: "f10", Name: "Chicken Tikka Masala", Description: "Creamy tomato curry", Price: 14.5, Cuisine: "Indian", Category: "Curry", Restaurant: ref(3)},
		{MongoID: "f11", Name: "Vegetable Biryani", Description: "Fragrant rice with seasonal vegetables", Price: 12, Cuisine: "Indian", Category: "Rice", Restaurant: ref(3)},
		{MongoID: "f12", Name: "Classic Cheeseburger", Description: "Beef patty, cheddar and pickles", Price: 10.5, Cuisine: "American", Category: "Burgers", Restaurant: ref(4)},
		{MongoID: "f13", Name: "Caesar Salad", Description: "Romaine, parmesan and croutons", Price: 9.5, Cuisine: "American", Category: "Salad", Restaurant: api.RestaurantRef{Name: "Patty Shack"}},
	}
	users := map[string]user{
		"ana": {
			profile: api.Profile{
				ID:        "u1",
				Username:  "ana",
				Email:     "ana@example.com",
				Phone:     "555-0100",
				Address:   "12 Market St",
				CreatedAt: "2025-03-02T09:15:00Z",
			},
			orders: []api.Order{
				{
					ID:          "o1001",
					Items:       []api.OrderItem{{Name: "Margherita Pizza", Quantity: 2, Price: 12.5}},
					TotalAmount: 25,
					Status:      "delivered",
					CreatedAt:   "2026-09-28T19:02:00Z",
				},
				{
					ID: "o1002",
					Items: []api.OrderItem{
						{Name: "Chicken Tacos", Quantity: 1, Price: 9},
						{Name: "Nachos Supreme", Quantity: 1, Price: 8.5},
					},
					TotalAmount: 17.5,
					Status:      "out_for_delivery",
					CreatedAt:   "2026-10-18T12:40:00Z",
				},
			},
		},
		"ben": {
			profile: api.Profile{
				ID:        "u2",
				Username:  "ben",
				Email:     "ben@example.com",
				CreatedAt: "2026-01-20T17:00:00Z",
			},
		},
	}
	return foods, restaurants, users
}
