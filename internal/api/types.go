package api

import (
	"encoding/json"
	"strings"
)

// Food mirrors one element of GET /api/foods.
type Food struct {
	MongoID     string        `json:"_id"`
	PlainID     string        `json:"id,omitempty"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Price       float64       `json:"price"`
	Cuisine     string        `json:"cuisine"`
	Category    string        `json:"category"`
	Image       string        `json:"image"`
	Restaurant  RestaurantRef `json:"restaurant"`
}

// ID returns the backend identifier, accepting either _id or id.
func (f Food) ID() string {
	if f.MongoID != "" {
		return f.MongoID
	}
	return f.PlainID
}

// RestaurantRef accepts either a plain name or a populated restaurant object.
type RestaurantRef struct {
	ID   string
	Name string
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *RestaurantRef) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*r = RestaurantRef{}
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*r = RestaurantRef{Name: name}
		return nil
	}
	var obj struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*r = RestaurantRef{ID: obj.ID, Name: obj.Name}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (r RestaurantRef) MarshalJSON() ([]byte, error) {
	if r.ID == "" {
		return json.Marshal(r.Name)
	}
	return json.Marshal(struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
	}{r.ID, r.Name})
}

// Restaurant mirrors one element of GET /api/restaurants.
type Restaurant struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Cuisine  string  `json:"cuisine"`
	Rating   float64 `json:"rating"`
}

// Profile mirrors GET /api/users/profile.
type Profile struct {
	ID        string `json:"_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	CreatedAt string `json:"createdAt"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Order mirrors one element of GET /api/orders/my-orders.
type Order struct {
	ID          string      `json:"_id"`
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"totalAmount"`
	Status      string      `json:"status"`
	CreatedAt   string      `json:"createdAt"`
}

// FoodQuery filters GET /api/foods. Empty fields are omitted from the URL.
type FoodQuery struct {
	Cuisine string
	Search  string
}
