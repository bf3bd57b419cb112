package storefront

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/five82/foodbites/internal/api"
	"github.com/five82/foodbites/internal/assets"
)

func sampleItems() []FoodView {
	return []FoodView{
		{ID: "1", Name: "Pizza", Description: "Wood fired", Cuisine: "Italian", Category: "Main"},
		{ID: "2", Name: "Fish Tacos", Description: "Baja style", Cuisine: "Mexican", Category: "Street"},
		{ID: "3", Name: "Tiramisu", Description: "Coffee soaked", Cuisine: "italian", Category: "Dessert"},
		{ID: "4", Name: "Churros", Description: "With chocolate pizzazz", Cuisine: "Mexican", Category: "dessert"},
		{ID: "5", Name: "Plain rice", Cuisine: ""},
	}
}

func ids(items []FoodView) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestDerive(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
		want    []string
	}{
		{name: "no filters passthrough", filters: Filters{}, want: []string{"1", "2", "3", "4", "5"}},
		{name: "cuisine ignores case", filters: Filters{Cuisine: "ITALIAN"}, want: []string{"1", "3"}},
		{name: "cuisine is equality not substring", filters: Filters{Cuisine: "ital"}, want: []string{}},
		{name: "term over name", filters: Filters{Search: "piz"}, want: []string{"1", "4"}},
		{name: "term over category", filters: Filters{Search: "DESSERT"}, want: []string{"3", "4"}},
		{name: "term over description", filters: Filters{Search: "baja"}, want: []string{"2"}},
		{name: "intersection", filters: Filters{Search: "dessert", Cuisine: "mexican"}, want: []string{"4"}},
		{name: "trailing space is literal", filters: Filters{Search: "tacos "}, want: []string{}},
		{name: "leading space is literal", filters: Filters{Search: " rice"}, want: []string{"5"}},
		{name: "whitespace term is not blank", filters: Filters{Search: "   "}, want: []string{}},
		{name: "no match", filters: Filters{Search: "taco", Cuisine: "Italian"}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Derive(sampleItems(), tt.filters)))
		})
	}
}

func TestDerive_MatchesPredicateIntersection(t *testing.T) {
	items := sampleItems()
	for _, cuisine := range []string{"", "italian", "Mexican", "thai"} {
		for _, term := range []string{"", "a", "PIZ", "dessert", "x"} {
			got := Derive(items, Filters{Search: term, Cuisine: cuisine})

			var want []FoodView
			for _, it := range items {
				cuisineOK := cuisine == "" || strings.EqualFold(it.Cuisine, cuisine)
				lt := strings.ToLower(term)
				termOK := term == "" ||
					strings.Contains(strings.ToLower(it.Name), lt) ||
					strings.Contains(strings.ToLower(it.Description), lt) ||
					strings.Contains(strings.ToLower(it.Category), lt)
				if cuisineOK && termOK {
					want = append(want, it)
				}
			}
			assert.Equal(t, ids(want), ids(got), "cuisine=%q term=%q", cuisine, term)
		}
	}
}

func TestDerive_DoesNotMutateInput(t *testing.T) {
	items := sampleItems()
	before := append([]FoodView(nil), items...)
	out := Derive(items, Filters{Search: "taco"})
	if len(out) > 0 {
		out[0].Name = "changed"
	}
	assert.Equal(t, before, items)
}

func TestExactMatch(t *testing.T) {
	id, ok := ExactMatch(sampleItems(), "fish TACOS")
	assert.True(t, ok)
	assert.Equal(t, "2", id)

	_, ok = ExactMatch(sampleItems(), "fish")
	assert.False(t, ok)

	_, ok = ExactMatch(sampleItems(), "")
	assert.False(t, ok)

	_, ok = ExactMatch(sampleItems(), "pizza ")
	assert.False(t, ok)
}

func TestProject(t *testing.T) {
	raw := []api.Food{
		{MongoID: "1", Name: "Pizza", Price: 10, Cuisine: "Italian", Image: "/uploads/p.png", Restaurant: api.RestaurantRef{Name: "Luigi's"}},
		{PlainID: "2", Name: "Mystery", Cuisine: "Fusion"},
	}
	catalog := assets.Default()
	views := Project(raw, &fakeMenuSource{}, catalog)

	assert.Equal(t, "1", views[0].ID)
	assert.Equal(t, "http://api.test/uploads/p.png", views[0].Image)
	assert.Equal(t, "🍕", views[0].Emoji)
	assert.Equal(t, "Luigi's", views[0].Restaurant)

	assert.Equal(t, "2", views[1].ID)
	assert.Equal(t, catalog.Fallback().Image, views[1].Image)
	assert.Equal(t, catalog.Fallback().Emoji, views[1].Emoji)
}
