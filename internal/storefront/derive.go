package storefront

import "strings"

// FoodView is a menu item ready for display.
type FoodView struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Cuisine     string
	Category    string
	Restaurant  string
	Image       string
	Emoji       string
}

// Filters are the client-side narrowing inputs.
type Filters struct {
	Search  string
	Cuisine string
}

// Derive returns the items that pass both filters, in their original order.
// Cuisine must match exactly, ignoring case. The search text must appear in
// the name, description or category, ignoring case. Whitespace in the search
// text is part of it. An empty filter matches everything. items is never
// modified.
func Derive(items []FoodView, f Filters) []FoodView {
	cuisine := strings.ToLower(f.Cuisine)
	term := strings.ToLower(f.Search)

	out := make([]FoodView, 0, len(items))
	for _, item := range items {
		if cuisine != "" && strings.ToLower(item.Cuisine) != cuisine {
			continue
		}
		if term != "" && !matchesTerm(item, term) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesTerm(item FoodView, term string) bool {
	return strings.Contains(strings.ToLower(item.Name), term) ||
		strings.Contains(strings.ToLower(item.Description), term) ||
		strings.Contains(strings.ToLower(item.Category), term)
}

// ExactMatch returns the id of the first item whose name equals name,
// ignoring case.
func ExactMatch(items []FoodView, name string) (string, bool) {
	if name == "" {
		return "", false
	}
	for _, item := range items {
		if strings.EqualFold(item.Name, name) {
			return item.ID, true
		}
	}
	return "", false
}
