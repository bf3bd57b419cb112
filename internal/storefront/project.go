package storefront

import (
	"github.com/five82/foodbites/internal/api"
	"github.com/five82/foodbites/internal/assets"
)

// ImageResolver resolves backend image paths to absolute URLs.
type ImageResolver interface {
	ImageURL(path string) string
}

// Project maps raw menu items into view items. A missing image falls back to
// the catalog's default for the item.
func Project(raw []api.Food, images ImageResolver, catalog *assets.Catalog) []FoodView {
	out := make([]FoodView, 0, len(raw))
	for _, f := range raw {
		asset := catalog.Lookup(f.Name, f.Cuisine, f.Category)
		image := ""
		if f.Image != "" && images != nil {
			image = images.ImageURL(f.Image)
		}
		if image == "" {
			image = asset.Image
		}
		out = append(out, FoodView{
			ID:          f.ID(),
			Name:        f.Name,
			Description: f.Description,
			Price:       f.Price,
			Cuisine:     f.Cuisine,
			Category:    f.Category,
			Restaurant:  f.Restaurant.Name,
			Image:       image,
			Emoji:       asset.Emoji,
		})
	}
	return out
}
