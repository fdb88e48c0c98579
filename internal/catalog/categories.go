package catalog

// Category identifies one of the fixed place categories.
type Category string

const (
	Landmark   Category = "landmark"
	Temple     Category = "temple"
	Beach      Category = "beach"
	Restaurant Category = "restaurant"
	Market     Category = "market"
	Museum     Category = "museum"
	Nature     Category = "nature"
	Cafe       Category = "cafe"
	Nightlife  Category = "nightlife"
)

type CategoryConfig struct {
	ID        Category `json:"id"`
	Label     string   `json:"label"`
	Icon      string   `json:"icon"`
	Color     string   `json:"color"`
	HasDishes bool     `json:"has_dishes"`
}

var categories = []CategoryConfig{
	{ID: Landmark, Label: "Landmark", Icon: "Landmark", Color: "#F97316"},
	{ID: Temple, Label: "Temple", Icon: "Church", Color: "#C62828"},
	{ID: Beach, Label: "Beach", Icon: "Umbrella", Color: "#06B6D4"},
	{ID: Restaurant, Label: "Restaurant", Icon: "UtensilsCrossed", Color: "#22C55E", HasDishes: true},
	{ID: Market, Label: "Market", Icon: "ShoppingBag", Color: "#A855F7"},
	{ID: Museum, Label: "Museum", Icon: "Palette", Color: "#92400E"},
	{ID: Nature, Label: "Nature", Icon: "Leaf", Color: "#34D399"},
	{ID: Cafe, Label: "Café", Icon: "Coffee", Color: "#6366F1", HasDishes: true},
	{ID: Nightlife, Label: "Nightlife", Icon: "Moon", Color: "#EC4899"},
}

// Categories returns the categories in display order.
func Categories() []CategoryConfig {
	out := make([]CategoryConfig, len(categories))
	copy(out, categories)
	return out
}

// IsCategory reports whether id names one of the fixed categories.
func IsCategory(id string) bool {
	for _, c := range categories {
		if string(c.ID) == id {
			return true
		}
	}
	return false
}

// CategoryFor returns the config for id, falling back to landmark for
// unknown or empty values.
func CategoryFor(id string) CategoryConfig {
	for _, c := range categories {
		if string(c.ID) == id {
			return c
		}
	}
	return categories[0]
}
