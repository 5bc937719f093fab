// Package brands holds the built-in catalog of well-known gift-card brands
// used for suggestions and card colors.
package brands

import "strings"

type Category string

const (
	CategoryRetail        Category = "retail"
	CategoryTech          Category = "tech"
	CategoryFood          Category = "food"
	CategoryEntertainment Category = "entertainment"
	CategoryTransport     Category = "transport"
	CategoryFinance       Category = "finance"
	CategoryHome          Category = "home"
)

// Gradient is a pair of hex colors, start to end.
type Gradient [2]string

var DefaultGradient = Gradient{"#6366F1", "#8B5CF6"}

type Brand struct {
	Name     string
	Gradient Gradient
	Category Category
}

var catalog = []Brand{
	{Name: "Amazon", Gradient: Gradient{"#FF9900", "#FF7700"}, Category: CategoryRetail},
	{Name: "Target", Gradient: Gradient{"#CC0000", "#990000"}, Category: CategoryRetail},
	{Name: "Walmart", Gradient: Gradient{"#004C91", "#0071CE"}, Category: CategoryRetail},
	{Name: "Best Buy", Gradient: Gradient{"#0046BE", "#003399"}, Category: CategoryRetail},
	{Name: "Costco", Gradient: Gradient{"#E31837", "#C41429"}, Category: CategoryRetail},

	{Name: "Apple", Gradient: Gradient{"#000000", "#333333"}, Category: CategoryTech},
	{Name: "Steam", Gradient: Gradient{"#1B2838", "#171A21"}, Category: CategoryTech},
	{Name: "Xbox", Gradient: Gradient{"#107C10", "#0E6B0E"}, Category: CategoryTech},

	{Name: "Starbucks", Gradient: Gradient{"#00704A", "#003D21"}, Category: CategoryFood},
	{Name: "McDonald's", Gradient: Gradient{"#FFC72C", "#DA020E"}, Category: CategoryFood},
	{Name: "Subway", Gradient: Gradient{"#00543C", "#004225"}, Category: CategoryFood},

	{Name: "Uber", Gradient: Gradient{"#000000", "#333333"}, Category: CategoryTransport},
	{Name: "Lyft", Gradient: Gradient{"#FF00BF", "#E619AC"}, Category: CategoryTransport},
	{Name: "DoorDash", Gradient: Gradient{"#FF3008", "#E02B00"}, Category: CategoryTransport},

	{Name: "Home Depot", Gradient: Gradient{"#F96302", "#D85100"}, Category: CategoryHome},
	{Name: "Lowe's", Gradient: Gradient{"#004990", "#003C7A"}, Category: CategoryHome},
}

var popularOrder = []string{"Amazon", "Apple", "Starbucks", "Target", "Walmart", "Best Buy", "Steam", "Xbox"}

// All returns a copy of the catalog in declaration order.
func All() []Brand {
	out := make([]Brand, len(catalog))
	copy(out, catalog)
	return out
}

func Names() []string {
	out := make([]string, len(catalog))
	for i, b := range catalog {
		out[i] = b.Name
	}
	return out
}

// Lookup finds a brand by exact name, ignoring case.
func Lookup(name string) (Brand, bool) {
	name = strings.TrimSpace(name)
	for _, b := range catalog {
		if strings.EqualFold(b.Name, name) {
			return b, true
		}
	}
	return Brand{}, false
}

// GradientFor returns the colors of the first catalog brand whose name
// contains brand, case-insensitively. Unknown or blank brands get
// DefaultGradient.
func GradientFor(brand string) Gradient {
	q := strings.ToLower(strings.TrimSpace(brand))
	if q == "" {
		return DefaultGradient
	}
	for _, b := range catalog {
		if strings.Contains(strings.ToLower(b.Name), q) {
			return b.Gradient
		}
	}
	return DefaultGradient
}

// Search returns catalog brands whose name contains query. A blank query
// returns the whole catalog.
func Search(query string) []Brand {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return All()
	}
	var out []Brand
	for _, b := range catalog {
		if strings.Contains(strings.ToLower(b.Name), q) {
			out = append(out, b)
		}
	}
	return out
}

// Popular lists brand names with the popular ones first, then the rest in
// catalog order. limit <= 0 means no limit.
func Popular(limit int) []string {
	known := make(map[string]bool, len(catalog))
	for _, b := range catalog {
		known[b.Name] = true
	}

	out := make([]string, 0, len(catalog))
	inPopular := make(map[string]bool, len(popularOrder))
	for _, name := range popularOrder {
		inPopular[name] = true
		if known[name] {
			out = append(out, name)
		}
	}
	for _, b := range catalog {
		if !inPopular[b.Name] {
			out = append(out, b.Name)
		}
	}

	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}
