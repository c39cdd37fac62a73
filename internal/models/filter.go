package models

// Sentinel filter values meaning "no restriction". These mirror the catalog
// view's default selections.
const (
	AllCategories = "Все"
	AllCities     = "Все города"

	// DefaultMaxPrice is the upper bound of the catalog price slider.
	DefaultMaxPrice = 50000
)

// CatalogFilter is the catalog view's filter state. A product is included
// iff the category, price, and city predicates all hold. The zero value of
// Category/City matches everything; MinPrice/MaxPrice are inclusive bounds.
type CatalogFilter struct {
	Category string
	City     string
	MinPrice int
	MaxPrice int
}

// MatchCategory reports whether p passes the category predicate.
func (f CatalogFilter) MatchCategory(p *Product) bool {
	return f.Category == "" || f.Category == AllCategories || p.Category == f.Category
}

// MatchPrice reports whether p's price lies within [MinPrice, MaxPrice].
func (f CatalogFilter) MatchPrice(p *Product) bool {
	return p.Price >= f.MinPrice && p.Price <= f.MaxPrice
}

// MatchCity reports whether p passes the city predicate.
func (f CatalogFilter) MatchCity(p *Product) bool {
	return f.City == "" || f.City == AllCities || p.City == f.City
}

// Matches reports whether p passes all filter predicates.
func (f CatalogFilter) Matches(p *Product) bool {
	return f.MatchCategory(p) && f.MatchPrice(p) && f.MatchCity(p)
}

// Apply returns the products passing the filter, preserving input order.
// The input slice is never mutated.
func (f CatalogFilter) Apply(products []Product) []Product {
	filtered := make([]Product, 0, len(products))
	for i := range products {
		if f.Matches(&products[i]) {
			filtered = append(filtered, products[i])
		}
	}
	return filtered
}
