package models

import "time"

// Product represents a single listing owned by one master.
// City is the owning master's city, joined in by the repository so the
// catalog filter can match on it.
type Product struct {
	ID          int       `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Price       int       `db:"price" json:"price"`
	Category    string    `db:"category" json:"category"`
	ImageURL    string    `db:"image_url" json:"image_url"`
	MasterID    int       `db:"master_id" json:"master_id"`
	City        string    `db:"city" json:"city"`
	CreatedAt   time.Time `db:"created_at" json:"-"`
	UpdatedAt   time.Time `db:"updated_at" json:"-"`
}

// ProductDetail is a product joined with the owning master's contact profile,
// as rendered on the product detail view.
type ProductDetail struct {
	Product
	Master MasterProfile `db:"master" json:"master"`
}

// ListingCategories enumerates the categories a new listing may be filed
// under (the add-product form options).
var ListingCategories = []string{
	"Одежда", "Аксессуары", "Украшения", "Сумки",
	"Игрушки", "Декор", "Посуда", "Другое",
}

// CatalogCategories are the filter presets shown on the catalog view.
// Deliberately not the same set as ListingCategories.
var CatalogCategories = []string{
	"Все", "Украшения", "Декор", "Свечи", "Выпечка", "Текстиль", "Игрушки",
}

// IsListingCategory reports whether category is a valid listing category.
func IsListingCategory(category string) bool {
	for _, c := range ListingCategories {
		if c == category {
			return true
		}
	}
	return false
}
