package domain

import "time"

// Product represents a PC component or prebuilt rig in the catalog.
type Product struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Brand        string    `json:"brand"`
	Category     string    `json:"category"`
	Description  string    `json:"description,omitempty"`
	Price        float64   `json:"price"`
	CountInStock int       `json:"countInStock"`
	Rating       float64   `json:"rating"`
	NumReviews   int       `json:"numReviews"`
	Image        string    `json:"image,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// InStock returns true if the product can currently be ordered.
func (p Product) InStock() bool {
	return p.CountInStock > 0
}

// ProductPage is one page of catalog results.
type ProductPage struct {
	Products []Product `json:"products"`
	Page     int       `json:"page"`
	Pages    int       `json:"pages"`
}

// Valid product categories.
var ValidCategories = []string{
	"cpu",
	"gpu",
	"motherboard",
	"memory",
	"storage",
	"psu",
	"case",
	"cooling",
	"peripherals",
	"prebuilt",
}

var validCategorySet = func() map[string]bool {
	m := make(map[string]bool, len(ValidCategories))
	for _, c := range ValidCategories {
		m[c] = true
	}
	return m
}()

// ValidCategory returns true if the given category is a known product category.
func ValidCategory(c string) bool {
	return validCategorySet[c]
}
