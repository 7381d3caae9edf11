package models

import "github.com/shopspring/decimal"

// Category represents the menu category of an item
type Category string

const (
	Starter    Category = "starter"
	MainCourse Category = "main_course"
	Beverage   Category = "beverage"
	Dessert    Category = "dessert"
)

// Categories lists all menu categories in display order.
var Categories = []Category{Starter, MainCourse, Beverage, Dessert}

// Label returns the human-readable name of a category.
func (c Category) Label() string {
	switch c {
	case Starter:
		return "Starters"
	case MainCourse:
		return "Main Course"
	case Beverage:
		return "Beverages"
	case Dessert:
		return "Desserts"
	default:
		return string(c)
	}
}

// MenuItem represents a single entry of the menu catalog.
// The code is unique across the catalog; the category never
// changes after creation. Availability may flip at any time but
// has no effect on lines already placed on an order.
type MenuItem struct {
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Category  Category        `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Available bool            `json:"available"`
}
