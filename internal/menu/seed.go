package menu

import (
	"github.com/shopspring/decimal"

	"github.com/sufi2801/restaurant-billing-system/internal/models"
)

type seedItem struct {
	code     string
	name     string
	category models.Category
	price    string
}

// Reference menu of the classic billing tool. Seeding the same
// codes and prices keeps receipts equivalent across rewrites.
var defaultItems = []seedItem{
	{"S01", "Garlic Bread", models.Starter, "120.00"},
	{"S02", "Veg Spring Roll", models.Starter, "140.00"},
	{"S03", "Chicken Tikka", models.Starter, "260.00"},
	{"S04", "Paneer Tikka", models.Starter, "220.00"},
	{"S05", "French Fries", models.Starter, "130.00"},
	{"S06", "Chicken Wings", models.Starter, "290.00"},
	{"S07", "Masala Papad", models.Starter, "60.00"},

	{"M01", "Butter Chicken", models.MainCourse, "320.00"},
	{"M02", "Paneer Butter Masala", models.MainCourse, "300.00"},
	{"M03", "Hyderabadi Chicken Biryani", models.MainCourse, "280.00"},
	{"M04", "Veg Biryani", models.MainCourse, "240.00"},
	{"M05", "Margherita Pizza", models.MainCourse, "350.00"},
	{"M06", "Farmhouse Pizza", models.MainCourse, "420.00"},
	{"M07", "Grilled Fish", models.MainCourse, "380.00"},
	{"M08", "Chicken Fried Rice", models.MainCourse, "220.00"},
	{"M09", "Mixed Veg Curry + Roti", models.MainCourse, "180.00"},

	{"B01", "Masala Chai", models.Beverage, "40.00"},
	{"B02", "Cold Coffee", models.Beverage, "120.00"},
	{"B03", "Mango Lassi", models.Beverage, "110.00"},
	{"B04", "Soft Drink (500ml)", models.Beverage, "80.00"},
	{"B05", "Lemonade", models.Beverage, "85.00"},
	{"B06", "Mineral Water (1L)", models.Beverage, "50.00"},

	{"D01", "Gulab Jamun (2 pcs)", models.Dessert, "90.00"},
	{"D02", "Brownie with Ice Cream", models.Dessert, "210.00"},
	{"D03", "Rasmalai (2 pcs)", models.Dessert, "130.00"},
	{"D04", "Fruit Salad", models.Dessert, "150.00"},
	{"D05", "Kulfi", models.Dessert, "110.00"},
	{"D06", "Ice Cream Scoop", models.Dessert, "70.00"},
	{"D07", "Jalebi (2 pcs)", models.Dessert, "95.00"},
}

// NewDefaultCatalog builds a catalog seeded with the reference menu.
func NewDefaultCatalog(max int) (*Catalog, error) {
	c := NewCatalog(max)
	for _, s := range defaultItems {
		item := models.MenuItem{
			Code:      s.code,
			Name:      s.name,
			Category:  s.category,
			Price:     decimal.RequireFromString(s.price),
			Available: true,
		}
		if err := c.Add(item); err != nil {
			return nil, err
		}
	}
	return c, nil
}
