package types

import (
	"strings"
	"time"
)

// Conventional menu categories. Category is free text; these are the values
// the dashboard offers.
const (
	CategoryVegetarian    = "Vegetarian"
	CategoryNonVegetarian = "Non-Vegetarian"
	CategoryBeverage      = "Beverage"
	CategoryDessert       = "Dessert"
	CategorySnacks        = "Snacks"
)

// MenuItem is a dish that customers can order.
type MenuItem struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Category  string    `json:"category"`
	Available bool      `json:"available"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MenuItemInput carries the writable menu item fields. A nil Available keeps
// the stored value on update and defaults to true on create.
type MenuItemInput struct {
	Name      string
	Price     float64
	Category  string
	Available *bool
}

// Normalize trims surrounding whitespace from the text fields.
func (in MenuItemInput) Normalize() MenuItemInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	return in
}

// Validate reports an ErrInvalidData error for missing fields or a
// non-positive price.
func (in MenuItemInput) Validate() error {
	if in.Name == "" || in.Category == "" {
		return Invalidf("Name, price, and category are required")
	}
	if in.Price <= 0 {
		return Invalidf("Price must be greater than 0")
	}
	return nil
}

// MenuFilter narrows a menu listing. Zero values match everything.
type MenuFilter struct {
	Category      string
	AvailableOnly bool
}
