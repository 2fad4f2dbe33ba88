package types

import "time"

// OrderDateLayout is the layout of Order.OrderDate.
const OrderDateLayout = "2006-01-02"

// Order is a customer's order. TotalAmount is fixed when the order is placed
// and is not recomputed from its items afterwards.
type Order struct {
	ID              int64       `json:"id"`
	CustomerID      int64       `json:"customer_id"`
	CustomerName    string      `json:"customer_name"` // snapshot at placement
	CustomerPhone   string      `json:"customer_phone,omitempty"`
	CustomerAddress string      `json:"customer_address,omitempty"`
	TotalAmount     float64     `json:"total_amount"`
	Status          OrderStatus `json:"status"`
	OrderDate       string      `json:"order_date"`
	DeliveryAddress string      `json:"delivery_address"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
	Items           []OrderItem `json:"items,omitempty"`
}

// OrderItem is one line of an order. MenuItemName and Price are snapshots of
// the menu item when the order was placed.
type OrderItem struct {
	ID           int64   `json:"id"`
	OrderID      int64   `json:"order_id"`
	MenuItemID   int64   `json:"menu_item_id"`
	MenuItemName string  `json:"menu_item_name"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	TotalPrice   float64 `json:"total_price"`
}

// OrderLine is a requested menu item and quantity.
type OrderLine struct {
	MenuItemID int64 `json:"menu_item_id"`
	Quantity   int   `json:"quantity"`
}

// PlaceOrderRequest is the typed command for placing an order. An empty
// DeliveryAddress falls back to the customer's address.
type PlaceOrderRequest struct {
	CustomerID      int64
	DeliveryAddress string
	Lines           []OrderLine
}

// OrderFilter narrows an order listing. Zero values match everything.
type OrderFilter struct {
	Status     OrderStatus
	CustomerID int64
}
