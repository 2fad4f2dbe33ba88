package sqlite

import (
	"database/sql"
	"fmt"
	"time"
)

type sampleCustomer struct {
	name, phone, address, plan string
}

type sampleMenuItem struct {
	name     string
	price    float64
	category string
}

type sampleOrderLine struct {
	menuIndex int // index into sampleMenuItems
	quantity  int
}

type sampleOrder struct {
	customerIndex int // index into sampleCustomers
	status        string
	orderDate     string
	lines         []sampleOrderLine
}

// sampleCustomers are inserted on first startup.
var sampleCustomers = []sampleCustomer{
	{"John Doe", "9876543210", "123 Main St, Mumbai", "Monthly"},
	{"Jane Smith", "9876543211", "456 Oak Ave, Delhi", "Weekly"},
	{"Mike Johnson", "9876543212", "789 Pine Rd, Bangalore", "Daily"},
	{"Priya Sharma", "9876543213", "321 Lake View, Chennai", "Monthly"},
	{"Raj Patel", "9876543214", "654 Garden St, Pune", "Weekly"},
}

// sampleMenuItems are inserted on first startup.
var sampleMenuItems = []sampleMenuItem{
	{"Dal Rice", 80, "Vegetarian"},
	{"Chicken Curry", 120, "Non-Vegetarian"},
	{"Paneer Masala", 100, "Vegetarian"},
	{"Fish Curry", 140, "Non-Vegetarian"},
	{"Vegetable Biryani", 90, "Vegetarian"},
	{"Mutton Curry", 160, "Non-Vegetarian"},
	{"Rajma Chawal", 85, "Vegetarian"},
	{"Chole Bhature", 95, "Vegetarian"},
	{"Butter Chicken", 150, "Non-Vegetarian"},
	{"Aloo Gobi", 75, "Vegetarian"},
}

// sampleOrders are inserted on first startup. Each order's total is the sum
// of its lines at the sample prices.
var sampleOrders = []sampleOrder{
	{0, "Delivered", "2024-06-10", []sampleOrderLine{{8, 1}}},
	{1, "Pending", "2024-06-12", []sampleOrderLine{{1, 1}}},
	{2, "Delivered", "2024-06-11", []sampleOrderLine{{2, 2}}},
	{3, "Confirmed", "2024-06-12", []sampleOrderLine{{0, 1}, {2, 1}}},
	{0, "Out for Delivery", "2024-06-12", []sampleOrderLine{{0, 3}}},
}

// seedSampleData fills an empty database with the sample customers, menu,
// and orders. It does nothing when the customers table already has rows.
func seedSampleData(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM customers").Scan(&count); err != nil {
		return fmt.Errorf("counting customers: %w", err)
	}
	if count > 0 {
		return nil
	}

	nowStr := formatTime(time.Now())

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	customerIDs := make([]int64, len(sampleCustomers))
	for i, c := range sampleCustomers {
		res, err := tx.Exec(
			"INSERT INTO customers (name, phone, address, plan, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
			c.name, c.phone, c.address, c.plan, nowStr, nowStr,
		)
		if err != nil {
			return fmt.Errorf("seeding customer %s: %w", c.name, err)
		}
		if customerIDs[i], err = res.LastInsertId(); err != nil {
			return fmt.Errorf("reading customer id: %w", err)
		}
	}

	menuIDs := make([]int64, len(sampleMenuItems))
	for i, m := range sampleMenuItems {
		res, err := tx.Exec(
			"INSERT INTO menu_items (name, price, category, available, created_at, updated_at) VALUES (?, ?, ?, 1, ?, ?)",
			m.name, m.price, m.category, nowStr, nowStr,
		)
		if err != nil {
			return fmt.Errorf("seeding menu item %s: %w", m.name, err)
		}
		if menuIDs[i], err = res.LastInsertId(); err != nil {
			return fmt.Errorf("reading menu item id: %w", err)
		}
	}

	for _, o := range sampleOrders {
		cust := sampleCustomers[o.customerIndex]
		var total float64
		for _, l := range o.lines {
			total += sampleMenuItems[l.menuIndex].price * float64(l.quantity)
		}
		res, err := tx.Exec(
			`INSERT INTO orders (customer_id, customer_name, total_amount, status, order_date, delivery_address, created_at, updated_at)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			customerIDs[o.customerIndex], cust.name, total, o.status, o.orderDate, cust.address, nowStr, nowStr,
		)
		if err != nil {
			return fmt.Errorf("seeding order for %s: %w", cust.name, err)
		}
		orderID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading order id: %w", err)
		}
		for _, l := range o.lines {
			m := sampleMenuItems[l.menuIndex]
			_, err := tx.Exec(
				"INSERT INTO order_items (order_id, menu_item_id, menu_item_name, quantity, price) VALUES (?, ?, ?, ?, ?)",
				orderID, menuIDs[l.menuIndex], m.name, l.quantity, m.price,
			)
			if err != nil {
				return fmt.Errorf("seeding order item %s: %w", m.name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed transaction: %w", err)
	}
	return nil
}
