package sqlite

import (
	"database/sql"
	"fmt"
)

// Schema DDL for all tables. Foreign keys are declared for documentation but
// SQLite does not enforce them without PRAGMA foreign_keys, so deleting a menu
// item leaves order_items snapshots intact.
const (
	createCustomers = `CREATE TABLE IF NOT EXISTS customers (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    phone TEXT NOT NULL UNIQUE,
    address TEXT NOT NULL,
    plan TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createMenuItems = `CREATE TABLE IF NOT EXISTS menu_items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    price REAL NOT NULL,
    category TEXT NOT NULL,
    available INTEGER NOT NULL DEFAULT 1,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createOrders = `CREATE TABLE IF NOT EXISTS orders (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    customer_id INTEGER NOT NULL,
    customer_name TEXT NOT NULL,
    total_amount REAL NOT NULL,
    status TEXT NOT NULL DEFAULT 'Pending',
    order_date TEXT NOT NULL,
    delivery_address TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (customer_id) REFERENCES customers(id)
);`

	createOrderItems = `CREATE TABLE IF NOT EXISTS order_items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    order_id INTEGER NOT NULL,
    menu_item_id INTEGER NOT NULL,
    menu_item_name TEXT NOT NULL,
    quantity INTEGER NOT NULL,
    price REAL NOT NULL,
    FOREIGN KEY (order_id) REFERENCES orders(id),
    FOREIGN KEY (menu_item_id) REFERENCES menu_items(id)
);`
)

// Index DDL for common queries.
const (
	idxMenuItemsCategory = `CREATE INDEX IF NOT EXISTS idx_menu_items_category ON menu_items(category, name);`
	idxOrdersCustomer    = `CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id);`
	idxOrdersStatus      = `CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);`
	idxOrderItemsOrder   = `CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createCustomers,
	createMenuItems,
	createOrders,
	createOrderItems,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxMenuItemsCategory,
	idxOrdersCustomer,
	idxOrdersStatus,
	idxOrderItemsOrder,
}

// createSchema creates any missing tables and indexes.
func createSchema(db *sql.DB) error {
	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating table: %w", err)
		}
	}
	for _, stmt := range indexDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}
	return nil
}
