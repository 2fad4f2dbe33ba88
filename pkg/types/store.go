package types

import "context"

// CustomerRepository stores customers.
type CustomerRepository interface {
	List(ctx context.Context) ([]Customer, error)
	// Search matches term as a substring of name, phone, or address.
	Search(ctx context.Context, term string) ([]Customer, error)
	// Get returns ErrNotFound when no customer has the id.
	Get(ctx context.Context, id int64) (*Customer, error)
	// Create assigns ID and timestamps on c.
	Create(ctx context.Context, c *Customer) error
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id int64) error
	// PhoneTaken reports whether a customer other than excludeID uses phone.
	PhoneTaken(ctx context.Context, phone string, excludeID int64) (bool, error)
}

// MenuRepository stores menu items.
type MenuRepository interface {
	List(ctx context.Context, filter MenuFilter) ([]MenuItem, error)
	// Get returns ErrNotFound when no menu item has the id.
	Get(ctx context.Context, id int64) (*MenuItem, error)
	Create(ctx context.Context, m *MenuItem) error
	Update(ctx context.Context, m *MenuItem) error
	Delete(ctx context.Context, id int64) error
	SetAvailability(ctx context.Context, id int64, available bool) error
	// NameTaken reports whether an item other than excludeID has the same
	// name within category.
	NameTaken(ctx context.Context, name, category string, excludeID int64) (bool, error)
}

// OrderRepository stores orders and their items.
type OrderRepository interface {
	List(ctx context.Context, filter OrderFilter) ([]Order, error)
	// Get returns the order with its items, or ErrNotFound.
	Get(ctx context.Context, id int64) (*Order, error)
	// Create inserts o and every element of o.Items, assigning IDs.
	Create(ctx context.Context, o *Order) error
	UpdateStatus(ctx context.Context, id int64, status OrderStatus) error
	// Delete removes the order's items and then the order.
	Delete(ctx context.Context, id int64) error
	CountByCustomer(ctx context.Context, customerID int64) (int, error)
}

// Store gives access to every repository. InTx runs fn against a Store bound
// to one transaction: a nil return commits, an error or panic rolls back.
type Store interface {
	Customers() CustomerRepository
	Menu() MenuRepository
	Orders() OrderRepository
	InTx(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error
}
