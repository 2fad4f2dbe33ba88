package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mesh-intelligence/tiffincrm/internal/auth"
	"github.com/mesh-intelligence/tiffincrm/pkg/types"
)

// Health is the /health response.
type Health struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Timestamp string            `json:"timestamp"`
	Database  string            `json:"database"`
	Endpoints map[string]string `json:"endpoints"`
}

// Health checks the API and its database. The health endpoint is not
// wrapped in the data envelope.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	var h Health
	if err := decodeJSON(resp.Body, &h); err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return &h, &APIError{Status: resp.StatusCode, Message: "database " + h.Database}
	}
	return &h, nil
}

type customerBody struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Plan    string `json:"plan"`
}

func newCustomerBody(in types.CustomerInput) customerBody {
	return customerBody{Name: in.Name, Phone: in.Phone, Address: in.Address, Plan: string(in.Plan)}
}

// ListCustomers returns every customer.
func (c *Client) ListCustomers(ctx context.Context) ([]types.Customer, error) {
	var out []types.Customer
	_, err := c.do(ctx, http.MethodGet, "/customers", nil, &out)
	return out, err
}

// SearchCustomers returns customers matching term.
func (c *Client) SearchCustomers(ctx context.Context, term string) ([]types.Customer, error) {
	var out []types.Customer
	_, err := c.do(ctx, http.MethodGet, "/customers/search/"+url.PathEscape(term), nil, &out)
	return out, err
}

// GetCustomer returns one customer.
func (c *Client) GetCustomer(ctx context.Context, id int64) (*types.Customer, error) {
	var out types.Customer
	if _, err := c.do(ctx, http.MethodGet, idPath("/customers", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCustomer adds a customer.
func (c *Client) CreateCustomer(ctx context.Context, in types.CustomerInput) (*types.Customer, error) {
	var out types.Customer
	if _, err := c.do(ctx, http.MethodPost, "/customers", newCustomerBody(in), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCustomer replaces a customer's fields.
func (c *Client) UpdateCustomer(ctx context.Context, id int64, in types.CustomerInput) (*types.Customer, error) {
	var out types.Customer
	if _, err := c.do(ctx, http.MethodPut, idPath("/customers", id), newCustomerBody(in), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCustomer removes a customer.
func (c *Client) DeleteCustomer(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, idPath("/customers", id), nil, nil)
	return err
}

type menuBody struct {
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
	Available *bool   `json:"available,omitempty"`
}

func newMenuBody(in types.MenuItemInput) menuBody {
	return menuBody{Name: in.Name, Price: in.Price, Category: in.Category, Available: in.Available}
}

// ListMenu returns the menu, narrowed to category when non-empty.
func (c *Client) ListMenu(ctx context.Context, category string) ([]types.MenuItem, error) {
	var out []types.MenuItem
	_, err := c.do(ctx, http.MethodGet, query("/menu", "category", category), nil, &out)
	return out, err
}

// AvailableMenu returns orderable items.
func (c *Client) AvailableMenu(ctx context.Context) ([]types.MenuItem, error) {
	var out []types.MenuItem
	_, err := c.do(ctx, http.MethodGet, "/menu/available", nil, &out)
	return out, err
}

// MenuByCategory returns the items in category.
func (c *Client) MenuByCategory(ctx context.Context, category string) ([]types.MenuItem, error) {
	var out []types.MenuItem
	_, err := c.do(ctx, http.MethodGet, "/menu/category/"+url.PathEscape(category), nil, &out)
	return out, err
}

// GetMenuItem returns one menu item.
func (c *Client) GetMenuItem(ctx context.Context, id int64) (*types.MenuItem, error) {
	var out types.MenuItem
	if _, err := c.do(ctx, http.MethodGet, idPath("/menu", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateMenuItem adds a menu item.
func (c *Client) CreateMenuItem(ctx context.Context, in types.MenuItemInput) (*types.MenuItem, error) {
	var out types.MenuItem
	if _, err := c.do(ctx, http.MethodPost, "/menu", newMenuBody(in), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateMenuItem replaces a menu item's fields.
func (c *Client) UpdateMenuItem(ctx context.Context, id int64, in types.MenuItemInput) (*types.MenuItem, error) {
	var out types.MenuItem
	if _, err := c.do(ctx, http.MethodPut, idPath("/menu", id), newMenuBody(in), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteMenuItem removes a menu item.
func (c *Client) DeleteMenuItem(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, idPath("/menu", id), nil, nil)
	return err
}

// ToggleAvailability flips a menu item's available flag.
func (c *Client) ToggleAvailability(ctx context.Context, id int64) (*types.MenuItem, error) {
	var out types.MenuItem
	if _, err := c.do(ctx, http.MethodPatch, idPath("/menu", id, "/toggle-availability"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type orderLineBody struct {
	MenuItemID int64 `json:"menu_item_id"`
	Quantity   int   `json:"quantity"`
}

type placeOrderBody struct {
	CustomerID      int64           `json:"customer_id"`
	DeliveryAddress string          `json:"delivery_address,omitempty"`
	Items           []orderLineBody `json:"items"`
}

// ListOrders returns orders, narrowed to status when non-empty.
func (c *Client) ListOrders(ctx context.Context, status string) ([]types.Order, error) {
	var out []types.Order
	_, err := c.do(ctx, http.MethodGet, query("/orders", "status", status), nil, &out)
	return out, err
}

// OrdersByStatus returns orders in status.
func (c *Client) OrdersByStatus(ctx context.Context, status string) ([]types.Order, error) {
	var out []types.Order
	_, err := c.do(ctx, http.MethodGet, "/orders/status/"+url.PathEscape(status), nil, &out)
	return out, err
}

// OrdersByCustomer returns orders placed by customerID.
func (c *Client) OrdersByCustomer(ctx context.Context, customerID int64) ([]types.Order, error) {
	var out []types.Order
	_, err := c.do(ctx, http.MethodGet, idPath("/orders/customer", customerID), nil, &out)
	return out, err
}

// GetOrder returns one order with its items.
func (c *Client) GetOrder(ctx context.Context, id int64) (*types.Order, error) {
	var out types.Order
	if _, err := c.do(ctx, http.MethodGet, idPath("/orders", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PlaceOrder submits an order.
func (c *Client) PlaceOrder(ctx context.Context, req types.PlaceOrderRequest) (*types.Order, error) {
	body := placeOrderBody{CustomerID: req.CustomerID, DeliveryAddress: req.DeliveryAddress}
	for _, l := range req.Lines {
		body.Items = append(body.Items, orderLineBody{MenuItemID: l.MenuItemID, Quantity: l.Quantity})
	}
	var out types.Order
	if _, err := c.do(ctx, http.MethodPost, "/orders", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateOrderStatus sets an order's status.
func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status string) (*types.Order, error) {
	var out types.Order
	body := map[string]string{"status": status}
	if _, err := c.do(ctx, http.MethodPatch, idPath("/orders", id, "/status"), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteOrder removes an order.
func (c *Client) DeleteOrder(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, idPath("/orders", id), nil, nil)
	return err
}

// Login checks demo credentials and returns the profile.
func (c *Client) Login(ctx context.Context, email, password, role string) (*auth.Profile, error) {
	body := map[string]string{"email": email, "password": password, "role": role}
	var out auth.Profile
	if _, err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
