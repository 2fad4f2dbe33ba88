package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tiffincrm/internal/cart"
	"github.com/mesh-intelligence/tiffincrm/internal/client"
	"github.com/mesh-intelligence/tiffincrm/pkg/types"
)

func newOrdersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orders",
		Aliases: []string{"order"},
		Short:   "Place and track orders",
	}
	cmd.AddCommand(
		newOrdersListCmd(),
		newOrdersGetCmd(),
		newOrdersPlaceCmd(),
		newOrdersStatusCmd(),
		newOrdersDeleteCmd(),
	)
	return cmd
}

func newOrdersListCmd() *cobra.Command {
	var (
		status     string
		customerID int64
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if status != "" && customerID != 0 {
				return userErrorf("--status and --customer cannot be combined")
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			var orders []types.Order
			switch {
			case status != "":
				orders, err = c.OrdersByStatus(cmd.Context(), status)
			case customerID != 0:
				orders, err = c.OrdersByCustomer(cmd.Context(), customerID)
			default:
				orders, err = c.ListOrders(cmd.Context(), "")
			}
			if err != nil {
				return err
			}
			return emit(cmd, orders, func(w io.Writer) error { return writeOrders(w, orders) })
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "only orders in this status")
	cmd.Flags().Int64Var(&customerID, "customer", 0, "only orders placed by this customer id")
	return cmd
}

func newOrdersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show an order with its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("order id", args[0])
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			o, err := c.GetOrder(cmd.Context(), id)
			if err != nil {
				return err
			}
			return emit(cmd, o, func(w io.Writer) error { return writeOrder(w, o) })
		},
	}
}

// parseItemArg parses "id" or "id:qty".
func parseItemArg(raw string) (int64, int, error) {
	idPart, qtyPart, hasQty := strings.Cut(raw, ":")
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil || id <= 0 {
		return 0, 0, userErrorf("invalid item %q: expected <menu-item-id>[:<quantity>]", raw)
	}
	qty := 1
	if hasQty {
		qty, err = strconv.Atoi(qtyPart)
		if err != nil || qty <= 0 {
			return 0, 0, userErrorf("invalid quantity in %q: must be a positive integer", raw)
		}
	}
	return id, qty, nil
}

func newOrdersPlaceCmd() *cobra.Command {
	var (
		customerID int64
		items      []string
		address    string
	)
	cmd := &cobra.Command{
		Use:   "place",
		Short: "Place an order",
		Long: "Place an order for a customer. Each --item is a menu item id with an\n" +
			"optional quantity, e.g. --item 3:2. Repeated ids are added together.",
		Example: "  tiffin orders place --customer 1 --item 1:2 --item 3",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if customerID <= 0 {
				return userErrorf("--customer is required")
			}
			if len(items) == 0 {
				return userErrorf("at least one --item is required")
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			basket, err := fillCart(cmd, c, items)
			if err != nil {
				return err
			}
			req, err := basket.PlaceOrderRequest(customerID, address)
			if err != nil {
				return &userError{err: err}
			}
			o, err := c.PlaceOrder(cmd.Context(), req)
			if err != nil {
				return err
			}
			return emit(cmd, o, func(w io.Writer) error {
				fmt.Fprintln(w, "Order created successfully")
				return writeOrder(w, o)
			})
		},
	}
	cmd.Flags().Int64Var(&customerID, "customer", 0, "customer id")
	cmd.Flags().StringArrayVar(&items, "item", nil, "menu item id with optional :quantity (repeatable)")
	cmd.Flags().StringVar(&address, "address", "", "delivery address (default: the customer's address)")
	return cmd
}

// fillCart looks up each requested menu item and adds it to a cart. Items
// that are not available are rejected here before anything is sent.
func fillCart(cmd *cobra.Command, c *client.Client, items []string) (*cart.Cart, error) {
	basket := cart.New()
	for _, raw := range items {
		id, qty, err := parseItemArg(raw)
		if err != nil {
			return nil, err
		}
		item, err := c.GetMenuItem(cmd.Context(), id)
		if err != nil {
			return nil, err
		}
		if err := basket.Add(*item); err != nil {
			return nil, userErrorf("Menu item %q is not available", item.Name)
		}
		basket.SetQuantity(id, basket.Quantity(id)-1+qty)
	}
	return basket, nil
}

func newOrdersStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Set an order's status",
		Long:  "Set an order's status. Valid statuses: " + statusNames() + ".",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("order id", args[0])
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			o, err := c.UpdateOrderStatus(cmd.Context(), id, args[1])
			if err != nil {
				return err
			}
			return emit(cmd, o, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Order status updated successfully (%s)\n", o.Status)
				return err
			})
		},
	}
}

func newOrdersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an order and its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("order id", args[0])
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			if err := c.DeleteOrder(cmd.Context(), id); err != nil {
				return err
			}
			return emit(cmd, map[string]any{"deleted": id}, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, "Order deleted successfully")
				return err
			})
		},
	}
}

func statusNames() string {
	names := make([]string, len(types.OrderStatuses))
	for i, s := range types.OrderStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
