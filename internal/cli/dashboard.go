package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show business totals, recent orders, and menu highlights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			s, err := c.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			return emit(cmd, s, func(w io.Writer) error {
				fmt.Fprintf(w, "Customers:      %d\n", s.TotalCustomers)
				fmt.Fprintf(w, "Orders:         %d\n", s.TotalOrders)
				fmt.Fprintf(w, "Pending orders: %d\n", s.PendingOrders)
				fmt.Fprintf(w, "Revenue:        ₹%s\n\n", s.TotalRevenue.StringFixed(2))
				fmt.Fprintln(w, "Recent orders")
				if err := writeOrders(w, s.RecentOrders); err != nil {
					return err
				}
				fmt.Fprintln(w, "\nMenu")
				return writeMenu(w, s.PopularMenuItems)
			})
		},
	}
}
