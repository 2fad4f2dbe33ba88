package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tiffincrm/pkg/types"
)

func newCustomersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "customers",
		Aliases: []string{"customer"},
		Short:   "Manage customers",
	}
	cmd.AddCommand(
		newCustomersListCmd(),
		newCustomersGetCmd(),
		newCustomersAddCmd(),
		newCustomersUpdateCmd(),
		newCustomersDeleteCmd(),
	)
	return cmd
}

func newCustomersListCmd() *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List customers, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			var customers []types.Customer
			if search != "" {
				customers, err = c.SearchCustomers(cmd.Context(), search)
			} else {
				customers, err = c.ListCustomers(cmd.Context())
			}
			if err != nil {
				return err
			}
			return emit(cmd, customers, func(w io.Writer) error { return writeCustomers(w, customers) })
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "match name, phone, or address")
	return cmd
}

func newCustomersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("customer id", args[0])
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			cust, err := c.GetCustomer(cmd.Context(), id)
			if err != nil {
				return err
			}
			return emit(cmd, cust, func(w io.Writer) error {
				return writeCustomers(w, []types.Customer{*cust})
			})
		},
	}
}

func customerFlags(cmd *cobra.Command, in *types.CustomerInput) {
	cmd.Flags().StringVar(&in.Name, "name", "", "customer name")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "phone number (unique)")
	cmd.Flags().StringVar(&in.Address, "address", "", "delivery address")
	cmd.Flags().StringVar((*string)(&in.Plan), "plan", string(types.PlanMonthly), "subscription plan")
}

func newCustomersAddCmd() *cobra.Command {
	var in types.CustomerInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a customer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			cust, err := c.CreateCustomer(cmd.Context(), in)
			if err != nil {
				return err
			}
			return emit(cmd, cust, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Customer created successfully (id %d)\n", cust.ID)
				return err
			})
		},
	}
	customerFlags(cmd, &in)
	return cmd
}

func newCustomersUpdateCmd() *cobra.Command {
	var in types.CustomerInput
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a customer",
		Long:  "Update a customer. Flags that are not given keep their current values.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("customer id", args[0])
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			cur, err := c.GetCustomer(cmd.Context(), id)
			if err != nil {
				return err
			}
			merged := types.CustomerInput{Name: cur.Name, Phone: cur.Phone, Address: cur.Address, Plan: cur.Plan}
			fl := cmd.Flags()
			if fl.Changed("name") {
				merged.Name = in.Name
			}
			if fl.Changed("phone") {
				merged.Phone = in.Phone
			}
			if fl.Changed("address") {
				merged.Address = in.Address
			}
			if fl.Changed("plan") {
				merged.Plan = in.Plan
			}
			cust, err := c.UpdateCustomer(cmd.Context(), id, merged)
			if err != nil {
				return err
			}
			return emit(cmd, cust, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, "Customer updated successfully")
				return err
			})
		},
	}
	customerFlags(cmd, &in)
	return cmd
}

func newCustomersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a customer without orders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("customer id", args[0])
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			if err := c.DeleteCustomer(cmd.Context(), id); err != nil {
				return err
			}
			return emit(cmd, map[string]any{"deleted": id}, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, "Customer deleted successfully")
				return err
			})
		},
	}
}
