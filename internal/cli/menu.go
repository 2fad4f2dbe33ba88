package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tiffincrm/pkg/types"
)

func newMenuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Manage the menu",
	}
	cmd.AddCommand(
		newMenuListCmd(),
		newMenuGetCmd(),
		newMenuAddCmd(),
		newMenuUpdateCmd(),
		newMenuDeleteCmd(),
		newMenuToggleCmd(),
	)
	return cmd
}

func newMenuListCmd() *cobra.Command {
	var (
		category  string
		available bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List menu items by category and name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			var items []types.MenuItem
			switch {
			case available && category != "":
				return userErrorf("--available and --category cannot be combined")
			case available:
				items, err = c.AvailableMenu(cmd.Context())
			case category != "":
				items, err = c.MenuByCategory(cmd.Context(), category)
			default:
				items, err = c.ListMenu(cmd.Context(), "")
			}
			if err != nil {
				return err
			}
			return emit(cmd, items, func(w io.Writer) error { return writeMenu(w, items) })
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "only this category")
	cmd.Flags().BoolVar(&available, "available", false, "only items that can be ordered")
	return cmd
}

func newMenuGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one menu item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("menu item id", args[0])
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			item, err := c.GetMenuItem(cmd.Context(), id)
			if err != nil {
				return err
			}
			return emit(cmd, item, func(w io.Writer) error {
				return writeMenu(w, []types.MenuItem{*item})
			})
		},
	}
}

type menuFlagValues struct {
	name      string
	price     float64
	category  string
	available bool
}

func menuFlags(cmd *cobra.Command, v *menuFlagValues) {
	cmd.Flags().StringVar(&v.name, "name", "", "item name")
	cmd.Flags().Float64Var(&v.price, "price", 0, "price in rupees")
	cmd.Flags().StringVar(&v.category, "category", types.CategoryVegetarian, "category")
	cmd.Flags().BoolVar(&v.available, "available", true, "whether the item can be ordered")
}

func newMenuAddCmd() *cobra.Command {
	var v menuFlagValues
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a menu item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			in := types.MenuItemInput{Name: v.name, Price: v.price, Category: v.category, Available: &v.available}
			item, err := c.CreateMenuItem(cmd.Context(), in)
			if err != nil {
				return err
			}
			return emit(cmd, item, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Menu item created successfully (id %d)\n", item.ID)
				return err
			})
		},
	}
	menuFlags(cmd, &v)
	return cmd
}

func newMenuUpdateCmd() *cobra.Command {
	var v menuFlagValues
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a menu item",
		Long:  "Update a menu item. Flags that are not given keep their current values.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("menu item id", args[0])
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			cur, err := c.GetMenuItem(cmd.Context(), id)
			if err != nil {
				return err
			}
			in := types.MenuItemInput{Name: cur.Name, Price: cur.Price, Category: cur.Category}
			fl := cmd.Flags()
			if fl.Changed("name") {
				in.Name = v.name
			}
			if fl.Changed("price") {
				in.Price = v.price
			}
			if fl.Changed("category") {
				in.Category = v.category
			}
			if fl.Changed("available") {
				in.Available = &v.available
			}
			item, err := c.UpdateMenuItem(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			return emit(cmd, item, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, "Menu item updated successfully")
				return err
			})
		},
	}
	menuFlags(cmd, &v)
	return cmd
}

func newMenuDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a menu item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("menu item id", args[0])
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			if err := c.DeleteMenuItem(cmd.Context(), id); err != nil {
				return err
			}
			return emit(cmd, map[string]any{"deleted": id}, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, "Menu item deleted successfully")
				return err
			})
		},
	}
}

func newMenuToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip whether a menu item can be ordered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("menu item id", args[0])
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			item, err := c.ToggleAvailability(cmd.Context(), id)
			if err != nil {
				return err
			}
			state := "disabled"
			if item.Available {
				state = "enabled"
			}
			return emit(cmd, item, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Menu item %s successfully\n", state)
				return err
			})
		},
	}
}
