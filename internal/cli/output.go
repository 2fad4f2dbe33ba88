package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tiffincrm/pkg/types"
)

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// emit prints v as JSON in --json mode and otherwise calls text.
func emit(cmd *cobra.Command, v any, text func(w io.Writer) error) error {
	if flags.jsonMode {
		return printJSON(cmd.OutOrStdout(), v)
	}
	return text(cmd.OutOrStdout())
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func rupees(v float64) string {
	return "₹" + decimal.NewFromFloat(v).StringFixed(2)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func writeCustomers(w io.Writer, customers []types.Customer) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tPHONE\tPLAN\tADDRESS")
	for _, c := range customers {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Phone, c.Plan, c.Address)
	}
	return tw.Flush()
}

func writeMenu(w io.Writer, items []types.MenuItem) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tAVAILABLE")
	for _, m := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", m.ID, m.Name, m.Category, rupees(m.Price), yesNo(m.Available))
	}
	return tw.Flush()
}

func writeOrders(w io.Writer, orders []types.Order) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tCUSTOMER\tDATE\tSTATUS\tTOTAL")
	for _, o := range orders {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", o.ID, o.CustomerName, o.OrderDate, o.Status, rupees(o.TotalAmount))
	}
	return tw.Flush()
}

func writeOrder(w io.Writer, o *types.Order) error {
	fmt.Fprintf(w, "Order #%d  %s  %s\n", o.ID, o.OrderDate, o.Status)
	fmt.Fprintf(w, "Customer: %s", o.CustomerName)
	if o.CustomerPhone != "" {
		fmt.Fprintf(w, " (%s)", o.CustomerPhone)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Deliver to: %s\n", o.DeliveryAddress)
	if len(o.Items) > 0 {
		tw := newTable(w)
		fmt.Fprintln(tw, "ITEM\tQTY\tPRICE\tSUBTOTAL")
		for _, it := range o.Items {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", it.MenuItemName, it.Quantity, rupees(it.Price), rupees(it.TotalPrice))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Total: %s\n", rupees(o.TotalAmount))
	return err
}

// parseID converts a positional id argument.
func parseID(name, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, userErrorf("invalid %s %q: must be a positive integer", name, raw)
	}
	return id, nil
}
