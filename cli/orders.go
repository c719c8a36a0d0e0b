package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/supplykz/supplier-console/console"
	"github.com/supplykz/supplier-console/models"
)

func newOrdersCommand(rt *runtime) *cobra.Command {
	var (
		page   models.PageRequest
		status string
	)

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List orders",
		Long: `List orders from linked consumers and move them through fulfilment:
pending -> accepted -> in_progress -> completed, or pending -> rejected.

Examples:
  supplierctl orders --status pending
  supplierctl orders show 42
  supplierctl orders accept 42`,
		Args: cobra.NoArgs,
		RunE: rt.consoleRunE(func(cmd *cobra.Command, args []string) error {
			orders, err := rt.deps.Console.Orders(cmd.Context(), page, models.OrderStatus(status))
			if err != nil {
				return err
			}

			caps := rt.deps.Console.Capabilities()
			rows := make([][]string, 0, len(orders.Items))
			for _, o := range orders.Items {
				rows = append(rows, []string{
					o.Number(),
					o.ConsumerName(),
					rt.styles.Status(string(o.Status)),
					formatKZT(o.Total()),
					formatDate(o.CreatedAt),
					controlLabels(console.OrderControls(o.Status, caps)),
				})
			}
			rt.printTable("Orders", []string{"Order", "Consumer", "Status", "Total", "Placed", "Actions"}, rows, "No orders")
			printPageFooter(rt, orders)
			return nil
		}),
	}
	addPageFlags(cmd, &page)
	cmd.Flags().StringVar(&status, "status", "", "filter by status: pending, accepted, in_progress, completed or rejected")

	cmd.AddCommand(actionCommand(rt, "show", "order", "Show an order with its items", func(cmd *cobra.Command, id int64) error {
		order, err := rt.deps.Console.Order(cmd.Context(), id)
		if err != nil {
			return err
		}
		rt.printOrder(order)
		return nil
	}))

	for _, a := range []struct {
		use, short string
		action     console.Action
		run        func(*console.Console, context.Context, int64) (*models.Order, error)
	}{
		{"accept", "Accept a pending order", console.ActionAccept, (*console.Console).AcceptOrder},
		{"reject", "Reject a pending order", console.ActionReject, (*console.Console).RejectOrder},
		{"start", "Start processing an accepted order", console.ActionStart, (*console.Console).StartOrder},
		{"complete", "Mark an order in progress as completed", console.ActionComplete, (*console.Console).CompleteOrder},
	} {
		cmd.AddCommand(actionCommand(rt, a.use, "order", a.short, func(cmd *cobra.Command, id int64) error {
			order, err := rt.deps.Console.Order(cmd.Context(), id)
			if err != nil {
				return err
			}
			if err := checkStatus(console.OrderControls(order.Status, ownerCapabilities), a.action, "an order", string(order.Status)); err != nil {
				return err
			}
			_, err = a.run(rt.deps.Console, cmd.Context(), id)
			return err
		}))
	}

	cmd.AddCommand(actionCommand(rt, "chat", "order", "Open the chat with the order's consumer", func(cmd *cobra.Command, id int64) error {
		order, err := rt.deps.Console.Order(cmd.Context(), id)
		if err != nil {
			return err
		}
		return rt.openChat(cmd.Context(), order.ConsumerID)
	}))
	return cmd
}

func (rt *runtime) printOrder(o *models.Order) {
	fmt.Fprintln(rt.out, rt.styles.Title.Render(o.Number()))
	printFields(rt.out, rt.styles,
		"Consumer", o.ConsumerName(),
		"Status", rt.styles.Status(string(o.Status)),
		"Total", formatKZT(o.Total()),
		"Placed", formatDate(o.CreatedAt),
	)

	rows := make([][]string, 0, len(o.Items))
	for _, item := range o.Items {
		name := fmt.Sprintf("Product #%d", item.ProductID)
		if item.Product != nil && item.Product.Name != "" {
			name = item.Product.Name
		}
		rows = append(rows, []string{name, strconv.Itoa(item.Quantity), item.UnitPriceKZT.String()})
	}
	rt.printTable("Items", []string{"Product", "Qty", "Unit price"}, rows, "No items")
	fmt.Fprintf(rt.out, "Actions: %s\n", controlLabels(console.OrderControls(o.Status, rt.deps.Console.Capabilities())))
}
