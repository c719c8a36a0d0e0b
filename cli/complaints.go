package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/supplykz/supplier-console/console"
	"github.com/supplykz/supplier-console/models"
)

func newComplaintsCommand(rt *runtime) *cobra.Command {
	var (
		page   models.PageRequest
		status string
	)

	cmd := &cobra.Command{
		Use:   "complaints",
		Short: "List consumer complaints",
		Long: `List complaints and handle them. Open complaints can be resolved or
escalated to a manager; escalated complaints can be resolved.

Examples:
  supplierctl complaints --status open
  supplierctl complaints resolve 7 --resolution "Refunded two packs"
  supplierctl complaints escalate 7`,
		Args: cobra.NoArgs,
		RunE: rt.consoleRunE(func(cmd *cobra.Command, args []string) error {
			complaints, err := rt.deps.Console.Complaints(cmd.Context(), page, models.ComplaintStatus(status))
			if err != nil {
				return err
			}

			caps := rt.deps.Console.Capabilities()
			rows := make([][]string, 0, len(complaints.Items))
			for _, c := range complaints.Items {
				rows = append(rows, []string{
					c.Number(),
					c.ConsumerName(),
					c.Subject(),
					rt.styles.Status(string(c.Status)),
					formatDate(c.CreatedAt),
					controlLabels(console.ComplaintControls(c.Status, caps)),
				})
			}
			rt.printTable("Complaints", []string{"Complaint", "Consumer", "Subject", "Status", "Filed", "Actions"}, rows, "No complaints")
			printPageFooter(rt, complaints)
			return nil
		}),
	}
	addPageFlags(cmd, &page)
	cmd.Flags().StringVar(&status, "status", "", "filter by status: open, escalated or resolved")

	cmd.AddCommand(actionCommand(rt, "show", "complaint", "Show a complaint", func(cmd *cobra.Command, id int64) error {
		c, err := rt.deps.Console.Complaint(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Fprintln(rt.out, rt.styles.Title.Render(c.Number()))
		printFields(rt.out, rt.styles,
			"Consumer", c.ConsumerName(),
			"Status", rt.styles.Status(string(c.Status)),
			"Filed", formatDate(c.CreatedAt),
			"Description", c.Description,
			"Resolution", orEmpty(c.Resolution),
		)
		fmt.Fprintf(rt.out, "Actions: %s\n", controlLabels(console.ComplaintControls(c.Status, rt.deps.Console.Capabilities())))
		return nil
	}))

	var resolution string
	resolve := actionCommand(rt, "resolve", "complaint", "Resolve a complaint", func(cmd *cobra.Command, id int64) error {
		c, err := rt.deps.Console.Complaint(cmd.Context(), id)
		if err != nil {
			return err
		}
		if err := checkStatus(console.ComplaintControls(c.Status, ownerCapabilities), console.ActionResolve, "a complaint", string(c.Status)); err != nil {
			return err
		}
		if resolution, err = rt.prompt("Resolution", resolution); err != nil {
			return err
		}
		_, err = rt.deps.Console.ResolveComplaint(cmd.Context(), id, resolution, c.Status == models.ComplaintStatusEscalated)
		return err
	})
	resolve.Flags().StringVar(&resolution, "resolution", "", "how the complaint was resolved")
	cmd.AddCommand(resolve)

	cmd.AddCommand(actionCommand(rt, "escalate", "complaint", "Escalate an open complaint to a manager", func(cmd *cobra.Command, id int64) error {
		c, err := rt.deps.Console.Complaint(cmd.Context(), id)
		if err != nil {
			return err
		}
		if err := checkStatus(console.ComplaintControls(c.Status, ownerCapabilities), console.ActionEscalate, "a complaint", string(c.Status)); err != nil {
			return err
		}
		_, err = rt.deps.Console.EscalateComplaint(cmd.Context(), id)
		return err
	}))

	cmd.AddCommand(actionCommand(rt, "chat", "complaint", "Open the chat with the complaint's consumer", func(cmd *cobra.Command, id int64) error {
		c, err := rt.deps.Console.Complaint(cmd.Context(), id)
		if err != nil {
			return err
		}
		return rt.openChat(cmd.Context(), c.ConsumerID)
	}))
	return cmd
}
