package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/supplykz/supplier-console/console"
	"github.com/supplykz/supplier-console/models"
	"github.com/supplykz/supplier-console/services"
)

func newLinksCommand(rt *runtime) *cobra.Command {
	var (
		page   models.PageRequest
		status string
	)

	cmd := &cobra.Command{
		Use:   "links",
		Short: "List consumer link requests",
		Long: `List consumers asking to trade with you, and act on their requests.

Examples:
  supplierctl links --status pending
  supplierctl links approve 12
  supplierctl links block 12`,
		Args: cobra.NoArgs,
		RunE: rt.consoleRunE(func(cmd *cobra.Command, args []string) error {
			links, err := rt.deps.Console.Links(cmd.Context(), page, models.LinkStatus(status))
			if err != nil {
				return err
			}

			caps := rt.deps.Console.Capabilities()
			rows := make([][]string, 0, len(links.Items))
			for _, l := range links.Items {
				rows = append(rows, []string{
					strconv.FormatInt(l.ID, 10),
					l.ConsumerName(),
					rt.styles.Status(string(l.Status)),
					formatDate(l.CreatedAt),
					controlLabels(console.LinkControls(l.Status, caps)),
				})
			}
			rt.printTable("Link Requests", []string{"ID", "Consumer", "Status", "Requested", "Actions"}, rows, "No link requests")
			printPageFooter(rt, links)
			return nil
		}),
	}
	addPageFlags(cmd, &page)
	cmd.Flags().StringVar(&status, "status", "", "filter by status: pending, accepted, denied, blocked or unlinked")

	for _, a := range []struct {
		use, short string
		action     console.Action
		run        func(*console.Console, context.Context, int64) (*models.Link, error)
	}{
		{"approve", "Approve a link request", console.ActionApprove, (*console.Console).ApproveLink},
		{"reject", "Reject a link request", console.ActionReject, (*console.Console).RejectLink},
		{"block", "Block a linked consumer", console.ActionBlock, (*console.Console).BlockLink},
		{"unblock", "Unblock a consumer", console.ActionUnblock, (*console.Console).UnblockLink},
		{"unlink", "Unlink a consumer", console.ActionUnlink, (*console.Console).UnlinkConsumer},
	} {
		cmd.AddCommand(actionCommand(rt, a.use, "link", a.short, func(cmd *cobra.Command, id int64) error {
			link, err := rt.findLink(cmd.Context(), id)
			if err != nil {
				return err
			}
			if err := checkStatus(console.LinkControls(link.Status, ownerCapabilities), a.action, "a link", string(link.Status)); err != nil {
				return err
			}
			_, err = a.run(rt.deps.Console, cmd.Context(), id)
			return err
		}))
	}
	return cmd
}

// findLink pages through incoming links looking for id
func (rt *runtime) findLink(ctx context.Context, id int64) (*models.Link, error) {
	req := models.PageRequest{Page: 1, Size: models.MaxPageSize}
	for {
		links, err := rt.deps.Console.Links(ctx, req, "")
		if err != nil {
			return nil, err
		}
		for i := range links.Items {
			if links.Items[i].ID == id {
				return &links.Items[i], nil
			}
		}
		if !links.HasNext() {
			return nil, services.NewDomainError(services.ErrorTypeNotFound, fmt.Sprintf("Link %d not found", id), nil)
		}
		req.Page++
	}
}
