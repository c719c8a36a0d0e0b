package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/supplykz/supplier-console/console"
	"github.com/supplykz/supplier-console/models"
	"github.com/supplykz/supplier-console/permissions"
	"github.com/supplykz/supplier-console/services"
)

// owners hold every capability, so their controls are the ones a status allows at all
var ownerCapabilities = permissions.Resolve(models.RoleSupplierOwner)

func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, services.NewDomainError(services.ErrorTypeValidation,
			fmt.Sprintf("invalid %s id %q", what, arg), services.ErrInvalidInput)
	}
	return id, nil
}

// addPageFlags registers --page and --size on cmd
func addPageFlags(cmd *cobra.Command, page *models.PageRequest) {
	cmd.Flags().IntVar(&page.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&page.Size, "size", 0, "page size (default depends on the list)")
}

// checkStatus fails when no control for action exists in the entity's status
func checkStatus(controls []console.Control, action console.Action, what string, status string) error {
	if _, ok := console.FindControl(controls, action); ok {
		return nil
	}
	return services.NewDomainError(services.ErrorTypeValidation,
		fmt.Sprintf("Cannot %s %s that is %s", action, what, strings.ReplaceAll(status, "_", " ")),
		services.ErrInvalidTransition)
}

func controlLabels(controls []console.Control) string {
	if len(controls) == 0 {
		return "-"
	}
	labels := make([]string, 0, len(controls))
	for _, c := range controls {
		labels = append(labels, c.Label)
	}
	return strings.Join(labels, ", ")
}

// actionCommand builds a subcommand taking the id of one what
func actionCommand(rt *runtime, use, what, short string, run func(cmd *cobra.Command, id int64) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: rt.consoleRunE(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], what)
			if err != nil {
				return err
			}
			return run(cmd, id)
		}),
	}
}
