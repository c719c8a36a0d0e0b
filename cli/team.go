package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/supplykz/supplier-console/models"
)

func newTeamCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "List the supplier's staff",
		Long: `List and manage the people working for your company. Owner only.

Examples:
  supplierctl team
  supplierctl team deactivate 3`,
		Args: cobra.NoArgs,
		RunE: rt.consoleRunE(func(cmd *cobra.Command, args []string) error {
			staff, err := rt.deps.Console.Team(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(staff))
			for _, s := range staff {
				state := "active"
				if !s.IsActive {
					state = "inactive"
				}
				rows = append(rows, []string{
					strconv.FormatInt(s.ID, 10),
					s.Name(),
					s.Email,
					teamRoleLabel(s.TeamRole()),
					rt.styles.Status(state),
				})
			}
			rt.printTable("Team", []string{"ID", "Name", "Email", "Role", "State"}, rows, "No staff members")
			return nil
		}),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <email>",
		Short: "Invite a staff member",
		Args:  cobra.ExactArgs(1),
		RunE: rt.consoleRunE(func(cmd *cobra.Command, args []string) error {
			return rt.deps.Console.AddStaff(cmd.Context(), args[0])
		}),
	})
	cmd.AddCommand(actionCommand(rt, "remove", "staff", "Remove a staff member", func(cmd *cobra.Command, id int64) error {
		return rt.deps.Console.RemoveStaff(cmd.Context(), id)
	}))
	cmd.AddCommand(actionCommand(rt, "deactivate", "staff", "Deactivate a staff member", func(cmd *cobra.Command, id int64) error {
		return rt.deps.Console.DeactivateStaff(cmd.Context(), id)
	}))
	return cmd
}

func teamRoleLabel(role models.TeamRole) string {
	switch role {
	case models.TeamRoleManager:
		return "Manager"
	default:
		return "Sales"
	}
}

func printSupplier(rt *runtime, p *models.SupplierProfile) {
	state := "active"
	if !p.IsActive {
		state = "inactive"
	}
	fmt.Fprintln(rt.out, rt.styles.Title.Render(p.CompanyName))
	printFields(rt.out, rt.styles,
		"Description", orEmpty(p.Description),
		"Logo", orEmpty(p.CompanyLogo),
		"State", rt.styles.Status(state),
		"Since", formatDate(p.CreatedAt),
	)
}
