package cli

import (
	"github.com/spf13/cobra"

	"github.com/supplykz/supplier-console/models"
)

func newSettingsCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show the supplier account",
		Long: `Show and change the supplier account and your own profile.

Examples:
  supplierctl settings
  supplierctl settings update --company-name "Astana Foods LLP"
  supplierctl settings password`,
		Args: cobra.NoArgs,
		RunE: rt.consoleRunE(func(cmd *cobra.Command, args []string) error {
			profile, err := rt.deps.Console.SupplierProfile(cmd.Context())
			if err != nil {
				return err
			}
			printSupplier(rt, profile)
			return nil
		}),
	}

	var company, description, logo string
	update := &cobra.Command{
		Use:   "update",
		Short: "Change the supplier account",
		Args:  cobra.NoArgs,
		RunE: rt.consoleRunE(func(cmd *cobra.Command, args []string) error {
			var change models.SupplierProfileUpdate
			flags := cmd.Flags()
			if flags.Changed("company-name") {
				change.CompanyName = &company
			}
			if flags.Changed("description") {
				change.Description = &description
			}
			if flags.Changed("logo") {
				change.CompanyLogo = &logo
			}
			profile, err := rt.deps.Console.UpdateSupplierProfile(cmd.Context(), change)
			if err != nil {
				return err
			}
			printSupplier(rt, profile)
			return nil
		}),
	}
	update.Flags().StringVar(&company, "company-name", "", "company name")
	update.Flags().StringVar(&description, "description", "", "company description")
	update.Flags().StringVar(&logo, "logo", "", "company logo URL")
	cmd.AddCommand(update)

	cmd.AddCommand(&cobra.Command{
		Use:   "deactivate",
		Short: "Deactivate the supplier account",
		Args:  cobra.NoArgs,
		RunE: rt.consoleRunE(func(cmd *cobra.Command, args []string) error {
			return rt.deps.Console.DeactivateSupplierAccount(cmd.Context())
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete",
		Short: "Delete the supplier account",
		Args:  cobra.NoArgs,
		RunE: rt.consoleRunE(func(cmd *cobra.Command, args []string) error {
			if err := rt.deps.Console.DeleteSupplierAccount(cmd.Context()); err != nil {
				return err
			}
			rt.deps.Session.Logout()
			return nil
		}),
	})

	cmd.AddCommand(newProfileCommand(rt), newPasswordCommand(rt))
	return cmd
}

func newProfileCommand(rt *runtime) *cobra.Command {
	var first, last, email string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change your own profile",
		Args:  cobra.NoArgs,
		RunE: rt.consoleRunE(func(cmd *cobra.Command, args []string) error {
			var (
				user   *models.UserResponse
				err    error
				change models.UserProfileUpdate
			)
			flags := cmd.Flags()
			if flags.Changed("first-name") {
				change.FirstName = &first
			}
			if flags.Changed("last-name") {
				change.LastName = &last
			}
			if flags.Changed("email") {
				change.Email = &email
			}

			if change == (models.UserProfileUpdate{}) {
				user, err = rt.deps.Console.Profile(cmd.Context())
			} else {
				user, err = rt.deps.Console.UpdateProfile(cmd.Context(), change)
				if err == nil {
					err = rt.deps.Session.RefreshUser(cmd.Context())
				}
			}
			if err != nil {
				return err
			}

			view := models.NewUser(user)
			printFields(rt.out, rt.styles,
				"Name", view.Name,
				"Email", view.Email,
				"Role", view.Role.DisplayName(),
			)
			return nil
		}),
	}
	cmd.Flags().StringVar(&first, "first-name", "", "new first name")
	cmd.Flags().StringVar(&last, "last-name", "", "new last name")
	cmd.Flags().StringVar(&email, "email", "", "new email")
	return cmd
}

func newPasswordCommand(rt *runtime) *cobra.Command {
	var change models.PasswordChange

	cmd := &cobra.Command{
		Use:   "password",
		Short: "Change your password",
		Args:  cobra.NoArgs,
		RunE: rt.consoleRunE(func(cmd *cobra.Command, args []string) error {
			var err error
			if change.CurrentPassword, err = rt.prompt("Current password", change.CurrentPassword); err != nil {
				return err
			}
			if change.NewPassword, err = rt.prompt("New password", change.NewPassword); err != nil {
				return err
			}
			return rt.deps.Console.ChangePassword(cmd.Context(), change)
		}),
	}
	cmd.Flags().StringVar(&change.CurrentPassword, "current", "", "current password")
	cmd.Flags().StringVar(&change.NewPassword, "new", "", "new password")
	return cmd
}
