package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/supplykz/supplier-console/console"
	"github.com/supplykz/supplier-console/services"
	"github.com/supplykz/supplier-console/utils"
)

func newLoginCommand(rt *runtime) *cobra.Command {
	var form utils.LoginForm

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the supplier console",
		Long: `Sign in with your email and password. Missing values are prompted for.

Examples:
  supplierctl login --email owner@example.kz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if form.Email, err = rt.prompt("Email", form.Email); err != nil {
				return err
			}
			if form.Password, err = rt.prompt("Password", form.Password); err != nil {
				return err
			}
			if err := utils.ValidateStruct(form); err != nil {
				return err
			}

			if err := rt.deps.Session.Login(cmd.Context(), form.Email, form.Password); err != nil {
				return err
			}
			return rt.printWelcome()
		},
	}
	cmd.Flags().StringVar(&form.Email, "email", "", "account email")
	cmd.Flags().StringVar(&form.Password, "password", "", "account password")
	return cmd
}

func newSignupCommand(rt *runtime) *cobra.Command {
	var form utils.SignupForm

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new supplier owner account",
		Long: `Register a supplier company and its owner account, then sign in.

Examples:
  supplierctl signup --email owner@example.kz --first-name Aigerim --last-name Bekova --company "Astana Foods"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if form.Password, err = rt.prompt("Password", form.Password); err != nil {
				return err
			}
			form.Normalize()
			if err := utils.ValidateStruct(form); err != nil {
				return err
			}

			if err := rt.deps.Session.Signup(cmd.Context(), services.NewOwnerSignup(form)); err != nil {
				return err
			}
			return rt.printWelcome()
		},
	}
	cmd.Flags().StringVar(&form.Email, "email", "", "owner email")
	cmd.Flags().StringVar(&form.Password, "password", "", "password")
	cmd.Flags().StringVar(&form.FirstName, "first-name", "", "owner first name")
	cmd.Flags().StringVar(&form.LastName, "last-name", "", "owner last name")
	cmd.Flags().StringVar(&form.CompanyName, "company", "", "company name")
	return cmd
}

func (rt *runtime) printWelcome() error {
	snap := rt.deps.Session.Snapshot()
	if console.ResolveScreen(snap.State, snap.User) == console.ScreenStaffOnly {
		fmt.Fprintln(rt.out, rt.styles.Error.Render(console.StaffOnlyMessage))
		return nil
	}
	fmt.Fprintf(rt.out, "Signed in as %s (%s)\n", snap.User.Name, snap.User.Role.DisplayName())
	return nil
}

func newLogoutCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt.deps.Session.Logout()
			fmt.Fprintln(rt.out, "Signed out")
			return nil
		},
	}
}

func newWhoamiCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user and the pages they can open",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := rt.deps.Session.Snapshot()
			switch console.ResolveScreen(snap.State, snap.User) {
			case console.ScreenLogin, console.ScreenLoading:
				fmt.Fprintln(rt.out, "Not signed in")
				return nil
			case console.ScreenStaffOnly:
				fmt.Fprintln(rt.out, rt.styles.Error.Render(console.StaffOnlyMessage))
				return nil
			}

			user := snap.User
			pairs := []string{
				"Name", user.Name,
				"Email", user.Email,
				"Role", user.Role.DisplayName(),
			}
			if exp, ok := rt.deps.Session.AccessTokenExpiry(); ok {
				pairs = append(pairs, "Token expires", exp.Local().Format("Jan 2, 2006 15:04"))
			}
			printFields(rt.out, rt.styles, pairs...)

			fmt.Fprintln(rt.out)
			fmt.Fprintln(rt.out, rt.styles.Title.Render("Pages"))
			for _, page := range console.Navigation(rt.deps.Session.Capabilities()) {
				fmt.Fprintf(rt.out, "  %-14s %s\n", page.Page, page.Title)
			}
			return nil
		},
	}
}

func newResetPasswordCommand(rt *runtime) *cobra.Command {
	var form utils.ResetPasswordForm

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password for an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if form.Email, err = rt.prompt("Email", form.Email); err != nil {
				return err
			}
			if form.NewPassword, err = rt.prompt("New password", form.NewPassword); err != nil {
				return err
			}
			if err := utils.ValidateStruct(form); err != nil {
				return err
			}
			if err := rt.deps.Auth.ResetPassword(cmd.Context(), form.Email, form.NewPassword); err != nil {
				return err
			}
			fmt.Fprintln(rt.out, rt.styles.Success.Render("Password reset successfully. You can now sign in."))
			return nil
		},
	}
	cmd.Flags().StringVar(&form.Email, "email", "", "account email")
	cmd.Flags().StringVar(&form.NewPassword, "new-password", "", "new password")
	return cmd
}

func newLanguageCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:       "language [en|ru]",
		Short:     "Show or change the interface language",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"en", "ru"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(rt.out, rt.deps.Language())
				return nil
			}
			if err := rt.deps.SetLanguage(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(rt.out, "Language set to %s\n", args[0])
			return nil
		},
	}
}

