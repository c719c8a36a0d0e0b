// Package cli is the supplierctl terminal front end. Every command restores
// the stored session before it renders anything.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/supplykz/supplier-console/app"
	"github.com/supplykz/supplier-console/config"
	"github.com/supplykz/supplier-console/console"
	"github.com/supplykz/supplier-console/internal/observability"
	"github.com/supplykz/supplier-console/notify"
	"github.com/supplykz/supplier-console/services"
)

// Options are the global flags
type Options struct {
	APIURL   string
	StateDir string
	LogLevel string
	Yes      bool
}

// runtime is shared by all commands of one invocation
type runtime struct {
	opts   Options
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
	styles Styles

	deps   *app.Dependencies
	logger *zap.Logger
}

// NewRootCommand builds the supplierctl command tree reading prompts from in
func NewRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	rt := &runtime{
		in:     bufio.NewReader(in),
		out:    out,
		errOut: errOut,
		styles: DefaultStyles(),
	}

	root := &cobra.Command{
		Use:   "supplierctl",
		Short: "Supplier console for the supply marketplace",
		Long: `supplierctl is the console for supplier staff: link requests, orders,
complaints, chat, catalog, team and account settings.

Access depends on your role. Owners manage everything, managers run daily
operations and sales representatives handle link requests and chat.

Examples:
  supplierctl login --email owner@example.kz
  supplierctl orders --status pending
  supplierctl orders accept 42`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.setup(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return rt.close(cmd.Context())
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&rt.opts.APIURL, "api-url", "", "backend base URL (overrides SUPPLIER_API_BASE_URL)")
	flags.StringVar(&rt.opts.StateDir, "state-dir", "", "directory holding the saved session (overrides SUPPLIER_STATE_DIR)")
	flags.StringVar(&rt.opts.LogLevel, "log-level", "", "log level: debug, info, warn or error (overrides LOG_LEVEL)")
	flags.BoolVarP(&rt.opts.Yes, "yes", "y", false, "confirm destructive actions without asking")

	root.AddCommand(
		newLoginCommand(rt),
		newSignupCommand(rt),
		newLogoutCommand(rt),
		newWhoamiCommand(rt),
		newResetPasswordCommand(rt),
		newLinksCommand(rt),
		newOrdersCommand(rt),
		newComplaintsCommand(rt),
		newChatCommand(rt),
		newProductsCommand(rt),
		newTeamCommand(rt),
		newSettingsCommand(rt),
		newLanguageCommand(rt),
	)
	return root
}

// Execute runs supplierctl against the process's standard streams
func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx)
}

// ErrorMessage returns the text printed for a failed command
func ErrorMessage(err error) string {
	return services.UserMessage(err)
}

func (rt *runtime) setup(ctx context.Context) error {
	cfg, err := config.New(ctx)
	if err != nil {
		return err
	}
	if rt.opts.APIURL != "" {
		cfg.API.BaseURL = strings.TrimRight(rt.opts.APIURL, "/")
	}
	if rt.opts.StateDir != "" {
		cfg.Storage.Dir = rt.opts.StateDir
	}
	if rt.opts.LogLevel != "" {
		cfg.Observability.LogLevel = rt.opts.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Observability)
	if err != nil {
		return err
	}
	rt.logger = logger

	deps, err := app.NewDependencies(ctx, cfg, logger, app.WithConfirmer(rt))
	if err != nil {
		return err
	}
	rt.deps = deps
	deps.OnToast(rt.renderToast)

	if err := deps.Session.Initialize(ctx); err != nil {
		logger.Warn("could not restore session", zap.Error(err))
	}
	return nil
}

func (rt *runtime) close(ctx context.Context) error {
	if rt.deps == nil {
		return nil
	}
	return rt.deps.Close(ctx)
}

// Confirm asks on the terminal unless --yes was given
func (rt *runtime) Confirm(ctx context.Context, prompt string) (bool, error) {
	if rt.opts.Yes {
		return true, nil
	}
	fmt.Fprintf(rt.errOut, "%s [y/N]: ", rt.styles.Warning.Render(prompt))
	line, err := rt.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func (rt *runtime) readLine() (string, error) {
	line, err := rt.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// prompt reads a value from the terminal when the flag was left empty
func (rt *runtime) prompt(label, value string) (string, error) {
	if value != "" {
		return value, nil
	}
	fmt.Fprintf(rt.errOut, "%s: ", label)
	return rt.readLine()
}

func (rt *runtime) renderToast(t notify.Toast) {
	fmt.Fprintln(rt.out, rt.styles.Toast(t))
}

// requireConsole fails unless a supplier staff member is signed in
func (rt *runtime) requireConsole() error {
	snap := rt.deps.Session.Snapshot()
	switch console.ResolveScreen(snap.State, snap.User) {
	case console.ScreenConsole:
		return nil
	case console.ScreenStaffOnly:
		return services.ErrStaffOnly
	default:
		return services.NewDomainError(services.ErrorTypeUnauthorized,
			"Not signed in. Run supplierctl login first.", services.ErrNotAuthenticated)
	}
}

// consoleRunE wraps a command body that needs the console screen
func (rt *runtime) consoleRunE(run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := rt.requireConsole(); err != nil {
			return err
		}
		return run(cmd, args)
	}
}
