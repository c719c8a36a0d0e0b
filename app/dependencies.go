package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/supplykz/supplier-console/client"
	"github.com/supplykz/supplier-console/config"
	"github.com/supplykz/supplier-console/console"
	"github.com/supplykz/supplier-console/notify"
	"github.com/supplykz/supplier-console/services"
	"github.com/supplykz/supplier-console/session"
	"github.com/supplykz/supplier-console/storage"
)

// Dependencies holds every component of the console client.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	Logger *zap.Logger
	Store  storage.Store
	Tokens *storage.TokenStore
	Client *client.Client

	// Services
	Auth *services.AuthService
	Data *services.DataService

	// Session and view layer
	Session *session.Manager
	Toasts  *notify.Bus
	Router  *console.Router
	Console *console.Console

	closers []func()
}

// Option adjusts wiring before components are built
type Option func(*options)

type options struct {
	confirmer  console.Confirmer
	clientOpts []client.Option
}

// WithConfirmer sets how destructive actions are confirmed
func WithConfirmer(c console.Confirmer) Option {
	return func(o *options) {
		o.confirmer = c
	}
}

// WithClientOptions passes extra options to the API client
func WithClientOptions(opts ...client.Option) Option {
	return func(o *options) {
		o.clientOpts = append(o.clientOpts, opts...)
	}
}

// NewDependencies creates and wires up all client dependencies
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts ...Option) (*Dependencies, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initStorage(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	deps.initClient(cfg, o.clientOpts)
	deps.initServices()
	deps.initConsole(o.confirmer)

	logger.Debug("all dependencies initialized",
		zap.String("api", cfg.API.BaseURL),
		zap.String("state", cfg.Storage.Path()))
	return deps, nil
}

// initStorage opens the state file, or an in-memory store when no
// state directory is configured
func (d *Dependencies) initStorage(cfg *config.Config) error {
	path := cfg.Storage.Path()
	if path == "" {
		d.Store = storage.NewMemoryStore()
		d.Logger.Debug("session state kept in memory")
	} else {
		fs, err := storage.NewFileStore(path)
		if err != nil {
			return err
		}
		d.Store = fs
	}
	d.Tokens = storage.NewTokenStore(d.Store, d.Logger.Named("storage"))
	return nil
}

func (d *Dependencies) initClient(cfg *config.Config, extra []client.Option) {
	opts := []client.Option{
		client.WithLogger(d.Logger.Named("client")),
		client.WithSessionExpiredHandler(client.SessionExpiredFunc(d.sessionExpired)),
	}
	opts = append(opts, extra...)

	d.Client = client.New(client.Config{
		BaseURL:    cfg.API.BaseURL,
		ClientType: cfg.API.ClientType,
		Timeout:    cfg.API.Timeout,
	}, d.Tokens, opts...)
}

func (d *Dependencies) initServices() {
	d.Auth = services.NewAuthService(d.Client, d.Logger.Named("auth"))
	d.Data = services.NewDataService(d.Client, d.Logger.Named("data"))
	d.Session = session.NewManager(d.Auth, d.Tokens, d.Logger.Named("session"))
}

func (d *Dependencies) initConsole(confirmer console.Confirmer) {
	d.Toasts = notify.NewBus(d.Logger.Named("notify"))
	d.Router = console.NewRouter(d.Session.Capabilities)
	d.Console = console.New(d.Data, d.Session, confirmer, d.Toasts, d.Router, d.Logger.Named("console"))
}

// sessionExpired runs after the client gave up refreshing. Storage is already
// cleared; the session drops to anonymous and the console returns home.
func (d *Dependencies) sessionExpired(ctx context.Context, cause error) {
	d.Logger.Info("session expired", zap.Error(cause))
	d.Toasts.Error(services.ErrSessionExpired.Message)
	d.Session.Reload()
	d.Router.Reset()
}

// OnToast subscribes h to toasts until Close
func (d *Dependencies) OnToast(h notify.Handler) {
	d.closers = append(d.closers, d.Toasts.Subscribe(h))
}

// Language returns the persisted interface language
func (d *Dependencies) Language() string {
	return d.Tokens.Language(d.Config.Preferences.Language)
}

// SetLanguage persists a supported interface language
func (d *Dependencies) SetLanguage(lang string) error {
	if !config.IsSupportedLanguage(lang) {
		return services.NewDomainError(services.ErrorTypeValidation,
			fmt.Sprintf("unsupported language %q", lang), services.ErrInvalidInput)
	}
	return d.Tokens.SetLanguage(lang)
}

// Close releases subscriptions and flushes the logger
func (d *Dependencies) Close(ctx context.Context) error {
	for _, unsubscribe := range d.closers {
		unsubscribe()
	}
	d.closers = nil

	if d.Logger != nil {
		_ = d.Logger.Sync()
	}
	return nil
}
