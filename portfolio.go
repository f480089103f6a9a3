// Package portfolio administers a bilingual (Vietnamese/English)
// personal-portfolio site whose content lives behind a remote REST
// backend. It normalizes the backend's heterogeneous localized values
// into canonical pairs, drives schema-based edit sessions, and
// serializes drafts back into the wire format the backend expects.
package portfolio

import (
	"context"
	"net/http"

	"github.com/goliatone/go-portfolio/catalog"
	"github.com/goliatone/go-portfolio/internal/api"
	"github.com/goliatone/go-portfolio/internal/importer"
	"github.com/goliatone/go-portfolio/internal/logging"
	"github.com/goliatone/go-portfolio/internal/logging/gologger"
	"github.com/goliatone/go-portfolio/internal/markdown"
	"github.com/goliatone/go-portfolio/internal/prefs"
	"github.com/goliatone/go-portfolio/locale"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

// Client exports the backend persistence adapter.
type Client = api.Client

// ConfirmFunc exports the delete-confirmation callback contract.
type ConfirmFunc = api.ConfirmFunc

// Renderer exports the markdown description renderer.
type Renderer = markdown.Renderer

// Importer exports the markdown seeding service.
type Importer = importer.Importer

// ImportReport exports the per-run import summary.
type ImportReport = importer.Report

// Preferences exports the persisted UI preference store.
type Preferences = prefs.Store

// ErrDeleteNotConfirmed exports the unconfirmed-delete sentinel.
var ErrDeleteNotConfirmed = api.ErrDeleteNotConfirmed

// Module is the top level runtime façade wiring configuration into the
// client, renderer, importer, and preference store.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider
	client   *api.Client
	renderer *markdown.Renderer
	importer *importer.Importer
	prefs    *prefs.Store
}

// Option overrides a collaborator during construction.
type Option func(*moduleOptions)

type moduleOptions struct {
	httpClient *http.Client
	provider   interfaces.LoggerProvider
}

// WithHTTPClient swaps the HTTP client used for backend requests.
func WithHTTPClient(client *http.Client) Option {
	return func(o *moduleOptions) {
		o.httpClient = client
	}
}

// WithLoggerProvider injects a host-supplied logger provider, taking
// precedence over the Logging config section.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(o *moduleOptions) {
		o.provider = provider
	}
}

// New constructs a module from the supplied configuration.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var options moduleOptions
	for _, opt := range opts {
		opt(&options)
	}

	provider := options.provider
	if provider == nil && cfg.Logging.Provider == "gologger" {
		built, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
		})
		if err != nil {
			return nil, err
		}
		provider = built
	}

	httpClient := options.httpClient
	if httpClient == nil && cfg.HTTPTimeout > 0 {
		httpClient = &http.Client{Timeout: cfg.HTTPTimeout}
	}

	client, err := api.New(api.Config{
		BaseURL:    cfg.BaseURL,
		AssetBase:  cfg.AssetBase,
		HTTPClient: httpClient,
		Logger:     logging.APILogger(provider),
	})
	if err != nil {
		return nil, err
	}

	m := &Module{
		cfg:      cfg,
		provider: provider,
		client:   client,
		renderer: markdown.NewRenderer(),
		importer: importer.New(client, logging.ImporterLogger(provider)),
	}

	if cfg.PrefsPath != "" {
		store, err := prefs.NewStore(cfg.PrefsPath, logging.PrefsLogger(provider))
		if err != nil {
			return nil, err
		}
		if err := store.Load(); err != nil {
			return nil, err
		}
		m.prefs = store
	}

	return m, nil
}

// Client returns the configured persistence adapter.
func (m *Module) Client() *Client {
	return m.client
}

// Renderer returns the markdown description renderer.
func (m *Module) Renderer() *Renderer {
	return m.renderer
}

// Importer returns the markdown seeding service.
func (m *Module) Importer() *Importer {
	return m.importer
}

// Preferences returns the persisted preference store, nil when no
// PrefsPath was configured.
func (m *Module) Preferences() *Preferences {
	return m.prefs
}

// Language returns the active content language: the stored preference
// when a store is configured, the configured default otherwise.
func (m *Module) Language() locale.Language {
	if m.prefs != nil {
		return m.prefs.Language()
	}
	if m.cfg.DefaultLanguage != "" {
		return m.cfg.DefaultLanguage
	}
	return locale.Vietnamese
}

// List retrieves the flat entity list for one kind through the module's
// client, decoded into the caller's record type.
func List[T any](ctx context.Context, m *Module, kind catalog.Kind) ([]T, error) {
	return api.List[T](ctx, m.client, kind)
}
