package portfolio

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-portfolio/locale"
)

// LoggingConfig selects and tunes the logging provider.
type LoggingConfig struct {
	// Provider is "noop" or "gologger".
	Provider  string
	Level     string
	Format    string
	AddSource bool
}

// Config captures everything the module needs to talk to a portfolio
// backend.
type Config struct {
	// BaseURL is the backend origin, e.g. http://api.example.com.
	BaseURL string
	// AssetBase prefixes relative image paths; defaults to BaseURL.
	AssetBase string
	// DefaultLanguage is the language used when no preference is stored.
	DefaultLanguage locale.Language
	// HTTPTimeout bounds every backend request.
	HTTPTimeout time.Duration
	// PrefsPath, when set, enables the persisted UI preference store.
	PrefsPath string
	Logging   LoggingConfig
}

// DefaultConfig returns the baseline configuration: Vietnamese-first
// content, 30s request timeout, no-op logging.
func DefaultConfig() Config {
	return Config{
		DefaultLanguage: locale.Vietnamese,
		HTTPTimeout:     30 * time.Second,
		Logging:         LoggingConfig{Provider: "noop"},
	}
}

// Validate reports configuration problems before any service is wired.
func (c Config) Validate() error {
	errs := validation.Errors{}

	if c.BaseURL == "" {
		errs["base_url"] = validation.NewError(
			"portfolio.config.base_url_required",
			"backend base URL is required",
		)
	}

	switch c.Logging.Provider {
	case "", "noop", "gologger":
	default:
		errs["logging.provider"] = validation.NewError(
			"portfolio.config.logging_provider_unknown",
			"logging provider must be noop or gologger",
		)
	}

	switch c.Logging.Format {
	case "", "json", "console", "pretty":
	default:
		errs["logging.format"] = validation.NewError(
			"portfolio.config.logging_format_invalid",
			"logging format must be json, console, or pretty",
		)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
