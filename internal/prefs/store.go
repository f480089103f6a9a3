package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goliatone/go-portfolio/internal/logging"
	"github.com/goliatone/go-portfolio/locale"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

// ErrPathRequired reports a store constructed without a backing file.
var ErrPathRequired = errors.New("prefs: storage path is required")

// Preferences is the process-wide admin UI state: active content
// language and theme name. It replaces the original's ad hoc
// localStorage reads with an explicit load/write lifecycle.
type Preferences struct {
	Language locale.Language `json:"language"`
	Theme    string          `json:"theme"`
}

func defaults() Preferences {
	return Preferences{Language: locale.Vietnamese, Theme: "light"}
}

// Store persists preferences to a JSON file. Every change is written
// through immediately so a restart picks up where the user left off.
type Store struct {
	path   string
	logger interfaces.Logger

	mu    sync.Mutex
	prefs Preferences
}

// NewStore creates a store backed by the supplied file path.
func NewStore(path string, logger interfaces.Logger) (*Store, error) {
	if path == "" {
		return nil, ErrPathRequired
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Store{path: path, logger: logger, prefs: defaults()}, nil
}

// Load reads persisted preferences. A missing file is not an error: the
// defaults stand until the first change is written.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("prefs: read %q: %w", s.path, err)
	}

	var loaded Preferences
	if err := json.Unmarshal(data, &loaded); err != nil {
		// A corrupt file falls back to defaults rather than blocking
		// startup.
		s.logger.Warn("preference file unreadable, using defaults", "path", s.path, "error", err)
		return nil
	}

	if loaded.Language == "" {
		loaded.Language = locale.Vietnamese
	}
	if loaded.Theme == "" {
		loaded.Theme = "light"
	}
	s.prefs = loaded
	return nil
}

// Language returns the active content language.
func (s *Store) Language() locale.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs.Language
}

// Theme returns the active theme name.
func (s *Store) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs.Theme
}

// SetLanguage switches the active language and writes through.
func (s *Store) SetLanguage(lang locale.Language) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.prefs.Language == lang {
		return nil
	}
	s.prefs.Language = lang
	return s.persist()
}

// SetTheme switches the active theme and writes through.
func (s *Store) SetTheme(theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.prefs.Theme == theme {
		return nil
	}
	s.prefs.Theme = theme
	return s.persist()
}

// persist writes the current preferences; caller holds the lock.
func (s *Store) persist() error {
	data, err := json.MarshalIndent(s.prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("prefs: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("prefs: ensure dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("prefs: write %q: %w", s.path, err)
	}
	return nil
}
