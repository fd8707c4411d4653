// Package theme persists the light or dark preference of the terminal client.
package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog/log"
)

const (
	Light = "light"
	Dark  = "dark"
)

const (
	dirMode  = 0o755
	fileMode = 0o644
)

var ErrUnknownTheme = errors.New("unknown theme")

type preferences struct {
	Theme string `toml:"theme"`
}

// Store reads and writes the preference file. detectDark reports the system
// preference and decides the theme while nothing is stored.
type Store struct {
	path       string
	detectDark func() bool
}

func NewStore(path string, detectDark func() bool) *Store {
	if detectDark == nil {
		detectDark = func() bool { return true }
	}

	return &Store{
		path:       path,
		detectDark: detectDark,
	}
}

// Load returns the stored theme. ok is false when no valid preference exists.
func (s *Store) Load() (theme string, ok bool, err error) {
	prefs := preferences{}

	if _, err = toml.DecodeFile(s.path, &prefs); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}

		return "", false, fmt.Errorf("failed to read preferences: %w", err)
	}

	theme, err = normalize(prefs.Theme)
	if err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("ignoring stored theme")

		return "", false, nil
	}

	return theme, true, nil
}

// Save stores theme, creating the preference file when needed.
func (s *Store) Save(theme string) error {
	theme, err := normalize(theme)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), dirMode); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}

	data, err := toml.Marshal(preferences{Theme: theme})
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	if err := os.WriteFile(s.path, data, fileMode); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}

	return nil
}

// Resolve returns the stored theme, or the system preference when nothing
// usable is stored.
func (s *Store) Resolve() string {
	theme, ok, err := s.Load()
	if err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("ignoring unreadable preferences")
	}

	if ok {
		return theme
	}

	if s.detectDark() {
		return Dark
	}

	return Light
}

// Toggle returns the other theme.
func Toggle(theme string) string {
	if theme == Dark {
		return Light
	}

	return Dark
}

func normalize(theme string) (string, error) {
	switch value := strings.ToLower(strings.TrimSpace(theme)); value {
	case Light, Dark:
		return value, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTheme, theme)
	}
}
