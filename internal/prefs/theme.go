// Package prefs persists the single user preference the dashboard keeps:
// the light/dark theme flag. Read once on startup, written on toggle.
package prefs

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

type ThemeStore struct {
	path string

	mu    sync.Mutex
	theme Theme
}

// NewThemeStore loads the persisted theme, defaulting to light when the
// file is missing or unreadable.
func NewThemeStore(path string) *ThemeStore {
	s := &ThemeStore{path: path, theme: ThemeLight}
	if data, err := os.ReadFile(path); err == nil {
		if t := parseTheme(strings.TrimSpace(string(data))); t != "" {
			s.theme = t
		}
	}
	return s
}

func (s *ThemeStore) Get() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// Set persists the theme. An invalid value is ignored and the current theme
// returned unchanged.
func (s *ThemeStore) Set(value string) Theme {
	t := parseTheme(value)
	if t == "" {
		return s.Get()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = t

	if s.path != "" {
		if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err == nil {
			os.WriteFile(s.path, []byte(t), 0o644)
		}
	}
	return t
}

func parseTheme(value string) Theme {
	switch Theme(value) {
	case ThemeLight, ThemeDark:
		return Theme(value)
	default:
		return ""
	}
}
