package ui

import (
	"fmt"
	"sync"

	"github.com/jonathan/resume-matcher/internal/settings"
)

// Theme is the page color scheme.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// DefaultTheme is used when no preference is stored.
const DefaultTheme = ThemeDark

// ThemeKey is the settings key holding the active theme.
const ThemeKey = "theme"

// LightRootClass is the document-root class that switches the page to light mode.
const LightRootClass = "light"

// ParseTheme returns the theme named by s.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(s) {
	case ThemeDark, ThemeLight:
		return Theme(s), true
	default:
		return "", false
	}
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// ThemeOption configures a ThemeToggle.
type ThemeOption func(*ThemeToggle)

// WithDefaultTheme sets the theme used when the store has no valid value.
func WithDefaultTheme(t Theme) ThemeOption {
	return func(tt *ThemeToggle) {
		if _, ok := ParseTheme(string(t)); ok {
			tt.fallback = t
		}
	}
}

// ThemeToggle tracks the active theme. The store is read once on construction
// and written on every change.
type ThemeToggle struct {
	mu       sync.Mutex
	store    settings.Store
	fallback Theme
	theme    Theme
}

// NewThemeToggle reads the stored theme, falling back to the default when the
// value is missing or unrecognized.
func NewThemeToggle(store settings.Store, opts ...ThemeOption) *ThemeToggle {
	tt := &ThemeToggle{store: store, fallback: DefaultTheme}
	for _, opt := range opts {
		opt(tt)
	}

	tt.theme = tt.fallback
	if raw, ok := store.Get(ThemeKey); ok {
		if t, valid := ParseTheme(raw); valid {
			tt.theme = t
		}
	}
	return tt
}

// Theme returns the active theme.
func (tt *ThemeToggle) Theme() Theme {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	return tt.theme
}

// Toggle switches to the other theme and persists it.
func (tt *ThemeToggle) Toggle() (Theme, error) {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	next := tt.theme.Opposite()
	if err := tt.store.Set(ThemeKey, string(next)); err != nil {
		return tt.theme, fmt.Errorf("failed to persist theme: %w", err)
	}
	tt.theme = next
	return next, nil
}

// Apply makes t the active theme. Applying the active theme again is a no-op.
func (tt *ThemeToggle) Apply(t Theme) error {
	if _, ok := ParseTheme(string(t)); !ok {
		return &ValidationError{Field: "theme", Message: fmt.Sprintf("unknown theme %q", t)}
	}

	tt.mu.Lock()
	defer tt.mu.Unlock()

	if t == tt.theme {
		return nil
	}
	if err := tt.store.Set(ThemeKey, string(t)); err != nil {
		return fmt.Errorf("failed to persist theme: %w", err)
	}
	tt.theme = t
	return nil
}

// RootClass returns the class for the document root: "light" in light mode, "" in dark mode.
func (tt *ThemeToggle) RootClass() string {
	if tt.Theme() == ThemeLight {
		return LightRootClass
	}
	return ""
}

// IsDark reports whether dark mode is active.
func (tt *ThemeToggle) IsDark() bool {
	return tt.Theme() == ThemeDark
}
