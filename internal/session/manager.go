package session

import (
	"context"

	"github.com/goccy/go-json"

	apperrors "finanzas/internal/errors"
	"finanzas/internal/logger"
)

// Fixed keys.
const (
	ThemeKey          = "fp_theme"
	CurrentSessionKey = "fp_current_session"
)

// Themes.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"

	DefaultTheme = ThemeDark
)

// ValidTheme reports whether t is a known theme.
func ValidTheme(t string) bool {
	return t == ThemeDark || t == ThemeLight
}

// User is the identity remembered for a client.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// State is everything restored for a client on startup.
type State struct {
	Theme string `json:"theme"`
	User  *User  `json:"user"`
}

// Manager reads and writes the fixed session keys.
type Manager struct {
	store Store
}

// NewManager creates a Manager over store.
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Theme returns the client's theme, or DefaultTheme if none is stored.
func (m *Manager) Theme(ctx context.Context, clientID string) (string, error) {
	v, ok, err := m.store.Get(ctx, clientID, ThemeKey)
	if err != nil {
		return "", err
	}
	if !ok || !ValidTheme(v) {
		return DefaultTheme, nil
	}
	return v, nil
}

// SetTheme stores the client's theme.
func (m *Manager) SetTheme(ctx context.Context, clientID, theme string) error {
	if !ValidTheme(theme) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Theme must be 'light' or 'dark'")
	}
	return m.store.Set(ctx, clientID, ThemeKey, theme)
}

// CurrentUser returns the remembered user, or nil when nobody is logged in.
// An unreadable entry counts as logged out.
func (m *Manager) CurrentUser(ctx context.Context, clientID string) (*User, error) {
	v, ok, err := m.store.Get(ctx, clientID, CurrentSessionKey)
	if err != nil || !ok {
		return nil, err
	}
	var u User
	if err := json.Unmarshal([]byte(v), &u); err != nil || u.ID == "" {
		logger.Get().Warnw("Discarding unreadable session entry", "client_id", clientID)
		return nil, nil
	}
	return &u, nil
}

// Login remembers u for the client.
func (m *Manager) Login(ctx context.Context, clientID string, u User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return m.store.Set(ctx, clientID, CurrentSessionKey, string(raw))
}

// Logout forgets the user. The theme is kept.
func (m *Manager) Logout(ctx context.Context, clientID string) error {
	return m.store.Delete(ctx, clientID, CurrentSessionKey)
}

// Restore loads the client's theme and user.
func (m *Manager) Restore(ctx context.Context, clientID string) (State, error) {
	theme, err := m.Theme(ctx, clientID)
	if err != nil {
		return State{}, err
	}
	user, err := m.CurrentUser(ctx, clientID)
	if err != nil {
		return State{}, err
	}
	return State{Theme: theme, User: user}, nil
}
