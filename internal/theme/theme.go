// Package theme resolves, toggles and persists the light/dark display mode.
package theme

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"nova-chat/internal/preferences"
)

type Mode string

const (
	Dark  Mode = "dark"
	Light Mode = "light"
)

// StorageKey is the preference key holding the persisted Mode.
const StorageKey = "theme"

// SystemPrefersDark reports whether the terminal background is dark.
func SystemPrefersDark() bool {
	return lipgloss.HasDarkBackground()
}

// Manager owns the current Mode. Every change is written back to the store.
type Manager struct {
	mu          sync.Mutex
	store       preferences.Store
	prefersDark func() bool
	mode        Mode
}

func NewManager(store preferences.Store, prefersDark func() bool) *Manager {
	if prefersDark == nil {
		prefersDark = SystemPrefersDark
	}
	return &Manager{store: store, prefersDark: prefersDark, mode: Light}
}

// Load picks the stored mode when it is "dark", falls back to the system preference when nothing or an empty value
// is stored, and otherwise uses light. The resolved mode is persisted straight away.
func (m *Manager) Load(ctx context.Context) (Mode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok, err := m.store.Get(ctx, StorageKey)
	if err != nil {
		// Unreadable storage behaves like empty storage.
		ok = false
	}

	switch {
	case ok && Mode(stored) == Dark:
		m.mode = Dark
	case (!ok || stored == "") && m.prefersDark():
		m.mode = Dark
	default:
		m.mode = Light
	}

	if setErr := m.store.Set(ctx, StorageKey, string(m.mode)); setErr != nil && err == nil {
		err = setErr
	}
	if err != nil {
		return m.mode, fmt.Errorf("theme preference: %w", err)
	}
	return m.mode, nil
}

func (m *Manager) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

func (m *Manager) IsDark() bool {
	return m.Mode() == Dark
}

// Toggle flips the mode and persists it. The in-memory mode changes even when persisting fails.
func (m *Manager) Toggle(ctx context.Context) (Mode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.mode == Dark {
		m.mode = Light
	} else {
		m.mode = Dark
	}
	if err := m.store.Set(ctx, StorageKey, string(m.mode)); err != nil {
		return m.mode, fmt.Errorf("theme preference: %w", err)
	}
	return m.mode, nil
}
