// Package theme manages the UI color theme: palette definitions loaded from
// embedded YAML, the persisted current selection, and the fixed cycle order.
// The manager is constructed per screen/session scope with an injected store;
// there is no process-wide mutable theme.
package theme

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"tianya/internal/data/embedded"
	"tianya/internal/logger"
	"tianya/internal/store"
	"tianya/pkg/meettypes"
)

// Theme holds the resolved styles for one palette.
type Theme struct {
	Name            string
	Gradient        []lipgloss.Color
	Text            lipgloss.Style
	Accent          lipgloss.Style
	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
}

// Manager tracks the current theme selection and persists it in the store.
type Manager struct {
	store   store.Store
	themes  map[string]*Theme
	order   []string
	current string
}

// NewManager creates a theme manager with palettes loaded from the embedded
// YAML. A palette file that fails to parse leaves the manager with a single
// plain fallback theme rather than failing construction.
func NewManager(st store.Store) *Manager {
	m := &Manager{
		store:  st,
		themes: make(map[string]*Theme),
	}
	m.loadPalettes()
	return m
}

// loadPalettes parses the embedded palette YAML into themes, in declared order.
func (m *Manager) loadPalettes() {
	var file meettypes.PaletteFile
	if err := yaml.Unmarshal(embedded.PaletteData, &file); err != nil {
		logger.Error("Failed to load embedded palettes", "error", err)
	}

	for _, config := range file.Palettes {
		if config.Name == "" {
			continue
		}
		m.themes[config.Name] = buildTheme(config)
		m.order = append(m.order, config.Name)
	}

	if len(m.order) == 0 {
		// Fallback so Current never returns nil.
		m.themes["plain"] = &Theme{Name: "plain"}
		m.order = []string{"plain"}
	}

	m.current = m.order[0]
}

// buildTheme converts a palette config into lipgloss styles.
func buildTheme(config meettypes.PaletteConfig) *Theme {
	theme := &Theme{
		Name:   config.Name,
		Text:   lipgloss.NewStyle().Foreground(lipgloss.Color(config.Text)),
		Accent: lipgloss.NewStyle().Foreground(lipgloss.Color(config.Accent)).Bold(true),
		UserBubble: lipgloss.NewStyle().
			Background(lipgloss.Color(config.UserBubble)).
			Foreground(lipgloss.Color(config.Text)).
			Padding(0, 1),
		AssistantBubble: lipgloss.NewStyle().
			Background(lipgloss.Color(config.AssistantBubble)).
			Foreground(lipgloss.Color(config.Text)).
			Padding(0, 1),
	}
	for _, stop := range config.Gradient {
		theme.Gradient = append(theme.Gradient, lipgloss.Color(stop))
	}
	return theme
}

// Load reads the persisted selection from the store. An absent value, a store
// failure, or an unknown theme name all leave the default selection in place.
func (m *Manager) Load(ctx context.Context) {
	name, ok, err := m.store.Get(ctx, store.ThemeKey)
	if err != nil {
		logger.Warn("Failed to load theme selection", "error", err)
		return
	}
	if !ok {
		return
	}
	if _, known := m.themes[name]; !known {
		logger.Debug("Stored theme is unknown, keeping default", "theme", name)
		return
	}
	m.current = name
}

// Cycle advances to the next theme in declared order and persists the new
// selection. A persist failure is logged; the in-memory selection still
// advances so the UI reflects the user action.
func (m *Manager) Cycle(ctx context.Context) *Theme {
	next := m.order[0]
	for i, name := range m.order {
		if name == m.current {
			next = m.order[(i+1)%len(m.order)]
			break
		}
	}
	m.current = next

	if err := m.store.Set(ctx, store.ThemeKey, next); err != nil {
		logger.Warn("Failed to persist theme selection", "theme", next, "error", err)
	}
	return m.Current()
}

// Current returns the selected theme, never nil.
func (m *Manager) Current() *Theme {
	if theme, ok := m.themes[m.current]; ok {
		return theme
	}
	return m.themes[m.order[0]]
}

// Names returns the available theme names in cycle order.
func (m *Manager) Names() []string {
	names := make([]string, len(m.order))
	copy(names, m.order)
	return names
}

// Select sets the current theme by name and persists it.
func (m *Manager) Select(ctx context.Context, name string) error {
	if _, known := m.themes[name]; !known {
		return fmt.Errorf("unknown theme %q", name)
	}
	m.current = name
	if err := m.store.Set(ctx, store.ThemeKey, name); err != nil {
		return fmt.Errorf("failed to persist theme selection: %w", err)
	}
	return nil
}
