// Package styles holds the lipgloss palette for the light and dark display modes.
package styles

import "github.com/charmbracelet/lipgloss"

// Pair is one color in both modes. The mode is chosen by the user, so
// lipgloss.AdaptiveColor's background detection is not used here.
type Pair struct {
	Light string
	Dark  string
}

func (p Pair) For(dark bool) lipgloss.Color {
	if dark {
		return lipgloss.Color(p.Dark)
	}
	return lipgloss.Color(p.Light)
}

var (
	Background = Pair{Light: "#F3F4F6", Dark: "#111827"}
	Panel      = Pair{Light: "#FFFFFF", Dark: "#1F2937"}
	Text       = Pair{Light: "#111827", Dark: "#F3F4F6"}
	Muted      = Pair{Light: "#6B7280", Dark: "#9CA3AF"}
	Border     = Pair{Light: "#D1D5DB", Dark: "#4B5563"}
	Accent     = Pair{Light: "#059669", Dark: "#16A34A"}
	Info       = Pair{Light: "#2563EB", Dark: "#60A5FA"}
	Danger     = Pair{Light: "#E11D48", Dark: "#FB7185"}
)

// Theme holds the styled components for one display mode.
type Theme struct {
	IsDark bool

	App      lipgloss.Style
	Sidebar  lipgloss.Style
	Main     lipgloss.Style
	Brand    lipgloss.Style
	Title    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Muted    lipgloss.Style
	Output   lipgloss.Style
	Question lipgloss.Style
	Answer   lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Key      lipgloss.Style
	Help     lipgloss.Style

	// GlamourStyle names the glamour standard style matching this mode.
	GlamourStyle string
}

func New(dark bool) *Theme {
	t := &Theme{IsDark: dark, GlamourStyle: "light"}
	if dark {
		t.GlamourStyle = "dark"
	}

	t.App = lipgloss.NewStyle().
		Background(Background.For(dark)).
		Foreground(Text.For(dark))
	t.Sidebar = lipgloss.NewStyle().
		Background(Panel.For(dark)).
		Foreground(Text.For(dark)).
		Padding(1, 2).
		Width(30)
	t.Main = lipgloss.NewStyle().
		Foreground(Text.For(dark)).
		Padding(1, 2)
	t.Brand = lipgloss.NewStyle().Bold(true).Foreground(Accent.For(dark))
	t.Title = lipgloss.NewStyle().Bold(true).Foreground(Text.For(dark))
	t.Label = lipgloss.NewStyle().Bold(true).Foreground(Text.For(dark))
	t.Value = lipgloss.NewStyle().Foreground(Accent.For(dark))
	t.Muted = lipgloss.NewStyle().Foreground(Muted.For(dark))
	t.Output = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border.For(dark)).
		Padding(0, 1)
	t.Question = lipgloss.NewStyle().Bold(true).Foreground(Text.For(dark))
	t.Answer = lipgloss.NewStyle().Foreground(Muted.For(dark))
	t.Status = lipgloss.NewStyle().Foreground(Info.For(dark))
	t.Error = lipgloss.NewStyle().Foreground(Danger.For(dark))
	t.Key = lipgloss.NewStyle().Bold(true).Foreground(Accent.For(dark))
	t.Help = lipgloss.NewStyle().Foreground(Muted.For(dark))

	return t
}
