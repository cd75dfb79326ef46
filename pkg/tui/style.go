package tui

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/aretw0/notemaster/pkg/core"
)

// UI styles and layout settings
// Color palettes "Blue Moon" (dark) and "Solarized Light" from https://gogh-co.github.io/Gogh/
const (
	toastDuration = 3 * time.Second
	previewLimit  = 40
)

type palette struct {
	fg, bg, muted, accent, tag, ok, danger, selectedFg, selectedBg string
}

var (
	darkPalette = palette{
		fg:         "#ffffff",
		bg:         "#353b52",
		muted:      "#7f8aa8",
		accent:     "#89ddff",
		tag:        "#b9a3eb",
		ok:         "#acfab4",
		danger:     "#e61f44",
		selectedFg: "#353b52",
		selectedBg: "#acfab4",
	}
	lightPalette = palette{
		fg:         "#073642",
		bg:         "#eee8d5",
		muted:      "#93a1a1",
		accent:     "#268bd2",
		tag:        "#6c71c4",
		ok:         "#859900",
		danger:     "#dc322f",
		selectedFg: "#fdf6e3",
		selectedBg: "#268bd2",
	}
)

type styles struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	text     lipgloss.Style
	selected lipgloss.Style
	inactive lipgloss.Style
	muted    lipgloss.Style
	tag      lipgloss.Style
	danger   lipgloss.Style
	toast    lipgloss.Style
	toastErr lipgloss.Style
	footer   lipgloss.Style
	border   lipgloss.Color
}

func newStyles(t core.Theme) styles {
	p := darkPalette
	if t == core.ThemeLight {
		p = lightPalette
	}
	return styles{
		title: lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(p.accent)).
			Background(lipgloss.Color(p.bg)).
			Padding(0, 2).Align(lipgloss.Center),
		subtitle: lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(p.accent)),
		text: lipgloss.NewStyle().Foreground(lipgloss.Color(p.fg)),
		selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.selectedFg)).
			Background(lipgloss.Color(p.selectedBg)),
		inactive: lipgloss.NewStyle().Foreground(lipgloss.Color(p.fg)),
		muted:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)),
		tag:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.tag)),
		danger:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.danger)),
		toast:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.ok)),
		toastErr: lipgloss.NewStyle().Foreground(lipgloss.Color(p.danger)),
		footer:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)),
		border:   lipgloss.Color(p.bg),
	}
}
