package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/zfogg/blogfront/pkg/store/notify"
	"github.com/zfogg/blogfront/pkg/store/ui"
)

// palette is one theme's colours.
type palette struct {
	fg, muted, accent, selected, border lipgloss.Color
	success, failure, warning, info     lipgloss.Color
}

var palettes = map[ui.Theme]palette{
	ui.ThemeLight: {
		fg: "235", muted: "244", accent: "25", selected: "254", border: "250",
		success: "28", failure: "160", warning: "136", info: "31",
	},
	ui.ThemeDark: {
		fg: "252", muted: "243", accent: "214", selected: "237", border: "240",
		success: "34", failure: "203", warning: "220", info: "81",
	},
}

type styles struct {
	title    lipgloss.Style
	text     lipgloss.Style
	muted    lipgloss.Style
	accent   lipgloss.Style
	selected lipgloss.Style
	box      lipgloss.Style
	helpKey  lipgloss.Style
	toasts   map[notify.Kind]lipgloss.Style
}

func stylesFor(theme ui.Theme) styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[ui.ThemeLight]
	}

	toast := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c).
			Foreground(c).
			Padding(0, 1)
	}

	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		text:     lipgloss.NewStyle().Foreground(p.fg),
		muted:    lipgloss.NewStyle().Foreground(p.muted),
		accent:   lipgloss.NewStyle().Foreground(p.accent),
		selected: lipgloss.NewStyle().Background(p.selected).Foreground(p.fg).Bold(true),
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(0, 1),
		helpKey: lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		toasts: map[notify.Kind]lipgloss.Style{
			notify.KindSuccess: toast(p.success),
			notify.KindError:   toast(p.failure),
			notify.KindWarning: toast(p.warning),
			notify.KindInfo:    toast(p.info),
		},
	}
}
