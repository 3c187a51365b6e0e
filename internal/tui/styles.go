package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/gravityfile/gravityfile/internal/session"
)

// Palette is one theme's set of colors (§4.G "theme dark/light").
type Palette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Danger    lipgloss.Color
	Muted     lipgloss.Color
	Border    lipgloss.Color
	Text      lipgloss.Color
	Bg        lipgloss.Color
}

var darkPalette = Palette{
	Primary:   lipgloss.Color("#7D56F4"),
	Secondary: lipgloss.Color("#5A4FCF"),
	Success:   lipgloss.Color("#73F59F"),
	Warning:   lipgloss.Color("#F5A623"),
	Danger:    lipgloss.Color("#F56565"),
	Muted:     lipgloss.Color("#6B7280"),
	Border:    lipgloss.Color("#3F3F46"),
	Text:      lipgloss.Color("#E4E4E7"),
	Bg:        lipgloss.Color("#1F1F23"),
}

var lightPalette = Palette{
	Primary:   lipgloss.Color("#5A4FCF"),
	Secondary: lipgloss.Color("#7D56F4"),
	Success:   lipgloss.Color("#15803D"),
	Warning:   lipgloss.Color("#B45309"),
	Danger:    lipgloss.Color("#B91C1C"),
	Muted:     lipgloss.Color("#6B7280"),
	Border:    lipgloss.Color("#D4D4D8"),
	Text:      lipgloss.Color("#18181B"),
	Bg:        lipgloss.Color("#FAFAFA"),
}

// PaletteFor resolves a session.Theme to its Palette.
func PaletteFor(t session.Theme) Palette {
	if t == session.ThemeLight {
		return lightPalette
	}
	return darkPalette
}

// Styles bundles the lipgloss styles derived from a Palette; rebuilt
// whenever the active theme changes.
type Styles struct {
	Header       lipgloss.Style
	TabActive    lipgloss.Style
	TabInactive  lipgloss.Style
	Stats        lipgloss.Style
	Panel        lipgloss.Style
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	ItemMarked   lipgloss.Style
	SizeBar      lipgloss.Style
	HelpBar      lipgloss.Style
	HelpKey      lipgloss.Style
	Danger       lipgloss.Style
	Success      lipgloss.Style
	Modal        lipgloss.Style
}

// NewStyles builds a Styles set from p.
func NewStyles(p Palette) Styles {
	return Styles{
		Header:       lipgloss.NewStyle().Background(p.Bg).Padding(0, 1),
		TabActive:    lipgloss.NewStyle().Background(p.Primary).Foreground(lipgloss.Color("#FFFFFF")).Padding(0, 1).Bold(true),
		TabInactive:  lipgloss.NewStyle().Background(p.Border).Foreground(p.Muted).Padding(0, 1),
		Stats:        lipgloss.NewStyle().Foreground(p.Text),
		Panel:        lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border).Padding(0, 1),
		Item:         lipgloss.NewStyle().Foreground(p.Text),
		ItemSelected: lipgloss.NewStyle().Background(p.Primary).Foreground(lipgloss.Color("#FFFFFF")).Bold(true),
		ItemMarked:   lipgloss.NewStyle().Foreground(p.Warning).Bold(true),
		SizeBar:      lipgloss.NewStyle().Foreground(p.Primary),
		HelpBar:      lipgloss.NewStyle().Foreground(p.Muted).Padding(0, 1),
		HelpKey:      lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		Danger:       lipgloss.NewStyle().Foreground(p.Danger),
		Success:      lipgloss.NewStyle().Foreground(p.Success),
		Modal:        lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(p.Primary).Padding(1, 2),
	}
}

// FormatSize renders bytes in human-readable form (§6 "Size strings"),
// using the same library the CLI's report formatters use so the
// interactive and batch surfaces agree on one notion of "readable".
func FormatSize(bytes int64) string {
	if bytes < 0 {
		return "-" + humanize.Bytes(uint64(-bytes))
	}
	return humanize.Bytes(uint64(bytes))
}
