// Package styles provides shared lipgloss styles for the CLI, the editor
// TUI and its huh forms.
package styles

import (
	glamouransi "github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Role markers used by the list and the preview canvas.
const (
	MarkerStart  = "▶"
	MarkerTurn   = "◆"
	MarkerFinish = "⚑"
	MarkerAppend = "+"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports, rebuilt by SetTheme.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	DividerStyle       lipgloss.Style
	ErrorStyle         lipgloss.Style
	SuccessStyle       lipgloss.Style

	// Editor list.
	TitleStyle        lipgloss.Style
	RowStyle          lipgloss.Style
	RowSelectedStyle  lipgloss.Style
	AppendRowStyle    lipgloss.Style
	LegDistanceStyle  lipgloss.Style
	ZoneStyle         lipgloss.Style
	SummaryStyle      lipgloss.Style
	ProblemStyle      lipgloss.Style
	ModifiedStyle     lipgloss.Style
	StatusStyle       lipgloss.Style
	PanelStyle        lipgloss.Style
	PanelFocusedStyle lipgloss.Style

	// Preview canvas.
	PreviewPointStyle lipgloss.Style
	PreviewLegStyle   lipgloss.Style
	PreviewLabelStyle lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	CommandHeaderStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	DividerStyle = lipgloss.NewStyle().Foreground(p.Muted)
	ErrorStyle = lipgloss.NewStyle().Foreground(p.Error)
	SuccessStyle = lipgloss.NewStyle().Foreground(p.Success)

	TitleStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true).
		MarginBottom(1)
	RowStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		PaddingLeft(2)
	RowSelectedStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true).
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(p.Primary).
		PaddingLeft(1)
	AppendRowStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Italic(true).
		PaddingLeft(2)
	LegDistanceStyle = lipgloss.NewStyle().Foreground(p.Secondary)
	ZoneStyle = lipgloss.NewStyle().Foreground(p.Muted)
	SummaryStyle = lipgloss.NewStyle().Foreground(p.Foreground).MarginTop(1)
	ProblemStyle = lipgloss.NewStyle().Foreground(p.Warning)
	ModifiedStyle = lipgloss.NewStyle().Foreground(p.Warning).Bold(true)
	StatusStyle = lipgloss.NewStyle().Foreground(p.Error)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Surface).
		Padding(0, 1)
	PanelFocusedStyle = PanelStyle.BorderForeground(p.Primary)

	PreviewPointStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	PreviewLegStyle = lipgloss.NewStyle().Foreground(p.Muted)
	PreviewLabelStyle = lipgloss.NewStyle().Foreground(p.Secondary)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}

// FormTheme returns a huh theme matching the active palette.
func FormTheme() *huh.Theme {
	p := CurrentPalette
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.BorderForeground(p.Primary)
	t.Focused.Title = t.Focused.Title.Foreground(p.Primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(p.Muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(p.Error)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(p.Error)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(p.Secondary)
	t.Focused.Option = t.Focused.Option.Foreground(p.Foreground)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(p.Success)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(p.Background).Background(p.Primary)
	t.Focused.BlurredButton = t.Focused.BlurredButton.Foreground(p.Muted).Background(p.Surface)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(p.Secondary)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(p.Muted)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(p.Secondary)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Title = t.Blurred.Title.Foreground(p.Muted).Bold(false)

	return t
}

// GlamourStyle returns a Glamour style config derived from the active theme.
func GlamourStyle() glamouransi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig
	p := CurrentPalette

	fg := hexPtr(p.Foreground)
	primary := hexPtr(p.Primary)
	secondary := hexPtr(p.Secondary)
	muted := hexPtr(p.Muted)

	cfg.Document.Color = fg
	cfg.Paragraph.Color = fg

	cfg.Heading.Color = primary
	cfg.H1.Color = fg
	cfg.H1.BackgroundColor = hexPtr(p.Surface)
	cfg.H2.Color = primary
	cfg.H3.Color = primary

	cfg.BlockQuote.Color = muted
	cfg.HorizontalRule.Color = muted
	cfg.Code.Color = secondary
	cfg.Table.Color = fg

	return cfg
}

func hexPtr(c lipgloss.Color) *string {
	if c == "" {
		return nil
	}
	s := string(c)
	return &s
}
