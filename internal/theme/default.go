package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"git.lost.host/meutraa/hitsound/internal/game"
	"git.lost.host/meutraa/hitsound/internal/hits"
)

// DefaultTheme colours output when Color is set and prints plain text otherwise
type DefaultTheme struct {
	Color bool
}

var (
	soundColors = map[hits.Sound]lipgloss.Color{
		hits.TapSound:    "#00CCFF", // cyan like a floor note
		hits.ArcTapSound: "#ECECEC", // white like an arctap
		hits.ArcSound:    "#EC1E00", // red
	}
	labelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6A6A6A"))
	diagnosticStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ECC300")).Bold(true)
)

func (t *DefaultTheme) RenderSound(sound hits.Sound, text string) string {
	if !t.Color {
		return text
	}
	col, ok := soundColors[sound]
	if !ok {
		return text
	}
	return lipgloss.NewStyle().Foreground(col).Bold(true).Render(text)
}

func (t *DefaultTheme) RenderDiagnostic(text string) string {
	if !t.Color {
		return text
	}
	return diagnosticStyle.Render(text)
}

func (t *DefaultTheme) label(text string) string {
	if !t.Color {
		return text
	}
	return labelStyle.Render(text)
}

func (t *DefaultTheme) Summary(chart *game.Chart, counts map[hits.Sound]int, cached bool, runs int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %6v\n", t.label("        Taps:"), chart.TapCount)
	fmt.Fprintf(&b, "%s %6v\n", t.label("       Holds:"), chart.HoldCount)
	fmt.Fprintf(&b, "%s %6v\n", t.label("        Arcs:"), chart.ArcCount)
	fmt.Fprintf(&b, "%s %6v\n", t.label("Black curves:"), chart.BlackCurveCount)
	for _, s := range hits.Sounds {
		fmt.Fprintf(&b, "%s %6v\n", t.RenderSound(s, fmt.Sprintf("%13s", string(s)+":")), counts[s])
	}
	if runs > 0 {
		fmt.Fprintf(&b, "%s %6v\n", t.label("        Runs:"), runs)
	}
	if cached {
		b.WriteString(t.label("  (from hit store)") + "\n")
	}
	for _, d := range chart.Diagnostics {
		b.WriteString(t.RenderDiagnostic("warning: "+d.Error()) + "\n")
	}
	return b.String()
}
