package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title lipgloss.Style
	sub   lipgloss.Style
	curve lipgloss.Style
	label lipgloss.Style
	value lipgloss.Style
	key   lipgloss.Style
	err   lipgloss.Style
	panel lipgloss.Style
	high  lipgloss.Style
	mid   lipgloss.Style
	low   lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title: lipgloss.NewStyle().Bold(true).Foreground(t.Secondary),
		sub:   lipgloss.NewStyle().Foreground(t.Muted),
		curve: lipgloss.NewStyle().Foreground(t.Accent),
		label: lipgloss.NewStyle().Foreground(t.Muted),
		value: lipgloss.NewStyle().Bold(true).Foreground(t.Text),
		key:   lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		err:   lipgloss.NewStyle().Bold(true).Foreground(t.Error),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 2),
		high: lipgloss.NewStyle().Foreground(t.Success),
		mid:  lipgloss.NewStyle().Foreground(t.Warning),
		low:  lipgloss.NewStyle().Foreground(t.Error),
	}
}

// Sparkline renders values as a one-line bar chart sampled to width.
func (s styles) Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		idx = min(max(idx, 0), len(chars)-1)

		c := string(chars[idx])
		switch {
		case norm > 0.7:
			b.WriteString(s.high.Render(c))
		case norm > 0.3:
			b.WriteString(s.mid.Render(c))
		default:
			b.WriteString(s.low.Render(c))
		}
	}
	return b.String()
}

func (s styles) hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(s.key.Render(pairs[i]))
		b.WriteString(s.sub.Render(" " + pairs[i+1] + "  "))
	}
	return b.String()
}
