package widget

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// cellPoints approximates how many layout points one terminal row or
// column stands for.
const cellPoints = 8

// TerminalRenderer draws the layout as a boxed card on a terminal.
type TerminalRenderer struct {
	Out io.Writer
	// Width is the card width in layout points (columns = Width/8).
	Width int
}

func (r TerminalRenderer) Render(_ context.Context, l Layout, mode Mode) error {
	if r.Out == nil {
		return fmt.Errorf("widget: terminal renderer has no output")
	}
	_, err := io.WriteString(r.Out, r.String(l)+"\n")
	return err
}

// String renders l without writing it.
func (r TerminalRenderer) String(l Layout) string {
	out := r.Out
	if out == nil {
		out = io.Discard
	}
	re := lipgloss.NewRenderer(out)

	cols := r.Width / cellPoints
	if cols < 24 {
		cols = 24
	}
	pad := l.Padding / cellPoints
	inner := cols - 2*pad

	lines := make([]string, 0, len(l.Items))
	for _, it := range l.Items {
		switch it.Kind {
		case KindSpacer:
			if n := (it.Size + cellPoints/2) / cellPoints; n > 0 {
				lines = append(lines, strings.Repeat("\n", n-1))
			}
		case KindText:
			st := re.NewStyle().
				Width(inner).
				Bold(it.Style.Bold).
				Foreground(lipgloss.Color(it.Style.Color))
			if it.Style.Align == AlignLeft {
				st = st.Align(lipgloss.Left)
			} else {
				st = st.Align(lipgloss.Center)
			}
			lines = append(lines, st.Render(it.Text))
		}
	}

	card := re.NewStyle().
		Background(lipgloss.Color(l.Background)).
		Padding(pad/2, pad).
		Border(lipgloss.RoundedBorder())

	return card.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}
