package helpers

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/doeshing/termnamer/internal/domain"
)

var (
	ColorAccent = lipgloss.Color("#3AA99F")
	ColorGreen  = lipgloss.Color("#879A39")
	ColorOrange = lipgloss.Color("#DA702C")
	ColorRed    = lipgloss.Color("#D14D41")
	ColorDim    = lipgloss.Color("#6F6E69")
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	headerStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(ColorDim)
	okStyle      = lipgloss.NewStyle().Bold(true).Foreground(ColorGreen)
	warnStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorOrange)
	failStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorRed)
)

// Heading renders a section title.
func Heading(title string) string {
	return headingStyle.Render(title)
}

// Dim renders secondary text.
func Dim(text string) string {
	return dimStyle.Render(text)
}

// Table is a header row plus data rows. The first column is left aligned,
// the rest right aligned.
type Table struct {
	Headers []string
	Rows    [][]string
}

// RenderTable lays out t with columns sized by display width, so CJK
// names line up.
func RenderTable(t Table) string {
	cols := len(t.Headers)
	widths := make([]int, cols)
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string, style *lipgloss.Style) {
		parts := make([]string, cols)
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
			if i == 0 {
				cell += pad
			} else {
				cell = pad + cell
			}
			if style != nil {
				cell = style.Render(cell)
			}
			parts[i] = cell
		}
		b.WriteString(strings.TrimRight(strings.Join(parts, "  "), " "))
		b.WriteString("\n")
	}

	writeRow(t.Headers, &headerStyle)
	for _, row := range t.Rows {
		writeRow(row, nil)
	}
	return b.String()
}

// StatusBadge renders a doctor status.
func StatusBadge(status domain.HealthStatus) string {
	label := fmt.Sprintf("[%s]", strings.ToUpper(string(status)))
	switch status {
	case domain.HealthOK:
		return okStyle.Render(label)
	case domain.HealthWarn:
		return warnStyle.Render(label)
	default:
		return failStyle.Render(label)
	}
}

// RenderHealthReport prints one line per check.
func RenderHealthReport(out io.Writer, report domain.HealthReport) {
	for _, check := range report.Checks {
		fmt.Fprintf(out, "%s %s - %s\n", StatusBadge(check.Status), check.Name, check.Details)
	}
}

// Tokens formats a token count with thousands separators.
func Tokens(n int) string {
	return humanize.Comma(int64(n))
}

// PerMillion converts a per-token price into USD per million tokens.
func PerMillion(perToken float64) string {
	return fmt.Sprintf("$%.4g", perToken*1_000_000)
}
