package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// colorEnabled tracks whether color output is enabled.
// It is set based on terminal detection but can be overridden.
var colorEnabled = true

func init() {
	// Disable colors if stdout is not a terminal
	colorEnabled = IsTerminal(os.Stdout)
}

// SetColorEnabled allows overriding the color output setting.
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

// ColorEnabled returns whether color output is currently enabled.
func ColorEnabled() bool {
	return colorEnabled
}

// IsTerminal returns true if w is a terminal.
func IsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// Green returns s wrapped in green ANSI codes if colors are enabled.
func Green(s string) string {
	if !colorEnabled {
		return s
	}
	return colorGreen + s + colorReset
}

// Red returns s wrapped in red ANSI codes if colors are enabled.
func Red(s string) string {
	if !colorEnabled {
		return s
	}
	return colorRed + s + colorReset
}

// Yellow returns s wrapped in yellow ANSI codes if colors are enabled.
func Yellow(s string) string {
	if !colorEnabled {
		return s
	}
	return colorYellow + s + colorReset
}

// Gray returns s wrapped in gray ANSI codes if colors are enabled.
func Gray(s string) string {
	if !colorEnabled {
		return s
	}
	return colorGray + s + colorReset
}

// DefaultMaxDescriptionWidth is the default maximum visible width for description columns.
const DefaultMaxDescriptionWidth = 50

// FormatScore renders a matching or transplant score with at most three
// decimals and no trailing zeros.
func FormatScore(score float64) string {
	out := strconv.FormatFloat(score, 'f', 3, 64)
	out = strings.TrimRight(out, "0")
	return strings.TrimSuffix(out, ".")
}

// Table formats columnar output with automatic column width calculation.
type Table struct {
	header    []string
	rows      [][]string
	colWidths []int
	maxWidths map[int]int  // optional per-column max visible width
	right     map[int]bool // columns aligned to the right
}

// NewTable creates a new table. The optional header is rendered first, in gray.
func NewTable(header ...string) *Table {
	t := &Table{}
	if len(header) > 0 {
		t.header = header
		t.grow(header)
	}
	return t
}

// SetMaxWidth sets the maximum visible width for a column.
// Content exceeding the limit is truncated with an ellipsis ("...").
func (t *Table) SetMaxWidth(col, maxWidth int) {
	if t.maxWidths == nil {
		t.maxWidths = make(map[int]int)
	}
	t.maxWidths[col] = maxWidth
}

// AlignRight right-aligns a column, for numbers.
func (t *Table) AlignRight(col int) {
	if t.right == nil {
		t.right = make(map[int]bool)
	}
	t.right[col] = true
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cols ...string) {
	t.grow(cols)
	t.rows = append(t.rows, cols)
}

// Len returns the number of rows, excluding the header.
func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) grow(cols []string) {
	for len(t.colWidths) < len(cols) {
		t.colWidths = append(t.colWidths, 0)
	}

	// Widths count visible characters, excluding ANSI codes
	for i, col := range cols {
		width := visibleWidth(col)
		if maxW, ok := t.maxWidths[i]; ok && width > maxW {
			width = maxW
		}
		if width > t.colWidths[i] {
			t.colWidths[i] = width
		}
	}
}

// Render writes the table to w with columns separated by two spaces.
// Widths capped by SetMaxWidth after rows were added still truncate.
func (t *Table) Render(w io.Writer) {
	if t.header != nil {
		fmt.Fprintln(w, Gray(t.renderRow(t.header)))
	}
	for _, row := range t.rows {
		fmt.Fprintln(w, t.renderRow(row))
	}
}

func (t *Table) renderRow(row []string) string {
	parts := make([]string, 0, len(row))
	for i, col := range row {
		width := t.colWidths[i]
		if maxW, ok := t.maxWidths[i]; ok {
			col = Truncate(col, maxW)
			width = min(width, maxW)
		}
		padding := strings.Repeat(" ", max(0, width-visibleWidth(col)))
		switch {
		case t.right[i]:
			parts = append(parts, padding+col)
		case i < len(t.colWidths)-1:
			parts = append(parts, col+padding)
		default:
			// Last column doesn't need padding
			parts = append(parts, col)
		}
	}
	return strings.Join(parts, "  ")
}

// Truncate returns s truncated to maxWidth visible characters. If s exceeds
// maxWidth, it is cut and "..." is appended (counted within the limit).
// ANSI escape codes are preserved up to the truncation point with a reset appended.
// When maxWidth cannot even fit the ellipsis, s is cut hard.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if visibleWidth(s) <= maxWidth {
		return s
	}

	const ellipsis = "..."
	if maxWidth < len(ellipsis) {
		out, _ := cutVisible(s, maxWidth)
		return out
	}

	out, hasAnsi := cutVisible(s, maxWidth-len(ellipsis))
	out += ellipsis
	if hasAnsi {
		out += colorReset
	}
	return out
}

// cutVisible keeps the first n visible characters of s and every escape
// sequence before the cut.
func cutVisible(s string, n int) (string, bool) {
	var result strings.Builder
	visible := 0
	inEscape := false
	hasAnsi := false

	for _, r := range s {
		if r == '\033' {
			inEscape = true
			hasAnsi = true
			result.WriteRune(r)
			continue
		}
		if inEscape {
			result.WriteRune(r)
			if r == 'm' {
				inEscape = false
			}
			continue
		}
		if visible >= n {
			break
		}
		result.WriteRune(r)
		visible++
	}
	return result.String(), hasAnsi
}

// visibleWidth returns the visible width of s, excluding ANSI escape codes.
func visibleWidth(s string) int {
	width := 0
	inEscape := false

	for _, r := range s {
		if r == '\033' {
			inEscape = true
			continue
		}
		if inEscape {
			if r == 'm' {
				inEscape = false
			}
			continue
		}
		width++
	}

	return width
}
