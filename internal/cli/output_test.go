package cli

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTerminal(t *testing.T) {
	// A regular file is never a terminal
	f, err := os.CreateTemp("", "test")
	if err != nil {
		t.Skip("cannot create temp file")
	}
	defer os.Remove(f.Name())
	defer f.Close()

	assert.False(t, IsTerminal(f), "temp file should not be a terminal")

	var buf bytes.Buffer
	assert.False(t, IsTerminal(&buf), "bytes.Buffer should not be a terminal")
}

func TestColorFunctions(t *testing.T) {
	SetColorEnabled(true)
	defer SetColorEnabled(false)

	assert.Equal(t, "\033[32mtest\033[0m", Green("test"))
	assert.Equal(t, "\033[31mtest\033[0m", Red("test"))
	assert.Equal(t, "\033[33mtest\033[0m", Yellow("test"))
	assert.Equal(t, "\033[90mtest\033[0m", Gray("test"))
	assert.True(t, ColorEnabled())

	SetColorEnabled(false)
	assert.False(t, ColorEnabled())
	assert.Equal(t, "test", Green("test"))
	assert.Equal(t, "test", Red("test"))
	assert.Equal(t, "test", Yellow("test"))
	assert.Equal(t, "test", Gray("test"))
}

func TestFormatScore(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{30.6, "30.6"},
		{24, "24"},
		{0, "0"},
		{0.1 + 0.2, "0.3"},
		{13.1234, "13.123"},
		{-1, "-1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatScore(tt.score))
	}
}

func TestTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewTable().Render(&buf)
	assert.Equal(t, "", buf.String())
}

func TestTableColumnAlignment(t *testing.T) {
	table := NewTable()
	table.AddRow("example", "6", "Four pairs")
	table.AddRow("march", "12", "Quarterly run")
	table.AddRow("a", "140", "Pilot")

	var buf bytes.Buffer
	table.Render(&buf)

	expected := "example  6    Four pairs\n" +
		"march    12   Quarterly run\n" +
		"a        140  Pilot\n"
	assert.Equal(t, expected, buf.String())
	assert.Equal(t, 3, table.Len())
}

func TestTableHeaderAndRightAlign(t *testing.T) {
	SetColorEnabled(false)

	table := NewTable("RANK", "SCORE", "ROUNDS")
	table.AlignRight(1)
	table.AddRow("1", "30.6", "1")
	table.AddRow("2", "4.25", "2")

	var buf bytes.Buffer
	table.Render(&buf)

	expected := "RANK  SCORE  ROUNDS\n" +
		"1      30.6  1\n" +
		"2      4.25  2\n"
	assert.Equal(t, expected, buf.String())
	assert.Equal(t, 2, table.Len())
}

func TestTableWithColoredText(t *testing.T) {
	SetColorEnabled(true)
	defer SetColorEnabled(false)

	table := NewTable()
	table.AddRow("example", Green("solved"), "x")
	table.AddRow("march", Yellow("unsolved"), "y")

	var buf bytes.Buffer
	table.Render(&buf)

	// Padding is computed on visible width
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, visibleWidth(lines[0]), visibleWidth(lines[1]))
}

func TestVisibleWidth(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"hello", 5},
		{"", 0},
		{"\033[32mhello\033[0m", 5},
		{"\033[31m\033[0m", 0},
		{"a\033[32mb\033[0mc", 3},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, visibleWidth(tt.input))
		})
	}
}

func TestTruncatePlainText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"no truncation needed", "hello", 10, "hello"},
		{"exact fit", "hello", 5, "hello"},
		{"truncated", "hello world", 8, "hello..."},
		{"very short max", "hello world", 3, "..."},
		{"max 1", "hello", 1, "h"},
		{"max 0", "hello", 0, ""},
		{"empty string", "", 10, ""},
		{"long description", strings.Repeat("x", 100), 20, strings.Repeat("x", 17) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.maxWidth)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, visibleWidth(got), tt.maxWidth)
		})
	}
}

func TestTruncateWithANSI(t *testing.T) {
	SetColorEnabled(true)
	defer SetColorEnabled(false)

	got := Truncate(Green("hello world"), 8)
	assert.Equal(t, 8, visibleWidth(got))
	assert.Contains(t, got, "...")
	assert.True(t, strings.HasSuffix(got, colorReset), "should end with ANSI reset")

	short := Green("hi")
	assert.Equal(t, short, Truncate(short, 10))
}

func TestTableSetMaxWidth(t *testing.T) {
	table := NewTable()
	table.SetMaxWidth(1, 10)

	table.AddRow("example", strings.Repeat("x", 100), "end")
	table.AddRow("march", "short", "end")

	var buf bytes.Buffer
	table.Render(&buf)

	output := buf.String()
	assert.Contains(t, output, "...")
	assert.NotContains(t, output, strings.Repeat("x", 11))
	lines := strings.Split(strings.TrimSpace(output), "\n")
	assert.Len(t, lines, 2)
	for _, line := range lines {
		assert.True(t, strings.HasSuffix(line, "end"))
	}
	assert.Equal(t, strings.Index(lines[0], "end"), strings.Index(lines[1], "end"))
}

func TestTableUnevenRows(t *testing.T) {
	table := NewTable()
	table.AddRow("a", "b", "c")
	table.AddRow("d", "e")

	var buf bytes.Buffer
	table.Render(&buf)

	assert.Equal(t, "a  b  c\nd  e\n", buf.String())
}
