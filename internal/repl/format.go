package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// maxCellWidth truncates long table cells such as summaries.
const maxCellWidth = 64

// Formatter handles output formatting
type Formatter struct {
	out      io.Writer
	useColor bool
}

// NewFormatter creates a new formatter
func NewFormatter(out io.Writer, useColor bool) *Formatter {
	return &Formatter{out: out, useColor: useColor}
}

func (f *Formatter) print(attr color.Attribute, format string, args ...any) {
	if f.useColor {
		color.New(attr).Fprintf(f.out, format, args...)
		return
	}
	fmt.Fprintf(f.out, format, args...)
}

// PrintSuccess prints a success message
func (f *Formatter) PrintSuccess(message string) {
	f.print(color.FgGreen, "✓ %s\n", message)
}

// PrintError prints an error message
func (f *Formatter) PrintError(message string) {
	f.print(color.FgRed, "✗ Error: %s\n", message)
}

// PrintInfo prints an info message
func (f *Formatter) PrintInfo(message string) {
	f.print(color.FgCyan, "ℹ %s\n", message)
}

// PrintText prints tool output as is.
func (f *Formatter) PrintText(text string) {
	fmt.Fprintln(f.out, text)
}

// PrintTable prints an aligned table. Widths are measured in terminal
// cells so wide and combining characters line up.
func (f *Formatter) PrintTable(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	cells := make([][]string, len(rows))
	for r, row := range rows {
		cells[r] = make([]string, len(headers))
		for i := range headers {
			if i >= len(row) {
				continue
			}
			cell := runewidth.Truncate(row[i], maxCellWidth, "…")
			cells[r][i] = cell
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	f.printRow(headers, widths, true)
	sep := make([]string, len(headers))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	f.printRow(sep, widths, false)
	for _, row := range cells {
		f.printRow(row, widths, false)
	}
}

func (f *Formatter) printRow(cells []string, widths []int, header bool) {
	var b strings.Builder
	for i, cell := range cells {
		if i == len(cells)-1 {
			b.WriteString(cell)
			break
		}
		b.WriteString(runewidth.FillRight(cell, widths[i]))
		b.WriteString("  ")
	}
	line := strings.TrimRight(b.String(), " ")
	if header && f.useColor {
		color.New(color.Bold).Fprintln(f.out, line)
		return
	}
	fmt.Fprintln(f.out, line)
}
