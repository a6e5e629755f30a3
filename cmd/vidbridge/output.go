package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

type severity int

const (
	severityInfo severity = iota
	severityOK
	severityWarn
	severityError
)

var severityLabels = [...]string{"INFO", "OK", "WARN", "ERROR"}

var severityColors = [...]text.Color{text.FgBlue, text.FgGreen, text.FgYellow, text.FgRed}

// report writes sectioned "label: [STATE] detail" output. Colour is only
// applied when the destination is a terminal.
type report struct {
	out      io.Writer
	color    bool
	sections int
}

func newReport(out io.Writer) *report {
	return &report{out: out, color: isTerminal(out)}
}

func (r *report) section(title string) {
	if r.sections > 0 {
		fmt.Fprintln(r.out)
	}
	r.sections++
	heading := "== " + strings.TrimSpace(title) + " =="
	r.emit(text.FgBlue, heading)
	r.emit(text.FgBlue, strings.Repeat("-", len(heading)))
}

func (r *report) entry(label string, sev severity, detail string) {
	state := "[" + severityLabels[sev] + "]"
	if detail != "" {
		state += " " + detail
	}
	r.emit(severityColors[sev], fmt.Sprintf("  %-20s %s", label+":", state))
}

func (r *report) emit(color text.Color, line string) {
	if r.color {
		line = color.Sprint(line)
	}
	fmt.Fprintln(r.out, line)
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// renderTable draws rows under headers. Column indexes listed in right are
// right-aligned; short rows are padded.
func renderTable(headers []string, rows [][]string, right ...int) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(tableRow(headers, len(headers)))
	for _, row := range rows {
		tw.AppendRow(tableRow(row, len(headers)))
	}
	configs := make([]table.ColumnConfig, 0, len(right))
	for _, col := range right {
		configs = append(configs, table.ColumnConfig{Number: col + 1, Align: text.AlignRight, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

func tableRow(cells []string, width int) table.Row {
	row := make(table.Row, width)
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = ""
		}
	}
	return row
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
