// Package render writes the attendance report in table, JSON or CSV form.
// Status values arrive as tagged records from the report package; the
// display strings and colors live only here.
package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/sehajsb/rollcall/internal/rollcall/types"
)

// Output selects the report format.
type Output string

const (
	TableOut Output = "table"
	JSONOut  Output = "json"
	CSVOut   Output = "csv"
)

// ParseOutput maps a CLI flag value to an Output, defaulting to the table.
func ParseOutput(s string) (Output, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table":
		return TableOut, nil
	case "json":
		return JSONOut, nil
	case "csv":
		return CSVOut, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json or csv)", s)
	}
}

// PrintReport writes rows to w in the requested format. An empty row set
// renders an explicit no-data message rather than an empty table, so a
// fresh ledger is distinguishable from a rendering bug.
func PrintReport(w io.Writer, rows []types.ReportRow, out Output) error {
	if len(rows) == 0 && out == TableOut {
		fmt.Fprintln(w, "No attendance data recorded yet.")
		return nil
	}

	switch out {
	case JSONOut:
		return writeJSONRows(w, rows)
	case CSVOut:
		return writeCSVRows(w, rows)
	default:
		return writeTable(w, rows)
	}
}

func writeTable(w io.Writer, rows []types.ReportRow) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Name", "Status", "Period", "Observed At", "Confidence"})

	var data [][]string
	for _, r := range rows {
		confidence := ""
		if r.Confidence > 0 {
			confidence = strconv.FormatFloat(r.Confidence*100, 'f', 0, 64) + "%"
		}
		data = append(data, []string{
			r.Identity,
			colorStatus(r.Status),
			r.Period,
			r.ObservedAt,
			confidence,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func colorStatus(status string) string {
	switch {
	case status == "Present":
		return color.New(color.FgGreen).Sprint(status)
	case status == "Absent":
		return color.New(color.FgRed).Sprint(status)
	case strings.HasPrefix(status, "Late"):
		return color.New(color.FgYellow).Sprint(status)
	default:
		return status
	}
}

func writeJSONRows(w io.Writer, rows []types.ReportRow) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(rows); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func writeCSVRows(w io.Writer, rows []types.ReportRow) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	header := []string{"name", "status", "period", "observed_at", "confidence", "late_minutes", "source_id"}
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range rows {
		late := ""
		if r.LateMinutes != nil {
			late = strconv.Itoa(*r.LateMinutes)
		}
		record := []string{
			r.Identity,
			r.Status,
			r.Period,
			r.ObservedAt,
			strconv.FormatFloat(r.Confidence, 'f', 2, 64),
			late,
			r.SourceID,
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	return csvWriter.Error()
}
