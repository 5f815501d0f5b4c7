package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/streampulse/pulse/internal/contract"
	"github.com/streampulse/pulse/schema"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		_, _ = fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// renderers holds the per-format writers of one result type. A nil parquet
// writer means the result has no tabular parquet form.
type renderers struct {
	json    func(io.Writer) error
	csv     func(io.Writer) error
	table   func(io.Writer) error
	parquet func(path string) error
}

// render dispatches a result to the writer matching the configured output format.
func render(cfg *contract.Config, what string, r renderers) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, r.json, "Wrote JSON "+what); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, r.csv, "Wrote CSV "+what); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if r.parquet == nil {
			return fmt.Errorf("parquet output is not supported for %s", what)
		}
		if cfg.OutputFile == "" {
			return errors.New("parquet output requires --output-file")
		}
		if err := r.parquet(cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote Parquet %s to %s\n", what, cfg.OutputFile)
	default:
		// Default to human-readable table
		if err := writeWithFile(cfg.OutputFile, r.table, "Wrote "+what); err != nil {
			return fmt.Errorf("error writing %s table output: %w", what, err)
		}
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := writeRows(csvWriter); err != nil {
		return err
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// createFormatter creates the float formatter closure used across multiple output types.
func createFormatter(precision int) func(float64) string {
	return func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}
}

// newTable creates a right-aligned table writing to w.
func newTable(w io.Writer, headers ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	return table
}

// renderTable fills and renders a table.
func renderTable(table *tablewriter.Table, data [][]string) error {
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// fmtOptional formats a nullable float, or returns "-" when it is nil.
func fmtOptional(v *float64, fmtFloat func(float64) string) string {
	if v == nil {
		return "-"
	}
	return fmtFloat(*v)
}

// labelFor picks the colored or plain label for a score.
func labelFor(score float64, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorLabel(score, cfg.Labels)
	}
	return contract.GetPlainLabel(score, cfg.Labels)
}
