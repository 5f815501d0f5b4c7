package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/streampulse/pulse/internal/contract"
	"github.com/streampulse/pulse/schema"
)

// PrintResolveResult outputs how a preset and explicit range resolve to hours.
func PrintResolveResult(result *schema.ResolveResult, cfg *contract.Config) error {
	return render(cfg, "range resolution", renderers{
		json:  func(w io.Writer) error { return writeJSON(w, result) },
		csv:   func(w io.Writer) error { return writeCSVResultsForResolve(w, result) },
		table: func(w io.Writer) error { return writeResolveTable(w, result) },
	})
}

func resolveFields(result *schema.ResolveResult) (start, end string) {
	if result.Range != nil {
		return result.Range.Start, result.Range.End
	}
	return "", ""
}

func writeCSVResultsForResolve(w io.Writer, result *schema.ResolveResult) error {
	header := []string{"preset", "preset_hours", "start", "end", "hours", "fell_back", "tick_step"}
	start, end := resolveFields(result)
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		return cw.Write([]string{
			result.Preset.Label,
			strconv.Itoa(result.Preset.Hours),
			start,
			end,
			strconv.Itoa(result.Hours),
			strconv.FormatBool(result.FellBack),
			strconv.Itoa(result.TickStep),
		})
	})
}

func writeResolveTable(w io.Writer, result *schema.ResolveResult) error {
	start, end := resolveFields(result)
	table := newTable(w, "Field", "Value")
	data := [][]string{
		{"Preset", fmt.Sprintf("%s (%dh)", result.Preset.Label, result.Preset.Hours)},
		{"Start", start},
		{"End", end},
		{"Hours", strconv.Itoa(result.Hours)},
		{"Fell back", strconv.FormatBool(result.FellBack)},
		{"Tick step", strconv.Itoa(result.TickStep)},
	}
	return renderTable(table, data)
}
