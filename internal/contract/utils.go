package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/streampulse/pulse/core/algo"
	"github.com/streampulse/pulse/internal/logging"
	"github.com/streampulse/pulse/schema"
)

// Volatility label constants.
const (
	SteadyValue   = "Steady"   // Steady value
	ModerateValue = "Moderate" // Moderate value
	VolatileValue = "Volatile" // Volatile value
	ErraticValue  = "Erratic"  // Erratic value
)

// Color variables for console output.
var (
	SteadyColor   = color.New(color.FgCyan)               // calm, informational
	ModerateColor = color.New(color.FgYellow)             // caution, not bold
	VolatileColor = color.New(color.FgMagenta, color.Bold) // strong warning
	ErraticColor  = color.New(color.FgRed, color.Bold)     // danger
)

// LabelThresholds are the upper bounds (exclusive) of the first three labels.
type LabelThresholds struct {
	Steady   float64
	Moderate float64
	Volatile float64
}

// DefaultLabelThresholds is used when no override is configured.
var DefaultLabelThresholds = LabelThresholds{Steady: 0.1, Moderate: 0.3, Volatile: 0.6}

// GetPlainLabel returns a plain text label for a volatility score. This is the
// core logic used for CSV, JSON, and table printing.
func GetPlainLabel(score float64, th LabelThresholds) string {
	switch {
	case score < th.Steady:
		return SteadyValue
	case score < th.Moderate:
		return ModerateValue
	case score < th.Volatile:
		return VolatileValue
	default:
		return ErraticValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
func GetColorLabel(score float64, th LabelThresholds) string {
	text := GetPlainLabel(score, th)

	switch text {
	case SteadyValue:
		return SteadyColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	case VolatileValue:
		return VolatileColor.Sprint(text)
	default:
		return ErraticColor.Sprint(text)
	}
}

// LabelRanked flattens both ranking views for the given platforms and attaches
// a plain volatility label to every entry.
func LabelRanked(views schema.RankingViews, platforms []string, th LabelThresholds) []schema.RankedVolatility {
	ranked := algo.FlattenViews(views, platforms)
	for i := range ranked {
		ranked[i].Label = GetPlainLabel(ranked[i].ScoreValue(), th)
	}
	return ranked
}

// SelectOutputFile returns the file handle for output, or os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	logging.Error().Err(err).Msg(msg)
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message.
func LogWarn(msg string, err error) {
	logging.Warn().Err(err).Msg(msg)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for response caching.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".pulse_cache.db"
	}
	return filepath.Join(homeDir, ".pulse_cache.db")
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and at least one character.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
