// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/streampulse/pulse/internal/contract"
	"github.com/streampulse/pulse/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteTrend prints a trend result using the configured output format.
func (ow *OutWriter) WriteTrend(result *schema.TrendResult, cfg *contract.Config, duration time.Duration) error {
	return PrintTrendResults(result, cfg, duration)
}

// WriteCompare prints a comparison result using the configured output format.
func (ow *OutWriter) WriteCompare(result *schema.CompareResult, cfg *contract.Config, duration time.Duration) error {
	return PrintCompareResults(result, cfg, duration)
}

// WriteVolatility prints the ranking views using the configured output format.
func (ow *OutWriter) WriteVolatility(result *schema.VolatilityResult, cfg *contract.Config, duration time.Duration) error {
	return PrintVolatilityResults(result, cfg, duration)
}

// WriteLive prints a live summary using the configured output format.
func (ow *OutWriter) WriteLive(result *schema.LiveResult, cfg *contract.Config, duration time.Duration) error {
	return PrintLiveResults(result, cfg, duration)
}

// WriteEvents prints events and daily leaders using the configured output format.
func (ow *OutWriter) WriteEvents(result *schema.EventsResult, cfg *contract.Config, duration time.Duration) error {
	return PrintEventsResults(result, cfg, duration)
}

// WriteInsights prints kings and flash categories using the configured output format.
func (ow *OutWriter) WriteInsights(result *schema.InsightsResult, cfg *contract.Config, duration time.Duration) error {
	return PrintInsightsResults(result, cfg, duration)
}

// WriteResolve prints a range resolution using the configured output format.
func (ow *OutWriter) WriteResolve(result *schema.ResolveResult, cfg *contract.Config) error {
	return PrintResolveResult(result, cfg)
}
