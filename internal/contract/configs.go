package contract

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/streampulse/pulse/core/algo"
	"github.com/streampulse/pulse/internal/logging"
	"github.com/streampulse/pulse/schema"
)

// Default values for configuration.
const (
	DefaultAPIBase          = "http://localhost:8000"
	DefaultPreset           = "24h"
	DefaultPrecision        = 2
	MaxPrecision            = 4
	MaxResultLimit          = 200
	DefaultTimeout          = 10 * time.Second
	DefaultRateInterval     = 100 * time.Millisecond
	DefaultBreakerThreshold = 5
	DefaultCacheTTL         = 10 * time.Minute
	DefaultServeAddr        = ":8080"
	MinPollInterval         = time.Second
)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// LabelsRawInput holds volatility label thresholds from the YAML config file.
type LabelsRawInput struct {
	Steady   *float64 `mapstructure:"steady"`
	Moderate *float64 `mapstructure:"moderate"`
	Volatile *float64 `mapstructure:"volatile"`
}

// Config holds the runtime configuration. This struct is the "final, validated" config.
type Config struct {
	APIBase          string
	Timeout          time.Duration
	RateInterval     time.Duration
	BreakerThreshold uint32

	Preset     schema.Preset
	Range      *schema.DateRange
	Category   string
	Categories []string
	Platforms  []string
	Filter     string

	RankLimit int
	TopLimit  int

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext
	CacheTTL       time.Duration

	Labels LabelThresholds

	LogLevel  string
	LogFormat string

	Every time.Duration // Poll interval; zero runs once
	Addr  string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	APIBase          string `mapstructure:"api-base"`
	Timeout          string `mapstructure:"timeout"`
	RateLimit        string `mapstructure:"rate-limit"`
	BreakerThreshold int    `mapstructure:"breaker-threshold"`
	Preset           string `mapstructure:"preset"`
	Start            string `mapstructure:"start"`
	End              string `mapstructure:"end"`
	Platforms        string `mapstructure:"platforms"`
	Limit            int    `mapstructure:"limit"`
	Top              int    `mapstructure:"top"`
	Precision        int    `mapstructure:"precision"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	CacheBackend     string `mapstructure:"cache-backend"`
	CacheDBConnect   string `mapstructure:"cache-db-connect"`
	CacheTTL         string `mapstructure:"cache-ttl"`
	LogLevel         string `mapstructure:"log-level"`
	LogFormat        string `mapstructure:"log-format"`
	Every            string `mapstructure:"every"`
	LabelsStr        string `mapstructure:"label-thresholds"`

	// --- Fields from subcommand flags ---
	Category   string `mapstructure:"category"`
	Categories string `mapstructure:"categories"`
	Filter     string `mapstructure:"filter"`
	Addr       string `mapstructure:"addr"`

	// --- Label thresholds from config file ---
	Labels LabelsRawInput `mapstructure:"labels"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Range != nil {
		r := *c.Range
		clone.Range = &r
	}
	clone.Categories = slices.Clone(c.Categories)
	clone.Platforms = slices.Clone(c.Platforms)
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processUpstream(cfg, input); err != nil {
		return err
	}
	if err := processRange(cfg, input); err != nil {
		return err
	}
	if err := processSelection(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := processLabelThresholds(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of connection strings
// for the networked backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	case schema.RedisBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.HasPrefix(connStr, "redis://") && !strings.HasPrefix(connStr, "rediss://") {
			return fmt.Errorf("Redis connection string must start with redis:// or rediss://")
		}
	}
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// validateSimpleInputs processes and validates output and logging fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Filter = strings.TrimSpace(input.Filter)

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.RankLimit = input.Limit

	if input.Top <= 0 || input.Top > MaxResultLimit {
		return fmt.Errorf("top must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Top)
	}
	cfg.TopLimit = input.Top

	if input.Precision < 0 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	if input.LogLevel != "" && !logging.ValidLevel(input.LogLevel) {
		return fmt.Errorf("invalid log level '%s'", input.LogLevel)
	}
	cfg.LogLevel = input.LogLevel
	cfg.LogFormat = strings.ToLower(input.LogFormat)
	if cfg.LogFormat != "" && cfg.LogFormat != logging.FormatConsole && cfg.LogFormat != logging.FormatJSON {
		return fmt.Errorf("invalid log format '%s'. must be console or json", input.LogFormat)
	}

	cfg.Every = 0
	if input.Every != "" {
		every, err := time.ParseDuration(input.Every)
		if err != nil {
			return fmt.Errorf("invalid --every value: %w", err)
		}
		if every != 0 && every < MinPollInterval {
			return fmt.Errorf("--every must be at least %s (received %s)", MinPollInterval, every)
		}
		cfg.Every = every
	}

	cfg.Addr = input.Addr
	if cfg.Addr == "" {
		cfg.Addr = DefaultServeAddr
	}
	return nil
}

// processUpstream validates the API base URL and client tuning knobs.
func processUpstream(cfg *Config, input *ConfigRawInput) error {
	base := strings.TrimRight(strings.TrimSpace(input.APIBase), "/")
	if base == "" {
		base = DefaultAPIBase
	}
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid --api-base '%s'. must be an http(s) URL", input.APIBase)
	}
	cfg.APIBase = base

	cfg.Timeout, err = parseDurationOr(input.Timeout, DefaultTimeout)
	if err != nil {
		return fmt.Errorf("invalid --timeout value: %w", err)
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive (received %s)", cfg.Timeout)
	}

	cfg.RateInterval, err = parseDurationOr(input.RateLimit, DefaultRateInterval)
	if err != nil {
		return fmt.Errorf("invalid --rate-limit value: %w", err)
	}
	if cfg.RateInterval < 0 {
		return fmt.Errorf("rate-limit cannot be negative (received %s)", cfg.RateInterval)
	}

	if input.BreakerThreshold <= 0 {
		return fmt.Errorf("breaker-threshold must be greater than 0 (received %d)", input.BreakerThreshold)
	}
	cfg.BreakerThreshold = uint32(input.BreakerThreshold)
	return nil
}

// processRange resolves the preset label and records any explicit range.
// An explicit range is not validated here: an unusable pair falls back to the
// preset when hours are resolved.
func processRange(cfg *Config, input *ConfigRawInput) error {
	label := input.Preset
	if label == "" {
		label = DefaultPreset
	}
	preset, ok := algo.LookupPreset(label)
	if !ok {
		return fmt.Errorf("invalid preset '%s'. must be one of 12h, 24h, 72h, 1D, 7D, 30D or <n>h/<n>d within %d hours", label, schema.MaxRangeHours)
	}
	cfg.Preset = preset

	cfg.Range = nil
	r := schema.DateRange{Start: strings.TrimSpace(input.Start), End: strings.TrimSpace(input.End)}
	if !r.IsZero() {
		cfg.Range = &r
	}
	return nil
}

// processSelection splits category and platform lists.
func processSelection(cfg *Config, input *ConfigRawInput) error {
	cfg.Category = strings.TrimSpace(input.Category)
	cfg.Categories = splitList(input.Categories)

	cfg.Platforms = splitList(input.Platforms)
	if len(cfg.Platforms) == 0 {
		cfg.Platforms = slices.Clone(schema.AllPlatforms)
	}
	return nil
}

// validateBackendConfigs validates cache backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, redis, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	ttl, err := parseDurationOr(input.CacheTTL, DefaultCacheTTL)
	if err != nil {
		return fmt.Errorf("invalid --cache-ttl value: %w", err)
	}
	if ttl <= 0 {
		return fmt.Errorf("cache-ttl must be positive (received %s)", ttl)
	}
	cfg.CacheTTL = ttl
	return nil
}

// processLabelThresholds merges defaults, config file values and the
// --label-thresholds flag, in increasing precedence.
func processLabelThresholds(cfg *Config, input *ConfigRawInput) error {
	th := DefaultLabelThresholds

	if input.Labels.Steady != nil {
		th.Steady = *input.Labels.Steady
	}
	if input.Labels.Moderate != nil {
		th.Moderate = *input.Labels.Moderate
	}
	if input.Labels.Volatile != nil {
		th.Volatile = *input.Labels.Volatile
	}

	if input.LabelsStr != "" {
		parsed, err := parseLabelThresholdsString(input.LabelsStr)
		if err != nil {
			return fmt.Errorf("invalid --label-thresholds format: %w", err)
		}
		for name, v := range parsed {
			switch name {
			case "steady":
				th.Steady = v
			case "moderate":
				th.Moderate = v
			case "volatile":
				th.Volatile = v
			}
		}
	}

	if th.Steady < 0 || th.Steady >= th.Moderate || th.Moderate >= th.Volatile {
		return fmt.Errorf("label thresholds must satisfy 0 <= steady < moderate < volatile (received %.3f, %.3f, %.3f)",
			th.Steady, th.Moderate, th.Volatile)
	}
	cfg.Labels = th
	return nil
}

// parseLabelThresholdsString parses a string like "steady:0.1,moderate:0.3,volatile:0.6".
func parseLabelThresholdsString(s string) (map[string]float64, error) {
	thresholds := make(map[string]float64)

	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		keyValue := strings.Split(part, ":")
		if len(keyValue) != 2 {
			return nil, fmt.Errorf("invalid threshold format '%s', expected 'label:value'", part)
		}

		name := strings.ToLower(strings.TrimSpace(keyValue[0]))
		switch name {
		case "steady", "moderate", "volatile":
		default:
			return nil, fmt.Errorf("invalid label '%s', must be steady, moderate, or volatile", keyValue[0])
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(keyValue[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid threshold value '%s' for label %s: %w", keyValue[1], name, err)
		}
		thresholds[name] = value
	}

	return thresholds, nil
}

// parseDurationOr parses s, returning def when s is empty.
func parseDurationOr(s string, def time.Duration) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}

// splitList splits a comma-separated list, trimming entries and dropping empties.
func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// RequestParams holds per-request overrides from the HTTP API and MCP tools.
// Empty fields and a zero limit keep the base config value.
type RequestParams struct {
	Preset     string
	Start      string
	End        string
	Category   string
	Categories string
	Platform   string
	Filter     string
	Limit      int
}

// RevalidateRequest applies request overrides to a cloned config and validates them.
func RevalidateRequest(cfg *Config, p RequestParams) error {
	if label := strings.TrimSpace(p.Preset); label != "" {
		preset, ok := algo.LookupPreset(label)
		if !ok {
			return fmt.Errorf("invalid preset '%s'", label)
		}
		cfg.Preset = preset
	}

	r := schema.DateRange{Start: strings.TrimSpace(p.Start), End: strings.TrimSpace(p.End)}
	if !r.IsZero() {
		cfg.Range = &r
	}

	if c := strings.TrimSpace(p.Category); c != "" {
		cfg.Category = c
	}
	if cats := splitList(p.Categories); len(cats) > 0 {
		cfg.Categories = cats
	}
	if platform := strings.TrimSpace(p.Platform); platform != "" {
		cfg.Platforms = []string{platform}
	}
	if f := strings.TrimSpace(p.Filter); f != "" {
		cfg.Filter = f
	}

	if p.Limit < 0 || p.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be between 1 and %d (received %d)", MaxResultLimit, p.Limit)
	}
	if p.Limit > 0 {
		cfg.RankLimit = p.Limit
		cfg.TopLimit = p.Limit
	}
	return nil
}
