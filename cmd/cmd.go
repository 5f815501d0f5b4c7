// Package cmd defines the command-line interface for pulse.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/streampulse/pulse/internal/contract"
	"github.com/streampulse/pulse/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(volatilityCmd)
	rootCmd.AddCommand(liveCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("api-base", contract.DefaultAPIBase, "Base URL of the dashboard API")
	rootCmd.PersistentFlags().String("timeout", contract.DefaultTimeout.String(), "HTTP timeout for upstream requests")
	rootCmd.PersistentFlags().String("rate-limit", contract.DefaultRateInterval.String(), "Minimum interval between upstream requests")
	rootCmd.PersistentFlags().Int("breaker-threshold", contract.DefaultBreakerThreshold, "Consecutive upstream failures before requests are short-circuited")
	rootCmd.PersistentFlags().String("preset", contract.DefaultPreset, "Range preset: 12h, 24h, 72h, 1D, 7D, 30D or <n>h/<n>d")
	rootCmd.PersistentFlags().String("start", "", "Explicit range start (YYYY-MM-DD or ISO-8601)")
	rootCmd.PersistentFlags().String("end", "", "Explicit range end (YYYY-MM-DD or ISO-8601)")
	rootCmd.PersistentFlags().String("platforms", "", "Comma-separated platforms (default SOOP,CHZZK)")
	rootCmd.PersistentFlags().IntP("limit", "l", schema.RankingLimit, "Entries per ranking view and platform")
	rootCmd.PersistentFlags().Int("top", schema.DailyTopLimit, "Daily leaders shown per platform")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("label-thresholds", "", "Volatility label bounds (format: 'steady:0.1,moderate:0.3,volatile:0.6')")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or redis or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Connection string for mysql/postgresql/redis (e.g., redis://localhost:6379/0)")
	rootCmd.PersistentFlags().String("cache-ttl", contract.DefaultCacheTTL.String(), "How long cached upstream responses stay fresh")
	rootCmd.PersistentFlags().String("every", "", "Re-run the command at this interval until interrupted (e.g., 30s)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: trace, debug, info, warn, error, disabled")
	rootCmd.PersistentFlags().String("log-format", "console", "Log format: console or json")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	trendCmd.Flags().String("category", "", "Category to chart (default: first live category)")
	if err := viper.BindPFlags(trendCmd.Flags()); err != nil {
		contract.LogFatal("Error binding trend flags", err)
	}

	compareCmd.Flags().String("categories", "", "Comma-separated categories to compare, at most 3 (default: first three live categories)")
	if err := viper.BindPFlags(compareCmd.Flags()); err != nil {
		contract.LogFatal("Error binding compare flags", err)
	}

	liveCmd.Flags().StringP("filter", "f", "", "Case-insensitive substring filter for category names")
	if err := viper.BindPFlags(liveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding live flags", err)
	}

	serveCmd.Flags().String("addr", contract.DefaultServeAddr, "Listen address for the HTTP API")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	cacheMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(cacheMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding cache migrate flags", err)
	}
}
