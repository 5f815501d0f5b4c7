package schema

import "time"

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the backend for response caching.
	DatabaseBackend string

	// RankingView names one of the two volatility views.
	RankingView string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	RedisBackend      DatabaseBackend = "redis"
	NoneBackend       DatabaseBackend = "none"
)

// Volatility views.
const (
	StableView        RankingView = "stable"
	RollercoasterView RankingView = "rollercoaster"
)

// Known platforms.
const (
	PlatformSOOP  = "SOOP"
	PlatformCHZZK = "CHZZK"
)

// EventCategoryAdoption marks events where streamers moved into a category.
const EventCategoryAdoption = "CATEGORY_ADOPTION"

// Bucketing and range limits.
const (
	BucketWidth   = 5 * time.Minute
	MinRangeHours = 1
	MaxRangeHours = 720
)

// Fan-out and truncation limits.
const (
	RankingLimit         = 20
	MaxCompareCategories = 3
	DailyTopLimit        = 10
	KingLimit            = 20
	CategoryListLimit    = 200
)

// BucketKeyFormat is the fixed-width layout used for every valid bucket key.
// Lexicographic order of keys in this layout equals chronological order.
const BucketKeyFormat = "2006-01-02T15:04:05.000Z"

// AllPlatforms lists the platforms in display order.
var AllPlatforms = []string{PlatformSOOP, PlatformCHZZK}

// RealtimePresets are the quick ranges offered next to live data.
var RealtimePresets = []Preset{
	{Label: "12h", Hours: 12},
	{Label: "24h", Hours: 24},
	{Label: "72h", Hours: 72},
}

// TrendPresets are the longer ranges offered on the comparison view.
var TrendPresets = []Preset{
	{Label: "1D", Hours: 24},
	{Label: "7D", Hours: 168},
	{Label: "30D", Hours: 720},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid cache backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	RedisBackend:      {},
	NoneBackend:       {},
}
