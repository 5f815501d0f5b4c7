package algo

import (
	"testing"

	"github.com/streampulse/pulse/schema"
	"github.com/stretchr/testify/assert"
)

var day = schema.Preset{Label: "24h", Hours: 24}

func TestResolveRange(t *testing.T) {
	tests := []struct {
		name     string
		explicit *schema.DateRange
		hours    int
		fellBack bool
	}{
		{"no range", nil, 24, false},
		{"empty range", &schema.DateRange{}, 24, false},
		{"two days", &schema.DateRange{Start: "2024-01-01", End: "2024-01-03"}, 48, false},
		{"end before start", &schema.DateRange{Start: "2024-01-10", End: "2024-01-01"}, 24, true},
		{"equal bounds", &schema.DateRange{Start: "2024-01-01", End: "2024-01-01"}, 24, true},
		{"clamped to max", &schema.DateRange{Start: "2024-01-01", End: "2024-03-01"}, schema.MaxRangeHours, false},
		{"forty-five days clamps to 720", &schema.DateRange{Start: "2024-01-01", End: "2024-02-15"}, 720, false},
		{"partial hour rounds up", &schema.DateRange{Start: "2024-01-01T00:00:00Z", End: "2024-01-01T01:00:01Z"}, 2, false},
		{"sub-hour rounds to one", &schema.DateRange{Start: "2024-01-01T00:00:00Z", End: "2024-01-01T00:00:01Z"}, 1, false},
		{"unparseable start", &schema.DateRange{Start: "yesterday", End: "2024-01-03"}, 24, true},
		{"missing end", &schema.DateRange{Start: "2024-01-01"}, 24, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hours, fellBack := ResolveRange(day, tt.explicit)
			assert.Equal(t, tt.hours, hours)
			assert.Equal(t, tt.fellBack, fellBack)
			assert.Equal(t, tt.hours, ResolveHours(day, tt.explicit))
		})
	}
}

func TestResolveRangeKeepsPresetHours(t *testing.T) {
	// Preset hours are trusted as-is on fallback, even outside the clamp.
	odd := schema.Preset{Label: "odd", Hours: 1000}
	hours, fellBack := ResolveRange(odd, &schema.DateRange{Start: "bad", End: "worse"})
	assert.Equal(t, 1000, hours)
	assert.True(t, fellBack)
}

func FuzzResolveRange(f *testing.F) {
	f.Add("2024-01-01", "2024-01-03")
	f.Add("2024-01-01T10:00:00Z", "2023-01-01T10:00:00Z")
	f.Add("", "")
	f.Fuzz(func(t *testing.T, start, end string) {
		hours, fellBack := ResolveRange(day, &schema.DateRange{Start: start, End: end})
		if fellBack && hours != day.Hours {
			t.Fatalf("fallback returned %d hours", hours)
		}
		if hours < schema.MinRangeHours || hours > schema.MaxRangeHours {
			t.Fatalf("hours %d out of range", hours)
		}
	})
}
