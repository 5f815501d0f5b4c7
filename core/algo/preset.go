// Package algo has range resolution, tick sampling and ranking logic.
package algo

import (
	"strconv"
	"strings"

	"github.com/streampulse/pulse/schema"
)

// LookupPreset resolves a preset label. Known labels (12h, 24h, 72h, 1D, 7D, 30D)
// match case-insensitively; anything else must look like <n>h or <n>d and fall
// within the allowed hour range.
func LookupPreset(label string) (schema.Preset, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return schema.Preset{}, false
	}
	for _, group := range [][]schema.Preset{schema.RealtimePresets, schema.TrendPresets} {
		for _, p := range group {
			if strings.EqualFold(p.Label, label) {
				return p, true
			}
		}
	}

	lower := strings.ToLower(label)
	unit := lower[len(lower)-1]
	n, err := strconv.Atoi(lower[:len(lower)-1])
	if err != nil || n <= 0 {
		return schema.Preset{}, false
	}
	var hours int
	switch unit {
	case 'h':
		hours = n
	case 'd':
		if n > schema.MaxRangeHours/24 {
			return schema.Preset{}, false
		}
		hours = n * 24
	default:
		return schema.Preset{}, false
	}
	if hours < schema.MinRangeHours || hours > schema.MaxRangeHours {
		return schema.Preset{}, false
	}
	return schema.Preset{Label: label, Hours: hours}, true
}
