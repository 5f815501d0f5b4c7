package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/streampulse/pulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{
			name:     "zero is steady",
			input:    0.0,
			expected: SteadyValue,
		},
		{
			name:     "just before moderate",
			input:    0.099,
			expected: SteadyValue,
		},
		{
			name:     "exactly moderate",
			input:    0.1,
			expected: ModerateValue,
		},
		{
			name:     "exactly volatile",
			input:    0.3,
			expected: VolatileValue,
		},
		{
			name:     "just before erratic",
			input:    0.599,
			expected: VolatileValue,
		},
		{
			name:     "exactly erratic",
			input:    0.6,
			expected: ErraticValue,
		},
		{
			name:     "far above",
			input:    4.2,
			expected: ErraticValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainLabel(tt.input, DefaultLabelThresholds))
		})
	}
}

func TestGetPlainLabelCustomThresholds(t *testing.T) {
	th := LabelThresholds{Steady: 0.5, Moderate: 1, Volatile: 2}
	assert.Equal(t, SteadyValue, GetPlainLabel(0.4, th))
	assert.Equal(t, ModerateValue, GetPlainLabel(0.7, th))
	assert.Equal(t, VolatileValue, GetPlainLabel(1.5, th))
	assert.Equal(t, ErraticValue, GetPlainLabel(2, th))
}

func TestGetColorLabel(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		label string
	}{
		{"steady", 0.05, SteadyValue},
		{"moderate", 0.2, ModerateValue},
		{"volatile", 0.45, VolatileValue},
		{"erratic", 0.9, ErraticValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetColorLabel(tt.score, DefaultLabelThresholds)
			// Should contain the plain label
			assert.Contains(t, result, tt.label)
		})
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "test_output.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestGetCacheDBFilePath(t *testing.T) {
	path := GetCacheDBFilePath()
	assert.NotEmpty(t, path)
	assert.Contains(t, path, ".pulse_cache.db")

	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, homeDir), "path %s should start with home dir %s", path, homeDir)
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    int
		expected string
	}{
		{"short text untouched", "Just Chatting", 20, "Just Chatting"},
		{"long text truncated", "League of Legends", 10, "League ..."},
		{"tiny width untouched", "abcdef", 3, "abcdef"},
		{"multibyte safe", "배틀그라운드 모바일", 6, "배틀그..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateText(tt.text, tt.width))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, v, s)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, v, s)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

// FuzzParseLabelThresholdsString fuzzes the label threshold parser.
func FuzzParseLabelThresholdsString(f *testing.F) {
	seeds := []string{
		"steady:0.1,moderate:0.3,volatile:0.6",
		"steady:1",
		"moderate:",
		":::",
		"",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(_ *testing.T, input string) {
		_, err := parseLabelThresholdsString(input)
		_ = err
	})
}

func TestLabelRanked(t *testing.T) {
	low, high := 0.05, 0.7
	views := schema.RankingViews{
		Stable:        map[string][]schema.VolatilityEntry{"SOOP": {{Platform: "SOOP", Category: "a", Score: &low}}},
		Rollercoaster: map[string][]schema.VolatilityEntry{"SOOP": {{Platform: "SOOP", Category: "b", Score: &high}}},
	}
	ranked := LabelRanked(views, []string{"SOOP"}, DefaultLabelThresholds)
	assert.Len(t, ranked, 2)
	assert.Equal(t, SteadyValue, ranked[0].Label)
	assert.Equal(t, schema.StableView, ranked[0].View)
	assert.Equal(t, ErraticValue, ranked[1].Label)
	assert.Equal(t, 1, ranked[1].Rank)
}
