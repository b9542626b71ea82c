// ABOUTME: Tests for time, date, and timezone tool handlers
// ABOUTME: Covers output shapes, date formats, and timezone failures

package tools

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newToolset() *toolset {
	return &toolset{cfg: testConfig()}
}

func TestCurrentTime(t *testing.T) {
	res := newToolset().currentTime(context.Background(), nil)
	require.False(t, res.IsError)

	payload := decodeResult(t, res)
	assert.Regexp(t, regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} UTC$`), payload["utc_time"])
	assert.Regexp(t, regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`), payload["local_time"])

	ts, ok := payload["unix_timestamp"].(float64)
	require.True(t, ok)
	assert.InDelta(t, float64(time.Now().Unix()), ts, 5)

	iso, ok := payload["iso_format"].(string)
	require.True(t, ok)
	_, err := time.Parse(time.RFC3339, iso)
	assert.NoError(t, err)
}

func TestCurrentDate_Formats(t *testing.T) {
	tests := []struct {
		format  string
		pattern string
	}{
		{"iso", `^\d{4}-\d{2}-\d{2}$`},
		{"us", `^\d{2}/\d{2}/\d{4}$`},
		{"european", `^\d{2}/\d{2}/\d{4}$`},
		{"unix", `^\d+$`},
	}

	ts := newToolset()
	for _, tc := range tests {
		t.Run(tc.format, func(t *testing.T) {
			res := ts.currentDate(context.Background(), map[string]any{"format": tc.format})
			require.False(t, res.IsError)

			payload := decodeResult(t, res)
			assert.Regexp(t, regexp.MustCompile(tc.pattern), payload["date"])
			assert.Equal(t, tc.format, payload["format"])
		})
	}
}

func TestCurrentDate_DefaultsToISO(t *testing.T) {
	res := newToolset().currentDate(context.Background(), map[string]any{})
	require.False(t, res.IsError)

	payload := decodeResult(t, res)
	assert.Equal(t, "iso", payload["format"])
	assert.Equal(t, payload["iso_format"], payload["date"])
}

func TestTimezoneInfo(t *testing.T) {
	res := newToolset().timezoneInfo(context.Background(), map[string]any{"timezone": "America/New_York"})
	require.False(t, res.IsError)

	payload := decodeResult(t, res)
	assert.Equal(t, "America/New_York", payload["timezone"])
	assert.Regexp(t, regexp.MustCompile(`^[+-]\d{4}$`), payload["utc_offset"])
	_, ok := payload["is_dst"].(bool)
	assert.True(t, ok)
}

func TestTimezoneInfo_Unknown(t *testing.T) {
	res := newToolset().timezoneInfo(context.Background(), map[string]any{"timezone": "Mars/Olympus"})
	require.True(t, res.IsError)

	payload := decodeResult(t, res)
	assert.Equal(t, "Unknown timezone: Mars/Olympus", payload["error"])
	assert.Contains(t, payload["note"], "America/New_York")
}

func TestTimezoneInfo_DefaultsToUTC(t *testing.T) {
	res := newToolset().timezoneInfo(context.Background(), map[string]any{})
	require.False(t, res.IsError)

	payload := decodeResult(t, res)
	assert.Equal(t, "UTC", payload["timezone"])
	assert.Equal(t, "+0000", payload["utc_offset"])
}
