// ABOUTME: Time, date, and timezone tool handlers
// ABOUTME: Output layouts match the documented wire formats exactly

package tools

import (
	"context"
	"strconv"
	"time"
	_ "time/tzdata"
)

// toolset carries the configuration shared by the tool handlers.
type toolset struct {
	cfg Config
}

func (ts *toolset) currentTime(_ context.Context, _ map[string]any) Result {
	now := time.Now().UTC()
	local := time.Now()

	return jsonResult(map[string]any{
		"utc_time":       now.Format("2006-01-02 15:04:05") + " UTC",
		"local_time":     local.Format("2006-01-02 15:04:05"),
		"unix_timestamp": now.Unix(),
		"iso_format":     now.Format(time.RFC3339),
	})
}

func (ts *toolset) currentDate(_ context.Context, args map[string]any) Result {
	now := time.Now()
	format := stringArg(args, "format", "iso")

	var date string
	switch format {
	case "us":
		date = now.Format("01/02/2006")
	case "european":
		date = now.Format("02/01/2006")
	case "unix":
		date = strconv.FormatInt(now.Unix(), 10)
	default: // iso
		date = now.Format("2006-01-02")
	}

	return jsonResult(map[string]any{
		"date":           date,
		"format":         format,
		"unix_timestamp": now.Unix(),
		"iso_format":     now.Format("2006-01-02"),
	})
}

func (ts *toolset) timezoneInfo(_ context.Context, args map[string]any) Result {
	name := stringArg(args, "timezone", "UTC")

	loc, err := time.LoadLocation(name)
	if err != nil {
		return failurePayload(map[string]any{
			"error": "Unknown timezone: " + name,
			"note":  "Try 'UTC', 'America/New_York', 'Europe/London', etc.",
		})
	}

	now := time.Now().In(loc)
	return jsonResult(map[string]any{
		"timezone":     name,
		"current_time": now.Format("2006-01-02 15:04:05 MST"),
		"utc_offset":   now.Format("-0700"),
		"is_dst":       now.IsDST(),
	})
}
