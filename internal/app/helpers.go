package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/empmonitor/core/internal/config"
)

// applyRuntimeSettings replaces time.Local when a timezone is configured.
// Every stored timestamp is naive wall-clock time in this zone.
func applyRuntimeSettings(cfg *config.AppConfig) error {
	tz := strings.TrimSpace(cfg.Timezone)
	if tz == "" {
		return nil
	}
	loc, err := parseTimezoneLocation(tz)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	time.Local = loc
	_ = os.Setenv("TZ", tz)
	return nil
}

// parseTimezoneLocation accepts an IANA zone name or a fixed UTC offset such
// as +05:30, +0530, UTC+05:30 or GMT-03.
func parseTimezoneLocation(raw string) (*time.Location, error) {
	tz := strings.TrimSpace(raw)
	if tz == "" {
		return time.Local, nil
	}
	if loc, err := time.LoadLocation(tz); err == nil {
		return loc, nil
	}

	offset := strings.ToUpper(tz)
	for _, prefix := range []string{"UTC", "GMT"} {
		if rest, ok := strings.CutPrefix(offset, prefix); ok {
			offset = rest
			break
		}
	}
	for _, layout := range offsetLayouts {
		t, err := time.Parse(layout, offset)
		if err != nil {
			continue
		}
		_, secs := t.Zone()
		return time.FixedZone("UTC"+offset, secs), nil
	}
	return nil, fmt.Errorf("expect IANA zone (e.g. Asia/Kolkata) or UTC offset (e.g. +05:30)")
}

var offsetLayouts = []string{"-07:00", "-0700", "-07"}
