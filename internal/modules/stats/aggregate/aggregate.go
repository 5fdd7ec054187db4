package aggregate

import (
	"encoding/base64"
	"math"
	"sort"
	"time"

	"github.com/empmonitor/core/internal/models"
	"github.com/empmonitor/core/internal/pkg/timeutil"
)

// sessionSeconds is end (or now while running) minus start in whole seconds,
// regardless of status. Negative spans count as zero.
func sessionSeconds(s *models.WorkSession, now time.Time) int64 {
	end := now
	if s.EndTime != nil {
		end = *s.EndTime
	}
	return clampSeconds(end.Sub(s.StartTime))
}

func manualSeconds(l *models.ManualLog) int64 {
	return clampSeconds(l.EndTime.Sub(l.StartTime))
}

func clampSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64(d / time.Second)
}

// dateKey is the calendar date of a naive timestamp.
func dateKey(t time.Time) string {
	return t.Format(timeutil.DateLayout)
}

// buildDaily groups sessions by the date of start_time, newest date first.
// A session crossing midnight counts entirely toward its start date.
func buildDaily(sessions []models.WorkSession, now time.Time) []DailyRow {
	byDate := map[string]*DailyRow{}
	for i := range sessions {
		s := &sessions[i]
		key := dateKey(s.StartTime)
		row, ok := byDate[key]
		if !ok {
			row = &DailyRow{Date: key}
			byDate[key] = row
		}
		row.Sessions++
		row.TotalSeconds += sessionSeconds(s, now)
	}

	out := make([]DailyRow, 0, len(byDate))
	for _, row := range byDate {
		row.TotalHours = timeutil.FormatHMS(row.TotalSeconds)
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// activePerDaySeconds sums, per start date, the span from the earliest start
// to the latest end (or now while running).
func activePerDaySeconds(sessions []models.WorkSession, now time.Time) int64 {
	type span struct{ first, last time.Time }
	days := map[string]*span{}
	for i := range sessions {
		s := &sessions[i]
		end := now
		if s.EndTime != nil {
			end = *s.EndTime
		}
		key := dateKey(s.StartTime)
		d, ok := days[key]
		if !ok {
			days[key] = &span{first: s.StartTime, last: end}
			continue
		}
		if s.StartTime.Before(d.first) {
			d.first = s.StartTime
		}
		if end.After(d.last) {
			d.last = end
		}
	}

	var total int64
	for _, d := range days {
		total += clampSeconds(d.last.Sub(d.first))
	}
	return total
}

// buildSummary combines three independently read row sets: tracked sessions,
// all manual logs and sessions of every status for the span metric.
func buildSummary(email string, tracked []models.WorkSession, manual []models.ManualLog, all []models.WorkSession, now time.Time) Summary {
	var trackedSecs, manualSecs int64
	for i := range tracked {
		trackedSecs += sessionSeconds(&tracked[i], now)
	}
	for i := range manual {
		manualSecs += manualSeconds(&manual[i])
	}
	span := activePerDaySeconds(all, now)
	active := trackedSecs + manualSecs

	return Summary{
		Username:            email,
		TotalTrackedSeconds: trackedSecs,
		ManualSeconds:       manualSecs,
		ActivePerDaySeconds: span,
		ActiveTime:          active,
		InactiveTime:        float64(span) * inactiveRatio,
		TotalWorked:         active,
		TotalTracked:        trackedSecs,
		ManualAdded:         manualSecs,
	}
}

// buildTimeline renders sessions for a single day in start order. Duration is
// whole minutes truncated toward zero and left nil for running sessions.
func buildTimeline(sessions []models.WorkSession) []TimelineRow {
	out := make([]TimelineRow, 0, len(sessions))
	for i := range sessions {
		s := &sessions[i]
		row := TimelineRow{
			ID:           s.ID,
			StartTime:    timeutil.Timestamp(s.StartTime),
			EndTime:      timeutil.NullableTimestamp(s.EndTime),
			Status:       s.Status,
			StartTimeFmt: s.StartTime.Format(timeutil.ClockLayout),
		}
		if s.EndTime != nil {
			endFmt := s.EndTime.Format(timeutil.ClockLayout)
			minutes := int64(s.EndTime.Sub(s.StartTime) / time.Minute)
			row.EndTimeFmt = &endFmt
			row.DurationMin = &minutes
		}
		out = append(out, row)
	}
	return out
}

// buildDates lists distinct start dates, newest first.
func buildDates(sessions []models.WorkSession) []DateRow {
	seen := map[string]struct{}{}
	out := make([]DateRow, 0)
	for i := range sessions {
		key := dateKey(sessions[i].StartTime)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, DateRow{Date: key})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// galleryRow encodes one screenshot. Empty data yields a nil image and size 0.
func galleryRow(row *models.Screenshot, data []byte) GalleryRow {
	out := GalleryRow{
		ID:                 row.ID,
		Timestamp:          timeutil.Timestamp(row.CaptureTime),
		TimestampFormatted: timeutil.Timestamp(row.CaptureTime),
	}
	if len(data) > 0 {
		encoded := base64.StdEncoding.EncodeToString(data)
		out.ImageBase64 = &encoded
		out.SizeKB = sizeKB(len(data))
	}
	return out
}

// sizeKB is n/1024 rounded to one decimal.
func sizeKB(n int) float64 {
	return math.Round(float64(n)/1024*10) / 10
}
