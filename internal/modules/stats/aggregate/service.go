package aggregate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/empmonitor/core/internal/pkg/timeutil"
)

// Service computes reports from the session ledger, manual logs and
// screenshot store. It holds no state between calls.
type Service struct {
	sessions SessionSource
	manual   ManualSource
	shots    ScreenshotSource
	missing  func(error) bool
	now      func() time.Time
}

// NewService wires the sources. isMissing reports whether a screenshot load
// error means the bytes are absent rather than unreadable.
func NewService(sessions SessionSource, manual ManualSource, shots ScreenshotSource, isMissing func(error) bool) *Service {
	return &Service{
		sessions: sessions,
		manual:   manual,
		shots:    shots,
		missing:  isMissing,
		now:      time.Now,
	}
}

// Now is the clock used for running sessions and default ranges.
func (s *Service) Now() time.Time { return s.now() }

// Daily returns per-date totals of tracked sessions starting in window.
func (s *Service) Daily(ctx context.Context, email string, window timeutil.Range) ([]DailyRow, error) {
	rows, err := s.sessions.ListByUser(ctx, email, &window, trackedStatuses...)
	if err != nil {
		return nil, err
	}
	return buildDaily(rows, s.now()), nil
}

// Summary returns all-time totals for email. The three reads are not in a
// transaction and may observe slightly different snapshots.
func (s *Service) Summary(ctx context.Context, email string) (Summary, error) {
	tracked, err := s.sessions.ListByUser(ctx, email, nil, trackedStatuses...)
	if err != nil {
		return Summary{}, fmt.Errorf("tracked sessions: %w", err)
	}
	manual, err := s.manual.List(ctx, email, nil)
	if err != nil {
		return Summary{}, fmt.Errorf("manual logs: %w", err)
	}
	all, err := s.sessions.ListByUser(ctx, email, nil)
	if err != nil {
		return Summary{}, fmt.Errorf("daily spans: %w", err)
	}
	return buildSummary(email, tracked, manual, all, s.now()), nil
}

// TimelineForDate returns every session of email that started on day.
func (s *Service) TimelineForDate(ctx context.Context, email string, day time.Time) ([]TimelineRow, error) {
	start := timeutil.Day(day)
	window := timeutil.Range{From: start, To: start.AddDate(0, 0, 1)}
	rows, err := s.sessions.ListByUser(ctx, email, &window)
	if err != nil {
		return nil, err
	}
	return buildTimeline(rows), nil
}

// TimelineDates returns the distinct dates on which email has sessions.
func (s *Service) TimelineDates(ctx context.Context, email string) ([]DateRow, error) {
	rows, err := s.sessions.ListByUser(ctx, email, nil)
	if err != nil {
		return nil, err
	}
	return buildDates(rows), nil
}

// Gallery returns screenshots captured in window with inline base64 images.
func (s *Service) Gallery(ctx context.Context, email string, window timeutil.Range) ([]GalleryRow, error) {
	rows, err := s.shots.List(ctx, email, window)
	if err != nil {
		return nil, err
	}

	out := make([]GalleryRow, 0, len(rows))
	for i := range rows {
		data, err := s.shots.Load(ctx, &rows[i])
		if err != nil {
			if s.missing == nil || !s.missing(err) {
				return nil, err
			}
			data = nil
		}
		out = append(out, galleryRow(&rows[i], data))
	}
	return out, nil
}

// IsMissing adapts a sentinel error into a matcher for NewService.
func IsMissing(target error) func(error) bool {
	return func(err error) bool { return errors.Is(err, target) }
}
