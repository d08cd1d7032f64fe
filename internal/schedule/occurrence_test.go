package schedule

import (
	"testing"
	"time"

	"github.com/gymdesk/gymdesk-backend/internal/model"
)

var testLoc = time.FixedZone("ART", -3*60*60)

func mustTime(t *testing.T, s string) model.TimeOfDay {
	t.Helper()
	tod, err := model.ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("ParseTimeOfDay(%q): %v", s, err)
	}
	return tod
}

func TestNextOccurrence(t *testing.T) {
	// 2026-08-31 is a Monday.
	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, testLoc)

	tests := []struct {
		name      string
		day       model.Weekday
		start     string
		now       time.Time
		wantDate  time.Time
		wantStart time.Time
	}{
		{
			name:      "later this week",
			day:       model.Wednesday,
			start:     "19:00",
			now:       monday.Add(10 * time.Hour),
			wantDate:  monday.AddDate(0, 0, 2),
			wantStart: monday.AddDate(0, 0, 2).Add(19 * time.Hour),
		},
		{
			name:      "today before start stays today",
			day:       model.Monday,
			start:     "18:00",
			now:       monday.Add(17 * time.Hour),
			wantDate:  monday,
			wantStart: monday.Add(18 * time.Hour),
		},
		{
			name:      "today exactly at start stays today",
			day:       model.Monday,
			start:     "18:00",
			now:       monday.Add(18 * time.Hour),
			wantDate:  monday,
			wantStart: monday.Add(18 * time.Hour),
		},
		{
			name:      "today after start moves to next week",
			day:       model.Monday,
			start:     "18:00",
			now:       monday.Add(18*time.Hour + time.Second),
			wantDate:  monday.AddDate(0, 0, 7),
			wantStart: monday.AddDate(0, 0, 7).Add(18 * time.Hour),
		},
		{
			name:      "weekday earlier in week wraps forward",
			day:       model.Sunday,
			start:     "09:00",
			now:       monday.Add(12 * time.Hour),
			wantDate:  monday.AddDate(0, 0, 6),
			wantStart: monday.AddDate(0, 0, 6).Add(9 * time.Hour),
		},
		{
			name:      "midnight start today moves to next week",
			day:       model.Monday,
			start:     "00:00",
			now:       monday.Add(1 * time.Minute),
			wantDate:  monday.AddDate(0, 0, 7),
			wantStart: monday.AddDate(0, 0, 7),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			occ := NextOccurrence(tt.day, mustTime(t, tt.start), tt.now)
			if !occ.Date.Equal(tt.wantDate) {
				t.Errorf("Date = %v, want %v", occ.Date, tt.wantDate)
			}
			if !occ.Start.Equal(tt.wantStart) {
				t.Errorf("Start = %v, want %v", occ.Start, tt.wantStart)
			}
		})
	}
}

func TestNextOccurrenceDeterministic(t *testing.T) {
	now := time.Date(2026, 8, 31, 14, 30, 0, 0, testLoc)
	start := mustTime(t, "18:00")

	first := NextOccurrence(model.Friday, start, now)
	for i := 0; i < 5; i++ {
		again := NextOccurrence(model.Friday, start, now)
		if !again.Date.Equal(first.Date) || !again.Start.Equal(first.Start) {
			t.Fatalf("occurrence changed between calls: %+v vs %+v", again, first)
		}
	}
	if first.Start.Location() != testLoc {
		t.Errorf("Start location = %v, want %v", first.Start.Location(), testLoc)
	}
}
