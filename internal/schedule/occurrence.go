// Package schedule computes the next concrete occurrence of a weekly
// recurring class. Pure calendar math, no I/O.
package schedule

import (
	"time"

	"github.com/gymdesk/gymdesk-backend/internal/model"
)

// Occurrence is the single upcoming instantiation of a recurring class,
// derived fresh at query time and never persisted.
type Occurrence struct {
	// Date is midnight of the occurrence's calendar date in the gym timezone.
	Date time.Time
	// Start is Date combined with the class start time.
	Start time.Time
}

// NextOccurrence returns the occurrence of a class on or after now's date.
// If the matching date is today but the class already started strictly
// before now, the occurrence moves to the same weekday next week. A class
// starting exactly at now still counts as today's.
func NextOccurrence(day model.Weekday, startTime model.TimeOfDay, now time.Time) Occurrence {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	offset := (int(day.Time()) - int(now.Weekday()) + 7) % 7
	date := today.AddDate(0, 0, offset)
	start := startTime.At(date)

	if offset == 0 && start.Before(now) {
		date = date.AddDate(0, 0, 7)
		start = startTime.At(date)
	}

	return Occurrence{Date: date, Start: start}
}
