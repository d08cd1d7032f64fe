package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Weekday is a day of the week, 0 = Sunday through 6 = Saturday.
//
// Legacy class data carries this field either as a number or as a day name,
// so every ingestion point must go through ParseWeekday — the rest of the
// codebase only ever sees the normalized enum.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// Valid reports whether d is within the 0–6 range.
func (d Weekday) Valid() bool {
	return d >= Sunday && d <= Saturday
}

// String returns the canonical English day name.
func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// Time converts to the standard library's weekday (same numbering).
func (d Weekday) Time() time.Weekday {
	return time.Weekday(d)
}

// ParseWeekday normalizes either representation of a weekday: a number
// ("0"–"6", 0 = Sunday) or a canonical day name, case-insensitive.
func ParseWeekday(s string) (Weekday, error) {
	s = strings.TrimSpace(s)

	if n, err := strconv.Atoi(s); err == nil {
		d := Weekday(n)
		if !d.Valid() {
			return 0, fmt.Errorf("weekday number out of range: %d", n)
		}
		return d, nil
	}

	for i, name := range weekdayNames {
		if strings.EqualFold(s, name) {
			return Weekday(i), nil
		}
	}

	return 0, fmt.Errorf("unrecognized weekday: %q", s)
}

// MarshalJSON emits the canonical day name.
func (d Weekday) MarshalJSON() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("weekday out of range: %d", int(d))
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts both a JSON number (0–6) and a day name string.
func (d *Weekday) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		w := Weekday(n)
		if !w.Valid() {
			return fmt.Errorf("weekday number out of range: %d", n)
		}
		*d = w
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("weekday must be a number 0-6 or a day name")
	}

	w, err := ParseWeekday(s)
	if err != nil {
		return err
	}
	*d = w
	return nil
}
