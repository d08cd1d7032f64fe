package model

import (
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{"18:00", TimeOfDay{18, 0}, false},
		{"00:00", TimeOfDay{0, 0}, false},
		{"23:59", TimeOfDay{23, 59}, false},
		{"07:05", TimeOfDay{7, 5}, false},
		{"24:00", TimeOfDay{}, true},
		{"12:60", TimeOfDay{}, true},
		{"9:00", TimeOfDay{}, true},
		{"09:00:00", TimeOfDay{}, true},
		{"0900", TimeOfDay{}, true},
		{"", TimeOfDay{}, true},
	}

	for _, tt := range tests {
		got, err := ParseTimeOfDay(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseTimeOfDay(%q) = %v, want error", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTimeOfDay(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTimeOfDayAt(t *testing.T) {
	loc := time.FixedZone("ART", -3*60*60)
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, loc)

	got := TimeOfDay{18, 30}.At(date)
	want := time.Date(2026, 8, 31, 18, 30, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("At = %v, want %v", got, want)
	}
	if got.Location() != loc {
		t.Errorf("At location = %v, want %v", got.Location(), loc)
	}
}

func TestTimeOfDayString(t *testing.T) {
	if s := (TimeOfDay{7, 5}).String(); s != "07:05" {
		t.Errorf("String = %q, want %q", s, "07:05")
	}
}
