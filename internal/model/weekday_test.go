package model

import (
	"encoding/json"
	"testing"
)

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in      string
		want    Weekday
		wantErr bool
	}{
		{"0", Sunday, false},
		{"6", Saturday, false},
		{"3", Wednesday, false},
		{"Monday", Monday, false},
		{"monday", Monday, false},
		{"FRIDAY", Friday, false},
		{" Tuesday ", Tuesday, false},
		{"7", 0, true},
		{"-1", 0, true},
		{"Lunes", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseWeekday(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseWeekday(%q) = %v, want error", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseWeekday(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseWeekday(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWeekdayJSON(t *testing.T) {
	// Both wire forms decode to the same enum.
	for _, in := range []string{`1`, `"Monday"`, `"monday"`} {
		var d Weekday
		if err := json.Unmarshal([]byte(in), &d); err != nil {
			t.Fatalf("Unmarshal(%s): %v", in, err)
		}
		if d != Monday {
			t.Errorf("Unmarshal(%s) = %v, want Monday", in, d)
		}
	}

	out, err := json.Marshal(Wednesday)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != `"Wednesday"` {
		t.Errorf("Marshal(Wednesday) = %s, want %q", out, "Wednesday")
	}

	for _, in := range []string{`9`, `"Someday"`, `true`} {
		var d Weekday
		if err := json.Unmarshal([]byte(in), &d); err == nil {
			t.Errorf("Unmarshal(%s): want error, got %v", in, d)
		}
	}
}
