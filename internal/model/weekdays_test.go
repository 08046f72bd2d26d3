package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseWeekdays(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"0123456", "0123456", false},
		{"135", "135", false},
		{"531", "135", false},
		{"113", "13", false},
		{"", "", false},
		{"7", "", true},
		{"1,3", "", true},
		{"mon", "", true},
	}

	for _, tt := range tests {
		w, err := ParseWeekdays(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseWeekdays(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && w.String() != tt.want {
			t.Errorf("ParseWeekdays(%q) = %q, want %q", tt.in, w.String(), tt.want)
		}
	}
}

func TestWeekdays_Contains(t *testing.T) {
	w := WeekdaysOf(time.Monday, time.Wednesday, time.Friday)
	for d := time.Sunday; d <= time.Saturday; d++ {
		want := d == time.Monday || d == time.Wednesday || d == time.Friday
		if got := w.Contains(d); got != want {
			t.Errorf("Contains(%s) = %v, want %v", d, got, want)
		}
	}
}

func TestWeekdays_EmptyMatchesNothing(t *testing.T) {
	var w Weekdays
	if !w.IsEmpty() {
		t.Fatal("zero value must be empty")
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if w.Contains(d) {
			t.Errorf("empty set must not contain %s", d)
		}
	}
}

func TestWeekdays_ScanValue(t *testing.T) {
	orig := WeekdaysOf(time.Sunday, time.Saturday)
	v, err := orig.Value()
	if err != nil {
		t.Fatal(err)
	}
	if v != "06" {
		t.Errorf("Value() = %v, want \"06\"", v)
	}

	var scanned Weekdays
	if err := scanned.Scan([]byte("06")); err != nil {
		t.Fatal(err)
	}
	if scanned != orig {
		t.Errorf("Scan round trip: got %s, want %s", scanned, orig)
	}
	if err := scanned.Scan(42); err == nil {
		t.Error("expected error scanning an int")
	}
}

func TestWeekdays_JSON(t *testing.T) {
	var payload struct {
		Days Weekdays `json:"days"`
	}
	if err := json.Unmarshal([]byte(`{"days":"024"}`), &payload); err != nil {
		t.Fatal(err)
	}
	if !payload.Days.Contains(time.Tuesday) || payload.Days.Contains(time.Monday) {
		t.Errorf("unexpected set %s", payload.Days)
	}
	if err := json.Unmarshal([]byte(`{"days":"9"}`), &payload); err == nil {
		t.Error("expected error for digit 9")
	}

	b, _ := json.Marshal(payload.Days)
	if string(b) != `"024"` {
		t.Errorf("Marshal = %s", b)
	}
}

func TestAt(t *testing.T) {
	date := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
	got, err := At(date, "08:30")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(time.Date(2024, 5, 15, 8, 30, 0, 0, time.UTC)) {
		t.Errorf("At = %s", got)
	}

	for _, bad := range []string{"8:30", "24:00", "08:60", "0830", ""} {
		if _, err := At(date, bad); err == nil {
			t.Errorf("At(%q) should fail", bad)
		}
	}
}
