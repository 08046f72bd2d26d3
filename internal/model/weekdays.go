package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Weekdays is a set of days of the week stored as a bit set, bit 0 being
// Sunday, matching time.Weekday. On the wire and in the database it is the
// ascending digit string, e.g. "135" for Monday, Wednesday and Friday.
// The empty set is valid and matches no day.
type Weekdays uint8

// EveryDay contains all seven days.
const EveryDay Weekdays = 1<<7 - 1

// WeekdaysOf builds a set from individual days.
func WeekdaysOf(days ...time.Weekday) Weekdays {
	var w Weekdays
	for _, d := range days {
		w |= 1 << uint(d)
	}
	return w
}

// ParseWeekdays parses a digit string. Every character must be 0-6.
// Repeated digits are accepted.
func ParseWeekdays(s string) (Weekdays, error) {
	var w Weekdays
	for _, r := range s {
		if r < '0' || r > '6' {
			return 0, fmt.Errorf("invalid weekday %q in %q: want digits 0 (Sunday) to 6 (Saturday)", r, s)
		}
		w |= 1 << uint(r-'0')
	}
	return w, nil
}

// Contains reports whether d is in the set.
func (w Weekdays) Contains(d time.Weekday) bool {
	return w&(1<<uint(d)) != 0
}

// IsEmpty reports whether the set matches no day at all.
func (w Weekdays) IsEmpty() bool { return w&EveryDay == 0 }

func (w Weekdays) String() string {
	var b strings.Builder
	for d := time.Sunday; d <= time.Saturday; d++ {
		if w.Contains(d) {
			b.WriteByte(byte('0' + d))
		}
	}
	return b.String()
}

// Value implements driver.Valuer.
func (w Weekdays) Value() (driver.Value, error) {
	return w.String(), nil
}

// Scan implements sql.Scanner.
func (w *Weekdays) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case nil:
		*w = 0
		return nil
	case []byte:
		s = string(v)
	case string:
		s = v
	default:
		return fmt.Errorf("Weekdays.Scan: unsupported type %T", src)
	}
	parsed, err := ParseWeekdays(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

func (w Weekdays) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.String())
}

func (w *Weekdays) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("weekdays must be a digit string: %w", err)
	}
	parsed, err := ParseWeekdays(s)
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}
