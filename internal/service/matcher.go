package service

import (
	"time"

	"github.com/mpcbarbosa/SeniorCare/internal/model"
)

// OccursOn reports whether a schedule fires on the calendar day of date.
// An empty weekday set never fires.
func OccursOn(schedule model.MedicationSchedule, date time.Time) bool {
	return schedule.DaysOfWeek.Contains(date.Weekday())
}

// parseDays validates a wire weekday string. A nil value is rejected so
// that a missing field never silently means "every day".
func parseDays(days *string) (model.Weekdays, error) {
	if days == nil {
		return 0, errMissingDays
	}
	w, err := model.ParseWeekdays(*days)
	if err != nil {
		return 0, wrapValidation(err)
	}
	return w, nil
}
