package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/mpcbarbosa/SeniorCare/internal/dto"
	"github.com/mpcbarbosa/SeniorCare/internal/model"
	"github.com/mpcbarbosa/SeniorCare/internal/repository"
	"github.com/mpcbarbosa/SeniorCare/pkg/clock"
)

// ── iCalendar feed ──────────────────────────────────────────
//
// Renders a user's appointments and medication schedules as an
// RFC 5545 calendar that phone calendar apps can subscribe to.
//
//   - timed appointments last one hour, untimed ones are all-day events
//   - a scheduled appointment carries a VALARM ReminderHoursBefore hours ahead
//   - each medication schedule is one weekly event with BYDAY from its
//     weekday set, anchored on its first occurrence from today on
//   - local times carry TZID so recurring doses survive DST changes
// ─────────────────────────────────────────────────────────────

const (
	calendarProductID       = "-//SeniorCare//Calendar//EN"
	calendarName            = "SeniorCare"
	calendarUIDDomain       = "seniorcare"
	appointmentLength       = time.Hour
	doseLength              = 15 * time.Minute
	icsLocalTimestampLayout = "20060102T150405"
)

// icsWeekdays is indexed by time.Weekday (0 = Sunday).
var icsWeekdays = [7]string{"SU", "MO", "TU", "WE", "TH", "FR", "SA"}

type CalendarService interface {
	// Feed returns the serialized VCALENDAR of the user.
	Feed(ctx context.Context, userID string) (string, error)
}

type calendarService struct {
	repo   *repository.Repository
	clock  clock.Clock
	logger *zap.Logger
}

func NewCalendarService(repo *repository.Repository, clk clock.Clock, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, clock: clk, logger: logger}
}

func (s *calendarService) Feed(ctx context.Context, userID string) (string, error) {
	appts, err := s.repo.Appointment.List(ctx, userID, "")
	if err != nil {
		s.logger.Error("calendar: list appointments failed", zap.String("user_id", userID), zap.Error(err))
		return "", err
	}
	meds, err := s.repo.Medication.ListByUser(ctx, userID, true)
	if err != nil {
		s.logger.Error("calendar: list medications failed", zap.String("user_id", userID), zap.Error(err))
		return "", err
	}

	loc := s.clock.Location()
	now := s.clock.Now()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductID)
	cal.SetXWRCalName(calendarName)
	cal.SetXWRTimezone(loc.String())

	for i := range appts {
		if err := addAppointmentEvent(cal, &appts[i], now, loc); err != nil {
			// one corrupt row should not break the whole feed
			s.logger.Warn("calendar: skipping appointment",
				zap.String("appointment_id", appts[i].AppointmentID), zap.Error(err))
		}
	}

	today := clock.Today(s.clock)
	for i := range meds {
		for j := range meds[i].Schedules {
			sched := &meds[i].Schedules[j]
			if err := addDoseEvent(cal, &meds[i], sched, today, now, loc); err != nil {
				s.logger.Warn("calendar: skipping schedule",
					zap.String("schedule_id", sched.ScheduleID), zap.Error(err))
			}
		}
	}

	return cal.Serialize(), nil
}

func addAppointmentEvent(cal *ics.Calendar, appt *model.Appointment, now time.Time, loc *time.Location) error {
	day, err := time.ParseInLocation(dto.DateLayout, appt.Date, loc)
	if err != nil {
		return fmt.Errorf("bad date %q: %w", appt.Date, err)
	}

	evt := cal.AddEvent(calendarUID("appointment", appt.AppointmentID))
	evt.SetDtStampTime(now)
	if !appt.UpdatedAt.IsZero() {
		evt.SetModifiedAt(appt.UpdatedAt)
	}
	evt.SetSummary(appointmentSummary(appt))
	if appt.Location != "" {
		evt.SetLocation(appt.Location)
	}
	if desc := appointmentDescription(appt); desc != "" {
		evt.SetDescription(desc)
	}

	if appt.Time != nil && *appt.Time != "" {
		start, err := model.At(day, *appt.Time)
		if err != nil {
			return err
		}
		setLocalTime(evt, ics.ComponentPropertyDtStart, start, loc)
		setLocalTime(evt, ics.ComponentPropertyDtEnd, start.Add(appointmentLength), loc)
	} else {
		evt.SetAllDayStartAt(day)
		evt.SetAllDayEndAt(day.AddDate(0, 0, 1))
	}

	switch appt.Status {
	case model.AppointmentCancelled:
		evt.SetStatus(ics.ObjectStatusCancelled)
	default:
		evt.SetStatus(ics.ObjectStatusConfirmed)
	}

	if appt.Status == model.AppointmentScheduled && appt.ReminderHoursBefore > 0 {
		alarm := evt.AddAlarm()
		alarm.SetAction(ics.ActionDisplay)
		alarm.SetTrigger(fmt.Sprintf("-PT%dH", appt.ReminderHoursBefore))
		alarm.SetProperty(ics.ComponentPropertyDescription, appt.Title)
	}
	return nil
}

func addDoseEvent(cal *ics.Calendar, med *model.Medication, sched *model.MedicationSchedule, today, now time.Time, loc *time.Location) error {
	first, ok := firstOccurrenceFrom(today, sched.DaysOfWeek)
	if !ok {
		// an empty weekday set never occurs
		return nil
	}
	start, err := model.At(first, sched.TimeOfDay)
	if err != nil {
		return err
	}

	evt := cal.AddEvent(calendarUID("dose", sched.ScheduleID))
	evt.SetDtStampTime(now)
	evt.SetSummary(strings.TrimSpace(med.Name + " " + med.Dosage))
	if med.Instructions != "" {
		evt.SetDescription(med.Instructions)
	}
	setLocalTime(evt, ics.ComponentPropertyDtStart, start, loc)
	setLocalTime(evt, ics.ComponentPropertyDtEnd, start.Add(doseLength), loc)
	evt.AddRrule("FREQ=WEEKLY;BYDAY=" + icsByDay(sched.DaysOfWeek))

	alarm := evt.AddAlarm()
	alarm.SetAction(ics.ActionDisplay)
	alarm.SetTrigger("PT0M")
	alarm.SetProperty(ics.ComponentPropertyDescription, "Time to take "+med.Name)
	return nil
}

// ── helpers ──

func calendarUID(kind, id string) string {
	return fmt.Sprintf("%s-%s@%s", kind, id, calendarUIDDomain)
}

func appointmentSummary(a *model.Appointment) string {
	if a.DoctorName == "" {
		return a.Title
	}
	return fmt.Sprintf("%s (%s)", a.Title, a.DoctorName)
}

func appointmentDescription(a *model.Appointment) string {
	var parts []string
	if a.Specialty != "" {
		parts = append(parts, a.Specialty)
	}
	if a.Notes != "" {
		parts = append(parts, a.Notes)
	}
	return strings.Join(parts, "\n")
}

// setLocalTime writes a wall-clock time with its TZID, or a UTC stamp when
// the configured zone is UTC.
func setLocalTime(evt *ics.VEvent, prop ics.ComponentProperty, t time.Time, loc *time.Location) {
	if loc == time.UTC {
		evt.SetProperty(prop, t.UTC().Format("20060102T150405Z"))
		return
	}
	evt.SetProperty(prop, t.In(loc).Format(icsLocalTimestampLayout), ics.WithTZID(loc.String()))
}

// firstOccurrenceFrom finds the first day on or after from whose weekday
// is in days.
func firstOccurrenceFrom(from time.Time, days model.Weekdays) (time.Time, bool) {
	for i := 0; i < 7; i++ {
		d := from.AddDate(0, 0, i)
		if days.Contains(d.Weekday()) {
			return d, true
		}
	}
	return time.Time{}, false
}

func icsByDay(days model.Weekdays) string {
	var out []string
	for d := time.Sunday; d <= time.Saturday; d++ {
		if days.Contains(d) {
			out = append(out, icsWeekdays[d])
		}
	}
	return strings.Join(out, ",")
}
