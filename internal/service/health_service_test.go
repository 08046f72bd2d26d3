package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mpcbarbosa/SeniorCare/internal/dto"
	"github.com/mpcbarbosa/SeniorCare/internal/model"
	"github.com/mpcbarbosa/SeniorCare/pkg/clock"
)

type healthFixture struct {
	svc        HealthService
	mocks      *mockRepos
	clock      *clock.Fixed
	dispatcher *recordingDispatcher
}

func setupTestHealthService() *healthFixture {
	repo, mocks := newMockRepository()
	clk := &clock.Fixed{At: time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)}
	d := &recordingDispatcher{}
	alerts := NewAlertService(repo, d, zap.NewNop())
	return &healthFixture{
		svc:        NewHealthService(repo, alerts, clk, 30, zap.NewNop()),
		mocks:      mocks,
		clock:      clk,
		dispatcher: d,
	}
}

func (f *healthFixture) record(t *testing.T, readingType string, value float64, ago time.Duration) *dto.ReadingResponse {
	t.Helper()
	req := &dto.CreateReadingRequest{
		ReadingType:  readingType,
		ValuePrimary: &value,
		MeasuredAt:   f.clock.At.Add(-ago).Format(time.RFC3339),
	}
	if readingType == model.ReadingBloodPressure {
		dia := 75.0
		req.ValueSecondary = &dia
	}
	r, err := f.svc.Create(context.Background(), "u1", req)
	if err != nil {
		t.Fatalf("record %s: %v", readingType, err)
	}
	return r
}

// ── Summarize ──

func TestHealthService_SummarizeGlucose(t *testing.T) {
	f := setupTestHealthService()
	f.record(t, model.ReadingGlucose, 90, 3*time.Hour)
	f.record(t, model.ReadingGlucose, 110, time.Hour)
	f.record(t, model.ReadingGlucose, 100, 2*time.Hour)

	sum, err := f.svc.Summarize(context.Background(), "u1", model.ReadingGlucose, 7)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Count != 3 || sum.Average != 100.0 || sum.Min != 90 || sum.Max != 110 {
		t.Errorf("expected {3 100 90 110}, got %+v", sum)
	}
	if sum.Latest.ValuePrimary != 110 {
		t.Errorf("expected latest 110, got %v", sum.Latest.ValuePrimary)
	}
}

func TestHealthService_SummarizeWindow(t *testing.T) {
	f := setupTestHealthService()
	f.record(t, model.ReadingWeight, 70, 10*24*time.Hour)
	f.record(t, model.ReadingWeight, 72, 24*time.Hour)

	week, _ := f.svc.Summarize(context.Background(), "u1", model.ReadingWeight, 7)
	if week == nil || week.Count != 1 || week.Average != 72 {
		t.Errorf("expected only the recent reading in a 7 day window, got %+v", week)
	}

	// Zero days falls back to the configured 30 day window.
	month, _ := f.svc.Summarize(context.Background(), "u1", model.ReadingWeight, 0)
	if month == nil || month.Count != 2 {
		t.Errorf("expected both readings in the default window, got %+v", month)
	}

	empty, err := f.svc.Summarize(context.Background(), "u1", model.ReadingOxygen, 7)
	if err != nil || empty != nil {
		t.Errorf("expected nil summary without readings, got %+v, %v", empty, err)
	}
}

func TestHealthService_SummarizeAllOmitsEmptyTypes(t *testing.T) {
	f := setupTestHealthService()
	f.record(t, model.ReadingHeartRate, 70, time.Hour)
	f.record(t, model.ReadingHeartRate, 71, 2*time.Hour)
	f.record(t, model.ReadingHeartRate, 71, 3*time.Hour)
	f.record(t, model.ReadingTemperature, 36.6, time.Hour)

	all, err := f.svc.SummarizeAll(context.Background(), "u1", 7)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("expected two types, got %v", all)
	}
	if _, ok := all[model.ReadingGlucose]; ok {
		t.Error("glucose has no readings and must be omitted")
	}
	hr := all[model.ReadingHeartRate]
	if hr.Average != 70.7 {
		t.Errorf("expected 70.7 rounded to one decimal, got %v", hr.Average)
	}
	for typ, s := range all {
		if s.Average < s.Min || s.Average > s.Max {
			t.Errorf("%s: average %v outside [%v, %v]", typ, s.Average, s.Min, s.Max)
		}
	}
}

func TestSummarize_AverageStaysWithinBounds(t *testing.T) {
	values := [][]float64{
		{0.05, 0.05, 0.05},
		{99.95, 99.95},
		{1, 2},
		{36.64, 36.66, 36.65},
	}
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, vs := range values {
		var readings []model.HealthReading
		for i, v := range vs {
			readings = append(readings, model.HealthReading{ReadingType: model.ReadingGlucose, ValuePrimary: v, MeasuredAt: base.Add(time.Duration(i) * time.Hour)})
		}
		s := summarize(readings)
		if s.Average < s.Min || s.Average > s.Max {
			t.Errorf("%v: average %v outside [%v, %v]", vs, s.Average, s.Min, s.Max)
		}
		if math.Abs(s.Average*10-math.Round(s.Average*10)) > 1e-9 && s.Average != s.Min && s.Average != s.Max {
			t.Errorf("%v: average %v not rounded to one decimal", vs, s.Average)
		}
	}
}

func TestSummarize_ClampWinsOverRounding(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	s := summarize([]model.HealthReading{
		{ReadingType: model.ReadingGlucose, ValuePrimary: 0.05, MeasuredAt: base},
		{ReadingType: model.ReadingGlucose, ValuePrimary: 0.05, MeasuredAt: base.Add(time.Hour)},
	})
	if s.Average != 0.05 {
		t.Errorf("expected the average clamped to 0.05, got %v", s.Average)
	}
}

// ── Create ──

func TestHealthService_CreateDefaultsUnitAndTime(t *testing.T) {
	f := setupTestHealthService()
	v := 85.0
	r, err := f.svc.Create(context.Background(), "u1", &dto.CreateReadingRequest{ReadingType: model.ReadingGlucose, ValuePrimary: &v})
	if err != nil {
		t.Fatal(err)
	}
	if r.Unit != "mg/dL" || r.MeasuredAt != "2024-03-06T12:00:00Z" || r.OutOfRange {
		t.Errorf("unexpected reading %+v", r)
	}
	if len(f.dispatcher.events) != 0 {
		t.Error("a normal reading must not raise an alert")
	}
}

func TestHealthService_CreateOutOfRangeRaisesAlert(t *testing.T) {
	f := setupTestHealthService()
	sys, dia := 150.0, 95.0
	r, err := f.svc.Create(context.Background(), "u1", &dto.CreateReadingRequest{
		ReadingType:    model.ReadingBloodPressure,
		ValuePrimary:   &sys,
		ValueSecondary: &dia,
		MeasuredAt:     "2024-03-06T10:15",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !r.OutOfRange || r.MeasuredAt != "2024-03-06T10:15:00Z" {
		t.Errorf("unexpected reading %+v", r)
	}
	if len(f.mocks.alert.alerts) != 1 || f.mocks.alert.alerts[0].Type != model.AlertHealth {
		t.Fatalf("expected one health alert, got %+v", f.mocks.alert.alerts)
	}
	if f.mocks.alert.alerts[0].Message != "Blood Pressure reading 150/95 mmHg is outside the normal range" {
		t.Errorf("unexpected message %q", f.mocks.alert.alerts[0].Message)
	}
	if len(f.dispatcher.events) != 1 || f.dispatcher.events[0].Severity != model.SeverityWarning {
		t.Errorf("expected a warning event, got %+v", f.dispatcher.events)
	}
}

func TestHealthService_CreateValidation(t *testing.T) {
	f := setupTestHealthService()
	v := 120.0
	tests := []struct {
		name string
		req  *dto.CreateReadingRequest
		want error
	}{
		{"unknown type", &dto.CreateReadingRequest{ReadingType: "cholesterol", ValuePrimary: &v}, ErrUnknownReadingType},
		{"missing diastolic", &dto.CreateReadingRequest{ReadingType: model.ReadingBloodPressure, ValuePrimary: &v}, ErrSecondaryRequired},
		{"bad timestamp", &dto.CreateReadingRequest{ReadingType: model.ReadingWeight, ValuePrimary: &v, MeasuredAt: "yesterday"}, errBadMeasuredAt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.svc.Create(context.Background(), "u1", tt.req); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

// ── List / Latest / Delete ──

func TestHealthService_ListAndLatest(t *testing.T) {
	f := setupTestHealthService()
	f.record(t, model.ReadingWeight, 70, 2*time.Hour)
	f.record(t, model.ReadingWeight, 71, time.Hour)
	f.record(t, model.ReadingOxygen, 97, 3*time.Hour)

	list, err := f.svc.List(context.Background(), "u1", &dto.ReadingListRequest{Type: model.ReadingWeight})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].ValuePrimary != 71 {
		t.Errorf("expected newest weight first, got %+v", list)
	}

	latest, err := f.svc.Latest(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(latest) != 2 || latest[model.ReadingWeight].ValuePrimary != 71 || latest[model.ReadingOxygen].ValuePrimary != 97 {
		t.Errorf("unexpected latest map %+v", latest)
	}

	if _, err := f.svc.List(context.Background(), "u1", &dto.ReadingListRequest{Type: "steps"}); !errors.Is(err, ErrUnknownReadingType) {
		t.Errorf("expected ErrUnknownReadingType, got %v", err)
	}
}

func TestHealthService_DeleteOtherUsersReading(t *testing.T) {
	f := setupTestHealthService()
	r := f.record(t, model.ReadingWeight, 70, time.Hour)

	if err := f.svc.Delete(context.Background(), "u2", r.ID); !errors.Is(err, ErrReadingNotFound) {
		t.Errorf("expected ErrReadingNotFound, got %v", err)
	}
	if err := f.svc.Delete(context.Background(), "u1", r.ID); err != nil {
		t.Errorf("Delete: %v", err)
	}
}

func TestHealthService_Types(t *testing.T) {
	f := setupTestHealthService()
	types := f.svc.Types()
	if len(types) != 6 || types[0].ID != model.ReadingBloodPressure {
		t.Errorf("unexpected catalogue %+v", types)
	}
}
