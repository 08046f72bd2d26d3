package dto

// ── health readings ──

type CreateReadingRequest struct {
	ReadingType    string   `json:"reading_type"    binding:"required"`
	ValuePrimary   *float64 `json:"value_primary"   binding:"required"`
	ValueSecondary *float64 `json:"value_secondary"`
	Notes          string   `json:"notes"           binding:"omitempty,max=1000"`
	Unit           string   `json:"unit"            binding:"omitempty,max=20"`
	MeasuredAt     string   `json:"measured_at"`
}

type ReadingListRequest struct {
	Type  string `form:"type"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=500"`
}

// SummaryRequest defaults Days to the configured window.
type SummaryRequest struct {
	Days int    `form:"days" binding:"omitempty,min=1,max=365"`
	Type string `form:"type"`
}

type ReadingResponse struct {
	ID             string   `json:"id"`
	ReadingType    string   `json:"reading_type"`
	ValuePrimary   float64  `json:"value_primary"`
	ValueSecondary *float64 `json:"value_secondary,omitempty"`
	Unit           string   `json:"unit"`
	Notes          string   `json:"notes"`
	MeasuredAt     string   `json:"measured_at"`
	OutOfRange     bool     `json:"out_of_range"`
}

// MetricSummary aggregates the primary value of one reading type.
//
// Average is the mean rounded half away from zero to one decimal, then
// clamped into [Min, Max]. The clamp only matters when every reading has
// more than one decimal: {0.05, 0.05} averages to 0.05, not 0.1.
type MetricSummary struct {
	Count   int             `json:"count"`
	Average float64         `json:"average"`
	Min     float64         `json:"min"`
	Max     float64         `json:"max"`
	Latest  ReadingResponse `json:"latest"`
}
