package domain

import "time"

// PeriodRow is one month of a time series: summed measures plus running
// cumulative sums carried from the first period of the series.
type PeriodRow struct {
	Period time.Time `json:"period"`
	// Values and Cumulative are parallel to the schema's Measures.
	Values          []int64 `json:"values"`
	Total           int64   `json:"total"`
	Cumulative      []int64 `json:"cumulative"`
	CumulativeTotal int64   `json:"cumulative_total"`
}

// PeriodLabel formats the row's period as YYYY-MM.
func (r PeriodRow) PeriodLabel() string {
	return r.Period.Format("2006-01")
}

// TimeSeries is a month-by-month aggregate ordered ascending by period.
// Months with no matching records are absent, not zero-filled.
type TimeSeries struct {
	Schema Schema      `json:"-"`
	Rows   []PeriodRow `json:"rows"`
}

// RegionRow is the summed measures for one canonical region.
type RegionRow struct {
	Region string  `json:"region"`
	Values []int64 `json:"values"`
	Total  int64   `json:"total"`
}

// RegionBreakdown is a per-region aggregate. Row order carries no meaning;
// callers sort as needed.
type RegionBreakdown struct {
	Schema Schema      `json:"-"`
	Rows   []RegionRow `json:"rows"`
}

// Metadata describes the full category dataset of one pipeline run,
// computed before any filtering.
type Metadata struct {
	Regions []string  `json:"regions"`
	MinDate time.Time `json:"min_date"`
	MaxDate time.Time `json:"max_date"`
}

// MinDateISO returns the earliest date as YYYY-MM-DD, or "" for an empty
// dataset.
func (m Metadata) MinDateISO() string {
	if m.MinDate.IsZero() {
		return ""
	}
	return m.MinDate.Format("2006-01-02")
}

// MaxDateISO returns the latest date as YYYY-MM-DD, or "" for an empty
// dataset.
func (m Metadata) MaxDateISO() string {
	if m.MaxDate.IsZero() {
		return ""
	}
	return m.MaxDate.Format("2006-01-02")
}
