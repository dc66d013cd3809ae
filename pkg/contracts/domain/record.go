package domain

import "time"

// Schema describes the measure columns of one dataset category and how the
// derived total is computed. A single Schema value is shared read-only by
// loader, aggregator and exporters for the duration of a pipeline run.
type Schema struct {
	Category Category
	// Measures holds the column headers, in file order. Record.Values is
	// parallel to this slice.
	Measures []string
}

// Total sums a value vector according to the schema's total formula.
func (s Schema) Total(values []int64) int64 {
	var total int64
	for _, v := range values {
		total += v
	}
	return total
}

// Record is one canonical observation: a single canonical region, a proper
// calendar date and the category's measure counts. Rows whose raw region
// field listed several regions are split into one Record per region, each
// carrying the full original counts.
type Record struct {
	Region string
	Date   time.Time
	// Values is parallel to Schema.Measures.
	Values []int64
	Total  int64
}

// Month truncates the record's date to the first day of its calendar month.
func (r Record) Month() time.Time {
	return time.Date(r.Date.Year(), r.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
}
