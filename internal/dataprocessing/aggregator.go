package dataprocessing

import (
	"sort"
	"time"

	"aadhaarcli/pkg/contracts/domain"
)

// monthState is the intermediate grouping key shared by the all-states and
// single-state time-series paths.
type monthState struct {
	month time.Time
	state string
}

// sums accumulates measure values for one group.
type sums struct {
	values []int64
	total  int64
}

func newSums(n int) *sums {
	return &sums{values: make([]int64, n)}
}

func (s *sums) add(r domain.Record) {
	for i, v := range r.Values {
		s.values[i] += v
	}
	s.total += r.Total
}

// ByPeriod aggregates records into a calendar-month time series with running
// cumulative sums. When stateFilter is non-nil only records of that state
// contribute. Months with no matching records are absent from the result,
// not zero-filled.
func ByPeriod(schema domain.Schema, records []domain.Record, stateFilter *string) domain.TimeSeries {
	series := domain.TimeSeries{Schema: schema}

	// Group by (month, state) first so the single-state and all-states
	// queries share one grouped base.
	grouped := make(map[monthState]*sums)
	for _, r := range records {
		key := monthState{month: r.Month(), state: r.Region}
		g, ok := grouped[key]
		if !ok {
			g = newSums(len(schema.Measures))
			grouped[key] = g
		}
		g.add(r)
	}

	byMonth := make(map[time.Time]*sums)
	for key, g := range grouped {
		if stateFilter != nil && key.state != *stateFilter {
			continue
		}
		m, ok := byMonth[key.month]
		if !ok {
			m = newSums(len(schema.Measures))
			byMonth[key.month] = m
		}
		for i, v := range g.values {
			m.values[i] += v
		}
		m.total += g.total
	}

	months := make([]time.Time, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	cumulative := make([]int64, len(schema.Measures))
	for _, month := range months {
		g := byMonth[month]

		row := domain.PeriodRow{
			Period:     month,
			Values:     append([]int64(nil), g.values...),
			Total:      g.total,
			Cumulative: make([]int64, len(schema.Measures)),
		}
		for i, v := range g.values {
			cumulative[i] += v
			row.Cumulative[i] = cumulative[i]
		}
		// The cumulative total is the sum of the per-measure cumulatives,
		// which equals the running sum of the total column.
		for _, c := range row.Cumulative {
			row.CumulativeTotal += c
		}

		series.Rows = append(series.Rows, row)
	}

	return series
}

// ByRegion aggregates records into per-state totals over an inclusive date
// range. Nil bounds default to the full extent of the record set, so an
// unbounded call returns exactly what explicit min/max bounds would.
func ByRegion(schema domain.Schema, records []domain.Record, start, end *time.Time) domain.RegionBreakdown {
	breakdown := domain.RegionBreakdown{Schema: schema}
	if len(records) == 0 {
		return breakdown
	}

	overallMin, overallMax := dateExtent(records)

	s, e := overallMin, overallMax
	if start != nil {
		s = *start
	}
	if end != nil {
		e = *end
	}

	subset := records
	if s.After(overallMin) || e.Before(overallMax) {
		subset = make([]domain.Record, 0, len(records))
		for _, r := range records {
			if r.Date.Before(s) || r.Date.After(e) {
				continue
			}
			subset = append(subset, r)
		}
	}

	grouped := make(map[string]*sums)
	for _, r := range subset {
		g, ok := grouped[r.Region]
		if !ok {
			g = newSums(len(schema.Measures))
			grouped[r.Region] = g
		}
		g.add(r)
	}

	states := make([]string, 0, len(grouped))
	for state := range grouped {
		states = append(states, state)
	}
	sort.Strings(states)

	for _, state := range states {
		g := grouped[state]
		breakdown.Rows = append(breakdown.Rows, domain.RegionRow{
			Region: state,
			Values: append([]int64(nil), g.values...),
			Total:  g.total,
		})
	}

	return breakdown
}

// ComputeMetadata derives the distinct sorted states and the date extent of
// the full record set. Callers run this before any filtering so the
// metadata always describes the whole dataset.
func ComputeMetadata(records []domain.Record) domain.Metadata {
	meta := domain.Metadata{}
	if len(records) == 0 {
		return meta
	}

	seen := make(map[string]struct{})
	for _, r := range records {
		if _, ok := seen[r.Region]; !ok {
			seen[r.Region] = struct{}{}
			meta.Regions = append(meta.Regions, r.Region)
		}
	}
	sort.Strings(meta.Regions)

	meta.MinDate, meta.MaxDate = dateExtent(records)
	return meta
}

// dateExtent returns the earliest and latest record dates. Records must be
// non-empty.
func dateExtent(records []domain.Record) (time.Time, time.Time) {
	min, max := records[0].Date, records[0].Date
	for _, r := range records[1:] {
		if r.Date.Before(min) {
			min = r.Date
		}
		if r.Date.After(max) {
			max = r.Date
		}
	}
	return min, max
}
