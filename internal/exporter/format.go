// Package exporter renders aggregates as tables and writes them to CSV or
// JSON for a presentation host.
package exporter

import (
	"strconv"

	"aadhaarcli/pkg/contracts/domain"
)

// Table is an ordered tabular projection of an aggregate.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// TimeSeriesTable projects a time series to its external tabular form:
// month, raw measures and total. The cumulative columns drive companion
// visualizations only and are stripped here.
func TimeSeriesTable(series domain.TimeSeries) Table {
	table := Table{Headers: append([]string{"month"}, series.Schema.Measures...)}
	table.Headers = append(table.Headers, "total")

	for _, row := range series.Rows {
		cells := make([]string, 0, len(table.Headers))
		cells = append(cells, row.PeriodLabel())
		for _, v := range row.Values {
			cells = append(cells, strconv.FormatInt(v, 10))
		}
		cells = append(cells, strconv.FormatInt(row.Total, 10))
		table.Rows = append(table.Rows, cells)
	}
	return table
}

// RegionTable projects a per-state breakdown to its external tabular form.
func RegionTable(breakdown domain.RegionBreakdown) Table {
	table := Table{Headers: append([]string{"state"}, breakdown.Schema.Measures...)}
	table.Headers = append(table.Headers, "total")

	for _, row := range breakdown.Rows {
		cells := make([]string, 0, len(table.Headers))
		cells = append(cells, row.Region)
		for _, v := range row.Values {
			cells = append(cells, strconv.FormatInt(v, 10))
		}
		cells = append(cells, strconv.FormatInt(row.Total, 10))
		table.Rows = append(table.Rows, cells)
	}
	return table
}
