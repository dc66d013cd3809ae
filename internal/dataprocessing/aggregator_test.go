package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aadhaarcli/pkg/contracts/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func record(t *testing.T, schema domain.Schema, state string, d time.Time, values ...int64) domain.Record {
	t.Helper()
	require.Len(t, values, len(schema.Measures))
	return domain.Record{
		Region: state,
		Date:   d,
		Values: values,
		Total:  schema.Total(values),
	}
}

// exampleRecords builds the worked example from the system documentation:
// two January rows for bihar and one February row for odisha.
func exampleRecords(t *testing.T, schema domain.Schema) []domain.Record {
	t.Helper()
	return []domain.Record{
		record(t, schema, "bihar", date(2024, time.January, 5), 10, 5, 2),
		record(t, schema, "bihar", date(2024, time.January, 20), 3, 1, 0),
		record(t, schema, "odisha", date(2024, time.February, 10), 1, 1, 1),
	}
}

func TestByPeriod_AllStates(t *testing.T) {
	schema := enrolmentSchema(t)
	series := ByPeriod(schema, exampleRecords(t, schema), nil)

	require.Len(t, series.Rows, 2)

	jan := series.Rows[0]
	assert.Equal(t, month(2024, time.January), jan.Period)
	assert.Equal(t, "2024-01", jan.PeriodLabel())
	assert.Equal(t, []int64{13, 6, 2}, jan.Values)
	assert.Equal(t, int64(21), jan.Total)
	assert.Equal(t, int64(21), jan.CumulativeTotal)

	feb := series.Rows[1]
	assert.Equal(t, month(2024, time.February), feb.Period)
	assert.Equal(t, []int64{1, 1, 1}, feb.Values)
	assert.Equal(t, int64(3), feb.Total)
	assert.Equal(t, []int64{14, 7, 3}, feb.Cumulative)
	assert.Equal(t, int64(24), feb.CumulativeTotal)
}

func TestByPeriod_StateFilter(t *testing.T) {
	schema := enrolmentSchema(t)
	state := "odisha"
	series := ByPeriod(schema, exampleRecords(t, schema), &state)

	require.Len(t, series.Rows, 1)
	assert.Equal(t, month(2024, time.February), series.Rows[0].Period)
	assert.Equal(t, int64(3), series.Rows[0].Total)
}

func TestByPeriod_StateFilterNoMatch(t *testing.T) {
	schema := enrolmentSchema(t)
	state := "goa"
	series := ByPeriod(schema, exampleRecords(t, schema), &state)

	assert.Empty(t, series.Rows)
}

func TestByPeriod_SparseMonthsStayAbsent(t *testing.T) {
	schema := enrolmentSchema(t)
	records := []domain.Record{
		record(t, schema, "bihar", date(2024, time.January, 5), 1, 0, 0),
		record(t, schema, "bihar", date(2024, time.March, 5), 0, 1, 0),
	}

	series := ByPeriod(schema, records, nil)

	require.Len(t, series.Rows, 2)
	assert.Equal(t, month(2024, time.January), series.Rows[0].Period)
	assert.Equal(t, month(2024, time.March), series.Rows[1].Period)
}

func TestByPeriod_CumulativeInvariants(t *testing.T) {
	schema := enrolmentSchema(t)
	records := []domain.Record{
		record(t, schema, "bihar", date(2023, time.November, 3), 4, 0, 9),
		record(t, schema, "kerala", date(2023, time.December, 9), 2, 7, 1),
		record(t, schema, "kerala", date(2024, time.January, 14), 5, 5, 5),
		record(t, schema, "odisha", date(2024, time.January, 30), 1, 3, 8),
		record(t, schema, "bihar", date(2024, time.April, 2), 0, 0, 6),
	}

	series := ByPeriod(schema, records, nil)
	require.NotEmpty(t, series.Rows)

	var runningTotal int64
	prev := make([]int64, len(schema.Measures))
	for i, row := range series.Rows {
		// The cumulative total must equal both the sum of per-measure
		// cumulatives and the running sum of the total column.
		var sumOfCumulatives int64
		for _, c := range row.Cumulative {
			sumOfCumulatives += c
		}
		runningTotal += row.Total
		assert.Equal(t, sumOfCumulatives, row.CumulativeTotal, "row %d", i)
		assert.Equal(t, runningTotal, row.CumulativeTotal, "row %d", i)

		// Cumulatives never decrease for non-negative measures.
		for j, c := range row.Cumulative {
			assert.GreaterOrEqual(t, c, prev[j], "row %d measure %d", i, j)
			prev[j] = c
		}
	}
}

func TestByPeriod_Empty(t *testing.T) {
	schema := enrolmentSchema(t)
	series := ByPeriod(schema, nil, nil)
	assert.Empty(t, series.Rows)
}

func TestByRegion_FullRange(t *testing.T) {
	schema := enrolmentSchema(t)
	breakdown := ByRegion(schema, exampleRecords(t, schema), nil, nil)

	require.Len(t, breakdown.Rows, 2)
	assert.Equal(t, "bihar", breakdown.Rows[0].Region)
	assert.Equal(t, []int64{13, 6, 2}, breakdown.Rows[0].Values)
	assert.Equal(t, int64(21), breakdown.Rows[0].Total)
	assert.Equal(t, "odisha", breakdown.Rows[1].Region)
	assert.Equal(t, int64(3), breakdown.Rows[1].Total)
}

// Passing bounds equal to the dataset's true extent must reproduce the
// unbounded result exactly, inclusivity included.
func TestByRegion_DefaultRangeEquivalence(t *testing.T) {
	schema := enrolmentSchema(t)
	records := exampleRecords(t, schema)

	min := date(2024, time.January, 5)
	max := date(2024, time.February, 10)

	unbounded := ByRegion(schema, records, nil, nil)
	bounded := ByRegion(schema, records, &min, &max)

	assert.Equal(t, unbounded, bounded)
}

func TestByRegion_NarrowedRange(t *testing.T) {
	schema := enrolmentSchema(t)
	records := exampleRecords(t, schema)

	end := date(2024, time.January, 31)
	breakdown := ByRegion(schema, records, nil, &end)

	require.Len(t, breakdown.Rows, 1)
	assert.Equal(t, "bihar", breakdown.Rows[0].Region)
	assert.Equal(t, int64(21), breakdown.Rows[0].Total)
}

func TestByRegion_InclusiveBounds(t *testing.T) {
	schema := enrolmentSchema(t)
	records := exampleRecords(t, schema)

	// Bounds sitting exactly on record dates keep those records.
	start := date(2024, time.January, 20)
	end := date(2024, time.February, 10)
	breakdown := ByRegion(schema, records, &start, &end)

	require.Len(t, breakdown.Rows, 2)
	assert.Equal(t, int64(4), breakdown.Rows[0].Total) // bihar 20-01 only
	assert.Equal(t, int64(3), breakdown.Rows[1].Total)
}

func TestByRegion_EmptyMatchIsNotAnError(t *testing.T) {
	schema := enrolmentSchema(t)
	records := exampleRecords(t, schema)

	start := date(2025, time.June, 1)
	end := date(2025, time.June, 30)
	breakdown := ByRegion(schema, records, &start, &end)

	assert.Empty(t, breakdown.Rows)
}

func TestByRegion_EmptyRecords(t *testing.T) {
	schema := enrolmentSchema(t)
	assert.Empty(t, ByRegion(schema, nil, nil, nil).Rows)
}

func TestComputeMetadata(t *testing.T) {
	schema := enrolmentSchema(t)
	meta := ComputeMetadata(exampleRecords(t, schema))

	assert.Equal(t, []string{"bihar", "odisha"}, meta.Regions)
	assert.Equal(t, "2024-01-05", meta.MinDateISO())
	assert.Equal(t, "2024-02-10", meta.MaxDateISO())
}

func TestComputeMetadata_Empty(t *testing.T) {
	meta := ComputeMetadata(nil)
	assert.Empty(t, meta.Regions)
	assert.Equal(t, "", meta.MinDateISO())
	assert.Equal(t, "", meta.MaxDateISO())
}
