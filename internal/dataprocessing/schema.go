package dataprocessing

import (
	"aadhaarcli/internal/errors"
	"aadhaarcli/pkg/contracts/domain"
)

// Column names shared by every dataset category.
const (
	stateColumn = "state"
	dateColumn  = "date"
)

// dateFormat is the fixed day-month-year layout used by the portal exports.
const dateFormat = "02-01-2006"

// SchemaFor maps a dataset category to its measure columns. The column
// names follow the portal exports exactly, including the truncated
// "_17_" suffix on the update datasets.
func SchemaFor(category domain.Category) (domain.Schema, error) {
	switch category {
	case domain.CategoryEnrolment:
		return domain.Schema{
			Category: category,
			Measures: []string{"age_0_5", "age_5_17", "age_18_greater"},
		}, nil
	case domain.CategoryBiometric:
		return domain.Schema{
			Category: category,
			Measures: []string{"bio_age_5_17", "bio_age_17_"},
		}, nil
	case domain.CategoryDemographic:
		return domain.Schema{
			Category: category,
			Measures: []string{"demo_age_5_17", "demo_age_17_"},
		}, nil
	}
	return domain.Schema{}, errors.NewUnknownCategoryError(string(category))
}
