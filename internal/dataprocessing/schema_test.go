package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aadhaarcli/internal/errors"
	"aadhaarcli/pkg/contracts/domain"
)

func TestSchemaFor(t *testing.T) {
	tests := []struct {
		category domain.Category
		measures []string
	}{
		{domain.CategoryEnrolment, []string{"age_0_5", "age_5_17", "age_18_greater"}},
		{domain.CategoryBiometric, []string{"bio_age_5_17", "bio_age_17_"}},
		{domain.CategoryDemographic, []string{"demo_age_5_17", "demo_age_17_"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			schema, err := SchemaFor(tt.category)
			require.NoError(t, err)
			assert.Equal(t, tt.category, schema.Category)
			assert.Equal(t, tt.measures, schema.Measures)
		})
	}
}

func TestSchemaFor_Unknown(t *testing.T) {
	_, err := SchemaFor(domain.Category("voter_id"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeUnknownCategory))
}

func TestSchemaTotal(t *testing.T) {
	schema, err := SchemaFor(domain.CategoryEnrolment)
	require.NoError(t, err)

	assert.Equal(t, int64(17), schema.Total([]int64{10, 5, 2}))
	assert.Equal(t, int64(0), schema.Total([]int64{0, 0, 0}))
}
