package services

import (
	"math"
	"testing"

	"estatehub/contexts/listings/property-service/domain/entities"
	domainerrors "estatehub/contexts/listings/property-service/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleMatrix(t *testing.T) {
	cases := []struct {
		current   entities.PropertyStatus
		requested string
		want      entities.PropertyStatus
		err       error
	}{
		{entities.PropertyStatusPending, "Active", entities.PropertyStatusActive, nil},
		{entities.PropertyStatusActive, "pending", entities.PropertyStatusPending, nil},
		{entities.PropertyStatusActive, "Active", entities.PropertyStatusActive, nil},
		{entities.PropertyStatusActive, "Sold", "", domainerrors.ErrInvalidStatus},
		{entities.PropertyStatusPending, "Rented", "", domainerrors.ErrInvalidStatus},
		{entities.PropertyStatusSold, "Active", "", domainerrors.ErrInvalidStatus},
		{entities.PropertyStatusRented, "Pending", "", domainerrors.ErrInvalidStatus},
		{entities.PropertyStatusPending, "Archived", "", domainerrors.ErrInvalidStatus},
	}
	for _, tc := range cases {
		got, err := Toggle(tc.current, tc.requested)
		if tc.err != nil {
			assert.ErrorIs(t, err, tc.err, "%s -> %s", tc.current, tc.requested)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

func TestInitialStatus(t *testing.T) {
	active := "Active"
	bogus := "Archived"

	status, err := InitialStatus(nil, true)
	require.NoError(t, err)
	assert.Equal(t, entities.PropertyStatusPending, status)

	status, err = InitialStatus(&active, false)
	require.NoError(t, err)
	assert.Equal(t, entities.PropertyStatusPending, status)

	status, err = InitialStatus(&active, true)
	require.NoError(t, err)
	assert.Equal(t, entities.PropertyStatusActive, status)

	_, err = InitialStatus(&bogus, true)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidStatus)
}

func TestApplyRejectsUnknownAmenityAndUnit(t *testing.T) {
	unit := "hectares"
	_, err := Apply(entities.Property{}, Fields{SizeUnit: &unit})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidProperty)

	_, err = Apply(entities.Property{}, Fields{Amenities: []string{"Helipad"}})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidProperty)
}

func TestApplyRejectsNonFiniteNumbers(t *testing.T) {
	land := func(price, size float64) Fields {
		return Fields{
			Title:       ptr("Plot"),
			Description: ptr("Flat plot near the river"),
			Type:        ptr("Land"),
			Price:       &price,
			Location:    ptr("Riverside"),
			Size:        &size,
			SizeUnit:    ptr("acres"),
		}
	}

	_, err := Apply(entities.Property{}, land(1000, 2))
	require.NoError(t, err)

	for name, fields := range map[string]Fields{
		"nan price":      land(math.NaN(), 2),
		"inf price":      land(math.Inf(1), 2),
		"negative price": land(-5, 2),
		"nan size":       land(1000, math.NaN()),
		"inf size":       land(1000, math.Inf(1)),
		"neg inf size":   land(1000, math.Inf(-1)),
	} {
		_, err := Apply(entities.Property{}, fields)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidProperty, name)
	}
}

func TestSplitAmenities(t *testing.T) {
	assert.Equal(t, []string{"Gym", "Pool", "Garden"}, SplitAmenities([]string{"Gym, Pool", " Garden ", ""}))
}

func TestSummarize(t *testing.T) {
	summary := Summarize([]entities.Property{
		{Status: entities.PropertyStatusPending},
		{Status: entities.PropertyStatusActive},
		{Status: entities.PropertyStatusActive},
		{Status: entities.PropertyStatusSold},
	})
	assert.Equal(t, Summary{Total: 4, Pending: 1, Active: 2, Sold: 1}, summary)
}

func ptr[T any](value T) *T { return &value }
