package validation

import (
	"errors"
	"testing"

	"github.com/Domenick1991/airsales/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	FlightID int64  `json:"flight_id" validate:"gt=0"`
	Origin   string `json:"origin" validate:"required"`
}

func TestStruct(t *testing.T) {
	v := New()

	assert.NoError(t, v.Struct(sample{FlightID: 1, Origin: "LIM"}))

	err := v.Struct(sample{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	var verrs Errors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 2)
	assert.Equal(t, "flight_id", verrs[0].Field)
	assert.Equal(t, "must be greater than 0", verrs[0].Message)
	assert.Equal(t, "origin", verrs[1].Field)
	assert.Contains(t, err.Error(), "origin: is required")
}
