package erp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteFareBase(t *testing.T) {
	flat := Route{BaseFare: 100}
	assert.Equal(t, 100.0, flat.FareBase())

	distanceBased := Route{BaseFare: 50, FarePerKm: 2.5, DistanceKm: 100}
	assert.Equal(t, 300.0, distanceBased.FareBase())

	// Distance without a rate (or vice versa) falls back to the flat fare.
	missingRate := Route{BaseFare: 50, DistanceKm: 100}
	assert.Equal(t, 50.0, missingRate.FareBase())
}

func TestRouteDurationMinutes(t *testing.T) {
	assert.Equal(t, 90, (&Route{EstimatedDurationMinutes: 90}).DurationMinutes())
	assert.Equal(t, 120, (&Route{}).DurationMinutes(), "defaults to a two hour trip")
}

func TestBusCapacity(t *testing.T) {
	assert.Equal(t, 52, (&Bus{CapacityTotal: 52}).Capacity())
	assert.Equal(t, 45, (&Bus{}).Capacity(), "defaults to a standard 45 seater")
}
