package erp

const RouteStatusActive = "active"

type Route struct {
	PrimaryIdentifier string `bson:",omitempty"`

	DepotRef string `bson:",omitempty"`

	Name string `bson:",omitempty"`

	BaseFare   float64 `bson:",omitempty"`
	FarePerKm  float64 `bson:",omitempty"`
	DistanceKm float64 `bson:",omitempty"`

	EstimatedDurationMinutes int `bson:",omitempty"`

	Popular bool

	Status string `bson:",omitempty"`
}

// FareBase is the pre-multiplier fare for one trip on this route.
// Uses the distance rate when the route carries distance data.
func (r *Route) FareBase() float64 {
	if r.DistanceKm > 0 && r.FarePerKm > 0 {
		return r.BaseFare + r.DistanceKm*r.FarePerKm
	}

	return r.BaseFare
}

// DurationMinutes falls back to a two hour trip when the route has no estimate.
func (r *Route) DurationMinutes() int {
	if r.EstimatedDurationMinutes > 0 {
		return r.EstimatedDurationMinutes
	}

	return 120
}
