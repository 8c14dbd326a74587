package erp

import "time"

const TripStatusScheduled = "scheduled"

// Trip is one planned departure of a bus on a route. Generated trips are
// written with status "scheduled" and are mutated afterwards only by the
// booking flows, never by the scheduler.
type Trip struct {
	RouteRef string `bson:",omitempty"`
	BusRef   string `bson:",omitempty"`

	// Crew references stay empty when a depot has no active crew
	DriverRef    string `bson:",omitempty"`
	ConductorRef string `bson:",omitempty"`

	DepotRef string `bson:",omitempty"`

	ServiceDate time.Time `bson:",omitempty"`

	// Times of day as "HH:MM". EndTime wraps past midnight for overnight
	// trips so it can sort before StartTime.
	StartTime string `bson:",omitempty"`
	EndTime   string `bson:",omitempty"`

	Status string `bson:",omitempty"`

	Fare float64

	Capacity       int
	AvailableSeats int
	BookedSeats    int

	BookingOpen bool

	Notes string `bson:",omitempty"`

	CreationDateTime     time.Time `bson:",omitempty"`
	ModificationDateTime time.Time `bson:",omitempty"`

	SchedulingMetadata *TripSchedulingMetadata `bson:",omitempty"`
}

type TripSchedulingMetadata struct {
	Year      int
	Week      int
	DayOfWeek string `bson:",omitempty"`
	Season    string `bson:",omitempty"`

	Weekend     bool
	Holiday     bool
	Maintenance bool
}
