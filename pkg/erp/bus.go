package erp

const (
	BusStatusActive      = "active"
	BusStatusIdle        = "idle"
	BusStatusAssigned    = "assigned"
	BusStatusMaintenance = "maintenance"
	BusStatusRetired     = "retired"
)

// EligibleBusStatuses are the statuses a bus can hold and still be scheduled.
var EligibleBusStatuses = []string{BusStatusActive, BusStatusIdle}

type Bus struct {
	PrimaryIdentifier string `bson:",omitempty"`

	DepotRef string `bson:",omitempty"`

	CapacityTotal int `bson:",omitempty"`

	Status string `bson:",omitempty"`
}

// Capacity falls back to a standard 45 seater when the record has no capacity.
func (b *Bus) Capacity() int {
	if b.CapacityTotal > 0 {
		return b.CapacityTotal
	}

	return 45
}
