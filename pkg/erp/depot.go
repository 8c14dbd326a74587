package erp

const DepotStatusActive = "active"

type Depot struct {
	PrimaryIdentifier string `bson:",omitempty"`

	Name string `bson:",omitempty"`

	Status string `bson:",omitempty"`
}
