package erp

const (
	StaffRoleDriver    = "driver"
	StaffRoleConductor = "conductor"

	StaffStatusActive = "active"
)

type StaffMember struct {
	PrimaryIdentifier string `bson:",omitempty"`

	DepotRef string `bson:",omitempty"`

	Name string `bson:",omitempty"`

	Role string `bson:",omitempty"`

	Status string `bson:",omitempty"`
}
