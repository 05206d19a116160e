package model

// Driver represents a person confirmed to work a given day. Driver records
// come from the HR availability workflow and are read-only here.
type Driver struct {
	ID        string
	Name      string
	ShiftID   string
	ShiftName string
	Confirmed bool
}

// Vehicle represents a fleet van. Drivable is derived from the open issue
// reports: true iff at least one report marks the van drivable. Status label
// and color are display-only, resolved against the status table.
type Vehicle struct {
	ID          string
	Number      string
	Drivable    bool
	StatusLabel string
	StatusColor string
}

// Unknown-status display defaults, used when an issue's status ID does not
// resolve against the status table.
const (
	StatusUnknownLabel = "Unknown"
	StatusUnknownColor = "#9E9E9E"
)

// Assignment pairs one driver with one vehicle for one calendar day. For a
// fixed day, both DriverID and VehicleID are unique across assignments.
type Assignment struct {
	DriverID  string
	VehicleID string
	Day       DayKey
}
