package db

// Assignment represents a persisted van assignment record
type Assignment struct {
	ID        string // uuid
	DriverID  string
	VehicleID string
	Day       string // backend day key format, e.g. "Sun Oct 20 2024"
	StatusID  string
}
