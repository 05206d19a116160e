package db

import (
	"context"

	"github.com/fleetdesk/vanassign/pkg/core/model"
)

// AssignmentStore defines the interface for assignment persistence.
// Implementations: the fleet REST backend (pkg/clients/fleetclient) and
// PostgreSQL for self-hosted deployments (pkg/postgres).
type AssignmentStore interface {
	// GetAssignments returns all assignments persisted for the given day.
	GetAssignments(ctx context.Context, day model.DayKey) ([]Assignment, error)

	// UpsertAssignment creates the assignment for (driverID, day), or updates
	// its vehicle if a record already exists and the vehicle changed. It
	// returns a ConflictError, before any write, when vehicleID is already
	// held by a different driver on that day.
	UpsertAssignment(ctx context.Context, driverID, vehicleID string, day model.DayKey) (Assignment, error)

	// DeleteAssignment removes the assignment for (driverID, day). Deleting
	// an absent assignment is a no-op, not an error.
	DeleteAssignment(ctx context.Context, driverID string, day model.DayKey) error
}
