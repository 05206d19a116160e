package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fleetdesk/vanassign/pkg/core/model"
	"github.com/fleetdesk/vanassign/pkg/db"
)

// Assign pairs one driver with one vehicle for the day, creating or
// re-pairing as needed. Conflicts with another driver's assignment surface
// as a ConflictError before anything is written.
func Assign(ctx context.Context, store db.AssignmentStore, logger *zap.Logger, day model.DayKey, driverID, vehicleID string) (db.Assignment, error) {
	logger.Debug("Manual assign",
		zap.String("day", day.String()),
		zap.String("driver_id", driverID),
		zap.String("vehicle_id", vehicleID))

	record, err := store.UpsertAssignment(ctx, driverID, vehicleID, day)
	if err != nil {
		return db.Assignment{}, fmt.Errorf("failed to assign van %s to driver %s: %w", vehicleID, driverID, err)
	}
	return record, nil
}

// Unassign removes the driver's assignment for the day. Removing an
// unassigned driver is a no-op.
func Unassign(ctx context.Context, store db.AssignmentStore, logger *zap.Logger, day model.DayKey, driverID string) error {
	logger.Debug("Manual unassign",
		zap.String("day", day.String()),
		zap.String("driver_id", driverID))

	if err := store.DeleteAssignment(ctx, driverID, day); err != nil {
		return fmt.Errorf("failed to unassign driver %s: %w", driverID, err)
	}
	return nil
}
