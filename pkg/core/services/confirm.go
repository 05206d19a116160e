package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/fleetdesk/vanassign/pkg/core/model"
	"github.com/fleetdesk/vanassign/pkg/db"
)

// FailedWrite records one proposal the store rejected.
type FailedWrite struct {
	DriverID  string
	VehicleID string
	Err       error
}

// ConfirmAssignments persists each proposal through the store. Failures are
// collected per pair rather than aborting the batch, so one bad write does
// not strand the rest of the day's pairings; the caller reports them and the
// dispatcher retries. Only context cancellation stops the batch early.
func ConfirmAssignments(ctx context.Context, store db.AssignmentStore, logger *zap.Logger, proposals []model.Assignment) (saved []db.Assignment, failed []FailedWrite, err error) {
	for _, p := range proposals {
		if ctx.Err() != nil {
			return saved, failed, ctx.Err()
		}

		record, upsertErr := store.UpsertAssignment(ctx, p.DriverID, p.VehicleID, p.Day)
		if upsertErr != nil {
			logger.Warn("failed to save assignment",
				zap.String("driver_id", p.DriverID),
				zap.String("vehicle_id", p.VehicleID),
				zap.String("day", p.Day.String()),
				zap.Error(upsertErr))
			failed = append(failed, FailedWrite{DriverID: p.DriverID, VehicleID: p.VehicleID, Err: upsertErr})
			continue
		}

		saved = append(saved, record)
	}

	logger.Debug("Confirm complete",
		zap.Int("saved", len(saved)),
		zap.Int("failed", len(failed)))

	return saved, failed, nil
}
