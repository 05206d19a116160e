package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/fleetdesk/vanassign/pkg/core/engine"
	"github.com/fleetdesk/vanassign/pkg/core/model"
	"github.com/fleetdesk/vanassign/pkg/db"
)

// AutoAssignDay runs the heuristic over the loaded board. The previous day's
// assignments bias van choice; if that read fails the pass degrades to pure
// first-available assignment. Proposals are not persisted here - that is
// ConfirmAssignments' job.
func AutoAssignDay(ctx context.Context, store db.AssignmentStore, logger *zap.Logger, board *DayBoard) engine.AutoAssignResult {
	previous := previousDayVans(ctx, store, logger, board.Day)

	result := engine.AutoAssign(board.Day, board.Drivers, board.Vans, board.Assignments, previous)

	logger.Debug("Auto-assign pass complete",
		zap.String("day", board.Day.String()),
		zap.String("reason", result.Reason),
		zap.Int("proposals", len(result.Proposals)),
		zap.Int("unassigned", len(result.Unassigned)))

	return result
}

// previousDayVans projects yesterday's assignments to driverID -> vehicleID.
func previousDayVans(ctx context.Context, store db.AssignmentStore, logger *zap.Logger, day model.DayKey) map[string]string {
	prevDay := day.Prev()
	records, err := store.GetAssignments(ctx, prevDay)
	if err != nil {
		logger.Warn("could not load previous day's assignments, skipping affinity",
			zap.String("day", prevDay.String()),
			zap.Error(err))
		return nil
	}

	previous := make(map[string]string, len(records))
	for _, r := range records {
		previous[r.DriverID] = r.VehicleID
	}
	return previous
}
