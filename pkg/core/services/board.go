// Package services orchestrates the resolvers, the assignment engine and the
// assignment store into the operations the CLI exposes.
package services

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/fleetdesk/vanassign/pkg/core/model"
	"github.com/fleetdesk/vanassign/pkg/db"
)

// RosterResolver defines the availability and fleet lookups LoadDay needs.
type RosterResolver interface {
	ResolveConfirmedDrivers(ctx context.Context, day model.DayKey) []model.Driver
	ResolveDrivableVans(ctx context.Context, day model.DayKey) []model.Vehicle
}

// DayBoard is the loaded state for one day: who can work, what can roll, and
// what is already paired.
type DayBoard struct {
	Day         model.DayKey
	Drivers     []model.Driver
	Vans        []model.Vehicle
	Assignments []model.Assignment
}

// AssignmentFor returns the vehicle assigned to the driver, if any.
func (b *DayBoard) AssignmentFor(driverID string) (string, bool) {
	for _, a := range b.Assignments {
		if a.DriverID == driverID {
			return a.VehicleID, true
		}
	}
	return "", false
}

// LoadDay fetches drivers, vans and existing assignments for the day. The
// three reads are independent and are issued concurrently. Every read
// degrades to an empty collection on failure, so a board always comes back.
func LoadDay(ctx context.Context, roster RosterResolver, store db.AssignmentStore, logger *zap.Logger, day model.DayKey) *DayBoard {
	logger.Debug("Loading day board", zap.String("day", day.String()))

	board := &DayBoard{Day: day}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		board.Drivers = roster.ResolveConfirmedDrivers(ctx, day)
	}()

	go func() {
		defer wg.Done()
		board.Vans = roster.ResolveDrivableVans(ctx, day)
	}()

	go func() {
		defer wg.Done()
		board.Assignments = loadAssignments(ctx, store, logger, day)
	}()

	wg.Wait()

	logger.Debug("Day board loaded",
		zap.String("day", day.String()),
		zap.Int("drivers", len(board.Drivers)),
		zap.Int("vans", len(board.Vans)),
		zap.Int("assignments", len(board.Assignments)))

	return board
}

// loadAssignments reads the day's persisted assignments, degrading to an
// empty slice when the backend is unreachable.
func loadAssignments(ctx context.Context, store db.AssignmentStore, logger *zap.Logger, day model.DayKey) []model.Assignment {
	records, err := store.GetAssignments(ctx, day)
	if err != nil {
		logger.Warn("could not load assignments, treating day as unassigned",
			zap.String("day", day.String()),
			zap.Error(err))
		return []model.Assignment{}
	}

	assignments := make([]model.Assignment, 0, len(records))
	for _, r := range records {
		assignments = append(assignments, model.Assignment{
			DriverID:  r.DriverID,
			VehicleID: r.VehicleID,
			Day:       day,
		})
	}
	return assignments
}
