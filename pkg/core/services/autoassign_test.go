package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fleetdesk/vanassign/pkg/core/engine"
	"github.com/fleetdesk/vanassign/pkg/core/model"
	"github.com/fleetdesk/vanassign/pkg/db"
)

func TestAutoAssignDayUsesPreviousDayAffinity(t *testing.T) {
	day := testDay(t, "2024-10-21")
	store := newMockAssignmentStore()
	store.byDay[day.Prev().String()] = []db.Assignment{
		{DriverID: "A", VehicleID: "V2", Day: day.Prev().String()},
	}

	board := &DayBoard{
		Day:     day,
		Drivers: []model.Driver{{ID: "A"}, {ID: "B"}, {ID: "C"}},
		Vans:    []model.Vehicle{{ID: "V1"}, {ID: "V2"}},
	}

	result := AutoAssignDay(context.Background(), store, zap.NewNop(), board)

	require.Len(t, result.Proposals, 2)
	assert.Equal(t, "V2", result.Proposals[0].VehicleID)
	assert.Equal(t, "A", result.Proposals[0].DriverID)
	assert.Equal(t, "V1", result.Proposals[1].VehicleID)
	require.Len(t, result.Unassigned, 1)
	assert.Equal(t, "C", result.Unassigned[0].ID)
}

func TestAutoAssignDayDegradesWhenPreviousDayUnavailable(t *testing.T) {
	day := testDay(t, "2024-10-21")
	store := newMockAssignmentStore()
	store.getErr = fmt.Errorf("backend down")

	board := &DayBoard{
		Day:     day,
		Drivers: []model.Driver{{ID: "A"}},
		Vans:    []model.Vehicle{{ID: "V1"}, {ID: "V2"}},
	}

	// Affinity is skipped, first-available still works.
	result := AutoAssignDay(context.Background(), store, zap.NewNop(), board)
	require.Len(t, result.Proposals, 1)
	assert.Equal(t, "V1", result.Proposals[0].VehicleID)
	assert.Equal(t, engine.ReasonAssigned, result.Reason)
}

func TestAutoAssignDayReportsEmptyBoards(t *testing.T) {
	day := testDay(t, "2024-10-21")
	store := newMockAssignmentStore()

	noDrivers := AutoAssignDay(context.Background(), store, zap.NewNop(), &DayBoard{Day: day, Vans: []model.Vehicle{{ID: "V1"}}})
	assert.Equal(t, engine.ReasonAllDriversAssigned, noDrivers.Reason)

	noVans := AutoAssignDay(context.Background(), store, zap.NewNop(), &DayBoard{Day: day, Drivers: []model.Driver{{ID: "A"}}})
	assert.Equal(t, engine.ReasonNoVansAvailable, noVans.Reason)
}

func TestConfirmAssignmentsCollectsPerPairFailures(t *testing.T) {
	day := testDay(t, "2024-10-21")
	store := newMockAssignmentStore()
	store.upsertErr = map[string]error{"B": fmt.Errorf("write refused")}

	proposals := []model.Assignment{
		{DriverID: "A", VehicleID: "V1", Day: day},
		{DriverID: "B", VehicleID: "V2", Day: day},
		{DriverID: "C", VehicleID: "V3", Day: day},
	}

	saved, failed, err := ConfirmAssignments(context.Background(), store, zap.NewNop(), proposals)
	require.NoError(t, err)

	require.Len(t, saved, 2)
	assert.Equal(t, "A", saved[0].DriverID)
	assert.Equal(t, "C", saved[1].DriverID)
	require.Len(t, failed, 1)
	assert.Equal(t, "B", failed[0].DriverID)
}

func TestConfirmThenReloadRoundTrip(t *testing.T) {
	day := testDay(t, "2024-10-21")
	store := newMockAssignmentStore()

	board := &DayBoard{
		Day:     day,
		Drivers: []model.Driver{{ID: "A"}, {ID: "B"}},
		Vans:    []model.Vehicle{{ID: "V1"}, {ID: "V2"}},
	}

	result := AutoAssignDay(context.Background(), store, zap.NewNop(), board)
	_, failed, err := ConfirmAssignments(context.Background(), store, zap.NewNop(), result.Proposals)
	require.NoError(t, err)
	require.Empty(t, failed)

	// A second pass over the refreshed board finds nothing left to do.
	board.Assignments = loadAssignments(context.Background(), store, zap.NewNop(), day)
	again := AutoAssignDay(context.Background(), store, zap.NewNop(), board)
	assert.Empty(t, again.Proposals)
	assert.Equal(t, engine.ReasonAllDriversAssigned, again.Reason)
}

func TestManualAssignAndUnassign(t *testing.T) {
	day := testDay(t, "2024-10-21")
	store := newMockAssignmentStore()

	record, err := Assign(context.Background(), store, zap.NewNop(), day, "A", "V1")
	require.NoError(t, err)
	assert.Equal(t, "A", record.DriverID)
	assert.Equal(t, "V1", record.VehicleID)

	require.NoError(t, Unassign(context.Background(), store, zap.NewNop(), day, "A"))
	assert.Equal(t, []string{"A"}, store.deletions)
}
