package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetdesk/vanassign/pkg/core/model"
)

func day(t *testing.T, iso string) model.DayKey {
	t.Helper()
	d, err := model.ParseISODay(iso)
	require.NoError(t, err)
	return d
}

func drivers(ids ...string) []model.Driver {
	out := make([]model.Driver, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.Driver{ID: id, Name: "Driver " + id, Confirmed: true})
	}
	return out
}

func vans(ids ...string) []model.Vehicle {
	out := make([]model.Vehicle, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.Vehicle{ID: id, Number: id, Drivable: true})
	}
	return out
}

func TestAutoAssignEmptyInputs(t *testing.T) {
	d := day(t, "2024-10-21")

	tests := []struct {
		name    string
		drivers []model.Driver
		vans    []model.Vehicle
		reason  string
	}{
		{"no drivers no vans", nil, nil, ReasonAllDriversAssigned},
		{"no drivers", nil, vans("V1"), ReasonAllDriversAssigned},
		{"no vans", drivers("A"), nil, ReasonNoVansAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AutoAssign(d, tt.drivers, tt.vans, nil, nil)
			assert.Empty(t, result.Proposals)
			assert.Equal(t, tt.reason, result.Reason)
		})
	}
}

func TestAutoAssignPreviousDayAffinity(t *testing.T) {
	d := day(t, "2024-10-21")

	result := AutoAssign(d, drivers("A"), vans("V1", "V2"), nil, map[string]string{"A": "V2"})

	require.Len(t, result.Proposals, 1)
	assert.Equal(t, "A", result.Proposals[0].DriverID)
	assert.Equal(t, "V2", result.Proposals[0].VehicleID)
}

func TestAutoAssignAffinityFallback(t *testing.T) {
	d := day(t, "2024-10-21")

	// A's previous van V9 is no longer drivable; A gets the first available
	// van rather than staying unassigned.
	result := AutoAssign(d, drivers("A"), vans("V1", "V2"), nil, map[string]string{"A": "V9"})

	require.Len(t, result.Proposals, 1)
	assert.Equal(t, "V1", result.Proposals[0].VehicleID)
	assert.Empty(t, result.Unassigned)
}

func TestAutoAssignExhaustionLeavesRemainderUnassigned(t *testing.T) {
	d := day(t, "2024-10-21")

	result := AutoAssign(d, drivers("A", "B", "C"), vans("V1"), nil, nil)

	require.Len(t, result.Proposals, 1)
	assert.Equal(t, "A", result.Proposals[0].DriverID)
	require.Len(t, result.Unassigned, 2)
	assert.Equal(t, "B", result.Unassigned[0].ID)
	assert.Equal(t, "C", result.Unassigned[1].ID)
	assert.Equal(t, ReasonVansExhausted, result.Reason)
}

func TestAutoAssignSkipsAlreadyAssigned(t *testing.T) {
	d := day(t, "2024-10-21")
	existing := []model.Assignment{{DriverID: "A", VehicleID: "V1", Day: d}}

	result := AutoAssign(d, drivers("A", "B"), vans("V1", "V2"), existing, nil)

	require.Len(t, result.Proposals, 1)
	assert.Equal(t, "B", result.Proposals[0].DriverID)
	assert.Equal(t, "V2", result.Proposals[0].VehicleID)
}

func TestAutoAssignUniqueness(t *testing.T) {
	d := day(t, "2024-10-21")

	// Two drivers share a previous-day van; only one can get it.
	previous := map[string]string{"A": "V1", "B": "V1"}
	result := AutoAssign(d, drivers("A", "B", "C"), vans("V1", "V2", "V3"), nil, previous)

	seenDrivers := make(map[string]bool)
	seenVans := make(map[string]bool)
	for _, p := range result.Proposals {
		assert.False(t, seenDrivers[p.DriverID], "driver %s assigned twice", p.DriverID)
		assert.False(t, seenVans[p.VehicleID], "van %s assigned twice", p.VehicleID)
		seenDrivers[p.DriverID] = true
		seenVans[p.VehicleID] = true
	}

	// A is processed first and keeps its van; B falls back.
	require.Len(t, result.Proposals, 3)
	assert.Equal(t, "V1", result.Proposals[0].VehicleID)
	assert.NotEqual(t, "V1", result.Proposals[1].VehicleID)
}

func TestAutoAssignEndToEndScenario(t *testing.T) {
	d := day(t, "2024-10-21")

	// Previous day 2024-10-20 had A -> V2.
	previous := map[string]string{"A": "V2"}

	first := AutoAssign(d, drivers("A", "B", "C"), vans("V1", "V2"), nil, previous)

	require.Len(t, first.Proposals, 2)
	assert.Equal(t, model.Assignment{DriverID: "A", VehicleID: "V2", Day: d}, first.Proposals[0])
	assert.Equal(t, model.Assignment{DriverID: "B", VehicleID: "V1", Day: d}, first.Proposals[1])
	require.Len(t, first.Unassigned, 1)
	assert.Equal(t, "C", first.Unassigned[0].ID)

	// Re-running after persisting the first pass proposes nothing further:
	// C stays unassigned because both vans are taken.
	second := AutoAssign(d, drivers("A", "B", "C"), vans("V1", "V2"), first.Proposals, previous)
	assert.Empty(t, second.Proposals)
	assert.Equal(t, ReasonNoVansAvailable, second.Reason)
}
