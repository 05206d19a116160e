package roster

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fleetdesk/vanassign/pkg/clients/fleetclient"
	"github.com/fleetdesk/vanassign/pkg/core/model"
)

// mockBackend implements DriverClient and FleetClient for testing
type mockBackend struct {
	drivers    []model.Driver
	driversErr error
	vehicles   []fleetclient.VehicleRecord
	vehicleErr error
	issues     []fleetclient.IssueRecord
	issuesErr  error
	statuses   []fleetclient.StatusRecord
	statusErr  error
}

func (m *mockBackend) ConfirmedDrivers(ctx context.Context, day model.DayKey) ([]model.Driver, error) {
	return m.drivers, m.driversErr
}

func (m *mockBackend) Vehicles(ctx context.Context) ([]fleetclient.VehicleRecord, error) {
	return m.vehicles, m.vehicleErr
}

func (m *mockBackend) ReportIssues(ctx context.Context) ([]fleetclient.IssueRecord, error) {
	return m.issues, m.issuesErr
}

func (m *mockBackend) Statuses(ctx context.Context) ([]fleetclient.StatusRecord, error) {
	return m.statuses, m.statusErr
}

func testDay(t *testing.T) model.DayKey {
	t.Helper()
	d, err := model.ParseISODay("2024-10-21")
	require.NoError(t, err)
	return d
}

func TestResolveConfirmedDriversSortsByShiftThenName(t *testing.T) {
	backend := &mockBackend{drivers: []model.Driver{
		{ID: "1", Name: "Zoe", ShiftName: "Early"},
		{ID: "2", Name: "Ana", ShiftName: "Late"},
		{ID: "3", Name: "Ben", ShiftName: "Early"},
	}}
	r := NewResolver(backend, backend, zap.NewNop())

	drivers := r.ResolveConfirmedDrivers(context.Background(), testDay(t))

	require.Len(t, drivers, 3)
	assert.Equal(t, "Ben", drivers[0].Name)
	assert.Equal(t, "Zoe", drivers[1].Name)
	assert.Equal(t, "Ana", drivers[2].Name)
}

func TestResolveConfirmedDriversDegradesToEmpty(t *testing.T) {
	backend := &mockBackend{driversErr: fmt.Errorf("backend down")}
	r := NewResolver(backend, backend, zap.NewNop())

	drivers := r.ResolveConfirmedDrivers(context.Background(), testDay(t))
	assert.NotNil(t, drivers)
	assert.Empty(t, drivers)
}

func TestResolveDrivableVansJoinsIssuesAndStatuses(t *testing.T) {
	backend := &mockBackend{
		vehicles: []fleetclient.VehicleRecord{
			{VehicleID: "V1", Number: "101"},
			{VehicleID: "V2", Number: "102"},
			{VehicleID: "V3", Number: "103"},
		},
		issues: []fleetclient.IssueRecord{
			{VehicleID: "V1", Drivable: true, StatusID: "ok"},
			{VehicleID: "V2", Drivable: false, StatusID: "shop"},
			{VehicleID: "V3", Drivable: true, StatusID: "missing-status"},
		},
		statuses: []fleetclient.StatusRecord{
			{StatusID: "ok", Label: "Road ready", Color: "#4CAF50"},
		},
	}
	r := NewResolver(backend, backend, zap.NewNop())

	vans := r.ResolveDrivableVans(context.Background(), testDay(t))

	// V2 is not drivable; V3 falls back to the Unknown status.
	require.Len(t, vans, 2)
	assert.Equal(t, "V1", vans[0].ID)
	assert.Equal(t, "Road ready", vans[0].StatusLabel)
	assert.Equal(t, "V3", vans[1].ID)
	assert.Equal(t, model.StatusUnknownLabel, vans[1].StatusLabel)
	assert.Equal(t, model.StatusUnknownColor, vans[1].StatusColor)
}

func TestResolveDrivableVansDegradesToEmpty(t *testing.T) {
	backend := &mockBackend{issuesErr: fmt.Errorf("backend down")}
	r := NewResolver(backend, backend, zap.NewNop())

	vans := r.ResolveDrivableVans(context.Background(), testDay(t))
	assert.NotNil(t, vans)
	assert.Empty(t, vans)
}

func TestResolveDrivableVansSurvivesMissingStatusTable(t *testing.T) {
	backend := &mockBackend{
		vehicles:  []fleetclient.VehicleRecord{{VehicleID: "V1", Number: "101"}},
		issues:    []fleetclient.IssueRecord{{VehicleID: "V1", Drivable: true, StatusID: "ok"}},
		statusErr: fmt.Errorf("backend down"),
	}
	r := NewResolver(backend, backend, zap.NewNop())

	vans := r.ResolveDrivableVans(context.Background(), testDay(t))
	require.Len(t, vans, 1)
	assert.Equal(t, model.StatusUnknownLabel, vans[0].StatusLabel)
}
