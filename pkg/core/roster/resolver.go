// Package roster resolves the day's working drivers and drivable vans from
// the fleet backend. Read failures degrade to empty results: a board with no
// drivers or no vans is a valid, if useless, state and must not take the
// whole screen down.
package roster

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/fleetdesk/vanassign/pkg/clients/fleetclient"
	"github.com/fleetdesk/vanassign/pkg/core/model"
)

// DriverClient is the subset of the fleet client used to resolve drivers.
type DriverClient interface {
	ConfirmedDrivers(ctx context.Context, day model.DayKey) ([]model.Driver, error)
}

// FleetClient is the subset of the fleet client used to resolve vans.
type FleetClient interface {
	Vehicles(ctx context.Context) ([]fleetclient.VehicleRecord, error)
	ReportIssues(ctx context.Context) ([]fleetclient.IssueRecord, error)
	Statuses(ctx context.Context) ([]fleetclient.StatusRecord, error)
}

// Resolver loads availability and fleet state for a day.
type Resolver struct {
	drivers DriverClient
	fleet   FleetClient
	logger  *zap.Logger
}

// NewResolver creates a resolver over the given backend clients.
func NewResolver(drivers DriverClient, fleet FleetClient, logger *zap.Logger) *Resolver {
	return &Resolver{drivers: drivers, fleet: fleet, logger: logger}
}

// ResolveConfirmedDrivers returns the drivers confirmed to work the given
// day, sorted by shift name then driver name. A fetch failure yields an
// empty slice, never an error.
func (r *Resolver) ResolveConfirmedDrivers(ctx context.Context, day model.DayKey) []model.Driver {
	drivers, err := r.drivers.ConfirmedDrivers(ctx, day)
	if err != nil {
		r.logger.Warn("could not load confirmed drivers, treating day as empty",
			zap.String("day", day.String()),
			zap.Error(err))
		return []model.Driver{}
	}

	sort.SliceStable(drivers, func(i, j int) bool {
		if drivers[i].ShiftName != drivers[j].ShiftName {
			return drivers[i].ShiftName < drivers[j].ShiftName
		}
		return drivers[i].Name < drivers[j].Name
	})
	return drivers
}

// ResolveDrivableVans returns the vans currently flagged drivable, annotated
// with their status label and color. Vehicles are not date-scoped by the
// backend; the day parameter keeps call sites uniform with the driver side.
// A fetch failure on any of the three reads yields an empty slice.
func (r *Resolver) ResolveDrivableVans(ctx context.Context, day model.DayKey) []model.Vehicle {
	vehicles, err := r.fleet.Vehicles(ctx)
	if err != nil {
		r.logger.Warn("could not load vehicles, treating fleet as empty",
			zap.String("day", day.String()),
			zap.Error(err))
		return []model.Vehicle{}
	}

	issues, err := r.fleet.ReportIssues(ctx)
	if err != nil {
		r.logger.Warn("could not load issue reports, treating fleet as empty",
			zap.String("day", day.String()),
			zap.Error(err))
		return []model.Vehicle{}
	}

	statuses, err := r.fleet.Statuses(ctx)
	if err != nil {
		r.logger.Warn("could not load status table, statuses will show as Unknown",
			zap.String("day", day.String()),
			zap.Error(err))
		statuses = nil
	}

	return joinDrivable(vehicles, issues, statuses)
}

// joinDrivable projects the vehicle/issue/status tables into the drivable
// van list. A van is drivable iff at least one issue report marks it
// drivable; the latest such report's status wins for display.
func joinDrivable(vehicles []fleetclient.VehicleRecord, issues []fleetclient.IssueRecord, statuses []fleetclient.StatusRecord) []model.Vehicle {
	statusByID := make(map[string]fleetclient.StatusRecord, len(statuses))
	for _, s := range statuses {
		statusByID[s.StatusID] = s
	}

	drivableStatus := make(map[string]string) // vehicleID -> statusId
	for _, issue := range issues {
		if issue.Drivable {
			drivableStatus[issue.VehicleID] = issue.StatusID
		}
	}

	vans := make([]model.Vehicle, 0, len(drivableStatus))
	for _, v := range vehicles {
		statusID, ok := drivableStatus[v.VehicleID]
		if !ok {
			continue
		}

		label, color := model.StatusUnknownLabel, model.StatusUnknownColor
		if s, ok := statusByID[statusID]; ok {
			label, color = s.Label, s.Color
		}

		vans = append(vans, model.Vehicle{
			ID:          v.VehicleID,
			Number:      v.Number,
			Drivable:    true,
			StatusLabel: label,
			StatusColor: color,
		})
	}

	sort.SliceStable(vans, func(i, j int) bool { return vans[i].Number < vans[j].Number })
	return vans
}
