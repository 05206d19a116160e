// Package engine holds the daily van assignment core: the greedy
// auto-assignment heuristic and the manual pairing session.
package engine

import "github.com/fleetdesk/vanassign/pkg/core/model"

// Reasons reported by AutoAssign for its terminal state. None of these are
// errors; an empty proposal list is a normal outcome.
const (
	ReasonAssigned           = "assigned"
	ReasonAllDriversAssigned = "all-drivers-assigned"
	ReasonNoVansAvailable    = "no-vans-available"
	ReasonVansExhausted      = "vans-exhausted"
)

// AutoAssignResult is the outcome of one heuristic pass.
type AutoAssignResult struct {
	// Proposals are the new pairings, in driver processing order. They are
	// not persisted; persistence happens through an explicit confirm step.
	Proposals []model.Assignment

	// Unassigned lists drivers left without a van after the pass, in input
	// order.
	Unassigned []model.Driver

	// Reason describes the terminal state of the pass.
	Reason string
}

// AutoAssign computes a matching between unassigned drivers and unassigned
// vans for one day, preferring each driver's van from the previous calendar
// day when it is still free. Drivers are processed in their given order and
// fall back to the first remaining van in stable order; fairness and
// optimality are deliberately not goals, since the previous-day affinity is
// a preference heuristic rather than a correctness requirement.
//
// previous maps driverID to the vehicle held the day before; callers that
// fail to load it pass nil and get pure first-available assignment. The
// function is pure and never fails for input reasons.
func AutoAssign(day model.DayKey, drivers []model.Driver, vans []model.Vehicle, existing []model.Assignment, previous map[string]string) AutoAssignResult {
	assignedDrivers := make(map[string]bool, len(existing))
	assignedVans := make(map[string]bool, len(existing))
	for _, a := range existing {
		assignedDrivers[a.DriverID] = true
		assignedVans[a.VehicleID] = true
	}

	var unassigned []model.Driver
	for _, d := range drivers {
		if !assignedDrivers[d.ID] {
			unassigned = append(unassigned, d)
		}
	}

	var available []model.Vehicle
	for _, v := range vans {
		if !assignedVans[v.ID] {
			available = append(available, v)
		}
	}

	result := AutoAssignResult{Proposals: []model.Assignment{}, Unassigned: []model.Driver{}}

	if len(unassigned) == 0 {
		result.Reason = ReasonAllDriversAssigned
		return result
	}
	if len(available) == 0 {
		result.Reason = ReasonNoVansAvailable
		result.Unassigned = unassigned
		return result
	}

	for _, driver := range unassigned {
		if len(available) == 0 {
			result.Unassigned = append(result.Unassigned, driver)
			continue
		}

		pick := 0
		if prevVan, ok := previous[driver.ID]; ok {
			for i, v := range available {
				if v.ID == prevVan {
					pick = i
					break
				}
			}
		}

		result.Proposals = append(result.Proposals, model.Assignment{
			DriverID:  driver.ID,
			VehicleID: available[pick].ID,
			Day:       day,
		})
		available = append(available[:pick], available[pick+1:]...)
	}

	result.Reason = ReasonAssigned
	if len(result.Unassigned) > 0 {
		result.Reason = ReasonVansExhausted
	}
	return result
}
