package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/fleetdesk/vanassign/pkg/core/model"
	"github.com/fleetdesk/vanassign/pkg/db"
)

// ErrBusy is returned when a confirm is requested while another one is still
// in flight for the same session.
var ErrBusy = fmt.Errorf("a confirm is already in progress")

// Session is the manual assignment controller for one day's board. It keeps
// two phases of state: confirmed pairings as last fetched from the store,
// and pending local edits (new pairings and removals) that only reach the
// store through an explicit Confirm.
//
// A session belongs to a single dispatcher and a single goroutine; it
// assumes one writer per day and carries no lock, only a busy flag guarding
// overlapping confirms. Concurrent dispatchers editing the same day can
// overwrite each other at the backend.
type Session struct {
	day       model.DayKey
	confirmed map[string]string // driverID -> vehicleID, as persisted
	pending   map[string]string // driverID -> vehicleID, local only
	removed   map[string]bool   // confirmed driverIDs queued for deletion
	selected  string            // driver pending vehicle selection, "" = idle
	busy      bool
}

// NewSession starts a session over the day's persisted assignments.
func NewSession(day model.DayKey, existing []model.Assignment) *Session {
	confirmed := make(map[string]string, len(existing))
	for _, a := range existing {
		confirmed[a.DriverID] = a.VehicleID
	}
	return &Session{
		day:       day,
		confirmed: confirmed,
		pending:   make(map[string]string),
		removed:   make(map[string]bool),
	}
}

// SelectDriver marks a driver as pending vehicle selection. Re-selecting the
// same driver cancels their pending assignment, if any, and returns the
// session to idle. At most one driver is pending selection at a time.
func (s *Session) SelectDriver(driverID string) {
	if s.selected == driverID {
		delete(s.pending, driverID)
		s.selected = ""
		return
	}
	s.selected = driverID
}

// SelectedDriver returns the driver pending vehicle selection, or "" when
// the session is idle.
func (s *Session) SelectedDriver() string {
	return s.selected
}

// SelectVehicle pairs the selected driver with the vehicle. With no driver
// selected it is a no-op. A vehicle already held by a different driver for
// the day is rejected with a ConflictError and the driver stays selected so
// the dispatcher can pick another van.
func (s *Session) SelectVehicle(vehicleID string) error {
	if s.selected == "" {
		return nil
	}

	if holder, ok := s.vehicleHolder(vehicleID); ok && holder != s.selected {
		return &db.ConflictError{
			VehicleID:      vehicleID,
			HeldByDriverID: holder,
			Day:            s.day.String(),
		}
	}

	s.pending[s.selected] = vehicleID
	delete(s.removed, s.selected)
	s.selected = ""
	return nil
}

// Remove drops the driver's assignment for the day: pending pairings are
// discarded locally, confirmed ones are queued for deletion at confirm time.
// Removing an unassigned driver is a no-op.
func (s *Session) Remove(driverID string) {
	delete(s.pending, driverID)
	if _, ok := s.confirmed[driverID]; ok {
		s.removed[driverID] = true
	}
	if s.selected == driverID {
		s.selected = ""
	}
}

// Propose merges heuristic proposals into the pending set, skipping any that
// would violate the per-day uniqueness invariants against current state.
func (s *Session) Propose(proposals []model.Assignment) {
	for _, p := range proposals {
		if _, assigned := s.effectiveVehicle(p.DriverID); assigned {
			continue
		}
		if _, held := s.vehicleHolder(p.VehicleID); held {
			continue
		}
		s.pending[p.DriverID] = p.VehicleID
	}
}

// Assignments returns the effective pairings for the day: confirmed state
// with pending edits applied, sorted by driver ID for stable output.
func (s *Session) Assignments() []model.Assignment {
	out := make([]model.Assignment, 0, len(s.confirmed)+len(s.pending))
	seen := make(map[string]bool, len(s.pending))

	for driverID, vehicleID := range s.pending {
		out = append(out, model.Assignment{DriverID: driverID, VehicleID: vehicleID, Day: s.day})
		seen[driverID] = true
	}
	for driverID, vehicleID := range s.confirmed {
		if seen[driverID] || s.removed[driverID] {
			continue
		}
		out = append(out, model.Assignment{DriverID: driverID, VehicleID: vehicleID, Day: s.day})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].DriverID < out[j].DriverID })
	return out
}

// PendingCount returns the number of unconfirmed local edits.
func (s *Session) PendingCount() int {
	return len(s.pending) + len(s.removed)
}

// Confirm flushes local edits to the store: queued removals first, then an
// upsert per pending pairing. On the first write failure it stops and
// returns, leaving the remaining local edits in place for retry; edits that
// did reach the store are promoted to confirmed state.
func (s *Session) Confirm(ctx context.Context, store db.AssignmentStore) error {
	if s.busy {
		return ErrBusy
	}
	s.busy = true
	defer func() { s.busy = false }()

	for driverID := range s.removed {
		if err := store.DeleteAssignment(ctx, driverID, s.day); err != nil {
			return fmt.Errorf("failed to remove assignment for driver %s: %w", driverID, err)
		}
		delete(s.confirmed, driverID)
		delete(s.removed, driverID)
	}

	// Deterministic write order keeps retries predictable.
	driverIDs := make([]string, 0, len(s.pending))
	for driverID := range s.pending {
		driverIDs = append(driverIDs, driverID)
	}
	sort.Strings(driverIDs)

	for _, driverID := range driverIDs {
		vehicleID := s.pending[driverID]
		if _, err := store.UpsertAssignment(ctx, driverID, vehicleID, s.day); err != nil {
			return fmt.Errorf("failed to save assignment %s -> %s: %w", driverID, vehicleID, err)
		}
		s.confirmed[driverID] = vehicleID
		delete(s.pending, driverID)
	}

	return nil
}

// effectiveVehicle returns the vehicle currently paired with the driver,
// considering pending edits and queued removals.
func (s *Session) effectiveVehicle(driverID string) (string, bool) {
	if v, ok := s.pending[driverID]; ok {
		return v, true
	}
	if s.removed[driverID] {
		return "", false
	}
	v, ok := s.confirmed[driverID]
	return v, ok
}

// vehicleHolder returns the driver currently holding the vehicle, if any.
func (s *Session) vehicleHolder(vehicleID string) (string, bool) {
	for driverID := range s.pending {
		if s.pending[driverID] == vehicleID {
			return driverID, true
		}
	}
	for driverID, v := range s.confirmed {
		if v == vehicleID && !s.removed[driverID] {
			if pv, ok := s.pending[driverID]; ok && pv != vehicleID {
				continue // re-paired locally, the old van is free
			}
			return driverID, true
		}
	}
	return "", false
}
