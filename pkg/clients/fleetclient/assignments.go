package fleetclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/fleetdesk/vanassign/pkg/core/model"
	"github.com/fleetdesk/vanassign/pkg/db"
)

// defaultAssignmentStatusID is the status attached to assignments created by
// this tool; the backend treats it as "assigned, not yet departed".
const defaultAssignmentStatusID = "assigned"

var _ db.AssignmentStore = (*Client)(nil)

type assignmentRecord struct {
	ID         string `json:"_id"`
	EmployeeID string `json:"employeeId"`
	VanID      string `json:"vanId"`
	Date       string `json:"date"`
	StatusID   string `json:"statusId"`
}

type createAssignmentRequest struct {
	EmployeeID string `json:"employeeId"`
	VanID      string `json:"vanId"`
	Date       string `json:"date"`
	StatusID   string `json:"statusId"`
	DSPCode    string `json:"dsp_code"`
}

type updateAssignmentRequest struct {
	VanID    string `json:"vanId"`
	StatusID string `json:"statusId"`
}

// GetAssignments returns the persisted assignments for the given day.
func (c *Client) GetAssignments(ctx context.Context, day model.DayKey) ([]db.Assignment, error) {
	path := "/vanAssignments/date/" + url.PathEscape(day.String())

	var records []assignmentRecord
	if err := c.get(ctx, path, nil, &records); err != nil {
		return nil, fmt.Errorf("failed to fetch assignments for %s: %w", day, err)
	}

	assignments := make([]db.Assignment, 0, len(records))
	for _, r := range records {
		assignments = append(assignments, db.Assignment{
			ID:        r.ID,
			DriverID:  r.EmployeeID,
			VehicleID: r.VanID,
			Day:       r.Date,
			StatusID:  r.StatusID,
		})
	}
	return assignments, nil
}

// UpsertAssignment creates or re-pairs the assignment for (driverID, day).
//
// The backend has no conflict detection of its own, so the client re-queries
// the day's assignments to decide create-vs-update and to reject vehicles
// already held by another driver. Two dispatchers editing the same day can
// still race between the read and the write; the backend is the source of
// truth and the loser's board is corrected on the next fetch.
func (c *Client) UpsertAssignment(ctx context.Context, driverID, vehicleID string, day model.DayKey) (db.Assignment, error) {
	existing, err := c.GetAssignments(ctx, day)
	if err != nil {
		return db.Assignment{}, err
	}

	var current *db.Assignment
	for i := range existing {
		a := existing[i]
		if a.VehicleID == vehicleID && a.DriverID != driverID {
			return db.Assignment{}, &db.ConflictError{
				VehicleID:      vehicleID,
				HeldByDriverID: a.DriverID,
				Day:            day.String(),
			}
		}
		if a.DriverID == driverID {
			current = &existing[i]
		}
	}

	if current != nil {
		if current.VehicleID == vehicleID {
			return *current, nil
		}
		path := "/vanAssignments/assignments/" + url.PathEscape(day.String()) + "/" + url.PathEscape(driverID)
		body := updateAssignmentRequest{VanID: vehicleID, StatusID: current.StatusID}
		if err := c.send(ctx, http.MethodPut, path, nil, body, nil); err != nil {
			return db.Assignment{}, fmt.Errorf("failed to update assignment for driver %s: %w", driverID, err)
		}
		updated := *current
		updated.VehicleID = vehicleID
		return updated, nil
	}

	created := db.Assignment{
		ID:        uuid.NewString(),
		DriverID:  driverID,
		VehicleID: vehicleID,
		Day:       day.String(),
		StatusID:  defaultAssignmentStatusID,
	}
	body := createAssignmentRequest{
		EmployeeID: driverID,
		VanID:      vehicleID,
		Date:       day.String(),
		StatusID:   created.StatusID,
		DSPCode:    c.dspCode,
	}
	var resp assignmentRecord
	if err := c.send(ctx, http.MethodPost, "/vanAssignments/create", nil, body, &resp); err != nil {
		return db.Assignment{}, fmt.Errorf("failed to create assignment for driver %s: %w", driverID, err)
	}
	if resp.ID != "" {
		created.ID = resp.ID
	}
	return created, nil
}

// DeleteAssignment removes the assignment for (driverID, day). An absent
// assignment is a no-op.
func (c *Client) DeleteAssignment(ctx context.Context, driverID string, day model.DayKey) error {
	path := "/vanAssignments/delete/" + url.PathEscape(driverID) + "/" + url.PathEscape(day.String())
	err := c.send(ctx, http.MethodDelete, path, nil, nil, nil)
	if err == nil {
		return nil
	}

	var ae *apiError
	if errors.As(err, &ae) && ae.StatusCode == http.StatusNotFound {
		return nil
	}
	return fmt.Errorf("failed to delete assignment for driver %s: %w", driverID, err)
}
