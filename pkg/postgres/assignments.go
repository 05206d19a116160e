package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fleetdesk/vanassign/pkg/core/model"
	"github.com/fleetdesk/vanassign/pkg/db"
)

var _ db.AssignmentStore = (*DB)(nil)

// uniqueViolation is the Postgres error code for unique constraint breaches.
const uniqueViolation = "23505"

// GetAssignments retrieves the assignment records for a day
func (d *DB) GetAssignments(ctx context.Context, day model.DayKey) ([]db.Assignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, driver_id, vehicle_id, day, status_id
		FROM van_assignment
		WHERE day = $1
	`, day.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.Assignment
	for rows.Next() {
		var a db.Assignment
		if err := rows.Scan(&a.ID, &a.DriverID, &a.VehicleID, &a.Day, &a.StatusID); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}

// UpsertAssignment creates or re-pairs the assignment for (driverID, day).
// The schema's per-day unique constraints back the conflict check, so unlike
// the REST store there is no read-then-write race: a racing writer loses at
// the constraint and gets the same ConflictError.
func (d *DB) UpsertAssignment(ctx context.Context, driverID, vehicleID string, day model.DayKey) (db.Assignment, error) {
	var holder string
	err := d.pool.QueryRow(ctx, `
		SELECT driver_id FROM van_assignment
		WHERE day = $1 AND vehicle_id = $2 AND driver_id <> $3
	`, day.String(), vehicleID, driverID).Scan(&holder)
	if err == nil {
		return db.Assignment{}, &db.ConflictError{
			VehicleID:      vehicleID,
			HeldByDriverID: holder,
			Day:            day.String(),
		}
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return db.Assignment{}, fmt.Errorf("failed to check vehicle holder: %w", err)
	}

	a := db.Assignment{
		ID:        uuid.NewString(),
		DriverID:  driverID,
		VehicleID: vehicleID,
		Day:       day.String(),
		StatusID:  "assigned",
	}

	err = d.pool.QueryRow(ctx, `
		INSERT INTO van_assignment (id, driver_id, vehicle_id, day, status_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT ON CONSTRAINT van_assignment_driver_day
		DO UPDATE SET vehicle_id = EXCLUDED.vehicle_id, updated_at = NOW()
		RETURNING id, status_id
	`, a.ID, a.DriverID, a.VehicleID, a.Day, a.StatusID).Scan(&a.ID, &a.StatusID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			// A racing writer took the vehicle between our check and the
			// insert; the constraint turned the race into a conflict.
			return db.Assignment{}, &db.ConflictError{
				VehicleID: vehicleID,
				Day:       day.String(),
			}
		}
		return db.Assignment{}, fmt.Errorf("failed to upsert assignment: %w", err)
	}

	return a, nil
}

// DeleteAssignment removes the assignment for (driverID, day); absent rows
// are a no-op
func (d *DB) DeleteAssignment(ctx context.Context, driverID string, day model.DayKey) error {
	_, err := d.pool.Exec(ctx, `
		DELETE FROM van_assignment WHERE driver_id = $1 AND day = $2
	`, driverID, day.String())
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	return nil
}
