package fleetclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fleetdesk/vanassign/pkg/core/model"
)

// confirmedDriverRecord is the backend's shape for a confirmed availability
// row joined with shift metadata.
type confirmedDriverRecord struct {
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
	ShiftID    string `json:"shiftId"`
	ShiftName  string `json:"shiftName"`
	Presence   string `json:"presence"`
}

// ConfirmedDrivers fetches the drivers whose availability for the given day
// is confirmed.
func (c *Client) ConfirmedDrivers(ctx context.Context, day model.DayKey) ([]model.Driver, error) {
	query := url.Values{}
	query.Set("selectedDay", day.String())

	var records []confirmedDriverRecord
	if err := c.get(ctx, "/disponibilites/presence/confirmed-by-day", query, &records); err != nil {
		return nil, fmt.Errorf("failed to fetch confirmed drivers: %w", err)
	}

	drivers := make([]model.Driver, 0, len(records))
	for _, r := range records {
		drivers = append(drivers, model.Driver{
			ID:        r.EmployeeID,
			Name:      r.Name,
			ShiftID:   r.ShiftID,
			ShiftName: r.ShiftName,
			Confirmed: true,
		})
	}
	return drivers, nil
}
