package fleetclient

import (
	"context"
	"fmt"
)

// VehicleRecord is a fleet unit as returned by /vehicles/all.
type VehicleRecord struct {
	VehicleID string `json:"vehicleId"`
	Number    string `json:"vehicleNumber"`
}

// IssueRecord is an open issue report as returned by /reportIssues/all. A
// vehicle is drivable iff one of its reports carries drivable=true.
type IssueRecord struct {
	VehicleID string `json:"vanId"`
	Drivable  bool   `json:"drivable"`
	StatusID  string `json:"statusId"`
}

// StatusRecord is a row of the status table (/statuses/all), display only.
type StatusRecord struct {
	StatusID string `json:"statusId"`
	Label    string `json:"name"`
	Color    string `json:"color"`
}

// Vehicles fetches all fleet units.
func (c *Client) Vehicles(ctx context.Context) ([]VehicleRecord, error) {
	var records []VehicleRecord
	if err := c.get(ctx, "/vehicles/all", nil, &records); err != nil {
		return nil, fmt.Errorf("failed to fetch vehicles: %w", err)
	}
	return records, nil
}

// ReportIssues fetches all open issue reports.
func (c *Client) ReportIssues(ctx context.Context) ([]IssueRecord, error) {
	var records []IssueRecord
	if err := c.get(ctx, "/reportIssues/all", nil, &records); err != nil {
		return nil, fmt.Errorf("failed to fetch issue reports: %w", err)
	}
	return records, nil
}

// Statuses fetches the status table.
func (c *Client) Statuses(ctx context.Context) ([]StatusRecord, error) {
	var records []StatusRecord
	if err := c.get(ctx, "/statuses/all", nil, &records); err != nil {
		return nil, fmt.Errorf("failed to fetch statuses: %w", err)
	}
	return records, nil
}
