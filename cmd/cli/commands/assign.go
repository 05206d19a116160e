package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fleetdesk/vanassign/pkg/core/services"
	"github.com/fleetdesk/vanassign/pkg/db"
)

// AssignCmd creates the assign command
func AssignCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "assign <date> <driver_id> <van_id>",
		Short: "Assign a van to a driver for a day",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDayArg(args[0])
			if err != nil {
				return err
			}
			driverID, vanID := args[1], args[2]

			record, err := services.Assign(app.Ctx, app.Store, app.Logger, day, driverID, vanID)
			if db.IsConflict(err) {
				return fmt.Errorf("cannot assign: %w", err)
			}
			if err != nil {
				return err
			}

			fmt.Printf("✓ Driver %s -> van %s on %s\n", record.DriverID, record.VehicleID, day)
			return nil
		},
	}
}

// UnassignCmd creates the unassign command
func UnassignCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unassign <date> <driver_id>",
		Short: "Remove a driver's van assignment for a day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDayArg(args[0])
			if err != nil {
				return err
			}

			if err := services.Unassign(app.Ctx, app.Store, app.Logger, day, args[1]); err != nil {
				return err
			}

			fmt.Printf("✓ Driver %s unassigned on %s\n", args[1], day)
			return nil
		},
	}
}
