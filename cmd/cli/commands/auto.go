package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fleetdesk/vanassign/pkg/core/engine"
	"github.com/fleetdesk/vanassign/pkg/core/services"
)

// AutoCmd creates the auto command
func AutoCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auto <date>",
		Short: "Auto-assign vans to unassigned drivers, preferring yesterday's van",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			confirm, _ := cmd.Flags().GetBool("confirm")

			day, err := parseDayArg(args[0])
			if err != nil {
				return err
			}

			app.Logger.Debug("auto command",
				zap.String("day", day.String()),
				zap.Bool("confirm", confirm))

			board := services.LoadDay(app.Ctx, app.Roster, app.Store, app.Logger, day)
			result := services.AutoAssignDay(app.Ctx, app.Store, app.Logger, board)

			switch result.Reason {
			case engine.ReasonAllDriversAssigned:
				fmt.Println("\nℹ️  All confirmed drivers already have a van.")
				return nil
			case engine.ReasonNoVansAvailable:
				fmt.Println("\nℹ️  No vans available for this day.")
				return nil
			}

			fmt.Printf("\n🚐 Proposed assignments for %s:\n\n", day)
			for _, p := range result.Proposals {
				fmt.Printf("  %-12s -> van %s\n", driverName(board, p.DriverID), p.VehicleID)
			}
			if len(result.Unassigned) > 0 {
				fmt.Printf("\n⚠️  %d drivers left without a van (no vans remaining):\n", len(result.Unassigned))
				for _, d := range result.Unassigned {
					fmt.Printf("  %s\n", d.Name)
				}
			}
			fmt.Println()

			if !confirm {
				fmt.Println("Dry run - re-run with --confirm to save these assignments.")
				return nil
			}

			saved, failed, err := services.ConfirmAssignments(app.Ctx, app.Store, app.Logger, result.Proposals)
			if err != nil {
				return fmt.Errorf("confirm aborted: %w", err)
			}

			fmt.Printf("✓ Saved %d assignments.\n", len(saved))
			if len(failed) > 0 {
				fmt.Printf("✗ %d assignments failed:\n", len(failed))
				for _, f := range failed {
					fmt.Printf("  %s -> van %s: %v\n", f.DriverID, f.VehicleID, f.Err)
				}
			}

			return nil
		},
	}

	cmd.Flags().Bool("confirm", false, "Persist the proposed assignments")

	return cmd
}

func driverName(board *services.DayBoard, driverID string) string {
	for _, d := range board.Drivers {
		if d.ID == driverID {
			return d.Name
		}
	}
	return driverID
}
