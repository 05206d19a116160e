package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fleetdesk/vanassign/pkg/core/services"
)

// BoardCmd creates the board command
func BoardCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "board <date>",
		Short: "Show the day's drivers, vans and assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDayArg(args[0])
			if err != nil {
				return err
			}

			board := services.LoadDay(app.Ctx, app.Roster, app.Store, app.Logger, day)

			fmt.Printf("\n📋 Board for %s\n\n", day)

			if len(board.Drivers) == 0 {
				fmt.Println("No confirmed drivers for this day.")
			} else {
				fmt.Printf("Confirmed drivers (%d):\n", len(board.Drivers))
				for _, d := range board.Drivers {
					van := "—"
					if v, ok := board.AssignmentFor(d.ID); ok {
						van = "van " + v
					}
					fmt.Printf("  %-24s %-12s %s\n", d.Name, d.ShiftName, van)
				}
			}
			fmt.Println()

			if len(board.Vans) == 0 {
				fmt.Println("No drivable vans.")
			} else {
				fmt.Printf("Drivable vans (%d):\n", len(board.Vans))
				assignedVans := make(map[string]bool, len(board.Assignments))
				for _, a := range board.Assignments {
					assignedVans[a.VehicleID] = true
				}
				for _, v := range board.Vans {
					state := "free"
					if assignedVans[v.ID] {
						state = "assigned"
					}
					fmt.Printf("  #%-8s %-16s %s\n", v.Number, v.StatusLabel, state)
				}
			}
			fmt.Println()

			return nil
		},
	}
}
