package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fleetdesk/vanassign/pkg/core/engine"
	"github.com/fleetdesk/vanassign/pkg/core/services"
	"github.com/fleetdesk/vanassign/pkg/db"
)

// PlanCmd creates the plan command, an interactive pairing session for one
// day's board. Nothing is persisted until 'save'.
func PlanCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "plan <date>",
		Short: "Interactively pair drivers and vans for a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDayArg(args[0])
			if err != nil {
				return err
			}

			board := services.LoadDay(app.Ctx, app.Roster, app.Store, app.Logger, day)
			session := engine.NewSession(day, board.Assignments)

			fmt.Printf("\n📝 Planning %s - %d drivers, %d vans\n", day, len(board.Drivers), len(board.Vans))
			fmt.Println("Commands: driver <id>, van <id>, remove <id>, auto, show, save, done")

			scanner := bufio.NewScanner(os.Stdin)
			for {
				prompt := "plan> "
				if selected := session.SelectedDriver(); selected != "" {
					prompt = fmt.Sprintf("plan [%s]> ", driverName(board, selected))
				}
				fmt.Print(prompt)

				if !scanner.Scan() {
					break
				}
				parts := strings.Fields(strings.TrimSpace(scanner.Text()))
				if len(parts) == 0 {
					continue
				}

				switch parts[0] {
				case "driver":
					if len(parts) != 2 {
						fmt.Println("usage: driver <id>")
						continue
					}
					session.SelectDriver(parts[1])

				case "van":
					if len(parts) != 2 {
						fmt.Println("usage: van <id>")
						continue
					}
					if session.SelectedDriver() == "" {
						fmt.Println("select a driver first")
						continue
					}
					if err := session.SelectVehicle(parts[1]); err != nil {
						if db.IsConflict(err) {
							fmt.Printf("⚠️  %v - pick another van\n", err)
							continue
						}
						return err
					}

				case "remove":
					if len(parts) != 2 {
						fmt.Println("usage: remove <driver_id>")
						continue
					}
					session.Remove(parts[1])

				case "auto":
					result := services.AutoAssignDay(app.Ctx, app.Store, app.Logger, &services.DayBoard{
						Day:         day,
						Drivers:     board.Drivers,
						Vans:        board.Vans,
						Assignments: session.Assignments(),
					})
					session.Propose(result.Proposals)
					fmt.Printf("merged %d proposals (%s)\n", len(result.Proposals), result.Reason)

				case "show":
					printPlan(board, session)

				case "save":
					if err := session.Confirm(app.Ctx, app.Store); err != nil {
						fmt.Printf("⚠️  save failed, local edits kept: %v\n", err)
						continue
					}
					fmt.Println("✓ saved")

				case "done", "exit", "quit":
					if session.PendingCount() > 0 {
						fmt.Printf("⚠️  %d unsaved edits discarded\n", session.PendingCount())
					}
					return nil

				default:
					fmt.Printf("unknown command %q\n", parts[0])
				}
			}

			return scanner.Err()
		},
	}
}

func printPlan(board *services.DayBoard, session *engine.Session) {
	assignments := session.Assignments()
	byDriver := make(map[string]string, len(assignments))
	for _, a := range assignments {
		byDriver[a.DriverID] = a.VehicleID
	}

	fmt.Println()
	for _, d := range board.Drivers {
		van := "—"
		if v, ok := byDriver[d.ID]; ok {
			van = "van " + v
		}
		fmt.Printf("  %-10s %-24s %s\n", d.ID, d.Name, van)
	}
	fmt.Printf("\n%d unsaved edits\n\n", session.PendingCount())
}
