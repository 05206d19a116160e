package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fleetdesk/vanassign/pkg/core/model"
	"github.com/fleetdesk/vanassign/pkg/core/services"
)

// ScheduleCmd creates the schedule command
func ScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "List the upcoming operating days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			count, _ := cmd.Flags().GetInt("count")
			fromArg, _ := cmd.Flags().GetString("from")

			from := model.NewDayKey(time.Now())
			if fromArg != "" {
				var err error
				from, err = parseDayArg(fromArg)
				if err != nil {
					return err
				}
			}

			days, err := services.UpcomingOperatingDays(app.Cfg.WorkingDaysRRule, from, count)
			if err != nil {
				return err
			}

			fmt.Printf("\nNext %d operating days:\n\n", len(days))
			for i, d := range days {
				fmt.Printf("  %2d. %s (%s)\n", i+1, d.ISO(), d.String())
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Int("count", 7, "Number of operating days to list")
	cmd.Flags().String("from", "", "Start date (defaults to today)")

	return cmd
}
