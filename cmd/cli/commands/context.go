package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fleetdesk/vanassign/internal/config"
	"github.com/fleetdesk/vanassign/pkg/core/model"
	"github.com/fleetdesk/vanassign/pkg/core/roster"
	"github.com/fleetdesk/vanassign/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg    *config.Config
	Store  db.AssignmentStore
	Roster *roster.Resolver
	Logger *zap.Logger
	Ctx    context.Context
}

// parseDayArg accepts a date as ISO ("2024-10-21") or in the backend's wire
// form ("Mon Oct 21 2024")
func parseDayArg(arg string) (model.DayKey, error) {
	if day, err := model.ParseISODay(arg); err == nil {
		return day, nil
	}
	if day, err := model.ParseDayKey(arg); err == nil {
		return day, nil
	}
	return model.DayKey{}, fmt.Errorf("could not parse date %q (use YYYY-MM-DD)", arg)
}
