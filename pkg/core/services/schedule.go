package services

import (
	"fmt"

	"github.com/teambition/rrule-go"

	"github.com/fleetdesk/vanassign/pkg/core/model"
)

// UpcomingOperatingDays expands the configured working-days rule into the
// next count operating days starting at from (inclusive).
func UpcomingOperatingDays(workingDaysRule string, from model.DayKey, count int) ([]model.DayKey, error) {
	if count <= 0 {
		return []model.DayKey{}, nil
	}

	rule, err := rrule.StrToRRule(workingDaysRule)
	if err != nil {
		return nil, fmt.Errorf("invalid working days rule: %w", err)
	}
	rule.DTStart(from.Time())

	// Generous window; daily-ish rules produce count occurrences well within
	// a year.
	occurrences := rule.Between(from.Time(), from.Time().AddDate(1, 0, 0), true)

	days := make([]model.DayKey, 0, count)
	for _, occ := range occurrences {
		days = append(days, model.NewDayKey(occ))
		if len(days) == count {
			break
		}
	}
	return days, nil
}

// IsOperatingDay reports whether the day matches the working-days rule.
func IsOperatingDay(workingDaysRule string, day model.DayKey) (bool, error) {
	days, err := UpcomingOperatingDays(workingDaysRule, day, 1)
	if err != nil {
		return false, err
	}
	return len(days) > 0 && days[0].Equal(day), nil
}
