// Package budget contains budget-related use cases.
package budget

import (
	"time"

	"github.com/finsight/backend/internal/domain/entity"
)

// CurrentPeriod returns the window of the budget period containing now.
// Weekly windows run Monday 00:00:00 through Sunday 23:59:59; monthly and
// yearly windows cover the calendar month and year. The window is computed
// in now's location.
func CurrentPeriod(period entity.BudgetPeriod, now time.Time) (start, end time.Time) {
	switch period {
	case entity.BudgetPeriodWeekly:
		// time.Weekday numbers Sunday 0; shift so Monday opens the week.
		offset := (int(now.Weekday()) + 6) % 7
		start = time.Date(now.Year(), now.Month(), now.Day()-offset, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 0, 7).Add(-time.Second)
	case entity.BudgetPeriodYearly:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(1, 0, 0).Add(-time.Second)
	default: // monthly
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, 0).Add(-time.Second)
	}
	return start, end
}
