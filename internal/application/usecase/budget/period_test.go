package budget

import (
	"testing"
	"time"

	"github.com/finsight/backend/internal/domain/entity"
)

func date(y int, m time.Month, d, h, min, s int) time.Time {
	return time.Date(y, m, d, h, min, s, 0, time.UTC)
}

func TestCurrentPeriod(t *testing.T) {
	tests := []struct {
		name      string
		period    entity.BudgetPeriod
		now       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "weekly from a wednesday",
			period:    entity.BudgetPeriodWeekly,
			now:       date(2025, time.March, 12, 15, 30, 0), // Wednesday
			wantStart: date(2025, time.March, 10, 0, 0, 0),   // Monday
			wantEnd:   date(2025, time.March, 16, 23, 59, 59),
		},
		{
			name:      "weekly from a monday",
			period:    entity.BudgetPeriodWeekly,
			now:       date(2025, time.March, 10, 0, 0, 0),
			wantStart: date(2025, time.March, 10, 0, 0, 0),
			wantEnd:   date(2025, time.March, 16, 23, 59, 59),
		},
		{
			name:      "weekly from a sunday stays in the running week",
			period:    entity.BudgetPeriodWeekly,
			now:       date(2025, time.March, 16, 23, 0, 0),
			wantStart: date(2025, time.March, 10, 0, 0, 0),
			wantEnd:   date(2025, time.March, 16, 23, 59, 59),
		},
		{
			name:      "weekly across a month boundary",
			period:    entity.BudgetPeriodWeekly,
			now:       date(2025, time.April, 1, 12, 0, 0), // Tuesday
			wantStart: date(2025, time.March, 31, 0, 0, 0),
			wantEnd:   date(2025, time.April, 6, 23, 59, 59),
		},
		{
			name:      "monthly mid-month",
			period:    entity.BudgetPeriodMonthly,
			now:       date(2025, time.February, 14, 8, 0, 0),
			wantStart: date(2025, time.February, 1, 0, 0, 0),
			wantEnd:   date(2025, time.February, 28, 23, 59, 59),
		},
		{
			name:      "monthly in a leap february",
			period:    entity.BudgetPeriodMonthly,
			now:       date(2024, time.February, 29, 10, 0, 0),
			wantStart: date(2024, time.February, 1, 0, 0, 0),
			wantEnd:   date(2024, time.February, 29, 23, 59, 59),
		},
		{
			name:      "yearly",
			period:    entity.BudgetPeriodYearly,
			now:       date(2025, time.July, 4, 0, 0, 0),
			wantStart: date(2025, time.January, 1, 0, 0, 0),
			wantEnd:   date(2025, time.December, 31, 23, 59, 59),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := CurrentPeriod(tt.period, tt.now)
			if !start.Equal(tt.wantStart) {
				t.Errorf("start = %s, want %s", start, tt.wantStart)
			}
			if !end.Equal(tt.wantEnd) {
				t.Errorf("end = %s, want %s", end, tt.wantEnd)
			}
			if tt.now.Before(start) || tt.now.After(end.Add(time.Second)) {
				t.Errorf("now %s outside window [%s, %s]", tt.now, start, end)
			}
		})
	}
}
