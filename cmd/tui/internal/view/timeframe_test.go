package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeframeDateRange(t *testing.T) {
	// Thursday.
	now := time.Date(2024, time.March, 14, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		tf        Timeframe
		wantStart string
		wantEnd   string
		wantOK    bool
	}{
		{name: "today", tf: TimeframeToday, wantStart: "2024-03-14", wantEnd: "2024-03-14", wantOK: true},
		{name: "week starts monday", tf: TimeframeThisWeek, wantStart: "2024-03-11", wantEnd: "2024-03-14", wantOK: true},
		{name: "this month", tf: TimeframeThisMonth, wantStart: "2024-03-01", wantEnd: "2024-03-14", wantOK: true},
		{name: "last month in a leap year", tf: TimeframeLastMonth, wantStart: "2024-02-01", wantEnd: "2024-02-29", wantOK: true},
		{name: "all", tf: TimeframeAll},
		{name: "custom", tf: TimeframeCustom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, ok := tt.tf.DateRange(now)

			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}

			assert.Equal(t, tt.wantStart, start.Format(dateLayout))
			assert.Equal(t, tt.wantEnd, end.Format(dateLayout))
			assert.Equal(t, 0, start.Hour())
			assert.Equal(t, 23, end.Hour())
		})
	}
}

func TestTimeframeDateRange_SundayBelongsToPreviousWeek(t *testing.T) {
	now := time.Date(2024, time.March, 17, 9, 0, 0, 0, time.UTC)

	start, _, ok := TimeframeThisWeek.DateRange(now)

	assert.True(t, ok)
	assert.Equal(t, "2024-03-11", start.Format(dateLayout))
}

func TestTimeframeString(t *testing.T) {
	assert.Equal(t, "This Week", TimeframeThisWeek.String())
	assert.Equal(t, "Unknown", Timeframe(42).String())
}
