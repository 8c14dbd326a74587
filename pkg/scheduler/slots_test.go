package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yatrik/yatrik/pkg/erp"
)

func TestSlotsCardinality(t *testing.T) {
	planner := NewSlotPlanner(NewCalendarPolicy(DefaultPolicyConfig()))

	weekday := planner.Slots(date(2026, time.April, 15))
	require.Len(t, weekday, 29)
	assert.Equal(t, "06:00", weekday[0])
	assert.Equal(t, "06:30", weekday[1])
	assert.Equal(t, "20:00", weekday[28])

	weekend := planner.Slots(date(2026, time.April, 18))
	require.Len(t, weekend, 13)
	assert.Equal(t, "07:00", weekend[0])
	assert.Equal(t, "19:00", weekend[12])
}

func TestTargetFrequency(t *testing.T) {
	planner := NewSlotPlanner(NewCalendarPolicy(DefaultPolicyConfig()))

	route := &erp.Route{PrimaryIdentifier: "route-1", BaseFare: 100}

	// Spring weekday, all multipliers 1.0.
	assert.Equal(t, 29, planner.TargetFrequency(date(2026, time.April, 15), route))

	// Spring weekend.
	assert.Equal(t, 13, planner.TargetFrequency(date(2026, time.April, 18), route))

	// Winter weekday: round(29 * 0.8) = 23.
	assert.Equal(t, 23, planner.TargetFrequency(date(2026, time.January, 14), route))

	// Popular route frequency is clamped to the slot count.
	popular := &erp.Route{PrimaryIdentifier: "route-2", BaseFare: 100, Popular: true}
	assert.Equal(t, 29, planner.TargetFrequency(date(2026, time.April, 15), popular))

	// Popular winter weekday: round(29 * 0.8 * 1.2) = 28.
	assert.Equal(t, 28, planner.TargetFrequency(date(2026, time.January, 14), popular))
}

func TestTargetFrequencyHoliday(t *testing.T) {
	config := DefaultPolicyConfig()
	config.HolidayWindows = []HolidayWindow{
		{Name: "Festival", Start: "2026-07-20", End: "2026-07-22", Multiplier: 0.5},
	}
	planner := NewSlotPlanner(NewCalendarPolicy(config))

	route := &erp.Route{PrimaryIdentifier: "route-1", BaseFare: 100}

	// Summer weekday inside the window: round(29 * 1.2 * 0.5) = 17.
	assert.Equal(t, 17, planner.TargetFrequency(date(2026, time.July, 20), route))

	// Same season, outside the window: round(29 * 1.2) clamps to 29.
	assert.Equal(t, 29, planner.TargetFrequency(date(2026, time.July, 27), route))
}

func TestTargetFrequencyFloor(t *testing.T) {
	config := DefaultPolicyConfig()
	config.HolidayWindows = []HolidayWindow{
		{Name: "Shutdown", Start: "2026-04-15", End: "2026-04-15", Multiplier: 0.01},
	}
	planner := NewSlotPlanner(NewCalendarPolicy(config))

	route := &erp.Route{PrimaryIdentifier: "route-1", BaseFare: 100}

	assert.Equal(t, 1, planner.TargetFrequency(date(2026, time.April, 15), route),
		"frequency never drops below one trip")
}

func TestFare(t *testing.T) {
	planner := NewSlotPlanner(NewCalendarPolicy(DefaultPolicyConfig()))

	route := &erp.Route{PrimaryIdentifier: "route-1", BaseFare: 100}

	assert.Equal(t, 100.0, planner.Fare(date(2026, time.April, 15), route), "spring fare is the base fare")
	assert.Equal(t, 120.0, planner.Fare(date(2026, time.July, 15), route), "summer fare is 20% up")
	assert.Equal(t, 80.0, planner.Fare(date(2026, time.January, 14), route), "winter fare is 20% down")
}

func TestFareWithDistance(t *testing.T) {
	planner := NewSlotPlanner(NewCalendarPolicy(DefaultPolicyConfig()))

	route := &erp.Route{
		PrimaryIdentifier: "route-1",
		BaseFare:          50,
		FarePerKm:         2.5,
		DistanceKm:        100,
	}

	// 50 + 100 * 2.5 = 300, spring multiplier 1.0.
	assert.Equal(t, 300.0, planner.Fare(date(2026, time.April, 15), route))

	// Winter: round(300 * 0.8) = 240.
	assert.Equal(t, 240.0, planner.Fare(date(2026, time.January, 14), route))
}

func TestEndTime(t *testing.T) {
	endTime, err := EndTime("06:00", 120)
	require.NoError(t, err)
	assert.Equal(t, "08:00", endTime)

	endTime, err = EndTime("06:30", 45)
	require.NoError(t, err)
	assert.Equal(t, "07:15", endTime)

	// Overnight trips wrap modulo 24h and end "before" they start.
	endTime, err = EndTime("23:30", 120)
	require.NoError(t, err)
	assert.Equal(t, "01:30", endTime)

	_, err = EndTime("not-a-time", 60)
	assert.Error(t, err)
}
