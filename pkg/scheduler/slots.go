package scheduler

import (
	"math"
	"time"

	"github.com/yatrik/yatrik/pkg/erp"
	"github.com/yatrik/yatrik/pkg/util"
)

// SlotPlanner turns calendar policy outputs into candidate departure times
// and a target trip count for a route on a date.
type SlotPlanner struct {
	Policy *CalendarPolicy
}

func NewSlotPlanner(policy *CalendarPolicy) *SlotPlanner {
	return &SlotPlanner{Policy: policy}
}

// Slots returns the ordered candidate departure times for a date.
func (s *SlotPlanner) Slots(date time.Time) []string {
	if s.Policy.IsWeekend(date) {
		return s.Policy.Config.WeekendSlots
	}

	return s.Policy.Config.WeekdaySlots
}

// TargetFrequency is the number of trips the route should run on the date
// before fleet size is taken into account, clamped to [1, slot count].
func (s *SlotPlanner) TargetFrequency(date time.Time, route *erp.Route) int {
	baseFrequency := len(s.Slots(date))

	seasonalMultiplier := s.Policy.SeasonalMultiplier(s.Policy.Season(date))
	holidayMultiplier := s.Policy.HolidayMultiplier(date)

	routeMultiplier := 1.0
	if route.Popular {
		routeMultiplier = s.Policy.Config.PopularRouteMultiplier
	}

	frequency := int(math.Round(float64(baseFrequency) * seasonalMultiplier * holidayMultiplier * routeMultiplier))

	if frequency < 1 {
		frequency = 1
	}
	if frequency > baseFrequency {
		frequency = baseFrequency
	}

	return frequency
}

// Fare is the per-seat fare for the route on the date, after the seasonal
// adjustment. Routes carrying distance data use the distance rate.
func (s *SlotPlanner) Fare(date time.Time, route *erp.Route) float64 {
	seasonalMultiplier := s.Policy.SeasonalMultiplier(s.Policy.Season(date))

	return math.Round(route.FareBase() * seasonalMultiplier)
}

// EndTime adds the route duration to a start time, wrapping modulo 24h.
// Overnight trips are legal and end "before" they start.
func EndTime(startTime string, durationMinutes int) (string, error) {
	startMinutes, err := util.ParseClock(startTime)
	if err != nil {
		return "", err
	}

	return util.FormatClock(startMinutes + durationMinutes), nil
}
