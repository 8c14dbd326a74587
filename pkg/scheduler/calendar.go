package scheduler

import (
	"time"

	"github.com/yatrik/yatrik/pkg/util"
)

// CalendarPolicy answers date questions for the planner. Pure functions over
// an immutable PolicyConfig - no clock, no I/O.
type CalendarPolicy struct {
	Config PolicyConfig
}

func NewCalendarPolicy(config PolicyConfig) *CalendarPolicy {
	return &CalendarPolicy{Config: config}
}

func (p *CalendarPolicy) Season(date time.Time) string {
	switch month := date.Month(); {
	case month >= time.March && month <= time.May:
		return SeasonSpring
	case month >= time.June && month <= time.August:
		return SeasonSummer
	case month >= time.September && month <= time.November:
		return SeasonAutumn
	default:
		return SeasonWinter
	}
}

func (p *CalendarPolicy) SeasonalMultiplier(season string) float64 {
	if multiplier, ok := p.Config.SeasonalMultipliers[season]; ok {
		return multiplier
	}

	return 1.0
}

func (p *CalendarPolicy) IsWeekend(date time.Time) bool {
	day := date.Weekday()

	return day == time.Saturday || day == time.Sunday
}

// HolidayWindow returns the first configured window containing the date, or
// nil. Ranges are inclusive and compared as ISO date strings, so windows are
// year-specific; a year-spanning window works because the end date carries
// the following year ("2024-12-31".."2025-01-02").
func (p *CalendarPolicy) HolidayWindow(date time.Time) *HolidayWindow {
	dateString := util.ISODate(date)

	for _, window := range p.Config.HolidayWindows {
		if dateString >= window.Start && dateString <= window.End {
			return &window
		}
	}

	return nil
}

func (p *CalendarPolicy) HolidayMultiplier(date time.Time) float64 {
	if window := p.HolidayWindow(date); window != nil {
		return window.Multiplier
	}

	return 1.0
}

// InMaintenanceWindow reports whether the date's (month, week-of-month) pair
// matches a configured maintenance window.
func (p *CalendarPolicy) InMaintenanceWindow(date time.Time) bool {
	month := int(date.Month())
	week := ((date.Day() - 1) / 7) + 1

	for _, window := range p.Config.MaintenanceWindows {
		if window.Month != month {
			continue
		}

		for _, maintenanceWeek := range window.Weeks {
			if maintenanceWeek == week {
				return true
			}
		}
	}

	return false
}
