package scheduler

import (
	"bytes"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	SeasonSpring = "spring"
	SeasonSummer = "summer"
	SeasonAutumn = "autumn"
	SeasonWinter = "winter"
)

// HolidayWindow is an inclusive date range with reduced service levels.
// Start and End are ISO dates ("2024-12-24") compared as strings, so a
// window is specific to the year it names.
type HolidayWindow struct {
	Name       string  `yaml:"name"`
	Start      string  `yaml:"start"`
	End        string  `yaml:"end"`
	Multiplier float64 `yaml:"multiplier"`
}

// MaintenanceWindow marks weeks of a month during which half of every
// depot's fleet is held back. Week of month is ceil(day / 7).
type MaintenanceWindow struct {
	Month int   `yaml:"month"`
	Weeks []int `yaml:"weeks"`
}

// PolicyConfig is the immutable calendar & slot policy for a scheduling run.
type PolicyConfig struct {
	SeasonalMultipliers map[string]float64 `yaml:"seasonal_multipliers"`

	HolidayWindows []HolidayWindow `yaml:"holiday_windows"`

	MaintenanceWindows []MaintenanceWindow `yaml:"maintenance_windows"`

	WeekdaySlots []string `yaml:"weekday_slots"`
	WeekendSlots []string `yaml:"weekend_slots"`

	PopularRouteMultiplier float64 `yaml:"popular_route_multiplier"`
}

// DefaultPolicyConfig returns the standard service calendar - 29 half-hourly
// weekday slots, 13 hourly weekend slots, and the seasonal/holiday tables the
// fare rules are built around.
func DefaultPolicyConfig() PolicyConfig {
	return PolicyConfig{
		SeasonalMultipliers: map[string]float64{
			SeasonSpring: 1.0,
			SeasonSummer: 1.2,
			SeasonAutumn: 0.9,
			SeasonWinter: 0.8,
		},

		HolidayWindows: []HolidayWindow{
			{Name: "New Year", Start: "2024-12-31", End: "2025-01-02", Multiplier: 0.5},
			{Name: "Easter", Start: "2024-03-29", End: "2024-04-01", Multiplier: 0.7},
			{Name: "Summer Break", Start: "2024-07-15", End: "2024-07-31", Multiplier: 0.6},
			{Name: "Diwali", Start: "2024-11-01", End: "2024-11-03", Multiplier: 0.7},
			{Name: "Christmas", Start: "2024-12-24", End: "2024-12-26", Multiplier: 0.5},
		},

		MaintenanceWindows: []MaintenanceWindow{
			{Month: 3, Weeks: []int{2, 3}},
			{Month: 6, Weeks: []int{1, 4}},
			{Month: 9, Weeks: []int{2}},
			{Month: 12, Weeks: []int{1, 2}},
		},

		WeekdaySlots: []string{
			"06:00", "06:30", "07:00", "07:30", "08:00", "08:30",
			"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
			"12:00", "12:30", "13:00", "13:30", "14:00", "14:30",
			"15:00", "15:30", "16:00", "16:30", "17:00", "17:30",
			"18:00", "18:30", "19:00", "19:30", "20:00",
		},

		WeekendSlots: []string{
			"07:00", "08:00", "09:00", "10:00", "11:00",
			"12:00", "13:00", "14:00", "15:00", "16:00",
			"17:00", "18:00", "19:00",
		},

		PopularRouteMultiplier: 1.2,
	}
}

// LoadPolicyConfig reads a YAML policy file over the top of the defaults, so
// a file only needs to name the sections it overrides.
func LoadPolicyConfig(path string) (PolicyConfig, error) {
	config := DefaultPolicyConfig()

	policyYaml, err := os.ReadFile(path)
	if err != nil {
		return config, err
	}

	decoder := yaml.NewDecoder(bytes.NewReader(policyYaml))
	if err := decoder.Decode(&config); err != nil {
		return config, err
	}

	return config, nil
}
