package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yatrik/yatrik/pkg/erp"
	"github.com/yatrik/yatrik/pkg/util"
)

type EngineConfig struct {
	// TripsPerRoutePerDay forces a fixed trip count per route instead of
	// deriving one from the calendar policy. 0 means derive.
	TripsPerRoutePerDay int

	// StrictAssignment fails a run instead of reusing a bus or crew member
	// within one route's slot list when the pools run short.
	StrictAssignment bool
}

// Engine assigns buses, crew and departure slots to routes over a planning
// horizon. Deterministic: the same catalog and date range always produce the
// same trips.
type Engine struct {
	Policy *CalendarPolicy
	Slots  *SlotPlanner
	Config EngineConfig
}

func NewEngine(policy *CalendarPolicy, config EngineConfig) *Engine {
	return &Engine{
		Policy: policy,
		Slots:  NewSlotPlanner(policy),
		Config: config,
	}
}

// HorizonPlan is the output of a planning run, before persistence.
type HorizonPlan struct {
	Trips []erp.Trip

	// DepotsSkipped lists depots that produced zero trips on at least one
	// date because they had no eligible buses.
	DepotsSkipped []string
}

// dailyConsumption tracks resources already assigned on one service date.
// Reset for every date - resources free up again the next day.
type dailyConsumption struct {
	buses      map[string]bool
	drivers    map[string]bool
	conductors map[string]bool
}

func newDailyConsumption() *dailyConsumption {
	return &dailyConsumption{
		buses:      map[string]bool{},
		drivers:    map[string]bool{},
		conductors: map[string]bool{},
	}
}

// PlanHorizon runs the allocation loop for every date in
// [startDate, startDate+days). Fails fast on an empty catalog before
// producing any output, and checks for cancellation between dates.
func (e *Engine) PlanHorizon(ctx context.Context, catalog *ResourceCatalog, startDate time.Time, days int) (*HorizonPlan, error) {
	if err := catalog.Validate(); err != nil {
		return nil, err
	}

	startDate = util.TruncateToDay(startDate)

	plan := &HorizonPlan{}
	skippedDepots := map[string]bool{}

	activeDepots := map[string]bool{}
	for _, depot := range catalog.Depots {
		activeDepots[depot.PrimaryIdentifier] = true
	}

	// Routes whose depot reference resolves to no active depot fall back to
	// the full resource pool instead of failing.
	var orphanRoutes []erp.Route
	for _, route := range catalog.Routes {
		if !activeDepots[route.DepotRef] {
			orphanRoutes = append(orphanRoutes, route)
		}
	}

	for dayOffset := 0; dayOffset < days; dayOffset++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		serviceDate := startDate.AddDate(0, 0, dayOffset)
		consumed := newDailyConsumption()

		for _, depot := range catalog.Depots {
			depotBuses := catalog.busesByDepot[depot.PrimaryIdentifier]

			for _, route := range catalog.Routes {
				if route.DepotRef != depot.PrimaryIdentifier {
					continue
				}

				trips, scheduled, err := e.scheduleRoute(serviceDate, &route, depot.PrimaryIdentifier,
					depotBuses,
					catalog.DriversForDepot(depot.PrimaryIdentifier),
					catalog.ConductorsForDepot(depot.PrimaryIdentifier),
					consumed)
				if err != nil {
					return nil, err
				}

				if !scheduled {
					if !skippedDepots[depot.PrimaryIdentifier] {
						skippedDepots[depot.PrimaryIdentifier] = true
						plan.DepotsSkipped = append(plan.DepotsSkipped, depot.PrimaryIdentifier)
					}

					log.Debug().
						Str("depot", depot.PrimaryIdentifier).
						Str("route", route.PrimaryIdentifier).
						Str("date", util.ISODate(serviceDate)).
						Msg("No eligible buses, skipping route")

					continue
				}

				plan.Trips = append(plan.Trips, trips...)
			}
		}

		for _, route := range orphanRoutes {
			trips, scheduled, err := e.scheduleRoute(serviceDate, &route, route.DepotRef,
				catalog.BusesForDepot(route.DepotRef),
				catalog.DriversForDepot(route.DepotRef),
				catalog.ConductorsForDepot(route.DepotRef),
				consumed)
			if err != nil {
				return nil, err
			}

			if !scheduled {
				continue
			}

			plan.Trips = append(plan.Trips, trips...)
		}
	}

	return plan, nil
}

// scheduleRoute emits the trips for one route on one date. Returns
// scheduled=false when the route's depot has no eligible buses that date.
func (e *Engine) scheduleRoute(serviceDate time.Time, route *erp.Route, depotRef string,
	busPool []erp.Bus, driverPool, conductorPool []erp.StaffMember,
	consumed *dailyConsumption) ([]erp.Trip, bool, error) {

	maintenance := e.Policy.InMaintenanceWindow(serviceDate)

	var eligibleBuses []erp.Bus
	for _, bus := range busPool {
		if !consumed.buses[bus.PrimaryIdentifier] {
			eligibleBuses = append(eligibleBuses, bus)
		}
	}

	if maintenance {
		// Hold back every other bus, by pool position. Deterministic 50%
		// capacity reduction, ceil(n/2) remain.
		var inService []erp.Bus
		for index, bus := range eligibleBuses {
			if index%2 == 0 {
				inService = append(inService, bus)
			}
		}
		eligibleBuses = inService
	}

	if len(eligibleBuses) == 0 {
		return nil, false, nil
	}

	var drivers []erp.StaffMember
	for _, driver := range driverPool {
		if !consumed.drivers[driver.PrimaryIdentifier] {
			drivers = append(drivers, driver)
		}
	}

	var conductors []erp.StaffMember
	for _, conductor := range conductorPool {
		if !consumed.conductors[conductor.PrimaryIdentifier] {
			conductors = append(conductors, conductor)
		}
	}

	slots := e.Slots.Slots(serviceDate)

	var tripCount int
	if e.Config.TripsPerRoutePerDay > 0 {
		// Fixed knob runs uncapped, so a scarce fleet wraps around.
		tripCount = e.Config.TripsPerRoutePerDay
	} else {
		tripCount = e.Slots.TargetFrequency(serviceDate, route)
		if tripCount > len(eligibleBuses) {
			tripCount = len(eligibleBuses)
		}
	}

	// The modulo pick below CAN reuse a bus or crew member within this
	// route's own slot list when the pool is smaller than tripCount. That
	// wraparound is long-standing behaviour the fleet scripts rely on;
	// strict mode refuses instead.
	if e.Config.StrictAssignment {
		if len(eligibleBuses) < tripCount ||
			(len(drivers) > 0 && len(drivers) < tripCount) ||
			(len(conductors) > 0 && len(conductors) < tripCount) {
			return nil, false, fmt.Errorf("route %s on %s: %w",
				route.PrimaryIdentifier, util.ISODate(serviceDate), ErrStrictAssignment)
		}
	}

	season := e.Policy.Season(serviceDate)
	holidayWindow := e.Policy.HolidayWindow(serviceDate)
	fare := e.Slots.Fare(serviceDate, route)
	dayOfWeek := strings.ToLower(serviceDate.Weekday().String())

	notes := fmt.Sprintf("Scheduled trip - %s (%s, %s", route.Name, season, dayOfWeek)
	if holidayWindow != nil {
		notes += ", Holiday"
	}
	if maintenance {
		notes += ", Maintenance Period"
	}
	notes += ")"

	now := time.Now()

	var trips []erp.Trip
	for tripIndex := 0; tripIndex < tripCount; tripIndex++ {
		bus := eligibleBuses[tripIndex%len(eligibleBuses)]

		startTime := slots[tripIndex%len(slots)]
		endTime, err := EndTime(startTime, route.DurationMinutes())
		if err != nil {
			return nil, false, fmt.Errorf("slot %q: %w", startTime, err)
		}

		tripDepotRef := depotRef
		if tripDepotRef == "" {
			tripDepotRef = bus.DepotRef
		}

		trip := erp.Trip{
			RouteRef: route.PrimaryIdentifier,
			BusRef:   bus.PrimaryIdentifier,

			DepotRef: tripDepotRef,

			ServiceDate: serviceDate,
			StartTime:   startTime,
			EndTime:     endTime,

			Status: erp.TripStatusScheduled,

			Fare: fare,

			Capacity:       bus.Capacity(),
			AvailableSeats: bus.Capacity(),
			BookedSeats:    0,

			BookingOpen: true,

			Notes: notes,

			CreationDateTime:     now,
			ModificationDateTime: now,

			SchedulingMetadata: &erp.TripSchedulingMetadata{
				Year:        serviceDate.Year(),
				Week:        ((serviceDate.YearDay() - 1) / 7) + 1,
				DayOfWeek:   dayOfWeek,
				Season:      season,
				Weekend:     e.Policy.IsWeekend(serviceDate),
				Holiday:     holidayWindow != nil,
				Maintenance: maintenance,
			},
		}

		if len(drivers) > 0 {
			trip.DriverRef = drivers[tripIndex%len(drivers)].PrimaryIdentifier
		}
		if len(conductors) > 0 {
			trip.ConductorRef = conductors[tripIndex%len(conductors)].PrimaryIdentifier
		}

		trips = append(trips, trip)
	}

	// Consumption is only recorded when the fleet covered the request in
	// full. A wrapped-around route never reserves resources, matching the
	// behaviour the cross-route invariant is scoped to.
	if len(eligibleBuses) >= tripCount {
		for _, trip := range trips {
			consumed.buses[trip.BusRef] = true
			if trip.DriverRef != "" {
				consumed.drivers[trip.DriverRef] = true
			}
			if trip.ConductorRef != "" {
				consumed.conductors[trip.ConductorRef] = true
			}
		}
	}

	return trips, true, nil
}
