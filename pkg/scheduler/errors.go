package scheduler

import "errors"

var (
	// ErrNoActiveRoutes aborts a run before any writes - there is nothing to schedule.
	ErrNoActiveRoutes = errors.New("no active routes in catalog")

	// ErrNoEligibleBuses aborts a run before any writes - no bus anywhere can serve a trip.
	ErrNoEligibleBuses = errors.New("no eligible buses in catalog")

	// ErrStrictAssignment is returned in strict mode when a route would need
	// to reuse a bus or crew member within a single day.
	ErrStrictAssignment = errors.New("insufficient resources for requested trips")

	// ErrRunInProgress means another scheduling run holds the run lock.
	ErrRunInProgress = errors.New("a scheduling run is already in progress")
)
