package scheduler

import (
	"context"

	"github.com/sourcegraph/conc/pool"
	"github.com/yatrik/yatrik/pkg/database"
	"github.com/yatrik/yatrik/pkg/erp"
	"go.mongodb.org/mongo-driver/bson"
)

// ResourceCatalog is an immutable snapshot of the active fleet, crew, routes
// and depots, grouped by depot for the allocation engine. Rebuilt each run.
type ResourceCatalog struct {
	Routes     []erp.Route
	Buses      []erp.Bus
	Drivers    []erp.StaffMember
	Conductors []erp.StaffMember
	Depots     []erp.Depot

	busesByDepot      map[string][]erp.Bus
	driversByDepot    map[string][]erp.StaffMember
	conductorsByDepot map[string][]erp.StaffMember
}

// LoadCatalog reads the five resource collections in parallel and groups the
// results by depot.
func LoadCatalog(ctx context.Context) (*ResourceCatalog, error) {
	catalog := &ResourceCatalog{}

	p := pool.New().WithContext(ctx)

	p.Go(func(ctx context.Context) error {
		cursor, err := database.GetCollection("routes").Find(ctx, bson.M{"status": erp.RouteStatusActive})
		if err != nil {
			return err
		}

		return cursor.All(ctx, &catalog.Routes)
	})

	p.Go(func(ctx context.Context) error {
		cursor, err := database.GetCollection("buses").Find(ctx, bson.M{
			"status": bson.M{"$in": erp.EligibleBusStatuses},
		})
		if err != nil {
			return err
		}

		return cursor.All(ctx, &catalog.Buses)
	})

	p.Go(func(ctx context.Context) error {
		cursor, err := database.GetCollection("staff").Find(ctx, bson.M{
			"role":   erp.StaffRoleDriver,
			"status": erp.StaffStatusActive,
		})
		if err != nil {
			return err
		}

		return cursor.All(ctx, &catalog.Drivers)
	})

	p.Go(func(ctx context.Context) error {
		cursor, err := database.GetCollection("staff").Find(ctx, bson.M{
			"role":   erp.StaffRoleConductor,
			"status": erp.StaffStatusActive,
		})
		if err != nil {
			return err
		}

		return cursor.All(ctx, &catalog.Conductors)
	})

	p.Go(func(ctx context.Context) error {
		cursor, err := database.GetCollection("depots").Find(ctx, bson.M{"status": erp.DepotStatusActive})
		if err != nil {
			return err
		}

		return cursor.All(ctx, &catalog.Depots)
	})

	if err := p.Wait(); err != nil {
		return nil, err
	}

	catalog.GroupByDepot()

	return catalog, nil
}

// Validate performs the fail-fast prerequisite checks. Nothing may be
// deleted or written once these fail.
func (c *ResourceCatalog) Validate() error {
	if len(c.Routes) == 0 {
		return ErrNoActiveRoutes
	}

	if len(c.Buses) == 0 {
		return ErrNoEligibleBuses
	}

	return nil
}

// GroupByDepot builds the per-depot pool views. Resources without a depot
// reference group under the empty key and are only reachable through the
// full-pool fallback.
func (c *ResourceCatalog) GroupByDepot() {
	c.busesByDepot = map[string][]erp.Bus{}
	for _, bus := range c.Buses {
		c.busesByDepot[bus.DepotRef] = append(c.busesByDepot[bus.DepotRef], bus)
	}

	c.driversByDepot = map[string][]erp.StaffMember{}
	for _, driver := range c.Drivers {
		c.driversByDepot[driver.DepotRef] = append(c.driversByDepot[driver.DepotRef], driver)
	}

	c.conductorsByDepot = map[string][]erp.StaffMember{}
	for _, conductor := range c.Conductors {
		c.conductorsByDepot[conductor.DepotRef] = append(c.conductorsByDepot[conductor.DepotRef], conductor)
	}
}

// BusesForDepot returns the depot's bus pool. A depot (or route) with no
// resolvable pool of its own falls back to the full fleet rather than
// failing - deliberate relaxation for partially mapped catalogs.
func (c *ResourceCatalog) BusesForDepot(depotRef string) []erp.Bus {
	if depotRef != "" {
		if buses, ok := c.busesByDepot[depotRef]; ok {
			return buses
		}
	}

	return c.Buses
}

func (c *ResourceCatalog) DriversForDepot(depotRef string) []erp.StaffMember {
	if depotRef != "" {
		if drivers, ok := c.driversByDepot[depotRef]; ok {
			return drivers
		}
	}

	return c.Drivers
}

func (c *ResourceCatalog) ConductorsForDepot(depotRef string) []erp.StaffMember {
	if depotRef != "" {
		if conductors, ok := c.conductorsByDepot[depotRef]; ok {
			return conductors
		}
	}

	return c.Conductors
}
