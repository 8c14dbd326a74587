package scheduler

import (
	"context"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yatrik/yatrik/pkg/database"
	"github.com/yatrik/yatrik/pkg/redis_client"

	"github.com/rs/zerolog/log"

	_ "time/tzdata"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "scheduler",
		Usage: "Bulk trip allocation over a planning horizon",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Plan & persist trips for every active route",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "days",
						Usage: "Number of days to schedule",
						Value: 30,
					},
					&cli.StringFlag{
						Name:  "start-date",
						Usage: "First service date (YYYY-MM-DD), defaults to today",
					},
					&cli.IntFlag{
						Name:  "trips-per-route-per-day",
						Usage: "Fixed trip count per route, 0 derives it from the calendar policy",
					},
					&cli.BoolFlag{
						Name:  "strict",
						Usage: "Fail instead of reusing buses/crew when pools run short",
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Plan without writing trips",
					},
					&cli.StringFlag{
						Name:  "policy-file",
						Usage: "YAML calendar policy overriding the built-in defaults",
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}
					if err := redis_client.Connect(false); err != nil {
						log.Fatal().Err(err).Msg("Failed to connect to Redis")
					}

					startDate := time.Now()
					if c.String("start-date") != "" {
						var err error
						startDate, err = time.Parse("2006-01-02", c.String("start-date"))
						if err != nil {
							return err
						}
					}

					policyConfig := DefaultPolicyConfig()
					if c.String("policy-file") != "" {
						var err error
						policyConfig, err = LoadPolicyConfig(c.String("policy-file"))
						if err != nil {
							return err
						}
					}

					summary, err := Run(context.Background(), policyConfig, Options{
						StartDate:           startDate,
						HorizonDays:         c.Int("days"),
						TripsPerRoutePerDay: c.Int("trips-per-route-per-day"),
						StrictAssignment:    c.Bool("strict"),
						DryRun:              c.Bool("dry-run"),
					})
					if err != nil {
						return err
					}

					log.Info().
						Int("planned", summary.TotalTripsPlanned).
						Int("inserted", summary.TotalTripsInserted).
						Int("failedBatches", len(summary.PerBatchErrors)).
						Strs("depotsSkipped", summary.DepotsSkipped).
						Msg("Scheduling run complete")

					return nil
				},
			},
			{
				Name:  "validate",
				Usage: "Load the resource catalog and run the prerequisite checks",
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}

					catalog, err := LoadCatalog(context.Background())
					if err != nil {
						return err
					}

					if err := catalog.Validate(); err != nil {
						return err
					}

					log.Info().
						Int("routes", len(catalog.Routes)).
						Int("buses", len(catalog.Buses)).
						Int("drivers", len(catalog.Drivers)).
						Int("conductors", len(catalog.Conductors)).
						Int("depots", len(catalog.Depots)).
						Msg("Catalog valid")

					return nil
				},
			},
		},
	}
}
