package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"rentalspot/internal/bootstrap"
	calendarsservice "rentalspot/internal/calendars/service"
	"rentalspot/internal/pricing"
	"rentalspot/pkg/config"
)

const ServiceName = "reconcile"

// exitDrift is returned when drift was found and not fixed, so the job can
// alert without parsing the report.
const exitDrift = 2

func main() {
	app := &cli.App{
		Name:  ServiceName,
		Usage: "compare stored price calendars with a fresh generation",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "property", Usage: "property id; all properties when empty"},
			&cli.StringFlag{Name: "from", Usage: "first month (yyyy-MM); current month when empty"},
			&cli.IntFlag{Name: "months", Usage: "number of months; configured window when zero"},
			&cli.BoolFlag{Name: "fix", Usage: "overwrite drifted months"},
			&cli.DurationFlag{Name: "timeout", Value: 30 * time.Minute},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()
	defer cfg.GracefulShutdown()

	months, err := reconcileMonths(cfg, c.String("from"), c.Int("months"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	core, err := bootstrap.NewCore(cfg)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	reconciler := calendarsservice.NewReconcileService(core.Repos.Properties, core.Repos.Calendars, core.Generator, cfg)

	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()

	fix := c.Bool("fix")
	var reports []*calendarsservice.ReconcileReport
	if propertyID := c.String("property"); propertyID != "" {
		report, err := reconciler.Reconcile(ctx, propertyID, months, fix)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		reports = append(reports, report)
	} else {
		reports, err = reconciler.ReconcileAll(ctx, months, fix)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(reports); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	drifted := 0
	for _, report := range reports {
		drifted += len(report.Drifted)
	}
	cfg.Log.Info("Reconciliation finished", "properties", len(reports), "drifted_months", drifted, "fix", fix)
	if drifted > 0 && !fix {
		return cli.Exit("", exitDrift)
	}
	return nil
}

func reconcileMonths(cfg *config.Config, from string, n int) ([]pricing.YearMonth, error) {
	start := pricing.NewYearMonth(time.Now().UTC())
	if from != "" {
		ym, err := pricing.ParseMonth(from)
		if err != nil {
			return nil, fmt.Errorf("invalid -from %q: %w", from, err)
		}
		start = ym
	}
	if n <= 0 {
		n = cfg.CalendarWindowMonths
	}
	if n > config.MaxCalendarWindowMonths {
		return nil, fmt.Errorf("months cannot exceed %d", config.MaxCalendarWindowMonths)
	}
	return pricing.Window(start, n), nil
}
