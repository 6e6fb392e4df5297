package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	mongoMigration "rentalspot/internal/migrations/mongo"
	"rentalspot/pkg/config"
)

const ServiceName = "migrations"

func main() {
	app := &cli.App{
		Name:  ServiceName,
		Usage: "create rentalspot collections, validators and indexes",
		Flags: []cli.Flag{
			&cli.DurationFlag{Name: "timeout", Value: 30 * time.Second},
		},
		Action: func(c *cli.Context) error {
			cfg := config.Load(ServiceName)
			cfg.SetMongo()
			defer cfg.GracefulShutdown()

			ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
			defer cancel()

			if err := mongoMigration.RunMigration(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName, cfg.Log); err != nil {
				return cli.Exit(fmt.Sprintf("migration failed: %v", err), 1)
			}
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
