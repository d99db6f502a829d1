// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command catalogctl manages the catalog database outside the API server:
// schema migrations and the sample data seed.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/taibuivan/comiking/internal/core/catalog"
	"github.com/taibuivan/comiking/internal/platform/migration"
	pgstore "github.com/taibuivan/comiking/internal/platform/postgres"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	app := &cli.App{
		Name:  "catalogctl",
		Usage: "manage the comic catalog database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "database-url",
				Usage:    "PostgreSQL connection URL",
				EnvVars:  []string{"DATABASE_URL"},
				Required: true,
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "apply pending migrations",
				Action: func(c *cli.Context) error {
					return migration.RunUp(c.String("database-url"), log)
				},
			},
			{
				Name:  "rollback",
				Usage: "revert every applied migration",
				Action: func(c *cli.Context) error {
					migrator, err := migration.New(c.String("database-url"), log)
					if err != nil {
						return err
					}
					defer migrator.Close()

					return migrator.Down()
				},
			},
			{
				Name:  "status",
				Usage: "print the applied schema version",
				Action: func(c *cli.Context) error {
					migrator, err := migration.New(c.String("database-url"), log)
					if err != nil {
						return err
					}
					defer migrator.Close()

					version, dirty, err := migrator.Version()
					if err != nil {
						return err
					}
					fmt.Printf("Schema version: %d (dirty: %t)\n", version, dirty)
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "load the sample catalog; existing rows are kept",
				Action: func(c *cli.Context) error {
					pool, err := pgstore.NewPool(c.Context, c.String("database-url"), log)
					if err != nil {
						return err
					}
					defer pool.Close()

					service := catalog.NewService(catalog.NewPostgresStore(pool), log)
					report, err := service.Seed(c.Context)
					if err != nil {
						return err
					}

					fmt.Printf("Inserted %d genres, %d publishers, %d authors, %d comics, %d volumes\n",
						report.Genres, report.Publishers, report.Authors, report.Comics, report.Volumes)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Error("catalogctl_failed", slog.Any("error", err))
		os.Exit(1)
	}
}
