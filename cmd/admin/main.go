// Command admin runs operational tasks against the store: schema
// migration and development seeding.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ardanlabs/conf/v3"
	"github.com/giftrove/giftrove-server/config"
	"github.com/giftrove/giftrove-server/database"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:  "admin",
		Usage: "operational tasks for the giftrove store",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "apply pending schema migrations",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := openDB()
					if err != nil {
						return err
					}
					defer db.Close()

					if err := database.Migrate(db); err != nil {
						return err
					}
					log.Println("migrations applied")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "load development vendors and products",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := openDB()
					if err != nil {
						return err
					}
					defer db.Close()

					if err := database.Seed(ctx, db); err != nil {
						return err
					}
					log.Println("seed data loaded")
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func openDB() (*sqlx.DB, error) {
	_ = godotenv.Load()

	var cfg config.Config
	if _, err := conf.Parse("GIFTROVE", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return database.Open(cfg.DB)
}
