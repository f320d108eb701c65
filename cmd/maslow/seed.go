package main

import (
	"context"
	"fmt"

	"maslow/internal/publishing"
	"maslow/internal/seed"
	"maslow/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Create sample needs in a development Publishing API",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if cfg.Environment != "development" {
			return fmt.Errorf("refusing to seed outside development (ENVIRONMENT=%s)", cfg.Environment)
		}

		logger := logrus.New()

		api := publishing.NewClient(cfg.PublishingAPIURL, cfg.PublishingAPIBearerToken, logger)
		needsStore := store.NewNeedStore(api, logger, cfg.NeedsPerPage)

		logrus.Info("Seeding sample needs...")
		return seed.SeedNeeds(context.Background(), needsStore)
	},
}
