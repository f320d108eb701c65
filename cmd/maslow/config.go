package main

import (
	"fmt"

	"maslow/pkg/types"

	"github.com/kelseyhightower/envconfig"
)

func loadConfig() (*types.Config, error) {
	c := new(types.Config)
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if c.PublishingAPIURL == "" {
		return nil, fmt.Errorf("set PUBLISHING_API_URL")
	}

	return c, nil
}
