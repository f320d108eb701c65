package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
)

var uuidCommand = &cli.Command{
	Name:  "uuid",
	Usage: "Generate content ids for use in seed data",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"c"},
			Usage:   "Number of ids to generate",
			Value:   1,
		},
	},
	Action: func(c *cli.Context) error {
		count := c.Int("count")
		for i := 0; i < count; i++ {
			fmt.Println(uuid.NewString())
		}
		return nil
	},
}
