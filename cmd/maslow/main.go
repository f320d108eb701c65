package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "maslow",
		Usage: "Author and manage user needs on the publishing platform",
		Commands: []*cli.Command{
			serveCommand,
			seedCommand,
			uuidCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("application failed")
	}
}
