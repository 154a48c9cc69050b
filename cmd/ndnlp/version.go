package main

import (
	"github.com/urfave/cli/v2"
	"github.com/usnistgov/ndnlp/core/version"
)

func init() {
	defineCommand(&cli.Command{
		Name:  "version",
		Usage: "Show build version information.",
		Action: func(c *cli.Context) error {
			return printJSON(c, version.V)
		},
	})
}
