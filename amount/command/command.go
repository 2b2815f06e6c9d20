// Package command defines cli commands to convert amounts between base units
// and their scaled display form.
package command

import (
	"os"

	"github.com/duet-dlt/duet/cli"
)

// Initializer implements the amount initializer for the duet CLI.
//
// - implements cli.Initializer
type Initializer struct {
}

// SetCommands implements cli.Initializer.
func (i Initializer) SetCommands(provider cli.Provider) {
	action := action{
		printer: os.Stdout,
	}

	cmd := provider.SetCommand("amount")

	format := cmd.SetSubCommand("format")
	format.SetDescription("display a base amount at a given scale")
	format.SetFlags(cli.StringFlag{
		Name:     "value",
		Usage:    "base 10 amount in base units",
		Required: true,
	}, cli.IntFlag{
		Name:  "decimals",
		Usage: "number of decimal places of the asset",
	})
	format.SetAction(action.formatAction)

	parse := cmd.SetSubCommand("parse")
	parse.SetDescription("convert a scaled amount to base units")
	parse.SetFlags(cli.StringFlag{
		Name:     "value",
		Usage:    "decimal amount at the asset scale",
		Required: true,
	}, cli.IntFlag{
		Name:  "decimals",
		Usage: "number of decimal places of the asset",
	})
	parse.SetAction(action.parseAction)
}
