// Package main provides a cli to inspect and maintain the asset registry of a
// duet deployment.
package main

import (
	"fmt"
	"io"
	"os"

	amount "github.com/duet-dlt/duet/amount/command"
	registry "github.com/duet-dlt/duet/asset/command"
	"github.com/duet-dlt/duet/cli"
	"github.com/duet-dlt/duet/cli/ucli"
)

var builder cli.Builder = ucli.NewBuilder("duet", nil)
var printer io.Writer = os.Stderr

func main() {
	err := run(os.Args, registry.Initializer{}, amount.Initializer{})
	if err != nil {
		fmt.Fprintf(printer, "%+v\n", err)
	}
}

func run(args []string, inits ...cli.Initializer) error {
	for _, init := range inits {
		init.SetCommands(builder)
	}

	app := builder.Build()
	err := app.Run(args)
	if err != nil {
		return err
	}

	return nil
}
