// Package command defines cli commands to inspect and maintain an asset
// registry stored in a key/value database.
package command

import (
	"os"

	"github.com/duet-dlt/duet/chain"
	"github.com/duet-dlt/duet/cli"
	"github.com/duet-dlt/duet/core/store/kv"
)

// Initializer implements the registry initializer for the duet CLI.
//
// - implements cli.Initializer
type Initializer struct {
}

// SetCommands implements cli.Initializer.
func (i Initializer) SetCommands(provider cli.Provider) {
	action := action{
		printer: os.Stdout,

		val:      chain.NewRuleValidator(3, 64),
		readFile: os.ReadFile,
		openDB:   kv.New,
	}

	reg := provider.SetCommand("registry")

	imp := reg.SetSubCommand("import")
	imp.SetDescription("import a yaml manifest of assets into the registry")
	imp.SetFlags(cli.StringFlag{
		Name:     "file",
		Usage:    "path to the manifest file",
		Required: true,
	}, cli.StringFlag{
		Name:     "db",
		Usage:    "path to the registry database",
		Required: true,
	})
	imp.SetAction(action.importAction)

	list := reg.SetSubCommand("list")
	list.SetDescription("list the assets of the registry in key order")
	list.SetFlags(cli.StringFlag{
		Name:     "db",
		Usage:    "path to the registry database",
		Required: true,
	}, cli.StringFlag{
		Name:  "kind",
		Usage: "restrict the listing to one kind: [native | contract]",
	}, cli.BoolFlag{
		Name:  "scaled",
		Usage: "display the supplies at the asset scale",
	})
	list.SetAction(action.listAction)

	key := provider.SetCommand("key")

	enc := key.SetSubCommand("encode")
	enc.SetDescription("print the registry key of an asset")
	enc.SetFlags(cli.StringFlag{
		Name:     "kind",
		Usage:    "kind of the asset: [native | contract]",
		Required: true,
	}, cli.StringFlag{
		Name:     "id",
		Usage:    "denomination or contract address of the asset",
		Required: true,
	})
	enc.SetAction(action.keyEncodeAction)

	dec := key.SetSubCommand("decode")
	dec.SetDescription("print the asset of a registry key")
	dec.SetFlags(cli.StringFlag{
		Name:     "key",
		Usage:    "hexadecimal registry key",
		Required: true,
	})
	dec.SetAction(action.keyDecodeAction)
}
