package command

import (
	"fmt"
	"io"

	"github.com/duet-dlt/duet/amount"
	"github.com/duet-dlt/duet/cli"
	"golang.org/x/xerrors"
)

// action defines the different cli actions of the amount commands. Defining
// the printer helps in testing the commands.
type action struct {
	printer io.Writer
}

func (a action) formatAction(flags cli.Flags) error {
	value, err := amount.Parse(flags.String("value"))
	if err != nil {
		return xerrors.Errorf("failed to parse value: %v", err)
	}

	fmt.Fprintln(a.printer, value.Scaled(int32(flags.Int("decimals"))))

	return nil
}

func (a action) parseAction(flags cli.Flags) error {
	value, err := amount.ParseScaled(flags.String("value"), int32(flags.Int("decimals")))
	if err != nil {
		return xerrors.Errorf("failed to parse value: %v", err)
	}

	fmt.Fprintln(a.printer, value)

	return nil
}
