package command

import (
	"bytes"
	"testing"

	"github.com/duet-dlt/duet/cli"
	"github.com/stretchr/testify/require"
)

func TestFormatAction(t *testing.T) {
	buf := new(bytes.Buffer)
	action := action{printer: buf}

	fset := make(cli.FlagSet)
	fset["value"] = "1500000"
	fset["decimals"] = 6

	err := action.formatAction(fset)
	require.NoError(t, err)
	require.Equal(t, "1.5\n", buf.String())

	buf.Reset()
	fset["decimals"] = 0

	err = action.formatAction(fset)
	require.NoError(t, err)
	require.Equal(t, "1500000\n", buf.String())

	fset["value"] = "nope"
	err = action.formatAction(fset)
	require.EqualError(t, err, "failed to parse value: invalid amount 'nope'")
}

func TestParseAction(t *testing.T) {
	buf := new(bytes.Buffer)
	action := action{printer: buf}

	fset := make(cli.FlagSet)
	fset["value"] = "1.5"
	fset["decimals"] = 6

	err := action.parseAction(fset)
	require.NoError(t, err)
	require.Equal(t, "1500000\n", buf.String())

	fset["value"] = "0.0000001"
	err = action.parseAction(fset)
	require.EqualError(t, err, "failed to parse value: '0.0000001' has more than 6 decimal places")
}
