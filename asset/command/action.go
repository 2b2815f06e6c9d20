package command

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/duet-dlt/duet/amount"
	"github.com/duet-dlt/duet/asset"
	"github.com/duet-dlt/duet/chain"
	"github.com/duet-dlt/duet/cli"
	"github.com/duet-dlt/duet/core/store/kv"
	"golang.org/x/xerrors"
	yaml "gopkg.in/yaml.v2"
)

// RegistryName is the name of the bucket holding the asset registry.
const RegistryName = "duet:registry"

// KindNative and KindContract are the textual forms of the asset kinds
// accepted by the commands.
const (
	KindNative   = "native"
	KindContract = "contract"
)

// Manifest describes the yaml document accepted by the import command.
type Manifest struct {
	Assets []ManifestEntry `yaml:"assets"`
}

// ManifestEntry describes a single asset of a manifest.
type ManifestEntry struct {
	Kind     string `yaml:"kind"`
	ID       string `yaml:"id"`
	Symbol   string `yaml:"symbol"`
	Decimals int32  `yaml:"decimals"`
	Supply   string `yaml:"supply"`
}

// metadata is the value stored in the registry for each asset.
type metadata struct {
	Symbol   string        `json:"symbol"`
	Decimals int32         `json:"decimals"`
	Supply   amount.Amount `json:"supply"`
}

// action defines the different cli actions of the registry commands. Defining
// the functions and the printer helps in testing the commands.
type action struct {
	printer io.Writer

	val      chain.AddressValidator
	readFile func(filename string) ([]byte, error)
	openDB   func(path string) (kv.DB, error)
}

func (a action) importAction(flags cli.Flags) error {
	data, err := a.readFile(flags.Path("file"))
	if err != nil {
		return xerrors.Errorf("failed to read manifest: %v", err)
	}

	var manifest Manifest

	err = yaml.Unmarshal(data, &manifest)
	if err != nil {
		return xerrors.Errorf("failed to parse manifest: %v", err)
	}

	records := make([][2][]byte, len(manifest.Assets))

	for i, entry := range manifest.Assets {
		info, err := parseInfo(a.val, entry.Kind, entry.ID)
		if err != nil {
			return xerrors.Errorf("entry %d: %v", i, err)
		}

		supply, err := amount.Parse(entry.Supply)
		if err != nil {
			return xerrors.Errorf("entry %d: invalid supply: %v", i, err)
		}

		meta := metadata{
			Symbol:   entry.Symbol,
			Decimals: entry.Decimals,
			Supply:   supply,
		}

		value, err := json.Marshal(meta)
		if err != nil {
			return xerrors.Errorf("entry %d: failed to encode metadata: %v", i, err)
		}

		records[i] = [2][]byte{info.Key(), value}
	}

	db, err := a.openDB(flags.Path("db"))
	if err != nil {
		return xerrors.Errorf("failed to open database: %v", err)
	}

	defer db.Close()

	reg := asset.NewMap(RegistryName)

	err = db.Update(func(tx kv.WritableTx) error {
		bucket, err := tx.GetBucketOrCreate([]byte(reg.GetName()))
		if err != nil {
			return xerrors.Errorf("failed to create bucket: %v", err)
		}

		for _, record := range records {
			err = bucket.Set(record[0], record[1])
			if err != nil {
				return xerrors.Errorf("failed to write entry: %v", err)
			}
		}

		return nil
	})
	if err != nil {
		return xerrors.Errorf("failed to save the registry: %v", err)
	}

	fmt.Fprintf(a.printer, "imported %d assets\n", len(records))

	return nil
}

func (a action) listAction(flags cli.Flags) error {
	filter := flags.String("kind")

	var kind asset.Kind

	switch filter {
	case "":
	case KindNative:
		kind = asset.KindNative
	case KindContract:
		kind = asset.KindContract
	default:
		return xerrors.Errorf("unknown kind '%s'", filter)
	}

	db, err := a.openDB(flags.Path("db"))
	if err != nil {
		return xerrors.Errorf("failed to open database: %v", err)
	}

	defer db.Close()

	reg := asset.NewMap(RegistryName)

	err = db.View(func(tx kv.ReadableTx) error {
		bucket := tx.GetBucket([]byte(reg.GetName()))
		if bucket == nil {
			return nil
		}

		fn := func(info asset.Info, value []byte) error {
			return a.printAsset(info, value, flags.Bool("scaled"))
		}

		if filter == "" {
			return reg.Scan(bucket, fn)
		}

		return reg.ScanKind(bucket, kind, fn)
	})
	if err != nil {
		return xerrors.Errorf("failed to scan the registry: %v", err)
	}

	return nil
}

func (a action) printAsset(info asset.Info, value []byte, scaled bool) error {
	var meta metadata

	err := json.Unmarshal(value, &meta)
	if err != nil {
		return xerrors.Errorf("failed to decode metadata of '%s': %v", info, err)
	}

	supply := meta.Supply.String()
	if scaled {
		supply = meta.Supply.Scaled(meta.Decimals).String()
	}

	fmt.Fprintf(a.printer, "%s %s %s %d %s\n",
		kindName(info.GetKind()), info, meta.Symbol, meta.Decimals, supply)

	return nil
}

func (a action) keyEncodeAction(flags cli.Flags) error {
	info, err := parseInfo(a.val, flags.String("kind"), flags.String("id"))
	if err != nil {
		return err
	}

	fmt.Fprintln(a.printer, hex.EncodeToString(info.Key()))

	return nil
}

func (a action) keyDecodeAction(flags cli.Flags) error {
	key, err := hex.DecodeString(flags.String("key"))
	if err != nil {
		return xerrors.Errorf("malformed hexadecimal key: %v", err)
	}

	info, err := asset.DecodeKey(key)
	if err != nil {
		return xerrors.Errorf("failed to decode key: %v", err)
	}

	fmt.Fprintf(a.printer, "%s %s\n", kindName(info.GetKind()), info)

	return nil
}

// parseInfo builds the info of an asset from the textual form of its kind and
// identifier.
func parseInfo(val chain.AddressValidator, kind, id string) (asset.Info, error) {
	switch kind {
	case KindNative:
		if id == "" {
			return asset.Info{}, xerrors.New("denom is empty")
		}

		return asset.NewNativeInfo(id), nil
	case KindContract:
		info, err := asset.NewContractInfoUnchecked(id).Check(val)
		if err != nil {
			return asset.Info{}, xerrors.Errorf("invalid asset: %v", err)
		}

		return info, nil
	default:
		return asset.Info{}, xerrors.Errorf("unknown kind '%s'", kind)
	}
}

// kindName returns the textual form of an asset kind.
func kindName(kind asset.Kind) string {
	if kind == asset.KindNative {
		return KindNative
	}

	return KindContract
}
