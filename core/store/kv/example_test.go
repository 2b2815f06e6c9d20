package kv

import (
	"fmt"
	"os"
	"path/filepath"
)

func ExampleBucket_Scan() {
	dir, err := os.MkdirTemp(os.TempDir(), "example")
	if err != nil {
		panic("failed to create folder: " + err.Error())
	}

	defer os.RemoveAll(dir)

	db, err := New(filepath.Join(dir, "example.db"))
	if err != nil {
		panic("failed to open db: " + err.Error())
	}

	// Keys as an asset registry would write them: a discriminant byte
	// followed by the identifier, so that one kind forms a contiguous block.
	keys := [][]byte{
		{0xff, 'u', 'u', 's', 'd'},
		{0x00, 'd', 'a', 'o'},
		{0xff, 'u', 'a', 't', 'o', 'm'},
		{0x00, 'a', 'm', 'm'},
	}

	err = db.Update(func(tx WritableTx) error {
		bucket, err := tx.GetBucketOrCreate([]byte("example_bucket"))
		if err != nil {
			return err
		}

		for _, key := range keys {
			err = bucket.Set(key, key)
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		panic("database write failed: " + err.Error())
	}

	err = db.View(func(tx ReadableTx) error {
		bucket := tx.GetBucket([]byte("example_bucket"))
		if bucket == nil {
			return nil
		}

		return bucket.Scan(nil, func(key, value []byte) error {
			fmt.Printf("%02x %s\n", key[0], key[1:])
			return nil
		})
	})
	if err != nil {
		panic("database read failed: " + err.Error())
	}

	// Output: 00 amm
	// 00 dao
	// ff uatom
	// ff uusd
}
