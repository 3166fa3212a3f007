package output

import (
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"

	"github.com/dvloznov/shopstream/internal/dataset"
	"github.com/dvloznov/shopstream/internal/engine"
)

// ReadDataset loads a previously written output directory back into
// memory. Session chunks are read in index order until the next file is
// missing.
func ReadDataset(dir string) (*engine.Dataset, error) {
	ds := &engine.Dataset{}

	if err := decodeArray(filepath.Join(dir, UsersFile), &ds.Users); err != nil {
		return nil, err
	}
	if err := decodeArray(filepath.Join(dir, ProductsFile), &ds.Products); err != nil {
		return nil, err
	}
	if err := decodeArray(filepath.Join(dir, CategoriesFile), &ds.Categories); err != nil {
		return nil, err
	}
	if err := decodeArray(filepath.Join(dir, TransactionsFile), &ds.Transactions); err != nil {
		return nil, err
	}

	for n := 0; ; n++ {
		path := filepath.Join(dir, SessionChunkFile(n))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			break
		}
		var chunk []*dataset.Session
		if err := decodeArray(path, &chunk); err != nil {
			return nil, err
		}
		ds.Sessions = append(ds.Sessions, chunk...)
	}

	return ds, nil
}

func decodeArray(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("output: open %q: %w", path, err)
	}
	defer f.Close()

	dec := jsoniter.ConfigCompatibleWithStandardLibrary.NewDecoder(f)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("output: decode %q: %w", path, err)
	}
	return nil
}
