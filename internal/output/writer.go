// Package output serializes a generated dataset to chunked JSON files:
// one file each for users, products, categories and transactions, and
// sessions split into sessions_<n>.json files of a fixed chunk size, in
// generation order.
package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/dvloznov/shopstream/internal/dataset"
	"github.com/dvloznov/shopstream/internal/engine"
)

// Fixed output file names.
const (
	UsersFile        = "users.json"
	ProductsFile     = "products.json"
	CategoriesFile   = "categories.json"
	TransactionsFile = "transactions.json"
)

// SessionChunkFile returns the file name for session chunk n.
func SessionChunkFile(n int) string {
	return fmt.Sprintf("sessions_%d.json", n)
}

// Writer writes a dataset into a directory. Session chunks are written by a
// small worker pool; chunk contents and names are fixed by index, so the
// parallelism does not affect what ends up on disk.
type Writer struct {
	dir       string
	chunkSize int
	workers   int
	json      jsoniter.API
}

// NewWriter creates a Writer targeting dir with the given session chunk
// size. The directory is created on first write if needed.
func NewWriter(dir string, chunkSize int) (*Writer, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("output: chunk size must be positive, got %d", chunkSize)
	}
	return &Writer{
		dir:       dir,
		chunkSize: chunkSize,
		workers:   4,
		json:      jsoniter.ConfigCompatibleWithStandardLibrary,
	}, nil
}

// WriteDataset implements Sink.
func (w *Writer) WriteDataset(ctx context.Context, ds *engine.Dataset) ([]string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, fmt.Errorf("output: create dir %q: %w", w.dir, err)
	}

	var paths []string
	single := []struct {
		name string
		data any
	}{
		{UsersFile, ds.Users},
		{ProductsFile, ds.Products},
		{CategoriesFile, ds.Categories},
		{TransactionsFile, ds.Transactions},
	}
	for _, f := range single {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(w.dir, f.name)
		if err := w.encodeArray(path, f.data); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	chunkPaths, err := w.writeSessionChunks(ctx, ds.Sessions)
	if err != nil {
		return nil, err
	}
	return append(paths, chunkPaths...), nil
}

type chunkJob struct {
	index    int
	sessions []*dataset.Session
}

// writeSessionChunks fans chunk writes out to w.workers goroutines fed by a
// channel, and waits for all of them. The first write error wins; remaining
// jobs are drained so workers can exit.
func (w *Writer) writeSessionChunks(ctx context.Context, sessions []*dataset.Session) ([]string, error) {
	numChunks := (len(sessions) + w.chunkSize - 1) / w.chunkSize

	paths := make([]string, numChunks)
	jobs := make(chan chunkJob)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	setErr := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}
	failed := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return firstErr != nil
	}

	workers := w.workers
	if workers > numChunks {
		workers = numChunks
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				if ctx.Err() != nil || failed() {
					continue
				}
				path := filepath.Join(w.dir, SessionChunkFile(job.index))
				if err := w.encodeArray(path, job.sessions); err != nil {
					setErr(err)
					continue
				}
				paths[job.index] = path
			}
		}()
	}

	for i := 0; i < numChunks; i++ {
		lo := i * w.chunkSize
		hi := lo + w.chunkSize
		if hi > len(sessions) {
			hi = len(sessions)
		}
		jobs <- chunkJob{index: i, sessions: sessions[lo:hi]}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return paths, nil
}

// encodeArray writes v as a single JSON array to path.
func (w *Writer) encodeArray(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: create %q: %w", path, err)
	}

	enc := w.json.NewEncoder(f)
	if err := enc.Encode(v); err != nil {
		f.Close()
		return fmt.Errorf("output: encode %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("output: close %q: %w", path, err)
	}
	return nil
}
