// Package gcs hands a generated output directory off to Cloud Storage so
// downstream analytics jobs can pick it up. It assumes Application Default
// Credentials are configured.
package gcs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/storage"
)

// perFileTimeout bounds a single object upload.
const perFileTimeout = 2 * time.Minute

// UploadFile uploads one local file to a bucket under objectName.
func UploadFile(ctx context.Context, bucketName, objectName, filePath string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("UploadFile: open %q: %w", filePath, err)
	}
	defer f.Close()

	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("UploadFile: create storage client: %w", err)
	}
	defer client.Close()

	return uploadWithClient(ctx, client, bucketName, objectName, f)
}

// UploadDataset uploads every .json file at the top level of dir to the
// bucket under prefix, in lexical file order. It returns the object names
// it wrote.
func UploadDataset(ctx context.Context, bucketName, prefix, dir string) ([]string, error) {
	files, err := listDatasetFiles(dir)
	if err != nil {
		return nil, err
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("UploadDataset: create storage client: %w", err)
	}
	defer client.Close()

	var objects []string
	for _, name := range files {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("UploadDataset: open %q: %w", name, err)
		}

		objectName := path.Join(prefix, name)
		err = uploadWithClient(ctx, client, bucketName, objectName, f)
		f.Close()
		if err != nil {
			return nil, err
		}
		objects = append(objects, objectName)
	}
	return objects, nil
}

// listDatasetFiles returns the top-level .json file names in dir, sorted
// lexically.
func listDatasetFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listDatasetFiles: read dir %q: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files, nil
}

func uploadWithClient(ctx context.Context, client *storage.Client, bucketName, objectName string, r io.Reader) error {
	ctx, cancel := context.WithTimeout(ctx, perFileTimeout)
	defer cancel()

	w := client.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("upload %s: copy to writer: %w", objectName, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("upload %s: finalize: %w", objectName, err)
	}
	return nil
}
