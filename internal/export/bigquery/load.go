package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/dvloznov/shopstream/internal/engine"
)

// Table names within the target dataset.
const (
	UsersTable        = "users"
	CategoriesTable   = "categories"
	ProductsTable     = "products"
	SessionsTable     = "sessions"
	TransactionsTable = "transactions"
)

// insertBatchSize bounds rows per streaming insert request.
const insertBatchSize = 500

// Loader streams generated rows into a BigQuery dataset.
type Loader struct {
	projectID string
	datasetID string
}

// NewLoader creates a Loader for the given project and dataset.
func NewLoader(projectID, datasetID string) *Loader {
	return &Loader{projectID: projectID, datasetID: datasetID}
}

// LoadDataset converts ds into table rows and inserts them table by table.
func (l *Loader) LoadDataset(ctx context.Context, ds *engine.Dataset) error {
	client, err := bigquery.NewClient(ctx, l.projectID)
	if err != nil {
		return fmt.Errorf("LoadDataset: bigquery client: %w", err)
	}
	defer client.Close()

	return l.LoadDatasetWithClient(ctx, client, ds)
}

// LoadDatasetWithClient is LoadDataset with an injected client.
func (l *Loader) LoadDatasetWithClient(ctx context.Context, client *bigquery.Client, ds *engine.Dataset) error {
	rows := RowsFromDataset(ds)

	if err := insertRows(ctx, client, l.projectID, l.datasetID, UsersTable, rows.Users); err != nil {
		return err
	}
	if err := insertRows(ctx, client, l.projectID, l.datasetID, CategoriesTable, rows.Categories); err != nil {
		return err
	}
	if err := insertRows(ctx, client, l.projectID, l.datasetID, ProductsTable, rows.Products); err != nil {
		return err
	}
	if err := insertRows(ctx, client, l.projectID, l.datasetID, SessionsTable, rows.Sessions); err != nil {
		return err
	}
	return insertRows(ctx, client, l.projectID, l.datasetID, TransactionsTable, rows.Transactions)
}

// insertRows streams rows into one table in bounded batches.
func insertRows[T any](ctx context.Context, client *bigquery.Client, projectID, datasetID, table string, rows []T) error {
	if len(rows) == 0 {
		return nil
	}

	inserter := client.DatasetInProject(projectID, datasetID).Table(table).Inserter()
	for start := 0; start < len(rows); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := inserter.Put(ctx, rows[start:end]); err != nil {
			return fmt.Errorf("insertRows: %s rows %d..%d: %w", table, start, end, err)
		}
	}
	return nil
}

// CountRows returns the row count of a table, for post-load verification
// against the generated collection sizes.
func (l *Loader) CountRows(ctx context.Context, client *bigquery.Client, table string) (int64, error) {
	q := client.Query(fmt.Sprintf(
		"SELECT COUNT(*) AS n FROM `%s.%s.%s`", l.projectID, l.datasetID, table))

	it, err := q.Read(ctx)
	if err != nil {
		return 0, fmt.Errorf("CountRows: query %s: %w", table, err)
	}

	var row struct {
		N int64 `bigquery:"n"`
	}
	for {
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("CountRows: read %s: %w", table, err)
		}
	}
	return row.N, nil
}
