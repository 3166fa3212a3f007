package output

import (
	"context"

	"github.com/dvloznov/shopstream/internal/engine"
)

// Sink consumes a fully materialized, ordered dataset. The generation core
// guarantees ordering before handoff; implementations decide the medium
// (local files here, object storage or a warehouse behind the export
// packages).
type Sink interface {
	// WriteDataset persists all five collections and returns the paths it
	// produced, in write order.
	WriteDataset(ctx context.Context, ds *engine.Dataset) ([]string, error)
}
