package search

import (
	"context"

	"github.com/kailas-cloud/findaid/internal/domain/search/query"
)

// Engine executes compiled queries against the search engine.
type Engine interface {
	Select(ctx context.Context, q query.Query) ([]map[string]any, error)
}
