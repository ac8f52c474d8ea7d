package findaid

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/findaid/internal/domain/search/query"
)

// SearchBuilder is a fluent builder for search requests. Parameters keep the
// order in which they were added.
type SearchBuilder struct {
	svc      searchUseCase
	obs      *observer
	params   *query.Params
	frontend bool
}

// Text adds a free-text query.
func (b *SearchBuilder) Text(q string) *SearchBuilder {
	b.params.Add(query.ParamText, q)
	return b
}

// Filter adds filter values for a field. A value wrapped in double quotes
// matches exactly; an unquoted comma list matches any item.
func (b *SearchBuilder) Filter(field string, values ...string) *SearchBuilder {
	b.params.Add(field, values...)
	return b
}

// Exact adds an exact-match filter for a field.
func (b *SearchBuilder) Exact(field, value string) *SearchBuilder {
	b.params.Add(field, `"`+value+`"`)
	return b
}

// Recent restricts results to records added in the last month.
func (b *SearchBuilder) Recent() *SearchBuilder {
	b.params.Add(query.ParamRecent, "true")
	return b
}

// SortAsc sorts ascending on field.
func (b *SearchBuilder) SortAsc(field string) *SearchBuilder {
	b.params.Add(query.ParamSortAsc, field)
	return b
}

// SortDesc sorts descending on field.
func (b *SearchBuilder) SortDesc(field string) *SearchBuilder {
	b.params.Add(query.ParamSortDsc, field)
	return b
}

// Frontend selects the reduced display projection.
func (b *SearchBuilder) Frontend() *SearchBuilder {
	b.frontend = true
	return b
}

// Explain returns the compiled request without executing it.
func (b *SearchBuilder) Explain() string {
	return b.svc.Explain(b.params, b.frontend)
}

// Do executes the search and returns the matching records.
func (b *SearchBuilder) Do(ctx context.Context) (_ []map[string]any, err error) {
	start := time.Now()
	var hits int
	defer func() {
		b.obs.observe("search", start, err,
			"frontend", b.frontend,
			"hits", hits,
		)
	}()

	docs, err := b.svc.Search(ctx, b.params, b.frontend)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	hits = len(docs)
	return docs, nil
}
