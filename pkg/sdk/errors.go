package findaid

import (
	"errors"

	"github.com/kailas-cloud/findaid/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrMalformedDocument       = domain.ErrMalformedDocument
	ErrDocumentTooLarge        = domain.ErrDocumentTooLarge
	ErrSearchEngine            = domain.ErrSearchEngine
	ErrSearchEngineUnavailable = domain.ErrSearchEngineUnavailable
)

// ErrSearchNotConfigured is returned by search operations when the client
// was created without WithSolr.
var ErrSearchNotConfigured = errors.New("findaid: search engine not configured")
