package findingaid

import domfa "github.com/kailas-cloud/findaid/internal/domain/findingaid"

// Parser turns raw finding-aid bytes into a document.
type Parser interface {
	Parse(data []byte) (domfa.Document, error)
}
