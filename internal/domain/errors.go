package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedDocument signals a finding aid that is not well-formed XML.
	ErrMalformedDocument = errors.New("malformed document")
	// ErrDocumentTooLarge signals an upload above the configured size limit.
	ErrDocumentTooLarge = errors.New("document too large")
	// ErrSearchEngine signals an error payload returned by the search engine.
	ErrSearchEngine = errors.New("search engine error")
	// ErrSearchEngineUnavailable signals a transport failure talking to the search engine.
	ErrSearchEngineUnavailable = errors.New("search engine unavailable")
)

// MalformedDocumentError wraps ErrMalformedDocument with the decoder failure.
type MalformedDocumentError struct {
	Err error
}

func (e *MalformedDocumentError) Error() string {
	if e.Err == nil {
		return ErrMalformedDocument.Error()
	}
	return fmt.Sprintf("%s: %v", ErrMalformedDocument.Error(), e.Err)
}

func (e *MalformedDocumentError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedDocument}
	}
	return []error{ErrMalformedDocument, e.Err}
}

// NewMalformedDocument creates a malformed document error.
func NewMalformedDocument(err error) error {
	return &MalformedDocumentError{Err: err}
}
