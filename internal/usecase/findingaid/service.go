package findingaid

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/findaid/internal/domain"
	domfa "github.com/kailas-cloud/findaid/internal/domain/findingaid"
	"github.com/kailas-cloud/findaid/internal/logger"
	"github.com/kailas-cloud/findaid/internal/metrics"
)

// Upload is one finding aid submitted by a repository.
type Upload struct {
	Repository string
	Filename   string
	Data       []byte
}

// Record is a parsed finding aid with the metadata attached at upload time.
type Record struct {
	Repository string         `json:"repository"`
	Filename   string         `json:"filename"`
	Document   domfa.Document `json:"document"`
}

// Service parses uploaded finding aids.
type Service struct {
	parser   Parser
	maxBytes int64
}

// New creates an ingest service. maxBytes <= 0 disables the size limit.
func New(parser Parser, maxBytes int64) *Service {
	return &Service{parser: parser, maxBytes: maxBytes}
}

// MaxBytes returns the configured upload limit.
func (s *Service) MaxBytes() int64 { return s.maxBytes }

// Ingest parses u and returns the resulting record.
func (s *Service) Ingest(ctx context.Context, u Upload) (Record, error) {
	log := logger.FromContext(ctx)

	if s.maxBytes > 0 && int64(len(u.Data)) > s.maxBytes {
		metrics.ParseTotal.WithLabelValues("too_large").Inc()
		return Record{}, fmt.Errorf("%d bytes exceeds limit of %d: %w",
			len(u.Data), s.maxBytes, domain.ErrDocumentTooLarge)
	}

	start := time.Now()
	doc, err := s.parser.Parse(u.Data)
	metrics.ParseDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		status := "error"
		if errors.Is(err, domain.ErrMalformedDocument) {
			status = "malformed"
		}
		metrics.ParseTotal.WithLabelValues(status).Inc()
		return Record{}, fmt.Errorf("parse %s/%s: %w", u.Repository, u.Filename, err)
	}
	metrics.ParseTotal.WithLabelValues("ok").Inc()

	log.Info("Finding aid parsed",
		zap.String("repository", u.Repository),
		zap.String("filename", u.Filename),
		zap.Int("bytes", len(u.Data)),
		zap.Int("fields", len(doc.Fields())),
		zap.Int("multi_fields", len(doc.MultiFields())),
		zap.Bool("digital", doc.Digital()),
	)

	return Record{Repository: u.Repository, Filename: u.Filename, Document: doc}, nil
}
