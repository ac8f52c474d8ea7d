package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/findaid/internal/domain/search/query"
	"github.com/kailas-cloud/findaid/internal/metrics"
)

// Link fields added to every result that names its repository and file.
const (
	FieldDisplaySite = "display_site"
	FieldXML         = "xml"
)

// Config holds search settings.
type Config struct {
	// ContentKind restricts results to one indexed model; empty disables it.
	ContentKind string
	DisplayBase string
	XMLBase     string
}

// Service compiles request parameters, runs them and decorates the hits.
type Service struct {
	engine   Engine
	compiler *query.Compiler
	cfg      Config
}

// New creates a search service.
func New(engine Engine, compiler *query.Compiler, cfg Config) *Service {
	cfg.DisplayBase = strings.TrimRight(cfg.DisplayBase, "/")
	cfg.XMLBase = strings.TrimRight(cfg.XMLBase, "/")
	return &Service{engine: engine, compiler: compiler, cfg: cfg}
}

// Search runs params against the engine. frontend selects the reduced projection.
func (s *Service) Search(ctx context.Context, params *query.Params, frontend bool) ([]map[string]any, error) {
	q := s.compile(params, frontend)

	docs, err := s.engine.Select(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}

	for _, doc := range docs {
		s.decorate(doc)
	}
	return docs, nil
}

// Explain returns the compiled request string without executing it.
func (s *Service) Explain(params *query.Params, frontend bool) string {
	return s.compile(params, frontend).String()
}

func (s *Service) compile(params *query.Params, frontend bool) query.Query {
	projection := "full"
	if frontend {
		projection = "frontend"
	}
	metrics.QueriesCompiledTotal.WithLabelValues(projection).Inc()
	return s.compiler.Compile(params, frontend, s.cfg.ContentKind)
}

func (s *Service) decorate(doc map[string]any) {
	repo, ok := stringValue(doc["repository"])
	if !ok {
		return
	}
	filename, ok := stringValue(doc["filename"])
	if !ok {
		return
	}
	doc[FieldDisplaySite] = s.cfg.DisplayBase + "/" + repo + "/finding_aids/" + filename
	doc[FieldXML] = s.cfg.XMLBase + "/" + repo + "/" + filename
}

// stringValue accepts a plain string or the first entry of a multi-valued field.
func stringValue(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, t != ""
	case []any:
		if len(t) == 0 {
			return "", false
		}
		return stringValue(t[0])
	default:
		return "", false
	}
}
