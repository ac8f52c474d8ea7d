package findaid

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/findaid/internal/domain/findingaid"
	"github.com/kailas-cloud/findaid/internal/domain/search/query"
	"github.com/kailas-cloud/findaid/internal/transport/solr"
	findingaiduc "github.com/kailas-cloud/findaid/internal/usecase/findingaid"
	healthuc "github.com/kailas-cloud/findaid/internal/usecase/health"
	searchuc "github.com/kailas-cloud/findaid/internal/usecase/search"
)

const (
	defaultSolrTimeout = 15 * time.Second
	defaultContentKind = "findingaids.findingaid"
)

// Internal interfaces, swapped for fakes in tests.
type ingestUseCase interface {
	Ingest(ctx context.Context, u findingaiduc.Upload) (findingaiduc.Record, error)
}

type searchUseCase interface {
	Search(ctx context.Context, params *query.Params, frontend bool) ([]map[string]any, error)
	Explain(params *query.Params, frontend bool) string
}

// Client is the findaid SDK entry point.
type Client struct {
	ingestSvc ingestUseCase
	searchSvc searchUseCase
	healthSvc healthUseCase
	engine    *solr.Client
	obs       *observer
}

// New creates a Client. When WithSolr is given, the provided context is used
// for an initial ping of the collection.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		solrTimeout: defaultSolrTimeout,
		namespace:   findingaid.DefaultNamespace,
		contentKind: defaultContentKind,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	c, err := wireClient(cfg, obs)
	if err != nil {
		return nil, err
	}

	if c.engine != nil {
		if err := c.engine.Ping(ctx); err != nil {
			return nil, fmt.Errorf("findaid: search engine not ready: %w", err)
		}
	}
	return c, nil
}

func wireClient(cfg *clientConfig, obs *observer) (*Client, error) {
	parser, err := findingaid.NewParser(findingaid.WithNamespace(cfg.namespace))
	if err != nil {
		return nil, fmt.Errorf("findaid: create parser: %w", err)
	}
	compiler := query.NewCompiler(query.WithMaxRows(cfg.maxRows))

	// pinger stays a nil interface (not a typed nil pointer) when search is off.
	var engine searchuc.Engine = notConfiguredEngine{}
	var pinger healthuc.EnginePinger
	var client *solr.Client
	if cfg.solrURL != "" {
		client = solr.NewClient(solr.Config{
			BaseURL:    cfg.solrURL,
			Collection: cfg.solrCollection,
			Timeout:    cfg.solrTimeout,
		})
		engine = client
		pinger = client
	}

	return &Client{
		ingestSvc: findingaiduc.New(parser, cfg.maxBytes),
		searchSvc: searchuc.New(engine, compiler, searchuc.Config{
			ContentKind: cfg.contentKind,
			DisplayBase: cfg.displayBase,
			XMLBase:     cfg.xmlBase,
		}),
		healthSvc: healthuc.New(pinger),
		engine:    client,
		obs:       obs,
	}, nil
}

// Ping checks search engine connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if c.engine == nil {
		return ErrSearchNotConfigured
	}
	if err = c.engine.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Parse extracts descriptive fields from one finding aid. repository and
// filename are attached to the result as-is.
func (c *Client) Parse(ctx context.Context, repository, filename string, data []byte) (_ FindingAid, err error) {
	start := time.Now()
	defer func() {
		c.obs.observe("parse", start, err,
			"repository", repository,
			"filename", filename,
			"bytes", len(data),
		)
	}()

	rec, err := c.ingestSvc.Ingest(ctx, findingaiduc.Upload{
		Repository: repository,
		Filename:   filename,
		Data:       data,
	})
	if err != nil {
		return FindingAid{}, fmt.Errorf("parse: %w", err)
	}
	return findingAidFromRecord(rec), nil
}

// Search starts a search request.
func (c *Client) Search() *SearchBuilder {
	return &SearchBuilder{svc: c.searchSvc, obs: c.obs, params: query.NewParams()}
}

// notConfiguredEngine fails every select (used when WithSolr was not given).
type notConfiguredEngine struct{}

func (notConfiguredEngine) Select(_ context.Context, _ query.Query) ([]map[string]any, error) {
	return nil, ErrSearchNotConfigured
}
