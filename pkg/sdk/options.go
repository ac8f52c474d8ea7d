package findaid

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	solrURL        string
	solrCollection string
	solrTimeout    time.Duration

	namespace   string
	maxBytes    int64
	maxRows     int
	contentKind string
	displayBase string
	xmlBase     string

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithSolr enables search against the given Solr base URL and collection.
func WithSolr(baseURL, collection string) Option {
	return optionFunc(func(c *clientConfig) {
		c.solrURL = baseURL
		c.solrCollection = collection
	})
}

// WithSolrTimeout sets the per-request timeout for Solr calls.
// Default: 15s.
func WithSolrTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.solrTimeout = d
	})
}

// WithNamespace sets the EAD namespace URI used for element lookups.
// Defaults to urn:isbn:1-931666-22-9.
func WithNamespace(ns string) Option {
	return optionFunc(func(c *clientConfig) {
		c.namespace = ns
	})
}

// WithMaxDocumentBytes rejects uploads above n bytes. Zero disables the limit (default).
func WithMaxDocumentBytes(n int64) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxBytes = n
	})
}

// WithMaxRows sets the row limit of compiled queries.
// Default: 10000.
func WithMaxRows(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxRows = n
	})
}

// WithContentKind restricts searches to one indexed model.
// Default: findingaids.findingaid. Pass "" to disable.
func WithContentKind(kind string) Option {
	return optionFunc(func(c *clientConfig) {
		c.contentKind = kind
	})
}

// WithLinks sets the base URLs used to decorate search hits with
// display_site and xml links.
func WithLinks(displayBase, xmlBase string) Option {
	return optionFunc(func(c *clientConfig) {
		c.displayBase = displayBase
		c.xmlBase = xmlBase
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
