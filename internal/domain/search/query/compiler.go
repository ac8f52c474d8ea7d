// Package query compiles request parameters into the faceted search
// engine's request language.
package query

import (
	"strconv"
	"strings"
)

// DefaultMaxRows caps the number of records returned in one response.
const DefaultMaxRows = 10000

const (
	catchAll     = "*:*"
	formatJSON   = "json"
	recentWindow = "[NOW-1MONTH TO NOW]"
)

var (
	// DefaultFrontendFields is the projection used by the public display path.
	DefaultFrontendFields = []string{
		"title", "abstract", "repository", "repository_name", "filename",
		"creators", "start_dates", "end_dates",
	}

	// DefaultFullFields is the projection used by harvesters and API consumers.
	DefaultFullFields = []string{
		"title", "abstract", "digital", "repository", "repository_name", "filename",
		"date_added", "last_modified", "languages", "creators", "start_dates", "end_dates",
		"geographic_areas", "subject_topics", "subject_persons", "subject_organizations",
		"extents", "genreforms", "inclusive_dates", "identifier",
	}
)

// Compiler turns Params into a Query. It keeps only read-only settings, so
// one Compiler may serve any number of concurrent requests.
type Compiler struct {
	maxRows        int
	frontendFields []string
	fullFields     []string
}

// CompilerOption configures a Compiler.
type CompilerOption func(*Compiler)

// WithMaxRows sets the row limit. Non-positive values keep the default.
func WithMaxRows(n int) CompilerOption {
	return func(c *Compiler) {
		if n > 0 {
			c.maxRows = n
		}
	}
}

// WithFrontendFields replaces the front-end projection.
func WithFrontendFields(fields ...string) CompilerOption {
	return func(c *Compiler) { c.frontendFields = append([]string(nil), fields...) }
}

// WithFullFields replaces the full projection.
func WithFullFields(fields ...string) CompilerOption {
	return func(c *Compiler) { c.fullFields = append([]string(nil), fields...) }
}

// NewCompiler creates a Compiler with the default row limit and projections.
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{
		maxRows:        DefaultMaxRows,
		frontendFields: DefaultFrontendFields,
		fullFields:     DefaultFullFields,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCompiler = NewCompiler()

// Compile renders params with the default compiler.
func Compile(params *Params, frontend bool, restrictToKind string) string {
	return defaultCompiler.Compile(params, frontend, restrictToKind).String()
}

// MaxRows returns the configured row limit.
func (c *Compiler) MaxRows() int { return c.maxRows }

// Compile builds the request for params. Filter and sort clauses come first,
// then ranked query clauses, then the mandatory trailing directives. Unknown
// parameter names are dropped; values are never validated.
func (c *Compiler) Compile(params *Params, frontend bool, restrictToKind string) Query {
	var b builder
	for _, name := range params.Names() {
		values := params.Values(name)
		switch Classify(name) {
		case KindFilter, KindMultiFilter:
			for _, v := range values {
				b.filterValue(name, v)
			}
		case KindCustom:
			b.custom(name, values)
		case KindQuery:
			for _, v := range values {
				b.query = append(b.query, Clause{KeyQuery, name + ":" + v})
			}
		}
	}

	clauses := make([]Clause, 0, len(b.filters)+len(b.query)+5)
	clauses = append(clauses, b.filters...)
	clauses = append(clauses, b.query...)
	if len(b.query) == 0 {
		clauses = append(clauses, Clause{KeyQuery, catchAll})
	}
	if restrictToKind != "" {
		clauses = append(clauses, filterClause(ContentTypeField, restrictToKind))
	}
	clauses = append(clauses, Clause{KeyFormat, formatJSON})
	if frontend {
		clauses = append(clauses, Clause{KeyFields, strings.Join(c.frontendFields, ",")})
	} else {
		clauses = append(clauses, Clause{KeyFields, strings.Join(c.fullFields, ",")})
	}
	clauses = append(clauses, Clause{KeyRows, strconv.Itoa(c.maxRows)})

	return Query{clauses: clauses}
}

// builder collects the parameter-derived fragments of a single Compile call.
type builder struct {
	filters []Clause
	query   []Clause
}

// filterValue is shared by single- and multi-valued filters: a quoted value
// targets the exact field, an unquoted comma list expands to one clause per
// item, anything else is a plain clause.
func (b *builder) filterValue(field, value string) {
	switch {
	case isQuoted(value):
		b.filters = append(b.filters, filterClause(field+ExactSuffix, strings.ReplaceAll(value, `"`, "")))
	case strings.Contains(value, ","):
		for _, part := range strings.Split(value, ",") {
			b.filters = append(b.filters, filterClause(field, part))
		}
	default:
		b.filters = append(b.filters, filterClause(field, value))
	}
}

func (b *builder) custom(name string, values []string) {
	switch name {
	case ParamRecent:
		b.filters = append(b.filters, Clause{KeyFilter, DateAddedField + ":" + recentWindow})
	case ParamSortAsc:
		for _, v := range values {
			b.filters = append(b.filters, Clause{KeySort, v + " asc"})
		}
	case ParamSortDsc:
		for _, v := range values {
			b.filters = append(b.filters, Clause{KeySort, v + " desc"})
		}
	}
}

func filterClause(field, value string) Clause {
	return Clause{KeyFilter, field + `:"` + value + `"`}
}

func isQuoted(v string) bool {
	return len(v) > 1 && strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`)
}
