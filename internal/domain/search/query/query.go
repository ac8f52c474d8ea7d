package query

import (
	"net/url"
	"strings"
)

// Wire keys of the engine's request language.
const (
	KeyFilter = "fq"
	KeyQuery  = "q"
	KeySort   = "sort"
	KeyFormat = "wt"
	KeyFields = "fl"
	KeyRows   = "rows"
)

// Clause is one key=value fragment of a compiled request.
type Clause struct {
	Key   string
	Value string
}

func (c Clause) String() string { return c.Key + "=" + c.Value }

// Query is an immutable compiled request.
type Query struct {
	clauses []Clause
}

// Clauses returns a copy of the clauses in emission order.
func (q Query) Clauses() []Clause {
	return append([]Clause(nil), q.clauses...)
}

// Values returns every clause value stored under key, in order.
func (q Query) Values(key string) []string {
	var out []string
	for _, c := range q.clauses {
		if c.Key == key {
			out = append(out, c.Value)
		}
	}
	return out
}

// String renders the request as key=value pairs joined by '&', unescaped.
func (q Query) String() string {
	var b strings.Builder
	for i, c := range q.clauses {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(c.Key)
		b.WriteByte('=')
		b.WriteString(c.Value)
	}
	return b.String()
}

// Encode renders the request with every key and value query-escaped, ready
// to be appended to the engine's select URL.
func (q Query) Encode() string {
	var b strings.Builder
	for i, c := range q.clauses {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(c.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(c.Value))
	}
	return b.String()
}
