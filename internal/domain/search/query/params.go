package query

import (
	"net/url"
	"sort"
	"strings"
)

// Params is an ordered multimap of request parameters. Names keep the order
// of their first appearance; values keep the order they were added in.
type Params struct {
	names  []string
	values map[string][]string
}

// NewParams creates an empty parameter set.
func NewParams() *Params {
	return &Params{values: make(map[string][]string)}
}

// Add appends values under name.
func (p *Params) Add(name string, values ...string) *Params {
	if p.values == nil {
		p.values = make(map[string][]string)
	}
	if _, ok := p.values[name]; !ok {
		p.names = append(p.names, name)
		p.values[name] = nil
	}
	p.values[name] = append(p.values[name], values...)
	return p
}

// Names returns parameter names in first-appearance order.
func (p *Params) Names() []string {
	if p == nil {
		return nil
	}
	return append([]string(nil), p.names...)
}

// Values returns a copy of the values stored under name.
func (p *Params) Values(name string) []string {
	if p == nil {
		return nil
	}
	return append([]string(nil), p.values[name]...)
}

// Len returns the number of distinct names.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.names)
}

// ParseParams decodes a raw query string preserving parameter order.
// Pairs that fail to unescape are kept verbatim; the compiler never rejects input.
func ParseParams(rawQuery string) *Params {
	p := NewParams()
	for rawQuery != "" {
		var pair string
		pair, rawQuery, _ = strings.Cut(rawQuery, "&")
		if pair == "" {
			continue
		}
		name, value, _ := strings.Cut(pair, "=")
		p.Add(unescape(name), unescape(value))
	}
	return p
}

// ParamsFromValues converts url.Values. Map iteration has no order, so names
// are sorted to keep compilation deterministic; prefer ParseParams when the
// raw query is available.
func ParamsFromValues(v url.Values) *Params {
	names := make([]string, 0, len(v))
	for name := range v {
		names = append(names, name)
	}
	sort.Strings(names)

	p := NewParams()
	for _, name := range names {
		p.Add(name, v[name]...)
	}
	return p
}

func unescape(s string) string {
	u, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return u
}
