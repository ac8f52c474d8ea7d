// Package findingaid turns EAD finding-aid documents into the descriptive
// fields indexed by the search engine.
package findingaid

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kailas-cloud/findaid/internal/domain"
)

// Parser extracts fields from finding aids. It holds only read-only
// configuration and is safe for concurrent use.
type Parser struct {
	namespace    string
	registry     []FieldDef
	lineBreakTag string
	digitalTag   string
}

// Option configures a Parser.
type Option func(*Parser)

// WithNamespace sets the namespace URI that qualifies every element lookup.
func WithNamespace(ns string) Option {
	return func(p *Parser) { p.namespace = ns }
}

// WithRegistry replaces the field registry.
func WithRegistry(defs []FieldDef) Option {
	return func(p *Parser) { p.registry = defs }
}

// WithLineBreakTag sets the tag that is collapsed into a single space.
func WithLineBreakTag(tag string) Option {
	return func(p *Parser) { p.lineBreakTag = tag }
}

// WithDigitalTag sets the tag whose presence marks a document as digital.
func WithDigitalTag(tag string) Option {
	return func(p *Parser) { p.digitalTag = tag }
}

// NewParser creates a Parser. Defaults: EAD namespace, built-in registry,
// "lb" line breaks and "dao" digital objects.
func NewParser(opts ...Option) (*Parser, error) {
	p := &Parser{
		namespace:    DefaultNamespace,
		registry:     defaultRegistry,
		lineBreakTag: DefaultLineBreakTag,
		digitalTag:   DefaultDigitalTag,
	}
	for _, opt := range opts {
		opt(p)
	}
	if err := validateRegistry(p.registry); err != nil {
		return nil, fmt.Errorf("invalid field registry: %w", err)
	}
	if p.lineBreakTag == "" {
		return nil, fmt.Errorf("line break tag is required")
	}
	if p.digitalTag == "" {
		return nil, fmt.Errorf("digital object tag is required")
	}
	return p, nil
}

// Namespace returns the configured namespace URI.
func (p *Parser) Namespace() string { return p.namespace }

// Parse parses data with the built-in registry under the given namespace.
func Parse(data []byte, namespace string) (Document, error) {
	p := Parser{
		namespace:    namespace,
		registry:     defaultRegistry,
		lineBreakTag: DefaultLineBreakTag,
		digitalTag:   DefaultDigitalTag,
	}
	return p.Parse(data)
}

// Parse extracts a Document from raw XML. The only failure is a document
// that is not well-formed, reported as *domain.MalformedDocumentError.
// Missing optional elements and attributes yield empty fields.
func (p *Parser) Parse(data []byte) (Document, error) {
	root, err := decodeTree(data)
	if err != nil {
		return Document{}, domain.NewMalformedDocument(err)
	}

	collapseLineBreaks(root, p.namespace, p.lineBreakTag)

	fields, multi := p.extractFields(root)
	starts, ends := extractDates(root, p.namespace)
	multi[FieldStartDates] = starts
	multi[FieldEndDates] = ends

	return Document{
		fields:      fields,
		multiFields: multi,
		fullText:    fullText(root),
		tree:        structuredTree(root),
		digital:     p.hasDigitalObject(root),
	}, nil
}

// extractFields walks the tree once, collecting values for every registry
// field in document order.
func (p *Parser) extractFields(root *node) (map[string]string, map[string][]string) {
	values := make([][]string, len(p.registry))
	root.walk(func(n *node) {
		if n.parent == nil || n.name.Space != p.namespace {
			return
		}
		for i := range p.registry {
			def := &p.registry[i]
			if slices.Contains(def.Elements, n.name.Local) && p.ancestorMatches(n.parent, def.Ancestor) {
				values[i] = append(values[i], elementText(n))
			}
		}
	})

	fields := make(map[string]string)
	multi := make(map[string][]string)
	for i, def := range p.registry {
		if def.SingleValued {
			fields[def.Name] = joinNonEmpty(values[i])
			continue
		}
		if values[i] == nil {
			values[i] = []string{}
		}
		multi[def.Name] = values[i]
	}
	return fields, multi
}

// ancestorMatches reports whether the parent chain starting at n ends with path.
func (p *Parser) ancestorMatches(n *node, path []string) bool {
	for i := len(path) - 1; i >= 0; i-- {
		if n == nil || !n.is(p.namespace, path[i]) {
			return false
		}
		n = n.parent
	}
	return true
}

func (p *Parser) hasDigitalObject(root *node) bool {
	found := false
	root.walk(func(n *node) {
		if !found && n.is(p.namespace, p.digitalTag) {
			found = true
		}
	})
	return found
}

func joinNonEmpty(values []string) string {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			kept = append(kept, v)
		}
	}
	return strings.Join(kept, " ")
}
