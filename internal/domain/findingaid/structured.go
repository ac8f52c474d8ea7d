package findingaid

import (
	"encoding/xml"
	"strings"
	"unicode"

	"github.com/clbanning/mxj"
)

// Key conventions of the structured tree, shared with mxj.
const (
	attrPrefix = "-"
	textKey    = "#text"
)

// structuredTree dumps the whole document into a generic map keyed by local
// tag names. Repeated sibling tags become slices; an element with neither
// attributes nor children becomes its trimmed text.
func structuredTree(root *node) mxj.Map {
	return mxj.Map{root.name.Local: structuredValue(root)}
}

func structuredValue(n *node) any {
	text := mixedText(n)
	if len(n.attrs) == 0 && len(n.children) == 0 {
		return text
	}

	m := make(map[string]any, len(n.attrs)+len(n.children)+1)
	for _, a := range n.attrs {
		m[attrKey(n, a.Name)] = a.Value
	}
	for _, c := range n.children {
		key := c.name.Local
		v := structuredValue(c)
		switch existing := m[key].(type) {
		case nil:
			m[key] = v
		case []any:
			m[key] = append(existing, v)
		default:
			m[key] = []any{existing, v}
		}
	}
	if text != "" {
		m[textKey] = text
	}
	return m
}

const xmlNamespace = "http://www.w3.org/XML/1998/namespace"

// attrKey keeps the prefix of qualified attributes so that xlink:title and
// title land on different keys.
func attrKey(n *node, name xml.Name) string {
	if name.Space == "" {
		return attrPrefix + name.Local
	}
	return attrPrefix + namespacePrefix(n, name.Space) + ":" + name.Local
}

// namespacePrefix maps a resolved namespace URI back to the prefix bound to
// it on n or its nearest ancestor. Unbound spaces are returned as is.
func namespacePrefix(n *node, space string) string {
	switch space {
	case "xmlns":
		return space
	case xmlNamespace:
		return "xml"
	}
	for cur := n; cur != nil; cur = cur.parent {
		for _, a := range cur.attrs {
			if a.Name.Space == "xmlns" && a.Value == space {
				return a.Name.Local
			}
		}
	}
	return space
}

// mixedText joins the element's own text with its children's tails.
func mixedText(n *node) string {
	parts := make([]string, 0, len(n.children)+1)
	if t := strings.TrimFunc(n.text, unicode.IsSpace); t != "" {
		parts = append(parts, t)
	}
	for _, c := range n.children {
		if t := strings.TrimFunc(c.tail, unicode.IsSpace); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = copyValue(vv)
		}
		return out
	case mxj.Map:
		return mxj.Map(copyValue(map[string]any(t)).(map[string]any))
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = copyValue(vv)
		}
		return out
	default:
		return v
	}
}
