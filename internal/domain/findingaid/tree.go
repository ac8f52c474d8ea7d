package findingaid

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/encoding/ianaindex"
)

// node is one element of the decoded document. Text layout follows the
// text/tail model: text precedes the first child, tail follows the end tag.
type node struct {
	name     xml.Name
	attrs    []xml.Attr
	text     string
	tail     string
	parent   *node
	children []*node
}

func (n *node) is(namespace, local string) bool {
	return n.name.Space == namespace && n.name.Local == local
}

// attr returns an unqualified attribute value.
func (n *node) attr(local string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name.Space == "" && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// childrenNamed returns direct children with the given qualified name.
func (n *node) childrenNamed(namespace, local string) []*node {
	var out []*node
	for _, c := range n.children {
		if c.is(namespace, local) {
			out = append(out, c)
		}
	}
	return out
}

// walk visits n and its descendants in document order.
func (n *node) walk(visit func(*node)) {
	visit(n)
	for _, c := range n.children {
		c.walk(visit)
	}
}

// itertext appends the element's own text and all descendant text, excluding
// the element's own tail, in document order.
func (n *node) itertext(dst []string) []string {
	if n.text != "" {
		dst = append(dst, n.text)
	}
	for _, c := range n.children {
		dst = c.itertext(dst)
		if c.tail != "" {
			dst = append(dst, c.tail)
		}
	}
	return dst
}

var byteOrderMark = []byte("\xef\xbb\xbf")

// entityDecl matches general entity declarations with a literal value in a
// DOCTYPE internal subset. Parameter and external entities are not expanded.
var entityDecl = regexp.MustCompile(`<!ENTITY\s+([^\s%"'>]+)\s+(?:"([^"]*)"|'([^']*)')\s*>`)

// decodeTree decodes data into a node tree. Any syntax error, missing root or
// second root element is reported as an error.
func decodeTree(data []byte) (*node, error) {
	dec := xml.NewDecoder(bytes.NewReader(bytes.TrimPrefix(data, byteOrderMark)))
	dec.CharsetReader = charsetReader
	entities := make(map[string]string)
	dec.Entity = entities

	var root, cur *node
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if cur == nil && root != nil {
				return nil, fmt.Errorf("unexpected second root element <%s>", t.Name.Local)
			}
			n := &node{
				name:   t.Name,
				attrs:  append([]xml.Attr(nil), t.Attr...),
				parent: cur,
			}
			if cur == nil {
				root = n
			} else {
				cur.children = append(cur.children, n)
			}
			cur = n
		case xml.EndElement:
			cur = cur.parent
		case xml.Directive:
			if root == nil {
				declareEntities(entities, t)
			}
		case xml.CharData:
			if cur == nil {
				if strings.TrimFunc(string(t), unicode.IsSpace) != "" {
					return nil, fmt.Errorf("text outside the root element")
				}
				continue
			}
			if k := len(cur.children); k > 0 {
				cur.children[k-1].tail += string(t)
			} else {
				cur.text += string(t)
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("no root element")
	}
	if cur != nil {
		return nil, fmt.Errorf("unclosed element <%s>", cur.name.Local)
	}
	return root, nil
}

// declareEntities records the internal-subset entities of a DOCTYPE. The
// first declaration of a name wins.
func declareEntities(dst map[string]string, d xml.Directive) {
	if !bytes.HasPrefix(d, []byte("DOCTYPE")) {
		return
	}
	for _, m := range entityDecl.FindAllSubmatch(d, -1) {
		name := string(m[1])
		if _, ok := dst[name]; ok {
			continue
		}
		if m[2] != nil {
			dst[name] = string(m[2])
		} else {
			dst[name] = string(m[3])
		}
	}
}

// charsetReader lets legacy documents declare non UTF-8 encodings.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, fmt.Errorf("charset %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("charset %q is not supported", label)
	}
	return enc.NewDecoder().Reader(input), nil
}
