package findingaid

import (
	"encoding/json"
	"fmt"

	"github.com/clbanning/mxj"
)

// Document is the immutable result of parsing one finding aid.
type Document struct {
	fields      map[string]string
	multiFields map[string][]string
	fullText    string
	tree        mxj.Map
	digital     bool
}

// Field returns a single-valued field.
func (d Document) Field(name string) string { return d.fields[name] }

// Fields returns a copy of the single-valued fields.
func (d Document) Fields() map[string]string {
	out := make(map[string]string, len(d.fields))
	for k, v := range d.fields {
		out[k] = v
	}
	return out
}

// Values returns a copy of one multi-valued field, in document order.
func (d Document) Values(name string) []string {
	v, ok := d.multiFields[name]
	if !ok {
		return nil
	}
	return append([]string{}, v...)
}

// MultiFields returns a copy of the multi-valued fields.
func (d Document) MultiFields() map[string][]string {
	out := make(map[string][]string, len(d.multiFields))
	for k, v := range d.multiFields {
		out[k] = append([]string{}, v...)
	}
	return out
}

// FullText returns every text fragment of the document, space-joined.
func (d Document) FullText() string { return d.fullText }

// Tree returns a deep copy of the structured representation.
func (d Document) Tree() mxj.Map {
	if d.tree == nil {
		return nil
	}
	return copyValue(d.tree).(mxj.Map)
}

// Digital reports whether the document references a digital object.
func (d Document) Digital() bool { return d.digital }

// MarshalJSON renders the document for storage and indexing collaborators.
func (d Document) MarshalJSON() ([]byte, error) {
	tree := []byte("null")
	if d.tree != nil {
		var err error
		if tree, err = d.tree.Json(); err != nil {
			return nil, fmt.Errorf("encode tree: %w", err)
		}
	}
	return json.Marshal(struct {
		Fields      map[string]string   `json:"fields"`
		MultiFields map[string][]string `json:"multi_fields"`
		FullText    string              `json:"full_text"`
		Tree        json.RawMessage     `json:"tree"`
		Digital     bool                `json:"digital"`
	}{
		Fields:      d.fields,
		MultiFields: d.multiFields,
		FullText:    d.fullText,
		Tree:        tree,
		Digital:     d.digital,
	})
}
