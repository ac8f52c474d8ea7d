package findingaid

import (
	"strings"
	"unicode"
)

// collapseLineBreaks removes every line-break marker below n and splices the
// marker's tail into the preceding text with exactly one space at the join.
func collapseLineBreaks(n *node, namespace, tag string) {
	kept := n.children[:0]
	for _, c := range n.children {
		if c.is(namespace, tag) {
			if k := len(kept); k > 0 {
				kept[k-1].tail = joinAtBreak(kept[k-1].tail, c.tail)
			} else {
				n.text = joinAtBreak(n.text, c.tail)
			}
			continue
		}
		collapseLineBreaks(c, namespace, tag)
		kept = append(kept, c)
	}
	for i := len(kept); i < len(n.children); i++ {
		n.children[i] = nil
	}
	n.children = kept
}

func joinAtBreak(before, after string) string {
	before = strings.TrimRightFunc(before, unicode.IsSpace)
	after = strings.TrimLeftFunc(after, unicode.IsSpace)
	if before == "" {
		return after
	}
	return before + " " + after
}

// normalizeSpace collapses whitespace runs to single spaces and trims the ends.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// elementText is the whitespace-normalized text of n and its descendants.
func elementText(n *node) string {
	return normalizeSpace(strings.Join(n.itertext(nil), " "))
}

// fullText accumulates every non-blank text fragment of the tree, text and
// tails alike, in document order.
func fullText(root *node) string {
	var parts []string
	var visit func(n *node, withTail bool)
	visit = func(n *node, withTail bool) {
		if t := normalizeSpace(n.text); t != "" {
			parts = append(parts, t)
		}
		for _, c := range n.children {
			visit(c, true)
		}
		if withTail {
			if t := normalizeSpace(n.tail); t != "" {
				parts = append(parts, t)
			}
		}
	}
	visit(root, false)
	return strings.Join(parts, " ")
}
