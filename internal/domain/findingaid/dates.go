package findingaid

import "strings"

// yearWidth is how many leading characters of a date token are kept.
const yearWidth = 4

// DateRange is a start/end pair decoded from a composite date attribute.
// End is empty when the attribute carried only a start token.
type DateRange struct {
	Start string
	End   string
}

// HasEnd reports whether the range carried an end token.
func (r DateRange) HasEnd() bool { return r.End != "" }

// ParseDateRange decodes a composite "start/end" value such as "1950-01-01/1965".
// Tokens longer than four characters are cut to their first four, shorter
// ones pass through untouched. Blank values and an empty start token are
// rejected. With more than two tokens only the start is kept.
func ParseDateRange(normal string) (DateRange, bool) {
	if strings.TrimSpace(normal) == "" {
		return DateRange{}, false
	}
	tokens := strings.Split(normal, "/")
	r := DateRange{Start: truncateYear(tokens[0])}
	if r.Start == "" {
		return DateRange{}, false
	}
	if len(tokens) == 2 {
		r.End = truncateYear(tokens[1])
	}
	return r, true
}

func truncateYear(token string) string {
	runes := []rune(token)
	if len(runes) > yearWidth {
		return string(runes[:yearWidth])
	}
	return token
}

// extractDates reads unitdate@normal under archdesc/did, where archdesc is a
// direct child of the root. Elements without a usable attribute add nothing.
func extractDates(root *node, namespace string) (starts, ends []string) {
	starts, ends = []string{}, []string{}
	for _, archdesc := range root.childrenNamed(namespace, "archdesc") {
		dids := archdesc.childrenNamed(namespace, "did")
		if len(dids) == 0 {
			continue
		}
		for _, unitdate := range dids[0].childrenNamed(namespace, "unitdate") {
			normal, ok := unitdate.attr("normal")
			if !ok {
				continue
			}
			r, ok := ParseDateRange(normal)
			if !ok {
				continue
			}
			starts = append(starts, r.Start)
			if r.HasEnd() {
				ends = append(ends, r.End)
			}
		}
	}
	return starts, ends
}
