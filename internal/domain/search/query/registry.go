package query

// Kind classifies a request parameter.
type Kind int

const (
	// KindUnknown parameters are ignored.
	KindUnknown Kind = iota
	// KindQuery parameters feed the ranked query clause.
	KindQuery
	// KindFilter parameters feed single-valued filter clauses.
	KindFilter
	// KindMultiFilter parameters feed filter clauses on list-shaped fields.
	KindMultiFilter
	// KindCustom parameters control sorting and the recent window.
	KindCustom
)

// Reserved parameter and index field names.
const (
	ParamText    = "text"
	ParamRecent  = "recent"
	ParamSortAsc = "sort_asc"
	ParamSortDsc = "sort_dsc"

	// ExactSuffix selects the untokenized variant of a field.
	ExactSuffix = "_exact"

	// ContentTypeField holds the content kind of every indexed record.
	ContentTypeField = "django_ct"
	// DateAddedField holds the record's ingestion timestamp.
	DateAddedField = "date_added"
)

var (
	queryParams = []string{ParamText}

	filterParams = withExact(
		"title", "abstract", "digital", "identifier", "repository", "filename",
	)

	multiFilterParams = withExact(
		"languages", "creators", "start_dates", "end_dates", "geographic_areas",
		"subject_topics", "subject_persons", "subject_organizations",
		"extents", "genreforms", "inclusive_dates",
	)

	customParams = []string{ParamRecent, ParamSortAsc, ParamSortDsc}

	kinds = buildKinds()
)

// withExact lists every name followed by its exact-match variant.
func withExact(names ...string) []string {
	out := make([]string, 0, 2*len(names))
	for _, n := range names {
		out = append(out, n, n+ExactSuffix)
	}
	return out
}

func buildKinds() map[string]Kind {
	m := make(map[string]Kind)
	for _, group := range []struct {
		names []string
		kind  Kind
	}{
		{queryParams, KindQuery},
		{filterParams, KindFilter},
		{multiFilterParams, KindMultiFilter},
		{customParams, KindCustom},
	} {
		for _, n := range group.names {
			m[n] = group.kind
		}
	}
	return m
}

// Classify returns the kind of a parameter name.
func Classify(name string) Kind {
	return kinds[name]
}
