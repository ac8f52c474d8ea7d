package findingaid

import "fmt"

// DefaultNamespace is the EAD 2002 namespace URI.
const DefaultNamespace = "urn:isbn:1-931666-22-9"

// Configured tag names.
const (
	DefaultLineBreakTag = "lb"
	DefaultDigitalTag   = "dao"
)

// Field names produced by the default registry.
const (
	FieldTitle                = "title"
	FieldAbstract             = "abstract"
	FieldIdentifier           = "identifier"
	FieldCreators             = "creators"
	FieldLanguages            = "languages"
	FieldGeographicAreas      = "geographic_areas"
	FieldSubjectTopics        = "subject_topics"
	FieldSubjectOrganizations = "subject_organizations"
	FieldSubjectPersons       = "subject_persons"
	FieldExtents              = "extents"
	FieldGenreForms           = "genreforms"
	FieldInclusiveDates       = "inclusive_dates"

	// Derived from unitdate@normal, never part of a registry.
	FieldStartDates = "start_dates"
	FieldEndDates   = "end_dates"
)

// FieldDef describes where the values of one field live in a finding aid.
// An element matches when its local name is one of Elements and its parent
// chain ends with the Ancestor path.
type FieldDef struct {
	Name         string
	Elements     []string
	Ancestor     []string
	SingleValued bool
}

var defaultRegistry = []FieldDef{
	// subtitle is an alternate title construct living next to titleproper.
	{Name: FieldTitle, Elements: []string{"titleproper", "subtitle"}, Ancestor: []string{"titlestmt"}, SingleValued: true},
	{Name: FieldAbstract, Elements: []string{"abstract"}, Ancestor: []string{"did"}, SingleValued: true},
	{Name: FieldIdentifier, Elements: []string{"eadid"}, Ancestor: []string{"eadheader"}, SingleValued: true},
	{
		Name:     FieldCreators,
		Elements: []string{"corpname", "persname", "famname"},
		Ancestor: []string{"archdesc", "did", "origination"},
	},
	{Name: FieldLanguages, Elements: []string{"language"}, Ancestor: []string{"langmaterial"}},
	{Name: FieldGeographicAreas, Elements: []string{"geogname"}, Ancestor: []string{"controlaccess"}},
	{Name: FieldSubjectTopics, Elements: []string{"subject"}, Ancestor: []string{"controlaccess"}},
	{Name: FieldSubjectOrganizations, Elements: []string{"corpname"}, Ancestor: []string{"controlaccess"}},
	{Name: FieldSubjectPersons, Elements: []string{"persname", "famname"}, Ancestor: []string{"controlaccess"}},
	{Name: FieldExtents, Elements: []string{"extent"}, Ancestor: []string{"physdesc"}},
	{Name: FieldGenreForms, Elements: []string{"genreform"}, Ancestor: []string{"controlaccess"}},
	{Name: FieldInclusiveDates, Elements: []string{"unitdate"}, Ancestor: []string{"archdesc", "did"}},
}

// DefaultRegistry returns a copy of the built-in field registry.
func DefaultRegistry() []FieldDef {
	out := make([]FieldDef, len(defaultRegistry))
	for i, def := range defaultRegistry {
		out[i] = FieldDef{
			Name:         def.Name,
			Elements:     append([]string(nil), def.Elements...),
			Ancestor:     append([]string(nil), def.Ancestor...),
			SingleValued: def.SingleValued,
		}
	}
	return out
}

// validateRegistry checks that every field is well defined and that a field
// name is used at most once, which keeps single- and multi-valued names disjoint.
func validateRegistry(defs []FieldDef) error {
	if len(defs) == 0 {
		return fmt.Errorf("field registry is empty")
	}
	seen := make(map[string]struct{}, len(defs))
	for i, def := range defs {
		if def.Name == "" {
			return fmt.Errorf("field %d: name is required", i)
		}
		if def.Name == FieldStartDates || def.Name == FieldEndDates {
			return fmt.Errorf("field %q is reserved for derived dates", def.Name)
		}
		if _, dup := seen[def.Name]; dup {
			return fmt.Errorf("field %q is defined more than once", def.Name)
		}
		seen[def.Name] = struct{}{}
		if len(def.Elements) == 0 {
			return fmt.Errorf("field %q: at least one element is required", def.Name)
		}
		if len(def.Ancestor) == 0 {
			return fmt.Errorf("field %q: ancestor path is required", def.Name)
		}
	}
	return nil
}
