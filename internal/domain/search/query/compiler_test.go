package query

import (
	"net/url"
	"reflect"
	"strings"
	"sync"
	"testing"
)

const fullFL = "fl=title,abstract,digital,repository,repository_name,filename,date_added,last_modified," +
	"languages,creators,start_dates,end_dates,geographic_areas,subject_topics,subject_persons," +
	"subject_organizations,extents,genreforms,inclusive_dates,identifier"

const frontendFL = "fl=title,abstract,repository,repository_name,filename,creators,start_dates,end_dates"

func TestCompile_Empty(t *testing.T) {
	got := Compile(NewParams(), false, "")
	want := "q=*:*&wt=json&" + fullFL + "&rows=10000"
	if got != want {
		t.Errorf("Compile() =\n%s\nwant\n%s", got, want)
	}
}

func TestCompile_EmptyWithKind(t *testing.T) {
	got := Compile(NewParams(), true, "findingaids.findingaid")
	want := `q=*:*&fq=django_ct:"findingaids.findingaid"&wt=json&` + frontendFL + "&rows=10000"
	if got != want {
		t.Errorf("Compile() =\n%s\nwant\n%s", got, want)
	}
}

func TestCompile_NilParams(t *testing.T) {
	if got := Compile(nil, false, ""); !strings.HasPrefix(got, "q=*:*&") {
		t.Errorf("Compile(nil) = %q", got)
	}
}

func TestCompile_FilterConventions(t *testing.T) {
	tests := []struct {
		name  string
		param string
		value string
		want  []string
	}{
		{"plain filter", "title", "Papers", []string{`title:"Papers"`}},
		{"quoted filter", "title", `"Ada Papers"`, []string{`title_exact:"Ada Papers"`}},
		{"comma filter", "repository", "txu,txam", []string{`repository:"txu"`, `repository:"txam"`}},
		{"quoted comma filter", "repository", `"a,b"`, []string{`repository_exact:"a,b"`}},
		{"quoted multi", "languages", `"Spanish"`, []string{`languages_exact:"Spanish"`}},
		{"comma multi", "languages", "Spanish,English", []string{`languages:"Spanish"`, `languages:"English"`}},
		{"plain multi", "creators", "Doe, Jane", []string{`creators:"Doe"`, `creators:" Jane"`}},
		{"single quote char", "title", `"`, []string{`title:"""`}},
		{"empty quotes", "title", `""`, []string{`title_exact:""`}},
		{"inner quotes removed", "title", `"say "hi""`, []string{`title_exact:"say hi"`}},
		{"exact param", "title_exact", "Papers", []string{`title_exact:"Papers"`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewCompiler().Compile(NewParams().Add(tt.param, tt.value), false, "")
			if got := q.Values(KeyFilter); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("fq = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompile_FilterAndMultiFilterBehaveAlike(t *testing.T) {
	values := []string{"plain", `"quoted"`, "a,b", `"x,y"`, ""}
	for _, v := range values {
		single := NewCompiler().Compile(NewParams().Add("title", v), false, "").Values(KeyFilter)
		multi := NewCompiler().Compile(NewParams().Add("languages", v), false, "").Values(KeyFilter)
		for i := range single {
			single[i] = strings.TrimPrefix(single[i], "title")
		}
		for i := range multi {
			multi[i] = strings.TrimPrefix(multi[i], "languages")
		}
		if !reflect.DeepEqual(single, multi) {
			t.Errorf("value %q: filter %q vs multi %q", v, single, multi)
		}
	}
}

func TestCompile_ExactMatchIsPerValue(t *testing.T) {
	params := NewParams().Add("languages", `"Spanish"`, "English", `"Quechua"`, "Aymara,Guarani")
	got := NewCompiler().Compile(params, false, "").Values(KeyFilter)
	want := []string{
		`languages_exact:"Spanish"`,
		`languages:"English"`,
		`languages_exact:"Quechua"`,
		`languages:"Aymara"`,
		`languages:"Guarani"`,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("fq = %q, want %q", got, want)
	}
}

func TestCompile_QueryClauses(t *testing.T) {
	params := NewParams().Add("text", "letters", "1950 TO *")
	q := NewCompiler().Compile(params, false, "")

	want := []string{"text:letters", "text:1950 TO *"}
	if got := q.Values(KeyQuery); !reflect.DeepEqual(got, want) {
		t.Errorf("q = %q, want %q", got, want)
	}
	if strings.Contains(q.String(), "*:*") {
		t.Error("catch-all emitted alongside a ranked query")
	}
}

func TestCompile_QueryValueNotRewritten(t *testing.T) {
	q := NewCompiler().Compile(NewParams().Add("text", `"a,b"`), false, "")
	if got := q.Values(KeyQuery); !reflect.DeepEqual(got, []string{`text:"a,b"`}) {
		t.Errorf("q = %q", got)
	}
}

func TestCompile_Custom(t *testing.T) {
	params := NewParams().
		Add("sort_asc", "title", "filename").
		Add("recent", "whatever").
		Add("sort_dsc", "date_added")
	q := NewCompiler().Compile(params, false, "")

	wantSort := []string{"title asc", "filename asc", "date_added desc"}
	if got := q.Values(KeySort); !reflect.DeepEqual(got, wantSort) {
		t.Errorf("sort = %q, want %q", got, wantSort)
	}
	if got := q.Values(KeyFilter); !reflect.DeepEqual(got, []string{"date_added:[NOW-1MONTH TO NOW]"}) {
		t.Errorf("fq = %q", got)
	}
}

func TestCompile_UnknownParamsIgnored(t *testing.T) {
	params := NewParams().Add("page", "2").Add("format", "xml").Add("q", "injected")
	got := NewCompiler().Compile(params, false, "").String()
	want := Compile(NewParams(), false, "")
	if got != want {
		t.Errorf("unknown params changed output:\n%s\nwant\n%s", got, want)
	}
}

func TestCompile_ClauseOrder(t *testing.T) {
	params := NewParams().
		Add("text", "letters").
		Add("languages", "Spanish").
		Add("sort_dsc", "title").
		Add("digital", "true")
	got := NewCompiler(WithMaxRows(50)).Compile(params, true, "kind").String()
	want := `fq=languages:"Spanish"&sort=title desc&fq=digital:"true"&q=text:letters` +
		`&fq=django_ct:"kind"&wt=json&` + frontendFL + `&rows=50`
	if got != want {
		t.Errorf("Compile() =\n%s\nwant\n%s", got, want)
	}
}

func TestCompile_FrontendProjectionSmaller(t *testing.T) {
	params := NewParams().Add("creators", "Doe")
	c := NewCompiler()
	front := strings.Split(c.Compile(params, true, "").Values(KeyFields)[0], ",")
	full := strings.Split(c.Compile(params, false, "").Values(KeyFields)[0], ",")

	if len(front) >= len(full) {
		t.Fatalf("frontend fields %d, full fields %d", len(front), len(full))
	}
	set := make(map[string]bool, len(full))
	for _, f := range full {
		set[f] = true
	}
	for _, f := range front {
		if !set[f] {
			t.Errorf("frontend field %q missing from full projection", f)
		}
	}
}

func TestCompiler_Options(t *testing.T) {
	c := NewCompiler(WithMaxRows(0), WithFrontendFields("a"), WithFullFields("a", "b"))
	if c.MaxRows() != DefaultMaxRows {
		t.Errorf("MaxRows() = %d, want default", c.MaxRows())
	}
	q := c.Compile(NewParams(), true, "")
	if got := q.Values(KeyFields); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("fl = %q", got)
	}
	q = c.Compile(NewParams(), false, "")
	if got := q.Values(KeyFields); !reflect.DeepEqual(got, []string{"a,b"}) {
		t.Errorf("fl = %q", got)
	}
}

func TestQuery_Encode(t *testing.T) {
	q := NewCompiler(WithMaxRows(5)).Compile(NewParams().Add("title", "A & B"), false, "")
	enc := q.Encode()

	parsed, err := url.ParseQuery(enc)
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}
	if got := parsed["fq"]; !reflect.DeepEqual(got, []string{`title:"A & B"`}) {
		t.Errorf("fq = %q", got)
	}
	if got := parsed.Get("rows"); got != "5" {
		t.Errorf("rows = %q", got)
	}
	if strings.Contains(enc, " ") {
		t.Errorf("encoded query contains a raw space: %q", enc)
	}
}

func TestQuery_ClausesIsCopy(t *testing.T) {
	q := NewCompiler().Compile(NewParams(), false, "")
	cl := q.Clauses()
	cl[0].Value = "changed"
	if q.Clauses()[0].Value != catchAll {
		t.Error("mutating Clauses() changed the query")
	}
}

func TestCompile_ConcurrentCallsIdentical(t *testing.T) {
	params := ParseParams(`text=letters&languages="Spanish"&creators=a,b&sort_asc=title&recent=1`)
	want := Compile(params, false, "kind")

	var wg sync.WaitGroup
	results := make([]string, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Compile(params, false, "kind")
		}(i)
	}
	wg.Wait()
	for i, got := range results {
		if got != want {
			t.Errorf("call %d differs:\n%s\nwant\n%s", i, got, want)
		}
	}
}
