package query

import (
	"net/url"
	"reflect"
	"testing"
)

func TestParseParams_PreservesOrder(t *testing.T) {
	p := ParseParams("title=b&languages=x&title=a&&text=hello+world&creators=%22Doe%22")

	wantNames := []string{"title", "languages", "text", "creators"}
	if got := p.Names(); !reflect.DeepEqual(got, wantNames) {
		t.Errorf("Names() = %q, want %q", got, wantNames)
	}
	if got := p.Values("title"); !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Errorf("title = %q", got)
	}
	if got := p.Values("text"); !reflect.DeepEqual(got, []string{"hello world"}) {
		t.Errorf("text = %q", got)
	}
	if got := p.Values("creators"); !reflect.DeepEqual(got, []string{`"Doe"`}) {
		t.Errorf("creators = %q", got)
	}
}

func TestParseParams_BadEscapeKeptVerbatim(t *testing.T) {
	p := ParseParams("title=100%&flag")
	if got := p.Values("title"); !reflect.DeepEqual(got, []string{"100%"}) {
		t.Errorf("title = %q", got)
	}
	if got := p.Values("flag"); !reflect.DeepEqual(got, []string{""}) {
		t.Errorf("flag = %q", got)
	}
}

func TestParamsFromValues_SortedNames(t *testing.T) {
	p := ParamsFromValues(url.Values{"b": {"1", "2"}, "a": {"3"}})
	if got := p.Names(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Names() = %q", got)
	}
	if got := p.Values("b"); !reflect.DeepEqual(got, []string{"1", "2"}) {
		t.Errorf("b = %q", got)
	}
}

func TestParams_ZeroValueUsable(t *testing.T) {
	var p Params
	p.Add("x", "1")
	if p.Len() != 1 {
		t.Errorf("Len() = %d", p.Len())
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		want Kind
	}{
		{"text", KindQuery},
		{"title", KindFilter},
		{"title_exact", KindFilter},
		{"identifier", KindFilter},
		{"languages", KindMultiFilter},
		{"inclusive_dates_exact", KindMultiFilter},
		{"recent", KindCustom},
		{"sort_dsc", KindCustom},
		{"page", KindUnknown},
		{"", KindUnknown},
	}
	for _, tt := range tests {
		if got := Classify(tt.name); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
