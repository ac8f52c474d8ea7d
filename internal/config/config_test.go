package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP: HTTPConfig{Port: 8080},
		Solr: SolrConfig{URL: "http://localhost:8983/solr", Collection: "findingaids"},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
	expected := "http.port must be between 1 and 65535, got 0"
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_Solr(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		collection string
		wantErr    string
	}{
		{"missing url", "", "fa", "solr.url is required"},
		{"relative url", "localhost:8983", "fa", "solr.url must be an absolute URL"},
		{"missing collection", "http://solr:8983/solr", "", "solr.collection is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Solr.URL = tt.url
			cfg.Solr.Collection = tt.collection

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 30 {
		t.Errorf("expected WriteTimeoutSec=30, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Solr.TimeoutSec != 15 {
		t.Errorf("expected Solr.TimeoutSec=15, got %d", cfg.Solr.TimeoutSec)
	}
	if cfg.Search.MaxRows != 10000 {
		t.Errorf("expected MaxRows=10000, got %d", cfg.Search.MaxRows)
	}
	if cfg.Search.ContentKind != "findingaids.findingaid" {
		t.Errorf("unexpected ContentKind %q", cfg.Search.ContentKind)
	}
	if cfg.Parser.Namespace != "urn:isbn:1-931666-22-9" {
		t.Errorf("unexpected Namespace %q", cfg.Parser.Namespace)
	}
	if cfg.Parser.MaxDocumentBytes != 32<<20 {
		t.Errorf("expected MaxDocumentBytes=32MiB, got %d", cfg.Parser.MaxDocumentBytes)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:   HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Search: SearchConfig{MaxRows: 500, ContentKind: "custom.kind"},
		Parser: ParserConfig{Namespace: "urn:custom", MaxDocumentBytes: 1024},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Search.MaxRows != 500 {
		t.Errorf("expected MaxRows=500, got %d", cfg.Search.MaxRows)
	}
	if cfg.Search.ContentKind != "custom.kind" {
		t.Errorf("unexpected ContentKind %q", cfg.Search.ContentKind)
	}
	if cfg.Parser.MaxDocumentBytes != 1024 {
		t.Errorf("expected MaxDocumentBytes=1024, got %d", cfg.Parser.MaxDocumentBytes)
	}
}

func TestParse_ExpandsEnvVars(t *testing.T) {
	t.Setenv("FINDAID_TEST_SOLR", "http://solr.internal:8983/solr")

	cfg, err := Parse([]byte(`
http:
  port: 9000
  cors_origins: ["https://archives.example.org"]
solr:
  url: ${FINDAID_TEST_SOLR}
  collection: ${FINDAID_TEST_COLLECTION:-findingaids}
search:
  max_rows: 250
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Solr.URL != "http://solr.internal:8983/solr" {
		t.Errorf("Solr.URL = %q", cfg.Solr.URL)
	}
	if cfg.Solr.Collection != "findingaids" {
		t.Errorf("Solr.Collection = %q", cfg.Solr.Collection)
	}
	if cfg.Search.MaxRows != 250 {
		t.Errorf("MaxRows = %d", cfg.Search.MaxRows)
	}
	if len(cfg.HTTP.CORSOrigins) != 1 {
		t.Errorf("CORSOrigins = %v", cfg.HTTP.CORSOrigins)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("http: [")); err == nil {
		t.Fatal("expected YAML error")
	}
	if _, err := Parse([]byte("http:\n  port: 8080\n")); err == nil {
		t.Fatal("expected validation error")
	}
}
