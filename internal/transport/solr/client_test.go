package solr

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kailas-cloud/findaid/internal/domain"
	"github.com/kailas-cloud/findaid/internal/domain/search/query"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL + "/solr/", Collection: "findingaids", Timeout: 5 * time.Second})
}

func TestSelect_ReturnsDocs(t *testing.T) {
	var gotPath string
	var gotFQ []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotFQ = r.URL.Query()["fq"]
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":{"numFound":2,"docs":[{"title":"A"},{"title":"B"}]}}`))
	})

	q := query.NewCompiler().Compile(query.NewParams().Add("title", "Ada & Co"), false, "")
	docs, err := c.Select(context.Background(), q)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if gotPath != "/solr/findingaids/select" {
		t.Errorf("path = %q", gotPath)
	}
	if len(gotFQ) != 1 || gotFQ[0] != `title:"Ada & Co"` {
		t.Errorf("fq = %q", gotFQ)
	}
	if len(docs) != 2 || docs[1]["title"] != "B" {
		t.Errorf("docs = %v", docs)
	}
}

func TestSelect_NoDocs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"response":{"numFound":0}}`))
	})
	docs, err := c.Select(context.Background(), query.NewCompiler().Compile(nil, true, ""))
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if docs == nil || len(docs) != 0 {
		t.Errorf("docs = %#v, want empty non-nil", docs)
	}
}

func TestSelect_EngineErrorPayloadUnmodified(t *testing.T) {
	payload := `{"msg":"undefined field foo","code":400,"metadata":["error-class","org.apache.solr.common.SolrException"]}`
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"responseHeader":{"status":400},"error":` + payload + `}`))
	})

	_, err := c.Select(context.Background(), query.NewCompiler().Compile(nil, false, ""))
	if !errors.Is(err, domain.ErrSearchEngine) {
		t.Fatalf("expected ErrSearchEngine, got %v", err)
	}
	var engErr *EngineError
	if !errors.As(err, &engErr) {
		t.Fatalf("expected *EngineError, got %T", err)
	}
	if engErr.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d", engErr.StatusCode)
	}
	if string(engErr.Payload) != payload {
		t.Errorf("Payload =\n%s\nwant\n%s", engErr.Payload, payload)
	}
}

func TestSelect_ServerErrorWithoutPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{}`))
	})
	_, err := c.Select(context.Background(), query.NewCompiler().Compile(nil, false, ""))
	if !errors.Is(err, domain.ErrSearchEngineUnavailable) {
		t.Fatalf("expected ErrSearchEngineUnavailable, got %v", err)
	}
}

func TestSelect_NonJSONBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>proxy error</html>`))
	})
	_, err := c.Select(context.Background(), query.NewCompiler().Compile(nil, false, ""))
	if !errors.Is(err, domain.ErrSearchEngineUnavailable) {
		t.Fatalf("expected ErrSearchEngineUnavailable, got %v", err)
	}
}

func TestSelect_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(Config{BaseURL: url, Collection: "fa", Timeout: time.Second})
	_, err := c.Select(context.Background(), query.NewCompiler().Compile(nil, false, ""))
	if !errors.Is(err, domain.ErrSearchEngineUnavailable) {
		t.Fatalf("expected ErrSearchEngineUnavailable, got %v", err)
	}
}

func TestPing(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{"ok", http.StatusOK, false},
		{"down", http.StatusServiceUnavailable, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"status":"OK"}`))
			})
			err := c.Ping(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Ping err = %v, wantErr %v", err, tt.wantErr)
			}
			if gotPath != "/solr/findingaids/admin/ping" {
				t.Errorf("path = %q", gotPath)
			}
		})
	}
}
