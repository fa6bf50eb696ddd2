package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hazyhaar/spionic/pkg/lexicon"
	"github.com/hazyhaar/spionic/pkg/spionic"
)

func testRegistry(t *testing.T) *lexicon.Registry {
	t.Helper()
	dir := t.TempDir()
	lex := filepath.Join(dir, "attic")
	if err := os.MkdirAll(lex, 0o755); err != nil {
		t.Fatal(err)
	}
	manifest := `id: attic
version: "1.0"
language: grc
source: test
license: CC0
format:
  has_header: true
  key_column: lemma
metadata_columns:
  - name: gloss
    column: gloss
`
	if err := os.WriteFile(filepath.Join(lex, "manifest.yaml"), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	data := "lemma,gloss\nlo/goj,word\nqeo/j,god\n"
	if err := os.WriteFile(filepath.Join(lex, "data.csv"), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	reg := lexicon.NewRegistry(dir)
	if err := reg.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return reg
}

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ts := httptest.NewServer(NewRouter(Options{Registry: testRegistry(t), Logger: logger}))
	t.Cleanup(ts.Close)
	return ts
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	return resp
}

func TestConvert(t *testing.T) {
	ts := testServer(t)

	tests := []struct {
		name string
		body string
		want convertResponse
	}{
		{
			name: "default form",
			body: `{"text":"a)/nqrwpoj"}`,
			want: convertResponse{Input: "a)/nqrwpoj", Normalized: "a1nqrwpoj", Output: "ἄνθρωπος", Form: "nfc"},
		},
		{
			name: "raw punctuation",
			body: `{"text":"a:b","form":"none"}`,
			want: convertResponse{Input: "a:b", Normalized: "a:b", Output: "α\u0387β", Form: "none"},
		},
		{
			name: "nfd",
			body: `{"text":"a0","form":"nfd"}`,
			want: convertResponse{Input: "a0", Normalized: "a0", Output: "\u03b1\u0313", Form: "nfd"},
		},
		{
			name: "empty text",
			body: `{"text":""}`,
			want: convertResponse{Form: "nfc"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+"/v1/convert", tt.body)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			got := decode[convertResponse](t, resp)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("response mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConvertBadRequests(t *testing.T) {
	ts := testServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"text":`},
		{"missing text", `{"form":"nfc"}`},
		{"unknown form", `{"text":"a","form":"nfkc"}`},
		{"too large", `{"text":"` + strings.Repeat("a", maxBodyBytes) + `"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+"/v1/convert", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			body := decode[map[string]string](t, resp)
			if body["error"] == "" {
				t.Error("missing error message")
			}
		})
	}
}

func TestConvertPath(t *testing.T) {
	ts := testServer(t)

	resp := get(t, ts.URL+"/v1/convert/lo%2Fgoj")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	got := decode[convertResponse](t, resp)
	if got.Output != "λόγος" {
		t.Errorf("Output = %q, want λόγος", got.Output)
	}

	resp = get(t, ts.URL+"/v1/convert/a0?form=nfd")
	got = decode[convertResponse](t, resp)
	if got.Output != "\u03b1\u0313" || got.Form != "nfd" {
		t.Errorf("got %+v", got)
	}
}

func TestNormalize(t *testing.T) {
	ts := testServer(t)

	resp := post(t, ts.URL+"/v1/normalize", `{"text":"w)=|"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	got := decode[normalizeResponse](t, resp)
	want := normalizeResponse{Input: "w)=|", Normalized: "w]|"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}

	resp = post(t, ts.URL+"/v1/normalize", `{}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing text: status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestTable(t *testing.T) {
	ts := testServer(t)

	got := decode[tableResponse](t, get(t, ts.URL+"/v1/table"))
	if len(got.Width) != spionic.WidthTable().Len() {
		t.Errorf("width rules = %d", len(got.Width))
	}
	if len(got.Combined) != spionic.CombinedTable().Len() {
		t.Errorf("combined rules = %d", len(got.Combined))
	}
	if diff := cmp.Diff(spionic.GlyphTable().Rules(), got.Glyphs); diff != "" {
		t.Errorf("glyph rules mismatch (-want +got):\n%s", diff)
	}
}

func TestLookup(t *testing.T) {
	ts := testServer(t)

	got := decode[lexicon.LookupResult](t, get(t, ts.URL+"/v1/lookup/logos"))
	want := lexicon.LookupResult{
		Term:   "logos",
		Greek:  "λογοσ",
		Folded: "λογοσ",
		Matches: []lexicon.Match{{
			LexiconID: "attic",
			Language:  "grc",
			SPIonic:   "lo/goj",
			Greek:     "λόγος",
			Metadata:  map[string]string{"gloss": "word"},
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("lookup mismatch (-want +got):\n%s", diff)
	}

	got = decode[lexicon.LookupResult](t, get(t, ts.URL+"/v1/lookup/logos?languages=grc-koine"))
	if len(got.Matches) != 0 {
		t.Errorf("language filter: got %d matches, want 0", len(got.Matches))
	}

	got = decode[lexicon.LookupResult](t, get(t, ts.URL+"/v1/lookup/%CE%98%CE%B5%CF%8C%CF%82"))
	if len(got.Matches) != 1 || got.Matches[0].SPIonic != "qeo/j" {
		t.Errorf("Greek input: got %+v", got.Matches)
	}
}

func TestListLexiconsAndHealth(t *testing.T) {
	ts := testServer(t)

	lex := decode[lexiconsResponse](t, get(t, ts.URL+"/v1/lexicons"))
	want := []lexicon.Info{{ID: "attic", Version: "1.0", Language: "grc", Source: "test", License: "CC0", Entries: 2}}
	if diff := cmp.Diff(want, lex.Lexicons); diff != "" {
		t.Errorf("lexicons mismatch (-want +got):\n%s", diff)
	}

	health := decode[healthResponse](t, get(t, ts.URL+"/v1/health"))
	wantHealth := healthResponse{Status: "ok", Lexicons: 1, TotalEntries: 2, Glyphs: spionic.GlyphTable().Len()}
	if diff := cmp.Diff(wantHealth, health); diff != "" {
		t.Errorf("health mismatch (-want +got):\n%s", diff)
	}
}

func TestCORSAndRequestID(t *testing.T) {
	ts := testServer(t)

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/v1/convert", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("OPTIONS status = %d, want 204", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}

	req, _ = http.NewRequest(http.MethodGet, ts.URL+"/v1/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("X-Request-ID = %q, want abc-123", got)
	}

	resp = get(t, ts.URL+"/v1/health")
	resp.Body.Close()
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("no generated X-Request-ID")
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ts := testServer(t)
	resp := get(t, ts.URL+"/v1/normalize")
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET /v1/normalize status = %d, want 405", resp.StatusCode)
	}
}

func TestEndpointsRecoverBadRequestType(t *testing.T) {
	ep := newEndpoints(Options{
		Registry: lexicon.NewRegistry(""),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if _, err := ep.convert(context.Background(), "not a request"); err == nil {
		t.Error("expected error for a mistyped request")
	}
	if _, err := ep.lookup(context.Background(), nil); err == nil {
		t.Error("expected error for a nil request")
	}
}
