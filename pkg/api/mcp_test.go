package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/server"
)

func testMCPServer(t *testing.T) *server.MCPServer {
	t.Helper()
	srv := server.NewMCPServer("spionic-test", "0.0.0", server.WithToolCapabilities(false))
	RegisterMCPTools(srv, Options{
		Registry: testRegistry(t),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return srv
}

// callTool sends a tools/call message and returns the JSON-encoded response.
func callTool(t *testing.T, srv *server.MCPServer, name string, args map[string]any) string {
	t.Helper()
	params, err := json.Marshal(map[string]any{"name": name, "arguments": args})
	if err != nil {
		t.Fatal(err)
	}
	msg := fmt.Sprintf(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":%s}`, params)
	resp := srv.HandleMessage(context.Background(), json.RawMessage(msg))
	out, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	return string(out)
}

// toolText extracts the first text content of a tools/call response.
func toolText(t *testing.T, raw string) string {
	t.Helper()
	var resp struct {
		Result struct {
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
			IsError bool `json:"isError"`
		} `json:"result"`
	}
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("unmarshal %s: %v", raw, err)
	}
	if len(resp.Result.Content) == 0 {
		t.Fatalf("no content in %s", raw)
	}
	text := resp.Result.Content[0].Text
	if resp.Result.IsError {
		return "ERROR: " + text
	}
	return text
}

func TestMCPTools(t *testing.T) {
	srv := testMCPServer(t)

	tests := []struct {
		tool string
		args map[string]any
		want []string
	}{
		{"convert_spionic", map[string]any{"text": "lo/goj"}, []string{`"output":"λόγος"`, `"form":"nfc"`}},
		{"convert_spionic", map[string]any{"text": "a:", "form": "none"}, []string{"\"output\":\"α\u0387\""}},
		{"normalize_spionic", map[string]any{"text": "a)/"}, []string{`"normalized":"a1"`}},
		{"lookup_word", map[string]any{"term": "qeos"}, []string{`"lexicon_id":"attic"`, `"greek":"θεός"`}},
		{"lookup_word", map[string]any{"term": "qeos", "lexicons": "koine"}, []string{`"matches":[]`}},
		{"list_lexicons", nil, []string{`"id":"attic"`, `"entries":2`}},
	}
	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			text := toolText(t, callTool(t, srv, tt.tool, tt.args))
			for _, want := range tt.want {
				if !strings.Contains(text, want) {
					t.Errorf("%s: response %s missing %s", tt.tool, text, want)
				}
			}
		})
	}
}

func TestMCPToolErrors(t *testing.T) {
	srv := testMCPServer(t)

	text := toolText(t, callTool(t, srv, "convert_spionic", map[string]any{"text": "a", "form": "nfkd"}))
	if !strings.HasPrefix(text, "ERROR: ") {
		t.Errorf("unknown form: got %s, want tool error", text)
	}

	text = toolText(t, callTool(t, srv, "lookup_word", map[string]any{}))
	if !strings.HasPrefix(text, "ERROR: ") {
		t.Errorf("missing term: got %s, want tool error", text)
	}
}
