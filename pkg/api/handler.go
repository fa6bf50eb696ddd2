// Package api exposes the converter and the lexicon registry over HTTP and MCP.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hazyhaar/spionic/pkg/kit"
	"github.com/hazyhaar/spionic/pkg/lexicon"
	"github.com/hazyhaar/spionic/pkg/spionic"
)

const maxBodyBytes = 64 * 1024

// Options configures the HTTP router and MCP tools.
type Options struct {
	Registry *lexicon.Registry
	Form     spionic.Form // default output form when a request names none
	Logger   *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// NewRouter returns an http.Handler with all API routes.
func NewRouter(opts Options) http.Handler {
	if opts.Registry == nil {
		opts.Registry = lexicon.NewRegistry("")
	}
	mux := http.NewServeMux()
	h := &handler{ep: newEndpoints(opts), reg: opts.Registry}

	mux.HandleFunc("POST /v1/convert", h.handleConvert)
	mux.HandleFunc("GET /v1/convert/{text...}", h.handleConvertPath)
	mux.HandleFunc("POST /v1/normalize", h.handleNormalize)
	mux.HandleFunc("GET /v1/table", h.handleTable)
	mux.HandleFunc("GET /v1/lookup/{term...}", h.handleLookup)
	mux.HandleFunc("GET /v1/lexicons", h.handleListLexicons)
	mux.HandleFunc("GET /v1/health", h.handleHealth)

	return cors(requestContext(mux))
}

type handler struct {
	ep  *endpoints
	reg *lexicon.Registry
}

// --- convert ---

type httpConvertRequest struct {
	Text *string `json:"text"`
	Form string  `json:"form,omitempty"`
}

func (h *handler) handleConvert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req httpConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Text == nil {
		writeError(w, http.StatusBadRequest, "missing text")
		return
	}
	h.convert(w, r, &convertReq{Text: *req.Text, Form: req.Form})
}

func (h *handler) handleConvertPath(w http.ResponseWriter, r *http.Request) {
	h.convert(w, r, &convertReq{
		Text: r.PathValue("text"),
		Form: r.URL.Query().Get("form"),
	})
}

func (h *handler) convert(w http.ResponseWriter, r *http.Request, req *convertReq) {
	resp, err := h.ep.convert(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- normalize ---

type httpNormalizeRequest struct {
	Text *string `json:"text"`
}

func (h *handler) handleNormalize(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req httpNormalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Text == nil {
		writeError(w, http.StatusBadRequest, "missing text")
		return
	}

	resp, err := h.ep.normalize(r.Context(), &normalizeReq{Text: *req.Text})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- table ---

func (h *handler) handleTable(w http.ResponseWriter, r *http.Request) {
	resp, err := h.ep.table(r.Context(), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- lookup ---

func (h *handler) handleLookup(w http.ResponseWriter, r *http.Request) {
	resp, err := h.ep.lookup(r.Context(), &lookupReq{
		Term: r.PathValue("term"),
		Opts: parseLookupOpts(r),
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- list lexicons ---

func (h *handler) handleListLexicons(w http.ResponseWriter, r *http.Request) {
	resp, err := h.ep.listLexicons(r.Context(), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- health ---

type healthResponse struct {
	Status       string `json:"status"`
	Lexicons     int    `json:"lexicons"`
	TotalEntries int    `json:"total_entries"`
	Glyphs       int    `json:"glyphs"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:       "ok",
		Lexicons:     h.reg.Count(),
		TotalEntries: h.reg.TotalEntries(),
		Glyphs:       spionic.GlyphTable().Len(),
	})
}

// --- helpers ---

func parseLookupOpts(r *http.Request) *lexicon.LookupOptions {
	opts := &lexicon.LookupOptions{}
	if v := r.URL.Query().Get("lexicons"); v != "" {
		opts.Lexicons = splitList(v)
	}
	if v := r.URL.Query().Get("languages"); v != "" {
		opts.Languages = splitList(v)
	}
	return opts
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// requestContext tags the request context with the transport and a request
// ID, taken from X-Request-ID when the client sends one.
func requestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := kit.WithTransport(r.Context(), "http")
		if id := r.Header.Get("X-Request-ID"); id != "" {
			ctx = kit.WithRequestID(ctx, id)
		} else {
			ctx = kit.EnsureRequestID(ctx)
		}
		w.Header().Set("X-Request-ID", kit.GetRequestID(ctx))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
