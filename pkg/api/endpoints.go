package api

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/hazyhaar/spionic/pkg/kit"
	"github.com/hazyhaar/spionic/pkg/lexicon"
	"github.com/hazyhaar/spionic/pkg/spionic"
)

// Shared request/response types used by both HTTP and MCP transports.

type convertReq struct {
	Text string
	Form string
}

type convertResponse struct {
	Input      string `json:"input"`
	Normalized string `json:"normalized"`
	Output     string `json:"output"`
	Form       string `json:"form"`
}

type normalizeReq struct {
	Text string
}

type normalizeResponse struct {
	Input      string `json:"input"`
	Normalized string `json:"normalized"`
}

type tableResponse struct {
	Width    []spionic.Rule `json:"width"`
	Combined []spionic.Rule `json:"combined"`
	Glyphs   []spionic.Rule `json:"glyphs"`
}

type lookupReq struct {
	Term string
	Opts *lexicon.LookupOptions
}

type lexiconsResponse struct {
	Lexicons []lexicon.Info `json:"lexicons"`
}

// converters holds one Converter per output form, built once.
type converters struct {
	def    spionic.Form
	byForm map[spionic.Form]*spionic.Converter
}

func newConverters(def spionic.Form) *converters {
	c := &converters{def: def, byForm: make(map[spionic.Form]*spionic.Converter)}
	for _, f := range []spionic.Form{spionic.FormNFC, spionic.FormNFD, spionic.FormNone} {
		c.byForm[f] = spionic.New(spionic.WithForm(f))
	}
	return c
}

func (c *converters) get(form string) (*spionic.Converter, error) {
	if form == "" {
		return c.byForm[c.def], nil
	}
	f, err := spionic.ParseForm(form)
	if err != nil {
		return nil, err
	}
	return c.byForm[f], nil
}

func checkText(s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("text is not valid UTF-8")
	}
	return nil
}

func convertEndpoint(conv *converters) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*convertReq)
		if err := checkText(req.Text); err != nil {
			return nil, err
		}
		c, err := conv.get(req.Form)
		if err != nil {
			return nil, err
		}
		return convertResponse{
			Input:      req.Text,
			Normalized: c.Normalize(req.Text),
			Output:     c.Convert(req.Text),
			Form:       c.Form().String(),
		}, nil
	}
}

func normalizeEndpoint() kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*normalizeReq)
		if err := checkText(req.Text); err != nil {
			return nil, err
		}
		return normalizeResponse{Input: req.Text, Normalized: spionic.Normalize(req.Text)}, nil
	}
}

func tableEndpoint() kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		return tableResponse{
			Width:    spionic.WidthTable().Rules(),
			Combined: spionic.CombinedTable().Rules(),
			Glyphs:   spionic.GlyphTable().Rules(),
		}, nil
	}
}

func lookupEndpoint(reg *lexicon.Registry) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*lookupReq)
		if req.Term == "" {
			return nil, fmt.Errorf("missing term")
		}
		if err := checkText(req.Term); err != nil {
			return nil, err
		}
		return reg.Lookup(req.Term, req.Opts), nil
	}
}

func listLexiconsEndpoint(reg *lexicon.Registry) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		return lexiconsResponse{Lexicons: reg.List()}, nil
	}
}

// endpoints is the full set of actions, each wrapped with logging.
type endpoints struct {
	convert      kit.Endpoint
	normalize    kit.Endpoint
	table        kit.Endpoint
	lookup       kit.Endpoint
	listLexicons kit.Endpoint
}

func newEndpoints(opts Options) *endpoints {
	mw := func(name string) kit.Middleware {
		return kit.Chain(kit.Logging(opts.logger(), name), kit.Recover())
	}
	return &endpoints{
		convert:      mw("convert")(convertEndpoint(newConverters(opts.Form))),
		normalize:    mw("normalize")(normalizeEndpoint()),
		table:        mw("table")(tableEndpoint()),
		lookup:       mw("lookup")(lookupEndpoint(opts.Registry)),
		listLexicons: mw("list_lexicons")(listLexiconsEndpoint(opts.Registry)),
	}
}
