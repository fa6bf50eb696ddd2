package api

import (
	"github.com/hazyhaar/spionic/pkg/kit"
	"github.com/hazyhaar/spionic/pkg/lexicon"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterMCPTools registers the converter and lexicon tools on the server.
func RegisterMCPTools(srv *server.MCPServer, opts Options) {
	if opts.Registry == nil {
		opts.Registry = lexicon.NewRegistry("")
	}
	ep := newEndpoints(opts)
	registerConvert(srv, ep)
	registerNormalize(srv, ep)
	registerLookup(srv, ep)
	registerListLexicons(srv, ep)
}

func registerConvert(srv *server.MCPServer, ep *endpoints) {
	tool := mcp.NewTool("convert_spionic",
		mcp.WithDescription("Convert SPIonic (ASCII polytonic Greek, e.g. \"lo/goj\") to Unicode Greek (\"λόγος\")."),
		mcp.WithString("text", mcp.Required(), mcp.Description("SPIonic text to convert")),
		mcp.WithString("form", mcp.Description("Unicode normalization of the output"), mcp.Enum("nfc", "nfd", "none")),
	)

	kit.RegisterMCPTool(srv, tool, ep.convert, func(req mcp.CallToolRequest) (any, error) {
		args := req.GetArguments()
		text, _ := args["text"].(string)
		form, _ := args["form"].(string)
		return &convertReq{Text: text, Form: form}, nil
	})
}

func registerNormalize(srv *server.MCPServer, ep *endpoints) {
	tool := mcp.NewTool("normalize_spionic",
		mcp.WithDescription("Rewrite SPIonic text to its canonical ASCII form: narrow diacritic symbols, combined breathing/accent markers."),
		mcp.WithString("text", mcp.Required(), mcp.Description("SPIonic text to normalize")),
	)

	kit.RegisterMCPTool(srv, tool, ep.normalize, func(req mcp.CallToolRequest) (any, error) {
		text, _ := req.GetArguments()["text"].(string)
		return &normalizeReq{Text: text}, nil
	})
}

func registerLookup(srv *server.MCPServer, ep *endpoints) {
	tool := mcp.NewTool("lookup_word",
		mcp.WithDescription("Look up a Greek word, given in SPIonic or Unicode, in the loaded lexicons. Matching ignores case and diacritics."),
		mcp.WithString("term", mcp.Required(), mcp.Description("The word to look up")),
		mcp.WithString("lexicons", mcp.Description("Comma-separated lexicon filter (e.g. attic,koine)")),
		mcp.WithString("languages", mcp.Description("Comma-separated language filter (e.g. grc)")),
	)

	kit.RegisterMCPTool(srv, tool, ep.lookup, func(req mcp.CallToolRequest) (any, error) {
		args := req.GetArguments()
		term, _ := args["term"].(string)
		opts := &lexicon.LookupOptions{}
		if v, _ := args["lexicons"].(string); v != "" {
			opts.Lexicons = splitList(v)
		}
		if v, _ := args["languages"].(string); v != "" {
			opts.Languages = splitList(v)
		}
		return &lookupReq{Term: term, Opts: opts}, nil
	})
}

func registerListLexicons(srv *server.MCPServer, ep *endpoints) {
	tool := mcp.NewTool("list_lexicons",
		mcp.WithDescription("List all loaded lexicons with metadata (language, entry count, source, license)."),
	)

	kit.RegisterMCPTool(srv, tool, ep.listLexicons, func(_ mcp.CallToolRequest) (any, error) {
		return nil, nil
	})
}
