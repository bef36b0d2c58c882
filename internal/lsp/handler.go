package lsp

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/micromingle/kotlin/grammar"
	"github.com/micromingle/kotlin/internal/cfg"
	"github.com/micromingle/kotlin/internal/parser"
	"github.com/micromingle/kotlin/internal/resolve"
)

// Define the set of supported semantic token types (as required by the LSP spec)
var SemanticTokenTypes = []string{
	"namespace",
	"type",
	"function",
	"variable",
	"parameter",
	"property",
	"keyword",
	"number",
	"string",
	"operator",
	"modifier",
}

// Define the set of supported semantic token modifiers (for extra tagging like declaration, readonly, etc.)
var SemanticTokenModifiers = []string{
	"declaration",
	"definition",
	"readonly",
	"static",
	"deprecated",
	"abstract",
}

// document is everything the server keeps per open file.
type document struct {
	content string
	tokens  []parser.Token
	outline *grammar.Outline
}

// KotlinHandler implements the LSP server handlers for the language.
type KotlinHandler struct {
	mu   sync.RWMutex
	docs map[string]*document
}

// NewKotlinHandler creates and returns a new KotlinHandler instance
func NewKotlinHandler() *KotlinHandler {
	return &KotlinHandler{
		docs: make(map[string]*document),
	}
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *KotlinHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("LSP Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true), // notify on open/close events
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			DocumentSymbolProvider: true,
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true), // support full-document semantic token requests
			},
		},
	}, nil
}

// Initialized is called after the client receives the server's capabilities and completes initialization
func (h *KotlinHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("Kotlin LSP Initialized")
	return nil
}

// Shutdown handles the LSP shutdown request
func (h *KotlinHandler) Shutdown(ctx *glsp.Context) error {
	log.Println("Kotlin LSP Shutdown")
	return nil
}

// SetTrace handles the $/setTrace notification
func (h *KotlinHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

// TextDocumentDidOpen handles file open notifications from the editor
func (h *KotlinHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Printf("Opened file: %s\n", params.TextDocument.URI)

	diagnostics, err := h.updateDocument(params.TextDocument.URI, params.TextDocument.Text)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}

	sendDiagnosticNotification(ctx, params.TextDocument.URI, diagnostics)
	return nil
}

// TextDocumentDidClose handles file close notifications from the editor
func (h *KotlinHandler) TextDocumentDidClose(context *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Printf("Closed file: %s\n", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.docs, path)

	return nil
}

// TextDocumentDidChange handles file change notifications from the editor
func (h *KotlinHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Printf("Changed file: %s\n", params.TextDocument.URI)

	// sync is full-document, so the last change carries the whole text
	content := ""
	for _, change := range params.ContentChanges {
		if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			content = whole.Text
		}
	}

	diagnostics, err := h.updateDocument(params.TextDocument.URI, content)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}

	sendDiagnosticNotification(ctx, params.TextDocument.URI, diagnostics)
	return nil
}

// TextDocumentDocumentSymbol serves the outline view from the coarse
// declaration grammar, which stays usable while bodies are mid-edit.
func (h *KotlinHandler) TextDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc, err := h.getOrLoad(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	if doc.outline == nil {
		return []protocol.DocumentSymbol{}, nil
	}
	return convertSymbols(grammar.Symbols(doc.outline)), nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the entire document
func (h *KotlinHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	log.Println("TextDocumentSemanticTokensFull called for:", params.TextDocument.URI)

	doc, err := h.getOrLoad(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	tokens := collectSemanticTokens(doc.tokens)

	var data []uint32
	var prevLine, prevStart uint32

	// Encode tokens into LSP wire format (using delta-line, delta-start compression)
	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		var deltaStart uint32
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		} else {
			deltaStart = token.StartChar
		}

		// Append the encoded semantic token entry
		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))

		prevLine = token.Line
		prevStart = token.StartChar
	}

	return &protocol.SemanticTokens{
		Data: data,
	}, nil
}

func (h *KotlinHandler) getOrLoad(rawURI protocol.DocumentUri) (*document, error) {
	path, err := uriToPath(rawURI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", rawURI, err)
	}

	h.mu.RLock()
	doc, ok := h.docs[path]
	h.mu.RUnlock()
	if ok {
		return doc, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	if _, err := h.updateDocument(rawURI, string(content)); err != nil {
		return nil, err
	}

	h.mu.RLock()
	doc = h.docs[path]
	h.mu.RUnlock()
	return doc, nil
}

// updateDocument runs the whole pipeline over the new content and caches
// what the request handlers need. Diagnostics come out of every stage:
// scanner, parser, and control-flow lowering.
func (h *KotlinHandler) updateDocument(rawURI protocol.DocumentUri, content string) ([]protocol.Diagnostic, error) {
	path, err := uriToPath(rawURI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", rawURI, err)
	}

	doc := &document{content: content}

	scanner := parser.NewScanner(content)
	doc.tokens = scanner.ScanTokens()

	file, parseErrors, scanErrors := parser.ParseSource(path, content)

	diagnostics := ConvertScanErrors(scanErrors)
	diagnostics = append(diagnostics, ConvertParseErrors(parseErrors)...)

	if file != nil {
		trace := resolve.Analyze(file)
		cfg.LowerFile(file, trace)
		diagnostics = append(diagnostics, ConvertFlowDiagnostics(trace.Diagnostics())...)
	}

	// the outline grammar is more forgiving than the full parser; keep
	// whatever it can still make of the file
	if outline, err := grammar.ParseSource(path, content); err == nil {
		doc.outline = outline
	}

	h.mu.Lock()
	h.docs[path] = doc
	h.mu.Unlock()

	return diagnostics, nil
}

func convertSymbols(symbols []grammar.Symbol) []protocol.DocumentSymbol {
	out := make([]protocol.DocumentSymbol, 0, len(symbols))
	for _, s := range symbols {
		pos := protocol.Position{
			Line:      uint32(s.Line - 1),
			Character: uint32(s.Column - 1),
		}
		end := protocol.Position{
			Line:      pos.Line,
			Character: pos.Character + uint32(len(s.Name)),
		}
		out = append(out, protocol.DocumentSymbol{
			Name:           s.Name,
			Kind:           symbolKind(s.Kind),
			Range:          protocol.Range{Start: pos, End: end},
			SelectionRange: protocol.Range{Start: pos, End: end},
			Children:       convertSymbols(s.Children),
		})
	}
	return out
}

func symbolKind(kind grammar.SymbolKind) protocol.SymbolKind {
	switch kind {
	case grammar.PropertySymbol:
		return protocol.SymbolKindProperty
	case grammar.ObjectSymbol:
		return protocol.SymbolKindObject
	case grammar.InitializerSymbol:
		return protocol.SymbolKindConstructor
	default:
		return protocol.SymbolKindFunction
	}
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) → C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	// Normalize to platform-specific separators
	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	if diagnostics == nil {
		// still publish, so stale diagnostics clear in the editor
		diagnostics = []protocol.Diagnostic{}
	}

	diagnosticsJSON, err := json.MarshalIndent(diagnostics, "", "  ")
	if err != nil {
		fmt.Println("Failed to marshal diagnostics:", err)
		return
	}

	log.Println("Sending diagnostics:", string(diagnosticsJSON))

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
