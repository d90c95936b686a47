package lsp

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"edn/internal/parser"
)

var log = commonlog.GetLogger("edn.lsp")

// SemanticTokenTypes is the token type legend advertised to clients.
var SemanticTokenTypes = []string{
	"namespace",
	"variable",
	"property",
	"keyword",
	"number",
	"string",
	"comment",
	"operator",
}

// SemanticTokenModifiers is the modifier legend advertised to clients.
var SemanticTokenModifiers = []string{
	"readonly",
	"defaultLibrary",
}

// EDNHandler implements the LSP server handlers for EDN documents
type EDNHandler struct {
	mu   sync.RWMutex
	docs map[protocol.DocumentUri]string
}

// NewEDNHandler creates and returns a new EDNHandler instance
func NewEDNHandler() *EDNHandler {
	return &EDNHandler{
		docs: make(map[protocol.DocumentUri]string),
	}
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *EDNHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("LSP Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindIncremental),
			},
			CompletionProvider: &protocol.CompletionOptions{
				TriggerCharacters: []string{":"},
				ResolveProvider:   ptrBool(false),
			},
			DocumentFormattingProvider: true,
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name: "edn-lsp",
		},
	}, nil
}

// Initialized is called after the client receives the server's capabilities and completes initialization
func (h *EDNHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("EDN LSP Initialized")
	return nil
}

// Shutdown handles the LSP shutdown request
func (h *EDNHandler) Shutdown(ctx *glsp.Context) error {
	log.Info("EDN LSP Shutdown")
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (h *EDNHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// TextDocumentDidOpen handles file open notifications from the editor
func (h *EDNHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Infof("Opened file: %s", uri)

	h.mu.Lock()
	h.docs[uri] = params.TextDocument.Text
	h.mu.Unlock()

	h.publishDiagnostics(ctx, uri, params.TextDocument.Text)
	return nil
}

// TextDocumentDidClose handles file close notifications from the editor
func (h *EDNHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Infof("Closed file: %s", params.TextDocument.URI)

	h.mu.Lock()
	delete(h.docs, params.TextDocument.URI)
	h.mu.Unlock()

	return nil
}

// TextDocumentDidChange applies whole-document and ranged edits in order, then
// re-reads the document.
func (h *EDNHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Debugf("Changed file: %s", uri)

	h.mu.Lock()
	content, ok := h.docs[uri]
	if !ok {
		h.mu.Unlock()
		return fmt.Errorf("document %s is not open", uri)
	}
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			content = c.Text
		case protocol.TextDocumentContentChangeEvent:
			content = applyChange(content, c)
		default:
			log.Warningf("ignoring content change of type %T", change)
		}
	}
	h.docs[uri] = content
	h.mu.Unlock()

	h.publishDiagnostics(ctx, uri, content)
	return nil
}

// TextDocumentCompletion offers the keywords already used in the document
func (h *EDNHandler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	content, err := h.document(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	items := []protocol.CompletionItem{}
	for _, keyword := range documentKeywords(content) {
		items = append(items, protocol.CompletionItem{
			Label: keyword,
			Kind:  ptrCompletionKind(protocol.CompletionItemKindKeyword),
		})
	}

	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        items,
	}, nil
}

// TextDocumentFormatting replaces the document with its canonical text
func (h *EDNHandler) TextDocumentFormatting(ctx *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	content, err := h.document(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	return formatDocument(content), nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the entire document
func (h *EDNHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	log.Debugf("TextDocumentSemanticTokensFull called for: %s", params.TextDocument.URI)

	content, err := h.document(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	return &protocol.SemanticTokens{
		Data: encodeSemanticTokens(collectSemanticTokens(content)),
	}, nil
}

// document returns the editor's copy of an open document, or the file on disk
// for one that was never opened.
func (h *EDNHandler) document(rawURI protocol.DocumentUri) (string, error) {
	h.mu.RLock()
	content, ok := h.docs[rawURI]
	h.mu.RUnlock()
	if ok {
		return content, nil
	}

	path, err := uriToPath(rawURI)
	if err != nil {
		return "", fmt.Errorf("failed to convert URI %s: %w", rawURI, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return string(data), nil
}

func (h *EDNHandler) publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri, content string) {
	_, err := parser.ParseSource("", content)
	sendDiagnosticNotification(ctx, uri, ConvertParseError(err, content))
}

// applyChange splices a ranged edit into content.
func applyChange(content string, change protocol.TextDocumentContentChangeEvent) string {
	index := newLineIndex(content)
	start := index.offset(change.Range.Start)
	end := max(start, index.offset(change.Range.End))
	return content[:start] + change.Text + content[end:]
}

func documentKeywords(content string) []string {
	tokens, err := parser.NewScanner("", content).ScanTokens()
	if err != nil {
		return nil
	}
	seen := make(map[string]bool)
	var keywords []string
	for _, tok := range tokens {
		if tok.Type == parser.KEYWORD && !seen[tok.Lexeme] {
			seen[tok.Lexeme] = true
			keywords = append(keywords, tok.Lexeme)
		}
	}
	sort.Strings(keywords)
	return keywords
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) -> C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	log.Debugf("Sending %d diagnostics for %s", len(diagnostics), uri)

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

func ptrCompletionKind(k protocol.CompletionItemKind) *protocol.CompletionItemKind {
	return &k
}
