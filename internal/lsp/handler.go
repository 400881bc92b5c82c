package lsp

import (
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

	"github.com/orimarko/sonar-java/internal/ast"
	"github.com/orimarko/sonar-java/internal/checkers"
	"github.com/orimarko/sonar-java/internal/engine"
	"github.com/orimarko/sonar-java/internal/errors"
	"github.com/orimarko/sonar-java/internal/grammar"
	"github.com/orimarko/sonar-java/internal/semantic"
)

// Handler implements the LSP server handlers for the procedure language:
// a mutex-guarded per-document cache behind the Initialize /
// TextDocumentDid* method set, publishing the flow-analyzer and
// symbolic-execution findings as diagnostics.
type Handler struct {
	mu      sync.RWMutex
	content map[string]string
	oracle  *semantic.Oracle
	walker  *engine.Walker
	flow    *semantic.FlowAnalyzer
}

// NewHandler creates and returns a new Handler instance.
func NewHandler() *Handler {
	return &Handler{
		content: make(map[string]string),
		oracle:  semantic.NewOracle(nil),
		walker:  engine.New(),
		flow:    semantic.NewFlowAnalyzer(),
	}
}

// Initialize responds to the LSP client's initialize request and
// advertises the server's capabilities.
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("LSP Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBoolVal(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
		},
	}, nil
}

// Initialized is called after the client receives the server's
// capabilities and completes initialization.
func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("symexec LSP Initialized")
	return nil
}

// Shutdown handles the LSP shutdown request.
func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Println("symexec LSP Shutdown")
	return nil
}

// SetTrace handles the LSP $/setTrace notification. glsp's protocol.Handler
// wires this in whenever a handler defines it; it carries no state here.
func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

// TextDocumentDidOpen handles file open notifications from the editor.
func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Printf("Opened file: %s\n", params.TextDocument.URI)
	return h.analyzeAndPublish(ctx, params.TextDocument.URI)
}

// TextDocumentDidClose handles file close notifications from the editor.
func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Printf("Closed file: %s\n", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.content, path)
	return nil
}

// TextDocumentDidChange handles file change notifications from the editor.
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Printf("Changed file: %s\n", params.TextDocument.URI)
	return h.analyzeAndPublish(ctx, params.TextDocument.URI)
}

// TextDocumentCompletion handles completion requests. This toolchain offers
// no language-aware completions yet, so it always returns an empty list.
func (h *Handler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (interface{}, error) {
	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        []protocol.CompletionItem{},
	}, nil
}

// analyzeAndPublish reads the document at uri, re-parses and re-analyzes
// it (flow analysis plus one Walker.VisitMethod run per function), and
// publishes the resulting findings as diagnostics.
func (h *Handler) analyzeAndPublish(ctx *glsp.Context, uri protocol.DocumentUri) error {
	path, err := uriToPath(uri)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", uri, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	h.mu.Lock()
	h.content[path] = string(content)
	h.mu.Unlock()

	functions, err := grammar.ParseString(path, string(content))
	if err != nil {
		sendDiagnosticNotification(ctx, uri, ConvertParseError(err))
		return nil
	}

	var findings []errors.CompilerError
	for _, fn := range functions {
		findings = append(findings, h.flow.AnalyzeFunction(fn)...)
		findings = append(findings, h.visitMethod(fn)...)
	}

	sendDiagnosticNotification(ctx, uri, ConvertFindings(findings))
	return nil
}

func (h *Handler) visitMethod(fn *ast.Function) []errors.CompilerError {
	dispatcher := checkers.NewDispatcher(
		checkers.NewNullDereferenceChecker(),
		checkers.NewConditionAlwaysTrueOrFalseChecker(),
	)
	findings, err := h.walker.VisitMethod(fn, dispatcher, h.oracle)
	if err != nil && !errors.IsBoundedAbort(err) {
		log.Printf("symexec: %s: %s", fn.Name, err)
	}
	return findings
}

// uriToPath converts a file:// URI to a platform-local file path.
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBoolVal(b bool) *bool { return &b }

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind { return &k }
