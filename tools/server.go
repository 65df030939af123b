// Package tools exposes Jenkins operations as MCP tools.
package tools

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/s0up4200/jenkins-mcp/diagnose"
	"github.com/s0up4200/jenkins-mcp/filter"
	"github.com/s0up4200/jenkins-mcp/jenkins"
)

// ErrUnknownTool is returned by Call for names that were never registered
var ErrUnknownTool = errors.New("unknown tool")

// Options tunes tool registration and output
type Options struct {
	// ShowErrorDetails appends the underlying error to formatted failures
	ShowErrorDetails bool
	// Descriptions holds extra text appended to a tool's description,
	// keyed by tool name
	Descriptions map[string]string
	// FilterCacheSize bounds the number of compiled filter expressions kept.
	// Zero disables caching.
	FilterCacheSize int
}

// Server wraps the MCP server with the Jenkins tool set
type Server struct {
	mcpServer *server.MCPServer
	client    *jenkins.Client
	logger    zerolog.Logger
	opts      Options
	filters   filter.Compiler
	tools     []mcp.Tool
	handlers  map[string]server.ToolHandlerFunc
}

// NewServer creates an MCP server with every Jenkins tool registered.
// A nil client is only valid for inspecting tool definitions.
func NewServer(name, version string, client *jenkins.Client, logger zerolog.Logger, opts Options) *Server {
	s := &Server{
		client:   client,
		logger:   logger,
		opts:     opts,
		handlers: make(map[string]server.ToolHandlerFunc),
		filters: filter.NewExprCompiler(
			filter.WithCache(opts.FilterCacheSize),
			filter.WithCustomFunctions(filterFunctions),
		),
	}

	s.mcpServer = server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.registerTools()

	return s
}

// Catalog returns the tool definitions without connecting to Jenkins
func Catalog(opts Options) []mcp.Tool {
	return NewServer("", "", nil, zerolog.Nop(), opts).Tools()
}

// MCPServer returns the underlying protocol server
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// Tools returns the registered tool definitions in registration order
func (s *Server) Tools() []mcp.Tool {
	return append([]mcp.Tool(nil), s.tools...)
}

// Call invokes a registered tool in-process, bypassing the transport
func (s *Server) Call(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	handler, ok := s.handlers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	var request mcp.CallToolRequest
	request.Params.Name = name
	request.Params.Arguments = args
	return handler(ctx, request)
}

// ServeStdio serves MCP over stdin/stdout until the client disconnects
func (s *Server) ServeStdio() error {
	errLogger := log.New(s.logger, "", 0)
	return server.ServeStdio(s.mcpServer, server.WithErrorLogger(errLogger))
}

// ServeSSE serves MCP over server-sent events on addr until ctx is done
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	sse := server.NewSSEServer(s.mcpServer)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("address", addr).Msg("Serving MCP over SSE")
		errCh <- sse.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return sse.Shutdown(shutdownCtx)
	}
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.registerSanityCheck()
	s.registerSearchJobs()
	s.registerListBuilds(ToolListBuilds)
	s.registerListBuilds(ToolListJobs)
	s.registerBuildWithParameters()
	s.registerGetJobInfo()
	s.registerGetJobLogs()
	s.registerFetchFromJenkins()
	s.registerInvokeRequest()
}

// toolHandler is the type for MCP tool handlers
type toolHandler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// addTool registers a tool with call logging
func (s *Server) addTool(tool mcp.Tool, handler toolHandler) {
	wrapped := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		callID := uuid.NewString()
		start := time.Now()

		logger := s.logger.With().Str("tool", tool.Name).Str("call_id", callID).Logger()
		logger.Debug().Msg("Tool call started")

		result, err := handler(logger.WithContext(ctx), request)

		logger.Debug().
			Dur("duration", time.Since(start)).
			Bool("is_error", result != nil && result.IsError).
			Msg("Tool call finished")

		return result, err
	}

	s.tools = append(s.tools, tool)
	s.handlers[tool.Name] = wrapped
	s.mcpServer.AddTool(tool, wrapped)
}

// describe joins the base description with any configured extra text
func (s *Server) describe(name string) string {
	base := baseDescriptions[name]
	if extra := s.opts.Descriptions[name]; extra != "" {
		return base + "\n\n" + extra
	}
	return base
}

// failure classifies err, lets the caller add hints, and renders the result.
// Failures are reported in the tool result and never returned as errors.
func (s *Server) failure(ctx context.Context, err error, hint func(d *diagnose.Diagnosis)) *mcp.CallToolResult {
	d := diagnose.Classify(err)
	if hint != nil {
		hint(d)
	}

	zerolog.Ctx(ctx).Warn().
		Err(err).
		Str("kind", string(d.Kind)).
		Msg("Jenkins request failed")

	return mcp.NewToolResultError(d.Format(s.opts.ShowErrorDetails))
}

// invalidArgs reports a bad tool argument as an INVALID_PARAMS failure
// led by the argument error itself
func (s *Server) invalidArgs(ctx context.Context, err error) *mcp.CallToolResult {
	return s.failure(ctx, diagnose.New(diagnose.KindInvalidParams, err), func(d *diagnose.Diagnosis) {
		d.Prepend(err.Error())
	})
}

// notJSON points at the usual cause of a non-JSON body on a JSON endpoint
func notJSON(d *diagnose.Diagnosis) {
	if errors.Is(d.Cause, jenkins.ErrNotJSON) {
		d.Prepend("Jenkins returned a non-JSON page; check that JENKINS_URL points at Jenkins and not at a login page or proxy")
	}
}
