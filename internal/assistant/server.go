// Package assistant exposes the school catalog to chat assistants as MCP
// tools over streamable HTTP.
package assistant

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/mark3labs/campus/internal/logger"
	"github.com/mark3labs/campus/internal/school"
	"github.com/mark3labs/campus/internal/wizard"
	"github.com/mark3labs/mcp-go/server"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Schools is the catalog surface used by the tools.
type Schools interface {
	Create(ctx context.Context, form school.FormData) (wizard.Result, error)
	Get(ctx context.Context, id string) (school.School, error)
	List(ctx context.Context) ([]school.School, error)
}

// Server is the assistant MCP server.
type Server struct {
	mcpServer  *server.MCPServer
	httpServer *server.StreamableHTTPServer
	schools    Schools
	port       int
	mu         sync.Mutex
}

// New creates a server with all tools registered. It does not listen until
// Start is called.
func New(schools Schools) *Server {
	s := &Server{
		schools: schools,
		mcpServer: server.NewMCPServer(
			"campus-assistant",
			Version,
			server.WithToolCapabilities(true),
		),
	}
	s.registerTools()
	return s
}

// Start serves the MCP endpoint on addr ("host:port"). An empty addr or a
// zero port picks a random free port on localhost. Returns the bound port.
func (s *Server) Start(ctx context.Context, addr string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.httpServer != nil {
		return 0, fmt.Errorf("server already started")
	}

	if addr == "" {
		addr = "127.0.0.1:0"
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return 0, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	tcpAddr := listener.Addr().(*net.TCPAddr)
	s.port = tcpAddr.Port
	bound := tcpAddr.String()
	// The port is released here and rebound by the HTTP server below.
	_ = listener.Close()

	s.httpServer = server.NewStreamableHTTPServer(
		s.mcpServer,
		server.WithStateLess(true),
	)

	httpServer := s.httpServer
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Start(bound)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			s.httpServer = nil
			return 0, fmt.Errorf("failed to start HTTP server: %w", err)
		}
	case <-time.After(100 * time.Millisecond):
	case <-ctx.Done():
		_ = httpServer.Shutdown(context.Background())
		s.httpServer = nil
		return 0, ctx.Err()
	}

	logger.Info("Assistant MCP server listening on %s", bound)
	return s.port, nil
}

// Stop shuts the HTTP server down.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.httpServer == nil {
		return nil
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}
	s.httpServer = nil
	logger.Debug("Assistant MCP server stopped")
	return nil
}

// URL returns the MCP endpoint URL.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("http://localhost:%d/mcp", s.port)
}
