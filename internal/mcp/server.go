package mcp

// Implementation Plan:
// 1. MCPServer struct wrapping the mcp-go server
// 2. NewMCPServer - registers docuai_parse and docuai_index for one project
// 3. Serve - starts MCP server on stdio with graceful shutdown
// 4. Graceful shutdown on SIGTERM/SIGINT

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/mvp-joe/docuai/internal/indexer"
)

// MCPServer manages the MCP server lifecycle.
type MCPServer struct {
	config *indexer.Config
	mcp    *server.MCPServer
}

// NewMCPServer creates an MCP server exposing extraction over the project
// described by config. A nil config uses indexer defaults for the working directory.
func NewMCPServer(config *indexer.Config, version string) (*MCPServer, error) {
	if config == nil {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		config = indexer.DefaultConfig(wd)
	}

	mcpServer := server.NewMCPServer(
		"docuai-mcp",
		version,
		server.WithToolCapabilities(true),
	)

	AddDocuaiParseTool(mcpServer, indexer.NewParser(), config.RootDir)
	AddDocuaiIndexTool(mcpServer, config)

	return &MCPServer{
		config: config,
		mcp:    mcpServer,
	}, nil
}

// Serve starts the MCP server on stdio and blocks until stdin closes or a
// shutdown signal arrives.
func (s *MCPServer) Serve(ctx context.Context) error {
	return s.serve(ctx, os.Stdin, os.Stdout)
}

func (s *MCPServer) serve(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server on stdio for %s...", s.config.RootDir)
		stdio := server.NewStdioServer(s.mcp)
		if err := stdio.Listen(ctx, in, out); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- fmt.Errorf("MCP server error: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping gracefully...")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
