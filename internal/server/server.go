// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package server adapts the command tree onto a Model Context Protocol
// server: every visible command becomes one MCP tool whose input schema is
// generated from the command's declared options.
package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/azure/azmcp/pkg/command"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Supported transports.
const (
	TransportStdio          = "stdio"
	TransportSSE            = "sse"
	TransportStreamableHTTP = "streamable-http"
)

// Server hosts the command tree over MCP.
type Server struct {
	factory *command.Factory
	logger  *log.Logger
	mcp     *server.MCPServer
}

// New builds an MCP server exposing every visible command as a tool.
func New(factory *command.Factory, logger *log.Logger, version string) *Server {
	s := &Server{
		factory: factory,
		logger:  logger,
	}

	mcpServer := server.NewMCPServer(
		"Azure MCP Server", version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	for _, named := range factory.VisibleCommands() {
		mcpServer.AddTool(toTool(named), s.handler(named))
	}

	s.mcp = mcpServer
	return s
}

// Serve runs the server on the requested transport until it stops or the
// context is canceled.
func (s *Server) Serve(ctx context.Context, transport string, address string) error {
	switch transport {
	case TransportStdio, "":
		s.logger.Info("starting MCP server", "transport", TransportStdio)
		return server.ServeStdio(s.mcp)
	case TransportSSE:
		s.logger.Info("starting MCP server", "transport", TransportSSE, "address", address)
		return server.NewSSEServer(s.mcp).Start(address)
	case TransportStreamableHTTP:
		s.logger.Info("starting MCP server", "transport", TransportStreamableHTTP, "address", address)
		return server.NewStreamableHTTPServer(s.mcp).Start(address)
	default:
		return fmt.Errorf("unsupported transport %q: must be %q, %q or %q",
			transport, TransportStdio, TransportSSE, TransportStreamableHTTP)
	}
}

func toTool(named command.NamedCommand) mcp.Tool {
	cmd := named.Command
	meta := cmd.Metadata()

	toolOpts := []mcp.ToolOption{
		mcp.WithDescription(cmd.Description()),
		mcp.WithTitleAnnotation(cmd.Title()),
		mcp.WithReadOnlyHintAnnotation(meta.ReadOnly),
		mcp.WithDestructiveHintAnnotation(meta.Destructive),
		mcp.WithIdempotentHintAnnotation(meta.Idempotent),
		mcp.WithOpenWorldHintAnnotation(meta.OpenWorld),
	}

	for _, opt := range cmd.Options() {
		toolOpts = append(toolOpts, toToolOption(opt))
	}

	return mcp.NewTool(command.ToolName(named.Path), toolOpts...)
}

func toToolOption(opt *command.Option) mcp.ToolOption {
	var propOpts []mcp.PropertyOption
	propOpts = append(propOpts, mcp.Description(opt.Description))
	if opt.Required {
		propOpts = append(propOpts, mcp.Required())
	}

	switch opt.Kind {
	case command.KindInt:
		return mcp.WithNumber(opt.Name, propOpts...)
	case command.KindBool:
		return mcp.WithBoolean(opt.Name, propOpts...)
	case command.KindStringSlice:
		propOpts = append(propOpts, mcp.Items(map[string]any{"type": "string"}))
		return mcp.WithArray(opt.Name, propOpts...)
	default:
		return mcp.WithString(opt.Name, propOpts...)
	}
}

func (s *Server) handler(named command.NamedCommand) server.ToolHandlerFunc {
	cmd := named.Command
	name := command.ToolName(named.Path)

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		requestID := uuid.NewString()
		logger := s.logger.With("tool", name, "requestId", requestID)

		parse := command.ParseArguments(cmd.Options(), request.GetArguments())
		resp := cmd.Execute(ctx, parse)

		payload, err := json.Marshal(resp)
		if err != nil {
			logger.Error("serializing response failed", "error", err)
			return mcp.NewToolResultError(fmt.Sprintf("failed to serialize response: %v", err)), nil
		}

		if !resp.Succeeded() {
			logger.Warn("tool call failed", "status", resp.Status)
			return mcp.NewToolResultError(string(payload)), nil
		}

		logger.Debug("tool call succeeded", "status", resp.Status)
		return mcp.NewToolResultText(string(payload)), nil
	}
}
