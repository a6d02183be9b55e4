package mcpserver

import (
	"context"

	"StockMCP/internal/domain/models"
	"StockMCP/internal/handler/tools"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New builds an MCP server that publishes every tool in reg. Rejected calls
// (bad arguments) surface as protocol errors; everything else, upstream
// failures included, is returned as a tool result.
func New(name, version string, reg *tools.Registry) *server.MCPServer {
	s := server.NewMCPServer(name, version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	defs := reg.Tools()
	serverTools := make([]server.ServerTool, 0, len(defs))
	for _, t := range defs {
		serverTools = append(serverTools, server.ServerTool{
			Tool:    t.Definition,
			Handler: handle(reg, t.Definition.Name),
		})
	}
	s.AddTools(serverTools...)

	return s
}

func handle(reg *tools.Registry, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := reg.Call(ctx, name, req.GetArguments())
		if err != nil {
			return nil, err
		}
		return ToCallToolResult(res), nil
	}
}

// ToCallToolResult converts an envelope to its protocol form.
func ToCallToolResult(res models.ToolResult) *mcp.CallToolResult {
	content := make([]mcp.Content, 0, len(res.Content))
	for _, c := range res.Content {
		content = append(content, mcp.NewTextContent(c.Text))
	}
	return &mcp.CallToolResult{Content: content, IsError: res.IsError}
}
