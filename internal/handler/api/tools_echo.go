package api

import (
	"errors"
	"net/http"

	"StockMCP/internal/handler/tools"
	xhttp "StockMCP/pkg/http"
	xlogger "StockMCP/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/mark3labs/mcp-go/mcp"
)

// ToolDescriptor is the REST view of a published tool.
type ToolDescriptor struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	InputSchema mcp.ToolInputSchema `json:"inputSchema"`
}

// ToolsEchoHandler mirrors the MCP tools over plain JSON HTTP.
type ToolsEchoHandler struct {
	logger   *xlogger.Logger
	registry *tools.Registry
}

func NewToolsEchoHandler(logger *xlogger.Logger, registry *tools.Registry) *ToolsEchoHandler {
	return &ToolsEchoHandler{logger: logger, registry: registry}
}

func (h *ToolsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/tools", h.List)
	g.POST("/tools/:name", h.Call)
}

func (h *ToolsEchoHandler) List(c echo.Context) error {
	defs := h.registry.Tools()
	out := make([]ToolDescriptor, 0, len(defs))
	for _, t := range defs {
		out = append(out, ToolDescriptor{
			Name:        t.Definition.Name,
			Description: t.Definition.Description,
			InputSchema: t.Definition.InputSchema,
		})
	}
	return xhttp.SuccessResponse(c, out)
}

// Call runs one tool. Upstream failures are still 200: the envelope carries
// isError, exactly as an MCP client would see it.
func (h *ToolsEchoHandler) Call(c echo.Context) error {
	name := c.Param("name")

	args, err := xhttp.ReadArguments(c)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}

	res, err := h.registry.Call(c.Request().Context(), name, args)
	if err != nil {
		if errors.Is(err, tools.ErrUnknownTool) {
			return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("tool %s not found", name))
		}
		if verrs, ok := xhttp.ValidationErrors(err); ok {
			return xhttp.BadRequestResponse(c, verrs)
		}
		h.logger.Error("tool call error", xlogger.String("tool", name), xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}

	return xhttp.SuccessResponse(c, res)
}

// MCPEchoHandler mounts the streamable HTTP transport.
type MCPEchoHandler struct {
	path    string
	handler http.Handler
}

func NewMCPEchoHandler(path string, handler http.Handler) *MCPEchoHandler {
	return &MCPEchoHandler{path: path, handler: handler}
}

func (h *MCPEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.Any(h.path, echo.WrapHandler(h.handler))
}
