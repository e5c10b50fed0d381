package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/quantumspace/research-platform/pkg/research"
)

// MCPSession represents an MCP session
type MCPSession struct {
	ID      string
	Created int64
}

var (
	mcpSessions = make(map[string]*MCPSession)
	sessionMu   sync.RWMutex
)

// MCPRequest represents an MCP JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an MCP JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents an MCP error
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// MCPHandler handles MCP protocol requests, exposing the research store
// to agent clients as tools.
func (h *Handler) MCPHandler(c *gin.Context) {
	sessionID := c.GetHeader("Mcp-Session-Id")

	var req MCPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, MCPResponse{
			JSONRPC: "2.0",
			ID:      nil,
			Error: &MCPError{
				Code:    -32700,
				Message: "Parse error",
			},
		})
		return
	}

	// Handle initialize request
	if req.Method == "initialize" {
		if sessionID == "" {
			sessionID = uuid.New().String()
			c.Header("Mcp-Session-Id", sessionID)

			sessionMu.Lock()
			mcpSessions[sessionID] = &MCPSession{
				ID:      sessionID,
				Created: time.Now().Unix(),
			}
			sessionMu.Unlock()
		}

		c.JSON(http.StatusOK, MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result: map[string]interface{}{
				"protocolVersion": "2024-11-05",
				"serverInfo": map[string]interface{}{
					"name":    "quantumspace-mcp",
					"version": "1.0.0",
				},
				"capabilities": map[string]interface{}{
					"tools": map[string]interface{}{},
				},
			},
		})
		return
	}

	// Validate session for other requests
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32000,
				Message: "Bad Request: No valid session ID provided",
			},
		})
		return
	}

	sessionMu.RLock()
	_, exists := mcpSessions[sessionID]
	sessionMu.RUnlock()

	if !exists {
		c.JSON(http.StatusBadRequest, MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32000,
				Message: "Invalid session ID",
			},
		})
		return
	}

	switch req.Method {
	case "tools/list":
		h.handleToolsList(c, req)
	case "tools/call":
		h.handleToolsCall(c, req)
	case "ping":
		c.JSON(http.StatusOK, MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		})
	default:
		c.JSON(http.StatusOK, MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: "Method not found",
			},
		})
	}
}

func (h *Handler) handleToolsList(c *gin.Context, req MCPRequest) {
	c.JSON(http.StatusOK, MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": []map[string]interface{}{
				{
					"name":        "list_research",
					"description": "List all stored research items.",
					"inputSchema": map[string]interface{}{
						"type":       "object",
						"properties": map[string]interface{}{},
					},
				},
				{
					"name":        "add_research",
					"description": "Add a new research item to the store.",
					"inputSchema": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"title": map[string]interface{}{
								"type":        "string",
								"description": "Title of the research item.",
							},
							"category": map[string]interface{}{
								"type":        "string",
								"description": "Category id, conventionally one of space, quantum, ai, database.",
							},
							"description": map[string]interface{}{
								"type":        "string",
								"description": "What the research is about.",
							},
							"findings": map[string]interface{}{
								"type":        "string",
								"description": "Key findings of the research.",
							},
						},
						"required": []string{"title", "category", "description", "findings"},
					},
				},
				{
					"name":        "research_stats",
					"description": "Get the total research item count and per-category counts.",
					"inputSchema": map[string]interface{}{
						"type":       "object",
						"properties": map[string]interface{}{},
					},
				},
			},
		},
	})
}

func (h *Handler) handleToolsCall(c *gin.Context, req MCPRequest) {
	var params struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}

	if err := json.Unmarshal(req.Params, &params); err != nil {
		c.JSON(http.StatusOK, MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32602,
				Message: "Invalid params",
			},
		})
		return
	}

	switch params.Name {
	case "list_research":
		records, err := h.Store.List(c.Request.Context())
		if err != nil {
			h.sendError(c, req.ID, -32603, err.Error())
			return
		}
		if records == nil {
			records = []research.Record{}
		}
		h.sendResult(c, req.ID, records)

	case "add_research":
		var args research.CreateRecordRequest
		if err := json.Unmarshal(params.Arguments, &args); err != nil {
			h.sendError(c, req.ID, -32602, "Invalid arguments")
			return
		}
		rec, err := h.Store.Add(c.Request.Context(), args)
		if err != nil {
			h.sendError(c, req.ID, -32603, err.Error())
			return
		}
		h.sendResult(c, req.ID, rec)

	case "research_stats":
		stats, err := h.Store.Stats(c.Request.Context())
		if err != nil {
			h.sendError(c, req.ID, -32603, err.Error())
			return
		}
		h.sendResult(c, req.ID, stats)

	default:
		h.sendError(c, req.ID, -32601, fmt.Sprintf("Tool not found: %s", params.Name))
	}
}

func (h *Handler) sendError(c *gin.Context, id interface{}, code int, msg string) {
	c.JSON(http.StatusOK, MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: msg,
		},
	})
}

func (h *Handler) sendResult(c *gin.Context, id interface{}, result interface{}) {
	textContent, err := json.Marshal(result)
	if err != nil {
		h.sendError(c, id, -32603, fmt.Sprintf("Failed to encode result: %v", err))
		return
	}

	c.JSON(http.StatusOK, MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": string(textContent),
				},
			},
		},
	})
}
