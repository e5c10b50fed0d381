package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quantumspace/research-platform/pkg/research"
)

// ResearchStore is the slice of the research store the HTTP layer needs.
type ResearchStore interface {
	List(ctx context.Context) ([]research.Record, error)
	Add(ctx context.Context, req research.CreateRecordRequest) (*research.Record, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*research.Stats, error)
}

// ChatRelay forwards a single user message to the hosted LLM.
type ChatRelay interface {
	Ask(ctx context.Context, message string) (string, error)
}

type Handler struct {
	Store ResearchStore
	Relay ChatRelay
}

func NewHandler(store ResearchStore, relay ChatRelay) *Handler {
	return &Handler{Store: store, Relay: relay}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.root)
	r.GET("/health", h.health)
	r.POST("/mcp", h.MCPHandler)
	api := r.Group("/api")
	{
		api.POST("/chat", h.chat)

		api.GET("/research", h.listResearch)
		api.POST("/research", h.addResearch)
		api.DELETE("/research/:id", h.deleteResearch)
		api.GET("/research/categories", h.categories)
		api.GET("/research/stats", h.stats)
	}
}

func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "QuantumSpace Research Platform API",
		"status":  "operational",
	})
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}

func (h *Handler) chat(c *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.Relay.Ask(c.Request.Context(), req.Message)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": reply})
}

func (h *Handler) listResearch(c *gin.Context) {
	records, err := h.Store.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	// Return empty list instead of null
	if records == nil {
		records = []research.Record{}
	}
	c.JSON(http.StatusOK, records)
}

func (h *Handler) addResearch(c *gin.Context) {
	var req research.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.Store.Add(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rec)
}

func (h *Handler) deleteResearch(c *gin.Context) {
	id := c.Param("id")

	if err := h.Store.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Research item deleted successfully",
		"id":      id,
	})
}

func (h *Handler) categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": research.Categories()})
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.Store.Stats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
