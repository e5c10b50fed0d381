package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quantumspace/research-platform/pkg/research"
)

// writeError is the single translation point from service errors to HTTP
// responses. NotFound maps to 404; everything else from the data layer or
// the relay is an upstream failure and maps to 500. The error text is
// exposed to the caller as-is.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, research.ErrNotFound) {
		status = http.StatusNotFound
	}

	slog.Error("request failed",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", status,
		"error", err)

	c.JSON(status, gin.H{"error": err.Error()})
}
