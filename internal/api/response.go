package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mesh-intelligence/tiffincrm/internal/logger"
	"github.com/mesh-intelligence/tiffincrm/pkg/types"
)

// requestTimeout bounds the storage work of one request.
const requestTimeout = 10 * time.Second

// internalErrorMessage replaces 5xx messages in production.
const internalErrorMessage = "Internal server error"

// responder renders envelopes and maps errors to status codes.
type responder struct {
	logger     *logger.Logger
	production bool
}

// requestContext derives the storage context for c.
func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

func (r responder) ok(c *gin.Context, status int, data any, message string) {
	body := gin.H{"success": true, "data": data}
	if message != "" {
		body["message"] = message
	}
	c.JSON(status, body)
}

// list renders a collection with its length.
func (r responder) list(c *gin.Context, data any, count int) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data, "count": count})
}

func (r responder) message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// fail renders a client error with msg.
func (r responder) fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": msg})
}

// respondErr maps err to a status and renders it. Unclassified errors are 500s
// and are logged.
func (r responder) respondErr(c *gin.Context, err error) {
	status := statusFor(err)
	msg := types.Message(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		r.logger.Error("request failed",
			"request_id", logger.RequestID(c),
			"path", c.Request.URL.Path,
			"error", err)
		if r.production {
			msg = internalErrorMessage
		}
	}
	r.fail(c, status, msg)
}

// statusFor returns the HTTP status for an error kind.
func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrInvalidData),
		errors.Is(err, types.ErrInvalidStatus),
		errors.Is(err, types.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// pathID parses the positive integer path parameter name. On failure it
// renders a 400 and returns false.
func (r responder) pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		r.fail(c, http.StatusBadRequest, "Invalid "+name+": must be a positive integer")
		return 0, false
	}
	return id, true
}
