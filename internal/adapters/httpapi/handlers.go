package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gmackall/flutter-fix-status/internal/core/domain"
	"github.com/gmackall/flutter-fix-status/internal/core/ports"
)

type handlers struct {
	svc    Service
	logger ports.Logger
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handlers) resolve(c *gin.Context) {
	query, ok := requireParam(c, "query")
	if !ok {
		return
	}
	res, err := h.svc.Resolve(c.Request.Context(), query)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *handlers) full(c *gin.Context) {
	query, ok := requireParam(c, "query")
	if !ok {
		return
	}
	report, err := h.svc.Check(c.Request.Context(), query)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *handlers) check(c *gin.Context) {
	commit, ok := requireParam(c, "commit")
	if !ok {
		return
	}
	report, err := h.svc.CheckCommit(c.Request.Context(), commit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func requireParam(c *gin.Context, name string) (string, bool) {
	value := strings.TrimSpace(c.Query(name))
	if value == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Status:    "bad request",
			Error:     fmt.Sprintf("missing %s", name),
			RequestID: c.GetString(requestIDHeader),
		})
		return "", false
	}
	return value, true
}

// fail converts err into the one user-facing answer for the request.
func (h *handlers) fail(c *gin.Context, err error) {
	status, label := classify(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(err)
	} else {
		h.logger.Debug(fmt.Sprintf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err))
	}
	c.JSON(status, ErrorResponse{
		Status:    label,
		Error:     err.Error(),
		RequestID: c.GetString(requestIDHeader),
	})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrEmptyQuery), errors.Is(err, domain.ErrInvalidCommit):
		return http.StatusBadRequest, "bad request"
	case errors.Is(err, domain.ErrNoReleaseData):
		return http.StatusServiceUnavailable, "no data"
	case errors.Is(err, domain.ErrRateLimited), errors.Is(err, domain.ErrUnauthorized):
		return http.StatusTooManyRequests, "rate limited"
	case errors.Is(err, domain.ErrGitHubTransport),
		errors.Is(err, domain.ErrGitHubRequestFailed),
		errors.Is(err, domain.ErrGitHubParseFailed):
		return http.StatusBadGateway, "upstream error"
	default:
		return http.StatusInternalServerError, "error"
	}
}
