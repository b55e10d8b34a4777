package ui

import (
	"net/http"

	"fluxgear/domain/core"
	apperrors "fluxgear/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleRunSweep runs the full gear sweep against a fresh model and returns
// the persisted record.
func (s *Server) handleRunSweep(c *gin.Context) {
	record, err := s.sweep.Run(c.Request.Context(), s.models(), s.gears)
	if err != nil {
		status := http.StatusInternalServerError
		switch apperrors.GetCode(err) {
		case apperrors.CodeInvalidGear:
			status = http.StatusBadRequest
		case apperrors.CodeZeroBaseline:
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error(), "code": apperrors.GetCode(err)})
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *Server) handleLatestSweep(c *gin.Context) {
	record, err := s.repo.LatestSweep(c.Request.Context())
	if err != nil {
		if core.IsNotFoundError(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no sweeps recorded yet"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, record)
}

// handleReport renders the latest sweep's markdown summary as HTML.
func (s *Server) handleReport(c *gin.Context) {
	record, err := s.repo.LatestSweep(c.Request.Context())
	if err != nil {
		if core.IsNotFoundError(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no sweeps recorded yet"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	metrics, err := s.agg.Summarize(record.Results)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	md := s.md.Render(*record, metrics)
	html := markdown.ToHTML([]byte(md), nil, nil)
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}
