package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio-site/pkg/middleware"
	"portfolio-site/pkg/models"
	"portfolio-site/pkg/services"
	"portfolio-site/pkg/site"
)

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	intake services.IntakeService
	page   *site.Page
	log    *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(intake services.IntakeService, page *site.Page, log *zap.Logger) *Handlers {
	return &Handlers{
		intake: intake,
		page:   page,
		log:    log,
	}
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Index serves the pre-rendered landing page.
func (h *Handlers) Index(c *gin.Context) {
	etag := h.page.ETag()
	c.Header("ETag", etag)
	c.Header("Cache-Control", "no-cache")

	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", h.page.Bytes())
}

// Intake returns the handler for one intake form.
func (h *Handlers) Intake(form services.Form) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Read the request body
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			h.log.Info("Error reading request body",
				zap.String("form", string(form.Kind)),
				zap.String("request_id", middleware.GetRequestID(c)),
				zap.Error(err),
			)
			c.JSON(http.StatusBadRequest, models.APIResponse{Success: false, Message: form.Malformed})
			return
		}

		sub, err := h.intake.Process(c.Request.Context(), form.Kind, body)
		if err != nil {
			var intakeErr *services.IntakeError
			if errors.As(err, &intakeErr) {
				c.JSON(http.StatusBadRequest, models.APIResponse{Success: false, Message: intakeErr.Message})
				return
			}
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, models.APIResponse{Success: false, Message: form.Malformed})
			return
		}

		c.JSON(http.StatusOK, models.APIResponse{
			Success: true,
			Message: sub.Acknowledgement(),
		})
	}
}
