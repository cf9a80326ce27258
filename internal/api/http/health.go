package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Templates string    `json:"templates,omitempty"`
}

// TemplateState is satisfied by *web.Templates.
type TemplateState interface {
	Loaded() bool
}

type HealthHandler struct {
	serviceName string
	version     string
	templates   TemplateState
}

func NewHealthHandler(serviceName, version string, templates TemplateState) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		templates:   templates,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	tplStatus := ""
	if h.templates != nil {
		if h.templates.Loaded() {
			tplStatus = "loaded"
		} else {
			tplStatus = "unavailable"
		}
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		Templates: tplStatus,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
