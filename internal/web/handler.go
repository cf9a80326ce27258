package web

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	indexTemplate   = "index.html"
	htmlContentType = "text/html; charset=utf-8"
	indexAllow      = "GET, HEAD, OPTIONS"
)

type PageHandler struct {
	templates *Templates
	staticDir string
	verbose   bool
}

// NewPageHandler serves the game page. verbose puts render errors in 500
// response bodies.
func NewPageHandler(t *Templates, staticDir string, verbose bool) *PageHandler {
	return &PageHandler{templates: t, staticDir: staticDir, verbose: verbose}
}

func (h *PageHandler) Index(c *gin.Context) {
	body, err := h.templates.Render(indexTemplate, nil)
	if err != nil {
		log.Printf("[error] request_id=%s operation=render_index error=%v", c.GetString("request_id"), err)
		_ = c.Error(err)

		msg := http.StatusText(http.StatusInternalServerError)
		if h.verbose {
			msg += ": " + err.Error()
		}
		c.String(http.StatusInternalServerError, msg)
		return
	}

	if c.Request.Method == http.MethodHead {
		c.Header("Content-Type", htmlContentType)
		c.Header("Content-Length", strconv.Itoa(len(body)))
		c.Status(http.StatusOK)
		return
	}

	c.Data(http.StatusOK, htmlContentType, body)
}

// Options answers a plain OPTIONS request with the allowed methods. CORS
// preflights are answered by the CORS middleware before reaching here.
func (h *PageHandler) Options(c *gin.Context) {
	c.Header("Allow", indexAllow)
	c.Status(http.StatusOK)
}

func (h *PageHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.Index)
	r.HEAD("/", h.Index)
	r.OPTIONS("/", h.Options)
	if h.staticDir != "" {
		r.Static("/static", h.staticDir)
	}
}
