package bootstrap

import (
	"fmt"
	"net/http"

	httpapi "github.com/GoSim-25-26J-441/rps-camera/internal/api/http"
	"github.com/GoSim-25-26J-441/rps-camera/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/rps-camera/internal/web"

	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	Templates      *web.Templates
	StaticDir      string
	AllowedOrigins []string
	Verbose        bool
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger(), recovery(dep.Verbose))

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.CORS(dep.AllowedOrigins))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Templates)
	healthHandler.RegisterRoutes(r)

	pages := web.NewPageHandler(dep.Templates, dep.StaticDir, dep.Verbose)
	pages.RegisterRoutes(r)

	return r
}

// recovery turns panics into 500s. verbose puts the panic value in the body,
// the same way handled render errors are reported.
func recovery(verbose bool) gin.HandlerFunc {
	if !verbose {
		return gin.Recovery()
	}
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		msg := fmt.Sprintf("%s: %v", http.StatusText(http.StatusInternalServerError), recovered)
		c.String(http.StatusInternalServerError, msg)
		c.Abort()
	})
}
