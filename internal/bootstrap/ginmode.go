package bootstrap

import "github.com/gin-gonic/gin"

func SetGinMode(production bool) {
	if production {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
}
