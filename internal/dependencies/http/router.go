package http

import "github.com/gin-gonic/gin"

// Register registers the dependency routes
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.GetDependencies)
	rg.GET("/components/:name", h.GetComponentDependencies)
	rg.GET("/unknown-hosts", h.GetUnknownHosts)
	rg.GET("/graph", h.GetGraph)
	rg.POST("/refresh", h.Refresh)
	rg.DELETE("/cache", h.InvalidateCache)
}
