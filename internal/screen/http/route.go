package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the JSON screen API.
func RegisterRoutes(g *gin.RouterGroup, h *ScreenHandler) {
	screensGroup := g.Group("/screens")
	{
		screensGroup.POST("", h.Activate)
		screensGroup.GET("/:id", h.Get)
		screensGroup.PUT("/:id/query", h.Search)
		screensGroup.DELETE("/:id", h.Deactivate)
		screensGroup.GET("/:id/rows/:index/avatar", h.Avatar)
	}
}

// RegisterPageRoutes registers the browser-facing HTML pages.
func RegisterPageRoutes(r gin.IRouter, h *ScreenHandler) {
	r.GET("/", h.Index)
	r.GET("/screens/:id", h.Page)
}
