package preferences

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	group := protected.Group("/preferences")
	{
		group.GET("", h.Get)
		group.PUT("", h.Save)
	}
}
