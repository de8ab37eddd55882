package routes

import (
	"lead-capture-backend/handlers/analytics"

	"github.com/gin-gonic/gin"
)

func AnalyticsRoutes(admin *gin.RouterGroup, d Deps) {
	admin.GET("/analytics/leads", analytics.New(d.Store).GetLeadAnalytics)
}
