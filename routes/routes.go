package routes

import (
	"time"

	"lead-capture-backend/crm"
	"lead-capture-backend/handlers/ping"
	"lead-capture-backend/middleware"
	"lead-capture-backend/notifications"
	"lead-capture-backend/store"
	"lead-capture-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Deps is everything the router hands to the handlers.
type Deps struct {
	DB          *gorm.DB
	Store       *store.Store
	Notifier    *notifications.Notifier
	CRM         *crm.Syncer
	Policy      middleware.Policy
	JWTSecret   string
	CORSOrigins []string
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.LoggerWithWriter(utils.LogWriter()), gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(cors.New(corsConfig(d.CORSOrigins)))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.GET("/health", ping.New(d.DB).HandleHealth)

	public := api.Group("")
	if d.Policy != nil {
		public.Use(middleware.RateLimit(d.Policy))
	}
	admin := api.Group("")
	admin.Use(middleware.AdminAuth(d.JWTSecret))

	LeadsRoutes(public, admin, d)
	DemosRoutes(public, admin, d)
	ContactsRoutes(public, admin, d)
	AnalyticsRoutes(admin, d)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
