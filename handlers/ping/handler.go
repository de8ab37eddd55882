package ping

import (
	"net/http"
	"time"

	"lead-capture-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	db *gorm.DB
}

// New builds the health handler. A nil db skips the database check.
func New(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// HandleHealth gère la logique de l'endpoint de santé
// @Summary Health check
// @Description Reports service status and database reachability
// @Tags health
// @Produce json
// @Success 200 {object} utils.Response
// @Failure 503 {object} utils.Response
// @Router /api/health [get]
func (h *Handler) HandleHealth(c *gin.Context) {
	status := gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			utils.LogError(err, "Database health check failed")
			utils.SendError(c, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
		status["database"] = "ok"
	}

	utils.SendSuccess(c, http.StatusOK, "Service healthy", status)
}
