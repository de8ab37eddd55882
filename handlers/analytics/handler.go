package analytics

import (
	"net/http"

	"lead-capture-backend/store"
	"lead-capture-backend/utils"

	"github.com/gin-gonic/gin"
)

const (
	defaultDays = 30
	maxDays     = 3650
)

type Handler struct {
	store *store.Store
}

func New(s *store.Store) *Handler {
	return &Handler{store: s}
}

// GetLeadAnalytics statistiques du pipeline
// @Summary Lead analytics
// @Description Totals and distributions over active leads. days bounds the new-lead window.
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param days query int false "Window in days (default 30)"
// @Success 200 {object} utils.Response{data=store.LeadAnalytics}
// @Failure 400 {object} utils.Response
// @Router /api/analytics/leads [get]
func (h *Handler) GetLeadAnalytics(c *gin.Context) {
	days, ok := utils.QueryInt(c, "days", defaultDays)
	if !ok || days < 1 || days > maxDays {
		utils.SendValidationError(c, map[string]string{"days": "days must be an integer between 1 and 3650"})
		return
	}

	stats, err := h.store.Analytics(c.Request.Context(), days)
	if err != nil {
		utils.LogError(err, "Error computing lead analytics")
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "Analytics retrieved successfully", stats)
}
