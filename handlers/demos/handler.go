package demos

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"lead-capture-backend/middleware"
	"lead-capture-backend/models"
	"lead-capture-backend/store"
	"lead-capture-backend/utils"

	"github.com/gin-gonic/gin"
)

type Notifier interface {
	DemoRequested(ctx context.Context, lead *models.Lead, demo *models.DemoRequest)
}

type DealSyncer interface {
	SyncDeal(ctx context.Context, lead *models.Lead, demo *models.DemoRequest) bool
}

type Handler struct {
	store    *store.Store
	notifier Notifier
	crm      DealSyncer
}

func New(s *store.Store, notifier Notifier, crm DealSyncer) *Handler {
	return &Handler{store: s, notifier: notifier, crm: crm}
}

type CreateDemoResponse struct {
	DemoRequestID string `json:"demoRequestId"`
	CRMSynced     bool   `json:"crmSynced"`
}

// CreateDemoRequest demande de démo pour un lead existant
// @Summary Request a demo
// @Description Records a demo request for the lead, emails a confirmation and opens a CRM deal
// @Tags demos
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param demo body models.DemoRequestCreate true "Demo details"
// @Success 201 {object} utils.Response{data=CreateDemoResponse}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response "Lead not found"
// @Failure 429 {object} utils.Response
// @Router /api/leads/{id}/demo [post]
func (h *Handler) CreateDemoRequest(c *gin.Context) {
	var input models.DemoRequestCreate
	errs, ok := utils.BindAndValidate(c, &input)
	if !ok {
		utils.SendValidationError(c, errs)
		return
	}
	input.SpecialRequirements = utils.StripTagsPtr(input.SpecialRequirements)
	input.SpecificApplications = utils.StripTagsPtr(input.SpecificApplications)

	ctx := c.Request.Context()
	leadID := c.Param("id")
	demo, lead, err := h.store.CreateDemoRequest(ctx, leadID, input)
	if errors.Is(err, store.ErrNotFound) {
		utils.SendError(c, http.StatusNotFound, "Lead not found")
		return
	}
	if err != nil {
		utils.LogErrorWithLead(leadID, err, "Error creating demo request")
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	activity := store.NewActivity(lead.ID, models.ActivityDemoRequested,
		fmt.Sprintf("Demo requested: %s", demo.DemoType), input, utils.ClientInfo(c))
	if err := h.store.LogActivity(ctx, activity); err != nil {
		utils.LogErrorWithLead(lead.ID, err, "Failed to log activity")
	}

	h.notifier.DemoRequested(ctx, lead, demo)
	synced := h.crm.SyncDeal(ctx, lead, demo)

	utils.LogSuccessWithLead(lead.ID, "Demo request created")
	utils.SendSuccess(c, http.StatusCreated, "Demo request created successfully", CreateDemoResponse{
		DemoRequestID: demo.ID,
		CRMSynced:     synced,
	})
}

// UpdateDemoStatus fait avancer une démo (admin)
// @Summary Update demo status
// @Description pending -> scheduled|cancelled, scheduled -> completed|cancelled
// @Tags demos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Demo request ID"
// @Param status body models.DemoStatusUpdate true "New status"
// @Success 200 {object} utils.Response{data=models.DemoRequest}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response "Transition not allowed"
// @Router /api/demos/{id}/status [put]
func (h *Handler) UpdateDemoStatus(c *gin.Context) {
	var input models.DemoStatusUpdate
	errs, ok := utils.BindAndValidate(c, &input)
	if !ok {
		utils.SendValidationError(c, errs)
		return
	}
	input.DemoNotes = utils.StripTagsPtr(input.DemoNotes)

	ctx := c.Request.Context()
	id := c.Param("id")
	demo, prev, err := h.store.UpdateDemoStatus(ctx, id, input)
	switch {
	case errors.Is(err, store.ErrNotFound):
		utils.SendError(c, http.StatusNotFound, "Demo request not found")
		return
	case errors.Is(err, store.ErrInvalidTransition):
		utils.SendError(c, http.StatusConflict, fmt.Sprintf("Cannot move demo from %s to %s", prev, input.Status))
		return
	case err != nil:
		utils.LogError(err, "Error updating demo status")
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	activity := store.NewActivity(demo.LeadID, models.ActivityDemoStatusChanged,
		fmt.Sprintf("Demo status changed from %s to %s", prev, demo.Status),
		gin.H{"demoRequestId": demo.ID, "from": prev, "to": demo.Status}, utils.ClientInfo(c))
	activity.CreatedBy = middleware.AdminName(c)
	if err := h.store.LogActivity(ctx, activity); err != nil {
		utils.LogErrorWithLead(demo.LeadID, err, "Failed to log activity")
	}

	utils.SendSuccess(c, http.StatusOK, "Demo status updated successfully", demo)
}
