package leads

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"lead-capture-backend/models"
	"lead-capture-backend/store"
	"lead-capture-backend/utils"

	"github.com/gin-gonic/gin"
)

type Notifier interface {
	LeadSubmitted(ctx context.Context, lead *models.Lead)
}

type CRMSyncer interface {
	Sync(ctx context.Context, lead *models.Lead) bool
}

type Handler struct {
	store    *store.Store
	notifier Notifier
	crm      CRMSyncer
}

func New(s *store.Store, notifier Notifier, crm CRMSyncer) *Handler {
	return &Handler{store: s, notifier: notifier, crm: crm}
}

// CreateLeadResponse is the payload returned after a form submission.
type CreateLeadResponse struct {
	LeadID    string `json:"leadId"`
	LeadScore int    `json:"leadScore"`
	Created   bool   `json:"created"`
	CRMSynced bool   `json:"crmSynced"`
}

// CreateLead capture un lead depuis le formulaire public
// @Summary Submit a lead
// @Description Creates the lead or merges the submission into the lead with the same email, then scores, notifies and syncs it to the CRM
// @Tags leads
// @Accept json
// @Produce json
// @Param lead body models.LeadCreate true "Lead information"
// @Success 201 {object} utils.Response{data=CreateLeadResponse}
// @Failure 400 {object} utils.Response "Validation failed"
// @Failure 429 {object} utils.Response "Rate limit exceeded"
// @Failure 500 {object} utils.Response
// @Router /api/leads [post]
func (h *Handler) CreateLead(c *gin.Context) {
	var input models.LeadCreate
	errs, ok := utils.BindAndValidate(c, &input)
	if !ok {
		utils.SendValidationError(c, errs)
		return
	}
	if errs := checkLeadFields(input.Email, input.Website); len(errs) > 0 {
		utils.SendValidationError(c, errs)
		return
	}
	input.Requirements = utils.StripTagsPtr(input.Requirements)
	input.Challenges = utils.StripTagsPtr(input.Challenges)

	ctx := c.Request.Context()
	lead, created, err := h.store.Upsert(ctx, input)
	if err != nil {
		utils.LogError(err, "Error creating lead")
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	kind, description := models.ActivityLeadResubmitted, fmt.Sprintf("Lead resubmitted: %s from %s", lead.FullName(), lead.Company)
	if created {
		kind, description = models.ActivityLeadCreated, fmt.Sprintf("New lead created: %s from %s", lead.FullName(), lead.Company)
	}
	if err := h.store.LogActivity(ctx, store.NewActivity(lead.ID, kind, description, input, utils.ClientInfo(c))); err != nil {
		utils.LogErrorWithLead(lead.ID, err, "Failed to log activity")
	}

	h.notifier.LeadSubmitted(ctx, lead)
	synced := h.crm.Sync(ctx, lead)

	message := "Lead updated successfully"
	if created {
		message = "Lead created successfully"
	}
	utils.LogSuccessWithLead(lead.ID, message)
	utils.SendSuccess(c, http.StatusCreated, message, CreateLeadResponse{
		LeadID:    lead.ID,
		LeadScore: lead.LeadScore,
		Created:   created,
		CRMSynced: synced,
	})
}

func checkLeadFields(email string, website *string) map[string]string {
	errs := map[string]string{}
	if email != "" && !utils.ValidateEmail(email) {
		errs["email"] = "Invalid email format"
	}
	if website != nil && *website != "" && !utils.IsHTTPURL(*website) {
		errs["website"] = "Website must be an http or https URL"
	}
	return errs
}

// ListLeadsResponse est une page de leads triés par score
type ListLeadsResponse struct {
	Leads      []models.Lead  `json:"leads"`
	Pagination store.PageInfo `json:"pagination"`
}

// ListLeads liste les leads actifs
// @Summary List leads
// @Description Active leads sorted by score then recency
// @Tags leads
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param per_page query int false "Page size (default 20, max 100)"
// @Param status query string false "Lead status"
// @Param industry query string false "Industry"
// @Param company_size query string false "Company size"
// @Param min_score query int false "Minimum lead score"
// @Success 200 {object} utils.Response{data=ListLeadsResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Router /api/leads [get]
func (h *Handler) ListLeads(c *gin.Context) {
	page, okPage := utils.QueryInt(c, "page", 1)
	perPage, okPer := utils.QueryInt(c, "per_page", store.DefaultPerPage)
	if !okPage || !okPer {
		utils.SendValidationError(c, map[string]string{"page": "page and per_page must be integers"})
		return
	}

	filter := store.LeadFilter{
		Status:      c.Query("status"),
		Industry:    c.Query("industry"),
		CompanySize: c.Query("company_size"),
	}
	if _, present := c.GetQuery("min_score"); present {
		minScore, ok := utils.QueryInt(c, "min_score", 0)
		if !ok {
			utils.SendValidationError(c, map[string]string{"min_score": "min_score must be an integer"})
			return
		}
		filter.MinScore = &minScore
	}

	leads, info, err := h.store.List(c.Request.Context(), filter, store.Page{Page: page, PerPage: perPage})
	if err != nil {
		utils.LogError(err, "Error fetching leads")
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.SendSuccess(c, http.StatusOK, "Leads retrieved successfully", ListLeadsResponse{
		Leads:      leads,
		Pagination: info,
	})
}

// GetLead détail d'un lead
// @Summary Get a lead
// @Description Lead with its demo requests, last 10 activities and notes
// @Tags leads
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lead ID"
// @Success 200 {object} utils.Response{data=store.LeadDetail}
// @Failure 404 {object} utils.Response
// @Router /api/leads/{id} [get]
func (h *Handler) GetLead(c *gin.Context) {
	detail, err := h.store.GetDetail(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		utils.SendError(c, http.StatusNotFound, "Lead not found")
		return
	}
	if err != nil {
		utils.LogErrorWithLead(c.Param("id"), err, "Error fetching lead")
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.SendSuccess(c, http.StatusOK, "Lead retrieved successfully", detail)
}

// UpdateLead mise à jour partielle (admin)
// @Summary Update a lead
// @Description Writes only the provided fields, rescores the lead and pushes the change to the CRM
// @Tags leads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lead ID"
// @Param lead body models.LeadUpdate true "Fields to update"
// @Success 200 {object} utils.Response{data=models.Lead}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /api/leads/{id} [put]
func (h *Handler) UpdateLead(c *gin.Context) {
	var input models.LeadUpdate
	errs, ok := utils.BindAndValidate(c, &input)
	if !ok {
		utils.SendValidationError(c, errs)
		return
	}
	if errs := checkLeadFields("", input.Website); len(errs) > 0 {
		utils.SendValidationError(c, errs)
		return
	}
	input.Requirements = utils.StripTagsPtr(input.Requirements)
	input.Challenges = utils.StripTagsPtr(input.Challenges)

	ctx := c.Request.Context()
	id := c.Param("id")
	lead, changed, err := h.store.Update(ctx, id, input)
	if errors.Is(err, store.ErrNotFound) {
		utils.SendError(c, http.StatusNotFound, "Lead not found")
		return
	}
	if err != nil {
		utils.LogErrorWithLead(id, err, "Error updating lead")
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	activity := store.NewActivity(lead.ID, models.ActivityLeadUpdated, "Lead information updated",
		gin.H{"fields": changed}, utils.ClientInfo(c))
	if err := h.store.LogActivity(ctx, activity); err != nil {
		utils.LogErrorWithLead(lead.ID, err, "Failed to log activity")
	}

	h.crm.Sync(ctx, lead)

	utils.SendSuccess(c, http.StatusOK, "Lead updated successfully", lead)
}

// DeleteLead désactive un lead, sans suppression physique
// @Summary Deactivate a lead
// @Tags leads
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lead ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /api/leads/{id} [delete]
func (h *Handler) DeleteLead(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	err := h.store.Deactivate(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		utils.SendError(c, http.StatusNotFound, "Lead not found")
		return
	}
	if err != nil {
		utils.LogErrorWithLead(id, err, "Error deactivating lead")
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := h.store.LogActivity(ctx, store.NewActivity(id, models.ActivityLeadDeactivated, "Lead deactivated", nil, utils.ClientInfo(c))); err != nil {
		utils.LogErrorWithLead(id, err, "Failed to log activity")
	}
	utils.SendSuccess(c, http.StatusOK, "Lead deactivated successfully", gin.H{"leadId": id})
}
