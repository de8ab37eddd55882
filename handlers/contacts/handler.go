package contacts

import (
	"context"
	"net/http"

	"lead-capture-backend/models"
	"lead-capture-backend/store"
	"lead-capture-backend/utils"

	"github.com/gin-gonic/gin"
)

type Notifier interface {
	ContactSubmitted(ctx context.Context, form *models.ContactForm)
}

type Handler struct {
	store    *store.Store
	notifier Notifier
}

func New(s *store.Store, notifier Notifier) *Handler {
	return &Handler{store: s, notifier: notifier}
}

// @Summary Submit a contact form
// @Description General inquiry, independent of leads. Sales receive a copy and the sender a confirmation.
// @Tags contacts
// @Accept json
// @Produce json
// @Param contact body models.ContactCreate true "Contact information"
// @Success 201 {object} utils.Response "data: formId"
// @Failure 400 {object} utils.Response "Validation failed"
// @Failure 429 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /api/contact [post]
func (h *Handler) CreateContact(c *gin.Context) {
	var contactInput models.ContactCreate
	errs, ok := utils.BindAndValidate(c, &contactInput)
	if !ok {
		utils.SendValidationError(c, errs)
		return
	}

	if !utils.ValidateEmail(contactInput.Email) {
		utils.SendValidationError(c, map[string]string{"email": "Invalid email format"})
		return
	}

	client := utils.ClientInfo(c)
	form := models.ContactForm{
		Name:      contactInput.Name,
		Email:     models.NormalizeEmail(contactInput.Email),
		Phone:     contactInput.Phone,
		Company:   contactInput.Company,
		Subject:   contactInput.Subject,
		Message:   utils.StripTags(contactInput.Message),
		UserAgent: client.UserAgent,
		IPAddress: client.IPAddress,
		Referrer:  client.Referrer,
	}
	if contactInput.FormType != nil {
		form.FormType = *contactInput.FormType
	}

	ctx := c.Request.Context()
	if err := h.store.CreateContactForm(ctx, &form); err != nil {
		utils.LogError(err, "Error saving contact form")
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.notifier.ContactSubmitted(ctx, &form)

	utils.LogSuccess("Contact form submitted: " + form.ID)
	utils.SendSuccess(c, http.StatusCreated, "Contact request submitted successfully", gin.H{
		"formId": form.ID,
	})
}

// @Summary List contact forms
// @Description Contact forms, newest first
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param per_page query int false "Page size (default 20, max 100)"
// @Param status query string false "new, responded or closed"
// @Success 200 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /api/contacts [get]
func (h *Handler) ListContacts(c *gin.Context) {
	page, okPage := utils.QueryInt(c, "page", 1)
	perPage, okPer := utils.QueryInt(c, "per_page", store.DefaultPerPage)
	if !okPage || !okPer {
		utils.SendValidationError(c, map[string]string{"page": "page and per_page must be integers"})
		return
	}

	forms, info, err := h.store.ListContactForms(c.Request.Context(), c.Query("status"), store.Page{Page: page, PerPage: perPage})
	if err != nil {
		utils.LogError(err, "Error fetching contact forms")
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.SendSuccess(c, http.StatusOK, "Contact forms retrieved successfully", gin.H{
		"forms":      forms,
		"pagination": info,
	})
}
