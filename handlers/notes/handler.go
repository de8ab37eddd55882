package notes

import (
	"errors"
	"net/http"

	"lead-capture-backend/middleware"
	"lead-capture-backend/models"
	"lead-capture-backend/store"
	"lead-capture-backend/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	store *store.Store
}

func New(s *store.Store) *Handler {
	return &Handler{store: s}
}

// CreateNote ajoute une note commerciale à un lead
// @Summary Add a note to a lead
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lead ID"
// @Param note body models.LeadNoteCreate true "Note"
// @Success 201 {object} utils.Response{data=models.LeadNote}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /api/leads/{id}/notes [post]
func (h *Handler) CreateNote(c *gin.Context) {
	var input models.LeadNoteCreate
	errs, ok := utils.BindAndValidate(c, &input)
	if !ok {
		utils.SendValidationError(c, errs)
		return
	}
	input.Content = utils.StripTags(input.Content)
	if input.Content == "" {
		utils.SendValidationError(c, map[string]string{"content": "content is required"})
		return
	}

	ctx := c.Request.Context()
	leadID := c.Param("id")
	author := middleware.AdminName(c)
	note, err := h.store.AddNote(ctx, leadID, input, author)
	if errors.Is(err, store.ErrNotFound) {
		utils.SendError(c, http.StatusNotFound, "Lead not found")
		return
	}
	if err != nil {
		utils.LogErrorWithLead(leadID, err, "Error adding note")
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	activity := store.NewActivity(leadID, models.ActivityNoteAdded, "Note added: "+note.NoteType,
		gin.H{"noteId": note.ID}, utils.ClientInfo(c))
	activity.CreatedBy = author
	if err := h.store.LogActivity(ctx, activity); err != nil {
		utils.LogErrorWithLead(leadID, err, "Failed to log activity")
	}

	utils.SendSuccess(c, http.StatusCreated, "Note added successfully", note)
}
