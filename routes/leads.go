package routes

import (
	"lead-capture-backend/handlers/leads"
	"lead-capture-backend/handlers/notes"

	"github.com/gin-gonic/gin"
)

func LeadsRoutes(public, admin *gin.RouterGroup, d Deps) {
	h := leads.New(d.Store, d.Notifier, d.CRM)

	// Formulaire public
	public.POST("/leads", h.CreateLead)

	// Back-office
	admin.GET("/leads", h.ListLeads)
	admin.GET("/leads/:id", h.GetLead)
	admin.PUT("/leads/:id", h.UpdateLead)
	admin.DELETE("/leads/:id", h.DeleteLead)
	admin.POST("/leads/:id/notes", notes.New(d.Store).CreateNote)
}
