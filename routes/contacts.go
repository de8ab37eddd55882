package routes

import (
	"lead-capture-backend/handlers/contacts"

	"github.com/gin-gonic/gin"
)

func ContactsRoutes(public, admin *gin.RouterGroup, d Deps) {
	h := contacts.New(d.Store, d.Notifier)
	public.POST("/contact", h.CreateContact)
	admin.GET("/contacts", h.ListContacts)
}
