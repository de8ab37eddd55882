package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeadNote struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	LeadID    string    `json:"leadId" gorm:"type:varchar(36);not null;index"`
	NoteType  string    `json:"noteType" gorm:"size:50;not null"`
	Subject   *string   `json:"subject,omitempty" gorm:"size:255"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy" gorm:"size:100;not null"`
}

func (LeadNote) TableName() string {
	return "lead_notes"
}

func (n *LeadNote) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.NoteType == "" {
		n.NoteType = "general"
	}
	if n.CreatedBy == "" {
		n.CreatedBy = "admin"
	}
	return nil
}

// LeadNoteCreate modèle pour ajouter une note commerciale
// @Description note added by the sales team
type LeadNoteCreate struct {
	NoteType string  `json:"noteType" binding:"omitempty,oneof=general call meeting email" example:"call"`
	Subject  *string `json:"subject" binding:"omitempty,max=255" example:"Discovery call"`
	Content  string  `json:"content" binding:"required" example:"Interested in a substation inspection pilot."`
}
