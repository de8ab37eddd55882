package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DemoType string

const (
	DemoTypeVirtual DemoType = "virtual"
	DemoTypeOnsite  DemoType = "onsite"
	DemoTypePilot   DemoType = "pilot"
)

// DemoStatus suit le cycle de vie d'une demande de démo
type DemoStatus string

const (
	DemoStatusPending   DemoStatus = "pending"
	DemoStatusScheduled DemoStatus = "scheduled"
	DemoStatusCompleted DemoStatus = "completed"
	DemoStatusCancelled DemoStatus = "cancelled"
)

var demoTransitions = map[DemoStatus][]DemoStatus{
	DemoStatusPending:   {DemoStatusScheduled, DemoStatusCancelled},
	DemoStatusScheduled: {DemoStatusCompleted, DemoStatusCancelled},
}

// CanTransition reports whether a demo may move from one status to another.
// completed and cancelled are terminal.
func (s DemoStatus) CanTransition(next DemoStatus) bool {
	for _, allowed := range demoTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// DemoRequest représente une demande de démonstration rattachée à un lead
// @Description demo logistics for a lead
type DemoRequest struct {
	ID                   string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	LeadID               string     `json:"leadId" gorm:"type:varchar(36);not null;index"`
	DemoType             DemoType   `json:"demoType" gorm:"size:50;not null"`
	PreferredDate        *time.Time `json:"preferredDate,omitempty"`
	AttendeesCount       int        `json:"attendeesCount" gorm:"not null"`
	SpecialRequirements  *string    `json:"specialRequirements,omitempty" gorm:"type:text"`
	InterestedProducts   *string    `json:"interestedProducts,omitempty" gorm:"size:255"`
	SpecificApplications *string    `json:"specificApplications,omitempty" gorm:"type:text"`
	Status               DemoStatus `json:"status" gorm:"size:50;not null"`
	ScheduledDate        *time.Time `json:"scheduledDate,omitempty"`
	DemoNotes            *string    `json:"demoNotes,omitempty" gorm:"type:text"`
	Outcome              *string    `json:"outcome,omitempty" gorm:"size:100"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`

	Lead *Lead `json:"-" gorm:"foreignKey:LeadID"`
}

func (DemoRequest) TableName() string {
	return "demo_requests"
}

func (d *DemoRequest) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.Status == "" {
		d.Status = DemoStatusPending
	}
	if d.AttendeesCount == 0 {
		d.AttendeesCount = 1
	}
	return nil
}

// DemoRequestCreate modèle pour demander une démo
// @Description payload for a demo request
type DemoRequestCreate struct {
	DemoType             DemoType   `json:"demoType" binding:"required,oneof=virtual onsite pilot" example:"onsite"`
	PreferredDate        *time.Time `json:"preferredDate" example:"2026-11-02T09:00:00Z"`
	AttendeesCount       *int       `json:"attendeesCount" binding:"omitempty,min=1,max=50" example:"3"`
	SpecialRequirements  *string    `json:"specialRequirements"`
	InterestedProducts   *string    `json:"interestedProducts" binding:"omitempty,max=255" example:"x30,lite3"`
	SpecificApplications *string    `json:"specificApplications"`
}

// DemoStatusUpdate modèle pour faire avancer une démo dans son cycle de vie
// @Description demo lifecycle transition
type DemoStatusUpdate struct {
	Status        DemoStatus `json:"status" binding:"required,oneof=pending scheduled completed cancelled" example:"scheduled"`
	ScheduledDate *time.Time `json:"scheduledDate"`
	DemoNotes     *string    `json:"demoNotes"`
	Outcome       *string    `json:"outcome" binding:"omitempty,oneof=interested not_interested needs_follow_up"`
}
