package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ActivityType string

const (
	ActivityLeadCreated       ActivityType = "lead_created"
	ActivityLeadResubmitted   ActivityType = "lead_resubmitted"
	ActivityLeadUpdated       ActivityType = "lead_updated"
	ActivityLeadDeactivated   ActivityType = "lead_deactivated"
	ActivityDemoRequested     ActivityType = "demo_requested"
	ActivityDemoStatusChanged ActivityType = "demo_status_changed"
	ActivityNoteAdded         ActivityType = "note_added"
	ActivityCRMSynced         ActivityType = "crm_synced"
)

// LeadActivity est une entrée du journal d'audit d'un lead, jamais modifiée
type LeadActivity struct {
	ID                  string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	LeadID              string         `json:"leadId" gorm:"type:varchar(36);not null;index"`
	ActivityType        ActivityType   `json:"activityType" gorm:"size:100;not null"`
	ActivityDescription string         `json:"activityDescription" gorm:"type:text"`
	ActivityData        datatypes.JSON `json:"activityData,omitempty"`
	UserAgent           string         `json:"userAgent,omitempty" gorm:"size:500"`
	IPAddress           string         `json:"ipAddress,omitempty" gorm:"column:ip_address;size:45"`
	Referrer            string         `json:"referrer,omitempty" gorm:"size:500"`
	CreatedAt           time.Time      `json:"createdAt" gorm:"index"`
	CreatedBy           string         `json:"createdBy" gorm:"size:100"`
}

func (LeadActivity) TableName() string {
	return "lead_activities"
}

func (a *LeadActivity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedBy == "" {
		a.CreatedBy = "system"
	}
	if len(a.UserAgent) > 500 {
		a.UserAgent = a.UserAgent[:500]
	}
	if len(a.Referrer) > 500 {
		a.Referrer = a.Referrer[:500]
	}
	return nil
}

// ClientInfo carries the request metadata recorded with activities and contact forms.
type ClientInfo struct {
	IPAddress string
	UserAgent string
	Referrer  string
}
