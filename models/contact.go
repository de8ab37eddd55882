package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContactFormType string

const (
	ContactFormContact     ContactFormType = "contact"
	ContactFormSupport     ContactFormType = "support"
	ContactFormPartnership ContactFormType = "partnership"
)

type ContactFormStatus string

const (
	ContactFormStatusNew       ContactFormStatus = "new"
	ContactFormStatusResponded ContactFormStatus = "responded"
	ContactFormStatusClosed    ContactFormStatus = "closed"
)

// ContactForm représente une demande de contact générale, indépendante des leads
// @Description Modèle complet d'une demande de contact
// @Scheme ContactForm
type ContactForm struct {
	ID           string            `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name         string            `json:"name" gorm:"size:200;not null"`
	Email        string            `json:"email" gorm:"size:255;not null;index"`
	Phone        *string           `json:"phone,omitempty" gorm:"size:50"`
	Company      string            `json:"company" gorm:"size:255"`
	Subject      *string           `json:"subject,omitempty" gorm:"size:255"`
	Message      string            `json:"message" gorm:"type:text;not null"`
	FormType     ContactFormType   `json:"formType" gorm:"size:50;not null"`
	Status       ContactFormStatus `json:"status" gorm:"size:50;not null"`
	ResponseSent bool              `json:"responseSent"`
	UserAgent    string            `json:"-" gorm:"size:500"`
	IPAddress    string            `json:"-" gorm:"column:ip_address;size:45"`
	Referrer     string            `json:"-" gorm:"size:500"`
	CreatedAt    time.Time         `json:"createdAt" swaggerignore:"true"`
	UpdatedAt    time.Time         `json:"updatedAt" swaggerignore:"true"`
}

func (ContactForm) TableName() string {
	return "contact_forms"
}

func (f *ContactForm) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if f.FormType == "" {
		f.FormType = ContactFormContact
	}
	if f.Status == "" {
		f.Status = ContactFormStatusNew
	}
	if len(f.UserAgent) > 500 {
		f.UserAgent = f.UserAgent[:500]
	}
	return nil
}

// ContactCreate modèle pour créer une demande de contact
// @Description modèle pour créer une demande de contact
type ContactCreate struct {
	Name     string           `json:"name" binding:"required,max=200" example:"Jean Dupont"`
	Email    string           `json:"email" binding:"required,email,max=255" example:"jean.dupont@exemple.com"`
	Phone    *string          `json:"phone" binding:"omitempty,max=50"`
	Company  string           `json:"company" binding:"required,max=255" example:"Grid Energy"`
	Subject  *string          `json:"subject" binding:"omitempty,max=255" example:"Demande d'information"`
	Message  string           `json:"message" binding:"required" example:"J'aimerais avoir plus d'informations sur vos services."`
	FormType *ContactFormType `json:"formType" binding:"omitempty,oneof=contact support partnership" example:"contact"`
}
