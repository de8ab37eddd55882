package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompanySize string

const (
	CompanySizeStartup    CompanySize = "startup"
	CompanySizeSmall      CompanySize = "small"
	CompanySizeMedium     CompanySize = "medium"
	CompanySizeLarge      CompanySize = "large"
	CompanySizeEnterprise CompanySize = "enterprise"
)

type Industry string

const (
	IndustryPowerUtilities Industry = "power_utilities"
	IndustryManufacturing  Industry = "manufacturing"
	IndustrySecurity       Industry = "security"
	IndustryResearch       Industry = "research"
	IndustryDefense        Industry = "defense"
	IndustryOther          Industry = "other"
)

type ProjectTimeline string

const (
	TimelineImmediate ProjectTimeline = "immediate"
	TimelineShortTerm ProjectTimeline = "short_term"
	TimelineLongTerm  ProjectTimeline = "long_term"
)

type BudgetRange string

const (
	BudgetUnder100k  BudgetRange = "under_100k"
	Budget100kTo500k BudgetRange = "100k_500k"
	Budget500kTo1m   BudgetRange = "500k_1m"
	BudgetOver1m     BudgetRange = "over_1m"
)

// LeadStatus définit les étapes du cycle commercial d'un lead
type LeadStatus string

const (
	LeadStatusNew           LeadStatus = "new"
	LeadStatusContacted     LeadStatus = "contacted"
	LeadStatusQualified     LeadStatus = "qualified"
	LeadStatusDemoScheduled LeadStatus = "demo_scheduled"
	LeadStatusProposalSent  LeadStatus = "proposal_sent"
	LeadStatusClosedWon     LeadStatus = "closed_won"
	LeadStatusClosedLost    LeadStatus = "closed_lost"
)

// LeadStatuses lists every status in pipeline order.
var LeadStatuses = []LeadStatus{
	LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusDemoScheduled,
	LeadStatusProposalSent, LeadStatusClosedWon, LeadStatusClosedLost,
}

// Lead représente un prospect capturé depuis un formulaire
// @Description Lead record with derived score
type Lead struct {
	ID               string           `json:"id" gorm:"primaryKey;type:varchar(36)"`
	FirstName        string           `json:"firstName" gorm:"size:100;not null"`
	LastName         string           `json:"lastName" gorm:"size:100;not null"`
	Email            string           `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Phone            *string          `json:"phone,omitempty" gorm:"size:50"`
	Company          string           `json:"company" gorm:"size:255;not null"`
	JobTitle         *string          `json:"jobTitle,omitempty" gorm:"size:100"`
	CompanySize      *CompanySize     `json:"companySize,omitempty" gorm:"size:50"`
	Industry         *Industry        `json:"industry,omitempty" gorm:"size:100;index"`
	Location         *string          `json:"location,omitempty" gorm:"size:255"`
	Website          *string          `json:"website,omitempty" gorm:"size:255"`
	ApplicationArea  *string          `json:"applicationArea,omitempty" gorm:"size:100"`
	ProjectTimeline  *ProjectTimeline `json:"projectTimeline,omitempty" gorm:"size:50"`
	BudgetRange      *BudgetRange     `json:"budgetRange,omitempty" gorm:"size:50"`
	Requirements     *string          `json:"requirements,omitempty" gorm:"type:text"`
	Challenges       *string          `json:"challenges,omitempty" gorm:"type:text"`
	LeadScore        int              `json:"leadScore" gorm:"not null;index"`
	Status           LeadStatus       `json:"status" gorm:"size:50;not null;index"`
	Source           string           `json:"source" gorm:"size:100;not null"`
	UtmSource        *string          `json:"utmSource,omitempty" gorm:"size:100"`
	UtmMedium        *string          `json:"utmMedium,omitempty" gorm:"size:100"`
	UtmCampaign      *string          `json:"utmCampaign,omitempty" gorm:"size:100"`
	AssignedTo       *string          `json:"assignedTo,omitempty" gorm:"size:100"`
	LastContactDate  *time.Time       `json:"lastContactDate,omitempty"`
	NextFollowUpDate *time.Time       `json:"nextFollowUpDate,omitempty"`
	CRMContactID     *string          `json:"crmContactId,omitempty" gorm:"column:crm_contact_id;size:100"`
	IsActive         bool             `json:"isActive" gorm:"not null;index"`
	CreatedAt        time.Time        `json:"createdAt" gorm:"index"`
	UpdatedAt        time.Time        `json:"updatedAt"`

	DemoRequests []DemoRequest  `json:"-" gorm:"foreignKey:LeadID"`
	Activities   []LeadActivity `json:"-" gorm:"foreignKey:LeadID"`
	Notes        []LeadNote     `json:"-" gorm:"foreignKey:LeadID"`
}

func (Lead) TableName() string {
	return "leads"
}

// BeforeCreate assigns the uuid and the defaults of a fresh lead.
func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Status == "" {
		l.Status = LeadStatusNew
	}
	if l.Source == "" {
		l.Source = "website"
	}
	return nil
}

func (l Lead) FullName() string {
	return strings.TrimSpace(l.FirstName + " " + l.LastName)
}

// NormalizeEmail is the canonical form used for the uniqueness key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// LeadCreate modèle pour soumettre un lead depuis le formulaire public
// @Description payload of the public lead capture form
type LeadCreate struct {
	FirstName       string           `json:"firstName" binding:"required,max=100" example:"Jean"`
	LastName        string           `json:"lastName" binding:"required,max=100" example:"Dupont"`
	Email           string           `json:"email" binding:"required,email,max=255" example:"jean.dupont@example.com"`
	Phone           *string          `json:"phone" binding:"omitempty,max=50" example:"+33 6 12 34 56 78"`
	Company         string           `json:"company" binding:"required,max=255" example:"Grid Energy"`
	JobTitle        *string          `json:"jobTitle" binding:"omitempty,max=100"`
	CompanySize     *CompanySize     `json:"companySize" binding:"omitempty,oneof=startup small medium large enterprise" example:"enterprise"`
	Industry        *Industry        `json:"industry" binding:"omitempty,oneof=power_utilities manufacturing security research defense other" example:"power_utilities"`
	Location        *string          `json:"location" binding:"omitempty,max=255"`
	Website         *string          `json:"website" binding:"omitempty,url,max=255"`
	ApplicationArea *string          `json:"applicationArea" binding:"omitempty,max=100" example:"inspection"`
	ProjectTimeline *ProjectTimeline `json:"projectTimeline" binding:"omitempty,oneof=immediate short_term long_term" example:"immediate"`
	BudgetRange     *BudgetRange     `json:"budgetRange" binding:"omitempty,oneof=under_100k 100k_500k 500k_1m over_1m" example:"over_1m"`
	Requirements    *string          `json:"requirements"`
	Challenges      *string          `json:"challenges"`
	Source          *string          `json:"source" binding:"omitempty,max=100"`
	UtmSource       *string          `json:"utmSource" binding:"omitempty,max=100"`
	UtmMedium       *string          `json:"utmMedium" binding:"omitempty,max=100"`
	UtmCampaign     *string          `json:"utmCampaign" binding:"omitempty,max=100"`
}

// LeadUpdate modèle pour la mise à jour partielle d'un lead (admin)
// @Description partial lead update, only provided fields are written
type LeadUpdate struct {
	FirstName        *string          `json:"firstName" binding:"omitempty,min=1,max=100"`
	LastName         *string          `json:"lastName" binding:"omitempty,min=1,max=100"`
	Phone            *string          `json:"phone" binding:"omitempty,max=50"`
	Company          *string          `json:"company" binding:"omitempty,min=1,max=255"`
	JobTitle         *string          `json:"jobTitle" binding:"omitempty,max=100"`
	CompanySize      *CompanySize     `json:"companySize" binding:"omitempty,oneof=startup small medium large enterprise"`
	Industry         *Industry        `json:"industry" binding:"omitempty,oneof=power_utilities manufacturing security research defense other"`
	Location         *string          `json:"location" binding:"omitempty,max=255"`
	Website          *string          `json:"website" binding:"omitempty,url,max=255"`
	ApplicationArea  *string          `json:"applicationArea" binding:"omitempty,max=100"`
	ProjectTimeline  *ProjectTimeline `json:"projectTimeline" binding:"omitempty,oneof=immediate short_term long_term"`
	BudgetRange      *BudgetRange     `json:"budgetRange" binding:"omitempty,oneof=under_100k 100k_500k 500k_1m over_1m"`
	Requirements     *string          `json:"requirements"`
	Challenges       *string          `json:"challenges"`
	Status           *LeadStatus      `json:"status" binding:"omitempty,oneof=new contacted qualified demo_scheduled proposal_sent closed_won closed_lost"`
	AssignedTo       *string          `json:"assignedTo" binding:"omitempty,max=100"`
	LastContactDate  *time.Time       `json:"lastContactDate"`
	NextFollowUpDate *time.Time       `json:"nextFollowUpDate"`
}
