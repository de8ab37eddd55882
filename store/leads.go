package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lead-capture-backend/models"
	"lead-capture-backend/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Upsert creates the lead for in.Email or merges in into the existing one.
// Incoming non-nil fields win; the score is recomputed either way.
// created reports whether a new row was inserted.
func (s *Store) Upsert(ctx context.Context, in models.LeadCreate) (lead *models.Lead, created bool, err error) {
	in.Email = models.NormalizeEmail(in.Email)

	for attempt := 1; attempt <= maxUpsertAttempts; attempt++ {
		lead, created, err = s.upsertOnce(ctx, in)
		if !isDuplicateKey(err) {
			if err != nil {
				return nil, false, fmt.Errorf("upsert lead: %w", err)
			}
			return lead, created, nil
		}
		utils.Logger.WithFields(logrus.Fields{
			"source":  "store",
			"attempt": attempt,
		}).Warn("Lead email taken by a concurrent insert, retrying as update")
	}
	return nil, false, ErrConflict
}

func (s *Store) upsertOnce(ctx context.Context, in models.LeadCreate) (*models.Lead, bool, error) {
	var lead models.Lead
	err := s.conn(ctx).Where("email = ?", in.Email).First(&lead).Error
	switch {
	case err == nil:
		mergeSubmission(&lead, in)
		s.scorer.Apply(&lead)
		lead.UpdatedAt = time.Now()
		if err := s.conn(ctx).Save(&lead).Error; err != nil {
			return nil, false, err
		}
		return &lead, false, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		lead = models.Lead{Email: in.Email, IsActive: true}
		mergeSubmission(&lead, in)
		s.scorer.Apply(&lead)
		if err := s.conn(ctx).Create(&lead).Error; err != nil {
			return nil, false, err
		}
		return &lead, true, nil

	default:
		return nil, false, err
	}
}

func mergeSubmission(l *models.Lead, in models.LeadCreate) {
	setString(&l.FirstName, in.FirstName)
	setString(&l.LastName, in.LastName)
	setString(&l.Company, in.Company)
	setPtr(&l.Phone, in.Phone)
	setPtr(&l.JobTitle, in.JobTitle)
	setPtr(&l.CompanySize, in.CompanySize)
	setPtr(&l.Industry, in.Industry)
	setPtr(&l.Location, in.Location)
	setPtr(&l.Website, in.Website)
	setPtr(&l.ApplicationArea, in.ApplicationArea)
	setPtr(&l.ProjectTimeline, in.ProjectTimeline)
	setPtr(&l.BudgetRange, in.BudgetRange)
	setPtr(&l.Requirements, in.Requirements)
	setPtr(&l.Challenges, in.Challenges)
	setPtr(&l.UtmSource, in.UtmSource)
	setPtr(&l.UtmMedium, in.UtmMedium)
	setPtr(&l.UtmCampaign, in.UtmCampaign)
	if in.Source != nil && *in.Source != "" {
		l.Source = *in.Source
	}
}

// mergeUpdate applies an admin update and returns the json names of the fields it wrote.
func mergeUpdate(l *models.Lead, in models.LeadUpdate) []string {
	var changed []string
	track := func(name string, set bool) {
		if set {
			changed = append(changed, name)
		}
	}

	track("firstName", in.FirstName != nil && setString(&l.FirstName, *in.FirstName))
	track("lastName", in.LastName != nil && setString(&l.LastName, *in.LastName))
	track("company", in.Company != nil && setString(&l.Company, *in.Company))
	track("phone", setPtr(&l.Phone, in.Phone))
	track("jobTitle", setPtr(&l.JobTitle, in.JobTitle))
	track("companySize", setPtr(&l.CompanySize, in.CompanySize))
	track("industry", setPtr(&l.Industry, in.Industry))
	track("location", setPtr(&l.Location, in.Location))
	track("website", setPtr(&l.Website, in.Website))
	track("applicationArea", setPtr(&l.ApplicationArea, in.ApplicationArea))
	track("projectTimeline", setPtr(&l.ProjectTimeline, in.ProjectTimeline))
	track("budgetRange", setPtr(&l.BudgetRange, in.BudgetRange))
	track("requirements", setPtr(&l.Requirements, in.Requirements))
	track("challenges", setPtr(&l.Challenges, in.Challenges))
	track("assignedTo", setPtr(&l.AssignedTo, in.AssignedTo))
	track("lastContactDate", setPtr(&l.LastContactDate, in.LastContactDate))
	track("nextFollowUpDate", setPtr(&l.NextFollowUpDate, in.NextFollowUpDate))
	if in.Status != nil {
		l.Status = *in.Status
		changed = append(changed, "status")
	}
	return changed
}

func setString(dst *string, v string) bool {
	if v == "" {
		return false
	}
	*dst = v
	return true
}

func setPtr[T any](dst **T, v *T) bool {
	if v == nil {
		return false
	}
	c := *v
	*dst = &c
	return true
}

// Get returns a lead by id, active or not.
func (s *Store) Get(ctx context.Context, id string) (*models.Lead, error) {
	var lead models.Lead
	if err := s.conn(ctx).Where("id = ?", id).First(&lead).Error; err != nil {
		return nil, notFound(err)
	}
	return &lead, nil
}

type LeadDetail struct {
	Lead         *models.Lead          `json:"lead"`
	DemoRequests []models.DemoRequest  `json:"demoRequests"`
	Activities   []models.LeadActivity `json:"activities"`
	Notes        []models.LeadNote     `json:"notes"`
}

// GetDetail loads a lead with its demos, its most recent activities and its notes.
func (s *Store) GetDetail(ctx context.Context, id string) (*LeadDetail, error) {
	lead, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &LeadDetail{
		Lead:         lead,
		DemoRequests: []models.DemoRequest{},
		Activities:   []models.LeadActivity{},
		Notes:        []models.LeadNote{},
	}
	db := s.conn(ctx)
	if err := db.Where("lead_id = ?", id).Order("created_at DESC").Find(&detail.DemoRequests).Error; err != nil {
		return nil, err
	}
	if err := db.Where("lead_id = ?", id).Order("created_at DESC").Limit(recentActivities).Find(&detail.Activities).Error; err != nil {
		return nil, err
	}
	if err := db.Where("lead_id = ?", id).Order("created_at DESC").Find(&detail.Notes).Error; err != nil {
		return nil, err
	}
	return detail, nil
}

type LeadFilter struct {
	Status      string
	Industry    string
	CompanySize string
	MinScore    *int
}

// List returns active leads, best score first then most recent first.
func (s *Store) List(ctx context.Context, f LeadFilter, p Page) ([]models.Lead, PageInfo, error) {
	p = p.normalize()

	q := s.conn(ctx).Model(&models.Lead{}).Where("is_active = ?", true)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Industry != "" {
		q = q.Where("industry = ?", f.Industry)
	}
	if f.CompanySize != "" {
		q = q.Where("company_size = ?", f.CompanySize)
	}
	if f.MinScore != nil {
		q = q.Where("lead_score >= ?", *f.MinScore)
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, PageInfo{}, err
	}

	leads := []models.Lead{}
	err := q.Order("lead_score DESC").Order("created_at DESC").
		Offset(p.offset()).Limit(p.PerPage).
		Find(&leads).Error
	if err != nil {
		return nil, PageInfo{}, err
	}
	return leads, newPageInfo(p, total), nil
}

// Update applies a partial admin update, rescores and returns the changed fields.
func (s *Store) Update(ctx context.Context, id string, in models.LeadUpdate) (*models.Lead, []string, error) {
	lead, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	changed := mergeUpdate(lead, in)
	s.scorer.Apply(lead)
	lead.UpdatedAt = time.Now()
	if err := s.conn(ctx).Save(lead).Error; err != nil {
		return nil, nil, err
	}
	return lead, changed, nil
}

// Deactivate flags a lead inactive. Leads are never physically deleted.
func (s *Store) Deactivate(ctx context.Context, id string) error {
	res := s.conn(ctx).Model(&models.Lead{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetCRMContactID(ctx context.Context, id, crmID string) error {
	res := s.conn(ctx).Model(&models.Lead{}).Where("id = ?", id).Update("crm_contact_id", crmID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Rescore recomputes every stored score with the store's table and
// returns how many rows changed.
func (s *Store) Rescore(ctx context.Context) (int, error) {
	var leads []models.Lead
	updated := 0
	err := s.conn(ctx).Model(&models.Lead{}).FindInBatches(&leads, 200, func(tx *gorm.DB, batch int) error {
		for i := range leads {
			score := s.scorer.ScoreLead(&leads[i])
			if score == leads[i].LeadScore {
				continue
			}
			err := s.conn(ctx).Model(&models.Lead{}).Where("id = ?", leads[i].ID).Update("lead_score", score).Error
			if err != nil {
				return err
			}
			updated++
		}
		return nil
	}).Error
	if err != nil {
		return updated, fmt.Errorf("rescore leads: %w", err)
	}
	return updated, nil
}
