package crm

import (
	"context"

	"lead-capture-backend/models"
	"lead-capture-backend/utils"

	"github.com/sirupsen/logrus"
)

// ContactStore persists what the syncer learns from the CRM.
type ContactStore interface {
	SetCRMContactID(ctx context.Context, id, crmID string) error
	LogActivity(ctx context.Context, a *models.LeadActivity) error
}

type Syncer struct {
	provider Provider
	store    ContactStore
}

// NewSyncer accepts a nil provider, in which case every sync reports false.
func NewSyncer(provider Provider, store ContactStore) *Syncer {
	return &Syncer{provider: provider, store: store}
}

func (s *Syncer) ProviderName() string {
	if s == nil || s.provider == nil {
		return "none"
	}
	return s.provider.Name()
}

// Sync pushes lead to the CRM. A lead that already has a CRM id is updated,
// otherwise a contact is created and its id stored on the lead.
func (s *Syncer) Sync(ctx context.Context, lead *models.Lead) bool {
	if s == nil || s.provider == nil {
		utils.Logger.WithField("lead_id", lead.ID).Warn("No CRM system configured")
		return false
	}

	if lead.CRMContactID != nil && *lead.CRMContactID != "" {
		if err := s.provider.UpdateContact(ctx, *lead.CRMContactID, *lead); err != nil {
			utils.LogErrorWithLead(lead.ID, err, "Failed to update lead in CRM")
			return false
		}
		s.record(ctx, lead, "Contact updated in "+s.provider.Name())
		return true
	}

	crmID, err := s.provider.CreateContact(ctx, *lead)
	if err != nil {
		utils.LogErrorWithLead(lead.ID, err, "Failed to sync lead to CRM")
		return false
	}
	if crmID != "" {
		lead.CRMContactID = &crmID
		if err := s.store.SetCRMContactID(ctx, lead.ID, crmID); err != nil {
			utils.LogErrorWithLead(lead.ID, err, "Failed to store CRM contact id")
		}
	}
	s.record(ctx, lead, "Contact created in "+s.provider.Name())
	return true
}

// SyncDeal opens a deal for a lead that asked for a demo.
func (s *Syncer) SyncDeal(ctx context.Context, lead *models.Lead, demo *models.DemoRequest) bool {
	if s == nil || s.provider == nil {
		return false
	}
	dealID, err := s.provider.CreateDeal(ctx, *lead, demo)
	if err != nil {
		utils.LogErrorWithLead(lead.ID, err, "Failed to create CRM deal")
		return false
	}
	utils.Logger.WithFields(logrus.Fields{
		"lead_id":  lead.ID,
		"deal_id":  dealID,
		"provider": s.provider.Name(),
	}).Info("Deal created in CRM")
	s.record(ctx, lead, "Deal created in "+s.provider.Name())
	return true
}

func (s *Syncer) record(ctx context.Context, lead *models.Lead, description string) {
	utils.LogSuccessWithLead(lead.ID, description)
	err := s.store.LogActivity(ctx, &models.LeadActivity{
		LeadID:              lead.ID,
		ActivityType:        models.ActivityCRMSynced,
		ActivityDescription: description,
	})
	if err != nil {
		utils.LogErrorWithLead(lead.ID, err, "Failed to log CRM activity")
	}
}
