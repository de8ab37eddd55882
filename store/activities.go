package store

import (
	"context"
	"encoding/json"
	"fmt"

	"lead-capture-backend/models"

	"gorm.io/datatypes"
)

// NewActivity builds an audit entry. data is stored as JSON when not nil.
func NewActivity(leadID string, kind models.ActivityType, description string, data interface{}, client models.ClientInfo) *models.LeadActivity {
	a := &models.LeadActivity{
		LeadID:              leadID,
		ActivityType:        kind,
		ActivityDescription: description,
		UserAgent:           client.UserAgent,
		IPAddress:           client.IPAddress,
		Referrer:            client.Referrer,
	}
	if data != nil {
		if raw, err := json.Marshal(data); err == nil {
			a.ActivityData = datatypes.JSON(raw)
		}
	}
	return a
}

// LogActivity appends to a lead's audit trail. Entries are never updated or removed.
func (s *Store) LogActivity(ctx context.Context, a *models.LeadActivity) error {
	if err := s.conn(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("log activity: %w", err)
	}
	return nil
}

func (s *Store) AddNote(ctx context.Context, leadID string, in models.LeadNoteCreate, author string) (*models.LeadNote, error) {
	if _, err := s.Get(ctx, leadID); err != nil {
		return nil, err
	}

	note := &models.LeadNote{
		LeadID:    leadID,
		NoteType:  in.NoteType,
		Subject:   in.Subject,
		Content:   in.Content,
		CreatedBy: author,
	}
	if err := s.conn(ctx).Create(note).Error; err != nil {
		return nil, fmt.Errorf("add note: %w", err)
	}
	return note, nil
}
