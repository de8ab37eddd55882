package store

import (
	"context"
	"fmt"

	"lead-capture-backend/models"
)

// CreateDemoRequest attaches a demo request to an existing lead.
// Unknown leads yield ErrNotFound and no row.
func (s *Store) CreateDemoRequest(ctx context.Context, leadID string, in models.DemoRequestCreate) (*models.DemoRequest, *models.Lead, error) {
	lead, err := s.Get(ctx, leadID)
	if err != nil {
		return nil, nil, err
	}

	demo := &models.DemoRequest{
		LeadID:               lead.ID,
		DemoType:             in.DemoType,
		PreferredDate:        in.PreferredDate,
		SpecialRequirements:  in.SpecialRequirements,
		InterestedProducts:   in.InterestedProducts,
		SpecificApplications: in.SpecificApplications,
	}
	if in.AttendeesCount != nil {
		demo.AttendeesCount = *in.AttendeesCount
	}

	if err := s.conn(ctx).Create(demo).Error; err != nil {
		return nil, nil, fmt.Errorf("create demo request: %w", err)
	}
	return demo, lead, nil
}

func (s *Store) GetDemoRequest(ctx context.Context, id string) (*models.DemoRequest, error) {
	var demo models.DemoRequest
	if err := s.conn(ctx).Where("id = ?", id).First(&demo).Error; err != nil {
		return nil, notFound(err)
	}
	return &demo, nil
}

// UpdateDemoStatus moves a demo along pending -> scheduled -> completed,
// with cancellation allowed from pending or scheduled. It returns the
// demo and the status it left.
func (s *Store) UpdateDemoStatus(ctx context.Context, id string, in models.DemoStatusUpdate) (*models.DemoRequest, models.DemoStatus, error) {
	demo, err := s.GetDemoRequest(ctx, id)
	if err != nil {
		return nil, "", err
	}

	prev := demo.Status
	if !prev.CanTransition(in.Status) {
		return nil, prev, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, prev, in.Status)
	}

	demo.Status = in.Status
	if in.ScheduledDate != nil {
		demo.ScheduledDate = in.ScheduledDate
	}
	if in.DemoNotes != nil {
		demo.DemoNotes = in.DemoNotes
	}
	if in.Outcome != nil {
		demo.Outcome = in.Outcome
	}

	if err := s.conn(ctx).Save(demo).Error; err != nil {
		return nil, prev, fmt.Errorf("update demo status: %w", err)
	}
	return demo, prev, nil
}
