package store

import (
	"context"
	"fmt"

	"lead-capture-backend/models"

	"gorm.io/gorm"
)

func (s *Store) CreateContactForm(ctx context.Context, form *models.ContactForm) error {
	if err := s.conn(ctx).Create(form).Error; err != nil {
		return fmt.Errorf("create contact form: %w", err)
	}
	return nil
}

// ListContactForms returns contact forms newest first, optionally filtered by status.
func (s *Store) ListContactForms(ctx context.Context, status string, p Page) ([]models.ContactForm, PageInfo, error) {
	p = p.normalize()

	q := s.conn(ctx).Model(&models.ContactForm{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, PageInfo{}, err
	}

	forms := []models.ContactForm{}
	if err := q.Order("created_at DESC").Offset(p.offset()).Limit(p.PerPage).Find(&forms).Error; err != nil {
		return nil, PageInfo{}, err
	}
	return forms, newPageInfo(p, total), nil
}
