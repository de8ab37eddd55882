// Package store persists leads and everything attached to them.
//
// The email column carries a unique index. Upsert relies on it instead of an
// application lock: a create that loses a race against a concurrent create
// fails with a duplicate key and is retried through the update path.
package store

import (
	"context"
	"errors"
	"math"
	"strings"

	"lead-capture-backend/scoring"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrInvalidTransition = errors.New("invalid demo status transition")
	ErrConflict          = errors.New("lead email conflict persisted after retries")
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100

	maxUpsertAttempts = 3
	recentActivities  = 10
)

type Store struct {
	db     *gorm.DB
	scorer scoring.Table
}

func New(db *gorm.DB, scorer scoring.Table) *Store {
	return &Store{db: db, scorer: scorer}
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// Page is a 1-based page request.
type Page struct {
	Page    int
	PerPage int
}

func (p Page) normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

func (p Page) offset() int {
	return (p.Page - 1) * p.PerPage
}

type PageInfo struct {
	Page    int   `json:"page"`
	PerPage int   `json:"perPage"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	HasNext bool  `json:"hasNext"`
	HasPrev bool  `json:"hasPrev"`
}

func newPageInfo(p Page, total int64) PageInfo {
	pages := int(math.Ceil(float64(total) / float64(p.PerPage)))
	return PageInfo{
		Page:    p.Page,
		PerPage: p.PerPage,
		Total:   total,
		Pages:   pages,
		HasNext: p.Page < pages,
		HasPrev: p.Page > 1,
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// isDuplicateKey recognises unique violations from gorm's translated errors,
// postgres and sqlite.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
