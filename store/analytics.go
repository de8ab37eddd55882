package store

import (
	"context"
	"fmt"
	"math"
	"time"

	"lead-capture-backend/models"

	"gorm.io/gorm"
)

type ScoreBucket struct {
	Range string `json:"range"`
	Count int64  `json:"count"`
}

type LeadAnalytics struct {
	PeriodDays           int              `json:"periodDays"`
	TotalLeads           int64            `json:"totalLeads"`
	NewLeads             int64            `json:"newLeads"`
	DemoRequests         int64            `json:"demoRequests"`
	ConversionRate       float64          `json:"conversionRate"`
	StatusDistribution   map[string]int64 `json:"statusDistribution"`
	IndustryDistribution map[string]int64 `json:"industryDistribution"`
	ScoreDistribution    []ScoreBucket    `json:"scoreDistribution"`
}

var scoreBuckets = [][2]int{{0, 10}, {11, 20}, {21, 30}, {31, 40}, {41, 50}}

type groupCount struct {
	Grp   *string
	Total int64
}

// Analytics aggregates active leads. days bounds the "new leads" window.
func (s *Store) Analytics(ctx context.Context, days int) (*LeadAnalytics, error) {
	db := s.conn(ctx)
	active := func() *gorm.DB { return db.Model(&models.Lead{}).Where("is_active = ?", true) }

	out := &LeadAnalytics{
		PeriodDays:           days,
		StatusDistribution:   map[string]int64{},
		IndustryDistribution: map[string]int64{},
	}

	if err := active().Count(&out.TotalLeads).Error; err != nil {
		return nil, fmt.Errorf("count leads: %w", err)
	}

	since := time.Now().AddDate(0, 0, -days)
	if err := active().Where("created_at >= ?", since).Count(&out.NewLeads).Error; err != nil {
		return nil, fmt.Errorf("count new leads: %w", err)
	}

	err := db.Model(&models.DemoRequest{}).
		Joins("JOIN leads ON leads.id = demo_requests.lead_id").
		Where("leads.is_active = ?", true).
		Count(&out.DemoRequests).Error
	if err != nil {
		return nil, fmt.Errorf("count demo requests: %w", err)
	}

	if out.TotalLeads > 0 {
		rate := float64(out.DemoRequests) / float64(out.TotalLeads) * 100
		out.ConversionRate = math.Round(rate*100) / 100
	}

	if err := s.distribution(active(), "status", out.StatusDistribution); err != nil {
		return nil, err
	}
	if err := s.distribution(active(), "industry", out.IndustryDistribution); err != nil {
		return nil, err
	}

	for _, b := range scoreBuckets {
		var n int64
		if err := active().Where("lead_score BETWEEN ? AND ?", b[0], b[1]).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("count score bucket: %w", err)
		}
		out.ScoreDistribution = append(out.ScoreDistribution, ScoreBucket{
			Range: fmt.Sprintf("%d-%d", b[0], b[1]),
			Count: n,
		})
	}

	return out, nil
}

func (s *Store) distribution(q *gorm.DB, column string, into map[string]int64) error {
	var rows []groupCount
	err := q.Select(column + " AS grp, COUNT(*) AS total").Group(column).Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("%s distribution: %w", column, err)
	}
	for _, r := range rows {
		key := "unknown"
		if r.Grp != nil && *r.Grp != "" {
			key = *r.Grp
		}
		into[key] += r.Total
	}
	return nil
}
