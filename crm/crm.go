// Package crm replicates leads into an external CRM.
//
// Exactly one Provider is chosen at startup from the configured credentials.
// Sync is advisory: failures are logged and reported as false, never
// returned to the HTTP caller.
package crm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"lead-capture-backend/config"
	"lead-capture-backend/models"
)

type Provider interface {
	Name() string
	CreateContact(ctx context.Context, lead models.Lead) (string, error)
	UpdateContact(ctx context.Context, id string, lead models.Lead) error
	CreateDeal(ctx context.Context, lead models.Lead, demo *models.DemoRequest) (string, error)
}

// Select returns the provider matching the configured credentials.
// HubSpot wins over Salesforce; nil means no CRM is configured.
func Select(cfg config.Config) Provider {
	client := &http.Client{Timeout: cfg.CRMTimeout}
	switch {
	case cfg.HubSpot.AccessToken != "":
		return NewHubSpot(cfg.HubSpot, client)
	case cfg.Salesforce.Username != "":
		return NewSalesforce(cfg.Salesforce, client)
	default:
		return nil
	}
}

// APIError is a non-2xx answer from a CRM.
type APIError struct {
	Provider string
	Status   int
	Message  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error: status=%d, message=%s", e.Provider, e.Status, e.Message)
}

var errNotConfigured = errors.New("crm credentials not configured")

// DealAmount estimates a deal value from the budget range.
func DealAmount(budget *models.BudgetRange) int {
	if budget == nil {
		return 100000
	}
	switch *budget {
	case models.BudgetUnder100k:
		return 50000
	case models.Budget100kTo500k:
		return 300000
	case models.Budget500kTo1m:
		return 750000
	case models.BudgetOver1m:
		return 1500000
	default:
		return 100000
	}
}

// CloseDate estimates when a deal closes from the project timeline.
func CloseDate(timeline *models.ProjectTimeline, now time.Time) time.Time {
	days := 90
	if timeline != nil {
		switch *timeline {
		case models.TimelineImmediate:
			days = 30
		case models.TimelineShortTerm:
			days = 90
		case models.TimelineLongTerm:
			days = 180
		}
	}
	return now.UTC().AddDate(0, 0, days)
}

// DealName is "<company> - <application area>".
func DealName(lead models.Lead) string {
	area := "Robotics Solution"
	if lead.ApplicationArea != nil && *lead.ApplicationArea != "" {
		area = *lead.ApplicationArea
	}
	return lead.Company + " - " + area
}

// dropEmpty removes nil and empty string values so they are never transmitted.
func dropEmpty(props map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(props))
	for k, v := range props {
		switch val := v.(type) {
		case nil:
			continue
		case string:
			if val == "" {
				continue
			}
		case *string:
			if val == nil || *val == "" {
				continue
			}
			v = *val
		}
		out[k] = v
	}
	return out
}

func str[T ~string](p *T) interface{} {
	if p == nil {
		return nil
	}
	return string(*p)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
