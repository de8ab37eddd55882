package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lead-capture-backend/config"
	"lead-capture-backend/models"
)

// HubSpot talks to the CRM v3 objects API with a private app token.
type HubSpot struct {
	token   string
	baseURL string
	client  *http.Client
	now     func() time.Time
}

func NewHubSpot(cfg config.HubSpotConfig, client *http.Client) *HubSpot {
	if client == nil {
		client = http.DefaultClient
	}
	base := cfg.BaseURL
	if base == "" {
		base = "https://api.hubapi.com"
	}
	return &HubSpot{
		token:   cfg.AccessToken,
		baseURL: strings.TrimRight(base, "/"),
		client:  client,
		now:     time.Now,
	}
}

func (h *HubSpot) Name() string { return "hubspot" }

type hubspotObject struct {
	ID string `json:"id"`
}

type hubspotError struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId"`
	Category      string `json:"category"`
}

func (h *HubSpot) CreateContact(ctx context.Context, lead models.Lead) (string, error) {
	props := map[string]interface{}{
		"email":            lead.Email,
		"firstname":        lead.FirstName,
		"lastname":         lead.LastName,
		"phone":            lead.Phone,
		"company":          lead.Company,
		"jobtitle":         lead.JobTitle,
		"website":          lead.Website,
		"city":             lead.Location,
		"industry":         str(lead.Industry),
		"hs_lead_status":   "NEW",
		"lifecyclestage":   "lead",
		"lead_source":      lead.Source,
		"lead_score":       itoa(lead.LeadScore),
		"company_size":     str(lead.CompanySize),
		"project_timeline": str(lead.ProjectTimeline),
		"budget_range":     str(lead.BudgetRange),
		"application_area": lead.ApplicationArea,
		"requirements":     lead.Requirements,
		"challenges":       lead.Challenges,
		"utm_source":       lead.UtmSource,
		"utm_medium":       lead.UtmMedium,
		"utm_campaign":     lead.UtmCampaign,
	}

	var obj hubspotObject
	if err := h.do(ctx, http.MethodPost, "/crm/v3/objects/contacts", props, &obj); err != nil {
		return "", err
	}
	return obj.ID, nil
}

func (h *HubSpot) UpdateContact(ctx context.Context, id string, lead models.Lead) error {
	props := map[string]interface{}{
		"firstname":      lead.FirstName,
		"lastname":       lead.LastName,
		"phone":          lead.Phone,
		"company":        lead.Company,
		"jobtitle":       lead.JobTitle,
		"lead_score":     itoa(lead.LeadScore),
		"hs_lead_status": strings.ToUpper(string(lead.Status)),
	}
	return h.do(ctx, http.MethodPatch, "/crm/v3/objects/contacts/"+id, props, nil)
}

func (h *HubSpot) CreateDeal(ctx context.Context, lead models.Lead, demo *models.DemoRequest) (string, error) {
	stage := "qualifiedtobuy"
	if demo != nil {
		stage = "appointmentscheduled"
	}
	props := map[string]interface{}{
		"dealname":         DealName(lead),
		"dealstage":        stage,
		"pipeline":         "default",
		"amount":           itoa(DealAmount(lead.BudgetRange)),
		"closedate":        CloseDate(lead.ProjectTimeline, h.now()).Format("2006-01-02"),
		"deal_source":      lead.Source,
		"lead_score":       itoa(lead.LeadScore),
		"industry":         str(lead.Industry),
		"company_size":     str(lead.CompanySize),
		"budget_range":     str(lead.BudgetRange),
		"project_timeline": str(lead.ProjectTimeline),
	}

	var obj hubspotObject
	if err := h.do(ctx, http.MethodPost, "/crm/v3/objects/deals", props, &obj); err != nil {
		return "", err
	}
	return obj.ID, nil
}

func (h *HubSpot) do(ctx context.Context, method, path string, props map[string]interface{}, out interface{}) error {
	if h.token == "" {
		return errNotConfigured
	}

	body, err := json.Marshal(map[string]interface{}{"properties": dropEmpty(props)})
	if err != nil {
		return fmt.Errorf("error encoding request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+h.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{Provider: h.Name(), Status: resp.StatusCode, Message: string(raw)}
		var he hubspotError
		if json.Unmarshal(raw, &he) == nil && he.Message != "" {
			apiErr.Message = he.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding response: %v", err)
	}
	return nil
}
