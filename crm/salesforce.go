package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"lead-capture-backend/config"
	"lead-capture-backend/models"
)

const salesforceAPIVersion = "58.0"

// Salesforce logs in through the SOAP partner endpoint and then uses the
// REST sobjects API with the returned session.
type Salesforce struct {
	cfg      config.SalesforceConfig
	loginURL string
	client   *http.Client
	now      func() time.Time

	mu      sync.Mutex
	session *sfSession
}

type sfSession struct {
	ID          string
	InstanceURL string
}

func NewSalesforce(cfg config.SalesforceConfig, client *http.Client) *Salesforce {
	if client == nil {
		client = http.DefaultClient
	}
	domain := cfg.Domain
	if domain == "" {
		domain = "login"
	}
	return &Salesforce{
		cfg:      cfg,
		loginURL: fmt.Sprintf("https://%s.salesforce.com/services/Soap/c/%s", domain, salesforceAPIVersion),
		client:   client,
		now:      time.Now,
	}
}

func (s *Salesforce) Name() string { return "salesforce" }

type soapLoginResponse struct {
	Body struct {
		LoginResponse struct {
			Result struct {
				SessionID string `xml:"sessionId"`
				ServerURL string `xml:"serverUrl"`
			} `xml:"result"`
		} `xml:"loginResponse"`
		Fault *struct {
			Code   string `xml:"faultcode"`
			String string `xml:"faultstring"`
		} `xml:"Fault"`
	} `xml:"Body"`
}

func xmlEscape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func (s *Salesforce) login(ctx context.Context) (*sfSession, error) {
	if s.cfg.Username == "" || s.cfg.Password == "" || s.cfg.SecurityToken == "" {
		return nil, errNotConfigured
	}

	envelope := fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:urn="urn:enterprise.soap.sforce.com">
	<soapenv:Header/>
	<soapenv:Body>
		<urn:login>
			<urn:username>%s</urn:username>
			<urn:password>%s</urn:password>
		</urn:login>
	</soapenv:Body>
</soapenv:Envelope>`, xmlEscape(s.cfg.Username), xmlEscape(s.cfg.Password+s.cfg.SecurityToken))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.loginURL, strings.NewReader(envelope))
	if err != nil {
		return nil, fmt.Errorf("error creating login request: %v", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=UTF-8")
	req.Header.Set("SOAPAction", "login")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("salesforce login: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var parsed soapLoginResponse
	if err := xml.Unmarshal(raw, &parsed); err != nil {
		return nil, &APIError{Provider: s.Name(), Status: resp.StatusCode, Message: "unreadable login response"}
	}
	if parsed.Body.Fault != nil {
		return nil, &APIError{Provider: s.Name(), Status: resp.StatusCode, Message: parsed.Body.Fault.String}
	}

	result := parsed.Body.LoginResponse.Result
	if resp.StatusCode != http.StatusOK || result.SessionID == "" {
		return nil, &APIError{Provider: s.Name(), Status: resp.StatusCode, Message: "no session in login response"}
	}

	server, err := url.Parse(result.ServerURL)
	if err != nil || server.Host == "" {
		return nil, fmt.Errorf("salesforce login: bad serverUrl %q", result.ServerURL)
	}
	return &sfSession{
		ID:          result.SessionID,
		InstanceURL: server.Scheme + "://" + server.Host,
	}, nil
}

// currentSession logs in on first use and reuses the session afterwards.
func (s *Salesforce) currentSession(ctx context.Context) (*sfSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session != nil {
		return s.session, nil
	}
	sess, err := s.login(ctx)
	if err != nil {
		return nil, err
	}
	s.session = sess
	return sess, nil
}

func (s *Salesforce) dropSession(sess *sfSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == sess {
		s.session = nil
	}
}

type sfCreateResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
}

type sfError struct {
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode"`
}

func (s *Salesforce) CreateContact(ctx context.Context, lead models.Lead) (string, error) {
	fields := map[string]interface{}{
		"FirstName":   lead.FirstName,
		"LastName":    lead.LastName,
		"Email":       lead.Email,
		"Company":     lead.Company,
		"Phone":       lead.Phone,
		"Title":       lead.JobTitle,
		"Website":     lead.Website,
		"City":        lead.Location,
		"Industry":    str(lead.Industry),
		"LeadSource":  lead.Source,
		"Status":      "Open - Not Contacted",
		"Description": lead.Requirements,
	}
	var out sfCreateResult
	if err := s.do(ctx, http.MethodPost, "/sobjects/Lead/", fields, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (s *Salesforce) UpdateContact(ctx context.Context, id string, lead models.Lead) error {
	fields := map[string]interface{}{
		"FirstName": lead.FirstName,
		"LastName":  lead.LastName,
		"Company":   lead.Company,
		"Phone":     lead.Phone,
		"Title":     lead.JobTitle,
		"Rating":    rating(lead.LeadScore),
	}
	return s.do(ctx, http.MethodPatch, "/sobjects/Lead/"+id, fields, nil)
}

func (s *Salesforce) CreateDeal(ctx context.Context, lead models.Lead, demo *models.DemoRequest) (string, error) {
	stage := "Qualification"
	if demo != nil {
		stage = "Needs Analysis"
	}
	fields := map[string]interface{}{
		"Name":       DealName(lead),
		"StageName":  stage,
		"Amount":     DealAmount(lead.BudgetRange),
		"CloseDate":  CloseDate(lead.ProjectTimeline, s.now()).Format("2006-01-02"),
		"LeadSource": lead.Source,
	}
	var out sfCreateResult
	if err := s.do(ctx, http.MethodPost, "/sobjects/Opportunity/", fields, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func rating(score int) string {
	switch {
	case score >= 30:
		return "Hot"
	case score >= 20:
		return "Warm"
	default:
		return "Cold"
	}
}

// do sends one REST call. An expired session is refreshed once.
func (s *Salesforce) do(ctx context.Context, method, path string, fields map[string]interface{}, out interface{}) error {
	body, err := json.Marshal(dropEmpty(fields))
	if err != nil {
		return fmt.Errorf("error encoding request: %v", err)
	}

	for attempt := 0; attempt < 2; attempt++ {
		sess, err := s.currentSession(ctx)
		if err != nil {
			return err
		}

		endpoint := fmt.Sprintf("%s/services/data/v%s%s", sess.InstanceURL, salesforceAPIVersion, path)
		req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("error creating request: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+sess.ID)
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.client.Do(req)
		if err != nil {
			return fmt.Errorf("error making request: %w", err)
		}
		raw, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusUnauthorized && attempt == 0 {
			s.dropSession(sess)
			continue
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			apiErr := &APIError{Provider: s.Name(), Status: resp.StatusCode, Message: string(raw)}
			var errs []sfError
			if json.Unmarshal(raw, &errs) == nil && len(errs) > 0 {
				apiErr.Message = errs[0].ErrorCode + ": " + errs[0].Message
			}
			return apiErr
		}

		if out == nil || len(raw) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("error decoding response: %v", err)
		}
		return nil
	}
	return &APIError{Provider: s.Name(), Status: http.StatusUnauthorized, Message: "session rejected after re-login"}
}
