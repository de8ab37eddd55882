package crm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"lead-capture-backend/config"
	"lead-capture-backend/models"
	"lead-capture-backend/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()
	os.Exit(m.Run())
}

func ptr[T any](v T) *T { return &v }

var fixedNow = func() time.Time { return time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC) }

func sampleLead() models.Lead {
	return models.Lead{
		ID:              "lead-1",
		FirstName:       "Jean",
		LastName:        "Dupont",
		Email:           "jean@example.com",
		Company:         "Grid Energy",
		Industry:        ptr(models.IndustryPowerUtilities),
		BudgetRange:     ptr(models.Budget500kTo1m),
		ProjectTimeline: ptr(models.TimelineImmediate),
		LeadScore:       34,
		Status:          models.LeadStatusNew,
		Source:          "website",
	}
}

func TestSelect_Precedence(t *testing.T) {
	both := config.Config{
		HubSpot:    config.HubSpotConfig{AccessToken: "tok"},
		Salesforce: config.SalesforceConfig{Username: "sf"},
	}
	assert.Equal(t, "hubspot", Select(both).Name())

	sfOnly := config.Config{Salesforce: config.SalesforceConfig{Username: "sf"}}
	assert.Equal(t, "salesforce", Select(sfOnly).Name())

	assert.Nil(t, Select(config.Config{}))
}

func TestEstimates(t *testing.T) {
	assert.Equal(t, 50000, DealAmount(ptr(models.BudgetUnder100k)))
	assert.Equal(t, 300000, DealAmount(ptr(models.Budget100kTo500k)))
	assert.Equal(t, 750000, DealAmount(ptr(models.Budget500kTo1m)))
	assert.Equal(t, 1500000, DealAmount(ptr(models.BudgetOver1m)))
	assert.Equal(t, 100000, DealAmount(nil))

	now := fixedNow()
	assert.Equal(t, now.AddDate(0, 0, 30), CloseDate(ptr(models.TimelineImmediate), now))
	assert.Equal(t, now.AddDate(0, 0, 90), CloseDate(ptr(models.TimelineShortTerm), now))
	assert.Equal(t, now.AddDate(0, 0, 180), CloseDate(ptr(models.TimelineLongTerm), now))
	assert.Equal(t, now.AddDate(0, 0, 90), CloseDate(nil, now))

	lead := sampleLead()
	assert.Equal(t, "Grid Energy - Robotics Solution", DealName(lead))
	lead.ApplicationArea = ptr("substation inspection")
	assert.Equal(t, "Grid Energy - substation inspection", DealName(lead))
}

func TestDropEmpty(t *testing.T) {
	var missing *string
	got := dropEmpty(map[string]interface{}{
		"keep":    "x",
		"empty":   "",
		"nil":     nil,
		"nilPtr":  missing,
		"ptr":     ptr("y"),
		"zeroPtr": ptr(""),
		"number":  0,
	})
	assert.Equal(t, map[string]interface{}{"keep": "x", "ptr": "y", "number": 0}, got)
}

type recordedRequest struct {
	Method string
	Path   string
	Auth   string
	Body   map[string]map[string]interface{}
}

func hubspotServer(t *testing.T, status int, response string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var reqs []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization")}
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &rec.Body))
		reqs = append(reqs, rec)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return srv, &reqs
}

func TestHubSpot_CreateContactDropsEmptyProperties(t *testing.T) {
	srv, reqs := hubspotServer(t, http.StatusCreated, `{"id":"501","properties":{}}`)
	h := NewHubSpot(config.HubSpotConfig{AccessToken: "pat-123", BaseURL: srv.URL}, srv.Client())

	id, err := h.CreateContact(context.Background(), sampleLead())

	require.NoError(t, err)
	assert.Equal(t, "501", id)
	require.Len(t, *reqs, 1)
	got := (*reqs)[0]
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/crm/v3/objects/contacts", got.Path)
	assert.Equal(t, "Bearer pat-123", got.Auth)

	props := got.Body["properties"]
	assert.Equal(t, "jean@example.com", props["email"])
	assert.Equal(t, "power_utilities", props["industry"])
	assert.Equal(t, "34", props["lead_score"])
	assert.Equal(t, "NEW", props["hs_lead_status"])
	for _, absent := range []string{"phone", "jobtitle", "website", "city", "company_size", "requirements", "utm_source"} {
		assert.NotContains(t, props, absent)
	}
}

func TestHubSpot_UpdateContactAndDeal(t *testing.T) {
	srv, reqs := hubspotServer(t, http.StatusOK, `{"id":"900"}`)
	h := NewHubSpot(config.HubSpotConfig{AccessToken: "pat-123", BaseURL: srv.URL + "/"}, srv.Client())
	h.now = fixedNow

	lead := sampleLead()
	lead.Status = models.LeadStatusDemoScheduled
	require.NoError(t, h.UpdateContact(context.Background(), "501", lead))

	dealID, err := h.CreateDeal(context.Background(), lead, &models.DemoRequest{DemoType: models.DemoTypeOnsite})
	require.NoError(t, err)
	assert.Equal(t, "900", dealID)

	require.Len(t, *reqs, 2)
	update := (*reqs)[0]
	assert.Equal(t, http.MethodPatch, update.Method)
	assert.Equal(t, "/crm/v3/objects/contacts/501", update.Path)
	assert.Equal(t, "DEMO_SCHEDULED", update.Body["properties"]["hs_lead_status"])

	deal := (*reqs)[1].Body["properties"]
	assert.Equal(t, "/crm/v3/objects/deals", (*reqs)[1].Path)
	assert.Equal(t, "Grid Energy - Robotics Solution", deal["dealname"])
	assert.Equal(t, "appointmentscheduled", deal["dealstage"])
	assert.Equal(t, "750000", deal["amount"])
	assert.Equal(t, "2024-02-09", deal["closedate"])
	assert.NotContains(t, deal, "company_size")
}

func TestHubSpot_ErrorStatus(t *testing.T) {
	srv, _ := hubspotServer(t, http.StatusConflict, `{"status":"error","message":"Contact already exists","category":"CONFLICT"}`)
	h := NewHubSpot(config.HubSpotConfig{AccessToken: "pat-123", BaseURL: srv.URL}, srv.Client())

	_, err := h.CreateContact(context.Background(), sampleLead())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "Contact already exists", apiErr.Message)

	_, err = NewHubSpot(config.HubSpotConfig{}, nil).CreateContact(context.Background(), sampleLead())
	assert.ErrorIs(t, err, errNotConfigured)
}

const loginOK = `<?xml version="1.0" encoding="UTF-8"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">
<soapenv:Body><loginResponse><result>
<serverUrl>%s/services/Soap/c/58.0/00D000000000001</serverUrl>
<sessionId>SESSION-%d</sessionId>
</result></loginResponse></soapenv:Body></soapenv:Envelope>`

func salesforceServer(t *testing.T, rejectFirstREST bool) (*httptest.Server, *int32, *[]string) {
	t.Helper()
	var logins int32
	var rejected int32
	var calls []string
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/services/Soap/") {
			n := atomic.AddInt32(&logins, 1)
			raw, _ := io.ReadAll(r.Body)
			assert.Contains(t, string(raw), "<urn:password>p&amp;sswordTOKEN</urn:password>")
			assert.Equal(t, "login", r.Header.Get("SOAPAction"))
			w.Header().Set("Content-Type", "text/xml")
			_, _ = w.Write([]byte(strings.Replace(strings.Replace(loginOK, "%s", srv.URL, 1), "%d", string(rune('0'+n)), 1)))
			return
		}
		calls = append(calls, r.Method+" "+r.URL.Path+" "+r.Header.Get("Authorization"))
		if rejectFirstREST && atomic.CompareAndSwapInt32(&rejected, 0, 1) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`[{"message":"Session expired or invalid","errorCode":"INVALID_SESSION_ID"}]`))
			return
		}
		if r.Method == http.MethodPatch {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"00Q000000000001","success":true,"errors":[]}`))
	}))
	t.Cleanup(srv.Close)
	return srv, &logins, &calls
}

func newTestSalesforce(srv *httptest.Server) *Salesforce {
	sf := NewSalesforce(config.SalesforceConfig{
		Username:      "ops@chiral.example",
		Password:      "p&ssword",
		SecurityToken: "TOKEN",
	}, srv.Client())
	sf.loginURL = srv.URL + "/services/Soap/c/58.0"
	sf.now = fixedNow
	return sf
}

func TestSalesforce_LogsInOncePerSession(t *testing.T) {
	srv, logins, calls := salesforceServer(t, false)
	sf := newTestSalesforce(srv)
	ctx := context.Background()

	id, err := sf.CreateContact(ctx, sampleLead())
	require.NoError(t, err)
	assert.Equal(t, "00Q000000000001", id)

	require.NoError(t, sf.UpdateContact(ctx, id, sampleLead()))
	_, err = sf.CreateDeal(ctx, sampleLead(), nil)
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(logins))
	assert.Equal(t, []string{
		"POST /services/data/v58.0/sobjects/Lead/ Bearer SESSION-1",
		"PATCH /services/data/v58.0/sobjects/Lead/00Q000000000001 Bearer SESSION-1",
		"POST /services/data/v58.0/sobjects/Opportunity/ Bearer SESSION-1",
	}, *calls)
}

func TestSalesforce_RelogsInOnExpiredSession(t *testing.T) {
	srv, logins, calls := salesforceServer(t, true)
	sf := newTestSalesforce(srv)

	_, err := sf.CreateContact(context.Background(), sampleLead())

	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(logins))
	require.Len(t, *calls, 2)
	assert.True(t, strings.HasSuffix((*calls)[1], "Bearer SESSION-2"))
}

func TestSalesforce_LoginFault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<?xml version="1.0"?><soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/"><soapenv:Body><soapenv:Fault><faultcode>INVALID_LOGIN</faultcode><faultstring>INVALID_LOGIN: Invalid username, password, security token</faultstring></soapenv:Fault></soapenv:Body></soapenv:Envelope>`))
	}))
	defer srv.Close()
	sf := newTestSalesforce(srv)

	_, err := sf.CreateContact(context.Background(), sampleLead())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Contains(t, apiErr.Message, "INVALID_LOGIN")

	_, err = NewSalesforce(config.SalesforceConfig{Username: "only"}, nil).CreateContact(context.Background(), sampleLead())
	assert.ErrorIs(t, err, errNotConfigured)
}

type memContactStore struct {
	crmIDs     map[string]string
	activities []*models.LeadActivity
	err        error
}

func (m *memContactStore) SetCRMContactID(ctx context.Context, id, crmID string) error {
	if m.err != nil {
		return m.err
	}
	if m.crmIDs == nil {
		m.crmIDs = map[string]string{}
	}
	m.crmIDs[id] = crmID
	return nil
}

func (m *memContactStore) LogActivity(ctx context.Context, a *models.LeadActivity) error {
	m.activities = append(m.activities, a)
	return nil
}

func TestSyncer_CreateThenUpdate(t *testing.T) {
	fake := &testutils.FakeCRM{NextID: "hs-1"}
	store := &memContactStore{}
	s := NewSyncer(fake, store)
	lead := sampleLead()

	assert.True(t, s.Sync(context.Background(), &lead))
	assert.Equal(t, "hs-1", store.crmIDs["lead-1"])
	require.NotNil(t, lead.CRMContactID)

	assert.True(t, s.Sync(context.Background(), &lead))
	assert.Equal(t, []string{"jean@example.com"}, fake.Created)
	assert.Equal(t, []string{"hs-1"}, fake.Updated)

	require.Len(t, store.activities, 2)
	assert.Equal(t, models.ActivityCRMSynced, store.activities[0].ActivityType)
}

func TestSyncer_FailuresReportFalse(t *testing.T) {
	fake := &testutils.FakeCRM{Err: errors.New("crm down")}
	store := &memContactStore{}
	s := NewSyncer(fake, store)
	lead := sampleLead()

	assert.False(t, s.Sync(context.Background(), &lead))
	assert.False(t, s.SyncDeal(context.Background(), &lead, nil))
	assert.Nil(t, lead.CRMContactID)
	assert.Empty(t, store.activities)
}

func TestSyncer_NoProvider(t *testing.T) {
	s := NewSyncer(nil, &memContactStore{})
	lead := sampleLead()

	assert.Equal(t, "none", s.ProviderName())
	assert.False(t, s.Sync(context.Background(), &lead))
	assert.False(t, s.SyncDeal(context.Background(), &lead, nil))
}

func TestSyncer_DealRecordsActivity(t *testing.T) {
	fake := &testutils.FakeCRM{}
	store := &memContactStore{}
	s := NewSyncer(fake, store)
	lead := sampleLead()

	assert.True(t, s.SyncDeal(context.Background(), &lead, &models.DemoRequest{}))
	assert.Equal(t, []string{"Grid Energy"}, fake.Deals)
	assert.Len(t, store.activities, 1)
}
