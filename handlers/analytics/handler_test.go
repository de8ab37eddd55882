package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"lead-capture-backend/models"
	"lead-capture-backend/scoring"
	"lead-capture-backend/store"
	"lead-capture-backend/testutils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()
	os.Exit(m.Run())
}

func ptr[T any](v T) *T { return &v }

func setup(t *testing.T) (*gin.Engine, *store.Store) {
	conn := testutils.SetupSQLiteDB(t)
	s := store.New(conn, scoring.DefaultTable())
	r := testutils.SetupTestRouter()
	r.GET("/api/analytics/leads", New(s).GetLeadAnalytics)
	return r, s
}

func get(r *gin.Engine, path string) (*httptest.ResponseRecorder, testutils.Envelope) {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	var env testutils.Envelope
	json.Unmarshal(resp.Body.Bytes(), &env)
	return resp, env
}

func TestGetLeadAnalytics(t *testing.T) {
	r, s := setup(t)
	ctx := context.Background()

	hot, _, err := s.Upsert(ctx, models.LeadCreate{
		FirstName: "A", LastName: "B", Email: "hot@x.io", Company: "Grid",
		Industry: ptr(models.IndustryDefense), CompanySize: ptr(models.CompanySizeEnterprise),
		BudgetRange: ptr(models.BudgetOver1m), ProjectTimeline: ptr(models.TimelineImmediate),
	})
	require.NoError(t, err)
	_, _, err = s.Upsert(ctx, models.LeadCreate{FirstName: "C", LastName: "D", Email: "cold@x.io", Company: "Tiny"})
	require.NoError(t, err)
	_, _, err = s.CreateDemoRequest(ctx, hot.ID, models.DemoRequestCreate{DemoType: models.DemoTypeVirtual})
	require.NoError(t, err)

	resp, env := get(r, "/api/analytics/leads")

	require.Equal(t, http.StatusOK, resp.Code)
	var stats store.LeadAnalytics
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 30, stats.PeriodDays)
	assert.Equal(t, int64(2), stats.TotalLeads)
	assert.Equal(t, int64(2), stats.NewLeads)
	assert.Equal(t, int64(1), stats.DemoRequests)
	assert.Equal(t, int64(1), stats.IndustryDistribution["defense"])
	assert.Equal(t, int64(1), stats.IndustryDistribution["unknown"])
	assert.Equal(t, int64(2), stats.StatusDistribution["new"])
}

func TestGetLeadAnalytics_InvalidDays(t *testing.T) {
	r, _ := setup(t)

	for _, q := range []string{"0", "-3", "abc", "3651"} {
		resp, env := get(r, "/api/analytics/leads?days="+q)
		assert.Equal(t, http.StatusBadRequest, resp.Code, q)
		assert.Contains(t, env.Errors, "days")
	}

	resp, env := get(r, "/api/analytics/leads?days=7")
	require.Equal(t, http.StatusOK, resp.Code)
	var stats store.LeadAnalytics
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 7, stats.PeriodDays)
}
