package leadsapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jordanlanch/leadmanager/pkg/domain"
	"github.com/jordanlanch/leadmanager/pkg/metrics"
	"github.com/jordanlanch/leadmanager/pkg/models"
	"github.com/jordanlanch/leadmanager/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestListLeads_SendsQueryAndToken(t *testing.T) {
	var gotQuery map[string][]string
	var gotAuth string
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/leads", r.URL.Path)
		gotQuery = r.URL.Query()
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, models.LeadListResponse{
			Leads:      []models.Lead{{ID: "1", Name: "Jane"}},
			TotalLeads: 47,
		})
	})

	client := New(srv.URL+"/api/", session.Static("tok"))
	resp, err := client.ListLeads(context.Background(), models.LeadListRequest{Page: 2, Limit: 10, Status: models.StatusQualified})

	require.NoError(t, err)
	assert.Equal(t, 47, resp.TotalLeads)
	assert.Len(t, resp.Leads, 1)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, []string{"2"}, gotQuery["page"])
	assert.Equal(t, []string{"Qualified"}, gotQuery["status"])
	assert.NotContains(t, gotQuery, "search")
	assert.NotContains(t, gotQuery, "source")
}

func TestListLeads_RejectsInvalidRequest(t *testing.T) {
	called := false
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	client := New(srv.URL, session.Static("tok"))
	_, err := client.ListLeads(context.Background(), models.LeadListRequest{Page: 0, Limit: 10})

	assert.True(t, domain.IsValidation(err))
	assert.False(t, called)
}

func TestListLeads_MissingCredential(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request should not be sent without a token")
	})

	client := New(srv.URL, session.Static(""))
	_, err := client.ListLeads(context.Background(), models.LeadListRequest{Page: 1, Limit: 10})

	assert.True(t, domain.IsUnauthorized(err))
}

func TestAPIError_Mapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   any
		check  func(error) bool
		msg    string
	}{
		{"Unauthorized", http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized", Message: "Invalid token"}, domain.IsUnauthorized, "Invalid token"},
		{"Not found", http.StatusNotFound, map[string]string{"message": "Lead not found"}, domain.IsNotFound, "Lead not found"},
		{"Validation", http.StatusBadRequest, models.ErrorResponse{Error: "validation_error"}, domain.IsValidation, "validation_error"},
		{"Server error", http.StatusInternalServerError, models.ErrorResponse{Error: "internal_error"}, func(error) bool { return true }, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})

			_, err := New(srv.URL, session.Static("tok")).GetLead(context.Background(), "abc")

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.msg, apiErr.Message)
			assert.True(t, tt.check(err))
		})
	}
}

func TestGetLead(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/leads/abc%2F1", r.URL.EscapedPath())
		writeJSON(w, http.StatusOK, models.Lead{ID: "abc/1", Name: "Jane", Status: models.StatusProposal})
	})

	client := New(srv.URL, session.Static("tok"))
	lead, err := client.GetLead(context.Background(), "abc/1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusProposal, lead.Status)

	_, err = client.GetLead(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyID)
}

func TestSeedLeads(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/leads/seed", r.URL.Path)
		writeJSON(w, http.StatusOK, models.SeedResponse{Success: true, Message: "Seeded 50 leads", Count: 50})
	})

	resp, err := New(srv.URL, session.Static("tok")).SeedLeads(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 50, resp.Count)
}

func TestGetAnalytics_EnvelopeAndBare(t *testing.T) {
	analytics := models.Analytics{
		TotalLeads:     100,
		ConvertedLeads: 20,
		ConversionRate: 20,
		TotalValue:     125000,
		LeadsByStage:   []models.GroupCount{{ID: "New", Count: 30}},
	}

	tests := []struct {
		name string
		body any
	}{
		{"Envelope", models.AnalyticsResponse{Success: true, Data: &analytics}},
		{"Bare", analytics},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, tt.body)
			})

			got, err := New(srv.URL, session.Static("tok")).GetAnalytics(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 100, got.TotalLeads)
			assert.Equal(t, 125000.0, got.TotalValue)
			assert.Equal(t, []models.GroupCount{{ID: "New", Count: 30}}, got.LeadsByStage)
		})
	}
}

func TestCreateAndUpdateLead(t *testing.T) {
	var got models.LeadInput
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		status := http.StatusCreated
		if r.Method == http.MethodPut {
			status = http.StatusOK
		}
		writeJSON(w, status, models.Lead{ID: "l1", Name: got.Name, Status: got.Status})
	})
	client := New(srv.URL, session.Static("tok"))

	input := models.NewLeadInput()
	input.Name = "Jane Doe"
	input.Email = "jane@example.com"
	input.Phone = "+14155550100"

	lead, err := client.CreateLead(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "l1", lead.ID)
	assert.Equal(t, models.SourceWebsite, got.Source)

	input.Status = models.StatusContacted
	lead, err = client.UpdateLead(context.Background(), "l1", input)
	require.NoError(t, err)
	assert.Equal(t, models.StatusContacted, lead.Status)

	_, err = client.CreateLead(context.Background(), models.LeadInput{Name: "X"})
	assert.True(t, domain.IsValidation(err))
}

func TestLoginAndRegister_SendNoToken(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, models.AuthResponse{ID: "u1", Name: "Admin", Email: "admin@example.com", Token: "jwt"})
	})
	client := New(srv.URL, session.Static(""))

	resp, err := client.Login(context.Background(), models.LoginRequest{Email: "admin@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "jwt", resp.Token)
	assert.Equal(t, models.User{ID: "u1", Name: "Admin", Email: "admin@example.com"}, resp.User())

	_, err = client.Register(context.Background(), models.RegisterRequest{Name: "New", Email: "new@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = client.Login(context.Background(), models.LoginRequest{Email: "not-an-email"})
	assert.True(t, domain.IsValidation(err))
}

func TestTransportError_RecordsMetrics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	m := metrics.NewClient(prometheus.NewRegistry())
	client := New(srv.URL, session.Static("tok"), WithMetrics(m), WithTimeout(time.Second))

	_, err := client.SeedLeads(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "transport failures are not API errors")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.APIRequestsTotal.WithLabelValues("seed_leads", "error")))
}

func TestEmptyBaseURL(t *testing.T) {
	_, err := New("", session.Static("tok")).SeedLeads(context.Background())
	assert.ErrorIs(t, err, ErrEmptyBaseURL)
}
