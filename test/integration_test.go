package test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoint(t *testing.T) {
	server := NewTestServer(t)

	resp, err := http.Get(server.URL() + "/healthz")
	require.NoError(t, err)

	var health struct {
		Status string `json:"status"`
	}
	DecodeBody(t, resp, &health)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", health.Status)
}

func TestMetricsEndpoint(t *testing.T) {
	server := NewTestServer(t)

	resp, err := http.Get(server.URL() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGuardRejectsMissingAndInvalidTokens(t *testing.T) {
	server := NewTestServer(t)

	resp := server.DoJSON(t, http.MethodGet, "/api/v1/leads/getall", "", nil)
	var env Envelope
	DecodeBody(t, resp, &env)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "No Token Found", env.Message)

	resp = server.DoJSON(t, http.MethodGet, "/api/v1/leads/getall", "not-a-jwt", nil)
	DecodeBody(t, resp, &env)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid Token", env.Message)
}

// TestLeadLifecycle walks the main dashboard flow: register, log in,
// create a lead, log an interaction against it, and fetch the lead back
// with its interactions and handler resolved.
func TestLeadLifecycle(t *testing.T) {
	server := NewTestServer(t)

	agentID, token := server.RegisterAndLogin(t, "Asha Mehta", "asha@example.com")

	resp := server.DoJSON(t, http.MethodPost, "/api/v1/leads/add", token, map[string]string{
		"name":   "Sam Buyer",
		"email":  "sam@example.com",
		"phone":  "5559876543",
		"source": "Website",
	})
	var env Envelope
	DecodeBody(t, resp, &env)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Lead created successfully", env.Message)

	var lead struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &lead))
	assert.Equal(t, "New", lead.Status)

	resp = server.DoJSON(t, http.MethodPost, "/api/v1/interaction/add", token, map[string]string{
		"leadId":          lead.ID,
		"notes":           "Called to discuss budget",
		"interactionType": "Call",
		"handledBy":       agentID,
	})
	DecodeBody(t, resp, &env)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var interaction struct {
		ID        string `json:"id"`
		HandledBy struct {
			Name  string   `json:"name"`
			Email string   `json:"email"`
			Roles []string `json:"roles"`
		} `json:"handledBy"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &interaction))
	assert.Equal(t, "Asha Mehta", interaction.HandledBy.Name)
	assert.Equal(t, []string{"agent"}, interaction.HandledBy.Roles)

	resp = server.DoJSON(t, http.MethodGet, "/api/v1/leads/getbyid/"+lead.ID, token, nil)
	DecodeBody(t, resp, &env)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched struct {
		InteractionIDs []string `json:"interactionIds"`
		Interactions   []struct {
			ID        string `json:"id"`
			Notes     string `json:"notes"`
			HandledBy struct {
				Name  string `json:"name"`
				Email string `json:"email"`
			} `json:"handledBy"`
		} `json:"interactions"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	require.Len(t, fetched.Interactions, 1)
	assert.Equal(t, []string{interaction.ID}, fetched.InteractionIDs)
	assert.Equal(t, "Called to discuss budget", fetched.Interactions[0].Notes)
	assert.Equal(t, "asha@example.com", fetched.Interactions[0].HandledBy.Email)
}

func TestRefreshAndLogoutFlow(t *testing.T) {
	server := NewTestServer(t)

	server.RegisterAndLogin(t, "Ravi Kumar", "ravi@example.com")

	resp := server.DoJSON(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "ravi@example.com",
		"password": "secret123",
	})
	var login struct {
		RefreshToken string `json:"refreshToken"`
	}
	DecodeBody(t, resp, &login)
	require.NotEmpty(t, login.RefreshToken)

	// A live refresh token yields a new access token
	resp = server.DoJSON(t, http.MethodGet, "/api/v1/auth/refresh/"+login.RefreshToken, "", nil)
	var refreshed struct {
		Success     bool   `json:"success"`
		AccessToken string `json:"accessToken"`
	}
	DecodeBody(t, resp, &refreshed)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, refreshed.AccessToken)

	// Logout revokes the token; refreshing afterwards fails
	resp = server.DoJSON(t, http.MethodPost, "/api/v1/auth/logout", "", map[string]string{
		"refreshToken": login.RefreshToken,
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = server.DoJSON(t, http.MethodGet, "/api/v1/auth/refresh/"+login.RefreshToken, "", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Logout stays idempotent
	resp = server.DoJSON(t, http.MethodPost, "/api/v1/auth/logout", "", map[string]string{
		"refreshToken": login.RefreshToken,
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStatsEndpoint(t *testing.T) {
	server := NewTestServer(t)

	_, token := server.RegisterAndLogin(t, "Asha Mehta", "asha@example.com")

	resp := server.DoJSON(t, http.MethodPost, "/api/v1/leads/add", token, map[string]string{
		"name":   "Sam Buyer",
		"email":  "sam@example.com",
		"phone":  "5559876543",
		"source": "Website",
		"status": "Contacted",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = server.DoJSON(t, http.MethodGet, "/api/v1/stats", token, nil)
	var env Envelope
	DecodeBody(t, resp, &env)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats struct {
		Leads struct {
			Total    int            `json:"total"`
			ByStatus map[string]int `json:"byStatus"`
		} `json:"leads"`
		Interactions int `json:"interactions"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 1, stats.Leads.Total)
	assert.Equal(t, 1, stats.Leads.ByStatus["Contacted"])
	assert.Equal(t, 0, stats.Interactions)
}
