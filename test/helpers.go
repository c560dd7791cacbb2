package test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/huzi29/crmsystemdesign/internal/handler"
	"github.com/huzi29/crmsystemdesign/internal/repository/memory"
	"github.com/huzi29/crmsystemdesign/internal/security/auth"
	"github.com/huzi29/crmsystemdesign/internal/security/middleware"
	"github.com/huzi29/crmsystemdesign/internal/service"
)

// TestServerHelper runs the full router over in-memory repositories so
// integration tests exercise real routing, middleware, and handlers
// without postgres or redis.
type TestServerHelper struct {
	Server *httptest.Server
	Logger *slog.Logger

	Users        *memory.UserRepo
	Tokens       *memory.RefreshTokenRepo
	Leads        *memory.LeadRepo
	Interactions *memory.InteractionRepo
	Enquiries    *memory.EnquiryRepo
	Bookings     *memory.BookingRepo
}

func NewTestServer(t *testing.T) *TestServerHelper {
	t.Helper()

	log := slog.Default()

	users := memory.NewUserRepo()
	tokens := memory.NewRefreshTokenRepo()
	leads := memory.NewLeadRepo()
	interactions := memory.NewInteractionRepo(leads)
	enquiries := memory.NewEnquiryRepo()
	bookings := memory.NewBookingRepo()
	stats := memory.NewStatsRepo(leads, enquiries, bookings, interactions)

	tokenManager := auth.NewTokenManager("test-access-secret", "test-refresh-secret", 0, 0, "")

	authService := service.NewAuthService(users, tokens, tokenManager, "test-pepper", log)
	leadService := service.NewLeadService(leads, interactions, enquiries, users, log)
	interactionService := service.NewInteractionService(interactions, leads, users, log)
	enquiryService := service.NewEnquiryService(enquiries, leads, log)
	bookingService := service.NewBookingService(bookings, leads, users, log)
	statsService := service.NewStatsService(stats, nil, log)

	router := handler.NewRouter(handler.RouterDeps{
		Auth:        handler.NewAuthHandler(authService, tokenManager, log),
		Lead:        handler.NewLeadHandler(leadService, log),
		Interaction: handler.NewInteractionHandler(interactionService, log),
		Enquiry:     handler.NewEnquiryHandler(enquiryService, log),
		Booking:     handler.NewBookingHandler(bookingService, log),
		Stats:       handler.NewStatsHandler(statsService, log),
		Health:      handler.NewHealthHandler(nil, nil, log),

		SessionGuard: middleware.SessionGuard(tokenManager, users, log),

		Logger: log,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestServerHelper{
		Server: server,
		Logger: log,

		Users:        users,
		Tokens:       tokens,
		Leads:        leads,
		Interactions: interactions,
		Enquiries:    enquiries,
		Bookings:     bookings,
	}
}

func (h *TestServerHelper) URL() string {
	return h.Server.URL
}

// DoJSON sends a request with an optional access token and JSON body.
func (h *TestServerHelper) DoJSON(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, h.Server.URL+path, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

// DecodeBody reads and decodes a JSON response body into dst.
func DecodeBody(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}

// Envelope mirrors the API response shape with the data left raw so
// each test can decode it into the expected type.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// RegisterAndLogin registers a user and returns its id plus a valid
// access token.
func (h *TestServerHelper) RegisterAndLogin(t *testing.T, name, email string) (string, string) {
	t.Helper()

	resp := h.DoJSON(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"name":     name,
		"email":    email,
		"password": "secret123",
		"roles":    []string{"agent"},
		"mobileNo": "5551230000",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register failed with status %d", resp.StatusCode)
	}
	var reg Envelope
	DecodeBody(t, resp, &reg)

	var user struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(reg.Data, &user); err != nil {
		t.Fatalf("failed to decode registered user: %v", err)
	}

	resp = h.DoJSON(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": "secret123",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed with status %d", resp.StatusCode)
	}

	var login struct {
		AccessToken string `json:"accessToken"`
	}
	DecodeBody(t, resp, &login)
	if login.AccessToken == "" {
		t.Fatal("login returned no access token")
	}

	return user.ID, login.AccessToken
}
