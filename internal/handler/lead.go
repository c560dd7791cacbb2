package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/huzi29/crmsystemdesign/internal/domain"
	"github.com/huzi29/crmsystemdesign/internal/observability/metrics"
	"github.com/huzi29/crmsystemdesign/internal/service"
)

// LeadHandler exposes lead CRUD
type LeadHandler struct {
	leadService *service.LeadService
	logger      *slog.Logger
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(leadService *service.LeadService, logger *slog.Logger) *LeadHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &LeadHandler{
		leadService: leadService,
		logger:      logger,
	}
}

// Create handles POST /api/v1/leads/add
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CreateLeadInput
	if !decodeBody(w, r, &in) {
		return
	}

	lead, err := h.leadService.Create(r.Context(), in)
	metrics.ObserveEntityOperation("lead", "create", err)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respond(w, http.StatusCreated, "Lead created successfully", lead)
}

// GetAll handles GET /api/v1/leads/getall
func (h *LeadHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	leads, err := h.leadService.GetAll(r.Context())
	metrics.ObserveEntityOperation("lead", "getall", err)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respond(w, http.StatusOK, "Leads fetched successfully", leads)
}

// GetByID handles GET /api/v1/leads/getbyid/{id}
func (h *LeadHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	lead, err := h.leadService.GetByID(r.Context(), chi.URLParam(r, "id"))
	metrics.ObserveEntityOperation("lead", "getbyid", err)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respond(w, http.StatusOK, "Lead fetched successfully", lead)
}

// Update handles PUT /api/v1/leads/update/{id}
func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in domain.UpdateLeadInput
	if !decodeBody(w, r, &in) {
		return
	}

	lead, err := h.leadService.Update(r.Context(), chi.URLParam(r, "id"), in)
	metrics.ObserveEntityOperation("lead", "update", err)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respond(w, http.StatusOK, "Lead updated successfully", lead)
}

// Delete handles DELETE /api/v1/leads/delete/{id}
func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.leadService.Delete(r.Context(), chi.URLParam(r, "id"))
	metrics.ObserveEntityOperation("lead", "delete", err)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respond(w, http.StatusOK, "Lead deleted successfully", nil)
}
