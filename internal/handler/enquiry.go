package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/huzi29/crmsystemdesign/internal/domain"
	"github.com/huzi29/crmsystemdesign/internal/observability/metrics"
	"github.com/huzi29/crmsystemdesign/internal/service"
)

// EnquiryHandler exposes enquiry CRUD
type EnquiryHandler struct {
	enquiryService *service.EnquiryService
	logger         *slog.Logger
}

// NewEnquiryHandler creates a new enquiry handler
func NewEnquiryHandler(enquiryService *service.EnquiryService, logger *slog.Logger) *EnquiryHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &EnquiryHandler{
		enquiryService: enquiryService,
		logger:         logger,
	}
}

// Create handles POST /api/v1/enquiry/add
func (h *EnquiryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CreateEnquiryInput
	if !decodeBody(w, r, &in) {
		return
	}

	enquiry, err := h.enquiryService.Create(r.Context(), in)
	metrics.ObserveEntityOperation("enquiry", "create", err)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respond(w, http.StatusCreated, "Enquiry created successfully", enquiry)
}

// GetAll handles GET /api/v1/enquiry/getall
func (h *EnquiryHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	enquiries, err := h.enquiryService.GetAll(r.Context())
	metrics.ObserveEntityOperation("enquiry", "getall", err)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respond(w, http.StatusOK, "Enquiries fetched successfully", enquiries)
}

// GetByID handles GET /api/v1/enquiry/getbyid/{id}
func (h *EnquiryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	enquiry, err := h.enquiryService.GetByID(r.Context(), chi.URLParam(r, "id"))
	metrics.ObserveEntityOperation("enquiry", "getbyid", err)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respond(w, http.StatusOK, "Enquiry fetched successfully", enquiry)
}

// Update handles PUT /api/v1/enquiry/update/{id}
func (h *EnquiryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in domain.UpdateEnquiryInput
	if !decodeBody(w, r, &in) {
		return
	}

	enquiry, err := h.enquiryService.Update(r.Context(), chi.URLParam(r, "id"), in)
	metrics.ObserveEntityOperation("enquiry", "update", err)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respond(w, http.StatusOK, "Enquiry updated successfully", enquiry)
}

// Delete handles DELETE /api/v1/enquiry/delete/{id}
func (h *EnquiryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.enquiryService.Delete(r.Context(), chi.URLParam(r, "id"))
	metrics.ObserveEntityOperation("enquiry", "delete", err)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respond(w, http.StatusOK, "Enquiry deleted successfully", nil)
}
