package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/huzi29/crmsystemdesign/internal/domain"
	"github.com/huzi29/crmsystemdesign/internal/observability/metrics"
	"github.com/huzi29/crmsystemdesign/internal/service"
)

// InteractionHandler exposes interaction CRUD
type InteractionHandler struct {
	interactionService *service.InteractionService
	logger             *slog.Logger
}

// NewInteractionHandler creates a new interaction handler
func NewInteractionHandler(interactionService *service.InteractionService, logger *slog.Logger) *InteractionHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &InteractionHandler{
		interactionService: interactionService,
		logger:             logger,
	}
}

// Create handles POST /api/v1/interaction/add. Creation also appends the
// new id to the parent lead's interaction list.
func (h *InteractionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CreateInteractionInput
	if !decodeBody(w, r, &in) {
		return
	}

	interaction, err := h.interactionService.Create(r.Context(), in)
	metrics.ObserveEntityOperation("interaction", "create", err)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respond(w, http.StatusCreated, "Interaction created successfully", interaction)
}

// GetAll handles GET /api/v1/interaction/getall
func (h *InteractionHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	interactions, err := h.interactionService.GetAll(r.Context())
	metrics.ObserveEntityOperation("interaction", "getall", err)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respond(w, http.StatusOK, "Interactions fetched successfully", interactions)
}

// GetByID handles GET /api/v1/interaction/getbyid/{id}
func (h *InteractionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	interaction, err := h.interactionService.GetByID(r.Context(), chi.URLParam(r, "id"))
	metrics.ObserveEntityOperation("interaction", "getbyid", err)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respond(w, http.StatusOK, "Interaction fetched successfully", interaction)
}

// Update handles PUT /api/v1/interaction/update/{id}
func (h *InteractionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in domain.UpdateInteractionInput
	if !decodeBody(w, r, &in) {
		return
	}

	interaction, err := h.interactionService.Update(r.Context(), chi.URLParam(r, "id"), in)
	metrics.ObserveEntityOperation("interaction", "update", err)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respond(w, http.StatusOK, "Interaction updated successfully", interaction)
}

// Delete handles DELETE /api/v1/interaction/delete/{id}
func (h *InteractionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.interactionService.Delete(r.Context(), chi.URLParam(r, "id"))
	metrics.ObserveEntityOperation("interaction", "delete", err)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respond(w, http.StatusOK, "Interaction deleted successfully", nil)
}
