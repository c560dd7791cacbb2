package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/huzi29/crmsystemdesign/internal/domain"
	"github.com/huzi29/crmsystemdesign/internal/observability/metrics"
	"github.com/huzi29/crmsystemdesign/internal/service"
)

// BookingHandler exposes booking CRUD
type BookingHandler struct {
	bookingService *service.BookingService
	logger         *slog.Logger
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *service.BookingService, logger *slog.Logger) *BookingHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &BookingHandler{
		bookingService: bookingService,
		logger:         logger,
	}
}

// Create handles POST /api/v1/booking/add
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CreateBookingInput
	if !decodeBody(w, r, &in) {
		return
	}

	booking, err := h.bookingService.Create(r.Context(), in)
	metrics.ObserveEntityOperation("booking", "create", err)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respond(w, http.StatusCreated, "Booking created successfully", booking)
}

// GetAll handles GET /api/v1/booking/getall
func (h *BookingHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookingService.GetAll(r.Context())
	metrics.ObserveEntityOperation("booking", "getall", err)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respond(w, http.StatusOK, "Bookings fetched successfully", bookings)
}

// GetByID handles GET /api/v1/booking/getbyid/{id}
func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	booking, err := h.bookingService.GetByID(r.Context(), chi.URLParam(r, "id"))
	metrics.ObserveEntityOperation("booking", "getbyid", err)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respond(w, http.StatusOK, "Booking fetched successfully", booking)
}

// Update handles PUT /api/v1/booking/update/{id}
func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in domain.UpdateBookingInput
	if !decodeBody(w, r, &in) {
		return
	}

	booking, err := h.bookingService.Update(r.Context(), chi.URLParam(r, "id"), in)
	metrics.ObserveEntityOperation("booking", "update", err)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respond(w, http.StatusOK, "Booking updated successfully", booking)
}

// Delete handles DELETE /api/v1/booking/delete/{id}
func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.bookingService.Delete(r.Context(), chi.URLParam(r, "id"))
	metrics.ObserveEntityOperation("booking", "delete", err)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respond(w, http.StatusOK, "Booking deleted successfully", nil)
}
