package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/isaac-evs/catalog-service/internal/service"
	"github.com/isaac-evs/catalog-service/pkg/httputil"
	"github.com/isaac-evs/catalog-service/pkg/pagination"
	"github.com/isaac-evs/catalog-service/pkg/validator"
)

// AddressHandler handles HTTP requests for address endpoints.
type AddressHandler struct {
	service *service.AddressService
	logger  *slog.Logger
}

// NewAddressHandler creates a new address HTTP handler.
func NewAddressHandler(svc *service.AddressService, logger *slog.Logger) *AddressHandler {
	return &AddressHandler{service: svc, logger: logger}
}

// --- Request DTOs ---

// CreateAddressRequest is the JSON request body for creating an address.
type CreateAddressRequest struct {
	CustomerID string `json:"customer_id" validate:"required,uuid"`
	Street     string `json:"street" validate:"required,min=1,max=500"`
	City       string `json:"city" validate:"required,min=1,max=100"`
	State      string `json:"state" validate:"required,min=1,max=100"`
	PostalCode string `json:"postal_code" validate:"required,min=1,max=20"`
	Country    string `json:"country" validate:"required,min=2,max=100"`
	IsDefault  bool   `json:"is_default"`
}

// UpdateAddressRequest is the JSON request body for partially updating an address.
type UpdateAddressRequest struct {
	Street     *string `json:"street" validate:"omitempty,min=1,max=500"`
	City       *string `json:"city" validate:"omitempty,min=1,max=100"`
	State      *string `json:"state" validate:"omitempty,min=1,max=100"`
	PostalCode *string `json:"postal_code" validate:"omitempty,min=1,max=20"`
	Country    *string `json:"country" validate:"omitempty,min=2,max=100"`
	IsDefault  *bool   `json:"is_default"`
}

// --- Handlers ---

// List handles GET /addresses
func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)

	addresses, err := h.service.List(r.Context(), params)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: addresses})
}

// Get handles GET /addresses/{id}
func (h *AddressHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	address, err := h.service.Get(r.Context(), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: address})
}

// ListByCustomer handles GET /addresses/customer/{customerId}
func (h *AddressHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, ok := httputil.ParseUUID(w, chi.URLParam(r, "customerId"))
	if !ok {
		return
	}

	addresses, err := h.service.ListByCustomer(r.Context(), customerID.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: addresses})
}

// Create handles POST /addresses
func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	address, err := h.service.Create(r.Context(), service.CreateAddressInput{
		CustomerID: req.CustomerID,
		Street:     req.Street,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		IsDefault:  req.IsDefault,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: address})
}

// Update handles PUT /addresses/{id}
func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req UpdateAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	address, err := h.service.Update(r.Context(), id.String(), service.UpdateAddressInput{
		Street:     req.Street,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		IsDefault:  req.IsDefault,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: address})
}

// Delete handles DELETE /addresses/{id}
func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: map[string]string{"message": "Address deleted successfully"},
	})
}
