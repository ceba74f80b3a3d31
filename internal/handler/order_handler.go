package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"orders-service/internal/model"
	"orders-service/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service  service.OrderService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With().Str("handler", "order").Logger(),
	}
}

// RegisterRoutes mounts the order routes on the given router.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/orders", h.Create)
	r.Get("/orders", h.List)
	r.Get("/orders/{id}", h.GetByID)
	r.Patch("/orders/{id}/status", h.ChangeStatus)
}

// Create handles POST /api/orders requests.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateOrderRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			writeError(w, http.StatusBadRequest, model.ErrCodeValidation, validationErrors.Error(), h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal validation error", h.logger)
		return
	}

	order, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// List handles GET /api/orders requests with page, limit, and status
// query parameters.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	query := model.ListOrdersQuery{Page: 1, Limit: 10}

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "page must be a positive integer", h.logger)
			return
		}
		query.Page = page
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "limit must be a positive integer", h.logger)
			return
		}
		query.Limit = limit
	}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := model.OrderStatus(raw)
		if !status.Valid() {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidStatus,
				fmt.Sprintf("invalid status %q, possible values are %v", raw, model.OrderStatusValues), h.logger)
			return
		}
		query.Status = &status
	}

	page, err := h.service.FindAll(r.Context(), query)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}

	order, err := h.service.FindOne(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, model.ErrCodeOrderNotFound,
				fmt.Sprintf("order with id %s not found", id), h.logger)
			return
		}
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// ChangeStatus handles PATCH /api/orders/{id}/status requests.
func (h *OrderHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}

	var req model.ChangeOrderStatusRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if !req.Status.Valid() {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidStatus,
			fmt.Sprintf("invalid status %q, possible values are %v", req.Status, model.OrderStatusValues), h.logger)
		return
	}

	order, err := h.service.ChangeStatus(r.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, model.ErrCodeOrderNotFound,
				fmt.Sprintf("order with id %s not found", id), h.logger)
			return
		}
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// orderID parses the order id path parameter, writing a 400 on failure.
func (h *OrderHandler) orderID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid order ID format", h.logger)
		return uuid.Nil, false
	}
	return id, true
}
