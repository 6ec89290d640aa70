package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/sabor-pdv/api/internal/database"
	"github.com/sabor-pdv/api/internal/middleware"
	"github.com/sabor-pdv/api/internal/service"
	"github.com/sabor-pdv/api/internal/ws"
	"github.com/shopspring/decimal"
)

// OrderServicer defines the service methods needed by order handlers.
// Satisfied by *service.DeliveryService; narrow interface for testability.
type OrderServicer interface {
	CreateOrder(ctx context.Context, req service.CreateOrderRequest) (*database.Order, error)
	UpdateStatus(ctx context.Context, storeID, orderID uuid.UUID, next database.OrderStatus, operatorName string) (*database.Order, error)
}

// OrderStore defines the database methods needed by order read handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type OrderStore interface {
	GetOrder(ctx context.Context, arg database.GetOrderParams) (database.Order, error)
	ListOrders(ctx context.Context, arg database.ListOrdersParams) ([]database.Order, error)
}

// Broadcaster pushes order events to connected store dashboards.
// Satisfied by *ws.Hub.
type Broadcaster interface {
	BroadcastToStore(storeID uuid.UUID, event ws.Event)
}

// OrderHandler handles delivery order endpoints.
type OrderHandler struct {
	svc   OrderServicer
	store OrderStore
	hub   Broadcaster
	loc   *time.Location
}

// NewOrderHandler creates a new OrderHandler. tz is the business
// timezone used to interpret date-range query params.
func NewOrderHandler(svc OrderServicer, store OrderStore, hub Broadcaster, tz string) *OrderHandler {
	return &OrderHandler{svc: svc, store: store, hub: hub, loc: businessLocation(tz)}
}

// RegisterRoutes registers delivery order endpoints on the given Chi router.
// Expected to be mounted inside a store-scoped subrouter: /stores/{sid}/orders
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}/status", h.UpdateStatus)
}

// --- Request / Response types ---

type createDeliveryOrderRequest struct {
	CustomerName    string `json:"customer_name"`
	CustomerPhone   string `json:"customer_phone"`
	DeliveryAddress string `json:"delivery_address"`
	Neighborhood    string `json:"neighborhood"`
	Channel         string `json:"channel"`
	PaymentMethod   string `json:"payment_method"`
	Notes           string `json:"notes"`
	DeliveryFee     string `json:"delivery_fee"`
	TotalAmount     string `json:"total_amount"`
}

type updateStatusRequest struct {
	Status       string `json:"status"`
	OperatorName string `json:"operator_name"`
}

type orderResponse struct {
	ID              uuid.UUID `json:"id"`
	StoreID         uuid.UUID `json:"store_id"`
	OrderNumber     string    `json:"order_number"`
	CustomerName    string    `json:"customer_name"`
	CustomerPhone   string    `json:"customer_phone"`
	DeliveryAddress string    `json:"delivery_address"`
	Neighborhood    *string   `json:"neighborhood"`
	Channel         string    `json:"channel"`
	PaymentMethod   string    `json:"payment_method"`
	Notes           *string   `json:"notes"`
	DeliveryFee     string    `json:"delivery_fee"`
	TotalAmount     string    `json:"total_amount"`
	Status          string    `json:"status"`
	CreatedBy       uuid.UUID `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toOrderResponse(o database.Order) orderResponse {
	resp := orderResponse{
		ID:              o.ID,
		StoreID:         o.StoreID,
		OrderNumber:     o.OrderNumber,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		DeliveryAddress: o.DeliveryAddress,
		Channel:         o.Channel,
		PaymentMethod:   o.PaymentMethod,
		DeliveryFee:     numericToString(o.DeliveryFee),
		TotalAmount:     numericToString(o.TotalAmount),
		Status:          string(o.Status),
		CreatedBy:       o.CreatedBy,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	if o.Neighborhood.Valid {
		resp.Neighborhood = &o.Neighborhood.String
	}
	if o.Notes.Valid {
		resp.Notes = &o.Notes.String
	}
	return resp
}

// numericToString formats a pgtype.Numeric as a 2-decimal money string.
func numericToString(n pgtype.Numeric) string {
	if !n.Valid {
		return "0.00"
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return "0.00"
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return "0.00"
	}
	return d.StringFixed(2)
}

// broadcast pushes an order event to the store's dashboard room.
// A nil hub means events are disabled (tests, CLI tools).
func (h *OrderHandler) broadcast(storeID uuid.UUID, eventType string, order database.Order) {
	if h.hub == nil {
		return
	}
	payload, err := json.Marshal(toOrderResponse(order))
	if err != nil {
		log.Printf("ERROR: marshal order event: %v", err)
		return
	}
	h.hub.BroadcastToStore(storeID, ws.Event{Type: eventType, Payload: payload})
}

func isValidOrderStatus(s database.OrderStatus) bool {
	switch s {
	case database.OrderStatusPENDING, database.OrderStatusCONFIRMED,
		database.OrderStatusOUTFORDELIVERY, database.OrderStatusDELIVERED,
		database.OrderStatusCANCELLED:
		return true
	}
	return false
}

// --- Handlers ---

// Create handles POST /stores/{sid}/orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	storeID, err := uuid.Parse(chi.URLParam(r, "sid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid store ID"})
		return
	}

	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	var req createDeliveryOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	order, err := h.svc.CreateOrder(r.Context(), service.CreateOrderRequest{
		StoreID:         storeID,
		CreatedBy:       claims.UserID,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		DeliveryAddress: req.DeliveryAddress,
		Neighborhood:    req.Neighborhood,
		Channel:         req.Channel,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
		DeliveryFee:     req.DeliveryFee,
		TotalAmount:     req.TotalAmount,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCustomer),
			errors.Is(err, service.ErrMissingAddress),
			errors.Is(err, service.ErrInvalidChannel),
			errors.Is(err, service.ErrInvalidTotal),
			errors.Is(err, service.ErrInvalidDeliveryFee):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("ERROR: create order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.broadcast(storeID, "order.created", *order)
	writeJSON(w, http.StatusCreated, toOrderResponse(*order))
}

// List handles GET /stores/{sid}/orders with optional status/date filters.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	storeID, err := uuid.Parse(chi.URLParam(r, "sid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid store ID"})
		return
	}

	params := database.ListOrdersParams{StoreID: storeID}

	if s := r.URL.Query().Get("status"); s != "" {
		status := database.OrderStatus(s)
		if !isValidOrderStatus(status) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
			return
		}
		params.Status = database.NullOrderStatus{OrderStatus: status, Valid: true}
	}

	if start, end, ok, err := parseOptionalDateRange(r, h.loc); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	} else if ok {
		params.StartDate = pgtype.Timestamptz{Time: start, Valid: true}
		params.EndDate = pgtype.Timestamptz{Time: end, Valid: true}
	}

	params.Limit, params.Offset = parsePagination(r)

	orders, err := h.store.ListOrders(r.Context(), params)
	if err != nil {
		log.Printf("ERROR: list orders: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toOrderResponse(o)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /stores/{sid}/orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	storeID, err := uuid.Parse(chi.URLParam(r, "sid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid store ID"})
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	order, err := h.store.GetOrder(r.Context(), database.GetOrderParams{
		ID:      orderID,
		StoreID: storeID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: get order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// UpdateStatus handles PATCH /stores/{sid}/orders/{id}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	storeID, err := uuid.Parse(chi.URLParam(r, "sid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid store ID"})
		return
	}

	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Status == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "status is required"})
		return
	}

	order, err := h.svc.UpdateStatus(r.Context(), storeID, orderID, database.OrderStatus(req.Status), req.OperatorName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		case errors.Is(err, service.ErrInvalidOrderStatus):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
			return
		case errors.Is(err, service.ErrInvalidTransition),
			errors.Is(err, service.ErrOrderAlreadyTerminal):
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("ERROR: update order status: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.broadcast(storeID, "order.updated", *order)
	writeJSON(w, http.StatusOK, toOrderResponse(*order))
}

// --- Shared query helpers ---

// parsePagination reads limit/offset query params with a default page
// of 20 and a hard cap of 100.
func parsePagination(r *http.Request) (limit, offset int32) {
	limit = 20
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = int32(v)
		}
	}
	if limit > 100 {
		limit = 100
	}
	if s := r.URL.Query().Get("offset"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			offset = int32(v)
		}
	}
	return limit, offset
}

// parseOptionalDateRange reads start_date/end_date if either is set.
// Returns ok=false when both are absent.
func parseOptionalDateRange(r *http.Request, loc *time.Location) (start, end time.Time, ok bool, err error) {
	if r.URL.Query().Get("start_date") == "" && r.URL.Query().Get("end_date") == "" {
		return time.Time{}, time.Time{}, false, nil
	}
	start, end, err = parseDateRange(r, loc)
	if err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	return start, end, true, nil
}
