package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sabor-pdv/api/internal/database"
	"github.com/sabor-pdv/api/internal/middleware"
	"github.com/sabor-pdv/api/internal/reconcile"
	"github.com/sabor-pdv/api/internal/service"
	"github.com/shopspring/decimal"
)

// RegisterServicer defines the service methods needed by register handlers.
// Satisfied by *service.RegisterService; narrow interface for testability.
type RegisterServicer interface {
	OpenRegister(ctx context.Context, storeID, openedBy uuid.UUID, openingAmount decimal.Decimal) (*database.CashRegister, error)
	CloseRegister(ctx context.Context, storeID, registerID, closedBy uuid.UUID, closingAmount decimal.Decimal) (*service.CloseRegisterResult, error)
	AddManualEntry(ctx context.Context, req service.AddManualEntryRequest) (*database.CashEntry, error)
}

// RegisterStore defines the database methods needed by register read handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type RegisterStore interface {
	GetOpenRegister(ctx context.Context, storeID uuid.UUID) (database.CashRegister, error)
	GetCashRegister(ctx context.Context, arg database.GetCashRegisterParams) (database.CashRegister, error)
	ListCashEntriesByRegister(ctx context.Context, registerID uuid.UUID) ([]database.CashEntry, error)
}

// RegisterHandler handles cash register endpoints.
type RegisterHandler struct {
	svc   RegisterServicer
	store RegisterStore
}

// NewRegisterHandler creates a new RegisterHandler.
func NewRegisterHandler(svc RegisterServicer, store RegisterStore) *RegisterHandler {
	return &RegisterHandler{svc: svc, store: store}
}

// RegisterRoutes registers cash register endpoints on the given Chi router.
// Expected to be mounted inside a store-scoped subrouter: /stores/{sid}/registers
func (h *RegisterHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Open)
	r.Get("/current", h.Current)
	r.Get("/{id}", h.Get)
	r.Post("/{id}/close", h.Close)
	r.Get("/{id}/entries", h.ListEntries)
	r.Post("/{id}/entries", h.AddEntry)
}

// --- Request / Response types ---

type openRegisterRequest struct {
	OpeningAmount string `json:"opening_amount"`
}

type closeRegisterRequest struct {
	ClosingAmount string `json:"closing_amount"`
}

type addEntryRequest struct {
	Type          string `json:"type"`
	PaymentMethod string `json:"payment_method"`
	Amount        string `json:"amount"`
	Description   string `json:"description"`
	OperatorName  string `json:"operator_name"`
}

type registerResponse struct {
	ID             uuid.UUID  `json:"id"`
	StoreID        uuid.UUID  `json:"store_id"`
	Status         string     `json:"status"`
	OpeningAmount  string     `json:"opening_amount"`
	ClosingAmount  *string    `json:"closing_amount"`
	ExpectedAmount *string    `json:"expected_amount"`
	Difference     *string    `json:"difference"`
	OpenedBy       uuid.UUID  `json:"opened_by"`
	ClosedBy       *uuid.UUID `json:"closed_by"`
	OpenedAt       time.Time  `json:"opened_at"`
	ClosedAt       *time.Time `json:"closed_at"`
}

type entryResponse struct {
	ID            uuid.UUID `json:"id"`
	RegisterID    uuid.UUID `json:"register_id"`
	Type          string    `json:"type"`
	Source        string    `json:"source"`
	PaymentMethod string    `json:"payment_method"`
	Amount        string    `json:"amount"`
	Description   string    `json:"description"`
	OperatorName  *string   `json:"operator_name"`
	CreatedAt     time.Time `json:"created_at"`
}

type closeRegisterResponse struct {
	Register registerResponse   `json:"register"`
	Summary  *reconcile.Summary `json:"summary"`
}

func toRegisterResponse(reg database.CashRegister) registerResponse {
	resp := registerResponse{
		ID:            reg.ID,
		StoreID:       reg.StoreID,
		Status:        string(reg.Status),
		OpeningAmount: numericToString(reg.OpeningAmount),
		OpenedBy:      reg.OpenedBy,
		OpenedAt:      reg.OpenedAt,
	}
	if reg.ClosingAmount.Valid {
		s := numericToString(reg.ClosingAmount)
		resp.ClosingAmount = &s
	}
	if reg.ExpectedAmount.Valid {
		s := numericToString(reg.ExpectedAmount)
		resp.ExpectedAmount = &s
	}
	if reg.Difference.Valid {
		s := numericToString(reg.Difference)
		resp.Difference = &s
	}
	if reg.ClosedBy.Valid {
		id := uuid.UUID(reg.ClosedBy.Bytes)
		resp.ClosedBy = &id
	}
	if reg.ClosedAt.Valid {
		t := reg.ClosedAt.Time
		resp.ClosedAt = &t
	}
	return resp
}

func toEntryResponse(e database.CashEntry) entryResponse {
	resp := entryResponse{
		ID:            e.ID,
		RegisterID:    e.RegisterID,
		Type:          string(e.Type),
		PaymentMethod: e.PaymentMethod,
		Amount:        numericToString(e.Amount),
		Description:   e.Description,
		CreatedAt:     e.CreatedAt,
	}
	if e.Source.Valid {
		resp.Source = string(e.Source.EntrySource)
	}
	if e.OperatorName.Valid {
		resp.OperatorName = &e.OperatorName.String
	}
	return resp
}

var errNegativeAmount = errors.New("negative amount")

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if d.IsNegative() {
		return decimal.Decimal{}, errNegativeAmount
	}
	return d, nil
}

// --- Handlers ---

// Open handles POST /stores/{sid}/registers.
func (h *RegisterHandler) Open(w http.ResponseWriter, r *http.Request) {
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

	var req openRegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.OpeningAmount == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "opening_amount is required"})
		return
	}

	amount, err := parseAmount(req.OpeningAmount)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "opening_amount must be a non-negative decimal"})
		return
	}

	reg, err := h.svc.OpenRegister(r.Context(), storeID, claims.UserID, amount)
	if err != nil {
		if errors.Is(err, service.ErrRegisterAlreadyOpen) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
			return
		}
		if errors.Is(err, service.ErrInvalidAmount) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("ERROR: open register: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, toRegisterResponse(*reg))
}

// Current handles GET /stores/{sid}/registers/current.
func (h *RegisterHandler) Current(w http.ResponseWriter, r *http.Request) {
	storeID, err := uuid.Parse(chi.URLParam(r, "sid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid store ID"})
		return
	}

	reg, err := h.store.GetOpenRegister(r.Context(), storeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no open register"})
			return
		}
		log.Printf("ERROR: get open register: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toRegisterResponse(reg))
}

// Get handles GET /stores/{sid}/registers/{id}.
func (h *RegisterHandler) Get(w http.ResponseWriter, r *http.Request) {
	storeID, err := uuid.Parse(chi.URLParam(r, "sid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid store ID"})
		return
	}

	registerID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid register ID"})
		return
	}

	reg, err := h.store.GetCashRegister(r.Context(), database.GetCashRegisterParams{
		ID:      registerID,
		StoreID: storeID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "register not found"})
			return
		}
		log.Printf("ERROR: get register: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toRegisterResponse(reg))
}

// Close handles POST /stores/{sid}/registers/{id}/close.
func (h *RegisterHandler) Close(w http.ResponseWriter, r *http.Request) {
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

	registerID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid register ID"})
		return
	}

	var req closeRegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.ClosingAmount == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "closing_amount is required"})
		return
	}

	amount, err := parseAmount(req.ClosingAmount)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "closing_amount must be a non-negative decimal"})
		return
	}

	result, err := h.svc.CloseRegister(r.Context(), storeID, registerID, claims.UserID, amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegisterNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "register not found"})
			return
		case errors.Is(err, service.ErrRegisterClosed):
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
			return
		case errors.Is(err, service.ErrInvalidAmount):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("ERROR: close register: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, closeRegisterResponse{
		Register: toRegisterResponse(result.Register),
		Summary:  result.Summary,
	})
}

// ListEntries handles GET /stores/{sid}/registers/{id}/entries.
func (h *RegisterHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	storeID, err := uuid.Parse(chi.URLParam(r, "sid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid store ID"})
		return
	}

	registerID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid register ID"})
		return
	}

	// Register lookup first so a wrong store or ID is a 404, not an
	// empty list.
	if _, err := h.store.GetCashRegister(r.Context(), database.GetCashRegisterParams{
		ID:      registerID,
		StoreID: storeID,
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "register not found"})
			return
		}
		log.Printf("ERROR: get register for entries: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	entries, err := h.store.ListCashEntriesByRegister(r.Context(), registerID)
	if err != nil {
		log.Printf("ERROR: list register entries: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = toEntryResponse(e)
	}
	writeJSON(w, http.StatusOK, resp)
}

// AddEntry handles POST /stores/{sid}/registers/{id}/entries.
func (h *RegisterHandler) AddEntry(w http.ResponseWriter, r *http.Request) {
	storeID, err := uuid.Parse(chi.URLParam(r, "sid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid store ID"})
		return
	}

	registerID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid register ID"})
		return
	}

	var req addEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Amount == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "amount is required"})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid amount"})
		return
	}

	entry, err := h.svc.AddManualEntry(r.Context(), service.AddManualEntryRequest{
		StoreID:       storeID,
		RegisterID:    registerID,
		Type:          req.Type,
		PaymentMethod: req.PaymentMethod,
		Amount:        amount,
		Description:   req.Description,
		OperatorName:  req.OperatorName,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegisterNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "register not found"})
			return
		case errors.Is(err, service.ErrRegisterClosed):
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
			return
		case errors.Is(err, service.ErrInvalidAmount),
			errors.Is(err, service.ErrInvalidEntryType):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("ERROR: add manual entry: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, toEntryResponse(*entry))
}
