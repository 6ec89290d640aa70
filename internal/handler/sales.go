package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/sabor-pdv/api/internal/database"
	"github.com/sabor-pdv/api/internal/middleware"
	"github.com/sabor-pdv/api/internal/service"
)

// SaleServicer defines the service methods needed by sale handlers.
// Satisfied by *service.SaleService; narrow interface for testability.
type SaleServicer interface {
	CreateSale(ctx context.Context, req service.CreateSaleRequest) (*service.CreateSaleResult, error)
	CancelSale(ctx context.Context, storeID, saleID, cancelledBy uuid.UUID) (*database.Sale, error)
}

// SaleStore defines the database methods needed by sale read handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type SaleStore interface {
	GetSale(ctx context.Context, arg database.GetSaleParams) (database.Sale, error)
	ListSales(ctx context.Context, arg database.ListSalesParams) ([]database.Sale, error)
	ListSaleItemsBySale(ctx context.Context, saleID uuid.UUID) ([]database.SaleItem, error)
}

// SaleHandler handles PDV sale endpoints.
type SaleHandler struct {
	svc   SaleServicer
	store SaleStore
	loc   *time.Location
}

// NewSaleHandler creates a new SaleHandler. tz is the business
// timezone used to interpret date-range query params.
func NewSaleHandler(svc SaleServicer, store SaleStore, tz string) *SaleHandler {
	return &SaleHandler{svc: svc, store: store, loc: businessLocation(tz)}
}

// RegisterRoutes registers sale endpoints on the given Chi router.
// Expected to be mounted inside a store-scoped subrouter: /stores/{sid}/sales
func (h *SaleHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Delete("/{id}", h.Cancel)
}

// --- Request / Response types ---

type createSaleRequest struct {
	PaymentMethod  string                  `json:"payment_method"`
	DiscountAmount string                  `json:"discount_amount"`
	OperatorName   string                  `json:"operator_name"`
	Items          []createSaleItemRequest `json:"items"`
}

type createSaleItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
}

type saleResponse struct {
	ID             uuid.UUID          `json:"id"`
	StoreID        uuid.UUID          `json:"store_id"`
	RegisterID     uuid.UUID          `json:"register_id"`
	SaleNumber     string             `json:"sale_number"`
	PaymentMethod  string             `json:"payment_method"`
	Subtotal       string             `json:"subtotal"`
	DiscountAmount string             `json:"discount_amount"`
	TotalAmount    string             `json:"total_amount"`
	Cancelled      bool               `json:"cancelled"`
	CancelledAt    *time.Time         `json:"cancelled_at"`
	CreatedBy      uuid.UUID          `json:"created_by"`
	CreatedAt      time.Time          `json:"created_at"`
	Items          []saleItemResponse `json:"items,omitempty"`
}

type saleItemResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	UnitPrice   string    `json:"unit_price"`
	Quantity    int32     `json:"quantity"`
	Subtotal    string    `json:"subtotal"`
}

func toSaleResponse(s database.Sale, items []database.SaleItem) saleResponse {
	resp := saleResponse{
		ID:             s.ID,
		StoreID:        s.StoreID,
		RegisterID:     s.RegisterID,
		SaleNumber:     s.SaleNumber,
		PaymentMethod:  s.PaymentMethod,
		Subtotal:       numericToString(s.Subtotal),
		DiscountAmount: numericToString(s.DiscountAmount),
		TotalAmount:    numericToString(s.TotalAmount),
		Cancelled:      s.Cancelled,
		CreatedBy:      s.CreatedBy,
		CreatedAt:      s.CreatedAt,
	}
	if s.CancelledAt.Valid {
		t := s.CancelledAt.Time
		resp.CancelledAt = &t
	}
	if len(items) > 0 {
		resp.Items = make([]saleItemResponse, len(items))
		for i, item := range items {
			resp.Items[i] = saleItemResponse{
				ID:          item.ID,
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				UnitPrice:   numericToString(item.UnitPrice),
				Quantity:    item.Quantity,
				Subtotal:    numericToString(item.Subtotal),
			}
		}
	}
	return resp
}

func formatItemError(index int, msg string) string {
	return fmt.Sprintf("items[%d]: %s", index, msg)
}

// --- Handlers ---

// Create handles POST /stores/{sid}/sales.
func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	var req createSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if len(req.Items) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "items are required"})
		return
	}
	for i, item := range req.Items {
		if item.ProductID == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": formatItemError(i, "product_id is required"),
			})
			return
		}
		if item.Quantity <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": formatItemError(i, "quantity must be > 0"),
			})
			return
		}
	}

	svcItems := make([]service.CreateSaleItemRequest, len(req.Items))
	for i, item := range req.Items {
		svcItems[i] = service.CreateSaleItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	result, err := h.svc.CreateSale(r.Context(), service.CreateSaleRequest{
		StoreID:        storeID,
		CreatedBy:      claims.UserID,
		OperatorName:   req.OperatorName,
		PaymentMethod:  req.PaymentMethod,
		DiscountAmount: req.DiscountAmount,
		Items:          svcItems,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoOpenRegister):
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
			return
		case errors.Is(err, service.ErrProductNotFound):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "product not found or inactive"})
			return
		case errors.Is(err, service.ErrEmptyItems),
			errors.Is(err, service.ErrInvalidQuantity),
			errors.Is(err, service.ErrInvalidProductID),
			errors.Is(err, service.ErrInvalidDiscount),
			errors.Is(err, service.ErrMissingPayment):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("ERROR: create sale: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, toSaleResponse(result.Sale, result.Items))
}

// List handles GET /stores/{sid}/sales with date/cancelled filters.
func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	storeID, err := uuid.Parse(chi.URLParam(r, "sid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid store ID"})
		return
	}

	params := database.ListSalesParams{StoreID: storeID}

	if start, end, ok, err := parseOptionalDateRange(r, h.loc); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	} else if ok {
		params.StartDate = pgtype.Timestamptz{Time: start, Valid: true}
		params.EndDate = pgtype.Timestamptz{Time: end, Valid: true}
	}

	switch r.URL.Query().Get("cancelled") {
	case "":
	case "true":
		params.Cancelled = pgtype.Bool{Bool: true, Valid: true}
	case "false":
		params.Cancelled = pgtype.Bool{Bool: false, Valid: true}
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "cancelled must be true or false"})
		return
	}

	params.Limit, params.Offset = parsePagination(r)

	sales, err := h.store.ListSales(r.Context(), params)
	if err != nil {
		log.Printf("ERROR: list sales: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]saleResponse, len(sales))
	for i, s := range sales {
		resp[i] = toSaleResponse(s, nil)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /stores/{sid}/sales/{id}. Items are included.
func (h *SaleHandler) Get(w http.ResponseWriter, r *http.Request) {
	storeID, err := uuid.Parse(chi.URLParam(r, "sid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid store ID"})
		return
	}

	saleID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid sale ID"})
		return
	}

	sale, err := h.store.GetSale(r.Context(), database.GetSaleParams{
		ID:      saleID,
		StoreID: storeID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "sale not found"})
			return
		}
		log.Printf("ERROR: get sale: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	items, err := h.store.ListSaleItemsBySale(r.Context(), saleID)
	if err != nil {
		log.Printf("ERROR: list sale items: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toSaleResponse(sale, items))
}

// Cancel handles DELETE /stores/{sid}/sales/{id}.
func (h *SaleHandler) Cancel(w http.ResponseWriter, r *http.Request) {
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

	saleID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid sale ID"})
		return
	}

	sale, err := h.svc.CancelSale(r.Context(), storeID, saleID, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSaleNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "sale not found"})
			return
		case errors.Is(err, service.ErrSaleCancelled):
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("ERROR: cancel sale: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toSaleResponse(*sale, nil))
}
