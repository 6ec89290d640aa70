package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sabor-pdv/api/internal/database"
	"github.com/sabor-pdv/api/internal/export"
	"github.com/sabor-pdv/api/internal/reconcile"
	"github.com/sabor-pdv/api/internal/service"
)

// ReportsStore defines the database methods needed by report handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type ReportsStore interface {
	GetCashRegister(ctx context.Context, arg database.GetCashRegisterParams) (database.CashRegister, error)
	ListCashEntriesByRegister(ctx context.Context, registerID uuid.UUID) ([]database.CashEntry, error)
	ListCashEntriesByPeriod(ctx context.Context, arg database.ListCashEntriesByPeriodParams) ([]database.CashEntry, error)
	GetStore(ctx context.Context, id uuid.UUID) (database.Store, error)
	GetDailySales(ctx context.Context, arg database.GetDailySalesParams) ([]database.GetDailySalesRow, error)
	GetProductSales(ctx context.Context, arg database.GetProductSalesParams) ([]database.GetProductSalesRow, error)
	GetPaymentSummary(ctx context.Context, arg database.GetPaymentSummaryParams) ([]database.GetPaymentSummaryRow, error)
	GetStoreComparison(ctx context.Context, arg database.GetStoreComparisonParams) ([]database.GetStoreComparisonRow, error)
}

// ReportsHandler handles report endpoints.
type ReportsHandler struct {
	store ReportsStore
	loc   *time.Location
}

// NewReportsHandler creates a new ReportsHandler. tz is the business
// timezone used to interpret date-range query params.
func NewReportsHandler(store ReportsStore, tz string) *ReportsHandler {
	return &ReportsHandler{store: store, loc: businessLocation(tz)}
}

// RegisterRoutes registers store-scoped report endpoints.
// Expected to be mounted inside a store-scoped subrouter: /stores/{sid}/reports
func (h *ReportsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/cash-summary", h.CashSummary)
	r.Get("/cash-summary/export", h.CashSummaryExport)
	r.Get("/sales", h.DailySales)
	r.Get("/products", h.ProductSales)
	r.Get("/payments", h.PaymentSummary)
}

// RegisterAdminRoutes registers admin-only report endpoints.
// Expected to be mounted at the root level: /reports
func (h *ReportsHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/store-comparison", h.StoreComparison)
}

// --- Response types ---

type dailySalesResponse struct {
	Date        string `json:"date"`
	SaleCount   int64  `json:"sale_count"`
	TotalAmount string `json:"total_amount"`
}

type productSalesResponse struct {
	ProductName  string `json:"product_name"`
	QuantitySold int64  `json:"quantity_sold"`
	TotalRevenue string `json:"total_revenue"`
}

type paymentSummaryResponse struct {
	PaymentMethod    string `json:"payment_method"`
	TransactionCount int64  `json:"transaction_count"`
	TotalAmount      string `json:"total_amount"`
}

type storeComparisonResponse struct {
	StoreID      uuid.UUID `json:"store_id"`
	StoreName    string    `json:"store_name"`
	SaleCount    int64     `json:"sale_count"`
	TotalRevenue string    `json:"total_revenue"`
}

// --- Handlers ---

// cashSummary builds the reconciled summary for either a single
// register (register_id param) or a date period. Register mode uses the
// register's own opening and closing amounts; period mode aggregates
// the raw entries with a zero opening float.
func (h *ReportsHandler) cashSummary(r *http.Request, storeID uuid.UUID) (*reconcile.Summary, time.Time, time.Time, int, error) {
	if s := r.URL.Query().Get("register_id"); s != "" {
		registerID, err := uuid.Parse(s)
		if err != nil {
			return nil, time.Time{}, time.Time{}, http.StatusBadRequest, fmt.Errorf("invalid register_id")
		}

		reg, err := h.store.GetCashRegister(r.Context(), database.GetCashRegisterParams{
			ID:      registerID,
			StoreID: storeID,
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, time.Time{}, time.Time{}, http.StatusNotFound, fmt.Errorf("register not found")
			}
			return nil, time.Time{}, time.Time{}, http.StatusInternalServerError, err
		}

		entries, err := h.store.ListCashEntriesByRegister(r.Context(), registerID)
		if err != nil {
			return nil, time.Time{}, time.Time{}, http.StatusInternalServerError, err
		}

		summary, err := reconcile.Summarize(service.RegisterForReconcile(reg), service.EntriesForReconcile(entries))
		if err != nil {
			return nil, time.Time{}, time.Time{}, http.StatusInternalServerError, err
		}

		end := time.Now()
		if reg.ClosedAt.Valid {
			end = reg.ClosedAt.Time
		}
		return summary, reg.OpenedAt, end, http.StatusOK, nil
	}

	start, end, err := parseDateRange(r, h.loc)
	if err != nil {
		return nil, time.Time{}, time.Time{}, http.StatusBadRequest, err
	}

	entries, err := h.store.ListCashEntriesByPeriod(r.Context(), database.ListCashEntriesByPeriodParams{
		StoreID:     storeID,
		CreatedAt:   start,
		CreatedAt_2: end,
	})
	if err != nil {
		return nil, time.Time{}, time.Time{}, http.StatusInternalServerError, err
	}

	summary, err := reconcile.Summarize(reconcile.Register{}, service.EntriesForReconcile(entries))
	if err != nil {
		return nil, time.Time{}, time.Time{}, http.StatusInternalServerError, err
	}
	return summary, start, end, http.StatusOK, nil
}

// CashSummary returns the reconciled cash summary as JSON.
func (h *ReportsHandler) CashSummary(w http.ResponseWriter, r *http.Request) {
	storeID, err := uuid.Parse(chi.URLParam(r, "sid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid store ID"})
		return
	}

	summary, _, _, status, err := h.cashSummary(r, storeID)
	if err != nil {
		if status == http.StatusInternalServerError {
			log.Printf("ERROR: cash summary: %v", err)
			writeJSON(w, status, map[string]string{"error": "internal server error"})
			return
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// CashSummaryExport renders the cash summary as a downloadable
// csv, xlsx, or pdf document.
func (h *ReportsHandler) CashSummaryExport(w http.ResponseWriter, r *http.Request) {
	storeID, err := uuid.Parse(chi.URLParam(r, "sid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid store ID"})
		return
	}

	format := r.URL.Query().Get("format")
	switch format {
	case "csv", "xlsx", "pdf":
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "format must be csv, xlsx, or pdf"})
		return
	}

	summary, periodStart, periodEnd, status, err := h.cashSummary(r, storeID)
	if err != nil {
		if status == http.StatusInternalServerError {
			log.Printf("ERROR: cash summary export: %v", err)
			writeJSON(w, status, map[string]string{"error": "internal server error"})
			return
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	store, err := h.store.GetStore(r.Context(), storeID)
	if err != nil {
		log.Printf("ERROR: get store for export: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	report := export.CashSummaryReport{
		StoreName:    store.Name,
		OperatorName: r.URL.Query().Get("operator_name"),
		PeriodStart:  periodStart,
		PeriodEnd:    periodEnd,
		Summary:      summary,
	}

	var (
		body        []byte
		contentType string
	)
	switch format {
	case "csv":
		body, err = export.BuildCashSummaryCSV(report)
		contentType = "text/csv"
	case "xlsx":
		body, err = export.BuildCashSummaryXLSX(report)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "pdf":
		body, err = export.BuildCashSummaryPDF(report)
		contentType = "application/pdf"
	}
	if err != nil {
		log.Printf("ERROR: build %s export: %v", format, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	filename := fmt.Sprintf("fechamento-%s.%s", periodStart.Format("2006-01-02"), format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Printf("ERROR: write %s export: %v", format, err)
	}
}

// DailySales returns per-day sale totals for a date range.
func (h *ReportsHandler) DailySales(w http.ResponseWriter, r *http.Request) {
	storeID, err := uuid.Parse(chi.URLParam(r, "sid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid store ID"})
		return
	}

	startDate, endDate, err := parseDateRange(r, h.loc)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	rows, err := h.store.GetDailySales(r.Context(), database.GetDailySalesParams{
		StoreID:     storeID,
		CreatedAt:   startDate,
		CreatedAt_2: endDate,
	})
	if err != nil {
		log.Printf("ERROR: get daily sales: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]dailySalesResponse, len(rows))
	for i, row := range rows {
		date := "N/A"
		if row.SaleDate.Valid {
			date = row.SaleDate.Time.Format("2006-01-02")
		}
		resp[i] = dailySalesResponse{
			Date:        date,
			SaleCount:   row.SaleCount,
			TotalAmount: numericToString(row.TotalAmount),
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// ProductSales returns top selling products by quantity and revenue.
// Cancelled sales are excluded by the query.
func (h *ReportsHandler) ProductSales(w http.ResponseWriter, r *http.Request) {
	storeID, err := uuid.Parse(chi.URLParam(r, "sid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid store ID"})
		return
	}

	startDate, endDate, err := parseDateRange(r, h.loc)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	limit := 20
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > 100 {
		limit = 100
	}

	rows, err := h.store.GetProductSales(r.Context(), database.GetProductSalesParams{
		StoreID:     storeID,
		CreatedAt:   startDate,
		CreatedAt_2: endDate,
		Limit:       int32(limit),
	})
	if err != nil {
		log.Printf("ERROR: get product sales: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]productSalesResponse, len(rows))
	for i, row := range rows {
		resp[i] = productSalesResponse{
			ProductName:  row.ProductName,
			QuantitySold: row.QuantitySold,
			TotalRevenue: numericToString(row.TotalRevenue),
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// PaymentSummary returns the per-method breakdown of PDV sales.
func (h *ReportsHandler) PaymentSummary(w http.ResponseWriter, r *http.Request) {
	storeID, err := uuid.Parse(chi.URLParam(r, "sid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid store ID"})
		return
	}

	startDate, endDate, err := parseDateRange(r, h.loc)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	rows, err := h.store.GetPaymentSummary(r.Context(), database.GetPaymentSummaryParams{
		StoreID:     storeID,
		CreatedAt:   startDate,
		CreatedAt_2: endDate,
	})
	if err != nil {
		log.Printf("ERROR: get payment summary: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]paymentSummaryResponse, len(rows))
	for i, row := range rows {
		resp[i] = paymentSummaryResponse{
			PaymentMethod:    row.PaymentMethod,
			TransactionCount: row.TransactionCount,
			TotalAmount:      numericToString(row.TotalAmount),
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// StoreComparison returns cross-store totals (admin only; route is
// gated by RequireRole upstream).
func (h *ReportsHandler) StoreComparison(w http.ResponseWriter, r *http.Request) {
	startDate, endDate, err := parseDateRange(r, h.loc)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	rows, err := h.store.GetStoreComparison(r.Context(), database.GetStoreComparisonParams{
		CreatedAt:   startDate,
		CreatedAt_2: endDate,
	})
	if err != nil {
		log.Printf("ERROR: get store comparison: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]storeComparisonResponse, len(rows))
	for i, row := range rows {
		resp[i] = storeComparisonResponse{
			StoreID:      row.StoreID,
			StoreName:    row.StoreName,
			SaleCount:    row.SaleCount,
			TotalRevenue: numericToString(row.TotalRevenue),
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// --- Helpers ---

// businessLocation resolves a timezone name, falling back to a fixed
// BRT offset when the tz database has no entry for it.
func businessLocation(tz string) *time.Location {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.FixedZone("BRT", -3*3600)
	}
	return loc
}

// parseDateRange parses start_date and end_date query params in the
// given business timezone. Defaults to the last 30 days.
// The returned end is exclusive (next-day midnight).
func parseDateRange(r *http.Request, loc *time.Location) (time.Time, time.Time, error) {
	const layout = "2006-01-02"

	now := time.Now().In(loc)

	startDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -30)
	endDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)

	if s := r.URL.Query().Get("start_date"); s != "" {
		t, err := time.ParseInLocation(layout, s, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date format: %w", err)
		}
		startDate = t
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		t, err := time.ParseInLocation(layout, s, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date format: %w", err)
		}
		// end_date is inclusive in the query string, exclusive here
		endDate = t.AddDate(0, 0, 1)
	}

	if startDate.After(endDate) || startDate.Equal(endDate) {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date must be before end_date")
	}

	return startDate, endDate, nil
}
