package handler_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/sabor-pdv/api/internal/database"
	"github.com/sabor-pdv/api/internal/handler"
)

// --- Mocks ---

type mockReportsStore struct {
	registers      map[uuid.UUID]database.CashRegister
	entriesByReg   map[uuid.UUID][]database.CashEntry
	periodEntries  []database.CashEntry
	stores         map[uuid.UUID]database.Store
	dailySales     []database.GetDailySalesRow
	productSales   []database.GetProductSalesRow
	paymentSummary []database.GetPaymentSummaryRow
	comparison     []database.GetStoreComparisonRow
	lastPeriod     database.ListCashEntriesByPeriodParams
}

func newMockReportsStore() *mockReportsStore {
	return &mockReportsStore{
		registers:    make(map[uuid.UUID]database.CashRegister),
		entriesByReg: make(map[uuid.UUID][]database.CashEntry),
		stores:       make(map[uuid.UUID]database.Store),
	}
}

func (m *mockReportsStore) GetCashRegister(_ context.Context, arg database.GetCashRegisterParams) (database.CashRegister, error) {
	reg, ok := m.registers[arg.ID]
	if !ok || reg.StoreID != arg.StoreID {
		return database.CashRegister{}, pgx.ErrNoRows
	}
	return reg, nil
}

func (m *mockReportsStore) ListCashEntriesByRegister(_ context.Context, registerID uuid.UUID) ([]database.CashEntry, error) {
	return m.entriesByReg[registerID], nil
}

func (m *mockReportsStore) ListCashEntriesByPeriod(_ context.Context, arg database.ListCashEntriesByPeriodParams) ([]database.CashEntry, error) {
	m.lastPeriod = arg
	return m.periodEntries, nil
}

func (m *mockReportsStore) GetStore(_ context.Context, id uuid.UUID) (database.Store, error) {
	s, ok := m.stores[id]
	if !ok {
		return database.Store{}, pgx.ErrNoRows
	}
	return s, nil
}

func (m *mockReportsStore) GetDailySales(_ context.Context, _ database.GetDailySalesParams) ([]database.GetDailySalesRow, error) {
	return m.dailySales, nil
}

func (m *mockReportsStore) GetProductSales(_ context.Context, arg database.GetProductSalesParams) ([]database.GetProductSalesRow, error) {
	rows := m.productSales
	if int(arg.Limit) < len(rows) {
		rows = rows[:arg.Limit]
	}
	return rows, nil
}

func (m *mockReportsStore) GetPaymentSummary(_ context.Context, _ database.GetPaymentSummaryParams) ([]database.GetPaymentSummaryRow, error) {
	return m.paymentSummary, nil
}

func (m *mockReportsStore) GetStoreComparison(_ context.Context, _ database.GetStoreComparisonParams) ([]database.GetStoreComparisonRow, error) {
	return m.comparison, nil
}

// --- Helpers ---

func setupReportsRouter(store *mockReportsStore) *chi.Mux {
	h := handler.NewReportsHandler(store, "America/Sao_Paulo")
	r := chi.NewRouter()
	r.Route("/stores/{sid}/reports", h.RegisterRoutes)
	r.Route("/reports", h.RegisterAdminRoutes)
	return r
}

func pdvCashEntry(registerID uuid.UUID, method, amount string) database.CashEntry {
	return database.CashEntry{
		ID:            uuid.New(),
		RegisterID:    registerID,
		Type:          database.EntryTypeIncome,
		Source:        database.NullEntrySource{EntrySource: database.EntrySourcePdv, Valid: true},
		PaymentMethod: method,
		Amount:        testNumeric(amount),
		Description:   "Venda #1",
		CreatedAt:     time.Now(),
	}
}

// --- CashSummary tests ---

func TestCashSummary_RegisterMode(t *testing.T) {
	storeID := uuid.New()
	registerID := uuid.New()

	store := newMockReportsStore()
	store.registers[registerID] = database.CashRegister{
		ID:            registerID,
		StoreID:       storeID,
		Status:        database.RegisterStatusCLOSED,
		OpeningAmount: testNumeric("100.00"),
		ClosingAmount: testNumeric("148.00"),
		OpenedBy:      uuid.New(),
		OpenedAt:      time.Now().Add(-9 * time.Hour),
		ClosedAt:      pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
	store.entriesByReg[registerID] = []database.CashEntry{
		pdvCashEntry(registerID, "dinheiro", "50.00"),
		pdvCashEntry(registerID, "pix", "30.00"),
	}

	router := setupReportsRouter(store)
	rr := doRequest(t, router, "GET", "/stores/"+storeID.String()+"/reports/cash-summary?register_id="+registerID.String(), nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	resp := decodeObjectResponse(t, rr)

	// cash only: 100 opening + 50 cash sale
	if resp["expected_cash_in_drawer"] != "150" {
		t.Errorf("expected_cash_in_drawer: got %v", resp["expected_cash_in_drawer"])
	}
	// all methods: 100 + 50 + 30
	if resp["expected_total_revenue"] != "180" {
		t.Errorf("expected_total_revenue: got %v", resp["expected_total_revenue"])
	}
	// counted 148 against 150 expected
	if resp["difference"] != "-2" {
		t.Errorf("difference: got %v", resp["difference"])
	}

	pdv, ok := resp["pdv"].(map[string]interface{})
	if !ok {
		t.Fatalf("pdv bucket missing: %v", resp)
	}
	if pdv["count"] != float64(2) {
		t.Errorf("pdv count: got %v", pdv["count"])
	}
	if pdv["total"] != "80" {
		t.Errorf("pdv total: got %v", pdv["total"])
	}
}

func TestCashSummary_RegisterNotFound(t *testing.T) {
	storeID := uuid.New()

	router := setupReportsRouter(newMockReportsStore())
	rr := doRequest(t, router, "GET", "/stores/"+storeID.String()+"/reports/cash-summary?register_id="+uuid.New().String(), nil)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestCashSummary_PeriodMode(t *testing.T) {
	storeID := uuid.New()

	store := newMockReportsStore()
	registerID := uuid.New()
	expense := database.CashEntry{
		ID:            uuid.New(),
		RegisterID:    registerID,
		Type:          database.EntryTypeExpense,
		Source:        database.NullEntrySource{EntrySource: database.EntrySourceManual, Valid: true},
		PaymentMethod: "dinheiro",
		Amount:        testNumeric("20.00"),
		Description:   "Troco",
		CreatedAt:     time.Now(),
	}
	store.periodEntries = []database.CashEntry{
		pdvCashEntry(registerID, "dinheiro", "60.00"),
		expense,
	}

	router := setupReportsRouter(store)
	rr := doRequest(t, router, "GET", "/stores/"+storeID.String()+"/reports/cash-summary?start_date=2026-08-01&end_date=2026-08-28", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	resp := decodeObjectResponse(t, rr)

	// no opening float in period mode: 60 cash in - 20 cash out
	if resp["expected_cash_in_drawer"] != "40" {
		t.Errorf("expected_cash_in_drawer: got %v", resp["expected_cash_in_drawer"])
	}
	if resp["closing_amount"] != nil {
		t.Errorf("closing_amount should be null in period mode, got %v", resp["closing_amount"])
	}

	expenseBucket, ok := resp["expense"].(map[string]interface{})
	if !ok {
		t.Fatalf("expense bucket missing: %v", resp)
	}
	if expenseBucket["total"] != "20" {
		t.Errorf("expense total: got %v", expenseBucket["total"])
	}
}

func TestCashSummary_UsesConfiguredTimezone(t *testing.T) {
	storeID := uuid.New()
	path := "/stores/" + storeID.String() + "/reports/cash-summary?start_date=2026-08-10&end_date=2026-08-12"

	store := newMockReportsStore()
	router := setupReportsRouter(store)
	rr := doRequest(t, router, "GET", path, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	// midnight in Sao Paulo is 03:00 UTC; end_date is inclusive, so the
	// query window ends at the following midnight
	wantStart := time.Date(2026, 8, 10, 3, 0, 0, 0, time.UTC)
	if !store.lastPeriod.CreatedAt.Equal(wantStart) {
		t.Errorf("period start: got %v, want %v", store.lastPeriod.CreatedAt, wantStart)
	}
	wantEnd := time.Date(2026, 8, 13, 3, 0, 0, 0, time.UTC)
	if !store.lastPeriod.CreatedAt_2.Equal(wantEnd) {
		t.Errorf("period end: got %v, want %v", store.lastPeriod.CreatedAt_2, wantEnd)
	}

	// a different configured timezone shifts the parsed instants
	utcRouter := chi.NewRouter()
	utcRouter.Route("/stores/{sid}/reports", handler.NewReportsHandler(store, "UTC").RegisterRoutes)
	rr = doRequest(t, utcRouter, "GET", path, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	if got := store.lastPeriod.CreatedAt; !got.Equal(time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("period start with UTC timezone: got %v", got)
	}
}

func TestCashSummary_InvalidDateRange(t *testing.T) {
	storeID := uuid.New()

	router := setupReportsRouter(newMockReportsStore())
	rr := doRequest(t, router, "GET", "/stores/"+storeID.String()+"/reports/cash-summary?start_date=2026-08-20&end_date=2026-08-10", nil)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

// --- Export tests ---

func TestCashSummaryExport_CSV(t *testing.T) {
	storeID := uuid.New()
	registerID := uuid.New()

	store := newMockReportsStore()
	store.stores[storeID] = database.Store{ID: storeID, Name: "Loja Centro", IsActive: true}
	store.registers[registerID] = database.CashRegister{
		ID:            registerID,
		StoreID:       storeID,
		Status:        database.RegisterStatusOPEN,
		OpeningAmount: testNumeric("100.00"),
		OpenedBy:      uuid.New(),
		OpenedAt:      time.Now(),
	}
	store.entriesByReg[registerID] = []database.CashEntry{
		pdvCashEntry(registerID, "dinheiro", "50.00"),
	}

	router := setupReportsRouter(store)
	rr := doRequest(t, router, "GET", "/stores/"+storeID.String()+"/reports/cash-summary/export?format=csv&register_id="+registerID.String(), nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("content type: got %q", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "fechamento-") || !strings.Contains(cd, ".csv") {
		t.Errorf("content disposition: got %q", cd)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Loja Centro") {
		t.Errorf("csv should name the store, got: %s", body)
	}
	if !strings.Contains(body, ";") {
		t.Error("csv should use semicolon separators")
	}
}

func TestCashSummaryExport_XLSXContentType(t *testing.T) {
	storeID := uuid.New()

	store := newMockReportsStore()
	store.stores[storeID] = database.Store{ID: storeID, Name: "Loja Centro", IsActive: true}

	router := setupReportsRouter(store)
	rr := doRequest(t, router, "GET", "/stores/"+storeID.String()+"/reports/cash-summary/export?format=xlsx", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	want := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	if ct := rr.Header().Get("Content-Type"); ct != want {
		t.Errorf("content type: got %q", ct)
	}
	if rr.Body.Len() == 0 {
		t.Error("xlsx body should not be empty")
	}
}

func TestCashSummaryExport_PDFContentType(t *testing.T) {
	storeID := uuid.New()

	store := newMockReportsStore()
	store.stores[storeID] = database.Store{ID: storeID, Name: "Loja Praia", IsActive: true}

	router := setupReportsRouter(store)
	rr := doRequest(t, router, "GET", "/stores/"+storeID.String()+"/reports/cash-summary/export?format=pdf", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type: got %q", ct)
	}
	if !strings.HasPrefix(rr.Body.String(), "%PDF") {
		t.Error("body should start with the PDF magic bytes")
	}
}

func TestCashSummaryExport_UnknownFormat(t *testing.T) {
	storeID := uuid.New()

	router := setupReportsRouter(newMockReportsStore())
	rr := doRequest(t, router, "GET", "/stores/"+storeID.String()+"/reports/cash-summary/export?format=docx", nil)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

// --- Sales report tests ---

func TestDailySales_Valid(t *testing.T) {
	storeID := uuid.New()

	store := newMockReportsStore()
	store.dailySales = []database.GetDailySalesRow{
		{
			SaleDate:    pgtype.Date{Time: time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC), Valid: true},
			SaleCount:   14,
			TotalAmount: testNumeric("532.40"),
		},
	}

	router := setupReportsRouter(store)
	rr := doRequest(t, router, "GET", "/stores/"+storeID.String()+"/reports/sales", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	resp := decodeListResponse(t, rr)
	if len(resp) != 1 {
		t.Fatalf("expected 1 row, got %d", len(resp))
	}
	if resp[0]["date"] != "2026-08-27" {
		t.Errorf("date: got %v", resp[0]["date"])
	}
	if resp[0]["sale_count"] != float64(14) {
		t.Errorf("sale_count: got %v", resp[0]["sale_count"])
	}
	if resp[0]["total_amount"] != "532.40" {
		t.Errorf("total_amount: got %v", resp[0]["total_amount"])
	}
}

func TestProductSales_LimitCapped(t *testing.T) {
	storeID := uuid.New()

	store := newMockReportsStore()
	for i := 0; i < 3; i++ {
		store.productSales = append(store.productSales, database.GetProductSalesRow{
			ProductName:  "Produto",
			QuantitySold: int64(10 - i),
			TotalRevenue: testNumeric("100.00"),
		})
	}

	router := setupReportsRouter(store)
	rr := doRequest(t, router, "GET", "/stores/"+storeID.String()+"/reports/products?limit=2", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	resp := decodeListResponse(t, rr)
	if len(resp) != 2 {
		t.Errorf("expected 2 rows, got %d", len(resp))
	}
}

func TestPaymentSummary_Valid(t *testing.T) {
	storeID := uuid.New()

	store := newMockReportsStore()
	store.paymentSummary = []database.GetPaymentSummaryRow{
		{PaymentMethod: "pix", TransactionCount: 8, TotalAmount: testNumeric("312.00")},
		{PaymentMethod: "dinheiro", TransactionCount: 5, TotalAmount: testNumeric("180.50")},
	}

	router := setupReportsRouter(store)
	rr := doRequest(t, router, "GET", "/stores/"+storeID.String()+"/reports/payments", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	resp := decodeListResponse(t, rr)
	if len(resp) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(resp))
	}
	if resp[0]["payment_method"] != "pix" {
		t.Errorf("payment_method: got %v", resp[0]["payment_method"])
	}
	if resp[0]["total_amount"] != "312.00" {
		t.Errorf("total_amount: got %v", resp[0]["total_amount"])
	}
}

func TestStoreComparison_Valid(t *testing.T) {
	store := newMockReportsStore()
	store.comparison = []database.GetStoreComparisonRow{
		{StoreID: uuid.New(), StoreName: "Loja Centro", SaleCount: 40, TotalRevenue: testNumeric("1520.00")},
		{StoreID: uuid.New(), StoreName: "Loja Praia", SaleCount: 22, TotalRevenue: testNumeric("980.00")},
	}

	router := setupReportsRouter(store)
	rr := doRequest(t, router, "GET", "/reports/store-comparison", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	resp := decodeListResponse(t, rr)
	if len(resp) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(resp))
	}
	if resp[0]["store_name"] != "Loja Centro" {
		t.Errorf("store_name: got %v", resp[0]["store_name"])
	}
	if resp[1]["total_revenue"] != "980.00" {
		t.Errorf("total_revenue: got %v", resp[1]["total_revenue"])
	}
}
