package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sabor-pdv/api/internal/database"
)

// mockSaleStore implements SaleStore with configurable behavior.
type mockSaleStore struct {
	getOpenRegisterFn   func(ctx context.Context, storeID uuid.UUID) (database.CashRegister, error)
	getNextSaleNumberFn func(ctx context.Context, storeID uuid.UUID) (int32, error)
	getProductForSaleFn func(ctx context.Context, arg database.GetProductForSaleParams) (database.GetProductForSaleRow, error)
	createSaleFn        func(ctx context.Context, arg database.CreateSaleParams) (database.Sale, error)
	createSaleItemFn    func(ctx context.Context, arg database.CreateSaleItemParams) (database.SaleItem, error)
	getSaleFn           func(ctx context.Context, arg database.GetSaleParams) (database.Sale, error)
	cancelSaleFn        func(ctx context.Context, arg database.CancelSaleParams) (database.Sale, error)
	createCashEntryFn   func(ctx context.Context, arg database.CreateCashEntryParams) (database.CashEntry, error)
}

func (m *mockSaleStore) GetOpenRegister(ctx context.Context, storeID uuid.UUID) (database.CashRegister, error) {
	return m.getOpenRegisterFn(ctx, storeID)
}
func (m *mockSaleStore) GetNextSaleNumber(ctx context.Context, storeID uuid.UUID) (int32, error) {
	return m.getNextSaleNumberFn(ctx, storeID)
}
func (m *mockSaleStore) GetProductForSale(ctx context.Context, arg database.GetProductForSaleParams) (database.GetProductForSaleRow, error) {
	return m.getProductForSaleFn(ctx, arg)
}
func (m *mockSaleStore) CreateSale(ctx context.Context, arg database.CreateSaleParams) (database.Sale, error) {
	return m.createSaleFn(ctx, arg)
}
func (m *mockSaleStore) CreateSaleItem(ctx context.Context, arg database.CreateSaleItemParams) (database.SaleItem, error) {
	return m.createSaleItemFn(ctx, arg)
}
func (m *mockSaleStore) GetSale(ctx context.Context, arg database.GetSaleParams) (database.Sale, error) {
	return m.getSaleFn(ctx, arg)
}
func (m *mockSaleStore) CancelSale(ctx context.Context, arg database.CancelSaleParams) (database.Sale, error) {
	return m.cancelSaleFn(ctx, arg)
}
func (m *mockSaleStore) CreateCashEntry(ctx context.Context, arg database.CreateCashEntryParams) (database.CashEntry, error) {
	return m.createCashEntryFn(ctx, arg)
}

func newTestSaleService(store *mockSaleStore) (*SaleService, *mockTx) {
	tx := &mockTx{}
	pool := &mockTxBeginner{tx: tx}
	newStore := func(db database.DBTX) SaleStore { return store }
	return NewSaleService(pool, newStore), tx
}

// defaultSaleStore has two products priced 25.00 and 8.50 and an open
// register. Individual tests override what they care about.
func defaultSaleStore(storeID, regID, productA, productB uuid.UUID) *mockSaleStore {
	return &mockSaleStore{
		getOpenRegisterFn: func(ctx context.Context, sid uuid.UUID) (database.CashRegister, error) {
			return database.CashRegister{ID: regID, StoreID: storeID, Status: database.RegisterStatusOPEN}, nil
		},
		getNextSaleNumberFn: func(ctx context.Context, sid uuid.UUID) (int32, error) {
			return 7, nil
		},
		getProductForSaleFn: func(ctx context.Context, arg database.GetProductForSaleParams) (database.GetProductForSaleRow, error) {
			switch arg.ID {
			case productA:
				return database.GetProductForSaleRow{ID: productA, Name: "X-Burguer", Price: makeNumeric("25.00")}, nil
			case productB:
				return database.GetProductForSaleRow{ID: productB, Name: "Refrigerante", Price: makeNumeric("8.50")}, nil
			}
			return database.GetProductForSaleRow{}, pgx.ErrNoRows
		},
		createSaleFn: func(ctx context.Context, arg database.CreateSaleParams) (database.Sale, error) {
			return database.Sale{
				ID:            uuid.New(),
				StoreID:       arg.StoreID,
				RegisterID:    arg.RegisterID,
				SaleNumber:    arg.SaleNumber,
				PaymentMethod: arg.PaymentMethod,
				Subtotal:      arg.Subtotal,
				TotalAmount:   arg.TotalAmount,
			}, nil
		},
		createSaleItemFn: func(ctx context.Context, arg database.CreateSaleItemParams) (database.SaleItem, error) {
			return database.SaleItem{
				ID:          uuid.New(),
				SaleID:      arg.SaleID,
				ProductID:   arg.ProductID,
				ProductName: arg.ProductName,
				UnitPrice:   arg.UnitPrice,
				Quantity:    arg.Quantity,
				Subtotal:    arg.Subtotal,
			}, nil
		},
		createCashEntryFn: func(ctx context.Context, arg database.CreateCashEntryParams) (database.CashEntry, error) {
			return database.CashEntry{
				ID:            uuid.New(),
				RegisterID:    arg.RegisterID,
				Type:          arg.Type,
				Source:        arg.Source,
				PaymentMethod: arg.PaymentMethod,
				Amount:        arg.Amount,
				Description:   arg.Description,
			}, nil
		},
	}
}

func TestCreateSale(t *testing.T) {
	storeID := uuid.New()
	regID := uuid.New()
	productA := uuid.New()
	productB := uuid.New()

	store := defaultSaleStore(storeID, regID, productA, productB)
	var entryArg database.CreateCashEntryParams
	inner := store.createCashEntryFn
	store.createCashEntryFn = func(ctx context.Context, arg database.CreateCashEntryParams) (database.CashEntry, error) {
		entryArg = arg
		return inner(ctx, arg)
	}
	svc, tx := newTestSaleService(store)

	result, err := svc.CreateSale(context.Background(), CreateSaleRequest{
		StoreID:       storeID,
		CreatedBy:     uuid.New(),
		OperatorName:  "Maria",
		PaymentMethod: "dinheiro",
		Items: []CreateSaleItemRequest{
			{ProductID: productA.String(), Quantity: 2},
			{ProductID: productB.String(), Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}

	if result.Sale.SaleNumber != "PDV-007" {
		t.Errorf("sale number = %q, want %q", result.Sale.SaleNumber, "PDV-007")
	}
	// 2 * 25.00 + 8.50
	if !numericEquals(result.Sale.TotalAmount, "58.50") {
		t.Errorf("total = %v, want 58.50", result.Sale.TotalAmount)
	}
	if len(result.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(result.Items))
	}

	if entryArg.Description != "Venda #7" {
		t.Errorf("entry description = %q, want %q", entryArg.Description, "Venda #7")
	}
	if !entryArg.Source.Valid || entryArg.Source.EntrySource != database.EntrySourcePdv {
		t.Errorf("entry source = %v, want pdv", entryArg.Source)
	}
	if entryArg.RegisterID != regID {
		t.Errorf("entry register = %s, want %s", entryArg.RegisterID, regID)
	}
	if !numericEquals(entryArg.Amount, "58.50") {
		t.Errorf("entry amount = %v, want 58.50", entryArg.Amount)
	}
	if !tx.committed {
		t.Error("transaction was not committed")
	}
}

func TestCreateSaleWithDiscount(t *testing.T) {
	storeID := uuid.New()
	productA := uuid.New()
	store := defaultSaleStore(storeID, uuid.New(), productA, uuid.New())

	var saleArg database.CreateSaleParams
	inner := store.createSaleFn
	store.createSaleFn = func(ctx context.Context, arg database.CreateSaleParams) (database.Sale, error) {
		saleArg = arg
		return inner(ctx, arg)
	}
	svc, _ := newTestSaleService(store)

	_, err := svc.CreateSale(context.Background(), CreateSaleRequest{
		StoreID:        storeID,
		CreatedBy:      uuid.New(),
		PaymentMethod:  "pix",
		DiscountAmount: "5.00",
		Items:          []CreateSaleItemRequest{{ProductID: productA.String(), Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}
	if !numericEquals(saleArg.Subtotal, "25.00") {
		t.Errorf("subtotal = %v, want 25.00", saleArg.Subtotal)
	}
	if !numericEquals(saleArg.TotalAmount, "20.00") {
		t.Errorf("total = %v, want 20.00", saleArg.TotalAmount)
	}
}

func TestCreateSaleNoOpenRegister(t *testing.T) {
	store := defaultSaleStore(uuid.New(), uuid.New(), uuid.New(), uuid.New())
	store.getOpenRegisterFn = func(ctx context.Context, sid uuid.UUID) (database.CashRegister, error) {
		return database.CashRegister{}, pgx.ErrNoRows
	}
	svc, _ := newTestSaleService(store)

	_, err := svc.CreateSale(context.Background(), CreateSaleRequest{
		StoreID:       uuid.New(),
		PaymentMethod: "dinheiro",
		Items:         []CreateSaleItemRequest{{ProductID: uuid.New().String(), Quantity: 1}},
	})
	if !errors.Is(err, ErrNoOpenRegister) {
		t.Errorf("err = %v, want ErrNoOpenRegister", err)
	}
}

func TestCreateSaleValidation(t *testing.T) {
	svc, _ := newTestSaleService(&mockSaleStore{})

	_, err := svc.CreateSale(context.Background(), CreateSaleRequest{PaymentMethod: "pix"})
	if !errors.Is(err, ErrEmptyItems) {
		t.Errorf("err = %v, want ErrEmptyItems", err)
	}

	_, err = svc.CreateSale(context.Background(), CreateSaleRequest{
		Items: []CreateSaleItemRequest{{ProductID: uuid.New().String(), Quantity: 1}},
	})
	if !errors.Is(err, ErrMissingPayment) {
		t.Errorf("err = %v, want ErrMissingPayment", err)
	}

	_, err = svc.CreateSale(context.Background(), CreateSaleRequest{
		PaymentMethod:  "pix",
		DiscountAmount: "-3",
		Items:          []CreateSaleItemRequest{{ProductID: uuid.New().String(), Quantity: 1}},
	})
	if !errors.Is(err, ErrInvalidDiscount) {
		t.Errorf("err = %v, want ErrInvalidDiscount", err)
	}
}

func TestCreateSaleProductNotFound(t *testing.T) {
	store := defaultSaleStore(uuid.New(), uuid.New(), uuid.New(), uuid.New())
	svc, _ := newTestSaleService(store)

	_, err := svc.CreateSale(context.Background(), CreateSaleRequest{
		StoreID:       uuid.New(),
		PaymentMethod: "dinheiro",
		Items:         []CreateSaleItemRequest{{ProductID: uuid.New().String(), Quantity: 1}},
	})
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("err = %v, want ErrProductNotFound", err)
	}
}

func TestCreateSaleRetriesOnNumberConflict(t *testing.T) {
	storeID := uuid.New()
	productA := uuid.New()
	store := defaultSaleStore(storeID, uuid.New(), productA, uuid.New())

	attempts := 0
	inner := store.createSaleFn
	store.createSaleFn = func(ctx context.Context, arg database.CreateSaleParams) (database.Sale, error) {
		attempts++
		if attempts == 1 {
			return database.Sale{}, &pgconn.PgError{Code: "23505", ConstraintName: "sales_store_id_sale_number_key"}
		}
		return inner(ctx, arg)
	}
	svc, _ := newTestSaleService(store)

	_, err := svc.CreateSale(context.Background(), CreateSaleRequest{
		StoreID:       storeID,
		PaymentMethod: "dinheiro",
		Items:         []CreateSaleItemRequest{{ProductID: productA.String(), Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
}

func TestCancelSale(t *testing.T) {
	storeID := uuid.New()
	regID := uuid.New()
	saleID := uuid.New()

	var entryArg database.CreateCashEntryParams
	store := &mockSaleStore{
		getSaleFn: func(ctx context.Context, arg database.GetSaleParams) (database.Sale, error) {
			return database.Sale{
				ID: saleID, StoreID: storeID, RegisterID: regID,
				SaleNumber: "PDV-003", PaymentMethod: "dinheiro",
				TotalAmount: makeNumeric("42.00"),
			}, nil
		},
		cancelSaleFn: func(ctx context.Context, arg database.CancelSaleParams) (database.Sale, error) {
			return database.Sale{
				ID: arg.ID, StoreID: storeID, RegisterID: regID,
				SaleNumber: "PDV-003", PaymentMethod: "dinheiro",
				TotalAmount: makeNumeric("42.00"), Cancelled: true,
			}, nil
		},
		getOpenRegisterFn: func(ctx context.Context, sid uuid.UUID) (database.CashRegister, error) {
			return database.CashRegister{ID: regID, StoreID: storeID, Status: database.RegisterStatusOPEN}, nil
		},
		createCashEntryFn: func(ctx context.Context, arg database.CreateCashEntryParams) (database.CashEntry, error) {
			entryArg = arg
			return database.CashEntry{ID: uuid.New()}, nil
		},
	}
	svc, _ := newTestSaleService(store)

	sale, err := svc.CancelSale(context.Background(), storeID, saleID, uuid.New())
	if err != nil {
		t.Fatalf("CancelSale: %v", err)
	}
	if !sale.Cancelled {
		t.Error("sale not marked cancelled")
	}
	if entryArg.Type != database.EntryTypeExpense {
		t.Errorf("reversal type = %s, want expense", entryArg.Type)
	}
	if entryArg.Description != "Cancelamento PDV-003" {
		t.Errorf("reversal description = %q", entryArg.Description)
	}
	if !numericEquals(entryArg.Amount, "42.00") {
		t.Errorf("reversal amount = %v, want 42.00", entryArg.Amount)
	}
}

func TestCancelSaleAlreadyCancelled(t *testing.T) {
	store := &mockSaleStore{
		getSaleFn: func(ctx context.Context, arg database.GetSaleParams) (database.Sale, error) {
			return database.Sale{ID: arg.ID, Cancelled: true}, nil
		},
	}
	svc, _ := newTestSaleService(store)

	_, err := svc.CancelSale(context.Background(), uuid.New(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrSaleCancelled) {
		t.Errorf("err = %v, want ErrSaleCancelled", err)
	}
}

func TestCancelSaleClosedRegisterSkipsReversal(t *testing.T) {
	storeID := uuid.New()
	entryCalls := 0
	store := &mockSaleStore{
		getSaleFn: func(ctx context.Context, arg database.GetSaleParams) (database.Sale, error) {
			return database.Sale{ID: arg.ID, StoreID: storeID, RegisterID: uuid.New(), SaleNumber: "PDV-001", TotalAmount: makeNumeric("10.00")}, nil
		},
		cancelSaleFn: func(ctx context.Context, arg database.CancelSaleParams) (database.Sale, error) {
			return database.Sale{ID: arg.ID, StoreID: storeID, RegisterID: uuid.New(), SaleNumber: "PDV-001", TotalAmount: makeNumeric("10.00"), Cancelled: true}, nil
		},
		getOpenRegisterFn: func(ctx context.Context, sid uuid.UUID) (database.CashRegister, error) {
			return database.CashRegister{}, pgx.ErrNoRows
		},
		createCashEntryFn: func(ctx context.Context, arg database.CreateCashEntryParams) (database.CashEntry, error) {
			entryCalls++
			return database.CashEntry{}, nil
		},
	}
	svc, _ := newTestSaleService(store)

	if _, err := svc.CancelSale(context.Background(), storeID, uuid.New(), uuid.New()); err != nil {
		t.Fatalf("CancelSale: %v", err)
	}
	if entryCalls != 0 {
		t.Errorf("reversal entry written with no open register")
	}
}
