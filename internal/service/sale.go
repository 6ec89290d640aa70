package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/sabor-pdv/api/internal/database"
	"github.com/shopspring/decimal"
)

const maxSaleNumberRetries = 3

// Errors returned by the sale service.
var (
	ErrEmptyItems       = errors.New("items are required")
	ErrInvalidQuantity  = errors.New("quantity must be > 0")
	ErrInvalidProductID = errors.New("invalid product_id")
	ErrProductNotFound  = errors.New("product not found in store")
	ErrInvalidDiscount  = errors.New("invalid discount_amount")
	ErrSaleNotFound     = errors.New("sale not found")
	ErrSaleCancelled    = errors.New("sale is already cancelled")
	ErrMissingPayment   = errors.New("payment_method is required")
)

// SaleStore defines the DB methods needed to create and cancel sales.
// Satisfied by *database.Queries (and its WithTx variant).
type SaleStore interface {
	GetOpenRegister(ctx context.Context, storeID uuid.UUID) (database.CashRegister, error)
	GetNextSaleNumber(ctx context.Context, storeID uuid.UUID) (int32, error)
	GetProductForSale(ctx context.Context, arg database.GetProductForSaleParams) (database.GetProductForSaleRow, error)
	CreateSale(ctx context.Context, arg database.CreateSaleParams) (database.Sale, error)
	CreateSaleItem(ctx context.Context, arg database.CreateSaleItemParams) (database.SaleItem, error)
	GetSale(ctx context.Context, arg database.GetSaleParams) (database.Sale, error)
	CancelSale(ctx context.Context, arg database.CancelSaleParams) (database.Sale, error)
	CreateCashEntry(ctx context.Context, arg database.CreateCashEntryParams) (database.CashEntry, error)
}

// NewSaleStore creates a SaleStore from a DBTX (pool or tx).
type NewSaleStore func(db database.DBTX) SaleStore

// CreateSaleRequest is the validated input for a PDV sale.
type CreateSaleRequest struct {
	StoreID        uuid.UUID
	CreatedBy      uuid.UUID
	OperatorName   string
	PaymentMethod  string
	DiscountAmount string
	Items          []CreateSaleItemRequest
}

// CreateSaleItemRequest is a single line in the sale.
type CreateSaleItemRequest struct {
	ProductID string
	Quantity  int32
}

// CreateSaleResult is the created sale with its items and the ledger
// entry it produced.
type CreateSaleResult struct {
	Sale  database.Sale
	Items []database.SaleItem
	Entry database.CashEntry
}

// SaleService handles PDV sale business logic.
type SaleService struct {
	pool     TxBeginner
	newStore NewSaleStore
}

func NewSaleService(pool TxBeginner, newStore NewSaleStore) *SaleService {
	return &SaleService{pool: pool, newStore: newStore}
}

// CreateSale validates, prices, and records a sale atomically: the sale
// row, its items, and the register's income entry all commit together.
// Retries on sale_number unique constraint violations (concurrent
// transactions can read the same MAX).
func (s *SaleService) CreateSale(ctx context.Context, req CreateSaleRequest) (*CreateSaleResult, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}
	if req.PaymentMethod == "" {
		return nil, ErrMissingPayment
	}

	discount := decimal.Zero
	if req.DiscountAmount != "" {
		d, err := decimal.NewFromString(req.DiscountAmount)
		if err != nil || d.IsNegative() {
			return nil, ErrInvalidDiscount
		}
		discount = d
	}

	var lastErr error
	for attempt := 0; attempt < maxSaleNumberRetries; attempt++ {
		result, err := s.createSaleTx(ctx, req, discount)
		if err == nil {
			return result, nil
		}
		if isSaleNumberConflict(err) {
			lastErr = err
			continue
		}
		return nil, err
	}
	return nil, lastErr
}

func isSaleNumberConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "sales_store_id_sale_number_key"
	}
	return false
}

func (s *SaleService) createSaleTx(ctx context.Context, req CreateSaleRequest, discount decimal.Decimal) (*CreateSaleResult, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	// A sale needs an open drawer to land its cash entry in.
	reg, err := store.GetOpenRegister(ctx, req.StoreID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoOpenRegister
		}
		return nil, fmt.Errorf("get open register: %w", err)
	}

	nextNum, err := store.GetNextSaleNumber(ctx, req.StoreID)
	if err != nil {
		return nil, fmt.Errorf("get next sale number: %w", err)
	}
	saleNumber := fmt.Sprintf("PDV-%03d", nextNum)

	subtotal := decimal.Zero
	type pricedItem struct {
		params database.CreateSaleItemParams
	}
	var items []pricedItem

	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("item[%d]: %w", i, ErrInvalidQuantity)
		}
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("item[%d]: %w", i, ErrInvalidProductID)
		}
		product, err := store.GetProductForSale(ctx, database.GetProductForSaleParams{
			ID:      productID,
			StoreID: req.StoreID,
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("item[%d]: %w", i, ErrProductNotFound)
			}
			return nil, fmt.Errorf("item[%d]: get product: %w", i, err)
		}

		unitPrice := numericToDecimal(product.Price)
		itemSubtotal := unitPrice.Mul(decimal.NewFromInt32(item.Quantity))
		subtotal = subtotal.Add(itemSubtotal)

		items = append(items, pricedItem{params: database.CreateSaleItemParams{
			ProductID:   productID,
			ProductName: product.Name,
			UnitPrice:   decimalToNumeric(unitPrice),
			Quantity:    item.Quantity,
			Subtotal:    decimalToNumeric(itemSubtotal),
		}})
	}

	totalAmount := subtotal.Sub(discount)
	if totalAmount.IsNegative() {
		totalAmount = decimal.Zero
	}

	sale, err := store.CreateSale(ctx, database.CreateSaleParams{
		StoreID:        req.StoreID,
		RegisterID:     reg.ID,
		SaleNumber:     saleNumber,
		PaymentMethod:  req.PaymentMethod,
		Subtotal:       decimalToNumeric(subtotal),
		DiscountAmount: decimalToNumeric(discount),
		TotalAmount:    decimalToNumeric(totalAmount),
		CreatedBy:      req.CreatedBy,
	})
	if err != nil {
		return nil, fmt.Errorf("create sale: %w", err)
	}

	var saleItems []database.SaleItem
	for _, pi := range items {
		pi.params.SaleID = sale.ID
		si, err := store.CreateSaleItem(ctx, pi.params)
		if err != nil {
			return nil, fmt.Errorf("create sale item: %w", err)
		}
		saleItems = append(saleItems, si)
	}

	operator := pgtype.Text{}
	if req.OperatorName != "" {
		operator = pgtype.Text{String: req.OperatorName, Valid: true}
	}
	entry, err := store.CreateCashEntry(ctx, database.CreateCashEntryParams{
		RegisterID:    reg.ID,
		Type:          database.EntryTypeIncome,
		Source:        database.NullEntrySource{EntrySource: database.EntrySourcePdv, Valid: true},
		PaymentMethod: req.PaymentMethod,
		Amount:        decimalToNumeric(totalAmount),
		Description:   fmt.Sprintf("Venda #%d", nextNum),
		OperatorName:  operator,
	})
	if err != nil {
		return nil, fmt.Errorf("create cash entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return &CreateSaleResult{Sale: sale, Items: saleItems, Entry: entry}, nil
}

// CancelSale voids a sale and, while the owning register is still open,
// records a compensating expense entry so the drawer math stays honest.
func (s *SaleService) CancelSale(ctx context.Context, storeID, saleID, cancelledBy uuid.UUID) (*database.Sale, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	existing, err := store.GetSale(ctx, database.GetSaleParams{ID: saleID, StoreID: storeID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if existing.Cancelled {
		return nil, ErrSaleCancelled
	}

	sale, err := store.CancelSale(ctx, database.CancelSaleParams{
		ID:          saleID,
		StoreID:     storeID,
		CancelledBy: pgtype.UUID{Bytes: cancelledBy, Valid: true},
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSaleCancelled
		}
		return nil, fmt.Errorf("cancel sale: %w", err)
	}

	// Only compensate in the drawer if the register is still open;
	// closed registers are immutable and already reconciled.
	reg, err := store.GetOpenRegister(ctx, storeID)
	if err == nil && reg.ID == sale.RegisterID {
		_, err = store.CreateCashEntry(ctx, database.CreateCashEntryParams{
			RegisterID:    reg.ID,
			Type:          database.EntryTypeExpense,
			Source:        database.NullEntrySource{EntrySource: database.EntrySourceManual, Valid: true},
			PaymentMethod: sale.PaymentMethod,
			Amount:        sale.TotalAmount,
			Description:   fmt.Sprintf("Cancelamento %s", sale.SaleNumber),
		})
		if err != nil {
			return nil, fmt.Errorf("create reversal entry: %w", err)
		}
	} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get open register: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return &sale, nil
}
