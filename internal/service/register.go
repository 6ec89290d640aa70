package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/sabor-pdv/api/internal/database"
	"github.com/sabor-pdv/api/internal/enum"
	"github.com/sabor-pdv/api/internal/reconcile"
	"github.com/shopspring/decimal"
)

// Errors returned by the register service.
var (
	ErrRegisterAlreadyOpen = errors.New("store already has an open cash register")
	ErrNoOpenRegister      = errors.New("store has no open cash register")
	ErrRegisterNotFound    = errors.New("cash register not found")
	ErrRegisterClosed      = errors.New("cash register is already closed")
	ErrInvalidAmount       = errors.New("amount must be a non-negative decimal")
	ErrInvalidEntryType    = errors.New("invalid entry type")
)

// RegisterStore defines the DB methods needed for register lifecycle.
// Satisfied by *database.Queries (and its WithTx variant).
type RegisterStore interface {
	GetOpenRegister(ctx context.Context, storeID uuid.UUID) (database.CashRegister, error)
	CreateCashRegister(ctx context.Context, arg database.CreateCashRegisterParams) (database.CashRegister, error)
	GetCashRegisterForUpdate(ctx context.Context, arg database.GetCashRegisterForUpdateParams) (database.CashRegister, error)
	ListCashEntriesByRegister(ctx context.Context, registerID uuid.UUID) ([]database.CashEntry, error)
	CloseCashRegister(ctx context.Context, arg database.CloseCashRegisterParams) (database.CashRegister, error)
	CreateCashEntry(ctx context.Context, arg database.CreateCashEntryParams) (database.CashEntry, error)
}

// NewRegisterStore creates a RegisterStore from a DBTX (pool or tx).
type NewRegisterStore func(db database.DBTX) RegisterStore

// RegisterService handles cash-register open/close and manual entries.
type RegisterService struct {
	pool     TxBeginner
	newStore NewRegisterStore
}

func NewRegisterService(pool TxBeginner, newStore NewRegisterStore) *RegisterService {
	return &RegisterService{pool: pool, newStore: newStore}
}

// OpenRegister starts a shift. A store can only have one open register
// at a time, so the check and insert share a transaction.
func (s *RegisterService) OpenRegister(ctx context.Context, storeID, openedBy uuid.UUID, openingAmount decimal.Decimal) (*database.CashRegister, error) {
	if openingAmount.IsNegative() {
		return nil, ErrInvalidAmount
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	_, err = store.GetOpenRegister(ctx, storeID)
	if err == nil {
		return nil, ErrRegisterAlreadyOpen
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("check open register: %w", err)
	}

	reg, err := store.CreateCashRegister(ctx, database.CreateCashRegisterParams{
		StoreID:       storeID,
		OpeningAmount: decimalToNumeric(openingAmount),
		OpenedBy:      openedBy,
	})
	if err != nil {
		return nil, fmt.Errorf("create register: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return &reg, nil
}

// CloseRegisterResult is the closed register plus the reconciliation
// the close was computed from.
type CloseRegisterResult struct {
	Register database.CashRegister
	Summary  *reconcile.Summary
}

// CloseRegister counts the drawer against the ledger and freezes the
// register. The register row is locked for the duration so a concurrent
// sale cannot slip an entry in after the expected balance is computed.
func (s *RegisterService) CloseRegister(ctx context.Context, storeID, registerID, closedBy uuid.UUID, closingAmount decimal.Decimal) (*CloseRegisterResult, error) {
	if closingAmount.IsNegative() {
		return nil, ErrInvalidAmount
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	reg, err := store.GetCashRegisterForUpdate(ctx, database.GetCashRegisterForUpdateParams{
		ID:      registerID,
		StoreID: storeID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRegisterNotFound
		}
		return nil, fmt.Errorf("get register: %w", err)
	}
	if reg.Status == database.RegisterStatusCLOSED {
		return nil, ErrRegisterClosed
	}

	rows, err := store.ListCashEntriesByRegister(ctx, registerID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	summary, err := reconcile.Summarize(reconcile.Register{
		OpeningAmount: numericToDecimal(reg.OpeningAmount),
		ClosingAmount: &closingAmount,
	}, EntriesForReconcile(rows))
	if err != nil {
		return nil, fmt.Errorf("reconcile: %w", err)
	}

	closed, err := store.CloseCashRegister(ctx, database.CloseCashRegisterParams{
		ID:             registerID,
		ClosingAmount:  decimalToNumeric(closingAmount),
		ExpectedAmount: decimalToNumeric(summary.ExpectedCashInDrawer),
		Difference:     decimalToNumeric(*summary.Difference),
		ClosedBy:       pgtype.UUID{Bytes: closedBy, Valid: true},
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRegisterClosed
		}
		return nil, fmt.Errorf("close register: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return &CloseRegisterResult{Register: closed, Summary: summary}, nil
}

// AddManualEntryRequest is the validated input for a manual ledger line.
type AddManualEntryRequest struct {
	StoreID       uuid.UUID
	RegisterID    uuid.UUID
	Type          string
	PaymentMethod string
	Amount        decimal.Decimal
	Description   string
	OperatorName  string
}

// AddManualEntry records an income or expense adjustment against an
// open register. Manual entries always carry the manual source tag.
func (s *RegisterService) AddManualEntry(ctx context.Context, req AddManualEntryRequest) (*database.CashEntry, error) {
	if req.Type != enum.EntryTypeIncome && req.Type != enum.EntryTypeExpense {
		return nil, ErrInvalidEntryType
	}
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return nil, ErrInvalidAmount
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = enum.PaymentMethodCash
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	reg, err := store.GetCashRegisterForUpdate(ctx, database.GetCashRegisterForUpdateParams{
		ID:      req.RegisterID,
		StoreID: req.StoreID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRegisterNotFound
		}
		return nil, fmt.Errorf("get register: %w", err)
	}
	if reg.Status == database.RegisterStatusCLOSED {
		return nil, ErrRegisterClosed
	}

	operator := pgtype.Text{}
	if req.OperatorName != "" {
		operator = pgtype.Text{String: req.OperatorName, Valid: true}
	}

	entry, err := store.CreateCashEntry(ctx, database.CreateCashEntryParams{
		RegisterID:    req.RegisterID,
		Type:          database.EntryType(req.Type),
		Source:        database.NullEntrySource{EntrySource: database.EntrySourceManual, Valid: true},
		PaymentMethod: req.PaymentMethod,
		Amount:        decimalToNumeric(req.Amount),
		Description:   req.Description,
		OperatorName:  operator,
	})
	if err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return &entry, nil
}
