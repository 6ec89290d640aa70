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
	"github.com/sabor-pdv/api/internal/enum"
	"github.com/shopspring/decimal"
)

const maxOrderNumberRetries = 3

// Errors returned by the delivery service.
var (
	ErrMissingCustomer      = errors.New("customer_name and customer_phone are required")
	ErrMissingAddress       = errors.New("delivery_address is required")
	ErrInvalidChannel       = errors.New("invalid channel")
	ErrInvalidTotal         = errors.New("invalid total_amount")
	ErrInvalidDeliveryFee   = errors.New("invalid delivery_fee")
	ErrOrderNotFound        = errors.New("order not found")
	ErrInvalidOrderStatus   = errors.New("invalid order status")
	ErrInvalidTransition    = errors.New("status transition not allowed")
	ErrOrderAlreadyTerminal = errors.New("order is delivered or cancelled")
)

// allowedTransitions is the delivery lifecycle. Cancellation from any
// non-terminal state is handled separately by CancelOrder.
var allowedTransitions = map[database.OrderStatus][]database.OrderStatus{
	database.OrderStatusPENDING:        {database.OrderStatusCONFIRMED},
	database.OrderStatusCONFIRMED:      {database.OrderStatusOUTFORDELIVERY},
	database.OrderStatusOUTFORDELIVERY: {database.OrderStatusDELIVERED},
}

// ValidateStatusTransition reports whether an order may move from one
// status to the next.
func ValidateStatusTransition(from, to database.OrderStatus) error {
	if to == database.OrderStatusCANCELLED {
		if from == database.OrderStatusDELIVERED || from == database.OrderStatusCANCELLED {
			return ErrOrderAlreadyTerminal
		}
		return nil
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return nil
		}
	}
	return ErrInvalidTransition
}

// DeliveryStore defines the DB methods needed for delivery orders.
// Satisfied by *database.Queries (and its WithTx variant).
type DeliveryStore interface {
	GetNextOrderNumber(ctx context.Context, storeID uuid.UUID) (int32, error)
	CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	GetOrder(ctx context.Context, arg database.GetOrderParams) (database.Order, error)
	UpdateOrderStatus(ctx context.Context, arg database.UpdateOrderStatusParams) (database.Order, error)
	CancelOrder(ctx context.Context, arg database.CancelOrderParams) (database.Order, error)
	GetOpenRegister(ctx context.Context, storeID uuid.UUID) (database.CashRegister, error)
	CreateCashEntry(ctx context.Context, arg database.CreateCashEntryParams) (database.CashEntry, error)
}

// NewDeliveryStore creates a DeliveryStore from a DBTX (pool or tx).
type NewDeliveryStore func(db database.DBTX) DeliveryStore

// CreateOrderRequest is the validated input for a delivery order.
type CreateOrderRequest struct {
	StoreID         uuid.UUID
	CreatedBy       uuid.UUID
	CustomerName    string
	CustomerPhone   string
	DeliveryAddress string
	Neighborhood    string
	Channel         string
	PaymentMethod   string
	Notes           string
	DeliveryFee     string
	TotalAmount     string
}

// DeliveryService handles delivery-order business logic.
type DeliveryService struct {
	pool     TxBeginner
	newStore NewDeliveryStore
}

func NewDeliveryService(pool TxBeginner, newStore NewDeliveryStore) *DeliveryService {
	return &DeliveryService{pool: pool, newStore: newStore}
}

// CreateOrder validates and records a new delivery order. Retries on
// order_number unique constraint violations, same race as sale numbers.
func (s *DeliveryService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*database.Order, error) {
	if req.CustomerName == "" || req.CustomerPhone == "" {
		return nil, ErrMissingCustomer
	}
	if req.DeliveryAddress == "" {
		return nil, ErrMissingAddress
	}
	if !isValidChannel(req.Channel) {
		return nil, ErrInvalidChannel
	}
	if req.PaymentMethod == "" {
		return nil, ErrMissingPayment
	}

	total, err := decimal.NewFromString(req.TotalAmount)
	if err != nil || total.IsNegative() {
		return nil, ErrInvalidTotal
	}
	fee := decimal.Zero
	if req.DeliveryFee != "" {
		fee, err = decimal.NewFromString(req.DeliveryFee)
		if err != nil || fee.IsNegative() {
			return nil, ErrInvalidDeliveryFee
		}
	}

	var lastErr error
	for attempt := 0; attempt < maxOrderNumberRetries; attempt++ {
		order, err := s.createOrderTx(ctx, req, total, fee)
		if err == nil {
			return order, nil
		}
		if isOrderNumberConflict(err) {
			lastErr = err
			continue
		}
		return nil, err
	}
	return nil, lastErr
}

func isOrderNumberConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "orders_store_id_order_number_key"
	}
	return false
}

func (s *DeliveryService) createOrderTx(ctx context.Context, req CreateOrderRequest, total, fee decimal.Decimal) (*database.Order, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	nextNum, err := store.GetNextOrderNumber(ctx, req.StoreID)
	if err != nil {
		return nil, fmt.Errorf("get next order number: %w", err)
	}

	neighborhood := pgtype.Text{}
	if req.Neighborhood != "" {
		neighborhood = pgtype.Text{String: req.Neighborhood, Valid: true}
	}
	notes := pgtype.Text{}
	if req.Notes != "" {
		notes = pgtype.Text{String: req.Notes, Valid: true}
	}

	order, err := store.CreateOrder(ctx, database.CreateOrderParams{
		StoreID:         req.StoreID,
		OrderNumber:     fmt.Sprintf("DLV-%03d", nextNum),
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		DeliveryAddress: req.DeliveryAddress,
		Neighborhood:    neighborhood,
		Channel:         req.Channel,
		PaymentMethod:   req.PaymentMethod,
		Notes:           notes,
		DeliveryFee:     decimalToNumeric(fee),
		TotalAmount:     decimalToNumeric(total),
		CreatedBy:       req.CreatedBy,
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return &order, nil
}

// UpdateStatus moves an order along its lifecycle. Delivering the order
// settles its payment: when the store has an open register, the total
// (including the delivery fee) lands in the ledger as delivery income.
// The UPDATE carries the expected current status so concurrent
// transitions lose cleanly instead of double-applying.
func (s *DeliveryService) UpdateStatus(ctx context.Context, storeID, orderID uuid.UUID, next database.OrderStatus, operatorName string) (*database.Order, error) {
	switch next {
	case database.OrderStatusPENDING, database.OrderStatusCONFIRMED,
		database.OrderStatusOUTFORDELIVERY, database.OrderStatusDELIVERED,
		database.OrderStatusCANCELLED:
	default:
		return nil, ErrInvalidOrderStatus
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	current, err := store.GetOrder(ctx, database.GetOrderParams{ID: orderID, StoreID: storeID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := ValidateStatusTransition(current.Status, next); err != nil {
		return nil, err
	}

	var order database.Order
	if next == database.OrderStatusCANCELLED {
		order, err = store.CancelOrder(ctx, database.CancelOrderParams{ID: orderID, StoreID: storeID})
	} else {
		order, err = store.UpdateOrderStatus(ctx, database.UpdateOrderStatusParams{
			ID:       orderID,
			StoreID:  storeID,
			Status:   next,
			Status_2: current.Status,
		})
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Someone else transitioned the order first.
			return nil, ErrInvalidTransition
		}
		return nil, fmt.Errorf("update order status: %w", err)
	}

	if next == database.OrderStatusDELIVERED {
		if err := s.recordDeliveryIncome(ctx, store, order, operatorName); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return &order, nil
}

// recordDeliveryIncome writes the "Delivery #<n>" ledger entry. A store
// with no open register still delivers orders; the income then has to
// be entered manually at the next shift.
func (s *DeliveryService) recordDeliveryIncome(ctx context.Context, store DeliveryStore, order database.Order, operatorName string) error {
	reg, err := store.GetOpenRegister(ctx, order.StoreID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("get open register: %w", err)
	}

	operator := pgtype.Text{}
	if operatorName != "" {
		operator = pgtype.Text{String: operatorName, Valid: true}
	}
	_, err = store.CreateCashEntry(ctx, database.CreateCashEntryParams{
		RegisterID:    reg.ID,
		Type:          database.EntryTypeIncome,
		Source:        database.NullEntrySource{EntrySource: database.EntrySourceDelivery, Valid: true},
		PaymentMethod: order.PaymentMethod,
		Amount:        order.TotalAmount,
		Description:   fmt.Sprintf("Delivery #%s", deliveryNumber(order.OrderNumber)),
		OperatorName:  operator,
	})
	if err != nil {
		return fmt.Errorf("create cash entry: %w", err)
	}
	return nil
}

// deliveryNumber strips the DLV- prefix for the ledger description,
// which keeps the numbering the legacy rows used.
func deliveryNumber(orderNumber string) string {
	if len(orderNumber) > 4 && orderNumber[:4] == "DLV-" {
		n := orderNumber[4:]
		for len(n) > 1 && n[0] == '0' {
			n = n[1:]
		}
		return n
	}
	return orderNumber
}

func isValidChannel(s string) bool {
	switch s {
	case enum.OrderChannelWhatsApp, enum.OrderChannelIfood,
		enum.OrderChannelPhone, enum.OrderChannelCounter:
		return true
	}
	return false
}
