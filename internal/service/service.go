// Package service holds the business logic that spans more than one
// table: PDV sale creation, delivery lifecycle, and cash-register
// open/close. Each service begins its own transactions and talks to
// the database through a narrow store interface so tests can swap in
// mocks.
package service

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/sabor-pdv/api/internal/database"
	"github.com/sabor-pdv/api/internal/reconcile"
	"github.com/shopspring/decimal"
)

// TxBeginner starts a new database transaction.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(d.StringFixed(2))
	return n
}

// entryForReconcile converts a ledger row into the aggregator's input
// shape. Legacy rows without a source column value carry an empty
// Source and fall back to description inference inside reconcile.
func entryForReconcile(e database.CashEntry) reconcile.Entry {
	source := ""
	if e.Source.Valid {
		source = string(e.Source.EntrySource)
	}
	operator := ""
	if e.OperatorName.Valid {
		operator = e.OperatorName.String
	}
	return reconcile.Entry{
		Type:          string(e.Type),
		Source:        source,
		PaymentMethod: e.PaymentMethod,
		Amount:        numericToDecimal(e.Amount),
		Description:   e.Description,
		OperatorName:  operator,
		CreatedAt:     e.CreatedAt,
	}
}

// RegisterForReconcile converts a register row into the aggregator's
// input shape. ClosingAmount stays nil while the register is open.
func RegisterForReconcile(reg database.CashRegister) reconcile.Register {
	r := reconcile.Register{OpeningAmount: numericToDecimal(reg.OpeningAmount)}
	if reg.ClosingAmount.Valid {
		closing := numericToDecimal(reg.ClosingAmount)
		r.ClosingAmount = &closing
	}
	return r
}

// EntriesForReconcile converts ledger rows for the aggregator.
func EntriesForReconcile(rows []database.CashEntry) []reconcile.Entry {
	entries := make([]reconcile.Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, entryForReconcile(r))
	}
	return entries
}
