// Package reconcile aggregates cash-register ledger entries into a
// per-shift financial summary: totals by source, totals by payment
// method, and expected-vs-actual balances. It is a pure single-pass
// fold over in-memory rows and performs no I/O.
package reconcile

import (
	"fmt"
	"strings"
	"time"

	"github.com/sabor-pdv/api/internal/enum"
	"github.com/shopspring/decimal"
)

// Entry is a single ledger line taken from a cash register.
// Source may be empty on rows written before the explicit source
// column existed; those fall back to description inference.
type Entry struct {
	Type          string
	Source        string
	PaymentMethod string
	Amount        decimal.Decimal
	Description   string
	OperatorName  string
	CreatedAt     time.Time
}

// Register carries the opening float and, once the shift is closed,
// the counted closing amount.
type Register struct {
	OpeningAmount decimal.Decimal
	ClosingAmount *decimal.Decimal
}

// MethodTotal is a (count, sum) pair for one payment method.
type MethodTotal struct {
	Count int64           `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// Bucket accumulates one source classification: a (count, sum) pair
// plus a per-payment-method breakdown. Unknown payment methods pass
// through as opaque keys.
type Bucket struct {
	Count    int64                  `json:"count"`
	Total    decimal.Decimal        `json:"total"`
	ByMethod map[string]MethodTotal `json:"by_method"`
}

func newBucket() Bucket {
	return Bucket{Total: decimal.Zero, ByMethod: map[string]MethodTotal{}}
}

func (b *Bucket) add(method string, amount decimal.Decimal) {
	b.Count++
	b.Total = b.Total.Add(amount)
	mt := b.ByMethod[method]
	mt.Count++
	mt.Total = mt.Total.Add(amount)
	b.ByMethod[method] = mt
}

// Summary is the aggregated result of one register's entries.
//
// Two expected balances are surfaced because the drawer count and the
// revenue report answer different questions: the drawer only ever holds
// physical cash, while revenue spans every payment method.
type Summary struct {
	PDV      Bucket `json:"pdv"`
	Delivery Bucket `json:"delivery"`
	Manual   Bucket `json:"manual"`
	Expense  Bucket `json:"expense"`

	OpeningAmount decimal.Decimal  `json:"opening_amount"`
	ClosingAmount *decimal.Decimal `json:"closing_amount"`

	// ExpectedCashInDrawer = opening + cash income - cash expense.
	ExpectedCashInDrawer decimal.Decimal `json:"expected_cash_in_drawer"`
	// ExpectedTotalRevenue = opening + all income - all expense.
	ExpectedTotalRevenue decimal.Decimal `json:"expected_total_revenue"`

	// Difference = closing - ExpectedCashInDrawer. Nil until the
	// register is closed; never zero as a stand-in for "unknown".
	Difference *decimal.Decimal `json:"difference"`
}

// TotalIncome is the sum of the three income buckets.
func (s *Summary) TotalIncome() decimal.Decimal {
	return s.PDV.Total.Add(s.Delivery.Total).Add(s.Manual.Total)
}

// ValidationError reports a malformed input entry. Aggregation is
// rejected rather than coercing bad rows.
type ValidationError struct {
	Index int
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("entry[%d]: %s: %s", e.Index, e.Field, e.Msg)
}

// ClassifySource returns the bucket an entry belongs to. Expense
// entries bucket as expense regardless of any source label. For income,
// the stored source wins when present; legacy rows with an empty source
// are inferred from the description text the old client wrote
// ("Venda #..." for PDV sales, "Delivery #..." for delivery payments).
func ClassifySource(e Entry) string {
	if e.Type == enum.EntryTypeExpense {
		return enum.EntryTypeExpense
	}
	switch e.Source {
	case enum.EntrySourcePDV, enum.EntrySourceDelivery, enum.EntrySourceManual:
		return e.Source
	}
	if strings.Contains(e.Description, "Venda #") {
		return enum.EntrySourcePDV
	}
	if strings.Contains(e.Description, "Delivery #") {
		return enum.EntrySourceDelivery
	}
	return enum.EntrySourceManual
}

// Summarize folds a register's entries into a Summary. The result is
// order-independent; an empty entry slice yields all-zero totals.
func Summarize(reg Register, entries []Entry) (*Summary, error) {
	s := &Summary{
		PDV:           newBucket(),
		Delivery:      newBucket(),
		Manual:        newBucket(),
		Expense:       newBucket(),
		OpeningAmount: reg.OpeningAmount,
		ClosingAmount: reg.ClosingAmount,
	}

	cashIncome := decimal.Zero
	cashExpense := decimal.Zero

	for i, e := range entries {
		if e.Type != enum.EntryTypeIncome && e.Type != enum.EntryTypeExpense {
			return nil, &ValidationError{Index: i, Field: "type", Msg: fmt.Sprintf("unknown entry type %q", e.Type)}
		}
		if e.PaymentMethod == "" {
			return nil, &ValidationError{Index: i, Field: "payment_method", Msg: "is required"}
		}
		if e.Amount.IsNegative() {
			return nil, &ValidationError{Index: i, Field: "amount", Msg: "must not be negative"}
		}

		switch ClassifySource(e) {
		case enum.EntrySourcePDV:
			s.PDV.add(e.PaymentMethod, e.Amount)
		case enum.EntrySourceDelivery:
			s.Delivery.add(e.PaymentMethod, e.Amount)
		case enum.EntrySourceManual:
			s.Manual.add(e.PaymentMethod, e.Amount)
		case enum.EntryTypeExpense:
			s.Expense.add(e.PaymentMethod, e.Amount)
		}

		if e.PaymentMethod == enum.PaymentMethodCash {
			if e.Type == enum.EntryTypeIncome {
				cashIncome = cashIncome.Add(e.Amount)
			} else {
				cashExpense = cashExpense.Add(e.Amount)
			}
		}
	}

	s.ExpectedCashInDrawer = reg.OpeningAmount.Add(cashIncome).Sub(cashExpense)
	s.ExpectedTotalRevenue = reg.OpeningAmount.Add(s.TotalIncome()).Sub(s.Expense.Total)

	if reg.ClosingAmount != nil {
		diff := reg.ClosingAmount.Sub(s.ExpectedCashInDrawer)
		s.Difference = &diff
	}

	return s, nil
}

// Percentage returns part/total as a percentage rounded to two decimal
// places, or exactly zero when total is zero.
func Percentage(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Mul(decimal.NewFromInt(100)).Div(total).Round(2)
}
