// Package export serializes cash-reconciliation summaries into the
// formats the back office asks for: CSV for spreadsheets, XLSX for
// archiving, PDF for the printed shift-closing report. All currency is
// formatted in the Brazilian locale.
package export

import (
	"sort"
	"time"

	"github.com/sabor-pdv/api/internal/reconcile"
)

// CashSummaryReport bundles one register summary with the labels the
// rendered document needs.
type CashSummaryReport struct {
	StoreName    string
	OperatorName string
	PeriodStart  time.Time
	PeriodEnd    time.Time
	Summary      *reconcile.Summary
}

// bucketRow is one flattened line of the summary.
type bucketRow struct {
	Bucket        string
	PaymentMethod string
	Count         int64
	Total         string
}

// flattenBuckets walks the four buckets in a fixed order, with payment
// methods sorted inside each, so exports are deterministic.
func flattenBuckets(s *reconcile.Summary) []bucketRow {
	var rows []bucketRow
	for _, b := range []struct {
		name   string
		bucket reconcile.Bucket
	}{
		{"PDV", s.PDV},
		{"Delivery", s.Delivery},
		{"Manual", s.Manual},
		{"Despesas", s.Expense},
	} {
		methods := make([]string, 0, len(b.bucket.ByMethod))
		for m := range b.bucket.ByMethod {
			methods = append(methods, m)
		}
		sort.Strings(methods)
		for _, m := range methods {
			mt := b.bucket.ByMethod[m]
			rows = append(rows, bucketRow{
				Bucket:        b.name,
				PaymentMethod: m,
				Count:         mt.Count,
				Total:         FormatBRL(mt.Total),
			})
		}
		rows = append(rows, bucketRow{
			Bucket:        b.name,
			PaymentMethod: "total",
			Count:         b.bucket.Count,
			Total:         FormatBRL(b.bucket.Total),
		})
	}
	return rows
}
