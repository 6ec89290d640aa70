package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// BuildCashSummaryCSV flattens a summary into CSV. Semicolon is the
// field separator so the comma decimal separator survives a double
// click into Excel pt-BR.
func BuildCashSummaryCSV(r CashSummaryReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'

	records := [][]string{
		{"Loja", r.StoreName},
		{"Periodo", r.PeriodStart.Format("02/01/2006"), r.PeriodEnd.Format("02/01/2006")},
		{"Abertura", FormatBRL(r.Summary.OpeningAmount)},
		{},
		{"Origem", "Forma de Pagamento", "Quantidade", "Total"},
	}
	for _, row := range flattenBuckets(r.Summary) {
		records = append(records, []string{
			row.Bucket, row.PaymentMethod, strconv.FormatInt(row.Count, 10), row.Total,
		})
	}

	records = append(records,
		[]string{},
		[]string{"Receita Total Esperada", FormatBRL(r.Summary.ExpectedTotalRevenue)},
		[]string{"Dinheiro Esperado em Caixa", FormatBRL(r.Summary.ExpectedCashInDrawer)},
	)
	if r.Summary.ClosingAmount != nil {
		records = append(records, []string{"Fechamento", FormatBRL(*r.Summary.ClosingAmount)})
	}
	if r.Summary.Difference != nil {
		records = append(records, []string{"Diferenca", FormatBRL(*r.Summary.Difference)})
	}

	if err := w.WriteAll(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
