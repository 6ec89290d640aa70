package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// BuildCashSummaryXLSX renders the summary as a two-sheet workbook:
// a header sheet with the balances and a movements sheet with the
// flattened per-method rows.
func BuildCashSummaryXLSX(r CashSummaryReport) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "resumo"
	movementsSheet := "movimentos"
	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(movementsSheet); err != nil {
		return nil, err
	}

	_ = f.SetCellValue(summarySheet, "A1", "Fechamento de Caixa")
	_ = f.SetCellValue(summarySheet, "A3", "Loja")
	_ = f.SetCellValue(summarySheet, "B3", r.StoreName)
	_ = f.SetCellValue(summarySheet, "A4", "Periodo")
	_ = f.SetCellValue(summarySheet, "B4", fmt.Sprintf("%s a %s",
		r.PeriodStart.Format("02/01/2006"), r.PeriodEnd.Format("02/01/2006")))
	_ = f.SetCellValue(summarySheet, "A5", "Operador")
	_ = f.SetCellValue(summarySheet, "B5", r.OperatorName)
	_ = f.SetCellValue(summarySheet, "A6", "Abertura")
	_ = f.SetCellValue(summarySheet, "B6", FormatBRL(r.Summary.OpeningAmount))
	_ = f.SetCellValue(summarySheet, "A7", "Receita Total Esperada")
	_ = f.SetCellValue(summarySheet, "B7", FormatBRL(r.Summary.ExpectedTotalRevenue))
	_ = f.SetCellValue(summarySheet, "A8", "Dinheiro Esperado em Caixa")
	_ = f.SetCellValue(summarySheet, "B8", FormatBRL(r.Summary.ExpectedCashInDrawer))
	if r.Summary.ClosingAmount != nil {
		_ = f.SetCellValue(summarySheet, "A9", "Fechamento")
		_ = f.SetCellValue(summarySheet, "B9", FormatBRL(*r.Summary.ClosingAmount))
	}
	if r.Summary.Difference != nil {
		_ = f.SetCellValue(summarySheet, "A10", "Diferenca")
		_ = f.SetCellValue(summarySheet, "B10", FormatBRL(*r.Summary.Difference))
	}

	_ = f.SetCellValue(movementsSheet, "A1", "Origem")
	_ = f.SetCellValue(movementsSheet, "B1", "Forma de Pagamento")
	_ = f.SetCellValue(movementsSheet, "C1", "Quantidade")
	_ = f.SetCellValue(movementsSheet, "D1", "Total")
	for i, row := range flattenBuckets(r.Summary) {
		n := i + 2
		_ = f.SetCellValue(movementsSheet, fmt.Sprintf("A%d", n), row.Bucket)
		_ = f.SetCellValue(movementsSheet, fmt.Sprintf("B%d", n), row.PaymentMethod)
		_ = f.SetCellValue(movementsSheet, fmt.Sprintf("C%d", n), row.Count)
		_ = f.SetCellValue(movementsSheet, fmt.Sprintf("D%d", n), row.Total)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
