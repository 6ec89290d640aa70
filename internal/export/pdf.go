package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
)

// BuildCashSummaryPDF renders the printed shift-closing report.
func BuildCashSummaryPDF(r CashSummaryReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "B", 14)
	pdf.AddPage()

	pdf.Cell(0, 8, "Fechamento de Caixa")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Loja: %s", r.StoreName))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Periodo: %s a %s",
		r.PeriodStart.Format("02/01/2006"), r.PeriodEnd.Format("02/01/2006")))
	pdf.Ln(5)
	if r.OperatorName != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Operador: %s", r.OperatorName))
		pdf.Ln(5)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Abertura: %s", FormatBRL(r.Summary.OpeningAmount)))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(50, 6, "Origem", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, "Forma de Pagamento", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Qtde", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, "Total", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, row := range flattenBuckets(r.Summary) {
		pdf.CellFormat(50, 6, row.Bucket, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, row.PaymentMethod, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, strconv.FormatInt(row.Count, 10), "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, 6, row.Total, "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.Cell(0, 6, fmt.Sprintf("Receita Total Esperada: %s", FormatBRL(r.Summary.ExpectedTotalRevenue)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Dinheiro Esperado em Caixa: %s", FormatBRL(r.Summary.ExpectedCashInDrawer)))
	pdf.Ln(5)
	if r.Summary.ClosingAmount != nil {
		pdf.Cell(0, 6, fmt.Sprintf("Fechamento: %s", FormatBRL(*r.Summary.ClosingAmount)))
		pdf.Ln(5)
	}
	if r.Summary.Difference != nil {
		pdf.Cell(0, 6, fmt.Sprintf("Diferenca: %s", FormatBRL(*r.Summary.Difference)))
		pdf.Ln(5)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
