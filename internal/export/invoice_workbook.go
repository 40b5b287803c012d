package export

import (
	"fmt"
	"io"

	"github.com/SscSPs/renovation_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// InvoiceSheet is the name of the only sheet of an exported invoice.
const InvoiceSheet = "Invoice"

// excelize built-in number format 2 is "0.00".
const fixedTwoDecimals = 2

var lineItemHeader = []any{"#", "Label", "Category", "Quantity", "Unit price", "Tax rate %", "Total"}

// InvoiceWorkbook renders the line items of an invoice in collection order
// followed by the tax breakdown and the totals.
type InvoiceWorkbook struct {
	InvoiceID string
	Items     []domain.LineItem
	Totals    *domain.AggregationResult
}

// WriteTo writes the workbook as XLSX to w.
func (wb InvoiceWorkbook) WriteTo(w io.Writer) (int64, error) {
	f, err := wb.build()
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return f.WriteTo(w)
}

func (wb InvoiceWorkbook) build() (*excelize.File, error) {
	if wb.Totals == nil {
		return nil, fmt.Errorf("invoice %s: totals are required for export", wb.InvoiceID)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", InvoiceSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: fixedTwoDecimals})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create amount style: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	s := sheetWriter{f: f, amountStyle: amountStyle, boldStyle: boldStyle}
	s.row(1, fmt.Sprintf("Invoice %s", wb.InvoiceID))
	s.bold(1, 1)

	s.row(3, lineItemHeader...)
	s.bold(3, len(lineItemHeader))

	row := 4
	for _, item := range wb.Items {
		s.row(row,
			item.Order+1,
			item.Label,
			string(item.Category),
			item.Quantity.InexactFloat64(),
			amount(item.UnitPrice),
			item.TaxRatePercent.InexactFloat64(),
			amount(item.ComputedTotal),
		)
		s.amounts(row, 5, 7)
		row++
	}

	row++
	s.row(row, "Tax rate %", "Taxable base", "Tax")
	s.bold(row, 3)
	row++
	for _, entry := range wb.Totals.TaxBreakdown {
		s.row(row, entry.RatePercent.InexactFloat64(), amount(entry.TaxableBase), amount(entry.TaxAmount))
		s.amounts(row, 2, 3)
		row++
	}

	row++
	for _, total := range []struct {
		label string
		value decimal.Decimal
	}{
		{"Subtotal", domain.Round2(wb.Totals.Subtotal)},
		{"Total tax", wb.Totals.TotalTax},
		{"Grand total", wb.Totals.GrandTotal},
	} {
		s.row(row, total.label, amount(total.value))
		s.bold(row, 1)
		s.amounts(row, 2, 2)
		row++
	}

	if s.err != nil {
		f.Close()
		return nil, s.err
	}
	return f, nil
}

func amount(d decimal.Decimal) float64 {
	return domain.Round2(d).InexactFloat64()
}

// sheetWriter keeps the first error so the layout code reads top to bottom.
type sheetWriter struct {
	f           *excelize.File
	amountStyle int
	boldStyle   int
	err         error
}

func (s *sheetWriter) row(row int, values ...any) {
	if s.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		s.err = err
		return
	}
	if err := s.f.SetSheetRow(InvoiceSheet, cell, &values); err != nil {
		s.err = fmt.Errorf("failed to write row %d: %w", row, err)
	}
}

func (s *sheetWriter) style(row, fromCol, toCol, styleID int) {
	if s.err != nil {
		return
	}
	from, err := excelize.CoordinatesToCellName(fromCol, row)
	if err != nil {
		s.err = err
		return
	}
	to, err := excelize.CoordinatesToCellName(toCol, row)
	if err != nil {
		s.err = err
		return
	}
	if err := s.f.SetCellStyle(InvoiceSheet, from, to, styleID); err != nil {
		s.err = fmt.Errorf("failed to style row %d: %w", row, err)
	}
}

func (s *sheetWriter) bold(row, lastCol int) {
	s.style(row, 1, lastCol, s.boldStyle)
}

func (s *sheetWriter) amounts(row, fromCol, toCol int) {
	s.style(row, fromCol, toCol, s.amountStyle)
}
