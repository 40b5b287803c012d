package export_test

import (
	"bytes"
	"testing"

	"github.com/SscSPs/renovation_backoffice/internal/core/domain"
	"github.com/SscSPs/renovation_backoffice/internal/export"
	"github.com/SscSPs/renovation_backoffice/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func lineItem(t *testing.T, id, label, price, qty, rate string, order int) domain.LineItem {
	t.Helper()
	item, err := domain.NewLineItem(id, "inv-1", domain.LineItemFields{
		Label:          label,
		UnitPrice:      decimal.RequireFromString(price),
		Quantity:       decimal.RequireFromString(qty),
		TaxRatePercent: decimal.RequireFromString(rate),
		Category:       domain.CategoryLabour,
	}, order)
	require.NoError(t, err)
	return item
}

func TestInvoiceWorkbook_WriteTo(t *testing.T) {
	items := []domain.LineItem{
		lineItem(t, "a", "Tiling", "100", "1", "20", 0),
		lineItem(t, "b", "Grout", "50", "1", "20", 1),
		lineItem(t, "c", "Sand", "30", "1", "5", 2),
	}
	totals := accounting.Aggregate(items)

	var buf bytes.Buffer
	_, err := export.InvoiceWorkbook{InvoiceID: "inv-1", Items: items, Totals: &totals}.WriteTo(&buf)
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(export.InvoiceSheet)
	require.NoError(t, err)

	assert.Equal(t, "Invoice inv-1", rows[0][0])
	assert.Equal(t, []string{"#", "Label", "Category", "Quantity", "Unit price", "Tax rate %", "Total"}, rows[2])
	assert.Equal(t, "Tiling", rows[3][1])
	assert.Equal(t, "120.00", rows[3][6])
	assert.Equal(t, "Grout", rows[4][1])
	assert.Equal(t, "Sand", rows[5][1])
	assert.Equal(t, "31.50", rows[5][6])

	// blank row, breakdown header, rates ascending
	assert.Equal(t, "Tax rate %", rows[7][0])
	assert.Equal(t, []string{"5", "30.00", "1.50"}, rows[8])
	assert.Equal(t, []string{"20", "150.00", "30.00"}, rows[9])

	assert.Equal(t, []string{"Subtotal", "180.00"}, rows[11])
	assert.Equal(t, []string{"Total tax", "31.50"}, rows[12])
	assert.Equal(t, []string{"Grand total", "211.50"}, rows[13])
}

func TestInvoiceWorkbook_EmptyInvoice(t *testing.T) {
	totals := accounting.Aggregate(nil)

	var buf bytes.Buffer
	_, err := export.InvoiceWorkbook{InvoiceID: "empty", Totals: &totals}.WriteTo(&buf)
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	grand, err := f.GetCellValue(export.InvoiceSheet, "B9")
	require.NoError(t, err)
	assert.Equal(t, "0.00", grand)
}

func TestInvoiceWorkbook_RequiresTotals(t *testing.T) {
	var buf bytes.Buffer
	_, err := export.InvoiceWorkbook{InvoiceID: "inv-1"}.WriteTo(&buf)
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}
