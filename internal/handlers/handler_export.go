package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/renovation_backoffice/internal/core/ports/services"
	"github.com/SscSPs/renovation_backoffice/internal/export"
	"github.com/SscSPs/renovation_backoffice/internal/middleware"
	"github.com/SscSPs/renovation_backoffice/internal/utils/accounting"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type exportHandler struct {
	lineItemService portssvc.LineItemSvcFacade
}

func registerExportRoutes(invoice *gin.RouterGroup, lineItemService portssvc.LineItemSvcFacade) {
	h := &exportHandler{lineItemService: lineItemService}
	invoice.GET("/export.xlsx", h.exportInvoice)
}

// exportInvoice streams the invoice as a spreadsheet. The workbook is built
// in memory first so a failure still yields a JSON error.
func (h *exportHandler) exportInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	items, err := h.lineItemService.ListLineItems(c.Request.Context(), invoiceID)
	if err != nil {
		respondError(c, logger, err, "export invoice")
		return
	}
	// Totals come from the same snapshot as the rows.
	totals := accounting.Aggregate(items)

	var buf bytes.Buffer
	if _, err := (export.InvoiceWorkbook{InvoiceID: invoiceID, Items: items, Totals: &totals}).WriteTo(&buf); err != nil {
		respondError(c, logger, err, "export invoice")
		return
	}

	logger.Info("Invoice exported", slog.Int("line_items", len(items)), slog.Int("bytes", buf.Len()))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="invoice-%s.xlsx"`, invoiceID))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
