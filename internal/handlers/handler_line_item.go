package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/renovation_backoffice/internal/apperrors"
	portssvc "github.com/SscSPs/renovation_backoffice/internal/core/ports/services"
	"github.com/SscSPs/renovation_backoffice/internal/dto"
	"github.com/SscSPs/renovation_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// lineItemHandler handles HTTP requests for the line items of an invoice.
type lineItemHandler struct {
	lineItemService portssvc.LineItemSvcFacade
}

func newLineItemHandler(ls portssvc.LineItemSvcFacade) *lineItemHandler {
	return &lineItemHandler{lineItemService: ls}
}

// registerLineItemRoutes registers the line item routes under an invoice group.
func registerLineItemRoutes(invoice *gin.RouterGroup, lineItemService portssvc.LineItemSvcFacade) {
	h := newLineItemHandler(lineItemService)

	items := invoice.Group("/line-items")
	{
		items.GET("", h.listLineItems)
		items.POST("", h.createLineItem)
		items.POST("/move", h.moveLineItem)
		items.POST("/reload", h.reloadLineItems)
		items.GET("/:lineItemID", h.getLineItem)
		items.PATCH("/:lineItemID", h.updateLineItem)
		items.DELETE("/:lineItemID", h.deleteLineItem)
	}
	invoice.GET("/totals", h.getTotals)
}

func (h *lineItemHandler) listLineItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	items, err := h.lineItemService.ListLineItems(c.Request.Context(), invoiceID)
	if err != nil {
		respondError(c, logger, err, "list line items")
		return
	}
	c.JSON(http.StatusOK, dto.ToListLineItemResponse(items))
}

func (h *lineItemHandler) getLineItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")
	lineItemID := c.Param("lineItemID")

	item, err := h.lineItemService.GetLineItem(c.Request.Context(), invoiceID, lineItemID)
	if err != nil {
		respondError(c, logger, err, "retrieve line item")
		return
	}
	c.JSON(http.StatusOK, dto.ToLineItemResponse(item))
}

func (h *lineItemHandler) createLineItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	var req dto.CreateLineItemRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	item, err := h.lineItemService.CreateLineItem(c.Request.Context(), invoiceID, req, userID)
	if err != nil {
		respondError(c, logger, err, "create line item")
		return
	}
	logger.Info("Line item created", slog.String("line_item_id", item.LineItemID))
	c.JSON(http.StatusCreated, dto.ToLineItemResponse(item))
}

func (h *lineItemHandler) updateLineItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")
	lineItemID := c.Param("lineItemID")

	var req dto.UpdateLineItemRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	item, err := h.lineItemService.UpdateLineItem(c.Request.Context(), invoiceID, lineItemID, req, userID)
	if err != nil {
		respondError(c, logger, err, "update line item")
		return
	}
	c.JSON(http.StatusOK, dto.ToLineItemResponse(item))
}

func (h *lineItemHandler) deleteLineItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")
	lineItemID := c.Param("lineItemID")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.lineItemService.DeleteLineItem(c.Request.Context(), invoiceID, lineItemID, userID); err != nil {
		respondError(c, logger, err, "delete line item")
		return
	}
	c.Status(http.StatusNoContent)
}

// moveLineItem answers with the full new order. When the batch update could
// not be stored the invoice has been reloaded and 503 carries that state.
func (h *lineItemHandler) moveLineItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	var req dto.MoveItemRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	items, err := h.lineItemService.MoveLineItem(c.Request.Context(), invoiceID, req, userID)
	if errors.Is(err, apperrors.ErrReorderFailed) {
		respondReorderFailed(c, logger, err, func() (any, error) {
			reloaded, lerr := h.lineItemService.ListLineItems(c.Request.Context(), invoiceID)
			return dto.ToListLineItemResponse(reloaded), lerr
		})
		return
	}
	if err != nil {
		respondError(c, logger, err, "move line item")
		return
	}
	c.JSON(http.StatusOK, dto.ToListLineItemResponse(items))
}

func (h *lineItemHandler) reloadLineItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	items, err := h.lineItemService.ReloadCollection(c.Request.Context(), invoiceID)
	if err != nil {
		respondError(c, logger, err, "reload line items")
		return
	}
	c.JSON(http.StatusOK, dto.ToListLineItemResponse(items))
}

func (h *lineItemHandler) getTotals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	totals, err := h.lineItemService.CalculateTotals(c.Request.Context(), invoiceID)
	if err != nil {
		respondError(c, logger, err, "calculate totals")
		return
	}
	c.JSON(http.StatusOK, dto.ToTotalsResponse(invoiceID, totals))
}
