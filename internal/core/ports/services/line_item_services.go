package services

import (
	"context"

	"github.com/SscSPs/renovation_backoffice/internal/core/domain"
	"github.com/SscSPs/renovation_backoffice/internal/dto"
)

// LineItemReaderSvc defines read operations on an invoice's line items
type LineItemReaderSvc interface {
	// ListLineItems returns the line items of an invoice in their manual order.
	ListLineItems(ctx context.Context, invoiceID string) ([]domain.LineItem, error)

	// GetLineItem retrieves one line item of an invoice.
	GetLineItem(ctx context.Context, invoiceID string, lineItemID string) (*domain.LineItem, error)
}

// LineItemWriterSvc defines write operations on an invoice's line items
type LineItemWriterSvc interface {
	// CreateLineItem appends a new line item at the end of the invoice.
	CreateLineItem(ctx context.Context, invoiceID string, req dto.CreateLineItemRequest, userID string) (*domain.LineItem, error)

	// UpdateLineItem applies a partial update and recomputes the line total.
	UpdateLineItem(ctx context.Context, invoiceID string, lineItemID string, req dto.UpdateLineItemRequest, userID string) (*domain.LineItem, error)

	// DeleteLineItem removes a line item; later items move up by one.
	DeleteLineItem(ctx context.Context, invoiceID string, lineItemID string, userID string) error
}

// LineItemOrderSvc defines the manual ordering operations
type LineItemOrderSvc interface {
	// MoveLineItem reorders the invoice and persists the full order. On
	// apperrors.ErrReorderFailed the invoice has already been reloaded.
	MoveLineItem(ctx context.Context, invoiceID string, req dto.MoveItemRequest, userID string) ([]domain.LineItem, error)

	// ReloadCollection discards the cached view and re-reads the invoice.
	ReloadCollection(ctx context.Context, invoiceID string) ([]domain.LineItem, error)
}

// LineItemCalculatorSvc defines aggregation over an invoice
type LineItemCalculatorSvc interface {
	// CalculateTotals aggregates the current line items of the invoice.
	CalculateTotals(ctx context.Context, invoiceID string) (*domain.AggregationResult, error)
}

// LineItemSvcFacade combines all line item service interfaces
type LineItemSvcFacade interface {
	LineItemReaderSvc
	LineItemWriterSvc
	LineItemOrderSvc
	LineItemCalculatorSvc
}
