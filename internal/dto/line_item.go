package dto

import (
	"time"

	"github.com/SscSPs/renovation_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLineItemRequest defines the data needed to add a line item to an invoice.
// Amounts are decimal strings or numbers; pointers make "required" meaningful.
type CreateLineItemRequest struct {
	Label          string                  `json:"label" binding:"required"`
	UnitPrice      *decimal.Decimal        `json:"unitPrice" binding:"required"`
	Quantity       *decimal.Decimal        `json:"quantity" binding:"required"`
	TaxRatePercent *decimal.Decimal        `json:"taxRatePercent" binding:"required"`
	Category       domain.LineItemCategory `json:"category" binding:"required,oneof=LABOUR MATERIAL"`
}

// UpdateLineItemRequest defines the data allowed for updating a line item.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateLineItemRequest struct {
	Label          *string                  `json:"label"`
	UnitPrice      *decimal.Decimal         `json:"unitPrice"`
	Quantity       *decimal.Decimal         `json:"quantity"`
	TaxRatePercent *decimal.Decimal         `json:"taxRatePercent"`
	Category       *domain.LineItemCategory `json:"category" binding:"omitempty,oneof=LABOUR MATERIAL"`
}

// Fields converts the request into domain values.
func (r CreateLineItemRequest) Fields() domain.LineItemFields {
	f := domain.LineItemFields{Label: r.Label, Category: r.Category}
	if r.UnitPrice != nil {
		f.UnitPrice = *r.UnitPrice
	}
	if r.Quantity != nil {
		f.Quantity = *r.Quantity
	}
	if r.TaxRatePercent != nil {
		f.TaxRatePercent = *r.TaxRatePercent
	}
	return f
}

// Patch converts the request into a domain patch.
func (r UpdateLineItemRequest) Patch() domain.LineItemPatch {
	return domain.LineItemPatch{
		Label:          r.Label,
		UnitPrice:      r.UnitPrice,
		Quantity:       r.Quantity,
		TaxRatePercent: r.TaxRatePercent,
		Category:       r.Category,
	}
}

// LineItemResponse defines the data returned for a line item.
type LineItemResponse struct {
	LineItemID     string                  `json:"lineItemID"`
	InvoiceID      string                  `json:"invoiceID"`
	Label          string                  `json:"label"`
	UnitPrice      decimal.Decimal         `json:"unitPrice"`
	Quantity       decimal.Decimal         `json:"quantity"`
	TaxRatePercent decimal.Decimal         `json:"taxRatePercent"`
	Category       domain.LineItemCategory `json:"category"`
	Order          int                     `json:"order"`
	ComputedTotal  string                  `json:"computedTotal"`
	TemplateID     *string                 `json:"templateID,omitempty"`
	CreatedAt      time.Time               `json:"createdAt"`
	CreatedBy      string                  `json:"createdBy"`
	LastUpdatedAt  time.Time               `json:"lastUpdatedAt"`
	LastUpdatedBy  string                  `json:"lastUpdatedBy"`
}

// ToLineItemResponse converts a domain.LineItem to LineItemResponse DTO
func ToLineItemResponse(item *domain.LineItem) LineItemResponse {
	return LineItemResponse{
		LineItemID:     item.LineItemID,
		InvoiceID:      item.CollectionID,
		Label:          item.Label,
		UnitPrice:      item.UnitPrice,
		Quantity:       item.Quantity,
		TaxRatePercent: item.TaxRatePercent,
		Category:       item.Category,
		Order:          item.Order,
		ComputedTotal:  domain.FormatAmount(item.ComputedTotal),
		TemplateID:     item.TemplateID,
		CreatedAt:      item.CreatedAt,
		CreatedBy:      item.CreatedBy,
		LastUpdatedAt:  item.LastUpdatedAt,
		LastUpdatedBy:  item.LastUpdatedBy,
	}
}

// ToListLineItemResponse converts line items to response DTOs, keeping their order.
func ToListLineItemResponse(items []domain.LineItem) []LineItemResponse {
	res := make([]LineItemResponse, len(items))
	for i := range items {
		res[i] = ToLineItemResponse(&items[i])
	}
	return res
}
