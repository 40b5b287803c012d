package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/renovation_backoffice/internal/apperrors"
	"github.com/SscSPs/renovation_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/renovation_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/renovation_backoffice/internal/core/ports/services"
	"github.com/SscSPs/renovation_backoffice/internal/dto"
	"github.com/SscSPs/renovation_backoffice/internal/utils/accounting"
	"github.com/google/uuid"
)

// lineItemService implements the LineItemSvcFacade interface
type lineItemService struct {
	orderedItems[domain.LineItem]
}

// NewLineItemService creates the invoice line item service. invoices must be
// the registry shared with the template service so both see one view per invoice.
func NewLineItemService(repo portsrepo.LineItemRepositoryFacade, invoices *CollectionRegistry[domain.LineItem]) portssvc.LineItemSvcFacade {
	return &lineItemService{
		orderedItems: orderedItems[domain.LineItem]{repo: repo, collections: invoices},
	}
}

var _ portssvc.LineItemSvcFacade = (*lineItemService)(nil)

func (s *lineItemService) ListLineItems(ctx context.Context, invoiceID string) ([]domain.LineItem, error) {
	return s.list(ctx, invoiceID)
}

func (s *lineItemService) GetLineItem(ctx context.Context, invoiceID string, lineItemID string) (*domain.LineItem, error) {
	item, err := s.get(ctx, invoiceID, lineItemID)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *lineItemService) CreateLineItem(ctx context.Context, invoiceID string, req dto.CreateLineItemRequest, userID string) (*domain.LineItem, error) {
	now := time.Now()
	item, err := s.create(ctx, invoiceID, func(order int) (domain.LineItem, error) {
		item, err := domain.NewLineItem(uuid.NewString(), invoiceID, req.Fields(), order)
		if err != nil {
			return domain.LineItem{}, err
		}
		item.AuditFields = domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		}
		return item, nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *lineItemService) UpdateLineItem(ctx context.Context, invoiceID string, lineItemID string, req dto.UpdateLineItemRequest, userID string) (*domain.LineItem, error) {
	patch := req.Patch()
	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: no fields to update", apperrors.ErrValidation)
	}

	item, err := s.update(ctx, invoiceID, lineItemID, func(current domain.LineItem) (domain.LineItem, error) {
		updated, err := current.Apply(patch)
		if err != nil {
			return domain.LineItem{}, err
		}
		updated.LastUpdatedAt = time.Now()
		updated.LastUpdatedBy = userID
		return updated, nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Line item updated",
		slog.String("invoice_id", invoiceID),
		slog.String("line_item_id", lineItemID),
		slog.String("computed_total", domain.FormatAmount(item.ComputedTotal)))
	return &item, nil
}

func (s *lineItemService) DeleteLineItem(ctx context.Context, invoiceID string, lineItemID string, userID string) error {
	s.LogDebug(ctx, "Deleting line item",
		slog.String("invoice_id", invoiceID),
		slog.String("line_item_id", lineItemID),
		slog.String("user_id", userID))
	return s.remove(ctx, invoiceID, lineItemID)
}

func (s *lineItemService) MoveLineItem(ctx context.Context, invoiceID string, req dto.MoveItemRequest, userID string) ([]domain.LineItem, error) {
	s.LogDebug(ctx, "Moving line item",
		slog.String("invoice_id", invoiceID),
		slog.String("user_id", userID))
	return s.move(ctx, invoiceID, req)
}

func (s *lineItemService) ReloadCollection(ctx context.Context, invoiceID string) ([]domain.LineItem, error) {
	return s.reload(ctx, invoiceID)
}

func (s *lineItemService) CalculateTotals(ctx context.Context, invoiceID string) (*domain.AggregationResult, error) {
	items, err := s.list(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	result := accounting.Aggregate(items)
	return &result, nil
}
