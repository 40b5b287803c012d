// Package memory is a process-local implementation of the repository ports,
// used with STORE_DRIVER=memory and in tests.
package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/SscSPs/renovation_backoffice/internal/apperrors"
	"github.com/SscSPs/renovation_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/renovation_backoffice/internal/core/ports/repositories"
)

// Store holds every record kind behind a single lock, so operations that
// touch line items and templates together are atomic.
type Store struct {
	mu        sync.RWMutex
	lineItems *orderedTable[domain.LineItem]
	tasks     *orderedTable[domain.Task]
	expenses  *orderedTable[domain.Expense]
	templates map[string]domain.Template
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		lineItems: newOrderedTable(func(i domain.LineItem) string { return i.CollectionID }),
		tasks:     newOrderedTable(func(t domain.Task) string { return t.ProjectID }),
		expenses:  newOrderedTable(func(e domain.Expense) string { return e.SheetID }),
		templates: make(map[string]domain.Template),
	}
}

// Provider exposes the store through the repository ports.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LineItemRepo: &LineItemRepository{store: s},
		TemplateRepo: &TemplateRepository{store: s},
		TaskRepo:     &orderedRepository[domain.Task]{store: s, table: s.tasks},
		ExpenseRepo:  &orderedRepository[domain.Expense]{store: s, table: s.expenses},
	}
}

// LineItemRepository implements LineItemRepositoryFacade in memory.
type LineItemRepository struct {
	store *Store
}

var _ portsrepo.LineItemRepositoryFacade = (*LineItemRepository)(nil)

func (r *LineItemRepository) LoadCollection(ctx context.Context, collectionID string) ([]domain.LineItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.lineItems.load(collectionID), nil
}

func (r *LineItemRepository) FindLineItemByID(ctx context.Context, lineItemID string) (*domain.LineItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	item, ok := r.store.lineItems.find(lineItemID)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &item, nil
}

func (r *LineItemRepository) CreateItem(ctx context.Context, item domain.LineItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.lineItems.create(item)
}

func (r *LineItemRepository) CreateItemFromTemplate(ctx context.Context, item domain.LineItem, templateID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	tpl, ok := r.store.templates[templateID]
	if !ok {
		return fmt.Errorf("%w: template %s", apperrors.ErrNotFound, templateID)
	}
	if err := r.store.lineItems.create(item); err != nil {
		return err
	}
	tpl.UsageCount++
	r.store.templates[templateID] = tpl
	return nil
}

func (r *LineItemRepository) UpdateItem(ctx context.Context, item domain.LineItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.lineItems.update(item)
}

func (r *LineItemRepository) DeleteItem(ctx context.Context, collectionID string, lineItemID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.lineItems.remove(collectionID, lineItemID)
}

func (r *LineItemRepository) PersistOrder(ctx context.Context, collectionID string, entries []domain.OrderEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.lineItems.persistOrder(collectionID, entries)
}

// TemplateRepository implements TemplateRepositoryFacade in memory.
type TemplateRepository struct {
	store *Store
}

var _ portsrepo.TemplateRepositoryFacade = (*TemplateRepository)(nil)

func (r *TemplateRepository) FindTemplateByID(ctx context.Context, templateID string) (*domain.Template, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	tpl, ok := r.store.templates[templateID]
	if !ok {
		return nil, fmt.Errorf("%w: template %s", apperrors.ErrNotFound, templateID)
	}
	return &tpl, nil
}

func (r *TemplateRepository) LoadTemplates(ctx context.Context, filter domain.TemplateFilter) ([]domain.Template, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	matches := make([]domain.Template, 0)
	for _, tpl := range r.store.templates {
		if filter.Matches(tpl) {
			matches = append(matches, tpl)
		}
	}
	slices.SortFunc(matches, func(a, b domain.Template) int {
		if a.UsageCount != b.UsageCount {
			if a.UsageCount > b.UsageCount {
				return -1
			}
			return 1
		}
		if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}
		return strings.Compare(a.TemplateID, b.TemplateID)
	})
	return matches, nil
}

func (r *TemplateRepository) CreateTemplate(ctx context.Context, template domain.Template) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.templates[template.TemplateID]; exists {
		return fmt.Errorf("%w: template %s", apperrors.ErrDuplicate, template.TemplateID)
	}
	r.store.templates[template.TemplateID] = template
	return nil
}

func (r *TemplateRepository) UpdateTemplate(ctx context.Context, template domain.Template) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	current, ok := r.store.templates[template.TemplateID]
	if !ok {
		return fmt.Errorf("%w: template %s", apperrors.ErrNotFound, template.TemplateID)
	}
	template.UsageCount = current.UsageCount
	r.store.templates[template.TemplateID] = template
	return nil
}

func (r *TemplateRepository) IncrementUsage(ctx context.Context, templateID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	tpl, ok := r.store.templates[templateID]
	if !ok {
		return fmt.Errorf("%w: template %s", apperrors.ErrNotFound, templateID)
	}
	tpl.UsageCount++
	r.store.templates[templateID] = tpl
	return nil
}

// orderedRepository serves tasks and expenses.
type orderedRepository[T domain.Orderable[T]] struct {
	store *Store
	table *orderedTable[T]
}

var (
	_ portsrepo.TaskRepositoryFacade    = (*orderedRepository[domain.Task])(nil)
	_ portsrepo.ExpenseRepositoryFacade = (*orderedRepository[domain.Expense])(nil)
)

func (r *orderedRepository[T]) LoadCollection(ctx context.Context, collectionID string) ([]T, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.table.load(collectionID), nil
}

func (r *orderedRepository[T]) CreateItem(ctx context.Context, item T) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.table.create(item)
}

func (r *orderedRepository[T]) UpdateItem(ctx context.Context, item T) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.table.update(item)
}

func (r *orderedRepository[T]) DeleteItem(ctx context.Context, collectionID string, itemID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.table.remove(collectionID, itemID)
}

func (r *orderedRepository[T]) PersistOrder(ctx context.Context, collectionID string, entries []domain.OrderEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.table.persistOrder(collectionID, entries)
}
