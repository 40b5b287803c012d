package services

import (
	"github.com/SscSPs/renovation_backoffice/internal/core/collection"
	"github.com/SscSPs/renovation_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/renovation_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/renovation_backoffice/internal/core/ports/services"
	"github.com/SscSPs/renovation_backoffice/internal/platform/config"
	"github.com/SscSPs/renovation_backoffice/internal/telemetry"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, metrics *telemetry.EngineMetrics) *portssvc.ServiceContainer {
	opts := []collection.Option{
		collection.WithPersistTimeout(cfg.ReorderPersistTimeout),
	}
	if cfg.ReorderReloadTimeout > 0 {
		opts = append(opts, collection.WithReloadTimeout(cfg.ReorderReloadTimeout))
	}

	// Line items and templates must share one view per invoice
	invoices := NewCollectionRegistry[domain.LineItem](telemetry.KindLineItems, repos.LineItemRepo, metrics, cfg.CollectionCacheSize, opts...)
	boards := NewCollectionRegistry[domain.Task](telemetry.KindTasks, repos.TaskRepo, metrics, cfg.CollectionCacheSize, opts...)
	sheets := NewCollectionRegistry[domain.Expense](telemetry.KindExpenses, repos.ExpenseRepo, metrics, cfg.CollectionCacheSize, opts...)

	return &portssvc.ServiceContainer{
		LineItem: NewLineItemService(repos.LineItemRepo, invoices),
		Template: NewTemplateService(repos.TemplateRepo, repos.LineItemRepo, invoices, WithTemplateMetrics(metrics)),
		Task:     NewTaskService(repos.TaskRepo, boards),
		Expense:  NewExpenseService(repos.ExpenseRepo, sheets),
	}
}
