package pgsql

import (
	portsrepo "github.com/SscSPs/renovation_backoffice/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LineItemRepo: newPgxLineItemRepository(dbPool),
		TemplateRepo: newPgxTemplateRepository(dbPool),
		TaskRepo:     newPgxTaskRepository(dbPool),
		ExpenseRepo:  newPgxExpenseRepository(dbPool),
	}
}
