package services

import (
	portsrepo "github.com/sgca/treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/sgca/treasury_backend/internal/core/ports/services"
	"github.com/sgca/treasury_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Transaction = NewTransactionService(repos.LedgerRepo, repos.AccountRepo, repos.CategoryRepo)
	container.Balance = NewBalanceService(repos.LedgerRepo, repos.AccountRepo)
	container.Reporting = NewReportingService(repos.LedgerRepo, repos.AccountRepo, repos.ReportingRepo)
	container.Category = NewCategoryService(repos.CategoryRepo, repos.AccountRepo)
	container.Auth = NewAuthService(cfg, repos.UserRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade     = (*accountService)(nil)
	_ portssvc.TransactionSvcFacade = (*transactionService)(nil)
	_ portssvc.BalanceSvcFacade     = (*balanceService)(nil)
	_ portssvc.ReportingService     = (*reportingService)(nil)
	_ portssvc.CategorySvcFacade    = (*categoryService)(nil)
	_ portssvc.AuthSvcFacade        = (*authService)(nil)
)
