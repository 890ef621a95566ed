package services

import (
	portsrepo "github.com/SscSPs/records_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/records_management_app/internal/core/ports/services"
	"github.com/SscSPs/records_management_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Scope resolution is shared by the record, aggregation and export services
	container.Scope = NewScopeService(repos.ScopeRepo)

	container.Record = NewRecordService(
		repos.RecordRepo,
		container.Scope,
		WithCreateMaxAttempts(cfg.CreateMaxAttempts),
	)
	container.Aggregation = NewAggregationService(repos.AggregationRepo, container.Scope)
	container.Export = NewExportService(container.Record, container.Scope)

	container.User = NewUserService(repos.UserRepo)
	container.Auth = NewAuthService(cfg, container.User)

	return container
}
