package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/records_management_app/internal/apperrors"
	"github.com/SscSPs/records_management_app/internal/core/domain"
	"github.com/SscSPs/records_management_app/internal/core/policy"
	portsrepo "github.com/SscSPs/records_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/records_management_app/internal/core/ports/services"
	"github.com/SscSPs/records_management_app/internal/dto"
	"go.opentelemetry.io/otel/attribute"
)

const defaultCreateMaxAttempts = 3

type recordService struct {
	BaseService
	recordRepo  portsrepo.RecordRepositoryFacade
	scopes      portssvc.ScopeResolverSvc
	maxAttempts int
	now         func() time.Time
}

// RecordServiceOption is a functional option for configuring the record service
type RecordServiceOption func(*recordService)

// WithCreateMaxAttempts bounds how often a conflicting creation is retried.
func WithCreateMaxAttempts(n int) RecordServiceOption {
	return func(s *recordService) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithRecordClock overrides the time source for created/updated timestamps.
func WithRecordClock(now func() time.Time) RecordServiceOption {
	return func(s *recordService) {
		s.now = now
	}
}

// NewRecordService creates the record store.
func NewRecordService(recordRepo portsrepo.RecordRepositoryFacade, scopes portssvc.ScopeResolverSvc, options ...RecordServiceOption) portssvc.RecordSvcFacade {
	svc := &recordService{
		recordRepo:  recordRepo,
		scopes:      scopes,
		maxAttempts: defaultCreateMaxAttempts,
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.RecordSvcFacade = (*recordService)(nil)

// newRecordFromRequest validates everything that can be checked without the store.
func newRecordFromRequest(req dto.CreateRecordRequest) (domain.Record, error) {
	var rec domain.Record

	rec.EmployeeName = strings.TrimSpace(req.EmployeeName)
	rec.PostalAccount = strings.TrimSpace(req.PostalAccount)
	if err := dto.CheckRecordText(rec.EmployeeName, rec.PostalAccount); err != nil {
		return rec, err
	}

	amount, err := dto.ParseAmount(req.Amount)
	if err != nil {
		return rec, err
	}
	rec.Amount = amount

	reimbursement, err := dto.ParseOptionalAmount(req.ReimbursementAmount)
	if err != nil {
		return rec, err
	}
	rec.ReimbursementAmount = reimbursement

	date, err := dto.ParseTreatmentDate(req.TreatmentDate)
	if err != nil {
		return rec, err
	}
	rec.TreatmentDate = date

	rec.Status = domain.StatusCompleted
	if strings.TrimSpace(req.Status) != "" {
		status, err := domain.ParseRecordStatus(req.Status)
		if err != nil {
			return rec, apperrors.NewValidationFailedError(err.Error())
		}
		rec.Status = status
	}
	rec.Notes = req.Notes
	return rec, nil
}

func (s *recordService) CreateRecord(ctx context.Context, principal domain.Principal, req dto.CreateRecordRequest) (rec *domain.Record, err error) {
	ctx, span := s.StartSpan(ctx, "RecordService.CreateRecord", principal,
		attribute.Int("region.code", req.RegionCode),
		attribute.String("category.name", req.CategoryName))
	defer func() { s.EndSpan(span, err) }()

	logAttrs := append(principalAttrs(principal),
		slog.Int("region_code", req.RegionCode),
		slog.String("category_name", req.CategoryName),
		slog.String("operation", "create_record"))

	if policy.Filter(principal).Kind == policy.FilterDeny {
		s.LogWarn(ctx, "Principal without a usable role tried to create a record", logAttrs...)
		return nil, apperrors.ErrForbidden
	}

	record, err := newRecordFromRequest(req)
	if err != nil {
		s.LogDebug(ctx, "Rejected record before opening a transaction", append(logAttrs, slog.String("reason", err.Error()))...)
		return nil, err
	}

	scope, err := s.scopes.ResolveScope(ctx, req.RegionCode, req.CategoryName)
	if err != nil {
		if errors.Is(err, apperrors.ErrScopeNotFound) {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidScope, err)
		}
		s.LogError(ctx, err, "Failed to resolve scope for new record", logAttrs...)
		return nil, err
	}

	now := s.now()
	record.RegionID = scope.RegionID()
	record.CategoryID = scope.CategoryID()
	record.OwnerID = principal.ID
	record.CreatedAt = now
	record.UpdatedAt = now

	var created *domain.Record
	for attempt := 1; ; attempt++ {
		created, err = s.recordRepo.CreateRecord(ctx, record)
		if err == nil {
			break
		}
		if !errors.Is(err, apperrors.ErrTransactionConflict) || attempt >= s.maxAttempts || ctx.Err() != nil {
			s.LogError(ctx, err, "Failed to create record", append(logAttrs, slog.Int("attempt", attempt))...)
			return nil, err
		}
		s.LogWarn(ctx, "Serial allocation conflicted, retrying", append(logAttrs, slog.Int("attempt", attempt))...)
	}

	created.RegionCode = scope.Region.Code
	created.CategoryName = scope.Category.Name
	span.SetAttributes(attribute.Int64("record.serial", created.Serial))
	s.LogInfo(ctx, "Record created", append(logAttrs, slog.Int64("record_id", created.ID), slog.Int64("serial", created.Serial))...)
	return created, nil
}

func (s *recordService) ListRecords(ctx context.Context, principal domain.Principal, regionCode int, categoryName string, query domain.RecordQuery) (records []domain.Record, err error) {
	ctx, span := s.StartSpan(ctx, "RecordService.ListRecords", principal,
		attribute.Int("region.code", regionCode),
		attribute.String("category.name", categoryName))
	defer func() { s.EndSpan(span, err) }()

	scope, err := s.scopes.ResolveScope(ctx, regionCode, categoryName)
	if err != nil {
		return nil, err
	}

	records, err = s.recordRepo.ListRecords(ctx, *scope, policy.Filter(principal), query)
	if err != nil {
		s.LogError(ctx, err, "Failed to list records", append(principalAttrs(principal),
			slog.Int("region_code", regionCode),
			slog.String("category_name", categoryName),
			slog.String("operation", "list_records"))...)
		return nil, err
	}
	return records, nil
}

func (s *recordService) GetRecord(ctx context.Context, principal domain.Principal, recordID int64) (*domain.Record, error) {
	record, err := s.recordRepo.FindRecordByID(ctx, recordID, policy.Filter(principal))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get record", append(principalAttrs(principal), slog.Int64("record_id", recordID))...)
		}
		return nil, err
	}
	return record, nil
}

func (s *recordService) UpdateRecord(ctx context.Context, principal domain.Principal, recordID int64, req dto.UpdateRecordRequest) (updated *domain.Record, err error) {
	ctx, span := s.StartSpan(ctx, "RecordService.UpdateRecord", principal, attribute.Int64("record.id", recordID))
	defer func() { s.EndSpan(span, err) }()

	changes, err := req.ToRecordChanges()
	if err != nil {
		return nil, err
	}

	updated, err = s.recordRepo.UpdateRecord(ctx, recordID, func(stored domain.Record) (domain.Record, error) {
		if !policy.CanView(principal, stored) {
			return stored, apperrors.ErrNotFound
		}
		if !policy.CanMutate(principal, stored) {
			return stored, apperrors.ErrForbidden
		}
		next := changes.Apply(stored)
		next.UpdatedAt = s.now()
		return next, nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrForbidden) {
			s.LogError(ctx, err, "Failed to update record", append(principalAttrs(principal),
				slog.Int64("record_id", recordID), slog.String("operation", "update_record"))...)
		}
		return nil, err
	}
	return updated, nil
}

// DeleteRecord reports a record the principal may not delete as not found, so
// callers cannot probe for records they cannot see.
func (s *recordService) DeleteRecord(ctx context.Context, principal domain.Principal, recordID int64) (err error) {
	ctx, span := s.StartSpan(ctx, "RecordService.DeleteRecord", principal, attribute.Int64("record.id", recordID))
	defer func() { s.EndSpan(span, err) }()

	err = s.recordRepo.DeleteRecord(ctx, recordID, func(stored domain.Record) error {
		if !policy.CanDelete(principal, stored) {
			return apperrors.ErrNotFound
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete record", append(principalAttrs(principal),
				slog.Int64("record_id", recordID), slog.String("operation", "delete_record"))...)
		}
		return err
	}
	s.LogInfo(ctx, "Record deleted", append(principalAttrs(principal), slog.Int64("record_id", recordID))...)
	return nil
}
