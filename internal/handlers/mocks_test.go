package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/records_management_app/internal/apperrors"
	"github.com/SscSPs/records_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/records_management_app/internal/core/ports/services"
	"github.com/SscSPs/records_management_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock RecordService ---
type MockRecordService struct {
	mock.Mock
}

func (m *MockRecordService) ListRecords(ctx context.Context, p domain.Principal, regionCode int, categoryName string, query domain.RecordQuery) ([]domain.Record, error) {
	args := m.Called(ctx, p, regionCode, categoryName, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}

func (m *MockRecordService) GetRecord(ctx context.Context, p domain.Principal, id int64) (*domain.Record, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Record), args.Error(1)
}

func (m *MockRecordService) CreateRecord(ctx context.Context, p domain.Principal, req dto.CreateRecordRequest) (*domain.Record, error) {
	args := m.Called(ctx, p, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Record), args.Error(1)
}

func (m *MockRecordService) UpdateRecord(ctx context.Context, p domain.Principal, id int64, req dto.UpdateRecordRequest) (*domain.Record, error) {
	args := m.Called(ctx, p, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Record), args.Error(1)
}

func (m *MockRecordService) DeleteRecord(ctx context.Context, p domain.Principal, id int64) error {
	args := m.Called(ctx, p, id)
	return args.Error(0)
}

var _ portssvc.RecordSvcFacade = (*MockRecordService)(nil)

// --- Mock AggregationService ---
type MockAggregationService struct {
	mock.Mock
}

func (m *MockAggregationService) CountByCategory(ctx context.Context, p domain.Principal, regionCode int) ([]domain.CategoryCount, error) {
	args := m.Called(ctx, p, regionCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryCount), args.Error(1)
}

func (m *MockAggregationService) CountByRegion(ctx context.Context, p domain.Principal) ([]domain.RegionCount, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RegionCount), args.Error(1)
}

func (m *MockAggregationService) ListRegions(ctx context.Context, p domain.Principal) ([]domain.RegionCount, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RegionCount), args.Error(1)
}

func (m *MockAggregationService) RegionDetail(ctx context.Context, p domain.Principal, regionCode int) (*domain.RegionDetail, error) {
	args := m.Called(ctx, p, regionCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RegionDetail), args.Error(1)
}

var _ portssvc.AggregationSvc = (*MockAggregationService)(nil)

// --- Mock ExportService ---
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) ExportRecords(ctx context.Context, p domain.Principal, regionCode int, categoryName string, query domain.RecordQuery, format string) (*portssvc.ExportFile, error) {
	args := m.Called(ctx, p, regionCode, categoryName, query, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.ExportFile), args.Error(1)
}

func (m *MockExportService) ExportRegion(ctx context.Context, p domain.Principal, regionCode int) (*portssvc.ExportFile, error) {
	args := m.Called(ctx, p, regionCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.ExportFile), args.Error(1)
}

var _ portssvc.ExportSvc = (*MockExportService)(nil)

// --- Mock ScopeService ---
type MockScopeService struct {
	mock.Mock
}

func (m *MockScopeService) ResolveScope(ctx context.Context, regionCode int, categoryName string) (*domain.Scope, error) {
	args := m.Called(ctx, regionCode, categoryName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Scope), args.Error(1)
}

func (m *MockScopeService) ResolveRegion(ctx context.Context, regionCode int) (*domain.Region, error) {
	args := m.Called(ctx, regionCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Region), args.Error(1)
}

func (m *MockScopeService) ResolveCategory(ctx context.Context, categoryName string) (*domain.Category, error) {
	args := m.Called(ctx, categoryName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockScopeService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

var _ portssvc.ScopeSvcFacade = (*MockScopeService)(nil)

// --- Mock UserService ---
// Accounts backs ResolvePrincipal so every authenticated request works without
// per-test expectations.
type MockUserService struct {
	mock.Mock
	Accounts map[int64]domain.User
}

func (m *MockUserService) ResolvePrincipal(_ context.Context, userID int64, _ domain.Role) (*domain.Principal, error) {
	u, ok := m.Accounts[userID]
	if !ok {
		return nil, apperrors.ErrUnauthorized
	}
	p := u.Principal()
	return &p, nil
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, p domain.Principal) ([]domain.User, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, p domain.Principal, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, p, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ResetPassword(ctx context.Context, p domain.Principal, userID int64, newPassword string) error {
	return m.Called(ctx, p, userID, newPassword).Error(0)
}

func (m *MockUserService) DeleteUser(ctx context.Context, p domain.Principal, userID int64) error {
	return m.Called(ctx, p, userID).Error(0)
}

func (m *MockUserService) DeleteSelf(ctx context.Context, p domain.Principal) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*portssvc.LoginResult, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.LoginResult), args.Error(1)
}

func (m *MockAuthService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

var _ portssvc.AuthSvc = (*MockAuthService)(nil)
