package services_test

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"testing"

	"github.com/SscSPs/records_management_app/internal/apperrors"
	"github.com/SscSPs/records_management_app/internal/core/domain"
	"github.com/SscSPs/records_management_app/internal/core/policy"
	portssvc "github.com/SscSPs/records_management_app/internal/core/ports/services"
	"github.com/SscSPs/records_management_app/internal/core/services"
	"github.com/SscSPs/records_management_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type RecordServiceTestSuite struct {
	suite.Suite
	store       *memStore
	records     portssvc.RecordSvcFacade
	aggregation portssvc.AggregationSvc
	admin       domain.Principal
	employeeE   domain.Principal
	employeeF   domain.Principal
}

func (suite *RecordServiceTestSuite) SetupTest() {
	suite.store = newMemStore()
	scopes := services.NewScopeService(suite.store)
	suite.records = services.NewRecordService(suite.store, scopes, services.WithCreateMaxAttempts(3))
	suite.aggregation = services.NewAggregationService(suite.store, scopes)
	suite.admin = domain.Principal{ID: 1, Username: "admin", Role: domain.RoleAdmin}
	suite.employeeE = domain.Principal{ID: 5, Username: "e", Role: domain.RoleEmployee}
	suite.employeeF = domain.Principal{ID: 6, Username: "f", Role: domain.RoleEmployee}
}

func TestRecordServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecordServiceTestSuite))
}

func createReq(regionCode int, category, amount string) dto.CreateRecordRequest {
	return dto.CreateRecordRequest{
		RegionCode:    regionCode,
		CategoryName:  category,
		EmployeeName:  "Said Benali",
		PostalAccount: "0012345678 90",
		Amount:        json.RawMessage(amount),
		TreatmentDate: "2024-03-01",
	}
}

func (suite *RecordServiceTestSuite) mustCreate(p domain.Principal, req dto.CreateRecordRequest) *domain.Record {
	rec, err := suite.records.CreateRecord(context.Background(), p, req)
	suite.Require().NoError(err)
	return rec
}

func (suite *RecordServiceTestSuite) TestCreateRecord_Defaults() {
	req := createReq(16, "surgery", `"1000.50"`)
	req.CategoryName = "surgery"

	rec := suite.mustCreate(suite.employeeE, req)

	suite.Equal(int64(1), rec.Serial)
	suite.Equal(suite.employeeE.ID, rec.OwnerID)
	suite.Equal(domain.StatusCompleted, rec.Status)
	suite.True(decimal.RequireFromString("1000.50").Equal(rec.Amount))
	suite.True(rec.ReimbursementAmount.IsZero())
	suite.Equal(16, rec.RegionCode)
	suite.Equal("Surgery", rec.CategoryName)
}

func (suite *RecordServiceTestSuite) TestCreateRecord_Validation() {
	ctx := context.Background()

	_, err := suite.records.CreateRecord(ctx, suite.employeeE, createReq(16, "Surgery", `-5`))
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)

	_, err = suite.records.CreateRecord(ctx, suite.employeeE, createReq(16, "Surgery", `"abc"`))
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)

	_, err = suite.records.CreateRecord(ctx, suite.employeeE, createReq(99, "Surgery", `10`))
	suite.ErrorIs(err, apperrors.ErrInvalidScope)
	suite.ErrorIs(err, apperrors.ErrScopeNotFound)

	_, err = suite.records.CreateRecord(ctx, suite.employeeE, createReq(16, "Dentistry", `10`))
	suite.ErrorIs(err, apperrors.ErrInvalidScope)

	req := createReq(16, "Surgery", `10`)
	req.Status = "archived"
	_, err = suite.records.CreateRecord(ctx, suite.employeeE, req)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.Zero(suite.store.createCalls, "validation must fail before any write")
}

func (suite *RecordServiceTestSuite) TestCreateRecord_DenyWithoutRole() {
	_, err := suite.records.CreateRecord(context.Background(), domain.Principal{ID: 9}, createReq(16, "Surgery", `10`))
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *RecordServiceTestSuite) TestCreateRecord_RetriesConflicts() {
	suite.store.conflicts = 2

	rec := suite.mustCreate(suite.employeeE, createReq(16, "Surgery", `10`))

	suite.Equal(int64(1), rec.Serial)
	suite.Equal(3, suite.store.createCalls)
}

func (suite *RecordServiceTestSuite) TestCreateRecord_GivesUpAfterMaxAttempts() {
	suite.store.conflicts = 5

	_, err := suite.records.CreateRecord(context.Background(), suite.employeeE, createReq(16, "Surgery", `10`))

	suite.ErrorIs(err, apperrors.ErrTransactionConflict)
	suite.Equal(3, suite.store.createCalls)
}

func (suite *RecordServiceTestSuite) TestCreateRecord_CancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := suite.records.CreateRecord(ctx, suite.employeeE, createReq(16, "Surgery", `10`))

	suite.ErrorIs(err, context.Canceled)
	suite.Empty(suite.store.records)
}

func (suite *RecordServiceTestSuite) TestSerialsUniqueUnderConcurrency() {
	const n = 50
	principals := []domain.Principal{suite.employeeE, suite.employeeF, suite.admin}

	var wg sync.WaitGroup
	serials := make(chan int64, n)
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec, err := suite.records.CreateRecord(context.Background(), principals[i%len(principals)], createReq(16, "Surgery", `1`))
			if err != nil {
				errs <- err
				return
			}
			serials <- rec.Serial
		}(i)
	}
	wg.Wait()
	close(serials)
	close(errs)

	for err := range errs {
		suite.Require().NoError(err)
	}
	got := make([]int64, 0, n)
	for s := range serials {
		got = append(got, s)
	}
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	suite.Require().Len(got, n)
	for i, s := range got {
		suite.Equal(int64(i+1), s)
	}
}

func (suite *RecordServiceTestSuite) TestSerialsIsolatedPerScope() {
	a1 := suite.mustCreate(suite.employeeE, createReq(16, "Surgery", `1`))
	b1 := suite.mustCreate(suite.employeeE, createReq(16, "Medical", `1`))
	a2 := suite.mustCreate(suite.employeeF, createReq(16, "Surgery", `1`))
	c1 := suite.mustCreate(suite.employeeF, createReq(31, "Surgery", `1`))
	b2 := suite.mustCreate(suite.employeeE, createReq(16, "medical", `1`))

	suite.Equal([]int64{1, 2}, []int64{a1.Serial, a2.Serial})
	suite.Equal([]int64{1, 2}, []int64{b1.Serial, b2.Serial})
	suite.Equal(int64(1), c1.Serial)
}

func (suite *RecordServiceTestSuite) TestUpdateRecord_KeepsImmutableFields() {
	ctx := context.Background()
	created := suite.mustCreate(suite.employeeE, createReq(16, "Surgery", `1000`))

	name := "Renamed"
	status := string(domain.StatusIncomplete)
	updated, err := suite.records.UpdateRecord(ctx, suite.employeeE, created.ID, dto.UpdateRecordRequest{
		EmployeeName: &name,
		Amount:       json.RawMessage(`250.25`),
		Status:       &status,
		Notes:        dto.OptionalString{Set: true, Value: &name},
	})

	suite.Require().NoError(err)
	suite.Equal("Renamed", updated.EmployeeName)
	suite.Equal(domain.StatusIncomplete, updated.Status)
	suite.True(decimal.RequireFromString("250.25").Equal(updated.Amount))
	suite.Equal(created.OwnerID, updated.OwnerID)
	suite.Equal(created.RegionID, updated.RegionID)
	suite.Equal(created.CategoryID, updated.CategoryID)
	suite.Equal(created.Serial, updated.Serial)
	suite.Equal(created.PostalAccount, updated.PostalAccount)
}

func (suite *RecordServiceTestSuite) TestUpdateRecord_RejectsBadAmount() {
	created := suite.mustCreate(suite.employeeE, createReq(16, "Surgery", `1000`))

	_, err := suite.records.UpdateRecord(context.Background(), suite.employeeE, created.ID, dto.UpdateRecordRequest{
		ReimbursementAmount: json.RawMessage(`-1`),
	})

	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
}

func (suite *RecordServiceTestSuite) TestVisibilityIsolation() {
	ctx := context.Background()
	a := suite.mustCreate(suite.employeeE, createReq(16, "Surgery", `1`))

	list, err := suite.records.ListRecords(ctx, suite.employeeF, 16, "Surgery", domain.RecordQuery{})
	suite.Require().NoError(err)
	suite.Empty(list)

	_, err = suite.records.GetRecord(ctx, suite.employeeF, a.ID)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	counts, err := suite.aggregation.CountByRegion(ctx, suite.employeeF)
	suite.Require().NoError(err)
	for _, c := range counts {
		suite.Zero(c.Count)
	}

	manager := domain.Principal{ID: 7, Role: domain.RoleManager}
	list, err = suite.records.ListRecords(ctx, manager, 16, "Surgery", domain.RecordQuery{})
	suite.Require().NoError(err)
	suite.Empty(list)
}

func (suite *RecordServiceTestSuite) TestListRecords_SearchAndFilter() {
	ctx := context.Background()
	req := createReq(16, "Surgery", `1`)
	req.PostalAccount = "CCP 777"
	suite.mustCreate(suite.employeeE, req)

	req = createReq(16, "Surgery", `1`)
	req.Status = "pending"
	req.TreatmentDate = "2024-05-01"
	pending := suite.mustCreate(suite.employeeE, req)

	req = createReq(16, "Surgery", `1`)
	req.Status = "incomplete"
	req.TreatmentDate = "2024-04-01"
	incomplete := suite.mustCreate(suite.employeeE, req)

	list, err := suite.records.ListRecords(ctx, suite.employeeE, 16, "Surgery", domain.RecordQuery{Search: "ccp"})
	suite.Require().NoError(err)
	suite.Len(list, 1)

	list, err = suite.records.ListRecords(ctx, suite.employeeE, 16, "Surgery", domain.RecordQuery{Status: domain.StatusFilterIncomplete})
	suite.Require().NoError(err)
	suite.Require().Len(list, 2)
	suite.Equal(pending.ID, list[0].ID, "newest treatment date first")
	suite.Equal(incomplete.ID, list[1].ID)

	list, err = suite.records.ListRecords(ctx, suite.employeeE, 16, "Surgery", domain.RecordQuery{Status: domain.StatusFilterCompleted})
	suite.Require().NoError(err)
	suite.Len(list, 1)
}

func (suite *RecordServiceTestSuite) TestListRecords_ScopeNotFound() {
	_, err := suite.records.ListRecords(context.Background(), suite.admin, 16, "Dentistry", domain.RecordQuery{})

	var scopeErr *apperrors.ScopeNotFoundError
	suite.Require().ErrorAs(err, &scopeErr)
	suite.Equal(apperrors.ScopePartCategory, scopeErr.Part)
}

func (suite *RecordServiceTestSuite) TestDeleteThenGet() {
	ctx := context.Background()
	a := suite.mustCreate(suite.employeeE, createReq(16, "Surgery", `1`))

	suite.Require().NoError(suite.records.DeleteRecord(ctx, suite.employeeE, a.ID))

	for _, p := range []domain.Principal{suite.employeeE, suite.employeeF, suite.admin} {
		_, err := suite.records.GetRecord(ctx, p, a.ID)
		suite.ErrorIs(err, apperrors.ErrNotFound)
		name := "x"
		_, err = suite.records.UpdateRecord(ctx, p, a.ID, dto.UpdateRecordRequest{EmployeeName: &name})
		suite.ErrorIs(err, apperrors.ErrNotFound)
	}
	suite.ErrorIs(suite.records.DeleteRecord(ctx, suite.admin, a.ID), apperrors.ErrNotFound)
}

func (suite *RecordServiceTestSuite) TestAdminSuperset() {
	ctx := context.Background()
	a := suite.mustCreate(suite.employeeE, createReq(16, "Surgery", `1`))

	suite.True(policy.CanView(suite.admin, *a))
	got, err := suite.records.GetRecord(ctx, suite.admin, a.ID)
	suite.Require().NoError(err)
	suite.Equal(a.ID, got.ID)

	name := "by admin"
	updated, err := suite.records.UpdateRecord(ctx, suite.admin, a.ID, dto.UpdateRecordRequest{EmployeeName: &name})
	suite.Require().NoError(err)
	suite.Equal(suite.employeeE.ID, updated.OwnerID)
}

func (suite *RecordServiceTestSuite) TestScenario() {
	ctx := context.Background()

	a := suite.mustCreate(suite.employeeE, createReq(16, "surgery", `1000`))
	suite.Equal(int64(1), a.Serial)
	suite.Equal(int64(5), a.OwnerID)

	b := suite.mustCreate(suite.employeeF, createReq(16, "surgery", `500`))
	suite.Equal(int64(2), b.Serial)
	suite.Equal(int64(6), b.OwnerID)

	list, err := suite.records.ListRecords(ctx, suite.employeeE, 16, "surgery", domain.RecordQuery{})
	suite.Require().NoError(err)
	suite.Require().Len(list, 1)
	suite.Equal(a.ID, list[0].ID)

	list, err = suite.records.ListRecords(ctx, suite.admin, 16, "surgery", domain.RecordQuery{})
	suite.Require().NoError(err)
	suite.Len(list, 2)
	suite.Equal(int64(2), surgeryCount(suite, suite.admin))

	name := "hijack"
	_, err = suite.records.UpdateRecord(ctx, suite.employeeF, a.ID, dto.UpdateRecordRequest{EmployeeName: &name})
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.Require().NoError(suite.records.DeleteRecord(ctx, suite.employeeE, a.ID))
	suite.Equal(int64(1), surgeryCount(suite, suite.admin))
}

func surgeryCount(suite *RecordServiceTestSuite, p domain.Principal) int64 {
	counts, err := suite.aggregation.CountByCategory(context.Background(), p, 16)
	suite.Require().NoError(err)
	for _, c := range counts {
		if c.Name == "Surgery" {
			return c.Count
		}
	}
	suite.FailNow("surgery category missing from counts")
	return 0
}
