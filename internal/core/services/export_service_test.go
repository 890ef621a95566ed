package services_test

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/SscSPs/records_management_app/internal/apperrors"
	"github.com/SscSPs/records_management_app/internal/core/domain"
	"github.com/SscSPs/records_management_app/internal/core/services"
	"github.com/SscSPs/records_management_app/internal/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportRecords(t *testing.T) {
	store := newMemStore()
	scopes := services.NewScopeService(store)
	records := services.NewRecordService(store, scopes)
	svc := services.NewExportService(records, scopes)
	ctx := context.Background()
	owner := domain.Principal{ID: 5, Role: domain.RoleEmployee}
	other := domain.Principal{ID: 6, Role: domain.RoleEmployee}

	_, err := records.CreateRecord(ctx, owner, createReq(16, "Surgery", `1000`))
	require.NoError(t, err)

	file, err := svc.ExportRecords(ctx, owner, 16, "surgery", domain.RecordQuery{}, "")
	require.NoError(t, err)
	assert.Equal(t, "Surgery - Wilaya 16.csv", file.Filename)
	assert.Equal(t, export.ContentTypeCSV, file.ContentType)
	assert.Contains(t, string(file.Content), "Said Benali")

	file, err = svc.ExportRecords(ctx, other, 16, "Surgery", domain.RecordQuery{}, "csv")
	require.NoError(t, err)
	assert.NotContains(t, string(file.Content), "Said Benali")

	file, err = svc.ExportRecords(ctx, owner, 16, "Surgery", domain.RecordQuery{}, "XLSX")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(file.Filename, ".xlsx"))
	assert.Equal(t, export.ContentTypeXLSX, file.ContentType)

	_, err = svc.ExportRecords(ctx, owner, 16, "Surgery", domain.RecordQuery{}, "pdf")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestExportRegion_SkipsEmptyCategories(t *testing.T) {
	store := newMemStore()
	scopes := services.NewScopeService(store)
	records := services.NewRecordService(store, scopes)
	svc := services.NewExportService(records, scopes)
	ctx := context.Background()
	owner := domain.Principal{ID: 5, Role: domain.RoleEmployee}

	_, err := records.CreateRecord(ctx, owner, createReq(16, "Surgery", `1000`))
	require.NoError(t, err)
	_, err = records.CreateRecord(ctx, domain.Principal{ID: 6, Role: domain.RoleEmployee}, createReq(16, "Optics", `10`))
	require.NoError(t, err)

	file, err := svc.ExportRegion(ctx, owner, 16)
	require.NoError(t, err)
	assert.Equal(t, "Alger - Wilaya 16.zip", file.Filename)

	zr, err := zip.NewReader(bytes.NewReader(file.Content), int64(len(file.Content)))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	assert.Equal(t, "Chirurgie - Wilaya 16.xlsx", zr.File[0].Name)
}
