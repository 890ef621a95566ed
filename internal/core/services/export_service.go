package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/records_management_app/internal/apperrors"
	"github.com/SscSPs/records_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/records_management_app/internal/core/ports/services"
	"github.com/SscSPs/records_management_app/internal/export"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

type exportService struct {
	BaseService
	records portssvc.RecordReaderSvc
	scopes  portssvc.ScopeSvcFacade
}

// NewExportService renders downloads from the same authorized lists the record store returns.
func NewExportService(records portssvc.RecordReaderSvc, scopes portssvc.ScopeSvcFacade) portssvc.ExportSvc {
	return &exportService{records: records, scopes: scopes}
}

var _ portssvc.ExportSvc = (*exportService)(nil)

func (s *exportService) ExportRecords(ctx context.Context, principal domain.Principal, regionCode int, categoryName string, query domain.RecordQuery, format string) (*portssvc.ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatXLSX {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unsupported export format %q", format))
	}

	scope, err := s.scopes.ResolveScope(ctx, regionCode, categoryName)
	if err != nil {
		return nil, err
	}
	records, err := s.records.ListRecords(ctx, principal, regionCode, categoryName, query)
	if err != nil {
		return nil, err
	}

	base := fmt.Sprintf("%s - Wilaya %d", scope.Category.Name, scope.Region.Code)
	switch format {
	case FormatXLSX:
		title := fmt.Sprintf("%s - %s (%d)", scope.Category.DisplayName, scope.Region.Name, scope.Region.Code)
		content, err := export.XLSX(title, records)
		if err != nil {
			s.LogError(ctx, err, "Failed to render xlsx export", principalAttrs(principal)...)
			return nil, err
		}
		return &portssvc.ExportFile{Filename: base + ".xlsx", ContentType: export.ContentTypeXLSX, Content: content}, nil
	default:
		content, err := export.CSV(records)
		if err != nil {
			s.LogError(ctx, err, "Failed to render csv export", principalAttrs(principal)...)
			return nil, err
		}
		return &portssvc.ExportFile{Filename: base + ".csv", ContentType: export.ContentTypeCSV, Content: content}, nil
	}
}

func (s *exportService) ExportRegion(ctx context.Context, principal domain.Principal, regionCode int) (*portssvc.ExportFile, error) {
	region, err := s.scopes.ResolveRegion(ctx, regionCode)
	if err != nil {
		return nil, err
	}
	categories, err := s.scopes.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	sheets := make([]export.Sheet, 0, len(categories))
	for _, category := range categories {
		records, err := s.records.ListRecords(ctx, principal, regionCode, category.Name, domain.RecordQuery{})
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, export.Sheet{Category: category, Records: records})
	}

	content, err := export.RegionZIP(*region, sheets)
	if err != nil {
		s.LogError(ctx, err, "Failed to render region archive",
			append(principalAttrs(principal), slog.Int("region_code", regionCode))...)
		return nil, err
	}
	return &portssvc.ExportFile{
		Filename:    fmt.Sprintf("%s - Wilaya %d.zip", region.Name, region.Code),
		ContentType: export.ContentTypeZIP,
		Content:     content,
	}, nil
}
