package services

import (
	"context"

	"github.com/SscSPs/records_management_app/internal/core/domain"
)

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExportSvc renders authorized record lists as downloadable files.
type ExportSvc interface {
	// ExportRecords renders the visible records of one scope as CSV or XLSX.
	ExportRecords(ctx context.Context, principal domain.Principal, regionCode int, categoryName string, query domain.RecordQuery, format string) (*ExportFile, error)

	// ExportRegion renders a ZIP with one XLSX per category holding visible records.
	ExportRegion(ctx context.Context, principal domain.Principal, regionCode int) (*ExportFile, error)
}
