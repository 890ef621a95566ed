package mapping

import (
	"github.com/SscSPs/records_management_app/internal/core/domain"
	"github.com/SscSPs/records_management_app/internal/models"
)

// ToModelRecord converts a domain Record to a model Record
func ToModelRecord(d domain.Record) models.Record {
	return models.Record{
		RecordID:            d.ID,
		RegionID:            d.RegionID,
		CategoryID:          d.CategoryID,
		OwnerID:             d.OwnerID,
		Serial:              d.Serial,
		EmployeeName:        d.EmployeeName,
		PostalAccount:       d.PostalAccount,
		Amount:              d.Amount,
		ReimbursementAmount: d.ReimbursementAmount,
		TreatmentDate:       d.TreatmentDate,
		Notes:               d.Notes,
		Status:              string(d.Status),
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
		RegionCode:          d.RegionCode,
		CategoryName:        d.CategoryName,
	}
}

// ToDomainRecord converts a model Record to a domain Record
func ToDomainRecord(m models.Record) domain.Record {
	return domain.Record{
		ID:                  m.RecordID,
		RegionID:            m.RegionID,
		CategoryID:          m.CategoryID,
		OwnerID:             m.OwnerID,
		Serial:              m.Serial,
		EmployeeName:        m.EmployeeName,
		PostalAccount:       m.PostalAccount,
		Amount:              m.Amount,
		ReimbursementAmount: m.ReimbursementAmount,
		TreatmentDate:       m.TreatmentDate,
		Notes:               m.Notes,
		Status:              domain.RecordStatus(m.Status),
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
		RegionCode:          m.RegionCode,
		CategoryName:        m.CategoryName,
	}
}

// ToDomainRecordSlice converts a slice of model Records to domain Records
func ToDomainRecordSlice(ms []models.Record) []domain.Record {
	ds := make([]domain.Record, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRecord(m)
	}
	return ds
}
