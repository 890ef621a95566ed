package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"admin", RoleAdmin, false},
		{"Admin", RoleAdmin, false},
		{"manager", RoleManager, false},
		{"employee", RoleEmployee, false},
		{"user", RoleEmployee, false},
		{"", "", true},
		{"superuser", "", true},
	}
	for _, tt := range tests {
		got, err := ParseRole(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestStatusFilter(t *testing.T) {
	f, err := ParseStatusFilter("incomplete")
	require.NoError(t, err)
	assert.True(t, f.Admits(StatusIncomplete))
	assert.True(t, f.Admits(StatusPending))
	assert.False(t, f.Admits(StatusCompleted))

	f, err = ParseStatusFilter("completed")
	require.NoError(t, err)
	assert.True(t, f.Admits(StatusCompleted))
	assert.False(t, f.Admits(StatusPending))

	f, err = ParseStatusFilter("")
	require.NoError(t, err)
	assert.Nil(t, f.Statuses())
	assert.True(t, f.Admits(StatusPending))

	_, err = ParseStatusFilter("archived")
	assert.Error(t, err)
}

func TestRecordChangesApplyLeavesImmutableFields(t *testing.T) {
	notes := "first visit"
	orig := Record{
		ID: 9, RegionID: 16, CategoryID: 2, OwnerID: 5, Serial: 3,
		EmployeeName: "A", PostalAccount: "001", Amount: decimal.NewFromInt(100),
		Notes: &notes, Status: StatusPending,
	}
	name := "B"
	amount := decimal.NewFromInt(250)
	status := StatusCompleted
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	got := RecordChanges{EmployeeName: &name, Amount: &amount, Status: &status, TreatmentDate: &date, ClearNotes: true}.Apply(orig)

	assert.Equal(t, "B", got.EmployeeName)
	assert.True(t, got.Amount.Equal(amount))
	assert.Equal(t, StatusCompleted, got.Status)
	assert.Equal(t, date, got.TreatmentDate)
	assert.Nil(t, got.Notes)
	assert.Equal(t, orig.ID, got.ID)
	assert.Equal(t, orig.RegionID, got.RegionID)
	assert.Equal(t, orig.CategoryID, got.CategoryID)
	assert.Equal(t, orig.OwnerID, got.OwnerID)
	assert.Equal(t, orig.Serial, got.Serial)
	assert.Equal(t, "001", got.PostalAccount)
	// original untouched
	assert.Equal(t, &notes, orig.Notes)
}
