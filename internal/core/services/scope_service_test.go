package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/records_management_app/internal/apperrors"
	"github.com/SscSPs/records_management_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveScope_CategoryCaseFallback(t *testing.T) {
	svc := services.NewScopeService(newMemStore())
	ctx := context.Background()

	exact, err := svc.ResolveScope(ctx, 16, "Surgery")
	require.NoError(t, err)
	folded, err := svc.ResolveScope(ctx, 16, "surgery")
	require.NoError(t, err)
	shouted, err := svc.ResolveScope(ctx, 16, " SURGERY ")
	require.NoError(t, err)

	assert.Equal(t, exact.CategoryID(), folded.CategoryID())
	assert.Equal(t, exact.CategoryID(), shouted.CategoryID())
	assert.Equal(t, int64(16), exact.RegionID())
}

func TestResolveScope_NamesFailingHalf(t *testing.T) {
	svc := services.NewScopeService(newMemStore())
	ctx := context.Background()

	tests := []struct {
		name     string
		region   int
		category string
		part     apperrors.ScopePart
	}{
		{"unknown region", 99, "Surgery", apperrors.ScopePartRegion},
		{"unknown category", 16, "Dentistry", apperrors.ScopePartCategory},
		{"blank category", 16, "  ", apperrors.ScopePartCategory},
		{"both unknown reports region", 99, "Dentistry", apperrors.ScopePartRegion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ResolveScope(ctx, tt.region, tt.category)
			var scopeErr *apperrors.ScopeNotFoundError
			require.ErrorAs(t, err, &scopeErr)
			assert.Equal(t, tt.part, scopeErr.Part)
			assert.ErrorIs(t, err, apperrors.ErrScopeNotFound)
		})
	}
}
