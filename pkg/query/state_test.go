package query

import (
	"math"
	"testing"

	"github.com/jordanlanch/leadmanager/pkg/domain"
	"github.com/jordanlanch/leadmanager/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	snap := New().Snapshot()

	assert.Equal(t, Snapshot{PageSize: 10}, snap)
	assert.False(t, snap.HasFilters())
}

func TestSetSearchText_DoesNotApply(t *testing.T) {
	s := New()
	require.NoError(t, s.SetPageIndex(2))

	s.SetSearchText("acme")

	snap := s.Snapshot()
	assert.Equal(t, "acme", snap.DraftSearch)
	assert.Empty(t, snap.AppliedSearch)
	assert.Equal(t, 2, snap.PageIndex)
}

func TestSubmitSearch_KeepsPage(t *testing.T) {
	s := New()
	require.NoError(t, s.SetPageIndex(3))
	s.SetSearchText("acme")

	assert.True(t, s.SubmitSearch())
	assert.False(t, s.SubmitSearch(), "resubmitting the same text changes nothing")

	snap := s.Snapshot()
	assert.Equal(t, "acme", snap.AppliedSearch)
	assert.Equal(t, 3, snap.PageIndex)
}

func TestFilterChangesResetPage(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*State) error
	}{
		{"Status filter", func(s *State) error { return s.SetStatusFilter(models.StatusQualified) }},
		{"Source filter", func(s *State) error { return s.SetSourceFilter(models.SourceReferral) }},
		{"Clearing status", func(s *State) error { return s.SetStatusFilter("") }},
		{"Page size", func(s *State) error { return s.SetPageSize(25) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			require.NoError(t, s.SetPageIndex(4))

			require.NoError(t, tt.mutate(s))
			assert.Equal(t, 0, s.Snapshot().PageIndex)
		})
	}
}

func TestInvalidInputsAreRejected(t *testing.T) {
	s := New()
	require.NoError(t, s.SetPageIndex(1))

	assert.True(t, domain.IsValidation(s.SetStatusFilter("Won")))
	assert.True(t, domain.IsValidation(s.SetSourceFilter("Billboard")))
	assert.True(t, domain.IsValidation(s.SetPageIndex(-1)))
	assert.True(t, domain.IsValidation(s.SetPageIndex(models.MaxPage)))
	assert.True(t, domain.IsValidation(s.SetPageIndex(math.MaxInt)))
	assert.True(t, domain.IsValidation(s.SetPageSize(20)))

	snap := s.Snapshot()
	assert.Equal(t, 1, snap.PageIndex, "rejected changes leave the state untouched")
	assert.Equal(t, 10, snap.PageSize)
	assert.False(t, snap.HasFilters())
}

func TestClearAll(t *testing.T) {
	s := New()
	require.NoError(t, s.SetPageSize(25))
	require.NoError(t, s.SetStatusFilter(models.StatusNew))
	require.NoError(t, s.SetSourceFilter(models.SourceOther))
	s.SetSearchText("acme")
	s.SubmitSearch()
	require.NoError(t, s.SetPageIndex(2))

	s.ClearAll()

	assert.Equal(t, Snapshot{PageIndex: 2, PageSize: 25}, s.Snapshot())
}

func TestIsValidPageSize(t *testing.T) {
	for _, n := range []int{5, 10, 25, 50} {
		assert.True(t, IsValidPageSize(n))
	}
	assert.False(t, IsValidPageSize(0))
	assert.False(t, IsValidPageSize(100))
}
