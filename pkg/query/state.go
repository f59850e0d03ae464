// Package query holds the user-entered search, filter and pagination state
// of the lead list screen.
package query

import (
	"fmt"

	"github.com/jordanlanch/leadmanager/pkg/domain"
	"github.com/jordanlanch/leadmanager/pkg/models"
)

// DefaultPageSize is the page size a new screen session starts with
const DefaultPageSize = 10

// PageSizes are the selectable page sizes
var PageSizes = []int{5, 10, 25, 50}

// IsValidPageSize reports whether n is one of PageSizes
func IsValidPageSize(n int) bool {
	for _, size := range PageSizes {
		if size == n {
			return true
		}
	}
	return false
}

// State is the query state of one lead list screen session. It is not safe
// for concurrent use; the list controller serializes access to it.
type State struct {
	draftSearch   string
	appliedSearch string
	status        models.LeadStatus
	source        models.LeadSource
	pageIndex     int
	pageSize      int
}

// Snapshot is a read-only copy of State
type Snapshot struct {
	DraftSearch   string
	AppliedSearch string
	Status        models.LeadStatus
	Source        models.LeadSource
	PageIndex     int
	PageSize      int
}

// New returns the default state: no search, no filters, first page of 10
func New() *State {
	return &State{pageSize: DefaultPageSize}
}

// SetSearchText stores the draft search. Nothing is applied until SubmitSearch.
func (s *State) SetSearchText(text string) {
	s.draftSearch = text
}

// SubmitSearch applies the draft search. It reports whether the applied value changed.
// The page index is left as is.
func (s *State) SubmitSearch() bool {
	changed := s.draftSearch != s.appliedSearch
	s.appliedSearch = s.draftSearch
	return changed
}

// SetStatusFilter applies a status filter ("" clears it) and returns to the first page
func (s *State) SetStatusFilter(status models.LeadStatus) error {
	if status.IsSet() && !status.IsValid() {
		return domain.NewValidationError(fmt.Sprintf("invalid status filter %q", status))
	}
	s.status = status
	s.pageIndex = 0
	return nil
}

// SetSourceFilter applies a source filter ("" clears it) and returns to the first page
func (s *State) SetSourceFilter(source models.LeadSource) error {
	if source.IsSet() && !source.IsValid() {
		return domain.NewValidationError(fmt.Sprintf("invalid source filter %q", source))
	}
	s.source = source
	s.pageIndex = 0
	return nil
}

// SetPageIndex moves to the zero-based page n
func (s *State) SetPageIndex(n int) error {
	if n < 0 {
		return domain.NewValidationError(fmt.Sprintf("page index must not be negative, got %d", n))
	}
	if n >= models.MaxPage {
		return domain.NewValidationError(fmt.Sprintf("page index must be below %d, got %d", models.MaxPage, n))
	}
	s.pageIndex = n
	return nil
}

// SetPageSize changes the page size and returns to the first page
func (s *State) SetPageSize(n int) error {
	if !IsValidPageSize(n) {
		return domain.NewValidationError(fmt.Sprintf("page size must be one of %v, got %d", PageSizes, n))
	}
	s.pageSize = n
	s.pageIndex = 0
	return nil
}

// ClearAll resets the search and both filters. Page index and size are kept.
func (s *State) ClearAll() {
	s.draftSearch = ""
	s.appliedSearch = ""
	s.status = ""
	s.source = ""
}

// Snapshot returns a copy of the current state
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		DraftSearch:   s.draftSearch,
		AppliedSearch: s.appliedSearch,
		Status:        s.status,
		Source:        s.source,
		PageIndex:     s.pageIndex,
		PageSize:      s.pageSize,
	}
}

// HasFilters reports whether a search or filter is applied
func (sn Snapshot) HasFilters() bool {
	return sn.AppliedSearch != "" || sn.Status.IsSet() || sn.Source.IsSet()
}
