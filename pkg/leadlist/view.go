package leadlist

import (
	"github.com/jordanlanch/leadmanager/pkg/models"
	"github.com/jordanlanch/leadmanager/pkg/query"
)

// PageInfo describes the pagination control
type PageInfo struct {
	PageIndex int
	PageSize  int
	Total     int
	PageCount int
	From      int // 1-based position of the first row shown, 0 when empty
	To        int
	HasPrev   bool
	HasNext   bool
}

// NewPageInfo computes the pagination control for a page of rows
func NewPageInfo(pageIndex, pageSize, total, rows int) PageInfo {
	info := PageInfo{PageIndex: pageIndex, PageSize: pageSize, Total: total}
	if pageSize > 0 {
		info.PageCount = (total + pageSize - 1) / pageSize
	}
	if rows > 0 {
		info.From = pageIndex*pageSize + 1
		info.To = pageIndex*pageSize + rows
	}
	info.HasPrev = pageIndex > 0
	info.HasNext = pageIndex+1 < info.PageCount
	return info
}

// View is a snapshot of everything the list screen renders
type View struct {
	Query   query.Snapshot
	Rows    []models.Lead
	Total   int
	Loading bool
	Err     error
	Page    PageInfo
}

// View returns a snapshot of the display state
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := c.state.Snapshot()
	return View{
		Query:   snap,
		Rows:    append([]models.Lead(nil), c.rows...),
		Total:   c.total,
		Loading: c.loading,
		Err:     c.err,
		Page:    NewPageInfo(snap.PageIndex, snap.PageSize, c.total, len(c.rows)),
	}
}

// PageInfo returns the current pagination control
func (c *Controller) PageInfo() PageInfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := c.state.Snapshot()
	return NewPageInfo(snap.PageIndex, snap.PageSize, c.total, len(c.rows))
}

// Rows returns the rows currently displayed
func (c *Controller) Rows() []models.Lead {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Lead(nil), c.rows...)
}

// Total returns the number of leads matching the current query across all pages
func (c *Controller) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Loading reports whether a fetch is in flight
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the error of the last applied fetch, nil after a success
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}
