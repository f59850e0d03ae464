// Package leadlist reconciles the lead list query state into requests to the
// lead service and reconciles the paged responses back into display state.
//
// A fetch cycle has three steps so an event loop can run the network part off
// its own goroutine:
//
//	p := c.Begin()            // derive the request, mark loading
//	r := c.Run(ctx, p)        // call the lead service, no state mutation
//	err := c.Apply(r)         // replace or keep the display state
//
// ExecuteFetch runs all three synchronously.
package leadlist

import (
	"context"
	"sync"

	"github.com/jordanlanch/leadmanager/pkg/domain"
	"github.com/jordanlanch/leadmanager/pkg/logger"
	"github.com/jordanlanch/leadmanager/pkg/metrics"
	"github.com/jordanlanch/leadmanager/pkg/models"
	"github.com/jordanlanch/leadmanager/pkg/query"
)

// Notification messages shown to the user
const (
	MsgFetchFailed = "Failed to fetch leads"
	MsgSeedSuccess = "Sample leads generated successfully"
	MsgSeedFailed  = "Failed to seed data"
)

// Controller owns the query state and the display state of one lead list screen
type Controller struct {
	mu sync.Mutex

	client   domain.LeadLister
	state    *query.State
	notifier Notifier
	log      logger.Logger
	metrics  *metrics.ClientMetrics

	latestOnly       bool
	searchResetsPage bool

	rows    []models.Lead
	total   int
	loading bool
	err     error
	seq     uint64
}

// Option configures a Controller
type Option func(*Controller)

// WithLatestOnly makes the controller tag every fetch with a sequence number
// and drop responses that are not for the latest issued fetch. Without it the
// last response to arrive wins, whichever request it answers.
func WithLatestOnly() Option {
	return func(c *Controller) { c.latestOnly = true }
}

// WithSearchResetsPage returns to the first page when a submitted search
// changes the applied search text
func WithSearchResetsPage() Option {
	return func(c *Controller) { c.searchResetsPage = true }
}

// WithNotifier sets where user notifications go
func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// WithLogger sets the logger
func WithLogger(l logger.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithMetrics sets the client metrics
func WithMetrics(m *metrics.ClientMetrics) Option {
	return func(c *Controller) { c.metrics = m }
}

// WithState starts the controller from an existing query state
func WithState(s *query.State) Option {
	return func(c *Controller) { c.state = s }
}

// New creates a controller over client
func New(client domain.LeadLister, opts ...Option) *Controller {
	c := &Controller{
		client:   client,
		notifier: NopNotifier{},
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.state == nil {
		c.state = query.New()
	}
	c.log = c.log.With("component", "leadlist")
	return c
}

// DeriveRequest translates a query state into a list request. Page is 1-indexed.
// Empty search and unset filters are left empty so the request omits them.
func DeriveRequest(s query.Snapshot) models.LeadListRequest {
	return models.LeadListRequest{
		Page:   s.PageIndex + 1,
		Limit:  s.PageSize,
		Search: s.AppliedSearch,
		Status: s.Status,
		Source: s.Source,
	}
}

// Request returns the request the current state derives
func (c *Controller) Request() models.LeadListRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return DeriveRequest(c.state.Snapshot())
}

// mutate applies fn to the query state and reports whether the derived
// request changed
func (c *Controller) mutate(fn func(*query.State) error) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	before := DeriveRequest(c.state.Snapshot())
	if err := fn(c.state); err != nil {
		return false, err
	}
	return DeriveRequest(c.state.Snapshot()) != before, nil
}

// SetSearchText updates the draft search. It never requires a fetch.
func (c *Controller) SetSearchText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SetSearchText(text)
}

// SubmitSearch applies the draft search. An explicit submit always requires a fetch.
func (c *Controller) SubmitSearch() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.SubmitSearch() && c.searchResetsPage {
		_ = c.state.SetPageIndex(0)
	}
	return true
}

// SetStatusFilter changes the status filter and returns to the first page.
// It reports whether a fetch is required.
func (c *Controller) SetStatusFilter(status models.LeadStatus) (bool, error) {
	return c.mutate(func(s *query.State) error { return s.SetStatusFilter(status) })
}

// SetSourceFilter changes the source filter and returns to the first page.
// It reports whether a fetch is required.
func (c *Controller) SetSourceFilter(source models.LeadSource) (bool, error) {
	return c.mutate(func(s *query.State) error { return s.SetSourceFilter(source) })
}

// SetPage moves to the zero-based page n. It reports whether a fetch is required.
func (c *Controller) SetPage(n int) (bool, error) {
	return c.mutate(func(s *query.State) error { return s.SetPageIndex(n) })
}

// NextPage moves forward one page when there is one
func (c *Controller) NextPage() (bool, error) {
	info := c.PageInfo()
	if !info.HasNext {
		return false, nil
	}
	return c.SetPage(info.PageIndex + 1)
}

// PrevPage moves back one page when there is one
func (c *Controller) PrevPage() (bool, error) {
	info := c.PageInfo()
	if !info.HasPrev {
		return false, nil
	}
	return c.SetPage(info.PageIndex - 1)
}

// SetPageSize changes the page size and returns to the first page.
// It reports whether a fetch is required.
func (c *Controller) SetPageSize(n int) (bool, error) {
	return c.mutate(func(s *query.State) error { return s.SetPageSize(n) })
}

// ClearAll resets search and filters, keeping the page. It reports whether a
// fetch is required.
func (c *Controller) ClearAll() bool {
	changed, _ := c.mutate(func(s *query.State) error {
		s.ClearAll()
		return nil
	})
	return changed
}

// ApplyFilters is the explicit "apply" action: it submits the draft search
// and always requires a fetch
func (c *Controller) ApplyFilters() bool {
	return c.SubmitSearch()
}

// Pending is a fetch that has been issued but not yet run
type Pending struct {
	Seq     uint64
	Request models.LeadListRequest
}

// Result is the outcome of running a Pending fetch
type Result struct {
	Seq      uint64
	Request  models.LeadListRequest
	Response *models.LeadListResponse
	Err      error
}

// Begin derives the request from the current state, marks the list as
// loading and issues a new sequence number
func (c *Controller) Begin() Pending {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	c.loading = true
	return Pending{Seq: c.seq, Request: DeriveRequest(c.state.Snapshot())}
}

// Run calls the lead service for p. It does not touch the controller's state
// and may run on any goroutine.
func (c *Controller) Run(ctx context.Context, p Pending) Result {
	resp, err := c.client.ListLeads(ctx, p.Request)
	if err == nil && resp == nil {
		resp = &models.LeadListResponse{}
	}
	return Result{Seq: p.Seq, Request: p.Request, Response: resp, Err: err}
}

// Apply reconciles a fetch result into the display state. On success the
// rows and total are replaced wholesale. On failure they are kept, the error
// is recorded as FetchFailed and returned, and the user is notified.
func (c *Controller) Apply(r Result) error {
	c.mu.Lock()

	if c.latestOnly && r.Seq != c.seq {
		latest := c.seq
		c.mu.Unlock()
		c.metrics.RecordFetch("stale")
		c.log.Debug("dropping stale lead list response", "seq", r.Seq, "latest", latest)
		return nil
	}

	c.loading = false
	if r.Err != nil {
		c.err = domain.NewFetchFailedError(r.Err)
		err := c.err
		c.mu.Unlock()

		c.metrics.RecordFetch("failed")
		c.log.Error("lead list fetch failed", "page", r.Request.Page, "error", r.Err)
		c.notifier.Notify(Notification{Level: LevelError, Message: MsgFetchFailed})
		return err
	}

	resp := r.Response
	if resp == nil {
		resp = &models.LeadListResponse{}
	}
	c.rows = append([]models.Lead(nil), resp.Leads...)
	c.total = resp.TotalLeads
	c.err = nil
	c.mu.Unlock()

	c.metrics.RecordFetch("applied")
	c.log.Debug("lead list updated", "page", r.Request.Page, "rows", len(resp.Leads), "total", resp.TotalLeads)
	return nil
}

// ExecuteFetch runs a full fetch cycle synchronously
func (c *Controller) ExecuteFetch(ctx context.Context) error {
	return c.Apply(c.Run(ctx, c.Begin()))
}

// Mount performs the initial fetch of a screen session
func (c *Controller) Mount(ctx context.Context) error {
	return c.ExecuteFetch(ctx)
}

// Refresh refetches the current page
func (c *Controller) Refresh(ctx context.Context) error {
	return c.ExecuteFetch(ctx)
}

// SeedResult is the outcome of a reseed call
type SeedResult struct {
	Response *models.SeedResponse
	Err      error
}

// RunSeed calls the seed endpoint. Like Run it does not touch state.
func (c *Controller) RunSeed(ctx context.Context) SeedResult {
	resp, err := c.client.SeedLeads(ctx)
	return SeedResult{Response: resp, Err: err}
}

// ApplySeed notifies the user of the reseed outcome and reports whether the
// list must be refetched. The page index is never changed by a reseed.
func (c *Controller) ApplySeed(r SeedResult) (bool, error) {
	if r.Err != nil {
		c.metrics.RecordSeed(false)
		c.log.Error("lead reseed failed", "error", r.Err)
		c.notifier.Notify(Notification{Level: LevelError, Message: MsgSeedFailed})
		return false, domain.NewSeedFailedError(r.Err)
	}

	c.metrics.RecordSeed(true)
	if r.Response != nil {
		c.log.Info("sample leads generated", "count", r.Response.Count)
	}
	c.notifier.Notify(Notification{Level: LevelSuccess, Message: MsgSeedSuccess})
	return true, nil
}

// Reseed regenerates the sample leads and refetches the current page
func (c *Controller) Reseed(ctx context.Context) error {
	refetch, err := c.ApplySeed(c.RunSeed(ctx))
	if err != nil || !refetch {
		return err
	}
	return c.ExecuteFetch(ctx)
}
