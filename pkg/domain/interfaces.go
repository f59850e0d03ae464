package domain

import (
	"context"

	"github.com/jordanlanch/leadmanager/pkg/models"
)

// LeadRepository defines data access operations for leads
type LeadRepository interface {
	List(ctx context.Context, req models.LeadListRequest) (*models.LeadListResponse, error)
	GetByID(ctx context.Context, id string) (*models.Lead, error)
	Create(ctx context.Context, input models.LeadInput) (*models.Lead, error)
	Update(ctx context.Context, id string, input models.LeadInput) (*models.Lead, error)
	ReplaceAll(ctx context.Context, leads []models.Lead) error
}

// AnalyticsRepository computes dashboard aggregates
type AnalyticsRepository interface {
	Summary(ctx context.Context) (*models.Analytics, error)
}

// LeadLister is the part of the lead service the list controller depends on
type LeadLister interface {
	ListLeads(ctx context.Context, req models.LeadListRequest) (*models.LeadListResponse, error)
	SeedLeads(ctx context.Context) (*models.SeedResponse, error)
}

// LeadReader fetches a single lead
type LeadReader interface {
	GetLead(ctx context.Context, id string) (*models.Lead, error)
}

// AnalyticsReader fetches dashboard analytics
type AnalyticsReader interface {
	GetAnalytics(ctx context.Context) (*models.Analytics, error)
}
