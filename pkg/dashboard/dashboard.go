// Package dashboard turns the analytics response into stat cards and
// pipeline breakdowns.
package dashboard

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jordanlanch/leadmanager/pkg/domain"
	"github.com/jordanlanch/leadmanager/pkg/format"
	"github.com/jordanlanch/leadmanager/pkg/models"
)

// MsgFetchFailed is shown when analytics cannot be loaded
const MsgFetchFailed = "Failed to fetch analytics"

// Card is one headline figure
type Card struct {
	Title string
	Value string
}

// Dashboard is what the dashboard screen renders
type Dashboard struct {
	Cards    []Card
	ByStage  []models.GroupCount
	BySource []models.GroupCount

	// Placeholder* report that the server sent no breakdown and the
	// placeholder series is shown instead
	PlaceholderStage  bool
	PlaceholderSource bool
}

var placeholderStage = []models.GroupCount{
	{ID: string(models.StatusNew), Count: 100},
	{ID: string(models.StatusContacted), Count: 80},
	{ID: string(models.StatusQualified), Count: 60},
	{ID: string(models.StatusProposal), Count: 40},
	{ID: string(models.StatusNegotiation), Count: 25},
	{ID: string(models.StatusClosedWon), Count: 20},
	{ID: string(models.StatusClosedLost), Count: 15},
}

var placeholderSource = []models.GroupCount{
	{ID: string(models.SourceWebsite), Count: 100},
	{ID: string(models.SourceReferral), Count: 90},
	{ID: string(models.SourceSocialMedia), Count: 85},
	{ID: string(models.SourceAdvertisement), Count: 75},
	{ID: string(models.SourceOther), Count: 50},
}

// Build computes the dashboard from analytics. A nil analytics renders zeros.
func Build(a *models.Analytics) Dashboard {
	if a == nil {
		a = &models.Analytics{}
	}

	d := Dashboard{
		Cards: []Card{
			{Title: "Total Leads", Value: format.Number(a.TotalLeads)},
			{Title: "Converted Leads", Value: format.Number(a.ConvertedLeads)},
			{Title: "Conversion Rate", Value: ConversionRate(a)},
			{Title: "Total Value", Value: format.Currency(a.TotalValue)},
		},
		ByStage:  a.LeadsByStage,
		BySource: a.LeadsBySource,
	}

	// An empty breakdown is real data; only a missing one gets the placeholder
	if d.ByStage == nil {
		d.ByStage = placeholderStage
		d.PlaceholderStage = true
	}
	if d.BySource == nil {
		d.BySource = placeholderSource
		d.PlaceholderSource = true
	}
	return d
}

// ConversionRate prefers the server's rate. When the server reports none it
// is derived from the counts with one decimal.
func ConversionRate(a *models.Analytics) string {
	if a.ConversionRate != 0 {
		return strconv.FormatFloat(a.ConversionRate, 'f', -1, 64) + "%"
	}
	if a.TotalLeads > 0 {
		return fmt.Sprintf("%.1f%%", float64(a.ConvertedLeads)/float64(a.TotalLeads)*100)
	}
	return "0%"
}

// Load fetches analytics and builds the dashboard. On failure the zero
// dashboard is returned along with an error carrying MsgFetchFailed.
func Load(ctx context.Context, reader domain.AnalyticsReader) (Dashboard, error) {
	a, err := reader.GetAnalytics(ctx)
	if err != nil {
		return Build(nil), &domain.DomainError{Code: domain.ErrCodeFetchFailed, Message: MsgFetchFailed, Err: err}
	}
	return Build(a), nil
}

// MaxCount returns the largest count of a series, for scaling bars
func MaxCount(series []models.GroupCount) int {
	highest := 0
	for _, g := range series {
		if g.Count > highest {
			highest = g.Count
		}
	}
	return highest
}
