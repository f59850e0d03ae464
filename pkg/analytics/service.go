package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"sort"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/jordanlanch/leadmanager/pkg/database"
	"github.com/jordanlanch/leadmanager/pkg/domain"
	"github.com/jordanlanch/leadmanager/pkg/metrics"
	"github.com/jordanlanch/leadmanager/pkg/models"
)

// Service computes dashboard aggregates over the lead table
type Service struct {
	db      *database.Client
	metrics *metrics.Metrics
}

// NewService creates a new analytics service. m may be nil.
func NewService(db *database.Client, m *metrics.Metrics) *Service {
	return &Service{db: db, metrics: m}
}

var _ domain.AnalyticsRepository = (*Service)(nil)

// Summary returns lead totals, the Closed-Won conversion rate and the
// per-stage and per-source breakdowns
func (s *Service) Summary(ctx context.Context) (*models.Analytics, error) {
	start := time.Now()
	defer func() { s.metrics.RecordDBQuery("analytics_summary", time.Since(start)) }()

	b := s.db.Builder()

	query, args := b.Select(entsql.Count("*"), entsql.Sum("value")).
		From(b.Table(database.LeadsTable)).
		Query()

	var (
		total int
		value sql.NullFloat64
	)
	if err := s.db.DB().QueryRowContext(ctx, query, args...).Scan(&total, &value); err != nil {
		return nil, fmt.Errorf("failed to aggregate leads: %w", err)
	}

	query, args = b.Select().Count().
		From(b.Table(database.LeadsTable)).
		Where(entsql.EQ("status", string(models.StatusClosedWon))).
		Query()

	var converted int
	if err := s.db.DB().QueryRowContext(ctx, query, args...).Scan(&converted); err != nil {
		return nil, fmt.Errorf("failed to count converted leads: %w", err)
	}

	byStage, err := s.groupCount(ctx, "status")
	if err != nil {
		return nil, err
	}
	bySource, err := s.groupCount(ctx, "source")
	if err != nil {
		return nil, err
	}

	return &models.Analytics{
		TotalLeads:     total,
		ConvertedLeads: converted,
		ConversionRate: ConversionRate(converted, total),
		TotalValue:     value.Float64,
		LeadsByStage:   byStage,
		LeadsBySource:  bySource,
	}, nil
}

// ConversionRate returns converted/total as a percentage rounded to one decimal
func ConversionRate(converted, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(converted)/float64(total)*1000) / 10
}

// groupCount counts leads per distinct value of column, largest group first
func (s *Service) groupCount(ctx context.Context, column string) ([]models.GroupCount, error) {
	b := s.db.Builder()
	query, args := b.Select(column, entsql.Count("*")).
		From(b.Table(database.LeadsTable)).
		GroupBy(column).
		OrderBy(column).
		Query()

	rows, err := s.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to group leads by %s: %w", column, err)
	}
	defer rows.Close()

	groups := []models.GroupCount{}
	for rows.Next() {
		var g models.GroupCount
		if err := rows.Scan(&g.ID, &g.Count); err != nil {
			return nil, fmt.Errorf("failed to scan %s group: %w", column, err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})
	return groups, nil
}
