package leads

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
	"github.com/jordanlanch/leadmanager/pkg/database"
	"github.com/jordanlanch/leadmanager/pkg/domain"
	"github.com/jordanlanch/leadmanager/pkg/metrics"
	"github.com/jordanlanch/leadmanager/pkg/models"
	"golang.org/x/text/unicode/norm"
)

const (
	defaultLimit = 10
	maxLimit     = 100
	insertBatch  = 50
)

var columns = []string{
	"id", "name", "email", "phone", "company", "job_title", "status", "source",
	"value", "notes", "assigned_to", "last_contacted", "created_at", "updated_at",
}

// Service handles lead business logic
type Service struct {
	db      *database.Client
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewService creates a new lead service. m may be nil.
func NewService(db *database.Client, m *metrics.Metrics) *Service {
	return &Service{
		db:      db,
		metrics: m,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

var _ domain.LeadRepository = (*Service)(nil)

// normalizeSearch composes the search text so "é" typed as e + accent matches the stored form
func normalizeSearch(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// filters builds the WHERE predicate of a list request. Nil means no filter.
func filters(req models.LeadListRequest) *entsql.Predicate {
	var preds []*entsql.Predicate

	if search := normalizeSearch(req.Search); search != "" {
		preds = append(preds, entsql.Or(
			entsql.ContainsFold("name", search),
			entsql.ContainsFold("email", search),
			entsql.ContainsFold("company", search),
		))
	}
	if req.Status.IsSet() {
		preds = append(preds, entsql.EQ("status", string(req.Status)))
	}
	if req.Source.IsSet() {
		preds = append(preds, entsql.EQ("source", string(req.Source)))
	}

	switch len(preds) {
	case 0:
		return nil
	case 1:
		return preds[0]
	default:
		return entsql.And(preds...)
	}
}

// List returns one page of leads, newest first
func (s *Service) List(ctx context.Context, req models.LeadListRequest) (*models.LeadListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Page > models.MaxPage {
		req.Page = models.MaxPage
	}
	if req.Limit < 1 {
		req.Limit = defaultLimit
	}
	if req.Limit > maxLimit {
		req.Limit = maxLimit
	}

	start := time.Now()
	defer func() { s.metrics.RecordDBQuery("list_leads", time.Since(start)) }()

	b := s.db.Builder()

	count := b.Select().Count().From(b.Table(database.LeadsTable))
	if where := filters(req); where != nil {
		count.Where(where)
	}
	query, args := count.Query()

	var total int
	if err := s.db.DB().QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count leads: %w", err)
	}

	page := b.Select(columns...).
		From(b.Table(database.LeadsTable)).
		OrderBy(entsql.Desc("created_at"), entsql.Asc("id")).
		Limit(req.Limit).
		Offset(req.Offset())
	if where := filters(req); where != nil {
		page.Where(where)
	}
	query, args = page.Query()

	rows, err := s.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leads: %w", err)
	}
	defer rows.Close()

	leads := make([]models.Lead, 0, req.Limit)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leads: %w", err)
	}

	return &models.LeadListResponse{
		Leads:       leads,
		TotalLeads:  total,
		CurrentPage: req.Page,
		TotalPages:  (total + req.Limit - 1) / req.Limit,
	}, nil
}

// GetByID returns a lead or a not found error
func (s *Service) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	b := s.db.Builder()
	query, args := b.Select(columns...).
		From(b.Table(database.LeadsTable)).
		Where(entsql.EQ("id", id)).
		Limit(1).
		Query()

	lead, err := scanLead(s.db.DB().QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("lead")
		}
		return nil, err
	}
	return lead, nil
}

// Create stores a new lead. Status and source fall back to New and Website.
func (s *Service) Create(ctx context.Context, input models.LeadInput) (*models.Lead, error) {
	now := s.now()
	lead := fromInput(input)
	lead.ID = uuid.NewString()
	lead.CreatedAt = now
	lead.UpdatedAt = now

	if err := s.insert(ctx, s.db.DB(), []models.Lead{lead}); err != nil {
		return nil, err
	}
	return &lead, nil
}

// Update replaces the editable fields of a lead
func (s *Service) Update(ctx context.Context, id string, input models.LeadInput) (*models.Lead, error) {
	lead := fromInput(input)

	query, args := s.db.Builder().Update(database.LeadsTable).
		Set("name", lead.Name).
		Set("email", lead.Email).
		Set("phone", lead.Phone).
		Set("company", lead.Company).
		Set("job_title", lead.JobTitle).
		Set("status", string(lead.Status)).
		Set("source", string(lead.Source)).
		Set("value", lead.Value).
		Set("notes", lead.Notes).
		Set("assigned_to", lead.AssignedTo).
		Set("updated_at", s.now()).
		Where(entsql.EQ("id", id)).
		Query()

	res, err := s.db.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update lead: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, domain.NewNotFoundError("lead")
	}

	return s.GetByID(ctx, id)
}

// ReplaceAll swaps the whole lead table for the given leads in one transaction
func (s *Service) ReplaceAll(ctx context.Context, leads []models.Lead) error {
	start := time.Now()
	defer func() { s.metrics.RecordDBQuery("replace_leads", time.Since(start)) }()

	tx, err := s.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query, args := s.db.Builder().Delete(database.LeadsTable).Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to clear leads: %w", err)
	}

	if err := s.insert(ctx, tx, leads); err != nil {
		return err
	}

	return tx.Commit()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Service) insert(ctx context.Context, db execer, leads []models.Lead) error {
	for start := 0; start < len(leads); start += insertBatch {
		end := min(start+insertBatch, len(leads))

		insert := s.db.Builder().Insert(database.LeadsTable).Columns(columns...)
		for _, l := range leads[start:end] {
			var lastContacted sql.NullTime
			if l.LastContacted != nil {
				lastContacted = sql.NullTime{Time: l.LastContacted.UTC(), Valid: true}
			}
			insert.Values(
				l.ID, l.Name, l.Email, l.Phone, l.Company, l.JobTitle,
				string(l.Status), string(l.Source), l.Value, l.Notes, l.AssignedTo,
				lastContacted, l.CreatedAt.UTC(), l.UpdatedAt.UTC(),
			)
		}

		query, args := insert.Query()
		if _, err := db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert leads: %w", err)
		}
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLead(row scanner) (*models.Lead, error) {
	var (
		lead          models.Lead
		status        string
		source        string
		lastContacted sql.NullTime
	)
	err := row.Scan(
		&lead.ID, &lead.Name, &lead.Email, &lead.Phone, &lead.Company, &lead.JobTitle,
		&status, &source, &lead.Value, &lead.Notes, &lead.AssignedTo,
		&lastContacted, &lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan lead: %w", err)
	}
	lead.Status = models.LeadStatus(status)
	lead.Source = models.LeadSource(source)
	if lastContacted.Valid {
		t := lastContacted.Time
		lead.LastContacted = &t
	}
	return &lead, nil
}

func fromInput(input models.LeadInput) models.Lead {
	if !input.Status.IsSet() {
		input.Status = models.StatusNew
	}
	if !input.Source.IsSet() {
		input.Source = models.SourceWebsite
	}
	return models.Lead{
		Name:       strings.TrimSpace(input.Name),
		Email:      strings.TrimSpace(input.Email),
		Phone:      strings.TrimSpace(input.Phone),
		Company:    input.Company,
		JobTitle:   input.JobTitle,
		Status:     input.Status,
		Source:     input.Source,
		Value:      input.Value,
		Notes:      input.Notes,
		AssignedTo: input.AssignedTo,
	}
}
