package testdata

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/jordanlanch/leadmanager/pkg/models"
)

// LeadGeneratorConfig configures sample lead generation
type LeadGeneratorConfig struct {
	Count           int
	Seed            int64         // 0 picks a random seed
	Now             time.Time     // zero means time.Now()
	History         time.Duration // how far back creation dates go
	MinValue        float64
	MaxValue        float64
	ContactedChance float64 // 0.0-1.0 (probability of a last contacted date)
	NotesChance     float64
	Assignees       []string
}

// DefaultConfig returns the generator settings used by the seed endpoint
func DefaultConfig(count int) LeadGeneratorConfig {
	return LeadGeneratorConfig{
		Count:           count,
		History:         90 * 24 * time.Hour,
		MinValue:        500,
		MaxValue:        50000,
		ContactedChance: 0.6,
		NotesChance:     0.5,
		Assignees:       []string{"Alex Morgan", "Sam Rivera", "Jordan Lee", "Taylor Kim"},
	}
}

// Generator creates realistic fake leads
type Generator struct {
	cfg   LeadGeneratorConfig
	faker *gofakeit.Faker
}

// NewGenerator creates a generator. Two generators with the same non-zero seed
// and Now produce the same leads apart from their IDs.
func NewGenerator(cfg LeadGeneratorConfig) *Generator {
	if cfg.Now.IsZero() {
		cfg.Now = time.Now().UTC()
	}
	if cfg.History <= 0 {
		cfg.History = 90 * 24 * time.Hour
	}
	if cfg.MaxValue < cfg.MinValue {
		cfg.MaxValue = cfg.MinValue
	}
	return &Generator{
		cfg:   cfg,
		faker: gofakeit.New(cfg.Seed),
	}
}

// Generate returns cfg.Count leads
func (g *Generator) Generate() []models.Lead {
	leads := make([]models.Lead, 0, g.cfg.Count)
	for i := 0; i < g.cfg.Count; i++ {
		leads = append(leads, g.Lead())
	}
	return leads
}

// Lead returns a single fake lead
func (g *Generator) Lead() models.Lead {
	f := g.faker

	created := f.DateRange(g.cfg.Now.Add(-g.cfg.History), g.cfg.Now).UTC()
	lead := models.Lead{
		ID:        uuid.NewString(),
		Name:      f.Name(),
		Email:     f.Email(),
		Phone:     f.Phone(),
		Company:   f.Company(),
		JobTitle:  f.JobTitle(),
		Status:    models.Statuses[f.Number(0, len(models.Statuses)-1)],
		Source:    models.Sources[f.Number(0, len(models.Sources)-1)],
		Value:     f.Price(g.cfg.MinValue, g.cfg.MaxValue),
		CreatedAt: created,
		UpdatedAt: created,
	}

	if len(g.cfg.Assignees) > 0 {
		lead.AssignedTo = f.RandomString(g.cfg.Assignees)
	}

	if f.Float64Range(0, 1) < g.cfg.NotesChance {
		lead.Notes = f.Sentence(12)
	}

	// New leads have not been contacted yet
	if lead.Status != models.StatusNew && f.Float64Range(0, 1) < g.cfg.ContactedChance {
		contacted := f.DateRange(created, g.cfg.Now).UTC()
		lead.LastContacted = &contacted
		lead.UpdatedAt = contacted
	}

	return lead
}
