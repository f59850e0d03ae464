package leads

import (
	"context"

	"github.com/jordanlanch/leadmanager/pkg/testdata"
)

// Seed replaces every lead with count freshly generated sample leads
func (s *Service) Seed(ctx context.Context, count int) (int, error) {
	cfg := testdata.DefaultConfig(count)
	cfg.Now = s.now()

	generated := testdata.NewGenerator(cfg).Generate()
	if err := s.ReplaceAll(ctx, generated); err != nil {
		return 0, err
	}

	s.metrics.RecordLeadsSeeded(len(generated))
	return len(generated), nil
}
