package testdata

import (
	"testing"
	"time"

	"github.com/jordanlanch/leadmanager/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Generate(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cfg := DefaultConfig(40)
	cfg.Seed = 42
	cfg.Now = now

	leads := NewGenerator(cfg).Generate()
	require.Len(t, leads, 40)

	v := models.NewValidator()
	ids := map[string]bool{}
	for _, lead := range leads {
		assert.NotEmpty(t, lead.ID)
		assert.False(t, ids[lead.ID], "duplicate id %s", lead.ID)
		ids[lead.ID] = true

		assert.True(t, lead.Status.IsValid())
		assert.True(t, lead.Source.IsValid())
		assert.GreaterOrEqual(t, lead.Value, cfg.MinValue)
		assert.LessOrEqual(t, lead.Value, cfg.MaxValue)
		assert.False(t, lead.CreatedAt.After(now))
		assert.False(t, lead.CreatedAt.Before(now.Add(-cfg.History)))

		if lead.LastContacted != nil {
			assert.NotEqual(t, models.StatusNew, lead.Status)
			assert.False(t, lead.LastContacted.Before(lead.CreatedAt))
		}

		input := models.LeadInput{
			Name: lead.Name, Email: lead.Email, Phone: lead.Phone,
			Status: lead.Status, Source: lead.Source, Value: lead.Value,
		}
		assert.NoError(t, v.Struct(input), "generated lead should pass form validation")
	}
}

func TestGenerator_SameSeedSameData(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cfg := DefaultConfig(5)
	cfg.Seed = 7
	cfg.Now = now

	a := NewGenerator(cfg).Generate()
	b := NewGenerator(cfg).Generate()

	for i := range a {
		assert.Equal(t, a[i].Name, b[i].Name)
		assert.Equal(t, a[i].Email, b[i].Email)
		assert.Equal(t, a[i].Status, b[i].Status)
		assert.NotEqual(t, a[i].ID, b[i].ID)
	}
}

func TestGenerator_ZeroCount(t *testing.T) {
	assert.Empty(t, NewGenerator(DefaultConfig(0)).Generate())
}
