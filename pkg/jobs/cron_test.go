package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jordanlanch/leadmanager/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSeeder struct {
	mu     sync.Mutex
	counts []int
	err    error
}

func (f *fakeSeeder) Seed(_ context.Context, count int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts = append(f.counts, count)
	if f.err != nil {
		return 0, f.err
	}
	return count, nil
}

func TestSetupJobs(t *testing.T) {
	cm := NewCronManager(&fakeSeeder{}, 50, logger.Discard())

	require.NoError(t, cm.SetupJobs(""))
	assert.Equal(t, 0, cm.Jobs())

	require.NoError(t, cm.SetupJobs("0 3 * * *"))
	assert.Equal(t, 1, cm.Jobs())

	assert.Error(t, cm.SetupJobs("every day at noon"))
	assert.Equal(t, 1, cm.Jobs())
}

func TestRunReseed(t *testing.T) {
	seeder := &fakeSeeder{}
	cm := NewCronManager(seeder, 30, logger.Discard())

	cm.RunReseed()
	assert.Equal(t, []int{30}, seeder.counts)

	seeder.err = errors.New("database is locked")
	assert.NotPanics(t, cm.RunReseed)
	assert.Len(t, seeder.counts, 2)
}

func TestStartStop(t *testing.T) {
	cm := NewCronManager(&fakeSeeder{}, 10, logger.Discard())
	require.NoError(t, cm.SetupJobs("@hourly"))
	cm.Start()
	cm.Stop()
}
