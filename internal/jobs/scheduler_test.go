package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"roomledger/internal/models"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRefresher struct {
	calls   atomic.Int32
	summary *models.LeaseExpirySummary
	err     error
	ran     chan struct{}
}

func (f *fakeRefresher) RefreshExpiringLeases(context.Context) (*models.LeaseExpirySummary, error) {
	if f.calls.Add(1) == 1 && f.ran != nil {
		close(f.ran)
	}
	return f.summary, f.err
}

func TestScheduler_RunsOnStart(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	refresher := &fakeRefresher{
		summary: &models.LeaseExpirySummary{WindowDays: 30},
		ran:     make(chan struct{}),
	}

	js, err := NewScheduler(refresher, time.Hour, logger)
	require.NoError(t, err)
	assert.Equal(t, []string{LeaseScanJob}, js.JobNames())

	js.Start()
	select {
	case <-refresher.ran:
	case <-time.After(5 * time.Second):
		t.Fatal("lease scan did not run on start")
	}
	require.NoError(t, js.Stop())
	assert.Equal(t, int32(1), refresher.calls.Load())

	var started *logrus.Entry
	for _, entry := range hook.AllEntries() {
		if entry.Message == "starting background job scheduler" {
			started = entry
		}
	}
	require.NotNil(t, started)
	assert.Equal(t, []string{LeaseScanJob}, started.Data["jobs"])
}

func TestScanLeases_WarnsAboutExpiringRooms(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	js := &Scheduler{
		leases: &fakeRefresher{summary: &models.LeaseExpirySummary{
			WindowDays: 30,
			Rooms:      []*models.Room{{Name: "G1"}, {Name: "F2"}},
		}},
		logger: logger,
	}

	require.NoError(t, js.scanLeases(context.Background()))
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, []string{"G1", "F2"}, entry.Data["rooms"])
	assert.Equal(t, 2, entry.Data["expiring"])
}

func TestScanLeases_Failure(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	js := &Scheduler{leases: &fakeRefresher{err: errors.New("db down")}, logger: logger}

	err := js.scanLeases(context.Background())
	assert.EqualError(t, err, "db down")
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}
