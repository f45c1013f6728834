package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetricsService()

	m.RecordRequest("password_reset", 0.9)
	m.RecordRequest("password_reset", 0.7)
	m.RecordRequest("unknown", 0.2)
	m.RecordEscalation("level_2")
	m.RecordResponse(0.8)
	m.RecordResponse(0.4)

	snap := m.Snapshot()
	assert.Equal(t, int64(3), snap.TotalRequests)
	assert.Equal(t, int64(1), snap.EscalatedRequests)
	assert.Equal(t, int64(1), snap.UnclassifiedCount)
	assert.Equal(t, int64(2), snap.RequestsByCategory["password_reset"])
	assert.Equal(t, int64(1), snap.EscalationsByLevel["level_2"])
	assert.InDelta(t, 0.6, snap.AvgConfidence, 1e-9)
	assert.InDelta(t, 0.6, snap.AvgResponseConf, 1e-9)
}

func TestMetricsSnapshotEmpty(t *testing.T) {
	snap := NewMetricsService().Snapshot()
	assert.Equal(t, int64(0), snap.TotalRequests)
	assert.Zero(t, snap.AvgConfidence)
	assert.NotNil(t, snap.RequestsByCategory)
}

func TestMetricsConcurrentAccess(t *testing.T) {
	m := NewMetricsService()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordRequest("network_connectivity", 0.5)
			m.RecordResponse(0.5)
		}()
	}
	wg.Wait()

	snap := m.Snapshot()
	assert.Equal(t, int64(50), snap.TotalRequests)
	assert.Equal(t, int64(50), snap.RequestsByCategory["network_connectivity"])
}
