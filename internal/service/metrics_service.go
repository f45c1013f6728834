package service

import (
	"sync"

	"helpdesk-ai-be/internal/dto"
)

type IMetricsService interface {
	RecordRequest(category string, confidence float64)
	RecordEscalation(level string)
	RecordResponse(confidence float64)
	Snapshot() *dto.MetricsResponse
}

// metricsService keeps in-process counters for the metrics endpoint.
// Counters reset on restart; durable stats come from the tickets table.
type metricsService struct {
	mu sync.Mutex

	totalRequests      int64
	escalatedRequests  int64
	unclassifiedCount  int64
	requestsByCategory map[string]int64
	escalationsByLevel map[string]int64
	confidenceSum      float64
	responseConfSum    float64
	responseCount      int64
}

func NewMetricsService() IMetricsService {
	return &metricsService{
		requestsByCategory: make(map[string]int64),
		escalationsByLevel: make(map[string]int64),
	}
}

func (m *metricsService) RecordRequest(category string, confidence float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalRequests++
	m.requestsByCategory[category]++
	if category == "unknown" {
		m.unclassifiedCount++
	}
	m.confidenceSum += confidence
}

func (m *metricsService) RecordEscalation(level string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.escalatedRequests++
	m.escalationsByLevel[level]++
}

func (m *metricsService) RecordResponse(confidence float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responseCount++
	m.responseConfSum += confidence
}

func (m *metricsService) Snapshot() *dto.MetricsResponse {
	m.mu.Lock()
	defer m.mu.Unlock()

	byCategory := make(map[string]int64, len(m.requestsByCategory))
	for k, v := range m.requestsByCategory {
		byCategory[k] = v
	}
	byLevel := make(map[string]int64, len(m.escalationsByLevel))
	for k, v := range m.escalationsByLevel {
		byLevel[k] = v
	}

	res := &dto.MetricsResponse{
		TotalRequests:      m.totalRequests,
		EscalatedRequests:  m.escalatedRequests,
		UnclassifiedCount:  m.unclassifiedCount,
		RequestsByCategory: byCategory,
		EscalationsByLevel: byLevel,
	}
	if m.totalRequests > 0 {
		res.AvgConfidence = m.confidenceSum / float64(m.totalRequests)
	}
	if m.responseCount > 0 {
		res.AvgResponseConf = m.responseConfSum / float64(m.responseCount)
	}
	return res
}
