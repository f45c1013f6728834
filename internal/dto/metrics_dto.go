package dto

type MetricsResponse struct {
	TotalRequests      int64            `json:"total_requests"`
	EscalatedRequests  int64            `json:"escalated_requests"`
	UnclassifiedCount  int64            `json:"unclassified_count"`
	RequestsByCategory map[string]int64 `json:"requests_by_category"`
	EscalationsByLevel map[string]int64 `json:"escalations_by_level"`
	AvgConfidence      float64          `json:"avg_confidence"`
	AvgResponseConf    float64          `json:"avg_response_confidence"`
}
