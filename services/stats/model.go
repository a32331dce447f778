package stats

// Statistics is a point-in-time aggregation of a service's moderation
// activity. Values are computed from a fresh scan on every call, nothing is
// cached or incrementally maintained.
type Statistics struct {
	ServiceID        string `json:"service_id"`
	TotalRequests    int64  `json:"total_requests"`
	PendingRequests  int64  `json:"pending_requests"`
	TextRequests     int64  `json:"text_requests"`
	ApprovedCount    int64  `json:"approved_count"`
	RejectedCount    int64  `json:"rejected_count"`
	HumanReviewCount int64  `json:"human_review_count"`
}
