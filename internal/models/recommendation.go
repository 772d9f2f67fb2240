package models

import "time"

// Priority is the coarse urgency tier of a recommendation, derived from score.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Recommendation is one scored product with its generated push notification.
type Recommendation struct {
	Product          string   `json:"product"`
	PushNotification string   `json:"push_notification"`
	Score            float64  `json:"score"`
	ExpectedBenefit  float64  `json:"expected_benefit"`
	Priority         Priority `json:"priority"`
}

// AnalyzeResponse is the body returned by the single-product analyze endpoint.
type AnalyzeResponse struct {
	ClientCode       int64  `json:"client_code"`
	Product          string `json:"product"`
	PushNotification string `json:"push_notification"`
}

// AnalyzeAllResponse is the body returned by the full-catalog endpoint.
type AnalyzeAllResponse struct {
	ClientCode      int64            `json:"client_code"`
	Recommendations []Recommendation `json:"recommendations"`
}

// PushNotificationEvent is published to the message broker for every
// generated recommendation.
type PushNotificationEvent struct {
	EventID         string    `json:"event_id"`
	ClientCode      int64     `json:"client_code"`
	Product         string    `json:"product"`
	Message         string    `json:"message"`
	Score           float64   `json:"score"`
	ExpectedBenefit float64   `json:"expected_benefit"`
	Priority        Priority  `json:"priority"`
	Timestamp       time.Time `json:"timestamp"`
}
