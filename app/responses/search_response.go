package responses

import "github.com/pcvolkmer/ags-example/internal/matcher"

// ErrorResponse is the body of every JSON error.
type ErrorResponse struct {
	Error     string      `json:"error"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	Timestamp string      `json:"timestamp"`
	RequestID string      `json:"request_id,omitempty"`
}

// SuccessResponse acknowledges a write operation.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// HealthCheckResponse reports service health.
type HealthCheckResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Uptime    string            `json:"uptime"`
	Version   string            `json:"version"`
	Services  map[string]string `json:"services"`
}

// SuggestResponse lists place names close to a query without results.
type SuggestResponse struct {
	Query       string               `json:"query"`
	Suggestions []matcher.Suggestion `json:"suggestions"`
}
