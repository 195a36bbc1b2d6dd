package types

import "github.com/techstock/inventory/internal/query"

// APIResponse is the uniform envelope for every endpoint: success plus
// either data (and pagination for lists) or a message.
type APIResponse struct {
	Success    bool              `json:"success"`
	Data       interface{}       `json:"data,omitempty"`
	Message    string            `json:"message,omitempty"`
	Pagination *query.Pagination `json:"pagination,omitempty"`
}

// OK wraps data in a success envelope.
func OK(data interface{}) APIResponse {
	return APIResponse{Success: true, Data: data}
}

// OKMessage wraps data in a success envelope with a human-readable message.
func OKMessage(data interface{}, message string) APIResponse {
	return APIResponse{Success: true, Data: data, Message: message}
}

// Paginated wraps a page of data plus its pagination metadata.
func Paginated(data interface{}, p query.Pagination) APIResponse {
	return APIResponse{Success: true, Data: data, Pagination: &p}
}

// Fail wraps a failure message.
func Fail(message string) APIResponse {
	return APIResponse{Success: false, Message: message}
}

// HealthResponse reports liveness plus database reachability.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// StatsResponse reports entity row totals.
type StatsResponse struct {
	TotalResources      int64 `json:"total_resources"`
	TotalSubscriptions  int64 `json:"total_subscriptions"`
	TotalResourceGroups int64 `json:"total_resource_groups"`
	TotalApplications   int64 `json:"total_applications"`
}
