package dto

// APIResponse represents the standard API response structure
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty" validate:"omitempty"`
	Error   any    `json:"error,omitempty" validate:"omitempty"`
}

// ErrorDetail represents error details in API responses
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty" validate:"omitempty"`
}

// JobStatusResponse reports the outcome of the most recent price refresh run
type JobStatusResponse struct {
	LastRunAt      *string `json:"last_run_at"`
	DurationMillis int64   `json:"duration_millis"`
	Processed      int     `json:"processed"`
	Updated        int     `json:"updated"`
	Errors         int     `json:"errors"`
}
