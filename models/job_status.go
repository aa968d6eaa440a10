package models

import "time"

// RefreshJobStatus is the snapshot of the last scheduled price-refresh run.
// It lives in the fast store with no TTL and is overwritten on every run;
// a zero value is served when no run has happened yet.
type RefreshJobStatus struct {
	LastRunAt      *time.Time `json:"last_run_at"`
	DurationMillis int64      `json:"duration_millis"`
	Processed      int        `json:"processed"`
	Updated        int        `json:"updated"`
	Errors         int        `json:"errors"`
}
