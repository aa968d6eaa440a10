package utils

import "time"

// ContextKey is the type for request-scoped context values
type ContextKey string

// Context keys carried from the HTTP layer into flows
const (
	RequestIDKey  ContextKey = "request_id"
	IPAddressKey  ContextKey = "ip_address"
	UserAgentKey  ContextKey = "user_agent"
	EndpointKey   ContextKey = "endpoint"
	TimeoutKey    ContextKey = "timeout"
	CancelFuncKey ContextKey = "cancel_func"
)

// Analytics cache policy
const (
	// AnalyticsCacheTTL bounds how stale a cached analytics answer may be
	AnalyticsCacheTTL = 5 * time.Minute

	// AnalyticsCacheTTLSeconds is the same bound in seconds (300)
	AnalyticsCacheTTLSeconds = 300

	OverviewCacheKeyPrefix      = "analytics:overview"
	TopProductsCacheKeyPrefix   = "analytics:top-products"
	CampaignStatsCacheKeyPrefix = "analytics:campaign"
)

// Fast-store counter and job-status keys
const (
	// ClickCountKeyPrefix namespaces the per-link click counters
	ClickCountKeyPrefix = "clicks:count"

	// RefreshJobStatusKey holds the last price-refresh run snapshot (no TTL)
	RefreshJobStatusKey = "jobs:refresh:status"
)

// Short-code allocation
const (
	// ShortCodeLength is the fixed public short-code length
	ShortCodeLength = 8

	// ShortCodeAlphabet is the allocation alphabet. Resolution additionally
	// accepts '-' and '_' so historical codes stay valid.
	ShortCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// ShortCodeMaxAttempts bounds collision retries before giving up
	ShortCodeMaxAttempts = 5
)

// Analytics query dimensions
const (
	DateRangeLast7Days  = "last7days"
	DateRangeLast30Days = "last30days"
	DateRangeAll        = "all"

	// TopProductsDefaultLimit and bounds mirror the dashboard UI
	TopProductsDefaultLimit = 10
	TopProductsMinLimit     = 1
	TopProductsMaxLimit     = 50

	// OverviewTopCampaigns is how many campaigns the overview ranks
	OverviewTopCampaigns = 5

	// TrendDays is the dense daily-trend window for campaign stats
	TrendDays = 7
)
