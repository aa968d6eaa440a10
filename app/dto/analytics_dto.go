package dto

import "github.com/prasit9/affilink/models"

// OverviewFilters are the two dashboard filter dimensions. Both are part of
// the cache key so distinct filter combinations never collide.
type OverviewFilters struct {
	CampaignID *uint  `json:"campaign_id,omitempty"`
	DateRange  string `json:"date_range"`
}

// CampaignRank is one entry of the overview's top-campaign ranking
type CampaignRank struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Clicks int64  `json:"clicks"`
}

// OverviewResponse answers GET /api/analytics/overview
type OverviewResponse struct {
	TotalClicks         int64            `json:"total_clicks"`
	ClicksByMarketplace map[string]int64 `json:"clicks_by_marketplace"`
	TopCampaigns        []CampaignRank   `json:"top_campaigns"`
}

// ProductSummary is the product shape embedded in analytics answers
type ProductSummary struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url,omitempty"`
}

// TopProductEntry is one entry of GET /api/analytics/products/top
type TopProductEntry struct {
	Product ProductSummary `json:"product"`
	Clicks  int64          `json:"clicks"`
}

// CampaignSummary is the campaign shape embedded in analytics answers
type CampaignSummary struct {
	ID     uint                  `json:"id"`
	UUID   string                `json:"uuid"`
	Name   string                `json:"name"`
	Slug   string                `json:"slug"`
	Status models.CampaignStatus `json:"status"`
}

// ProductClicksEntry is one row of a campaign's per-product breakdown
type ProductClicksEntry struct {
	Product ProductSummary `json:"product"`
	Clicks  int64          `json:"clicks"`
}

// DailyTrendPoint is one calendar day of the dense 7-day trend. Every day of
// the trailing week appears exactly once, zero-filled when no clicks landed.
type DailyTrendPoint struct {
	Date   string `json:"date"` // YYYY-MM-DD, UTC
	Clicks int64  `json:"clicks"`
}

// CampaignStatsResponse answers GET /api/analytics/campaigns/:id
type CampaignStatsResponse struct {
	Campaign        CampaignSummary      `json:"campaign"`
	TotalClicks     int64                `json:"total_clicks"`
	ClicksByProduct []ProductClicksEntry `json:"clicks_by_product"`
	DailyTrend      []DailyTrendPoint    `json:"daily_trend"`
}
