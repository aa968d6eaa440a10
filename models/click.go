package models

import "time"

// Click is a single append-only redirect event on a Link.
// Click rows are the sole source of truth for analytics; the fast-store
// counter keyed by link id is a derived accelerator and may lag.
type Click struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	LinkID    uint    `gorm:"not null;index:idx_clicks_link_id" json:"link_id"`
	IPAddress *string `gorm:"size:64" json:"ip_address,omitempty"`
	Referrer  *string `gorm:"type:text" json:"referrer,omitempty"`
	UserAgent *string `gorm:"type:text" json:"user_agent,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_clicks_created_at" json:"created_at"`

	Link *Link `gorm:"foreignKey:LinkID" json:"link,omitempty"`
}

// TableName returns the table name for Click
func (Click) TableName() string { return "clicks" }

// ClickFilter provides filter fields for repository queries
type ClickFilter struct {
	ID            *uint
	LinkID        *uint
	CampaignID    *uint
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// CampaignClicks is an aggregate row: clicks grouped by campaign
type CampaignClicks struct {
	CampaignID uint   `json:"campaign_id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	Clicks     int64  `json:"clicks"`
}

// ProductClicks is an aggregate row: clicks grouped by product
type ProductClicks struct {
	ProductID uint   `json:"product_id"`
	Title     string `json:"title"`
	ImageURL  string `json:"image_url"`
	Clicks    int64  `json:"clicks"`
}

// MarketplaceClicks is an aggregate row: clicks grouped by offer marketplace
type MarketplaceClicks struct {
	Marketplace string `json:"marketplace"`
	Clicks      int64  `json:"clicks"`
}

// DailyClicks is an aggregate row: clicks grouped by calendar day (UTC)
type DailyClicks struct {
	Day    time.Time `json:"day"`
	Clicks int64     `json:"clicks"`
}
