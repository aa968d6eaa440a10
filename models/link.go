package models

import (
	"time"

	"github.com/google/uuid"
)

// Link is an immutable mapping from {product, campaign, offer} to a public
// short code and a target URL. The target URL is computed once at mint time
// and intentionally never recomputed when campaign UTM fields change, so
// that historical shared links keep resolving to the same destination.
type Link struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UUID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_links_uuid" json:"uuid"`
	ShortCode  string    `gorm:"size:8;not null;uniqueIndex:uk_links_short_code" json:"short_code"`
	ProductID  uint      `gorm:"not null;index:idx_links_product_id" json:"product_id"`
	CampaignID uint      `gorm:"not null;index:idx_links_campaign_id" json:"campaign_id"`
	OfferID    uint      `gorm:"not null;index:idx_links_offer_id" json:"offer_id"`
	TargetURL  string    `gorm:"type:text;not null" json:"target_url"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_links_created_at" json:"created_at"`

	Product  *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Campaign *Campaign `gorm:"foreignKey:CampaignID" json:"campaign,omitempty"`
	Offer    *Offer    `gorm:"foreignKey:OfferID" json:"offer,omitempty"`
}

// TableName returns the table name for Link
func (Link) TableName() string { return "links" }

// LinkFilter provides filter fields for repository queries
type LinkFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	ShortCode     *string
	ProductID     *uint
	CampaignID    *uint
	OfferID       *uint
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
