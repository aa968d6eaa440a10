package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CampaignStatus represents the lifecycle status of a campaign
type CampaignStatus string

const (
	CampaignStatusDraft    CampaignStatus = "draft"
	CampaignStatusActive   CampaignStatus = "active"
	CampaignStatusPaused   CampaignStatus = "paused"
	CampaignStatusEnded    CampaignStatus = "ended"
	CampaignStatusArchived CampaignStatus = "archived"
)

// String returns the string representation of the status
func (s CampaignStatus) String() string {
	return string(s)
}

// Valid checks if the status is valid
func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignStatusDraft, CampaignStatusActive, CampaignStatusPaused,
		CampaignStatusEnded, CampaignStatusArchived:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for CampaignStatus
func (s *CampaignStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*s = CampaignStatus(v)
	case []byte:
		*s = CampaignStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into CampaignStatus", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for CampaignStatus
func (s CampaignStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid CampaignStatus: %s", s)
	}
	return string(s), nil
}

// Campaign is a named grouping of links carrying UTM attribution metadata.
// UTMCampaign is always stamped onto minted target URLs; the remaining UTM
// fields are applied only when non-empty. Changing UTM fields never rewrites
// previously minted links.
type Campaign struct {
	ID     uint           `gorm:"primaryKey" json:"id"`
	UUID   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uk_campaigns_uuid" json:"uuid"`
	Name   string         `gorm:"size:255;not null" json:"name"`
	Slug   string         `gorm:"size:255;not null;uniqueIndex:uk_campaigns_slug" json:"slug"`
	Status CampaignStatus `gorm:"size:32;not null;default:'draft';index:idx_campaigns_status" json:"status"`

	UTMCampaign string `gorm:"size:255;not null" json:"utm_campaign"`
	UTMSource   string `gorm:"size:255" json:"utm_source"`
	UTMMedium   string `gorm:"size:255" json:"utm_medium"`
	UTMContent  string `gorm:"size:255" json:"utm_content"`
	UTMTerm     string `gorm:"size:255" json:"utm_term"`

	StartAt *time.Time `json:"start_at,omitempty"`
	EndAt   *time.Time `json:"end_at,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

// TableName returns the table name for Campaign
func (Campaign) TableName() string { return "campaigns" }

// HasEnded reports whether the campaign's end instant is in the past.
// Campaigns without an end instant never end implicitly.
func (c *Campaign) HasEnded(now time.Time) bool {
	return c.EndAt != nil && c.EndAt.Before(now)
}

// CampaignFilter provides filter fields for repository queries
type CampaignFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	Slug          *string
	Status        *CampaignStatus
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
