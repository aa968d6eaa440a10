package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Marketplace identifies the external listing source of an offer.
// The set is closed; unknown tags are rejected at the boundary.
type Marketplace string

const (
	MarketplaceLazada Marketplace = "lazada"
	MarketplaceShopee Marketplace = "shopee"
)

// String returns the string representation of the marketplace
func (m Marketplace) String() string {
	return string(m)
}

// Valid checks if the marketplace is one of the known sources
func (m Marketplace) Valid() bool {
	switch m {
	case MarketplaceLazada, MarketplaceShopee:
		return true
	default:
		return false
	}
}

// ParseMarketplace parses a marketplace tag case-insensitively,
// rejecting anything outside the closed set.
func ParseMarketplace(s string) (Marketplace, error) {
	m := Marketplace(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("unknown marketplace: %q", s)
	}
	return m, nil
}

// Marketplaces returns all known marketplaces in a stable order
func Marketplaces() []Marketplace {
	return []Marketplace{MarketplaceLazada, MarketplaceShopee}
}

// Scan implements the sql.Scanner interface for Marketplace
func (m *Marketplace) Scan(value any) error {
	if value == nil {
		*m = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*m = Marketplace(v)
	case []byte:
		*m = Marketplace(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Marketplace", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for Marketplace
func (m Marketplace) Value() (driver.Value, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid Marketplace: %s", m)
	}
	return string(m), nil
}

// Offer is a marketplace-specific listing of a Product.
// Price is mutable: the refresh scheduler rewrites it on every run.
// The (marketplace, url) pair is expected to be unique within a product's
// offer set; this is checked at read time by the link builder, not enforced
// with a database constraint.
type Offer struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	ProductID     uint        `gorm:"not null;index:idx_offers_product_id" json:"product_id"`
	Marketplace   Marketplace `gorm:"size:32;not null;index:idx_offers_marketplace" json:"marketplace"`
	StoreName     string      `gorm:"size:255" json:"store_name"`
	Price         float64     `gorm:"type:numeric(12,2)" json:"price"`
	URL           string      `gorm:"type:text;not null" json:"url"`
	SKU           *string     `gorm:"size:128" json:"sku,omitempty"`
	IsActive      bool        `gorm:"not null;default:true;index:idx_offers_is_active" json:"is_active"`
	LastCheckedAt *time.Time  `json:"last_checked_at,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName returns the table name for Offer
func (Offer) TableName() string { return "offers" }

// OfferFilter provides filter fields for repository queries
type OfferFilter struct {
	ID          *uint
	ProductID   *uint
	Marketplace *Marketplace
	IsActive    *bool
	URL         *string
}
