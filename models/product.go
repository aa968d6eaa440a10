package models

import "time"

// Product is a catalogued item tracked across marketplaces.
// A product owns zero or more Offers; products are never hard-deleted,
// delisting is expressed by deactivating their offers.
type Product struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"size:512;not null" json:"title"`
	ImageURL string `gorm:"type:text" json:"image_url"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`

	Offers []Offer `gorm:"foreignKey:ProductID" json:"offers,omitempty"`
}

// TableName returns the table name for Product
func (Product) TableName() string { return "products" }

// ProductFilter provides filter fields for repository queries
type ProductFilter struct {
	ID            *uint
	Title         *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
