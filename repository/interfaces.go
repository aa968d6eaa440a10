// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prasit9/affilink/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Update(ctx context.Context, entity *T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// ProductRepository defines operations for catalogued products
type ProductRepository interface {
	Repository[models.Product, models.ProductFilter]
}

// OfferRepository defines operations for marketplace offers
type OfferRepository interface {
	Repository[models.Offer, models.OfferFilter]
	ListActive(ctx context.Context) ([]*models.Offer, error)
	HasDuplicateInProduct(ctx context.Context, productID uint, marketplace models.Marketplace, url string, excludeID uint) (bool, error)
}

// CampaignRepository defines operations for campaigns
type CampaignRepository interface {
	Repository[models.Campaign, models.CampaignFilter]
	BySlug(ctx context.Context, slug string) (*models.Campaign, error)
	ByUUID(ctx context.Context, id uuid.UUID) (*models.Campaign, error)
}

// LinkRepository defines operations for minted short links
type LinkRepository interface {
	Repository[models.Link, models.LinkFilter]
	ByShortCode(ctx context.Context, shortCode string) (*models.Link, error)
	ShortCodeExists(ctx context.Context, shortCode string) (bool, error)
	ListByCampaign(ctx context.Context, campaignID uint) ([]*models.Link, error)
}

// ClickRepository defines operations for click events, including the
// aggregate queries behind the analytics dashboard
type ClickRepository interface {
	Repository[models.Click, models.ClickFilter]
	CountByLink(ctx context.Context, linkID uint) (int64, error)
	CountWindow(ctx context.Context, campaignID *uint, since *time.Time) (int64, error)
	CountByMarketplace(ctx context.Context, campaignID *uint, since *time.Time) ([]*models.MarketplaceClicks, error)
	TopCampaigns(ctx context.Context, campaignID *uint, since *time.Time, limit int) ([]*models.CampaignClicks, error)
	TopProducts(ctx context.Context, limit int) ([]*models.ProductClicks, error)
	ProductBreakdown(ctx context.Context, campaignID uint) ([]*models.ProductClicks, error)
	DailyCounts(ctx context.Context, campaignID uint, from time.Time) ([]*models.DailyClicks, error)
}
