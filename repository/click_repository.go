package repository

import (
	"context"
	"time"

	"github.com/prasit9/affilink/models"
	"gorm.io/gorm"
)

// ClickRepositoryImpl implements ClickRepository
type ClickRepositoryImpl struct {
	*BaseRepository[models.Click, models.ClickFilter]
}

func NewClickRepository(db *gorm.DB) ClickRepository {
	return &ClickRepositoryImpl{BaseRepository: NewBaseRepository[models.Click, models.ClickFilter](db)}
}

func (r *ClickRepositoryImpl) applyFilter(db *gorm.DB, f models.ClickFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("clicks.id = ?", *f.ID)
	}
	if f.LinkID != nil {
		db = db.Where("clicks.link_id = ?", *f.LinkID)
	}
	if f.CampaignID != nil {
		db = db.Joins("JOIN links ON links.id = clicks.link_id").
			Where("links.campaign_id = ?", *f.CampaignID)
	}
	if f.CreatedAfter != nil {
		db = db.Where("clicks.created_at >= ?", *f.CreatedAfter)
	}
	if f.CreatedBefore != nil {
		db = db.Where("clicks.created_at < ?", *f.CreatedBefore)
	}
	return db
}

func (r *ClickRepositoryImpl) ByFilter(ctx context.Context, filter models.ClickFilter, orderBy string, limit, offset int) ([]*models.Click, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Click{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.Click
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ClickRepositoryImpl) Count(ctx context.Context, filter models.ClickFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Click{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ClickRepositoryImpl) Exists(ctx context.Context, filter models.ClickFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

// CountByLink is the durable fallback behind the fast-store click counter
func (r *ClickRepositoryImpl) CountByLink(ctx context.Context, linkID uint) (int64, error) {
	return r.Count(ctx, models.ClickFilter{LinkID: &linkID})
}

// windowed narrows a clicks query to an optional campaign and lower time
// bound. A nil bound means no timestamp filter at all, which is how the
// "all" date range is expressed.
func windowed(db *gorm.DB, campaignID *uint, since *time.Time) *gorm.DB {
	if campaignID != nil {
		db = db.Where("links.campaign_id = ?", *campaignID)
	}
	if since != nil {
		db = db.Where("clicks.created_at >= ?", *since)
	}
	return db
}

func (r *ClickRepositoryImpl) CountWindow(ctx context.Context, campaignID *uint, since *time.Time) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Click{})
	if campaignID != nil {
		query = query.Joins("JOIN links ON links.id = clicks.link_id")
	}
	query = windowed(query, campaignID, since)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByMarketplace groups clicks by the offer's marketplace tag,
// lower-cased. Joins are LEFT so a click whose link row has gone missing is
// dropped by the explicit guard instead of failing the query.
func (r *ClickRepositoryImpl) CountByMarketplace(ctx context.Context, campaignID *uint, since *time.Time) ([]*models.MarketplaceClicks, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Click{}).
		Select("LOWER(offers.marketplace) AS marketplace, COUNT(*) AS clicks").
		Joins("LEFT JOIN links ON links.id = clicks.link_id").
		Joins("LEFT JOIN offers ON offers.id = links.offer_id").
		Where("links.id IS NOT NULL")
	query = windowed(query, campaignID, since)
	query = query.Group("LOWER(offers.marketplace)").Order("clicks DESC")

	var rows []*models.MarketplaceClicks
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// TopCampaigns ranks campaigns by click count inside the filtered window
func (r *ClickRepositoryImpl) TopCampaigns(ctx context.Context, campaignID *uint, since *time.Time, limit int) ([]*models.CampaignClicks, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Click{}).
		Select("links.campaign_id AS campaign_id, campaigns.name AS name, campaigns.slug AS slug, COUNT(*) AS clicks").
		Joins("JOIN links ON links.id = clicks.link_id").
		Joins("JOIN campaigns ON campaigns.id = links.campaign_id")
	query = windowed(query, campaignID, since)
	query = query.Group("links.campaign_id, campaigns.name, campaigns.slug").
		Order("clicks DESC").
		Limit(limit)

	var rows []*models.CampaignClicks
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// TopProducts ranks products by click count across all time
func (r *ClickRepositoryImpl) TopProducts(ctx context.Context, limit int) ([]*models.ProductClicks, error) {
	db := r.getDB(ctx)
	var rows []*models.ProductClicks
	err := db.Model(&models.Click{}).
		Select("products.id AS product_id, products.title AS title, products.image_url AS image_url, COUNT(*) AS clicks").
		Joins("JOIN links ON links.id = clicks.link_id").
		Joins("JOIN products ON products.id = links.product_id").
		Group("products.id, products.title, products.image_url").
		Order("clicks DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ProductBreakdown groups one campaign's clicks by product
func (r *ClickRepositoryImpl) ProductBreakdown(ctx context.Context, campaignID uint) ([]*models.ProductClicks, error) {
	db := r.getDB(ctx)
	var rows []*models.ProductClicks
	err := db.Model(&models.Click{}).
		Select("products.id AS product_id, products.title AS title, products.image_url AS image_url, COUNT(*) AS clicks").
		Joins("JOIN links ON links.id = clicks.link_id").
		Joins("JOIN products ON products.id = links.product_id").
		Where("links.campaign_id = ?", campaignID).
		Group("products.id, products.title, products.image_url").
		Order("clicks DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DailyCounts groups one campaign's clicks by UTC calendar day from the
// given instant on. Days without clicks produce no row; the flow layer
// zero-fills the dense trend.
func (r *ClickRepositoryImpl) DailyCounts(ctx context.Context, campaignID uint, from time.Time) ([]*models.DailyClicks, error) {
	db := r.getDB(ctx)
	var rows []*models.DailyClicks
	err := db.Model(&models.Click{}).
		Select("DATE_TRUNC('day', clicks.created_at AT TIME ZONE 'UTC') AS day, COUNT(*) AS clicks").
		Joins("JOIN links ON links.id = clicks.link_id").
		Where("links.campaign_id = ?", campaignID).
		Where("clicks.created_at >= ?", from).
		Group("DATE_TRUNC('day', clicks.created_at AT TIME ZONE 'UTC')").
		Order("day ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
