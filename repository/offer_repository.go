package repository

import (
	"context"

	"github.com/prasit9/affilink/models"
	"gorm.io/gorm"
)

// OfferRepositoryImpl implements OfferRepository
type OfferRepositoryImpl struct {
	*BaseRepository[models.Offer, models.OfferFilter]
}

func NewOfferRepository(db *gorm.DB) OfferRepository {
	return &OfferRepositoryImpl{BaseRepository: NewBaseRepository[models.Offer, models.OfferFilter](db)}
}

func (r *OfferRepositoryImpl) applyFilter(db *gorm.DB, f models.OfferFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.ProductID != nil {
		db = db.Where("product_id = ?", *f.ProductID)
	}
	if f.Marketplace != nil {
		db = db.Where("marketplace = ?", *f.Marketplace)
	}
	if f.IsActive != nil {
		db = db.Where("is_active = ?", *f.IsActive)
	}
	if f.URL != nil {
		db = db.Where("url = ?", *f.URL)
	}
	return db
}

func (r *OfferRepositoryImpl) ByFilter(ctx context.Context, filter models.OfferFilter, orderBy string, limit, offset int) ([]*models.Offer, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Offer{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.Offer
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *OfferRepositoryImpl) Count(ctx context.Context, filter models.OfferFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Offer{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *OfferRepositoryImpl) Exists(ctx context.Context, filter models.OfferFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

// ListActive returns every offer the refresh scheduler should touch
func (r *OfferRepositoryImpl) ListActive(ctx context.Context) ([]*models.Offer, error) {
	return r.ByFilter(ctx, models.OfferFilter{IsActive: toPtr(true)}, "id ASC", 0, 0)
}

// HasDuplicateInProduct reports whether another offer of the same product
// already carries the same (marketplace, url) pair. The pair is not enforced
// with a uniqueness constraint; the link builder checks it at read time.
func (r *OfferRepositoryImpl) HasDuplicateInProduct(ctx context.Context, productID uint, marketplace models.Marketplace, url string, excludeID uint) (bool, error) {
	db := r.getDB(ctx)
	var count int64
	err := db.Model(&models.Offer{}).
		Where("product_id = ?", productID).
		Where("marketplace = ?", marketplace).
		Where("url = ?", url).
		Where("id <> ?", excludeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func toPtr[T any](v T) *T { return &v }
