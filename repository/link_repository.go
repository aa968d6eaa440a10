package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prasit9/affilink/models"
	"gorm.io/gorm"
)

// ErrDuplicate is returned when a unique constraint rejects an insert,
// e.g. two concurrent mints racing on the same short code.
var ErrDuplicate = errors.New("duplicate row")

// isUniqueViolation reports whether err carries the driver's
// unique-constraint rejection, SQLSTATE 23505.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// LinkRepositoryImpl implements LinkRepository
type LinkRepositoryImpl struct {
	*BaseRepository[models.Link, models.LinkFilter]
}

func NewLinkRepository(db *gorm.DB) LinkRepository {
	return &LinkRepositoryImpl{BaseRepository: NewBaseRepository[models.Link, models.LinkFilter](db)}
}

func (r *LinkRepositoryImpl) applyFilter(db *gorm.DB, f models.LinkFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.UUID != nil {
		db = db.Where("uuid = ?", *f.UUID)
	}
	if f.ShortCode != nil {
		db = db.Where("short_code = ?", *f.ShortCode)
	}
	if f.ProductID != nil {
		db = db.Where("product_id = ?", *f.ProductID)
	}
	if f.CampaignID != nil {
		db = db.Where("campaign_id = ?", *f.CampaignID)
	}
	if f.OfferID != nil {
		db = db.Where("offer_id = ?", *f.OfferID)
	}
	if f.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *f.CreatedAfter)
	}
	if f.CreatedBefore != nil {
		db = db.Where("created_at < ?", *f.CreatedBefore)
	}
	return db
}

func (r *LinkRepositoryImpl) ByFilter(ctx context.Context, filter models.LinkFilter, orderBy string, limit, offset int) ([]*models.Link, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Link{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.Link
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *LinkRepositoryImpl) Count(ctx context.Context, filter models.LinkFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Link{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *LinkRepositoryImpl) Exists(ctx context.Context, filter models.LinkFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

// Save inserts a link, translating a unique-constraint rejection into
// ErrDuplicate so the flow layer can map it to its own error class.
func (r *LinkRepositoryImpl) Save(ctx context.Context, link *models.Link) error {
	err := r.BaseRepository.Save(ctx, link)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// ByShortCode resolves a short code to its link, preloading the joined
// product, campaign, and offer rows the redirect and analytics paths need.
func (r *LinkRepositoryImpl) ByShortCode(ctx context.Context, shortCode string) (*models.Link, error) {
	db := r.getDB(ctx)
	var row models.Link
	err := db.Preload("Product").Preload("Campaign").Preload("Offer").
		Where("short_code = ?", shortCode).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ShortCodeExists is the collision probe used by the short-code allocator
func (r *LinkRepositoryImpl) ShortCodeExists(ctx context.Context, shortCode string) (bool, error) {
	return r.Exists(ctx, models.LinkFilter{ShortCode: &shortCode})
}

// ListByCampaign returns a campaign's links with product and offer preloaded,
// oldest first, for report exports.
func (r *LinkRepositoryImpl) ListByCampaign(ctx context.Context, campaignID uint) ([]*models.Link, error) {
	db := r.getDB(ctx)
	var rows []*models.Link
	err := db.Preload("Product").Preload("Offer").
		Where("campaign_id = ?", campaignID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
