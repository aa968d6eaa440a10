package testing

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/prasit9/affilink/models"
	"github.com/prasit9/affilink/utils"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

const fixtureCodeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// randomCode generates a random short code sized for the links table
func randomCode() string {
	b := make([]byte, 8)
	for i := range b {
		b[i] = fixtureCodeAlphabet[rand.Intn(len(fixtureCodeAlphabet))]
	}
	return string(b)
}

// CreateTestProduct creates a product with a unique title
func (tf *TestFixtures) CreateTestProduct() (*models.Product, error) {
	product := &models.Product{
		Title:    fmt.Sprintf("Test Product %d", rand.Intn(1000000)),
		ImageURL: "https://cdn.example.com/img/test.jpg",
	}

	if err := tf.DB.DB.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create test product: %w", err)
	}

	return product, nil
}

// CreateTestOffer creates an active marketplace offer for the given product
func (tf *TestFixtures) CreateTestOffer(productID uint, marketplace models.Marketplace) (*models.Offer, error) {
	offer := &models.Offer{
		ProductID:   productID,
		Marketplace: marketplace,
		StoreName:   "Test Store",
		Price:       199.00,
		URL:         fmt.Sprintf("https://%s.example.com/item/%d", marketplace, rand.Intn(1000000)),
		IsActive:    true,
	}

	if err := tf.DB.DB.Create(offer).Error; err != nil {
		return nil, fmt.Errorf("failed to create test offer: %w", err)
	}

	return offer, nil
}

// CreateTestCampaign creates an active campaign with a unique slug.
// Pass a non-nil endAt to create a campaign that has already ended.
func (tf *TestFixtures) CreateTestCampaign(endAt *time.Time) (*models.Campaign, error) {
	slug := fmt.Sprintf("test-campaign-%d", rand.Intn(1000000))

	campaign := &models.Campaign{
		UUID:        uuid.New(),
		Name:        "Test Campaign",
		Slug:        slug,
		Status:      models.CampaignStatusActive,
		UTMCampaign: slug,
		UTMSource:   "affilink",
		UTMMedium:   "social",
		StartAt:     utils.ToPtr(utils.UTCNowAdd(-24 * time.Hour)),
		EndAt:       endAt,
	}

	if err := tf.DB.DB.Create(campaign).Error; err != nil {
		return nil, fmt.Errorf("failed to create test campaign: %w", err)
	}

	return campaign, nil
}

// CreateTestLink mints a link joining the given product, campaign and offer
func (tf *TestFixtures) CreateTestLink(productID, campaignID, offerID uint, targetURL string) (*models.Link, error) {
	link := &models.Link{
		UUID:       uuid.New(),
		ShortCode:  randomCode(),
		ProductID:  productID,
		CampaignID: campaignID,
		OfferID:    offerID,
		TargetURL:  targetURL,
	}

	if err := tf.DB.DB.Create(link).Error; err != nil {
		return nil, fmt.Errorf("failed to create test link: %w", err)
	}

	return link, nil
}

// CreateTestClick records a click against the given link.
// A nil createdAt leaves the timestamp to the database default.
func (tf *TestFixtures) CreateTestClick(linkID uint, createdAt *time.Time) (*models.Click, error) {
	click := &models.Click{
		LinkID:    linkID,
		IPAddress: utils.ToPtr("203.0.113.10"),
		Referrer:  utils.ToPtr("https://social.example.com/post/1"),
		UserAgent: utils.ToPtr("Mozilla/5.0 (test)"),
	}
	if createdAt != nil {
		click.CreatedAt = *createdAt
	}

	if err := tf.DB.DB.Create(click).Error; err != nil {
		return nil, fmt.Errorf("failed to create test click: %w", err)
	}

	return click, nil
}
