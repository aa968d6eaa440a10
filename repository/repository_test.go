package repository_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prasit9/affilink/models"
	"github.com/prasit9/affilink/repository"
	testingutil "github.com/prasit9/affilink/testing"
	"github.com/prasit9/affilink/utils"
)

// setupSuite provisions a throwaway database, skipping when no PostgreSQL
// server is reachable.
func setupSuite(t *testing.T) (*testingutil.TestDB, *testingutil.TestFixtures) {
	t.Helper()

	testDB, err := testingutil.SetupTestDB()
	if err != nil {
		t.Skipf("postgres unavailable: %v", err)
	}
	t.Cleanup(func() {
		if err := testDB.TeardownTestDB(); err != nil {
			t.Logf("teardown failed: %v", err)
		}
	})

	return testDB, testingutil.NewTestFixtures(testDB)
}

func TestLinkRepository(t *testing.T) {
	testDB, fixtures := setupSuite(t)
	ctx := testingutil.CreateTestContext()
	repo := repository.NewLinkRepository(testDB.DB)

	product, err := fixtures.CreateTestProduct()
	require.NoError(t, err)
	offer, err := fixtures.CreateTestOffer(product.ID, models.MarketplaceShopee)
	require.NoError(t, err)
	campaign, err := fixtures.CreateTestCampaign(nil)
	require.NoError(t, err)

	t.Run("SaveAndByShortCode", func(t *testing.T) {
		link := &models.Link{
			UUID:       uuid.New(),
			ShortCode:  "aB3dE9xZ",
			ProductID:  product.ID,
			CampaignID: campaign.ID,
			OfferID:    offer.ID,
			TargetURL:  offer.URL + "?utm_campaign=" + campaign.UTMCampaign,
		}
		require.NoError(t, repo.Save(ctx, link))
		assert.NotZero(t, link.ID)

		found, err := repo.ByShortCode(ctx, "aB3dE9xZ")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, link.TargetURL, found.TargetURL)
	})

	t.Run("ByShortCodeMissing", func(t *testing.T) {
		found, err := repo.ByShortCode(ctx, "zzzzzzzz")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("ShortCodeExists", func(t *testing.T) {
		exists, err := repo.ShortCodeExists(ctx, "aB3dE9xZ")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ShortCodeExists(ctx, "zzzzzzzz")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("DuplicateShortCodeRejected", func(t *testing.T) {
		dup := &models.Link{
			UUID:       uuid.New(),
			ShortCode:  "aB3dE9xZ",
			ProductID:  product.ID,
			CampaignID: campaign.ID,
			OfferID:    offer.ID,
			TargetURL:  offer.URL,
		}
		err := repo.Save(ctx, dup)
		require.Error(t, err)
		assert.ErrorIs(t, err, repository.ErrDuplicate)
	})

	t.Run("ListByCampaign", func(t *testing.T) {
		links, err := repo.ListByCampaign(ctx, campaign.ID)
		require.NoError(t, err)
		assert.Len(t, links, 1)

		links, err = repo.ListByCampaign(ctx, campaign.ID+1000)
		require.NoError(t, err)
		assert.Empty(t, links)
	})
}

func TestClickRepositoryAggregates(t *testing.T) {
	testDB, fixtures := setupSuite(t)
	ctx := testingutil.CreateTestContext()
	clickRepo := repository.NewClickRepository(testDB.DB)

	product, err := fixtures.CreateTestProduct()
	require.NoError(t, err)
	otherProduct, err := fixtures.CreateTestProduct()
	require.NoError(t, err)

	shopeeOffer, err := fixtures.CreateTestOffer(product.ID, models.MarketplaceShopee)
	require.NoError(t, err)
	lazadaOffer, err := fixtures.CreateTestOffer(otherProduct.ID, models.MarketplaceLazada)
	require.NoError(t, err)

	campaign, err := fixtures.CreateTestCampaign(nil)
	require.NoError(t, err)
	otherCampaign, err := fixtures.CreateTestCampaign(nil)
	require.NoError(t, err)

	shopeeLink, err := fixtures.CreateTestLink(product.ID, campaign.ID, shopeeOffer.ID, shopeeOffer.URL)
	require.NoError(t, err)
	lazadaLink, err := fixtures.CreateTestLink(otherProduct.ID, otherCampaign.ID, lazadaOffer.ID, lazadaOffer.URL)
	require.NoError(t, err)

	// Three clicks on the shopee link, one of them old; one on the lazada link
	for i := 0; i < 2; i++ {
		_, err = fixtures.CreateTestClick(shopeeLink.ID, nil)
		require.NoError(t, err)
	}
	old := utils.UTCNowAdd(-40 * 24 * time.Hour)
	_, err = fixtures.CreateTestClick(shopeeLink.ID, &old)
	require.NoError(t, err)
	_, err = fixtures.CreateTestClick(lazadaLink.ID, nil)
	require.NoError(t, err)

	t.Run("CountByLink", func(t *testing.T) {
		count, err := clickRepo.CountByLink(ctx, shopeeLink.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("CountWindowUnfiltered", func(t *testing.T) {
		count, err := clickRepo.CountWindow(ctx, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(4), count)
	})

	t.Run("CountWindowByCampaign", func(t *testing.T) {
		count, err := clickRepo.CountWindow(ctx, &campaign.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("CountWindowSinceExcludesOld", func(t *testing.T) {
		since := utils.UTCNowAdd(-30 * 24 * time.Hour)
		count, err := clickRepo.CountWindow(ctx, &campaign.ID, &since)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("CountByMarketplace", func(t *testing.T) {
		rows, err := clickRepo.CountByMarketplace(ctx, nil, nil)
		require.NoError(t, err)

		byMarketplace := map[string]int64{}
		for _, row := range rows {
			byMarketplace[row.Marketplace] = row.Clicks
		}
		assert.Equal(t, int64(3), byMarketplace["shopee"])
		assert.Equal(t, int64(1), byMarketplace["lazada"])
	})

	t.Run("TopCampaigns", func(t *testing.T) {
		rows, err := clickRepo.TopCampaigns(ctx, nil, nil, 5)
		require.NoError(t, err)
		require.NotEmpty(t, rows)
		assert.Equal(t, campaign.ID, rows[0].CampaignID)
		assert.Equal(t, int64(3), rows[0].Clicks)
	})

	t.Run("TopProducts", func(t *testing.T) {
		rows, err := clickRepo.TopProducts(ctx, 10)
		require.NoError(t, err)
		require.NotEmpty(t, rows)
		assert.Equal(t, product.ID, rows[0].ProductID)
		assert.Equal(t, int64(3), rows[0].Clicks)
	})

	t.Run("TopProductsHonorsLimit", func(t *testing.T) {
		rows, err := clickRepo.TopProducts(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("ProductBreakdown", func(t *testing.T) {
		rows, err := clickRepo.ProductBreakdown(ctx, campaign.ID)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, product.ID, rows[0].ProductID)
		assert.Equal(t, int64(3), rows[0].Clicks)
	})

	t.Run("DailyCounts", func(t *testing.T) {
		from := utils.StartOfDayUTC(utils.UTCNow()).AddDate(0, 0, -6)
		rows, err := clickRepo.DailyCounts(ctx, campaign.ID, from)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, int64(2), rows[0].Clicks)
	})
}

func TestOfferRepository(t *testing.T) {
	testDB, fixtures := setupSuite(t)
	ctx := testingutil.CreateTestContext()
	repo := repository.NewOfferRepository(testDB.DB)

	product, err := fixtures.CreateTestProduct()
	require.NoError(t, err)
	active, err := fixtures.CreateTestOffer(product.ID, models.MarketplaceShopee)
	require.NoError(t, err)

	inactive, err := fixtures.CreateTestOffer(product.ID, models.MarketplaceLazada)
	require.NoError(t, err)
	inactive.IsActive = false
	require.NoError(t, repo.Update(ctx, inactive))

	t.Run("ListActive", func(t *testing.T) {
		offers, err := repo.ListActive(ctx)
		require.NoError(t, err)
		require.Len(t, offers, 1)
		assert.Equal(t, active.ID, offers[0].ID)
	})

	t.Run("HasDuplicateInProduct", func(t *testing.T) {
		twin, err := fixtures.CreateTestOffer(product.ID, models.MarketplaceShopee)
		require.NoError(t, err)
		twin.URL = active.URL
		require.NoError(t, repo.Update(ctx, twin))

		dup, err := repo.HasDuplicateInProduct(ctx, product.ID, active.Marketplace, active.URL, active.ID)
		require.NoError(t, err)
		assert.True(t, dup)

		dup, err = repo.HasDuplicateInProduct(ctx, product.ID, models.MarketplaceLazada, "https://unique.example.com", 0)
		require.NoError(t, err)
		assert.False(t, dup)
	})
}

func TestCampaignRepository(t *testing.T) {
	testDB, fixtures := setupSuite(t)
	ctx := testingutil.CreateTestContext()
	repo := repository.NewCampaignRepository(testDB.DB)

	campaign, err := fixtures.CreateTestCampaign(nil)
	require.NoError(t, err)

	t.Run("BySlug", func(t *testing.T) {
		found, err := repo.BySlug(ctx, campaign.Slug)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, campaign.ID, found.ID)

		found, err = repo.BySlug(ctx, "missing-slug")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("ByUUID", func(t *testing.T) {
		found, err := repo.ByUUID(ctx, campaign.UUID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, campaign.ID, found.ID)

		found, err = repo.ByUUID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("ByIDMissingReturnsNil", func(t *testing.T) {
		found, err := repo.ByID(ctx, campaign.ID+5000)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}
