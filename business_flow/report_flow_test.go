package businessflow

import (
	"bytes"
	"context"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prasit9/affilink/models"
)

func (r *stubLinkRepo) ListByCampaign(_ context.Context, campaignID uint) ([]*models.Link, error) {
	var links []*models.Link
	for _, link := range r.byShortCode {
		if link.CampaignID == campaignID {
			links = append(links, link)
		}
	}
	return links, nil
}

func TestReportFlowCampaignLinksExcel(t *testing.T) {
	ctx := context.Background()

	campaign := &models.Campaign{ID: 1, Name: "Summer Sale", Slug: "summer-sale"}
	link := &models.Link{
		ID:         12,
		ShortCode:  "aB3dE9xZ",
		CampaignID: 1,
		TargetURL:  "https://shopee.example.com/item/42?utm_campaign=summer-sale",
		Product:    &models.Product{Title: "Sneakers"},
		Offer:      &models.Offer{Marketplace: models.MarketplaceShopee, StoreName: "Kicks Store"},
	}

	campaignRepo := &stubCampaignRepo{campaigns: map[uint]*models.Campaign{1: campaign}}
	linkRepo := &stubLinkRepo{byShortCode: map[string]*models.Link{link.ShortCode: link}}
	clickRepo := &stubClickRepo{durableCount: 57}

	flow := NewReportFlow(campaignRepo, linkRepo, clickRepo)

	t.Run("BuildsWorkbook", func(t *testing.T) {
		filename, content, err := flow.CampaignLinksExcel(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "campaign_summer-sale_links.xlsx", filename)
		require.NotEmpty(t, content)

		xl, err := excelize.OpenReader(bytes.NewReader(content))
		require.NoError(t, err)
		defer func() { _ = xl.Close() }()

		assert.Equal(t, "summer-sale", xl.GetSheetName(0))

		rows, err := xl.GetRows("summer-sale")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "short_code", rows[0][1])
		assert.Equal(t, "aB3dE9xZ", rows[1][1])
		assert.Equal(t, "Sneakers", rows[1][2])
		assert.Equal(t, "shopee", rows[1][3])
		assert.Equal(t, "Kicks Store", rows[1][4])
		assert.Equal(t, "57", rows[1][6])
	})

	t.Run("CampaignNotFound", func(t *testing.T) {
		_, _, err := flow.CampaignLinksExcel(ctx, 99)
		require.Error(t, err)
		assert.True(t, IsCampaignNotFound(err))
	})

	t.Run("EmptyCampaignStillExports", func(t *testing.T) {
		empty := &stubCampaignRepo{campaigns: map[uint]*models.Campaign{2: {ID: 2, Slug: "quiet"}}}
		flow := NewReportFlow(empty, &stubLinkRepo{byShortCode: map[string]*models.Link{}}, clickRepo)

		_, content, err := flow.CampaignLinksExcel(ctx, 2)
		require.NoError(t, err)
		assert.NotEmpty(t, content)
	})
}

func TestSanitizeSheetName(t *testing.T) {
	assert.Equal(t, "summer-sale", sanitizeSheetName("summer-sale"))
	assert.Equal(t, "a_b_c", sanitizeSheetName("a:b/c"))
	assert.Equal(t, "campaign", sanitizeSheetName("  "))
	assert.Len(t, sanitizeSheetName("this-slug-is-far-too-long-to-fit-in-a-sheet-name"), 31)
}
