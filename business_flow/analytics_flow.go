package businessflow

import (
	"context"
	"fmt"
	"time"

	"github.com/prasit9/affilink/app/dto"
	"github.com/prasit9/affilink/cache"
	"github.com/prasit9/affilink/models"
	"github.com/prasit9/affilink/repository"
	"github.com/prasit9/affilink/utils"
)

// AnalyticsFlow computes the dashboard aggregates from durable click rows.
// Every operation is cache-aside with a 5 minute TTL: answers may be up to
// that much stale, and a broken fast store degrades to direct computation.
type AnalyticsFlow interface {
	GetOverview(ctx context.Context, filters dto.OverviewFilters) (*dto.OverviewResponse, error)
	GetTopProducts(ctx context.Context, limit int) ([]dto.TopProductEntry, error)
	GetCampaignStats(ctx context.Context, campaignID uint) (*dto.CampaignStatsResponse, error)
}

type AnalyticsFlowImpl struct {
	clickRepo    repository.ClickRepository
	campaignRepo repository.CampaignRepository
	store        cache.Store
}

func NewAnalyticsFlow(
	clickRepo repository.ClickRepository,
	campaignRepo repository.CampaignRepository,
	store cache.Store,
) AnalyticsFlow {
	return &AnalyticsFlowImpl{
		clickRepo:    clickRepo,
		campaignRepo: campaignRepo,
		store:        store,
	}
}

// windowLowerBound translates a date-range tag into an optional lower time
// bound. "all" means no timestamp filter whatsoever, which is distinct from
// a zero bound.
func windowLowerBound(dateRange string) (*time.Time, error) {
	switch dateRange {
	case utils.DateRangeLast7Days:
		return utils.ToPtr(utils.UTCNowAdd(-7 * 24 * time.Hour)), nil
	case utils.DateRangeLast30Days:
		return utils.ToPtr(utils.UTCNowAdd(-30 * 24 * time.Hour)), nil
	case utils.DateRangeAll, "":
		return nil, nil
	default:
		return nil, NewBusinessError("INVALID_DATE_RANGE", fmt.Sprintf("Unknown date range %q", dateRange), ErrInvalidDateRange)
	}
}

func overviewCacheKey(filters dto.OverviewFilters) string {
	campaignPart := "all"
	if filters.CampaignID != nil {
		campaignPart = fmt.Sprintf("%d", *filters.CampaignID)
	}
	rangePart := filters.DateRange
	if rangePart == "" {
		rangePart = utils.DateRangeAll
	}
	return fmt.Sprintf("%s:%s:%s", utils.OverviewCacheKeyPrefix, campaignPart, rangePart)
}

func (f *AnalyticsFlowImpl) GetOverview(ctx context.Context, filters dto.OverviewFilters) (*dto.OverviewResponse, error) {
	since, err := windowLowerBound(filters.DateRange)
	if err != nil {
		return nil, err
	}

	return cache.GetOrCompute(ctx, f.store, overviewCacheKey(filters), utils.AnalyticsCacheTTL,
		func(ctx context.Context) (*dto.OverviewResponse, error) {
			return f.computeOverview(ctx, filters.CampaignID, since)
		})
}

func (f *AnalyticsFlowImpl) computeOverview(ctx context.Context, campaignID *uint, since *time.Time) (*dto.OverviewResponse, error) {
	total, err := f.clickRepo.CountWindow(ctx, campaignID, since)
	if err != nil {
		return nil, NewBusinessError("OVERVIEW_COUNT_FAILED", "Failed to count clicks", err)
	}

	byMarketplace, err := f.clickRepo.CountByMarketplace(ctx, campaignID, since)
	if err != nil {
		return nil, NewBusinessError("OVERVIEW_MARKETPLACE_FAILED", "Failed to break down clicks by marketplace", err)
	}

	top, err := f.clickRepo.TopCampaigns(ctx, campaignID, since, utils.OverviewTopCampaigns)
	if err != nil {
		return nil, NewBusinessError("OVERVIEW_TOP_CAMPAIGNS_FAILED", "Failed to rank campaigns", err)
	}

	resp := &dto.OverviewResponse{
		TotalClicks:         total,
		ClicksByMarketplace: make(map[string]int64, len(byMarketplace)),
		TopCampaigns:        make([]dto.CampaignRank, 0, len(top)),
	}
	for _, row := range byMarketplace {
		resp.ClicksByMarketplace[row.Marketplace] = row.Clicks
	}
	for _, row := range top {
		resp.TopCampaigns = append(resp.TopCampaigns, dto.CampaignRank{
			ID:     row.CampaignID,
			Name:   row.Name,
			Slug:   row.Slug,
			Clicks: row.Clicks,
		})
	}
	return resp, nil
}

// ClampTopProductsLimit normalizes the requested ranking size to the
// UI-enforced 1..50 bound, defaulting to 10.
func ClampTopProductsLimit(limit int) int {
	if limit <= 0 {
		return utils.TopProductsDefaultLimit
	}
	if limit < utils.TopProductsMinLimit {
		return utils.TopProductsMinLimit
	}
	if limit > utils.TopProductsMaxLimit {
		return utils.TopProductsMaxLimit
	}
	return limit
}

func (f *AnalyticsFlowImpl) GetTopProducts(ctx context.Context, limit int) ([]dto.TopProductEntry, error) {
	limit = ClampTopProductsLimit(limit)
	key := fmt.Sprintf("%s:%d", utils.TopProductsCacheKeyPrefix, limit)

	return cache.GetOrCompute(ctx, f.store, key, utils.AnalyticsCacheTTL,
		func(ctx context.Context) ([]dto.TopProductEntry, error) {
			rows, err := f.clickRepo.TopProducts(ctx, limit)
			if err != nil {
				return nil, NewBusinessError("TOP_PRODUCTS_FAILED", "Failed to rank products", err)
			}
			entries := make([]dto.TopProductEntry, 0, len(rows))
			for _, row := range rows {
				entries = append(entries, dto.TopProductEntry{
					Product: dto.ProductSummary{
						ID:       row.ProductID,
						Title:    row.Title,
						ImageURL: row.ImageURL,
					},
					Clicks: row.Clicks,
				})
			}
			return entries, nil
		})
}

func (f *AnalyticsFlowImpl) GetCampaignStats(ctx context.Context, campaignID uint) (*dto.CampaignStatsResponse, error) {
	key := fmt.Sprintf("%s:%d", utils.CampaignStatsCacheKeyPrefix, campaignID)

	return cache.GetOrCompute(ctx, f.store, key, utils.AnalyticsCacheTTL,
		func(ctx context.Context) (*dto.CampaignStatsResponse, error) {
			return f.computeCampaignStats(ctx, campaignID)
		})
}

func (f *AnalyticsFlowImpl) computeCampaignStats(ctx context.Context, campaignID uint) (*dto.CampaignStatsResponse, error) {
	campaign, err := f.campaignRepo.ByID(ctx, campaignID)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_LOOKUP_FAILED", "Failed to lookup campaign", err)
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}

	total, err := f.clickRepo.CountWindow(ctx, &campaignID, nil)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_COUNT_FAILED", "Failed to count campaign clicks", err)
	}

	breakdown, err := f.clickRepo.ProductBreakdown(ctx, campaignID)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_BREAKDOWN_FAILED", "Failed to break down clicks by product", err)
	}

	trendStart := utils.StartOfDayUTC(utils.UTCNow()).AddDate(0, 0, -(utils.TrendDays - 1))
	daily, err := f.clickRepo.DailyCounts(ctx, campaignID, trendStart)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_TREND_FAILED", "Failed to compute daily trend", err)
	}

	resp := &dto.CampaignStatsResponse{
		Campaign: dto.CampaignSummary{
			ID:     campaign.ID,
			UUID:   campaign.UUID.String(),
			Name:   campaign.Name,
			Slug:   campaign.Slug,
			Status: campaign.Status,
		},
		TotalClicks:     total,
		ClicksByProduct: make([]dto.ProductClicksEntry, 0, len(breakdown)),
		DailyTrend:      DenseDailyTrend(daily, trendStart, utils.TrendDays),
	}
	for _, row := range breakdown {
		resp.ClicksByProduct = append(resp.ClicksByProduct, dto.ProductClicksEntry{
			Product: dto.ProductSummary{
				ID:       row.ProductID,
				Title:    row.Title,
				ImageURL: row.ImageURL,
			},
			Clicks: row.Clicks,
		})
	}
	return resp, nil
}

// DenseDailyTrend expands sparse per-day rows into a dense series of exactly
// `days` calendar days starting at `start`, zero-filling days without clicks.
func DenseDailyTrend(rows []*models.DailyClicks, start time.Time, days int) []dto.DailyTrendPoint {
	byDay := make(map[string]int64, len(rows))
	for _, row := range rows {
		byDay[utils.StartOfDayUTC(row.Day).Format("2006-01-02")] = row.Clicks
	}

	trend := make([]dto.DailyTrendPoint, 0, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i).Format("2006-01-02")
		trend = append(trend, dto.DailyTrendPoint{Date: day, Clicks: byDay[day]})
	}
	return trend
}
