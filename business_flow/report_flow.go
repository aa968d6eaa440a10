package businessflow

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/prasit9/affilink/repository"
)

// ReportFlow provides downloadable exports for operators
type ReportFlow interface {
	CampaignLinksExcel(ctx context.Context, campaignID uint) (filename string, content []byte, err error)
}

type ReportFlowImpl struct {
	campaignRepo repository.CampaignRepository
	linkRepo     repository.LinkRepository
	clickRepo    repository.ClickRepository
}

func NewReportFlow(campaignRepo repository.CampaignRepository, linkRepo repository.LinkRepository, clickRepo repository.ClickRepository) ReportFlow {
	return &ReportFlowImpl{
		campaignRepo: campaignRepo,
		linkRepo:     linkRepo,
		clickRepo:    clickRepo,
	}
}

// CampaignLinksExcel builds a one-sheet workbook listing every link in the
// campaign together with its durable click count.
func (f *ReportFlowImpl) CampaignLinksExcel(ctx context.Context, campaignID uint) (string, []byte, error) {
	campaign, err := f.campaignRepo.ByID(ctx, campaignID)
	if err != nil {
		return "", nil, NewBusinessError("CAMPAIGN_LOOKUP_FAILED", "Failed to lookup campaign", err)
	}
	if campaign == nil {
		return "", nil, NewBusinessError("CAMPAIGN_NOT_FOUND", "Campaign not found", ErrCampaignNotFound)
	}

	links, err := f.linkRepo.ListByCampaign(ctx, campaign.ID)
	if err != nil {
		return "", nil, NewBusinessError("FETCH_LINKS_FAILED", "Failed to fetch campaign links", err)
	}

	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	sheet := sanitizeSheetName(campaign.Slug)
	xl.SetSheetName(xl.GetSheetName(0), sheet)

	header := []string{"id", "short_code", "product", "marketplace", "store", "target_url", "clicks", "created_at"}
	_ = xl.SetSheetRow(sheet, "A1", &header)

	for ri, link := range links {
		clicks, err := f.clickRepo.CountByLink(ctx, link.ID)
		if err != nil {
			return "", nil, NewBusinessError("FETCH_CLICKS_FAILED", "Failed to count clicks", err)
		}

		productTitle := ""
		if link.Product != nil {
			productTitle = link.Product.Title
		}
		marketplace := ""
		storeName := ""
		if link.Offer != nil {
			marketplace = link.Offer.Marketplace.String()
			storeName = link.Offer.StoreName
		}

		record := []string{
			strconv.FormatUint(uint64(link.ID), 10),
			link.ShortCode,
			productTitle,
			marketplace,
			storeName,
			link.TargetURL,
			strconv.FormatInt(clicks, 10),
			link.CreatedAt.UTC().Format(time.RFC3339),
		}
		cellRef, _ := excelize.CoordinatesToCellName(1, ri+2)
		_ = xl.SetSheetRow(sheet, cellRef, &record)
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return "", nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
	}

	filename := fmt.Sprintf("campaign_%s_links.xlsx", campaign.Slug)
	return filename, buf.Bytes(), nil
}

func sanitizeSheetName(name string) string {
	// Excel sheet names cannot contain: : \\ / ? * [ ] and must be <= 31 chars
	replacer := strings.NewReplacer(":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_")
	safe := strings.TrimSpace(replacer.Replace(name))
	if safe == "" {
		safe = "campaign"
	}
	if len(safe) > 31 {
		safe = safe[:31]
	}
	return safe
}
