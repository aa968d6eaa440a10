package businessflow

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/prasit9/affilink/app/dto"
	"github.com/prasit9/affilink/models"
	"github.com/prasit9/affilink/repository"
	"github.com/prasit9/affilink/utils"
)

// LinkFlow mints short links: it validates the referenced entities, builds
// the UTM-tagged target URL once, and allocates a collision-free short code.
// Links are immutable after minting; later campaign UTM edits never touch
// them, so shared historical links keep resolving identically.
type LinkFlow interface {
	CreateLink(ctx context.Context, req *dto.CreateLinkRequest) (*dto.CreateLinkResponse, error)
}

type LinkFlowImpl struct {
	linkRepo     repository.LinkRepository
	campaignRepo repository.CampaignRepository
	productRepo  repository.ProductRepository
	offerRepo    repository.OfferRepository
	baseURL      string
}

func NewLinkFlow(
	linkRepo repository.LinkRepository,
	campaignRepo repository.CampaignRepository,
	productRepo repository.ProductRepository,
	offerRepo repository.OfferRepository,
	baseURL string,
) LinkFlow {
	return &LinkFlowImpl{
		linkRepo:     linkRepo,
		campaignRepo: campaignRepo,
		productRepo:  productRepo,
		offerRepo:    offerRepo,
		baseURL:      strings.TrimRight(baseURL, "/"),
	}
}

// BuildTargetURL merges a campaign's UTM parameters onto an offer URL.
// utm_campaign is always written, overwriting any existing value. The other
// UTM parameters are written only when the campaign carries them; an unset
// campaign field leaves a same-named parameter on the offer URL untouched.
// All unrelated query parameters are preserved. Pure function.
func BuildTargetURL(offerURL string, campaign *models.Campaign) (string, error) {
	u, err := url.Parse(offerURL)
	if err != nil {
		return "", fmt.Errorf("invalid offer url %q: %w", offerURL, err)
	}

	q := u.Query()
	q.Set("utm_campaign", campaign.UTMCampaign)
	if campaign.UTMSource != "" {
		q.Set("utm_source", campaign.UTMSource)
	}
	if campaign.UTMMedium != "" {
		q.Set("utm_medium", campaign.UTMMedium)
	}
	if campaign.UTMContent != "" {
		q.Set("utm_content", campaign.UTMContent)
	}
	if campaign.UTMTerm != "" {
		q.Set("utm_term", campaign.UTMTerm)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// shortCodeByteCeiling is the largest multiple of the 62-symbol alphabet
// that fits in a byte. Bytes at or above it are redrawn so every symbol is
// equally likely.
const shortCodeByteCeiling = byte(256 / len(utils.ShortCodeAlphabet) * len(utils.ShortCodeAlphabet))

// appendCodeSymbols maps random bytes onto alphabet symbols, skipping bytes
// outside the unbiased range, until dst reaches ShortCodeLength.
func appendCodeSymbols(dst, buf []byte) []byte {
	for _, b := range buf {
		if b >= shortCodeByteCeiling {
			continue
		}
		dst = append(dst, utils.ShortCodeAlphabet[int(b)%len(utils.ShortCodeAlphabet)])
		if len(dst) == utils.ShortCodeLength {
			break
		}
	}
	return dst
}

// RandomShortCode draws ShortCodeLength symbols from the allocation alphabet
// using crypto/rand.
func RandomShortCode() (string, error) {
	code := make([]byte, 0, utils.ShortCodeLength)
	buf := make([]byte, 2*utils.ShortCodeLength)
	for len(code) < utils.ShortCodeLength {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		code = appendCodeSymbols(code, buf)
	}
	return string(code), nil
}

// generateUniqueShortCode allocates a short code not yet present in durable
// storage, retrying a bounded number of times. Exhausting the budget is
// astronomically unlikely with 8 symbols from a 62-symbol alphabet; the
// bound is a safety valve, not an expected path.
func (f *LinkFlowImpl) generateUniqueShortCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < utils.ShortCodeMaxAttempts; attempt++ {
		code, err := RandomShortCode()
		if err != nil {
			return "", NewBusinessError("SHORT_CODE_RANDOM_FAILED", "Failed to generate short code", err)
		}
		exists, err := f.linkRepo.ShortCodeExists(ctx, code)
		if err != nil {
			return "", NewBusinessError("SHORT_CODE_PROBE_FAILED", "Failed to check short code collision", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", ErrShortCodeExhausted
}

func (f *LinkFlowImpl) CreateLink(ctx context.Context, req *dto.CreateLinkRequest) (*dto.CreateLinkResponse, error) {
	campaign, err := f.campaignRepo.ByID(ctx, req.CampaignID)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_LOOKUP_FAILED", "Failed to lookup campaign", err)
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}

	product, err := f.productRepo.ByID(ctx, req.ProductID)
	if err != nil {
		return nil, NewBusinessError("PRODUCT_LOOKUP_FAILED", "Failed to lookup product", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	offer, err := f.offerRepo.ByID(ctx, req.OfferID)
	if err != nil {
		return nil, NewBusinessError("OFFER_LOOKUP_FAILED", "Failed to lookup offer", err)
	}
	if offer == nil {
		return nil, ErrOfferNotFound
	}
	if offer.ProductID != product.ID {
		return nil, ErrOfferProductMismatch
	}

	// New links cannot be minted for an ended campaign; already-minted
	// links keep resolving.
	if campaign.HasEnded(utils.UTCNow()) {
		return nil, ErrCampaignEnded
	}

	// Read-time duplicate-listing check: the offer set of a product is
	// expected to be unique per (marketplace, url), without a database
	// constraint backing it.
	dup, err := f.offerRepo.HasDuplicateInProduct(ctx, product.ID, offer.Marketplace, offer.URL, offer.ID)
	if err != nil {
		return nil, NewBusinessError("OFFER_DUPLICATE_PROBE_FAILED", "Failed to check offer duplicates", err)
	}
	if dup {
		return nil, ErrOfferDuplicateListing
	}

	shortCode, err := f.generateUniqueShortCode(ctx)
	if err != nil {
		return nil, err
	}

	targetURL, err := BuildTargetURL(offer.URL, campaign)
	if err != nil {
		return nil, NewBusinessError("TARGET_URL_BUILD_FAILED", "Failed to build target URL", err)
	}

	link := &models.Link{
		UUID:       uuid.New(),
		ShortCode:  shortCode,
		ProductID:  product.ID,
		CampaignID: campaign.ID,
		OfferID:    offer.ID,
		TargetURL:  targetURL,
	}
	if err := f.linkRepo.Save(ctx, link); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateLink
		}
		return nil, NewBusinessError("LINK_PERSIST_FAILED", "Failed to persist link", err)
	}

	return &dto.CreateLinkResponse{Link: f.toLinkDTO(link)}, nil
}

func (f *LinkFlowImpl) toLinkDTO(link *models.Link) dto.LinkDTO {
	return dto.LinkDTO{
		ID:         link.ID,
		UUID:       link.UUID.String(),
		ShortCode:  link.ShortCode,
		ShortURL:   fmt.Sprintf("%s/go/%s", f.baseURL, link.ShortCode),
		ProductID:  link.ProductID,
		CampaignID: link.CampaignID,
		OfferID:    link.OfferID,
		TargetURL:  link.TargetURL,
		CreatedAt:  link.CreatedAt,
	}
}
