package businessflow

import (
	"context"
	"log"

	"github.com/prasit9/affilink/repository"
)

// RedirectFlow resolves a short code to its frozen target URL and records
// the click as a side effect. Public flow, no authentication required.
//
// The click row is written before the redirect is issued, but a failure to
// write it is logged and the visitor is still redirected: the redirect is
// the user-visible operation and must not be held hostage by bookkeeping.
type RedirectFlow interface {
	Visit(ctx context.Context, shortCode string, meta *ClickMetadata) (string, error)
}

type RedirectFlowImpl struct {
	linkRepo  repository.LinkRepository
	clickFlow ClickFlow
}

func NewRedirectFlow(linkRepo repository.LinkRepository, clickFlow ClickFlow) RedirectFlow {
	return &RedirectFlowImpl{linkRepo: linkRepo, clickFlow: clickFlow}
}

func (f *RedirectFlowImpl) Visit(ctx context.Context, shortCode string, meta *ClickMetadata) (string, error) {
	link, err := f.linkRepo.ByShortCode(ctx, shortCode)
	if err != nil {
		return "", NewBusinessError("LINK_LOOKUP_FAILED", "Failed to lookup link", err)
	}
	if link == nil {
		return "", ErrLinkNotFound
	}

	if _, err := f.clickFlow.TrackClick(ctx, link.ID, meta); err != nil {
		log.Printf("click tracking failed for %s: %v", shortCode, err)
	}

	return link.TargetURL, nil
}
