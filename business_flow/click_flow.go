package businessflow

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/prasit9/affilink/cache"
	"github.com/prasit9/affilink/models"
	"github.com/prasit9/affilink/repository"
	"github.com/prasit9/affilink/utils"
)

// ClickFlow records click events and answers per-link click counts.
//
// TrackClick always persists the durable click row; the fast-store counter
// increment is a best-effort accelerator and its failure never fails the
// call. GetClickCount prefers the counter and self-heals it from the durable
// count on any doubt.
type ClickFlow interface {
	TrackClick(ctx context.Context, linkID uint, meta *ClickMetadata) (*models.Click, error)
	GetClickCount(ctx context.Context, linkID uint) (int64, error)
}

type ClickFlowImpl struct {
	clickRepo repository.ClickRepository
	store     cache.Store
}

func NewClickFlow(clickRepo repository.ClickRepository, store cache.Store) ClickFlow {
	return &ClickFlowImpl{clickRepo: clickRepo, store: store}
}

func clickCountKey(linkID uint) string {
	return fmt.Sprintf("%s:%d", utils.ClickCountKeyPrefix, linkID)
}

func (f *ClickFlowImpl) TrackClick(ctx context.Context, linkID uint, meta *ClickMetadata) (*models.Click, error) {
	if meta == nil {
		meta = &ClickMetadata{}
	}

	click := &models.Click{
		LinkID:    linkID,
		IPAddress: utils.EmptyToNil(meta.IPAddress),
		Referrer:  utils.EmptyToNil(meta.Referrer),
		UserAgent: utils.EmptyToNil(meta.UserAgent),
	}
	if err := f.clickRepo.Save(ctx, click); err != nil {
		return nil, NewBusinessError("CLICK_PERSIST_FAILED", "Failed to record click", err)
	}

	// The increment is awaited so its error is observed here, but it is
	// never allowed to fail the call: the durable row above is the source
	// of truth and the counter self-heals on the next read.
	if _, err := f.store.Incr(ctx, clickCountKey(linkID)); err != nil {
		log.Printf("click counter increment failed for link %d: %v", linkID, err)
	}

	return click, nil
}

func (f *ClickFlowImpl) GetClickCount(ctx context.Context, linkID uint) (int64, error) {
	key := clickCountKey(linkID)

	if raw, err := f.store.Get(ctx, key); err == nil {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n, nil
		}
		log.Printf("click counter for link %d holds %q, recounting", linkID, raw)
	} else if !errors.Is(err, cache.ErrMiss) {
		log.Printf("click counter read failed for link %d: %v", linkID, err)
	}

	count, err := f.clickRepo.CountByLink(ctx, linkID)
	if err != nil {
		return 0, NewBusinessError("CLICK_COUNT_FAILED", "Failed to count clicks", err)
	}

	if err := f.store.Set(ctx, key, strconv.FormatInt(count, 10)); err != nil {
		log.Printf("click counter repopulate failed for link %d: %v", linkID, err)
	}

	return count, nil
}
