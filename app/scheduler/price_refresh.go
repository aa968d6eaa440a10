// Package scheduler
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/prasit9/affilink/app/services"
	businessflow "github.com/prasit9/affilink/business_flow"
	"github.com/prasit9/affilink/models"
	"github.com/prasit9/affilink/repository"
	"github.com/prasit9/affilink/utils"
)

// PriceRefresher periodically re-fetches the price of every active offer from
// its marketplace and records the run outcome for the dashboard.
type PriceRefresher struct {
	offerRepo repository.OfferRepository
	registry  *services.MarketplaceRegistry
	jobStatus businessflow.JobStatusFlow
	logger    *log.Logger
	interval  time.Duration
}

func NewPriceRefresher(
	offerRepo repository.OfferRepository,
	registry *services.MarketplaceRegistry,
	jobStatus businessflow.JobStatusFlow,
	logger *log.Logger,
	interval time.Duration,
) *PriceRefresher {
	if interval <= 0 {
		interval = time.Hour
	}
	if logger == nil {
		logger = log.Default()
	}

	return &PriceRefresher{
		offerRepo: offerRepo,
		registry:  registry,
		jobStatus: jobStatus,
		logger:    logger,
		interval:  interval,
	}
}

// Start launches the refresh loop. The returned cancel function stops it.
func (s *PriceRefresher) Start(parent context.Context) func() {
	ctx, cancel := context.WithCancel(parent)

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.runOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.runOnce(ctx)
			}
		}
	}()

	return cancel
}

func (s *PriceRefresher) runOnce(ctx context.Context) {
	started := utils.UTCNow()

	offers, err := s.offerRepo.ListActive(ctx)
	if err != nil {
		s.logger.Printf("refresher: list active offers failed: %v", err)
		return
	}

	status := &models.RefreshJobStatus{LastRunAt: &started}
	for _, offer := range offers {
		if ctx.Err() != nil {
			return
		}
		status.Processed++

		if err := s.refreshOffer(ctx, offer); err != nil {
			status.Errors++
			s.logger.Printf("refresher: offer id=%d (%s) refresh failed: %v", offer.ID, offer.Marketplace, err)
			continue
		}
		status.Updated++
	}
	status.DurationMillis = time.Since(started).Milliseconds()

	if err := s.jobStatus.Record(ctx, status); err != nil {
		s.logger.Printf("refresher: record job status failed: %v", err)
	}
	s.logger.Printf("refresher: run finished processed=%d updated=%d errors=%d duration=%dms",
		status.Processed, status.Updated, status.Errors, status.DurationMillis)
}

func (s *PriceRefresher) refreshOffer(ctx context.Context, offer *models.Offer) error {
	client, ok := s.registry.For(offer.Marketplace)
	if !ok {
		return businessflow.NewBusinessError("UNSUPPORTED_MARKETPLACE", "No client registered for marketplace", nil)
	}

	quote, err := client.FetchPrice(ctx, offer)
	if err != nil {
		return err
	}

	offer.Price = quote.Price
	offer.IsActive = quote.Available
	offer.LastCheckedAt = utils.UTCNowPtr()
	return s.offerRepo.Update(ctx, offer)
}
