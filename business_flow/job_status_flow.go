package businessflow

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/prasit9/affilink/cache"
	"github.com/prasit9/affilink/models"
	"github.com/prasit9/affilink/utils"
)

// JobStatusFlow reads and writes the price-refresh run snapshot kept in the
// fast store. The snapshot has no TTL and is overwritten whole on each run;
// when nothing has run yet a zero value is served.
type JobStatusFlow interface {
	Get(ctx context.Context) (*models.RefreshJobStatus, error)
	Record(ctx context.Context, status *models.RefreshJobStatus) error
}

type JobStatusFlowImpl struct {
	store cache.Store
}

func NewJobStatusFlow(store cache.Store) JobStatusFlow {
	return &JobStatusFlowImpl{store: store}
}

func (f *JobStatusFlowImpl) Get(ctx context.Context) (*models.RefreshJobStatus, error) {
	raw, err := f.store.Get(ctx, utils.RefreshJobStatusKey)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			log.Printf("job status read failed: %v", err)
		}
		return &models.RefreshJobStatus{}, nil
	}

	var status models.RefreshJobStatus
	if err := json.Unmarshal([]byte(raw), &status); err != nil {
		log.Printf("job status entry undecodable: %v", err)
		return &models.RefreshJobStatus{}, nil
	}
	return &status, nil
}

func (f *JobStatusFlowImpl) Record(ctx context.Context, status *models.RefreshJobStatus) error {
	bs, err := json.Marshal(status)
	if err != nil {
		return NewBusinessError("JOB_STATUS_ENCODE_FAILED", "Failed to encode job status", err)
	}
	if err := f.store.Set(ctx, utils.RefreshJobStatusKey, string(bs)); err != nil {
		return NewBusinessError("JOB_STATUS_WRITE_FAILED", "Failed to store job status", err)
	}
	return nil
}
