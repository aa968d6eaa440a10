package businessflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prasit9/affilink/models"
	"github.com/prasit9/affilink/repository"
)

type stubLinkRepo struct {
	repository.LinkRepository

	byShortCode map[string]*models.Link
	lookupErr   error
}

func (r *stubLinkRepo) ByShortCode(_ context.Context, shortCode string) (*models.Link, error) {
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	return r.byShortCode[shortCode], nil
}

type stubTrackingFlow struct {
	tracked []uint
	err     error
}

func (f *stubTrackingFlow) TrackClick(_ context.Context, linkID uint, _ *ClickMetadata) (*models.Click, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tracked = append(f.tracked, linkID)
	return &models.Click{LinkID: linkID}, nil
}

func (f *stubTrackingFlow) GetClickCount(_ context.Context, _ uint) (int64, error) {
	return int64(len(f.tracked)), nil
}

func TestRedirectFlowVisit(t *testing.T) {
	ctx := context.Background()

	link := &models.Link{
		ID:        12,
		ShortCode: "aB3dE9xZ",
		TargetURL: "https://shopee.example.com/item/42?utm_campaign=summer-sale",
	}

	t.Run("ResolvesAndTracks", func(t *testing.T) {
		tracking := &stubTrackingFlow{}
		flow := NewRedirectFlow(&stubLinkRepo{byShortCode: map[string]*models.Link{link.ShortCode: link}}, tracking)

		target, err := flow.Visit(ctx, "aB3dE9xZ", NewClickMetadata("203.0.113.10", "", ""))
		require.NoError(t, err)
		assert.Equal(t, link.TargetURL, target)
		assert.Equal(t, []uint{12}, tracking.tracked)
	})

	t.Run("UnknownCode", func(t *testing.T) {
		flow := NewRedirectFlow(&stubLinkRepo{byShortCode: map[string]*models.Link{}}, &stubTrackingFlow{})

		_, err := flow.Visit(ctx, "missing1", nil)
		require.Error(t, err)
		assert.True(t, IsLinkNotFound(err))
	})

	t.Run("TrackingFailureStillRedirects", func(t *testing.T) {
		tracking := &stubTrackingFlow{err: errors.New("connection refused")}
		flow := NewRedirectFlow(&stubLinkRepo{byShortCode: map[string]*models.Link{link.ShortCode: link}}, tracking)

		target, err := flow.Visit(ctx, "aB3dE9xZ", nil)
		require.NoError(t, err)
		assert.Equal(t, link.TargetURL, target)
	})

	t.Run("LookupFailure", func(t *testing.T) {
		flow := NewRedirectFlow(&stubLinkRepo{lookupErr: errors.New("connection refused")}, &stubTrackingFlow{})

		_, err := flow.Visit(ctx, "aB3dE9xZ", nil)
		require.Error(t, err)
		assert.False(t, IsLinkNotFound(err))
	})
}
