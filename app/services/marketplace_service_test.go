package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prasit9/affilink/config"
	"github.com/prasit9/affilink/models"
	"github.com/prasit9/affilink/utils"
)

func TestMarketplaceRegistry(t *testing.T) {
	t.Run("SimulatedProviderCoversAllMarketplaces", func(t *testing.T) {
		registry := NewMarketplaceRegistry(&config.MarketplaceConfig{Provider: "simulated"})

		for _, m := range models.Marketplaces() {
			client, ok := registry.For(m)
			assert.True(t, ok, m.String())
			assert.IsType(t, &SimulatedClient{}, client)
		}
	})

	t.Run("HTTPProviderRoutesPerMarketplace", func(t *testing.T) {
		registry := NewMarketplaceRegistry(&config.MarketplaceConfig{
			Provider:      "http",
			LazadaBaseURL: "https://lazada.internal",
			ShopeeBaseURL: "https://shopee.internal",
			Timeout:       15 * time.Second,
		})

		client, ok := registry.For(models.MarketplaceLazada)
		require.True(t, ok)
		assert.IsType(t, &LazadaClient{}, client)

		client, ok = registry.For(models.MarketplaceShopee)
		require.True(t, ok)
		assert.IsType(t, &ShopeeClient{}, client)
	})

	t.Run("UnknownMarketplace", func(t *testing.T) {
		registry := NewMarketplaceRegistry(&config.MarketplaceConfig{Provider: "simulated"})

		_, ok := registry.For(models.Marketplace("amazon"))
		assert.False(t, ok)
	})

	t.Run("RegisterOverrides", func(t *testing.T) {
		registry := NewMarketplaceRegistry(&config.MarketplaceConfig{Provider: "simulated"})
		mock := NewMockMarketplaceClient()
		registry.Register(models.MarketplaceLazada, mock)

		client, ok := registry.For(models.MarketplaceLazada)
		require.True(t, ok)
		assert.Same(t, mock, client)
	})
}

func TestSimulatedClient(t *testing.T) {
	ctx := context.Background()
	client := NewSimulatedClient()

	t.Run("DriftBounded", func(t *testing.T) {
		offer := &models.Offer{Price: 100.00}

		for i := 0; i < 200; i++ {
			quote, err := client.FetchPrice(ctx, offer)
			require.NoError(t, err)
			assert.True(t, quote.Available)
			assert.GreaterOrEqual(t, quote.Price, 94.99)
			assert.LessOrEqual(t, quote.Price, 105.01)
		}
	})

	t.Run("NeverBelowFloor", func(t *testing.T) {
		offer := &models.Offer{Price: 0.01}

		for i := 0; i < 50; i++ {
			quote, err := client.FetchPrice(ctx, offer)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, quote.Price, 0.01)
		}
	})

	t.Run("RoundedToCents", func(t *testing.T) {
		quote, err := client.FetchPrice(ctx, &models.Offer{Price: 33.33})
		require.NoError(t, err)
		assert.InDelta(t, quote.Price, float64(int64(quote.Price*100))/100, 1e-9)
	})
}

func TestHTTPClientFetchPrice(t *testing.T) {
	ctx := context.Background()

	t.Run("QueriesBySKUWithBearerKey", func(t *testing.T) {
		var gotPath, gotSKU, gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotSKU = r.URL.Query().Get("sku")
			gotAuth = r.Header.Get("Authorization")
			_ = json.NewEncoder(w).Encode(priceResponse{Price: 129.90, Available: true})
		}))
		defer server.Close()

		client := NewLazadaClient(&config.MarketplaceConfig{
			LazadaBaseURL: server.URL,
			LazadaAPIKey:  "test-key",
		}, server.Client())

		quote, err := client.FetchPrice(ctx, &models.Offer{SKU: utils.ToPtr("AB-1"), URL: "https://x"})
		require.NoError(t, err)
		assert.Equal(t, 129.90, quote.Price)
		assert.True(t, quote.Available)
		assert.Equal(t, "/v1/items/price", gotPath)
		assert.Equal(t, "AB-1", gotSKU)
		assert.Equal(t, "Bearer test-key", gotAuth)
	})

	t.Run("FallsBackToOfferURL", func(t *testing.T) {
		var gotURL string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotURL = r.URL.Query().Get("url")
			_ = json.NewEncoder(w).Encode(priceResponse{Price: 10, Available: false})
		}))
		defer server.Close()

		client := NewShopeeClient(&config.MarketplaceConfig{ShopeeBaseURL: server.URL}, server.Client())

		quote, err := client.FetchPrice(ctx, &models.Offer{URL: "https://shopee.example.com/item/42"})
		require.NoError(t, err)
		assert.False(t, quote.Available)
		assert.Equal(t, "https://shopee.example.com/item/42", gotURL)
	})

	t.Run("NonOKStatus", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := NewShopeeClient(&config.MarketplaceConfig{ShopeeBaseURL: server.URL}, server.Client())

		_, err := client.FetchPrice(ctx, &models.Offer{URL: "https://x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})
}

func TestMockMarketplaceClient(t *testing.T) {
	ctx := context.Background()

	mock := NewMockMarketplaceClient()
	mock.Quotes[7] = &PriceQuote{Price: 55.50, Available: false}

	quote, err := mock.FetchPrice(ctx, &models.Offer{ID: 7, Price: 100})
	require.NoError(t, err)
	assert.Equal(t, 55.50, quote.Price)
	assert.False(t, quote.Available)

	// Offers without a canned quote echo their current price
	quote, err = mock.FetchPrice(ctx, &models.Offer{ID: 8, Price: 100})
	require.NoError(t, err)
	assert.Equal(t, float64(100), quote.Price)
	assert.True(t, quote.Available)
}
