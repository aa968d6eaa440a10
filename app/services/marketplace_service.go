package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	mrand "math/rand"
	"net/http"
	"net/url"

	"github.com/prasit9/affilink/config"
	"github.com/prasit9/affilink/models"
)

// PriceQuote is the current listing state reported by a marketplace
type PriceQuote struct {
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
}

// MarketplaceClient fetches the live price of a seller offer from one marketplace
type MarketplaceClient interface {
	FetchPrice(ctx context.Context, offer *models.Offer) (*PriceQuote, error)
}

// MarketplaceRegistry maps each supported marketplace to its client
type MarketplaceRegistry struct {
	clients map[models.Marketplace]MarketplaceClient
}

func NewMarketplaceRegistry(cfg *config.MarketplaceConfig) *MarketplaceRegistry {
	if cfg.Provider == "simulated" {
		sim := NewSimulatedClient()
		return &MarketplaceRegistry{
			clients: map[models.Marketplace]MarketplaceClient{
				models.MarketplaceLazada: sim,
				models.MarketplaceShopee: sim,
			},
		}
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	return &MarketplaceRegistry{
		clients: map[models.Marketplace]MarketplaceClient{
			models.MarketplaceLazada: NewLazadaClient(cfg, httpClient),
			models.MarketplaceShopee: NewShopeeClient(cfg, httpClient),
		},
	}
}

// For returns the client for a marketplace, or false when none is registered
func (r *MarketplaceRegistry) For(m models.Marketplace) (MarketplaceClient, bool) {
	c, ok := r.clients[m]
	return c, ok
}

// Register overrides the client for a marketplace
func (r *MarketplaceRegistry) Register(m models.Marketplace, c MarketplaceClient) {
	r.clients[m] = c
}

// priceResponse is the JSON payload both marketplace price endpoints return
type priceResponse struct {
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
}

// LazadaClient implements MarketplaceClient against the Lazada price endpoint
type LazadaClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewLazadaClient(cfg *config.MarketplaceConfig, client *http.Client) *LazadaClient {
	return &LazadaClient{
		baseURL: cfg.LazadaBaseURL,
		apiKey:  cfg.LazadaAPIKey,
		client:  client,
	}
}

func (c *LazadaClient) FetchPrice(ctx context.Context, offer *models.Offer) (*PriceQuote, error) {
	return fetchQuote(ctx, c.client, c.baseURL+"/v1/items/price", c.apiKey, offer)
}

// ShopeeClient implements MarketplaceClient against the Shopee price endpoint
type ShopeeClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewShopeeClient(cfg *config.MarketplaceConfig, client *http.Client) *ShopeeClient {
	return &ShopeeClient{
		baseURL: cfg.ShopeeBaseURL,
		apiKey:  cfg.ShopeeAPIKey,
		client:  client,
	}
}

func (c *ShopeeClient) FetchPrice(ctx context.Context, offer *models.Offer) (*PriceQuote, error) {
	return fetchQuote(ctx, c.client, c.baseURL+"/api/v2/item/price", c.apiKey, offer)
}

func fetchQuote(ctx context.Context, client *http.Client, endpoint, apiKey string, offer *models.Offer) (*PriceQuote, error) {
	q := url.Values{}
	if offer.SKU != nil && *offer.SKU != "" {
		q.Set("sku", *offer.SKU)
	} else {
		q.Set("url", offer.URL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create price request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("price request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("price endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed priceResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode price response: %w", err)
	}

	return &PriceQuote{Price: parsed.Price, Available: parsed.Available}, nil
}

// SimulatedClient implements MarketplaceClient with a bounded random walk,
// for environments without marketplace credentials
type SimulatedClient struct{}

func NewSimulatedClient() *SimulatedClient {
	return &SimulatedClient{}
}

func (s *SimulatedClient) FetchPrice(_ context.Context, offer *models.Offer) (*PriceQuote, error) {
	// Drift the current price by up to +-5 percent, never below 0.01
	drift := (mrand.Float64() - 0.5) / 10
	price := offer.Price * (1 + drift)
	if price < 0.01 {
		price = 0.01
	}
	return &PriceQuote{Price: math.Round(price*100) / 100, Available: true}, nil
}

// MockMarketplaceClient implements MarketplaceClient for testing
type MockMarketplaceClient struct {
	Quotes map[uint]*PriceQuote
	Err    error
}

func NewMockMarketplaceClient() *MockMarketplaceClient {
	return &MockMarketplaceClient{Quotes: make(map[uint]*PriceQuote)}
}

func (m *MockMarketplaceClient) FetchPrice(_ context.Context, offer *models.Offer) (*PriceQuote, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if q, ok := m.Quotes[offer.ID]; ok {
		return q, nil
	}
	return &PriceQuote{Price: offer.Price, Available: true}, nil
}
