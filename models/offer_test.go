package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarketplace(t *testing.T) {
	t.Run("ClosedSet", func(t *testing.T) {
		assert.True(t, MarketplaceLazada.Valid())
		assert.True(t, MarketplaceShopee.Valid())
		assert.False(t, Marketplace("amazon").Valid())
		assert.False(t, Marketplace("").Valid())
	})

	t.Run("ParseNormalizes", func(t *testing.T) {
		m, err := ParseMarketplace("  Lazada ")
		require.NoError(t, err)
		assert.Equal(t, MarketplaceLazada, m)

		m, err = ParseMarketplace("SHOPEE")
		require.NoError(t, err)
		assert.Equal(t, MarketplaceShopee, m)
	})

	t.Run("ParseRejectsUnknown", func(t *testing.T) {
		_, err := ParseMarketplace("amazon")
		assert.Error(t, err)

		_, err = ParseMarketplace("")
		assert.Error(t, err)
	})

	t.Run("StableOrder", func(t *testing.T) {
		assert.Equal(t, []Marketplace{MarketplaceLazada, MarketplaceShopee}, Marketplaces())
	})

	t.Run("ScanAndValue", func(t *testing.T) {
		var m Marketplace
		require.NoError(t, m.Scan("shopee"))
		assert.Equal(t, MarketplaceShopee, m)

		require.NoError(t, m.Scan([]byte("lazada")))
		assert.Equal(t, MarketplaceLazada, m)

		v, err := MarketplaceLazada.Value()
		require.NoError(t, err)
		assert.Equal(t, "lazada", v)

		_, err = Marketplace("amazon").Value()
		assert.Error(t, err)
	})
}

func TestOfferTableName(t *testing.T) {
	assert.Equal(t, "offers", Offer{}.TableName())
}
