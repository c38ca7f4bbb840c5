package repository

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamkibet/bitedash-app-sub000/entity"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "local.db"))
	require.NoError(t, err)
	return s
}

func TestCartBlobRoundTrip(t *testing.T) {
	s := openStore(t)
	repo := NewCartRepository(s)

	cart := &entity.Cart{
		RestaurantID: 10,
		Items: []entity.CartItem{{
			MenuItem: entity.MenuItem{ID: 1, RestaurantID: 10, Name: "Ugali Beef", Price: decimal.NewFromInt(450), IsAvailable: true},
			Quantity: 2,
		}},
	}
	require.NoError(t, repo.Save(cart))

	got, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, uint(10), got.RestaurantID)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.True(t, got.Items[0].MenuItem.Price.Equal(decimal.NewFromInt(450)))

	require.NoError(t, repo.Clear())
	got, err = repo.Load()
	require.NoError(t, err)
	assert.True(t, got.Empty())
}

// A corrupt blob must read as an empty cart, never as an error.
func TestMalformedCartBlobIsEmptyCart(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.Put("cart.v1", []byte("{not json")))

	got, err := NewCartRepository(s).Load()
	require.NoError(t, err)
	assert.True(t, got.Empty())
	assert.Equal(t, uint(0), got.RestaurantID)
}

func TestMissingCartBlobIsEmptyCart(t *testing.T) {
	got, err := NewCartRepository(openStore(t)).Load()
	require.NoError(t, err)
	assert.True(t, got.Empty())
}

func TestPutOverwrites(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.Put("k", []byte("one")))
	require.NoError(t, s.Put("k", []byte("two")))

	v, ok, err := s.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("two"), v)
}

func TestTokenRepository(t *testing.T) {
	repo := NewTokenRepository(openStore(t))

	tok, err := repo.Token()
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, repo.Set("abc.def.ghi"))
	tok, err = repo.Token()
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	require.NoError(t, repo.Clear())
	tok, _ = repo.Token()
	assert.Empty(t, tok)
}

func TestLocationRepository(t *testing.T) {
	repo := NewLocationRepository(openStore(t))

	loc, err := repo.Load()
	require.NoError(t, err)
	assert.Nil(t, loc)

	require.NoError(t, repo.Save(&entity.DeliveryLocation{Address: "Kilimani, Nairobi", Latitude: -1.29, Longitude: 36.78}))
	loc, err = repo.Load()
	require.NoError(t, err)
	require.NotNil(t, loc)
	assert.Equal(t, "Kilimani, Nairobi", loc.Address)
}
