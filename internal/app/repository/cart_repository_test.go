package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabletap/tabletap-backend/internal/cart"
)

func setupCartRepositoryTest(t *testing.T) (*miniredis.Miniredis, CartRepository) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return mr, NewCartRepository(client, time.Hour)
}

func TestCartRepository_LoadMissingSession(t *testing.T) {
	_, repo := setupCartRepositoryTest(t)

	c, err := repo.Load(context.Background(), "no-such-session")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
	assert.Empty(t, c.StoreSlug)
}

func TestCartRepository_SaveAndLoad(t *testing.T) {
	mr, repo := setupCartRepositoryTest(t)

	saved := &cart.Cart{
		StoreSlug: "ember-grill",
		Items: []cart.Item{{
			ID:        "cart-1-xyz",
			ItemID:    "1",
			Name:      "Burger",
			BasePrice: 8900,
			Quantity:  2,
			StoreSlug: "ember-grill",
		}},
	}
	require.NoError(t, repo.Save(context.Background(), "sess-1", saved))
	assert.Greater(t, mr.TTL("cart:sess-1"), time.Duration(0), "saved blob carries a TTL")

	loaded, err := repo.Load(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "ember-grill", loaded.StoreSlug)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, "Burger", loaded.Items[0].Name)
	assert.Equal(t, 2, loaded.Items[0].Quantity)
}

func TestCartRepository_LoadCorruptBlob(t *testing.T) {
	mr, repo := setupCartRepositoryTest(t)

	require.NoError(t, mr.Set("cart:sess-1", `{"items": [truncated`))

	c, err := repo.Load(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
	assert.Empty(t, c.StoreSlug)
}

func TestCartRepository_LoadDropsMalformedLines(t *testing.T) {
	mr, repo := setupCartRepositoryTest(t)

	blob := `{"store_slug":"ember-grill","items":[` +
		`{"id":"","item_id":"1","name":"No Line ID","base_price":100,"quantity":1},` +
		`{"id":"cart-1-xyz","item_id":"1","name":"Zero Quantity","base_price":100,"quantity":0},` +
		`{"id":"cart-2-abc","item_id":"2","name":"Burger","base_price":8900,"quantity":2}]}`
	require.NoError(t, mr.Set("cart:sess-1", blob))

	c, err := repo.Load(context.Background(), "sess-1")
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, "Burger", c.Items[0].Name)
	assert.Equal(t, int64(17800), c.Items[0].TotalPrice, "line total recomputed on load")
}

func TestCartRepository_Delete(t *testing.T) {
	mr, repo := setupCartRepositoryTest(t)

	require.NoError(t, repo.Save(context.Background(), "sess-1", &cart.Cart{StoreSlug: "ember-grill"}))
	require.NoError(t, repo.Delete(context.Background(), "sess-1"))
	assert.False(t, mr.Exists("cart:sess-1"))
}
