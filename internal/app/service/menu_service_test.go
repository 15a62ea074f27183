package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tabletap/tabletap-backend/internal/app/model"
	"github.com/tabletap/tabletap-backend/internal/app/repository"
	"github.com/tabletap/tabletap-backend/internal/db"
)

type menuTestEnv struct {
	menuService     MenuService
	categoryService CategoryService
	storeSvc        StoreService
	store           *model.Store
	category        *model.Category
}

func setupMenuServiceTest(t *testing.T) *menuTestEnv {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	storeRepo := repository.NewStoreRepository(testDB)
	categoryRepo := repository.NewCategoryRepository(testDB)
	menuRepo := repository.NewMenuRepository(testDB)

	storeSvc := NewStoreService(storeRepo, nil)
	categoryService := NewCategoryService(categoryRepo, storeRepo)
	menuService := NewMenuService(menuRepo, categoryRepo, storeRepo, storeSvc)

	store, err := storeSvc.CreateStore(1, CreateStoreInput{Name: "Ember Grill"})
	require.NoError(t, err)

	category, err := categoryService.CreateCategory(1, store.ID, CategoryInput{Name: "Mains"})
	require.NoError(t, err)

	return &menuTestEnv{
		menuService:     menuService,
		categoryService: categoryService,
		storeSvc:        storeSvc,
		store:           store,
		category:        category,
	}
}

func TestMenuService_CreateMenuItem(t *testing.T) {
	env := setupMenuServiceTest(t)

	t.Run("Valid item", func(t *testing.T) {
		item, err := env.menuService.CreateMenuItem(1, env.store.ID, MenuItemInput{
			CategoryID: env.category.ID,
			Name:       "Smash Burger",
			BasePrice:  8900,
		})
		require.NoError(t, err)
		assert.Equal(t, env.store.ID, item.StoreID)
		assert.True(t, item.IsAvailable)
	})

	t.Run("Negative price rejected", func(t *testing.T) {
		_, err := env.menuService.CreateMenuItem(1, env.store.ID, MenuItemInput{
			CategoryID: env.category.ID,
			Name:       "Free Lunch",
			BasePrice:  -100,
		})
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("Category from another store rejected", func(t *testing.T) {
		other, err := env.storeSvc.CreateStore(2, CreateStoreInput{Name: "Night Owl"})
		require.NoError(t, err)
		foreign, err := env.categoryService.CreateCategory(2, other.ID, CategoryInput{Name: "Drinks"})
		require.NoError(t, err)

		_, err = env.menuService.CreateMenuItem(1, env.store.ID, MenuItemInput{
			CategoryID: foreign.ID,
			Name:       "Cola",
			BasePrice:  1500,
		})
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})

	t.Run("Non-owner rejected", func(t *testing.T) {
		_, err := env.menuService.CreateMenuItem(99, env.store.ID, MenuItemInput{
			CategoryID: env.category.ID,
			Name:       "Sneaky Dish",
			BasePrice:  100,
		})
		assert.ErrorIs(t, err, ErrStoreAccessDenied)
	})
}

func TestMenuService_UpdateAndDelete(t *testing.T) {
	env := setupMenuServiceTest(t)

	item, err := env.menuService.CreateMenuItem(1, env.store.ID, MenuItemInput{
		CategoryID: env.category.ID,
		Name:       "Smash Burger",
		BasePrice:  8900,
	})
	require.NoError(t, err)

	unavailable := false
	updated, err := env.menuService.UpdateMenuItem(1, item.ID, MenuItemInput{
		Name:        "Double Smash Burger",
		BasePrice:   10900,
		IsAvailable: &unavailable,
	})
	require.NoError(t, err)
	assert.Equal(t, "Double Smash Burger", updated.Name)
	assert.Equal(t, int64(10900), updated.BasePrice)
	assert.False(t, updated.IsAvailable)

	err = env.menuService.DeleteMenuItem(2, item.ID)
	assert.ErrorIs(t, err, ErrStoreAccessDenied)

	err = env.menuService.DeleteMenuItem(1, item.ID)
	require.NoError(t, err)

	_, err = env.menuService.GetMenuItem(item.ID)
	assert.ErrorIs(t, err, ErrMenuItemNotFound)
}

func TestMenuService_GetStoreMenu(t *testing.T) {
	env := setupMenuServiceTest(t)

	drinks, err := env.categoryService.CreateCategory(1, env.store.ID, CategoryInput{
		Name:      "Drinks",
		SortOrder: 1,
	})
	require.NoError(t, err)

	_, err = env.menuService.CreateMenuItem(1, env.store.ID, MenuItemInput{
		CategoryID: env.category.ID,
		Name:       "Smash Burger",
		BasePrice:  8900,
	})
	require.NoError(t, err)

	unavailable := false
	_, err = env.menuService.CreateMenuItem(1, env.store.ID, MenuItemInput{
		CategoryID:  env.category.ID,
		Name:        "Sold Out Special",
		BasePrice:   12000,
		IsAvailable: &unavailable,
	})
	require.NoError(t, err)

	_, err = env.menuService.CreateMenuItem(1, env.store.ID, MenuItemInput{
		CategoryID: drinks.ID,
		Name:       "Cola",
		BasePrice:  1500,
	})
	require.NoError(t, err)

	menu, err := env.menuService.GetStoreMenu(env.store.Slug)
	require.NoError(t, err)

	require.Len(t, menu.Categories, 2)
	assert.Equal(t, "Mains", menu.Categories[0].Name)
	assert.Equal(t, "Drinks", menu.Categories[1].Name)

	// Unavailable items are hidden from the storefront tree.
	require.Len(t, menu.Categories[0].Items, 1)
	assert.Equal(t, "Smash Burger", menu.Categories[0].Items[0].Name)
	require.Len(t, menu.Categories[1].Items, 1)

	t.Run("Unknown store", func(t *testing.T) {
		_, err := env.menuService.GetStoreMenu("no-such-store")
		assert.ErrorIs(t, err, ErrStoreNotFound)
	})
}
