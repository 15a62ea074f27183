package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tabletap/tabletap-backend/internal/db"

	"github.com/tabletap/tabletap-backend/internal/app/repository"
)

func setupStoreServiceTest(t *testing.T) StoreService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	storeRepo := repository.NewStoreRepository(testDB)
	return NewStoreService(storeRepo, nil)
}

func TestStoreService_CreateStore(t *testing.T) {
	svc := setupStoreServiceTest(t)

	t.Run("Defaults applied", func(t *testing.T) {
		store, err := svc.CreateStore(1, CreateStoreInput{Name: "Ember Grill"})
		require.NoError(t, err)
		assert.Equal(t, "ember-grill", store.Slug)
		assert.Equal(t, "UTC", store.Timezone)
		assert.Equal(t, "USD", store.Currency)
		assert.True(t, store.IsActive)
	})

	t.Run("Unknown timezone falls back to UTC", func(t *testing.T) {
		store, err := svc.CreateStore(1, CreateStoreInput{
			Name:     "Night Owl",
			Timezone: "Mars/Olympus",
		})
		require.NoError(t, err)
		assert.Equal(t, "UTC", store.Timezone)
	})

	t.Run("Duplicate names get distinct slugs", func(t *testing.T) {
		first, err := svc.CreateStore(1, CreateStoreInput{Name: "Twin Cafe"})
		require.NoError(t, err)
		second, err := svc.CreateStore(2, CreateStoreInput{Name: "Twin Cafe"})
		require.NoError(t, err)
		assert.NotEqual(t, first.Slug, second.Slug)
	})
}

func TestStoreService_Ownership(t *testing.T) {
	svc := setupStoreServiceTest(t)

	store, err := svc.CreateStore(1, CreateStoreInput{Name: "Ember Grill"})
	require.NoError(t, err)

	newName := "Renamed"

	_, err = svc.UpdateStore(2, store.ID, UpdateStoreInput{Name: &newName})
	assert.ErrorIs(t, err, ErrStoreAccessDenied)

	_, err = svc.UpdateStore(1, 9999, UpdateStoreInput{Name: &newName})
	assert.ErrorIs(t, err, ErrStoreNotFound)

	updated, err := svc.UpdateStore(1, store.ID, UpdateStoreInput{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	err = svc.DeleteStore(2, store.ID)
	assert.ErrorIs(t, err, ErrStoreAccessDenied)
}

func TestStoreService_SetHours(t *testing.T) {
	svc := setupStoreServiceTest(t)

	store, err := svc.CreateStore(1, CreateStoreInput{Name: "Ember Grill"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		hours   []HourInput
		wantErr error
	}{
		{
			name: "Valid weekly schedule",
			hours: []HourInput{
				{DayOfWeek: 1, OpenTime: "09:00", CloseTime: "17:00"},
				{DayOfWeek: 5, OpenTime: "22:00", CloseTime: "02:00"},
			},
		},
		{
			name:    "Day out of range",
			hours:   []HourInput{{DayOfWeek: 7, OpenTime: "09:00", CloseTime: "17:00"}},
			wantErr: ErrInvalidHours,
		},
		{
			name:    "Malformed time",
			hours:   []HourInput{{DayOfWeek: 1, OpenTime: "9am", CloseTime: "17:00"}},
			wantErr: ErrInvalidHours,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, err := svc.SetHours(1, store.ID, tt.hours)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, updated.Hours, len(tt.hours))
		})
	}

	t.Run("Replacing wipes old periods", func(t *testing.T) {
		updated, err := svc.SetHours(1, store.ID, []HourInput{
			{DayOfWeek: 2, OpenTime: "10:00", CloseTime: "16:00"},
		})
		require.NoError(t, err)
		require.Len(t, updated.Hours, 1)
		assert.Equal(t, 2, updated.Hours[0].DayOfWeek)
	})
}

func TestStoreService_AddClosure(t *testing.T) {
	svc := setupStoreServiceTest(t)

	store, err := svc.CreateStore(1, CreateStoreInput{Name: "Ember Grill"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		input   ClosureInput
		wantErr error
	}{
		{
			name:  "Valid window",
			input: ClosureInput{StartDate: "2026-09-01", EndDate: "2026-09-07", Reason: "Holidays"},
		},
		{
			name:  "Single day",
			input: ClosureInput{StartDate: "2026-10-01", EndDate: "2026-10-01"},
		},
		{
			name:    "End before start",
			input:   ClosureInput{StartDate: "2026-09-07", EndDate: "2026-09-01"},
			wantErr: ErrInvalidClosure,
		},
		{
			name:    "Malformed date",
			input:   ClosureInput{StartDate: "Sep 1", EndDate: "2026-09-07"},
			wantErr: ErrInvalidClosure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			closure, err := svc.AddClosure(1, store.ID, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, store.ID, closure.StoreID)
		})
	}
}

func TestStoreService_GetStoreBySlug(t *testing.T) {
	svc := setupStoreServiceTest(t)

	store, err := svc.CreateStore(1, CreateStoreInput{
		Name:     "Ember Grill",
		Timezone: "UTC",
	})
	require.NoError(t, err)

	_, err = svc.SetHours(1, store.ID, []HourInput{
		{DayOfWeek: 1, OpenTime: "09:00", CloseTime: "17:00"},
	})
	require.NoError(t, err)

	// Monday 12:00 UTC
	svc.(*storeService).now = func() time.Time {
		return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	}

	status, err := svc.GetStoreBySlug(store.Slug)
	require.NoError(t, err)
	assert.True(t, status.IsOpen)

	// Monday 20:00 UTC, after close
	svc.(*storeService).now = func() time.Time {
		return time.Date(2026, 8, 31, 20, 0, 0, 0, time.UTC)
	}
	status, err = svc.GetStoreBySlug(store.Slug)
	require.NoError(t, err)
	assert.False(t, status.IsOpen)

	t.Run("Unknown slug", func(t *testing.T) {
		_, err := svc.GetStoreBySlug("no-such-store")
		assert.ErrorIs(t, err, ErrStoreNotFound)
	})

	t.Run("Inactive store hidden", func(t *testing.T) {
		inactive := false
		_, err := svc.UpdateStore(1, store.ID, UpdateStoreInput{IsActive: &inactive})
		require.NoError(t, err)

		_, err = svc.GetStoreBySlug(store.Slug)
		assert.ErrorIs(t, err, ErrStoreNotFound)
	})
}

func TestStoreService_ListActiveStores(t *testing.T) {
	svc := setupStoreServiceTest(t)

	_, err := svc.CreateStore(1, CreateStoreInput{Name: "Ember Grill"})
	require.NoError(t, err)
	second, err := svc.CreateStore(1, CreateStoreInput{Name: "Night Owl"})
	require.NoError(t, err)

	inactive := false
	_, err = svc.UpdateStore(1, second.ID, UpdateStoreInput{IsActive: &inactive})
	require.NoError(t, err)

	// No cache wired, flags are computed live.
	stores, err := svc.ListActiveStores(context.Background())
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, "Ember Grill", stores[0].Name)
	assert.False(t, stores[0].IsOpen, "store without hours is closed")
}

func TestStoreService_RefreshOpenStatus(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	storeRepo := repository.NewStoreRepository(testDB)
	svc := NewStoreService(storeRepo, client)

	withHours, err := svc.CreateStore(1, CreateStoreInput{Name: "Ember Grill", Timezone: "UTC"})
	require.NoError(t, err)
	_, err = svc.SetHours(1, withHours.ID, []HourInput{
		{DayOfWeek: 1, OpenTime: "09:00", CloseTime: "17:00"},
	})
	require.NoError(t, err)

	noHours, err := svc.CreateStore(1, CreateStoreInput{Name: "Night Owl"})
	require.NoError(t, err)

	// Monday 12:00 UTC
	svc.(*storeService).now = func() time.Time {
		return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	}

	require.NoError(t, svc.RefreshOpenStatus(context.Background()))

	assert.Equal(t, "1", mr.HGet("store:open", withHours.Slug))
	assert.Equal(t, "0", mr.HGet("store:open", noHours.Slug))

	t.Run("No active stores clears the cache", func(t *testing.T) {
		require.NoError(t, svc.DeleteStore(1, withHours.ID))
		require.NoError(t, svc.DeleteStore(1, noHours.ID))

		require.NoError(t, svc.RefreshOpenStatus(context.Background()))
		assert.False(t, mr.Exists("store:open"))
	})
}
