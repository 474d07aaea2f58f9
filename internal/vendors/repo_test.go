package vendors

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/quickwishapp/quickwish-backend/pkg/db/models"
	"github.com/quickwishapp/quickwish-backend/pkg/types"
)

func setupVendorsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS hub_vendors (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			description TEXT,
			image_url TEXT,
			gallery_urls TEXT,
			phone TEXT,
			address TEXT NOT NULL,
			location TEXT,
			rating REAL NOT NULL DEFAULT 0,
			rating_count INTEGER NOT NULL DEFAULT 0,
			has_own_delivery INTEGER NOT NULL DEFAULT 0,
			is_active INTEGER NOT NULL DEFAULT 1,
			opening_hours TEXT,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`DELETE FROM hub_vendors`,
	}
	for _, stmt := range ddl {
		require.NoError(t, gdb.Exec(stmt).Error)
	}

	return gdb
}

func seedVendor(t *testing.T, gdb *gorm.DB, name, category string, active bool) *models.HubVendor {
	t.Helper()

	vendor := &models.HubVendor{
		ID:          uuid.New(),
		Name:        name,
		Category:    category,
		Address:     "12 MG Road, Bengaluru",
		Location:    types.Location{Lat: 12.9716, Lng: 77.5946, Address: "12 MG Road, Bengaluru"},
		GalleryURLs: pq.StringArray{"https://cdn.quickwish.app/vendors/front.jpg"},
		IsActive:    active,
	}
	require.NoError(t, gdb.Create(vendor).Error)
	return vendor
}

func TestRepositoryVendorRoundtrip(t *testing.T) {
	gdb := setupVendorsTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	phone := "+91 98450 12345"
	vendor := &models.HubVendor{
		ID:             uuid.New(),
		Name:           "Dosa Palace",
		Category:       "restaurant",
		Description:    "South Indian breakfast house",
		Phone:          &phone,
		Address:        "12 MG Road, Bengaluru",
		Location:       types.Location{Lat: 12.9716, Lng: 77.5946, Address: "12 MG Road, Bengaluru"},
		GalleryURLs:    pq.StringArray{"https://cdn.quickwish.app/vendors/front.jpg", "https://cdn.quickwish.app/vendors/counter.jpg"},
		HasOwnDelivery: true,
		IsActive:       true,
	}
	require.NoError(t, repo.Create(ctx, vendor))

	found, err := repo.FindByID(ctx, vendor.ID)
	require.NoError(t, err)
	require.Equal(t, vendor.Name, found.Name)
	require.Equal(t, vendor.Location.Lat, found.Location.Lat)
	require.Equal(t, vendor.Location.Lng, found.Location.Lng)
	require.Len(t, found.GalleryURLs, 2)
	require.NotNil(t, found.Phone)
	require.Equal(t, phone, *found.Phone)
	require.True(t, found.HasOwnDelivery)
}

func TestRepositoryFindMissingVendor(t *testing.T) {
	gdb := setupVendorsTestDB(t)
	repo := NewRepository(gdb)

	_, err := repo.FindByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryFindByName(t *testing.T) {
	gdb := setupVendorsTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	vendor := seedVendor(t, gdb, "Dosa Palace", "restaurant", true)

	found, err := repo.FindByName(ctx, "Dosa Palace")
	require.NoError(t, err)
	require.Equal(t, vendor.ID, found.ID)

	_, err = repo.FindByName(ctx, "Idli Express")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListFiltersCategoryAndActive(t *testing.T) {
	gdb := setupVendorsTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	seedVendor(t, gdb, "Dosa Palace", "restaurant", true)
	seedVendor(t, gdb, "City Pharmacy", "pharmacy", true)
	seedVendor(t, gdb, "Closed Kitchen", "restaurant", false)

	category := "restaurant"
	restaurants, err := repo.List(ctx, ListFilters{Category: &category, OnlyActive: true})
	require.NoError(t, err)
	require.Len(t, restaurants, 1)
	require.Equal(t, "Dosa Palace", restaurants[0].Name)

	active, err := repo.List(ctx, ListFilters{OnlyActive: true})
	require.NoError(t, err)
	require.Len(t, active, 2)

	all, err := repo.List(ctx, ListFilters{})
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestRepositoryUpdatePersists(t *testing.T) {
	gdb := setupVendorsTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	vendor := seedVendor(t, gdb, "Dosa Palace", "restaurant", true)
	vendor.HasOwnDelivery = true
	vendor.IsActive = false
	require.NoError(t, repo.Update(ctx, vendor))

	found, err := repo.FindByID(ctx, vendor.ID)
	require.NoError(t, err)
	require.True(t, found.HasOwnDelivery)
	require.False(t, found.IsActive)
}
