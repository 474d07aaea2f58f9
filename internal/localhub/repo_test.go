package localhub

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/quickwishapp/quickwish-backend/pkg/db/models"
	"github.com/quickwishapp/quickwish-backend/pkg/pagination"
	"github.com/quickwishapp/quickwish-backend/pkg/types"
)

func setupLocalhubTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS local_businesses (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			description TEXT,
			image_url TEXT,
			phone TEXT,
			address TEXT NOT NULL,
			location TEXT,
			rating REAL NOT NULL DEFAULT 0,
			rating_count INTEGER NOT NULL DEFAULT 0,
			is_verified INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`DELETE FROM local_businesses`,
	}
	for _, stmt := range ddl {
		require.NoError(t, gdb.Exec(stmt).Error)
	}

	return gdb
}

func seedBusiness(t *testing.T, gdb *gorm.DB, name, category, description string, at time.Time) *models.LocalBusiness {
	t.Helper()

	business := &models.LocalBusiness{
		ID:          uuid.New(),
		Name:        name,
		Category:    category,
		Description: description,
		Address:     "Sector 3, Local Market",
		Location:    types.Location{Lat: 12.9716, Lng: 77.5946, Address: "Sector 3, Local Market"},
		CreatedAt:   at,
		UpdatedAt:   at,
	}
	require.NoError(t, gdb.Create(business).Error)
	return business
}

func TestRepositoryBusinessRoundtrip(t *testing.T) {
	gdb := setupLocalhubTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	business := &models.LocalBusiness{
		ID:          uuid.New(),
		Name:        "Quick Pharmacy",
		Category:    "Pharmacy",
		Description: "24/7 medicine delivery in your area",
		Address:     "Main Road, Near Bus Stop",
		Location:    types.Location{Lat: 12.9725, Lng: 77.5955, Address: "Main Road, Near Bus Stop"},
		Rating:      4.6,
	}
	require.NoError(t, repo.Create(ctx, business))

	found, err := repo.FindByID(ctx, business.ID)
	require.NoError(t, err)
	require.Equal(t, "Quick Pharmacy", found.Name)
	require.Equal(t, 4.6, found.Rating)

	byName, err := repo.FindByName(ctx, "Quick Pharmacy")
	require.NoError(t, err)
	require.Equal(t, business.ID, byName.ID)

	byName.Rating = 4.8
	require.NoError(t, repo.Update(ctx, byName))

	refreshed, err := repo.FindByID(ctx, business.ID)
	require.NoError(t, err)
	require.Equal(t, 4.8, refreshed.Rating)

	_, err = repo.FindByName(ctx, "No Such Shop")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListFiltersAndSearch(t *testing.T) {
	gdb := setupLocalhubTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	seedBusiness(t, gdb, "Fresh Fruits by Lakshmi", "Fruits & Vegetables", "Fresh seasonal fruits", base.Add(-3*time.Minute))
	seedBusiness(t, gdb, "Quick Pharmacy", "Pharmacy", "24/7 medicine delivery", base.Add(-2*time.Minute))
	newest := seedBusiness(t, gdb, "Green Grocery", "Grocery", "Daily essentials", base.Add(-time.Minute))

	all, err := repo.List(ctx, ListFilters{}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, newest.ID, all[0].ID)

	category := "Pharmacy"
	pharmacies, err := repo.List(ctx, ListFilters{Category: &category}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, pharmacies, 1)
	require.Equal(t, "Quick Pharmacy", pharmacies[0].Name)

	matches, err := repo.List(ctx, ListFilters{Query: "MEDICINE"}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, "Quick Pharmacy", matches[0].Name)

	cursor := pagination.EncodeCursor(pagination.Cursor{CreatedAt: newest.CreatedAt, ID: newest.ID})
	older, err := repo.List(ctx, ListFilters{}, pagination.Params{Cursor: cursor})
	require.NoError(t, err)
	require.Len(t, older, 2)
}

func TestRepositoryCategoryCounts(t *testing.T) {
	gdb := setupLocalhubTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	now := time.Now().UTC()
	seedBusiness(t, gdb, "Green Grocery", "Grocery", "", now)
	seedBusiness(t, gdb, "Corner Grocery", "Grocery", "", now)
	seedBusiness(t, gdb, "Quick Pharmacy", "Pharmacy", "", now)

	counts, err := repo.CategoryCounts(ctx)
	require.NoError(t, err)
	require.Len(t, counts, 2)
	require.Equal(t, "Grocery", counts[0].Category)
	require.EqualValues(t, 2, counts[0].Count)
	require.Equal(t, "Pharmacy", counts[1].Category)
	require.EqualValues(t, 1, counts[1].Count)
}
