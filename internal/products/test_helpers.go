package products

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/quickwishapp/quickwish-backend/pkg/db/models"
	"github.com/quickwishapp/quickwish-backend/pkg/types"
)

func mustCreateTestVendor(t *testing.T, tx *gorm.DB) *models.HubVendor {
	t.Helper()
	vendor := &models.HubVendor{
		ID:       uuid.New(),
		Name:     fmt.Sprintf("Repo Vendor %s", uuid.NewString()[:8]),
		Category: "food",
		Address:  "12 Market Road, Indiranagar",
		Location: types.Location{Lat: 12.9716, Lng: 77.5946, Address: "12 Market Road, Indiranagar"},
		IsActive: true,
	}
	if err := tx.Create(vendor).Error; err != nil {
		t.Fatalf("create vendor: %v", err)
	}
	return vendor
}

func mustCreateTestProduct(t *testing.T, tx *gorm.DB, vendorID uuid.UUID) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:        uuid.New(),
		VendorID:  vendorID,
		Name:      "Masala Dosa",
		Category:  "snacks",
		Price:     decimal.NewFromInt(100),
		ImageURLs: pq.StringArray{"https://cdn.example.com/dosa.jpg"},
		InStock:   true,
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func mustCreateTestUser(t *testing.T, tx *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.New(),
		Name:         "Repo Tester",
		Email:        fmt.Sprintf("qw_test_%s@example.com", uuid.NewString()),
		PasswordHash: "hash",
	}
	if err := tx.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}
