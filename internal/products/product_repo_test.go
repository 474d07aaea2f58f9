package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quickwishapp/quickwish-backend/pkg/db/models"
	"github.com/quickwishapp/quickwish-backend/pkg/pagination"
)

func TestRepositoryProductFlow(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	repo := NewRepository(tx)
	ctx := context.Background()

	vendor := mustCreateTestVendor(t, tx)
	product := mustCreateTestProduct(t, tx, vendor.ID)

	detail, err := repo.FindDetail(ctx, product.ID)
	if err != nil {
		t.Fatalf("find detail: %v", err)
	}
	if detail.Vendor == nil || detail.Vendor.ID != vendor.ID {
		t.Fatalf("expected vendor preloaded, got %+v", detail.Vendor)
	}

	discounted := decimal.NewFromInt(80)
	detail.DiscountedPrice = &discounted
	if _, err := repo.UpdateProduct(ctx, detail); err != nil {
		t.Fatalf("update product: %v", err)
	}

	found, err := repo.FindByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if found.DiscountedPrice == nil || !found.DiscountedPrice.Equal(discounted) {
		t.Fatalf("expected discounted price persisted, got %v", found.DiscountedPrice)
	}
	if !found.EffectivePrice().Equal(discounted) {
		t.Fatalf("expected effective price %s, got %s", discounted, found.EffectivePrice())
	}

	byIDs, err := repo.FindByIDs(ctx, []uuid.UUID{product.ID, uuid.New()})
	if err != nil {
		t.Fatalf("find by ids: %v", err)
	}
	if len(byIDs) != 1 {
		t.Fatalf("expected one live product, got %d", len(byIDs))
	}

	list, err := repo.ListByVendor(ctx, vendor.ID)
	if err != nil {
		t.Fatalf("list by vendor: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected one product, got %d", len(list))
	}

	byName, err := repo.FindByVendorAndName(ctx, vendor.ID, product.Name)
	if err != nil {
		t.Fatalf("find by vendor and name: %v", err)
	}
	if byName.ID != product.ID {
		t.Fatalf("expected product %s, got %s", product.ID, byName.ID)
	}
	if _, err := repo.FindByVendorAndName(ctx, vendor.ID, "Missing Dish"); err == nil {
		t.Fatal("expected missing product lookup to fail")
	}
}

func TestRepositoryListProductSummaries(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	repo := NewRepository(tx)
	ctx := context.Background()

	vendor := mustCreateTestVendor(t, tx)
	first := mustCreateTestProduct(t, tx, vendor.ID)
	second := mustCreateTestProduct(t, tx, vendor.ID)
	second.Name = "Paneer Tikka"
	second.Category = "mains"
	if _, err := repo.UpdateProduct(ctx, second); err != nil {
		t.Fatalf("update second product: %v", err)
	}

	result, err := repo.ListProductSummaries(ctx, productListQuery{
		Pagination: pagination.Params{Limit: 10},
		VendorID:   &vendor.ID,
	})
	if err != nil {
		t.Fatalf("list summaries: %v", err)
	}
	if len(result.Products) != 2 {
		t.Fatalf("expected two products, got %d", len(result.Products))
	}
	for _, summary := range result.Products {
		if summary.VendorName != vendor.Name {
			t.Fatalf("expected vendor name %q, got %q", vendor.Name, summary.VendorName)
		}
	}

	category := "mains"
	filtered, err := repo.ListProductSummaries(ctx, productListQuery{
		Pagination: pagination.Params{Limit: 10},
		Filters:    ProductListFilters{Category: &category},
		VendorID:   &vendor.ID,
	})
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(filtered.Products) != 1 || filtered.Products[0].ID != second.ID {
		t.Fatalf("expected category filter to match one product, got %d", len(filtered.Products))
	}

	searched, err := repo.ListProductSummaries(ctx, productListQuery{
		Pagination: pagination.Params{Limit: 10},
		Filters:    ProductListFilters{Query: "dosa"},
		VendorID:   &vendor.ID,
	})
	if err != nil {
		t.Fatalf("list searched: %v", err)
	}
	if len(searched.Products) != 1 || searched.Products[0].ID != first.ID {
		t.Fatalf("expected search to match the dosa product")
	}
}

func TestRepositoryLikeFlow(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	repo := NewRepository(tx)
	ctx := context.Background()

	vendor := mustCreateTestVendor(t, tx)
	product := mustCreateTestProduct(t, tx, vendor.ID)
	user := mustCreateTestUser(t, tx)

	if _, err := repo.FindLike(ctx, product.ID, user.ID); err == nil {
		t.Fatal("expected no like yet")
	}

	if err := repo.CreateLike(ctx, &models.ProductLike{ProductID: product.ID, UserID: user.ID}); err != nil {
		t.Fatalf("create like: %v", err)
	}
	if err := repo.AdjustLikeCount(ctx, product.ID, 1); err != nil {
		t.Fatalf("adjust like count: %v", err)
	}

	liked, err := repo.ListLikedProducts(ctx, user.ID)
	if err != nil {
		t.Fatalf("list liked: %v", err)
	}
	if len(liked) != 1 || liked[0].ID != product.ID {
		t.Fatalf("expected liked product, got %d rows", len(liked))
	}
	if liked[0].LikeCount != 1 {
		t.Fatalf("expected like count 1, got %d", liked[0].LikeCount)
	}

	deleted, err := repo.DeleteLike(ctx, product.ID, user.ID)
	if err != nil {
		t.Fatalf("delete like: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected one like removed, got %d", deleted)
	}
}
