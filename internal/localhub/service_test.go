package localhub

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quickwishapp/quickwish-backend/pkg/db/models"
	pkgerrors "github.com/quickwishapp/quickwish-backend/pkg/errors"
	"github.com/quickwishapp/quickwish-backend/pkg/pagination"
	"github.com/quickwishapp/quickwish-backend/pkg/types"
)

type stubBusinessRepo struct {
	business   *models.LocalBusiness
	businesses []models.LocalBusiness
	counts     []CategoryCount
	err        error

	lastFilters ListFilters
}

func (s *stubBusinessRepo) FindByID(_ context.Context, _ uuid.UUID) (*models.LocalBusiness, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.business == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.business, nil
}

func (s *stubBusinessRepo) List(_ context.Context, filters ListFilters, _ pagination.Params) ([]models.LocalBusiness, error) {
	s.lastFilters = filters
	if s.err != nil {
		return nil, s.err
	}
	return s.businesses, nil
}

func (s *stubBusinessRepo) CategoryCounts(_ context.Context) ([]CategoryCount, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.counts, nil
}

func baseBusiness(name, category string) models.LocalBusiness {
	return models.LocalBusiness{
		ID:       uuid.New(),
		Name:     name,
		Category: category,
		Address:  "Sector 3, Local Market",
		Location: types.Location{Lat: 12.9716, Lng: 77.5946, Address: "Sector 3, Local Market"},
		Rating:   4.8,
	}
}

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(nil); err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestListBusinessesPassesFilters(t *testing.T) {
	repo := &stubBusinessRepo{businesses: []models.LocalBusiness{baseBusiness("Fresh Fruits by Lakshmi", "Fruits & Vegetables")}}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	category := "Pharmacy"
	result, err := svc.ListBusinesses(context.Background(), ListBusinessesInput{
		Category: &category,
		Query:    "medicine",
	})
	if err != nil {
		t.Fatalf("list businesses: %v", err)
	}

	if repo.lastFilters.Category == nil || *repo.lastFilters.Category != "Pharmacy" {
		t.Fatalf("expected category filter to reach repo, got %+v", repo.lastFilters)
	}
	if repo.lastFilters.Query != "medicine" {
		t.Fatalf("expected search filter to reach repo, got %q", repo.lastFilters.Query)
	}
	if len(result.Businesses) != 1 {
		t.Fatalf("expected 1 business, got %d", len(result.Businesses))
	}
}

func TestListBusinessesPagesWithCursor(t *testing.T) {
	businesses := make([]models.LocalBusiness, 0, 3)
	for i := 0; i < 3; i++ {
		business := baseBusiness("Green Grocery", "Grocery")
		business.CreatedAt = time.Now().UTC().Add(-time.Duration(i) * time.Minute)
		businesses = append(businesses, business)
	}
	svc, err := NewService(&stubBusinessRepo{businesses: businesses})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	result, err := svc.ListBusinesses(context.Background(), ListBusinessesInput{
		Pagination: pagination.Params{Limit: 2},
	})
	if err != nil {
		t.Fatalf("list businesses: %v", err)
	}

	if len(result.Businesses) != 2 {
		t.Fatalf("expected 2 businesses on the page, got %d", len(result.Businesses))
	}
	if result.NextCursor == "" {
		t.Fatal("expected a next cursor")
	}
}

func TestGetBusiness(t *testing.T) {
	business := baseBusiness("Amma's Kitchen", "Home Kitchen")
	svc, err := NewService(&stubBusinessRepo{business: &business})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.GetBusiness(context.Background(), business.ID)
	if err != nil {
		t.Fatalf("get business: %v", err)
	}
	if dto.Name != "Amma's Kitchen" {
		t.Fatalf("expected business name, got %q", dto.Name)
	}
}

func TestGetBusinessNotFound(t *testing.T) {
	svc, err := NewService(&stubBusinessRepo{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.GetBusiness(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestListCategories(t *testing.T) {
	counts := []CategoryCount{
		{Category: "Grocery", Count: 4},
		{Category: "Pharmacy", Count: 1},
	}
	svc, err := NewService(&stubBusinessRepo{counts: counts})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	got, err := svc.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(got) != 2 || got[0].Category != "Grocery" || got[0].Count != 4 {
		t.Fatalf("expected category counts, got %+v", got)
	}
}
