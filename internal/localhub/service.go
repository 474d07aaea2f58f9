package localhub

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quickwishapp/quickwish-backend/pkg/db/models"
	pkgerrors "github.com/quickwishapp/quickwish-backend/pkg/errors"
	"github.com/quickwishapp/quickwish-backend/pkg/pagination"
)

// businessRepo captures the persistence calls the service depends on.
type businessRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.LocalBusiness, error)
	List(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.LocalBusiness, error)
	CategoryCounts(ctx context.Context) ([]CategoryCount, error)
}

// ListBusinessesInput filters the public directory.
type ListBusinessesInput struct {
	Category   *string
	Query      string
	Pagination pagination.Params
}

// Service exposes the local business directory.
type Service interface {
	ListBusinesses(ctx context.Context, input ListBusinessesInput) (*BusinessListResult, error)
	GetBusiness(ctx context.Context, id uuid.UUID) (*BusinessDTO, error)
	ListCategories(ctx context.Context) ([]CategoryCount, error)
}

type service struct {
	repo businessRepo
}

// NewService wires the directory service with its repository.
func NewService(repo businessRepo) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("business repository is required")
	}
	return &service{repo: repo}, nil
}

// ListBusinesses returns one directory page, newest first.
func (s *service) ListBusinesses(ctx context.Context, input ListBusinessesInput) (*BusinessListResult, error) {
	businesses, err := s.repo.List(ctx, ListFilters{
		Category: input.Category,
		Query:    input.Query,
	}, input.Pagination)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list businesses")
	}
	return pageBusinesses(businesses, input.Pagination), nil
}

// GetBusiness returns one listing.
func (s *service) GetBusiness(ctx context.Context, id uuid.UUID) (*BusinessDTO, error) {
	business, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "business not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load business")
	}
	return FromModel(business), nil
}

// ListCategories returns the directory's categories with listing counts.
func (s *service) ListCategories(ctx context.Context) ([]CategoryCount, error) {
	counts, err := s.repo.CategoryCounts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return counts, nil
}

func pageBusinesses(businesses []models.LocalBusiness, params pagination.Params) *BusinessListResult {
	pageSize := pagination.NormalizeLimit(params.Limit)

	page := businesses
	nextCursor := ""
	if len(businesses) > pageSize {
		page = businesses[:pageSize]
		last := page[len(page)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	dtos := make([]BusinessDTO, 0, len(page))
	for i := range page {
		dtos = append(dtos, *FromModel(&page[i]))
	}
	return &BusinessListResult{Businesses: dtos, NextCursor: nextCursor}
}
