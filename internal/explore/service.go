package explore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quickwishapp/quickwish-backend/pkg/db/models"
	pkgerrors "github.com/quickwishapp/quickwish-backend/pkg/errors"
	"github.com/quickwishapp/quickwish-backend/pkg/pagination"
	"github.com/quickwishapp/quickwish-backend/pkg/types"
)

// postRepo captures the persistence calls the service depends on.
type postRepo interface {
	Create(ctx context.Context, post *models.ExplorePost) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.ExplorePost, error)
	List(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.ExplorePost, error)
	IncrementLikeCount(ctx context.Context, id uuid.UUID) (int64, error)
}

// authorLoader resolves the author whose name gets denormalized onto posts.
type authorLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// ListPostsInput filters the public feed.
type ListPostsInput struct {
	Category   *string
	Pagination pagination.Params
}

// CreatePostInput holds creation-time data for a new post.
type CreatePostInput struct {
	Title     string
	Body      string
	Category  string
	ImageURLs []string
	Location  *types.Location
}

// Service exposes the community feed operations.
type Service interface {
	ListPosts(ctx context.Context, input ListPostsInput) (*PostListResult, error)
	CreatePost(ctx context.Context, authorID uuid.UUID, input CreatePostInput) (*PostDTO, error)
	LikePost(ctx context.Context, id uuid.UUID) (*LikeResult, error)
}

type service struct {
	repo  postRepo
	users authorLoader
}

// NewService wires the explore service with its dependencies.
func NewService(repo postRepo, users authorLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("post repository is required")
	}
	if users == nil {
		return nil, fmt.Errorf("author loader is required")
	}
	return &service{repo: repo, users: users}, nil
}

// ListPosts returns one feed page, newest first.
func (s *service) ListPosts(ctx context.Context, input ListPostsInput) (*PostListResult, error) {
	posts, err := s.repo.List(ctx, ListFilters{Category: input.Category}, input.Pagination)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list posts")
	}
	return pagePosts(posts, input.Pagination), nil
}

// CreatePost publishes a feed entry stamped with the author's display name.
func (s *service) CreatePost(ctx context.Context, authorID uuid.UUID, input CreatePostInput) (*PostDTO, error) {
	if authorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "author id is required")
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "post title is required")
	}
	body := strings.TrimSpace(input.Body)
	if body == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "post body is required")
	}

	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "author not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load author")
	}

	post := &models.ExplorePost{
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Title:      title,
		Body:       body,
		Category:   strings.TrimSpace(input.Category),
		ImageURLs:  append([]string(nil), input.ImageURLs...),
	}
	if input.Location != nil {
		loc := *input.Location
		if loc.Lat < -90 || loc.Lat > 90 || loc.Lng < -180 || loc.Lng > 180 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid coordinates")
		}
		post.Location = loc
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create post")
	}
	return FromModel(post), nil
}

// LikePost bumps the post's like counter and returns the fresh count.
func (s *service) LikePost(ctx context.Context, id uuid.UUID) (*LikeResult, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "post id is required")
	}

	affected, err := s.repo.IncrementLikeCount(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "like post")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "post not found")
	}

	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load post")
	}
	return &LikeResult{PostID: post.ID, LikeCount: post.LikeCount}, nil
}

func pagePosts(posts []models.ExplorePost, params pagination.Params) *PostListResult {
	pageSize := pagination.NormalizeLimit(params.Limit)

	page := posts
	nextCursor := ""
	if len(posts) > pageSize {
		page = posts[:pageSize]
		last := page[len(page)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	dtos := make([]PostDTO, 0, len(page))
	for i := range page {
		dtos = append(dtos, *FromModel(&page[i]))
	}
	return &PostListResult{Posts: dtos, NextCursor: nextCursor}
}
