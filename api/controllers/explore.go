package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/quickwishapp/quickwish-backend/api/middleware"
	"github.com/quickwishapp/quickwish-backend/api/responses"
	"github.com/quickwishapp/quickwish-backend/api/validators"
	"github.com/quickwishapp/quickwish-backend/internal/explore"
	pkgerrors "github.com/quickwishapp/quickwish-backend/pkg/errors"
	"github.com/quickwishapp/quickwish-backend/pkg/logger"
	"github.com/quickwishapp/quickwish-backend/pkg/pagination"
	"github.com/quickwishapp/quickwish-backend/pkg/types"
)

// ExplorePosts returns the community feed, newest first.
func ExplorePosts(svc explore.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "explore service unavailable"))
			return
		}

		input := explore.ListPostsInput{}
		if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
			input.Category = &raw
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input.Pagination = pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		result, err := svc.ListPosts(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

type createPostRequest struct {
	Title     string          `json:"title" validate:"required,min=3,max=200"`
	Body      string          `json:"body" validate:"required,max=5000"`
	Category  string          `json:"category" validate:"required"`
	ImageURLs []string        `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
	Location  *types.Location `json:"location,omitempty"`
}

func (req createPostRequest) toInput() explore.CreatePostInput {
	return explore.CreatePostInput{
		Title:     req.Title,
		Body:      req.Body,
		Category:  req.Category,
		ImageURLs: req.ImageURLs,
		Location:  req.Location,
	}
}

// ExplorePostCreate publishes a post to the community feed.
func ExplorePostCreate(svc explore.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "explore service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		uid, err := uuid.Parse(userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
			return
		}

		var body createPostRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		post, err := svc.CreatePost(r.Context(), uid, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, post)
	}
}

// ExplorePostLike bumps a post's like counter.
func ExplorePostLike(svc explore.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "explore service unavailable"))
			return
		}

		postID, err := uuid.Parse(strings.TrimSpace(chi.URLParam(r, "postId")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid post id"))
			return
		}

		result, err := svc.LikePost(r.Context(), postID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
