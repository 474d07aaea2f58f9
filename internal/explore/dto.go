package explore

import (
	"time"

	"github.com/google/uuid"

	"github.com/quickwishapp/quickwish-backend/pkg/db/models"
	"github.com/quickwishapp/quickwish-backend/pkg/types"
)

// PostDTO is the transport shape of a community feed entry.
type PostDTO struct {
	ID         uuid.UUID      `json:"id"`
	AuthorID   uuid.UUID      `json:"author_id"`
	AuthorName string         `json:"author_name"`
	Title      string         `json:"title"`
	Body       string         `json:"body,omitempty"`
	Category   string         `json:"category,omitempty"`
	ImageURLs  []string       `json:"image_urls,omitempty"`
	Location   types.Location `json:"location"`
	LikeCount  int            `json:"like_count"`
	CreatedAt  time.Time      `json:"created_at"`
}

// PostListResult is one feed page plus the cursor for the next one.
type PostListResult struct {
	Posts      []PostDTO `json:"posts"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// LikeResult reports the post's counter after a like.
type LikeResult struct {
	PostID    uuid.UUID `json:"post_id"`
	LikeCount int       `json:"like_count"`
}

func FromModel(m *models.ExplorePost) *PostDTO {
	if m == nil {
		return nil
	}

	return &PostDTO{
		ID:         m.ID,
		AuthorID:   m.AuthorID,
		AuthorName: m.AuthorName,
		Title:      m.Title,
		Body:       m.Body,
		Category:   m.Category,
		ImageURLs:  m.ImageURLs,
		Location:   m.Location,
		LikeCount:  m.LikeCount,
		CreatedAt:  m.CreatedAt,
	}
}
