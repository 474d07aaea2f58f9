package wishes

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/quickwishapp/quickwish-backend/pkg/db/models"
	"github.com/quickwishapp/quickwish-backend/pkg/enums"
	pkgerrors "github.com/quickwishapp/quickwish-backend/pkg/errors"
	"github.com/quickwishapp/quickwish-backend/pkg/geo"
	"github.com/quickwishapp/quickwish-backend/pkg/outbox"
	"github.com/quickwishapp/quickwish-backend/pkg/outbox/payloads"
	"github.com/quickwishapp/quickwish-backend/pkg/pagination"
	"github.com/quickwishapp/quickwish-backend/pkg/types"
)

const (
	// defaultWishRadiusKM is the broadcast radius when the poster gives none.
	defaultWishRadiusKM = 5.0
	// maxNearbyRadiusKM caps how far an agent's wish search may reach.
	maxNearbyRadiusKM = 10.0
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Actor identifies who is calling into the service.
type Actor struct {
	UserID uuid.UUID
	Role   enums.UserRole
}

// CreateWishInput holds creation-time data for a new wish.
type CreateWishInput struct {
	Title        string
	Description  string
	Type         enums.WishType
	Remuneration decimal.Decimal
	Location     types.Location
	Destination  *types.Location
	RadiusKM     float64
	ImageURLs    []string
	Deadline     *time.Time
}

// UpdateWishInput carries optional edits to a pending wish.
type UpdateWishInput struct {
	Title        *string
	Description  *string
	Remuneration *decimal.Decimal
	Location     *types.Location
	Destination  *types.Location
	RadiusKM     *float64
	ImageURLs    []string
	Deadline     *time.Time
}

// NearbyWishesInput describes an agent's radius search.
type NearbyWishesInput struct {
	Lat      float64
	Lng      float64
	RadiusKM float64
	Type     *enums.WishType
}

// Service exposes wish lifecycle operations. Acceptance happens through the
// chat flow; from here wishes are posted, edited while pending, and closed.
type Service interface {
	CreateWish(ctx context.Context, userID uuid.UUID, input CreateWishInput) (*WishDTO, error)
	GetWish(ctx context.Context, wishID uuid.UUID) (*WishDTO, error)
	ListUserWishes(ctx context.Context, userID uuid.UUID, status *enums.WishStatus, params pagination.Params) (*WishListResult, error)
	NearbyWishes(ctx context.Context, agentID uuid.UUID, input NearbyWishesInput) ([]NearbyWishDTO, error)
	UpdateWish(ctx context.Context, actor Actor, wishID uuid.UUID, input UpdateWishInput) (*WishDTO, error)
	CancelWish(ctx context.Context, actor Actor, wishID uuid.UUID) (*WishDTO, error)
	CompleteWish(ctx context.Context, actor Actor, wishID uuid.UUID) (*WishDTO, error)
	DeleteWish(ctx context.Context, actor Actor, wishID uuid.UUID) error
}

type service struct {
	repo   Repository
	tx     txRunner
	outbox outboxPublisher
}

// NewService wires the wishes service with its dependencies.
func NewService(repo Repository, tx txRunner, publisher outboxPublisher) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("wishes repository is required")
	}
	if tx == nil {
		return nil, fmt.Errorf("tx runner is required")
	}
	if publisher == nil {
		return nil, fmt.Errorf("outbox publisher is required")
	}
	return &service{repo: repo, tx: tx, outbox: publisher}, nil
}

// CreateWish posts a new wish and announces it to nearby agents through the
// outbox.
func (s *service) CreateWish(ctx context.Context, userID uuid.UUID, input CreateWishInput) (*WishDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if err := validateCreateWish(input); err != nil {
		return nil, err
	}

	radius := input.RadiusKM
	if radius <= 0 {
		radius = defaultWishRadiusKM
	}

	wish := &models.Wish{
		UserID:       userID,
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		Type:         input.Type,
		Status:       enums.WishStatusPending,
		Remuneration: input.Remuneration,
		Location:     input.Location,
		Destination:  input.Destination,
		RadiusKM:     radius,
		ImageURLs:    pq.StringArray(append([]string(nil), input.ImageURLs...)),
		Deadline:     input.Deadline,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.Create(ctx, wish); err != nil {
			return err
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventWishCreated,
			AggregateType: enums.AggregateWish,
			AggregateID:   wish.ID,
			Actor:         &outbox.ActorRef{UserID: userID, Role: string(enums.UserRoleUser)},
			Data: payloads.WishCreatedEvent{
				WishID:       wish.ID,
				UserID:       userID,
				Type:         wish.Type,
				Title:        wish.Title,
				Remuneration: wish.Remuneration,
				RadiusKM:     wish.RadiusKM,
			},
		})
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create wish")
	}

	return FromModel(wish), nil
}

// GetWish returns a single wish. Wishes are visible to any signed-in user so
// agents can inspect them before asking to help.
func (s *service) GetWish(ctx context.Context, wishID uuid.UUID) (*WishDTO, error) {
	wish, err := s.loadWish(ctx, wishID)
	if err != nil {
		return nil, err
	}
	return FromModel(wish), nil
}

// ListUserWishes pages the caller's own wishes, newest first.
func (s *service) ListUserWishes(ctx context.Context, userID uuid.UUID, status *enums.WishStatus, params pagination.Params) (*WishListResult, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	rows, err := s.repo.List(ctx, ListWishesInput{UserID: &userID, Status: status, Pagination: params})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wishes")
	}
	return pageWishes(rows, params.Limit), nil
}

// NearbyWishes returns open wishes within the agent's search radius, closest
// first. The agent's own wishes are excluded.
func (s *service) NearbyWishes(ctx context.Context, agentID uuid.UUID, input NearbyWishesInput) ([]NearbyWishDTO, error) {
	if input.Lat < -90 || input.Lat > 90 || input.Lng < -180 || input.Lng > 180 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid coordinates")
	}

	radius := input.RadiusKM
	if radius <= 0 {
		radius = defaultWishRadiusKM
	}
	if radius > maxNearbyRadiusKM {
		radius = maxNearbyRadiusKM
	}

	wishes, err := s.repo.ListPending(ctx, input.Type)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pending wishes")
	}

	results := make([]NearbyWishDTO, 0, len(wishes))
	for i := range wishes {
		wish := &wishes[i]
		if wish.UserID == agentID {
			continue
		}
		distance := geo.DistanceKM(input.Lat, input.Lng, wish.Location.Lat, wish.Location.Lng)
		if distance > radius {
			continue
		}
		results = append(results, NearbyWishDTO{
			WishDTO:    *FromModel(wish),
			DistanceKM: geo.RoundKM(distance),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].DistanceKM < results[j].DistanceKM
	})
	return results, nil
}

// UpdateWish edits a wish. Only the owner (or an admin) may edit, and only
// while the wish is still pending.
func (s *service) UpdateWish(ctx context.Context, actor Actor, wishID uuid.UUID, input UpdateWishInput) (*WishDTO, error) {
	wish, err := s.loadWish(ctx, wishID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureOwner(actor, wish); err != nil {
		return nil, err
	}
	if wish.Status != enums.WishStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "only pending wishes can be edited")
	}

	if err := applyWishUpdate(wish, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, wish); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update wish")
	}
	return FromModel(wish), nil
}

// CancelWish withdraws a pending wish.
func (s *service) CancelWish(ctx context.Context, actor Actor, wishID uuid.UUID) (*WishDTO, error) {
	wish, err := s.loadWish(ctx, wishID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureOwner(actor, wish); err != nil {
		return nil, err
	}
	if wish.Status != enums.WishStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "only pending wishes can be cancelled")
	}

	if err := s.repo.UpdateStatus(ctx, wish.ID, enums.WishStatusCancelled); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel wish")
	}
	wish.Status = enums.WishStatusCancelled
	return FromModel(wish), nil
}

// CompleteWish closes the wish once the task is done. Allowed from any
// non-terminal status so a poster can settle in person even before the agent
// taps accept.
func (s *service) CompleteWish(ctx context.Context, actor Actor, wishID uuid.UUID) (*WishDTO, error) {
	wish, err := s.loadWish(ctx, wishID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureOwner(actor, wish); err != nil {
		return nil, err
	}
	if wish.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "wish is already closed")
	}

	if err := s.repo.UpdateStatus(ctx, wish.ID, enums.WishStatusCompleted); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "complete wish")
	}
	wish.Status = enums.WishStatusCompleted
	return FromModel(wish), nil
}

// DeleteWish removes the wish row. Blocked while an agent holds it so an
// accepted job cannot vanish out from under them.
func (s *service) DeleteWish(ctx context.Context, actor Actor, wishID uuid.UUID) error {
	wish, err := s.loadWish(ctx, wishID)
	if err != nil {
		return err
	}
	if err := s.ensureOwner(actor, wish); err != nil {
		return err
	}
	if wish.Status == enums.WishStatusAccepted || wish.Status == enums.WishStatusInProgress {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "an agent is working this wish")
	}

	if err := s.repo.Delete(ctx, wish.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete wish")
	}
	return nil
}

func (s *service) loadWish(ctx context.Context, wishID uuid.UUID) (*models.Wish, error) {
	wish, err := s.repo.FindByID(ctx, wishID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "wish not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wish")
	}
	return wish, nil
}

func (s *service) ensureOwner(actor Actor, wish *models.Wish) error {
	if actor.Role == enums.UserRoleAdmin || wish.UserID == actor.UserID {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeForbidden, "wish belongs to another user")
}

func applyWishUpdate(wish *models.Wish, input UpdateWishInput) error {
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "wish title cannot be empty")
		}
		wish.Title = title
	}
	if input.Description != nil {
		wish.Description = *input.Description
	}
	if input.Remuneration != nil {
		if input.Remuneration.LessThanOrEqual(decimal.Zero) {
			return pkgerrors.New(pkgerrors.CodeValidation, "remuneration must be positive")
		}
		wish.Remuneration = *input.Remuneration
	}
	if input.Location != nil {
		if err := validateCoordinates(*input.Location); err != nil {
			return err
		}
		wish.Location = *input.Location
	}
	if input.Destination != nil {
		if err := validateCoordinates(*input.Destination); err != nil {
			return err
		}
		wish.Destination = input.Destination
	}
	if input.RadiusKM != nil {
		if *input.RadiusKM <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "radius must be positive")
		}
		wish.RadiusKM = *input.RadiusKM
	}
	if input.ImageURLs != nil {
		wish.ImageURLs = pq.StringArray(append([]string(nil), input.ImageURLs...))
	}
	if input.Deadline != nil {
		wish.Deadline = input.Deadline
	}
	return nil
}

func validateCreateWish(input CreateWishInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "wish title is required")
	}
	if !input.Type.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown wish type %q", input.Type))
	}
	if input.Remuneration.LessThanOrEqual(decimal.Zero) {
		return pkgerrors.New(pkgerrors.CodeValidation, "remuneration must be positive")
	}
	if err := validateCoordinates(input.Location); err != nil {
		return err
	}
	if input.Destination != nil {
		return validateCoordinates(*input.Destination)
	}
	return nil
}

func validateCoordinates(loc types.Location) error {
	if loc.Lat < -90 || loc.Lat > 90 || loc.Lng < -180 || loc.Lng > 180 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid coordinates")
	}
	return nil
}

func pageWishes(rows []models.Wish, limit int) *WishListResult {
	pageSize := pagination.NormalizeLimit(limit)

	result := &WishListResult{}
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		last := rows[len(rows)-1]
		cursor := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		result.NextCursor = &cursor
	}

	result.Wishes = make([]WishDTO, 0, len(rows))
	for i := range rows {
		result.Wishes = append(result.Wishes, *FromModel(&rows[i]))
	}
	return result
}
