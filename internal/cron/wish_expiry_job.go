package cron

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/quickwishapp/quickwish-backend/pkg/logger"
)

const defaultMaxPendingAge = 7 * 24 * time.Hour

// WishExpiryJobParams configure the wish expiry sweep.
type WishExpiryJobParams struct {
	Logger *logger.Logger
	Wishes wishExpiryRepo
	// MaxPendingAge bounds how long a pending wish without a deadline may
	// sit unaccepted before the sweep cancels it.
	MaxPendingAge time.Duration
}

type wishExpiryRepo interface {
	ExpirePending(ctx context.Context, cutoff time.Time) (int64, error)
	ExpireStale(ctx context.Context, olderThan time.Time) (int64, error)
}

// NewWishExpiryJob builds the job that cancels wishes nobody picked up.
func NewWishExpiryJob(params WishExpiryJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Wishes == nil {
		return nil, fmt.Errorf("wishes repository required")
	}
	maxPendingAge := params.MaxPendingAge
	if maxPendingAge <= 0 {
		maxPendingAge = defaultMaxPendingAge
	}
	return &wishExpiryJob{
		logg:          params.Logger,
		wishes:        params.Wishes,
		maxPendingAge: maxPendingAge,
		now:           time.Now,
	}, nil
}

type wishExpiryJob struct {
	logg          *logger.Logger
	wishes        wishExpiryRepo
	maxPendingAge time.Duration
	now           func() time.Time
}

func (j *wishExpiryJob) Name() string { return "wish-expiry" }

// Run executes both sweeps even when one fails so a broken query cannot
// starve the other cleanup path.
func (j *wishExpiryJob) Run(ctx context.Context) error {
	now := j.now().UTC()
	var errs []error

	overdue, err := j.wishes.ExpirePending(ctx, now)
	if err != nil {
		errs = append(errs, fmt.Errorf("expire overdue wishes: %w", err))
	}
	stale, err := j.wishes.ExpireStale(ctx, now.Add(-j.maxPendingAge))
	if err != nil {
		errs = append(errs, fmt.Errorf("expire stale wishes: %w", err))
	}
	if combined := multierr.Combine(errs...); combined != nil {
		return combined
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"overdue_cancelled": overdue,
		"stale_cancelled":   stale,
		"max_pending_age":   j.maxPendingAge.String(),
	})
	j.logg.Info(logCtx, "wish expiry sweep complete")
	return nil
}
