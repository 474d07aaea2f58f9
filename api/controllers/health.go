package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/quickwishapp/quickwish-backend/api/responses"
	"github.com/quickwishapp/quickwish-backend/pkg/config"
	pkgerrors "github.com/quickwishapp/quickwish-backend/pkg/errors"
	"github.com/quickwishapp/quickwish-backend/pkg/logger"
)

const readinessTimeout = 2 * time.Second

type dependencyPinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-QuickWish-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the backing stores so the platform stops routing traffic
// here when Postgres or Redis is down. A nil dependency counts as not ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, postgres, cache dependencyPinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := map[string]string{
			"postgres": pingCheck(ctx, postgres),
			"redis":    pingCheck(ctx, cache),
		}

		w.Header().Set("X-QuickWish-Env", cfg.App.Env)
		for _, status := range checks {
			if status != "ok" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "dependencies unavailable").WithDetails(checks))
				return
			}
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}

func pingCheck(ctx context.Context, dep dependencyPinger) string {
	if dep == nil {
		return "not configured"
	}
	if err := dep.Ping(ctx); err != nil {
		return err.Error()
	}
	return "ok"
}
