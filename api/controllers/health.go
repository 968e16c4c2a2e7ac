package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/neonclouds/neonclouds-backend/api/responses"
	"github.com/neonclouds/neonclouds-backend/pkg/config"
	pkgerrors "github.com/neonclouds/neonclouds-backend/pkg/errors"
	"github.com/neonclouds/neonclouds-backend/pkg/logger"
)

type redisPinger interface {
	Ping(context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-NeonClouds-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness. Redis is the only external service
// the API leans on, and only when rate limiting is configured, so a
// nil client is reported as skipped rather than failing the check.
func HealthReady(cfg *config.Config, logg *logger.Logger, redisClient redisPinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-NeonClouds-Env", cfg.App.Env)

		checks := map[string]string{"redis": "skipped", "gemini": "not_configured"}
		if cfg.Gemini.Enabled() {
			checks["gemini"] = "configured"
		}
		if redisClient != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := redisClient.Ping(ctx); err != nil {
				checks["redis"] = "down"
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable").WithDetails(checks))
				return
			}
			checks["redis"] = "up"
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
