package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/minhvodev/eatzy-gateway/api/responses"
	"github.com/minhvodev/eatzy-gateway/pkg/config"
	"github.com/minhvodev/eatzy-gateway/pkg/logger"
)

const readyCheckTimeout = 2 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Eatzy-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies the gateway's hard dependencies. The cache is
// reported but never fails readiness: the gateway degrades without it.
func HealthReady(cfg *config.Config, logg *logger.Logger, backendP, cacheP pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Eatzy-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
		defer cancel()

		status := map[string]string{"backend": "ok", "cache": "ok"}
		ready := true

		if backendP == nil {
			status["backend"] = "unconfigured"
			ready = false
		} else if err := backendP.Ping(ctx); err != nil {
			status["backend"] = "unreachable"
			ready = false
			if logg != nil {
				logg.Warn(logg.WithField(ctx, "error", err.Error()), "readiness: backend unreachable")
			}
		}

		if cacheP == nil {
			status["cache"] = "disabled"
		} else if err := cacheP.Ping(ctx); err != nil {
			status["cache"] = "unreachable"
			if logg != nil {
				logg.Warn(logg.WithField(ctx, "error", err.Error()), "readiness: cache unreachable")
			}
		}

		if !ready {
			responses.WriteSuccessStatus(w, http.StatusServiceUnavailable, status)
			return
		}
		responses.WriteSuccess(w, status)
	}
}
