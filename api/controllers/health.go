package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/bfb-software/foodconnect-backend/api/responses"
	"github.com/bfb-software/foodconnect-backend/pkg/config"
	pkgerrors "github.com/bfb-software/foodconnect-backend/pkg/errors"
	"github.com/bfb-software/foodconnect-backend/pkg/logger"
)

const readyCheckTimeout = 2 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-FoodConnect-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when the relational store and Redis both
// answer a ping within the check timeout.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-FoodConnect-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
		defer cancel()

		checks := map[string]string{}
		for name, dep := range deps {
			if dep == nil {
				checks[name] = "unconfigured"
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				checks[name] = "down"
				err = pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable")
				responses.WriteError(ctx, logg, w, err)
				return
			}
			checks[name] = "up"
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}

// ReadyDeps assembles the named dependency set for HealthReady.
func ReadyDeps(dbP, redisP pinger) map[string]pinger {
	return map[string]pinger{
		"database": dbP,
		"redis":    redisP,
	}
}
