package controllers

import (
	"fmt"
	"net/http"

	"go.uber.org/multierr"

	"github.com/tijaralink/tijaralink-backend/api/responses"
	"github.com/tijaralink/tijaralink-backend/pkg/config"
	"github.com/tijaralink/tijaralink-backend/pkg/db"
	pkgerrors "github.com/tijaralink/tijaralink-backend/pkg/errors"
	"github.com/tijaralink/tijaralink-backend/pkg/logger"
	pkgredis "github.com/tijaralink/tijaralink-backend/pkg/redis"
)

const envHeader = "X-TijaraLink-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every hard dependency and reports 503 with the
// combined failure list when any of them is down.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP pkgredis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		var errs error
		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("database: %w", err))
			}
		}
		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("redis: %w", err))
			}
		}

		if errs != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "readiness check failed"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
