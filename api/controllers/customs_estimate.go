package controllers

import (
	"net/http"

	"github.com/tijaralink/tijaralink-backend/api/responses"
	"github.com/tijaralink/tijaralink-backend/api/validators"
	"github.com/tijaralink/tijaralink-backend/internal/customs"
	pkgerrors "github.com/tijaralink/tijaralink-backend/pkg/errors"
	"github.com/tijaralink/tijaralink-backend/pkg/logger"
)

// CustomsEstimate serves the public landed-cost calculator.
func CustomsEstimate(svc customs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customs estimator unavailable"))
			return
		}

		var body customs.EstimateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, svc.Estimate(r.Context(), body))
	}
}
