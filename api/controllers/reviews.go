package controllers

import (
	"net/http"

	"github.com/tijaralink/tijaralink-backend/api/responses"
	"github.com/tijaralink/tijaralink-backend/api/validators"
	"github.com/tijaralink/tijaralink-backend/internal/reviews"
	pkgerrors "github.com/tijaralink/tijaralink-backend/pkg/errors"
	"github.com/tijaralink/tijaralink-backend/pkg/logger"
)

func ReviewCreate(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return reviewWriteHandler(svc, logg, false)
}

// ReviewUpsert replaces an existing review in place or creates one.
func ReviewUpsert(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return reviewWriteHandler(svc, logg, true)
}

func reviewWriteHandler(svc reviews.Service, logg *logger.Logger, upsert bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reviews service unavailable"))
			return
		}

		orderID, err := validators.ParsePathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body reviews.CreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		companyID, role := actorFromRequest(r)
		input := reviews.WriteInput{
			OrderID:        orderID,
			ActorCompanyID: companyID,
			ActorRole:      role,
			Request:        body,
		}

		var result *reviews.ReviewDTO
		if upsert {
			result, err = svc.Upsert(r.Context(), input)
		} else {
			result, err = svc.Create(r.Context(), input)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status := http.StatusOK
		if !upsert {
			status = http.StatusCreated
		}
		responses.WriteSuccessStatus(w, status, result)
	}
}

func SupplierReviews(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reviews service unavailable"))
			return
		}

		companyID, err := validators.ParsePathUUID(r, "companyId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListBySupplier(r.Context(), companyID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
