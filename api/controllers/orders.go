package controllers

import (
	"net/http"

	"github.com/tijaralink/tijaralink-backend/api/responses"
	"github.com/tijaralink/tijaralink-backend/api/validators"
	"github.com/tijaralink/tijaralink-backend/internal/orders"
	pkgerrors "github.com/tijaralink/tijaralink-backend/pkg/errors"
	"github.com/tijaralink/tijaralink-backend/pkg/logger"
)

func OrderCreate(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		var body orders.CreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		companyID, role := actorFromRequest(r)
		result, err := svc.Create(r.Context(), orders.CreateInput{
			ActorCompanyID: companyID,
			ActorRole:      role,
			Request:        body,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

func OrderList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		companyID, role := actorFromRequest(r)
		result, err := svc.List(r.Context(), companyID, role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func OrderDetail(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := validators.ParsePathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		companyID, role := actorFromRequest(r)
		result, err := svc.Get(r.Context(), orders.AccessInput{
			OrderID:        orderID,
			ActorCompanyID: companyID,
			ActorRole:      role,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func EscrowRelease(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := validators.ParsePathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		companyID, role := actorFromRequest(r)
		result, err := svc.ReleaseEscrow(r.Context(), orders.AccessInput{
			OrderID:        orderID,
			ActorCompanyID: companyID,
			ActorRole:      role,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
