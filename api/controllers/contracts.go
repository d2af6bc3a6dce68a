package controllers

import (
	"net/http"

	"github.com/tijaralink/tijaralink-backend/api/responses"
	"github.com/tijaralink/tijaralink-backend/api/validators"
	"github.com/tijaralink/tijaralink-backend/internal/contracts"
	pkgerrors "github.com/tijaralink/tijaralink-backend/pkg/errors"
	"github.com/tijaralink/tijaralink-backend/pkg/logger"
)

func ContractCreate(svc contracts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contracts service unavailable"))
			return
		}

		orderID, err := validators.ParsePathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body contracts.CreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		companyID, role := actorFromRequest(r)
		result, err := svc.CreateForOrder(r.Context(), contracts.CreateInput{
			OrderID:        orderID,
			ActorCompanyID: companyID,
			ActorRole:      role,
			Terms:          body.Terms,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

func ContractSign(svc contracts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contracts service unavailable"))
			return
		}

		contractID, err := validators.ParsePathUUID(r, "contractId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body contracts.SignRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		companyID, role := actorFromRequest(r)
		result, err := svc.Sign(r.Context(), contracts.SignInput{
			ContractID:     contractID,
			ActorCompanyID: companyID,
			ActorRole:      role,
			Role:           body.Role,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
