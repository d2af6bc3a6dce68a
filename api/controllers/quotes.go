package controllers

import (
	"net/http"

	"github.com/tijaralink/tijaralink-backend/api/responses"
	"github.com/tijaralink/tijaralink-backend/api/validators"
	"github.com/tijaralink/tijaralink-backend/internal/quotes"
	pkgerrors "github.com/tijaralink/tijaralink-backend/pkg/errors"
	"github.com/tijaralink/tijaralink-backend/pkg/logger"
)

func QuoteCreate(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quotes service unavailable"))
			return
		}

		var body quotes.CreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		companyID, _ := actorFromRequest(r)
		result, err := svc.Create(r.Context(), companyID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

func QuotesByRfq(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quotes service unavailable"))
			return
		}

		rfqID, err := validators.ParsePathUUID(r, "rfqId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListByRfq(r.Context(), rfqID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func QuoteAccept(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quotes service unavailable"))
			return
		}

		quoteID, err := validators.ParsePathUUID(r, "quoteId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		companyID, role := actorFromRequest(r)
		result, err := svc.Accept(r.Context(), quotes.AcceptInput{
			QuoteID:        quoteID,
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
