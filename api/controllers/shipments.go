package controllers

import (
	"net/http"

	"github.com/tijaralink/tijaralink-backend/api/responses"
	"github.com/tijaralink/tijaralink-backend/api/validators"
	"github.com/tijaralink/tijaralink-backend/internal/shipments"
	pkgerrors "github.com/tijaralink/tijaralink-backend/pkg/errors"
	"github.com/tijaralink/tijaralink-backend/pkg/logger"
)

func ShipmentCreate(svc shipments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipments service unavailable"))
			return
		}

		orderID, err := validators.ParsePathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body shipments.CreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// tracking_number is a legacy alias for tracking.
		tracking := body.Tracking
		if tracking == nil {
			tracking = body.TrackingNumber
		}

		companyID, role := actorFromRequest(r)
		result, err := svc.Create(r.Context(), shipments.CreateInput{
			OrderID:        orderID,
			ActorCompanyID: companyID,
			ActorRole:      role,
			Mode:           body.Mode,
			Tracking:       tracking,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

func ShipmentList(svc shipments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipments service unavailable"))
			return
		}

		orderID, err := validators.ParsePathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		companyID, role := actorFromRequest(r)
		result, err := svc.ListByOrder(r.Context(), orderID, companyID, role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func ShipmentStatus(svc shipments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipments service unavailable"))
			return
		}

		shipmentID, err := validators.ParsePathUUID(r, "shipmentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body shipments.StatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		companyID, role := actorFromRequest(r)
		result, err := svc.SetStatus(r.Context(), shipments.StatusInput{
			ShipmentID:     shipmentID,
			ActorCompanyID: companyID,
			ActorRole:      role,
			Status:         body.Status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func CustomsAttach(svc shipments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipments service unavailable"))
			return
		}

		shipmentID, err := validators.ParsePathUUID(r, "shipmentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body shipments.CustomsCreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		companyID, role := actorFromRequest(r)
		result, err := svc.AttachCustoms(r.Context(), shipments.CustomsInput{
			ShipmentID:     shipmentID,
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

func CustomsStatus(svc shipments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipments service unavailable"))
			return
		}

		customsID, err := validators.ParsePathUUID(r, "customsId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body shipments.StatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		companyID, role := actorFromRequest(r)
		result, err := svc.SetCustomsStatus(r.Context(), shipments.CustomsStatusInput{
			CustomsID:      customsID,
			ActorCompanyID: companyID,
			ActorRole:      role,
			Status:         body.Status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
