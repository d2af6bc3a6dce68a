package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/tijaralink/tijaralink-backend/api/middleware"
	"github.com/tijaralink/tijaralink-backend/pkg/enums"
)

// actorFromRequest reads the authenticated identity out of the request
// context. A missing or malformed company id comes back as uuid.Nil and
// is rejected by the service layer.
func actorFromRequest(r *http.Request) (uuid.UUID, enums.UserRole) {
	companyID, err := uuid.Parse(middleware.CompanyIDFromContext(r.Context()))
	if err != nil {
		companyID = uuid.Nil
	}
	role, err := enums.ParseUserRole(middleware.RoleFromContext(r.Context()))
	if err != nil {
		role = ""
	}
	return companyID, role
}
