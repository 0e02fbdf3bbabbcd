package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
)

var errNoOrganization = errors.New("token carries no organization_id claim")

// organizationIDFromRequest reads the tenant out of the verified JWT. Every
// authenticated route is scoped to this organization.
func organizationIDFromRequest(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", err
	}
	organizationID, ok := claims["organization_id"].(string)
	if !ok || organizationID == "" {
		return "", errNoOrganization
	}
	return organizationID, nil
}

// userIDFromRequest reads the acting user, when present, for audit fields.
func userIDFromRequest(r *http.Request) *string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return nil
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil
	}
	return &userID
}
