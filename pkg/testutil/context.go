package testutil

import (
	"net/http"

	"janseva/internal/jwttoken"
	"janseva/internal/platform/middleware"
	id "janseva/pkg/domain"
	"janseva/pkg/requestcontext"
)

// AsCitizen stamps the request context the way the auth middleware would for
// an authenticated citizen, so handler tests can bypass token issuance.
func AsCitizen(req *http.Request, citizenID id.CitizenID, name string) *http.Request {
	ctx := requestcontext.WithCitizenID(req.Context(), citizenID)
	if name != "" {
		ctx = requestcontext.WithActor(ctx, name)
	}
	ctx = middleware.WithRole(ctx, jwttoken.RoleCitizen)
	return req.WithContext(ctx)
}

// AsOfficer stamps the request context for an officer actor.
func AsOfficer(req *http.Request, name string) *http.Request {
	ctx := requestcontext.WithActor(req.Context(), name)
	ctx = middleware.WithRole(ctx, jwttoken.RoleOfficer)
	return req.WithContext(ctx)
}
