package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mpcbarbosa/SeniorCare/internal/api/middleware"
	"github.com/mpcbarbosa/SeniorCare/internal/model"
	"github.com/mpcbarbosa/SeniorCare/pkg/jwt"
	"github.com/mpcbarbosa/SeniorCare/pkg/response"
)

// MustGetIdentity extracts the caller stored by the identity middleware.
// It writes a 401 and returns false when none is present; callers return
// immediately in that case.
func MustGetIdentity(c *gin.Context) (model.Identity, bool) {
	v, exists := c.Get(middleware.IdentityKey)
	if !exists {
		response.Unauthorized(c, response.CodeUnauthorized, "not authenticated")
		return model.Identity{}, false
	}
	id, ok := v.(model.Identity)
	if !ok || id.SubjectID == "" {
		response.Unauthorized(c, response.CodeUnauthorized, "not authenticated")
		return model.Identity{}, false
	}
	return id, true
}

// MustGetUserID returns the subject id of a senior user.
func MustGetUserID(c *gin.Context) (string, bool) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return "", false
	}
	if !id.IsUser() {
		response.Forbidden(c, response.CodeForbidden, "user account required")
		return "", false
	}
	return id.SubjectID, true
}

// MustGetCaregiverID returns the subject id of a caregiver.
func MustGetCaregiverID(c *gin.Context) (string, bool) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return "", false
	}
	if !id.IsCaregiver() {
		response.Forbidden(c, response.CodeForbidden, "caregiver account required")
		return "", false
	}
	return id.SubjectID, true
}

// MustGetClaims returns the parsed access token, used by logout.
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(middleware.ClaimsKey)
	if !exists {
		response.Unauthorized(c, response.CodeUnauthorized, "not authenticated")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok {
		response.Unauthorized(c, response.CodeUnauthorized, "not authenticated")
		return nil, false
	}
	return claims, true
}

// bindError answers a binding failure with the module's validation code.
func bindError(c *gin.Context, code int, err error) {
	response.ErrorWithDetails(c, http.StatusBadRequest, code, "invalid request parameters", err.Error())
}
