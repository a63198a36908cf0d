package http

import (
	"net/http"

	mw "github.com/lorrc/helpdesk-backend/internal/adapters/primary/http/middleware"
	"github.com/lorrc/helpdesk-backend/internal/auth"
	"github.com/lorrc/helpdesk-backend/internal/core/domain"
	apperrors "github.com/lorrc/helpdesk-backend/internal/core/errors"
)

// requireClaims extracts the authenticated claims or writes a 401.
func requireClaims(w http.ResponseWriter, r *http.Request, eh *ErrorHandler) (*auth.Claims, bool) {
	claims, ok := mw.GetClaims(r.Context())
	if !ok {
		eh.Handle(w, r, apperrors.ErrUnauthorized)
		return nil, false
	}
	return claims, true
}

// actorFromClaims builds the acting principal the services authorize
// against. Identity and role come from the verified token.
func actorFromClaims(claims *auth.Claims) *domain.User {
	return &domain.User{
		ID:   claims.UserID,
		Role: claims.Role,
	}
}
