package usecase

import (
	"context"
	"net/http"

	"reviewhub/internal/data/entity"
	"reviewhub/pkg/utils"

	"github.com/google/uuid"
)

// Identity is the requesting user as seen by the permission predicates.
// The zero value is an anonymous requester.
type Identity struct {
	ID            uuid.UUID
	Username      string
	Role          entity.Role
	Authenticated bool
}

// IdentityFromContext rebuilds the identity placed in the request context by
// the auth middleware.
func IdentityFromContext(ctx context.Context) Identity {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return Identity{}
	}

	username, _ := utils.GetUsernameFromContext(ctx)
	role, _ := utils.GetRoleFromContext(ctx)

	return Identity{
		ID:            userID,
		Username:      username,
		Role:          entity.Role(role),
		Authenticated: true,
	}
}

// isSafeMethod reports whether method does not mutate state.
func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// IsAdmin grants access to authenticated admins only.
func IsAdmin(identity Identity) bool {
	return identity.Authenticated && identity.Role == entity.RoleAdmin
}

// IsAdminOrReadOnly grants safe methods to anyone and unsafe methods to
// admins.
func IsAdminOrReadOnly(identity Identity, method string) bool {
	return isSafeMethod(method) || IsAdmin(identity)
}

// CanSubmit grants safe methods to anyone and unsafe methods to any
// authenticated user. It is the request-level half of
// IsAdminModeratorAuthorOrReadOnly.
func CanSubmit(identity Identity, method string) bool {
	return isSafeMethod(method) || identity.Authenticated
}

// IsAdminModeratorAuthorOrReadOnly is the object-level rule for reviews and
// comments: safe methods pass, mutation requires the requester to own the
// object or hold the moderator or admin role.
func IsAdminModeratorAuthorOrReadOnly(identity Identity, method string, authorID uuid.UUID) bool {
	if isSafeMethod(method) {
		return true
	}
	if !identity.Authenticated {
		return false
	}
	if identity.ID == authorID {
		return true
	}
	return identity.Role == entity.RoleModerator || identity.Role == entity.RoleAdmin
}
