package usecase

import (
	"net/http"
	"testing"

	"reviewhub/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIsAdmin(t *testing.T) {
	tests := []struct {
		name     string
		identity Identity
		want     bool
	}{
		{"anonymous", Identity{}, false},
		{"user", Identity{Role: entity.RoleUser, Authenticated: true}, false},
		{"moderator", Identity{Role: entity.RoleModerator, Authenticated: true}, false},
		{"admin", Identity{Role: entity.RoleAdmin, Authenticated: true}, true},
		{"forged unauthenticated admin", Identity{Role: entity.RoleAdmin}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAdmin(tt.identity))
		})
	}
}

func TestIsAdminOrReadOnly(t *testing.T) {
	admin := Identity{Role: entity.RoleAdmin, Authenticated: true}
	user := Identity{Role: entity.RoleUser, Authenticated: true}

	assert.True(t, IsAdminOrReadOnly(Identity{}, http.MethodGet))
	assert.True(t, IsAdminOrReadOnly(user, http.MethodGet))
	assert.True(t, IsAdminOrReadOnly(admin, http.MethodPost))
	assert.False(t, IsAdminOrReadOnly(user, http.MethodPost))
	assert.False(t, IsAdminOrReadOnly(Identity{}, http.MethodDelete))
}

func TestCanSubmit(t *testing.T) {
	user := Identity{Role: entity.RoleUser, Authenticated: true}

	assert.True(t, CanSubmit(Identity{}, http.MethodGet))
	assert.True(t, CanSubmit(user, http.MethodPost))
	assert.False(t, CanSubmit(Identity{}, http.MethodPost))
}

func TestIsAdminModeratorAuthorOrReadOnly(t *testing.T) {
	authorID := uuid.New()
	author := Identity{ID: authorID, Role: entity.RoleUser, Authenticated: true}
	other := Identity{ID: uuid.New(), Role: entity.RoleUser, Authenticated: true}
	moderator := Identity{ID: uuid.New(), Role: entity.RoleModerator, Authenticated: true}
	admin := Identity{ID: uuid.New(), Role: entity.RoleAdmin, Authenticated: true}

	// Safe methods never need a matching author.
	assert.True(t, IsAdminModeratorAuthorOrReadOnly(Identity{}, http.MethodGet, authorID))

	assert.True(t, IsAdminModeratorAuthorOrReadOnly(author, http.MethodPatch, authorID))
	assert.True(t, IsAdminModeratorAuthorOrReadOnly(moderator, http.MethodDelete, authorID))
	assert.True(t, IsAdminModeratorAuthorOrReadOnly(admin, http.MethodDelete, authorID))

	assert.False(t, IsAdminModeratorAuthorOrReadOnly(other, http.MethodPatch, authorID))
	assert.False(t, IsAdminModeratorAuthorOrReadOnly(Identity{}, http.MethodDelete, authorID))
}
