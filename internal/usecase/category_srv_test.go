package usecase

import (
	"context"
	"testing"

	"reviewhub/internal/data/entity"
	"reviewhub/internal/dto/request"
	"reviewhub/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryLifecycle(t *testing.T) {
	repo := newTestRepo()
	service := NewCategoryService(repo, testLogger())
	admin := identityFor(seedUser(repo, "root", entity.RoleAdmin))
	ctx := context.Background()

	resp, err := service.CreateCategory(ctx, admin, &request.CreateCategoryRequest{
		Name: "Movies", Slug: "movies",
	})
	require.NoError(t, err)
	assert.Equal(t, "movies", resp.Slug)

	// Slug collisions come back as a field error.
	_, err = service.CreateCategory(ctx, admin, &request.CreateCategoryRequest{
		Name: "Films", Slug: "movies",
	})
	var validationErr *utils.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "slug")

	// Anyone can list.
	list, err := service.ListCategories(ctx, "", &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Pagination.Total)

	require.NoError(t, service.DeleteCategory(ctx, admin, "movies"))
	err = service.DeleteCategory(ctx, admin, "movies")
	assert.True(t, utils.IsNotFound(err))
}

func TestCategoryWritesRequireAdmin(t *testing.T) {
	repo := newTestRepo()
	service := NewCategoryService(repo, testLogger())
	user := identityFor(seedUser(repo, "jane", entity.RoleUser))

	var permErr *utils.PermissionError
	_, err := service.CreateCategory(context.Background(), user, &request.CreateCategoryRequest{
		Name: "Movies", Slug: "movies",
	})
	assert.ErrorAs(t, err, &permErr)

	err = service.DeleteCategory(context.Background(), user, "movies")
	assert.ErrorAs(t, err, &permErr)
}

func TestGenreLifecycle(t *testing.T) {
	repo := newTestRepo()
	service := NewGenreService(repo, testLogger())
	admin := identityFor(seedUser(repo, "root", entity.RoleAdmin))
	ctx := context.Background()

	resp, err := service.CreateGenre(ctx, admin, &request.CreateGenreRequest{
		Name: "Drama", Slug: "drama",
	})
	require.NoError(t, err)
	assert.Equal(t, "drama", resp.Slug)

	_, err = service.CreateGenre(ctx, admin, &request.CreateGenreRequest{
		Name: "Dramatic", Slug: "drama",
	})
	var validationErr *utils.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "slug")

	list, err := service.ListGenres(ctx, "dra", &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Pagination.Total)

	require.NoError(t, service.DeleteGenre(ctx, admin, "drama"))
	err = service.DeleteGenre(ctx, admin, "drama")
	assert.True(t, utils.IsNotFound(err))
}
