package usecase

import (
	"context"
	"testing"

	"reviewhub/internal/data/entity"
	"reviewhub/internal/data/repository"
	"reviewhub/internal/dto/request"
	"reviewhub/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReviewFixture(t *testing.T) (ReviewService, *repository.Repository, *entity.Title) {
	t.Helper()
	repo := newTestRepo()
	service := NewReviewService(repo, testLogger())
	title := seedTitle(repo, "Dune", 2021)
	return service, repo, title
}

func TestCreateReview(t *testing.T) {
	service, repo, title := newReviewFixture(t)
	author := seedUser(repo, "jane", entity.RoleUser)

	resp, err := service.CreateReview(context.Background(), identityFor(author), title.ID.String(),
		&request.CreateReviewRequest{Score: 8, Text: "Vast and patient."})
	require.NoError(t, err)
	assert.Equal(t, 8, resp.Score)
	assert.Equal(t, "jane", resp.Author)
	assert.Equal(t, title.ID.String(), resp.TitleID)
}

func TestCreateReviewRequiresAuth(t *testing.T) {
	service, _, title := newReviewFixture(t)

	_, err := service.CreateReview(context.Background(), Identity{}, title.ID.String(),
		&request.CreateReviewRequest{Score: 8, Text: "x"})
	var permErr *utils.PermissionError
	assert.ErrorAs(t, err, &permErr)
}

func TestCreateReviewScoreBounds(t *testing.T) {
	service, repo, title := newReviewFixture(t)
	author := seedUser(repo, "jane", entity.RoleUser)

	// Zero is reported as out of range, not as a missing field.
	for _, tc := range []struct {
		score int
		want  string
	}{
		{0, "must be at least 1"},
		{-1, "must be at least 1"},
		{11, "must be at most 10"},
	} {
		_, err := service.CreateReview(context.Background(), identityFor(author), title.ID.String(),
			&request.CreateReviewRequest{Score: tc.score, Text: "x"})
		var validationErr *utils.ValidationError
		require.ErrorAs(t, err, &validationErr, "score %d", tc.score)
		assert.Equal(t, tc.want, validationErr.Fields["score"], "score %d", tc.score)
	}
}

func TestCreateReviewOncePerAuthorAndTitle(t *testing.T) {
	service, repo, title := newReviewFixture(t)
	author := seedUser(repo, "jane", entity.RoleUser)
	ctx := context.Background()

	_, err := service.CreateReview(ctx, identityFor(author), title.ID.String(),
		&request.CreateReviewRequest{Score: 8, Text: "first"})
	require.NoError(t, err)

	_, err = service.CreateReview(ctx, identityFor(author), title.ID.String(),
		&request.CreateReviewRequest{Score: 3, Text: "changed my mind"})
	var validationErr *utils.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields["title"], "already reviewed")

	// A different author reviews the same title freely.
	other := seedUser(repo, "joe", entity.RoleUser)
	_, err = service.CreateReview(ctx, identityFor(other), title.ID.String(),
		&request.CreateReviewRequest{Score: 5, Text: "fine"})
	assert.NoError(t, err)
}

func TestCreateReviewMissingTitle(t *testing.T) {
	service, repo, _ := newReviewFixture(t)
	author := seedUser(repo, "jane", entity.RoleUser)

	_, err := service.CreateReview(context.Background(), identityFor(author), uuid.NewString(),
		&request.CreateReviewRequest{Score: 8, Text: "x"})
	assert.True(t, utils.IsNotFound(err))

	// A malformed id is indistinguishable from a missing title.
	_, err = service.CreateReview(context.Background(), identityFor(author), "not-a-uuid",
		&request.CreateReviewRequest{Score: 8, Text: "x"})
	assert.True(t, utils.IsNotFound(err))
}

func TestUpdateReviewPermissions(t *testing.T) {
	service, repo, title := newReviewFixture(t)
	author := seedUser(repo, "jane", entity.RoleUser)
	other := seedUser(repo, "joe", entity.RoleUser)
	moderator := seedUser(repo, "mod", entity.RoleModerator)
	ctx := context.Background()

	created, err := service.CreateReview(ctx, identityFor(author), title.ID.String(),
		&request.CreateReviewRequest{Score: 8, Text: "first"})
	require.NoError(t, err)

	newScore := 4
	_, err = service.UpdateReview(ctx, identityFor(other), title.ID.String(), created.ID,
		&request.UpdateReviewRequest{Score: &newScore})
	var permErr *utils.PermissionError
	assert.ErrorAs(t, err, &permErr)

	resp, err := service.UpdateReview(ctx, identityFor(moderator), title.ID.String(), created.ID,
		&request.UpdateReviewRequest{Score: &newScore})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Score)

	newText := "on reflection"
	resp, err = service.UpdateReview(ctx, identityFor(author), title.ID.String(), created.ID,
		&request.UpdateReviewRequest{Text: &newText})
	require.NoError(t, err)
	assert.Equal(t, "on reflection", resp.Text)
}

func TestDeleteReviewPermissions(t *testing.T) {
	service, repo, title := newReviewFixture(t)
	author := seedUser(repo, "jane", entity.RoleUser)
	other := seedUser(repo, "joe", entity.RoleUser)
	ctx := context.Background()

	created, err := service.CreateReview(ctx, identityFor(author), title.ID.String(),
		&request.CreateReviewRequest{Score: 8, Text: "first"})
	require.NoError(t, err)

	err = service.DeleteReview(ctx, identityFor(other), title.ID.String(), created.ID)
	var permErr *utils.PermissionError
	assert.ErrorAs(t, err, &permErr)

	err = service.DeleteReview(ctx, identityFor(author), title.ID.String(), created.ID)
	require.NoError(t, err)

	_, err = service.GetReview(ctx, title.ID.String(), created.ID)
	assert.True(t, utils.IsNotFound(err))
}

func TestGetReviewWrongParent(t *testing.T) {
	service, repo, title := newReviewFixture(t)
	author := seedUser(repo, "jane", entity.RoleUser)
	otherTitle := seedTitle(repo, "Arrival", 2016)
	ctx := context.Background()

	created, err := service.CreateReview(ctx, identityFor(author), title.ID.String(),
		&request.CreateReviewRequest{Score: 8, Text: "x"})
	require.NoError(t, err)

	// The review exists, just not under this title.
	_, err = service.GetReview(ctx, otherTitle.ID.String(), created.ID)
	assert.True(t, utils.IsNotFound(err))
}

func TestListReviews(t *testing.T) {
	service, repo, title := newReviewFixture(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		author := seedUser(repo, name, entity.RoleUser)
		_, err := service.CreateReview(ctx, identityFor(author), title.ID.String(),
			&request.CreateReviewRequest{Score: 7, Text: name})
		require.NoError(t, err)
	}

	resp, err := service.ListReviews(ctx, title.ID.String(), &request.PaginatedRequest{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Pagination.Total)
	assert.Len(t, resp.Data, 2)

	_, err = service.ListReviews(ctx, uuid.NewString(), &request.PaginatedRequest{Page: 1, PerPage: 10})
	assert.True(t, utils.IsNotFound(err))
}
