package usecase

import (
	"context"
	"testing"
	"time"

	"reviewhub/internal/data/entity"
	"reviewhub/internal/data/repository"
	"reviewhub/internal/dto/request"
	"reviewhub/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommentFixture(t *testing.T) (CommentService, *repository.Repository, *entity.Title, *entity.Review) {
	t.Helper()
	repo := newTestRepo()
	title := seedTitle(repo, "Dune", 2021)
	reviewer := seedUser(repo, "reviewer", entity.RoleUser)
	review := &entity.Review{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		TitleID:    title.ID,
		AuthorID:   reviewer.ID,
		Score:      8,
		Text:       "Vast and patient.",
	}
	require.NoError(t, repo.Review.Create(context.Background(), review))
	return NewCommentService(repo, testLogger()), repo, title, review
}

func TestCreateComment(t *testing.T) {
	service, repo, title, review := newCommentFixture(t)
	author := seedUser(repo, "jane", entity.RoleUser)

	resp, err := service.CreateComment(context.Background(), identityFor(author),
		title.ID.String(), review.ID.String(),
		&request.CreateCommentRequest{Text: "Agreed."})
	require.NoError(t, err)
	assert.Equal(t, "Agreed.", resp.Text)
	assert.Equal(t, "jane", resp.Author)
	assert.Equal(t, review.ID.String(), resp.ReviewID)
}

func TestCreateCommentRequiresAuth(t *testing.T) {
	service, _, title, review := newCommentFixture(t)

	_, err := service.CreateComment(context.Background(), Identity{},
		title.ID.String(), review.ID.String(),
		&request.CreateCommentRequest{Text: "anon"})
	var permErr *utils.PermissionError
	assert.ErrorAs(t, err, &permErr)
}

func TestCreateCommentParentChain(t *testing.T) {
	service, repo, title, review := newCommentFixture(t)
	author := seedUser(repo, "jane", entity.RoleUser)
	otherTitle := seedTitle(repo, "Arrival", 2016)
	ctx := context.Background()
	req := &request.CreateCommentRequest{Text: "x"}

	// Missing title.
	_, err := service.CreateComment(ctx, identityFor(author), uuid.NewString(), review.ID.String(), req)
	assert.True(t, utils.IsNotFound(err))

	// Missing review.
	_, err = service.CreateComment(ctx, identityFor(author), title.ID.String(), uuid.NewString(), req)
	assert.True(t, utils.IsNotFound(err))

	// Review exists but belongs to a different title.
	_, err = service.CreateComment(ctx, identityFor(author), otherTitle.ID.String(), review.ID.String(), req)
	assert.True(t, utils.IsNotFound(err))
}

func TestUpdateCommentPermissions(t *testing.T) {
	service, repo, title, review := newCommentFixture(t)
	author := seedUser(repo, "jane", entity.RoleUser)
	other := seedUser(repo, "joe", entity.RoleUser)
	moderator := seedUser(repo, "mod", entity.RoleModerator)
	ctx := context.Background()

	created, err := service.CreateComment(ctx, identityFor(author),
		title.ID.String(), review.ID.String(),
		&request.CreateCommentRequest{Text: "original"})
	require.NoError(t, err)

	edited := "edited"
	_, err = service.UpdateComment(ctx, identityFor(other),
		title.ID.String(), review.ID.String(), created.ID,
		&request.UpdateCommentRequest{Text: &edited})
	var permErr *utils.PermissionError
	assert.ErrorAs(t, err, &permErr)

	resp, err := service.UpdateComment(ctx, identityFor(moderator),
		title.ID.String(), review.ID.String(), created.ID,
		&request.UpdateCommentRequest{Text: &edited})
	require.NoError(t, err)
	assert.Equal(t, "edited", resp.Text)
}

func TestDeleteComment(t *testing.T) {
	service, repo, title, review := newCommentFixture(t)
	author := seedUser(repo, "jane", entity.RoleUser)
	ctx := context.Background()

	created, err := service.CreateComment(ctx, identityFor(author),
		title.ID.String(), review.ID.String(),
		&request.CreateCommentRequest{Text: "bye"})
	require.NoError(t, err)

	err = service.DeleteComment(ctx, Identity{}, title.ID.String(), review.ID.String(), created.ID)
	var permErr *utils.PermissionError
	assert.ErrorAs(t, err, &permErr)

	require.NoError(t, service.DeleteComment(ctx, identityFor(author),
		title.ID.String(), review.ID.String(), created.ID))

	_, err = service.GetComment(ctx, title.ID.String(), review.ID.String(), created.ID)
	assert.True(t, utils.IsNotFound(err))
}

func TestListComments(t *testing.T) {
	service, repo, title, review := newCommentFixture(t)
	author := seedUser(repo, "jane", entity.RoleUser)
	ctx := context.Background()

	for _, text := range []string{"one", "two", "three"} {
		_, err := service.CreateComment(ctx, identityFor(author),
			title.ID.String(), review.ID.String(),
			&request.CreateCommentRequest{Text: text})
		require.NoError(t, err)
	}

	resp, err := service.ListComments(ctx, title.ID.String(), review.ID.String(),
		&request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Pagination.Total)
	assert.Len(t, resp.Data, 3)
}
