package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"reviewhub/internal/data/entity"
	"reviewhub/internal/data/repository"
	"reviewhub/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// In-memory repository fakes. They mirror the semantics the SQL layer
// provides, including the unique-violation sentinels.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(_ context.Context, search string, limit, offset int) ([]*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.User
	for _, u := range f.users {
		if search == "" || strings.Contains(strings.ToLower(u.Username), strings.ToLower(search)) {
			clone := *u
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return page(out, limit, offset), nil
}

func (f *fakeUserRepo) Count(_ context.Context, search string) (int64, error) {
	all, _ := f.FindAll(context.Background(), search, len(f.users)+1, 0)
	return int64(len(all)), nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, u := range f.users {
		if id == user.ID {
			continue
		}
		if u.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Activate(_ context.Context, id uuid.UUID, newSalt string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		u.IsActive = true
		u.CodeSalt = newSalt
	}
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
	return nil
}

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[uuid.UUID]*entity.Category)}
}

func (f *fakeCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	for _, c := range f.categories {
		if c.Slug == category.Slug {
			return repository.ErrDuplicateSlug
		}
	}
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	return f.categories[id], nil
}

func (f *fakeCategoryRepo) FindBySlug(_ context.Context, slug string) (*entity.Category, error) {
	for _, c := range f.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) FindAll(_ context.Context, search string, limit, offset int) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range f.categories {
		if search == "" || strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

func (f *fakeCategoryRepo) Count(_ context.Context, search string) (int64, error) {
	all, _ := f.FindAll(context.Background(), search, len(f.categories)+1, 0)
	return int64(len(all)), nil
}

func (f *fakeCategoryRepo) DeleteBySlug(_ context.Context, slug string) error {
	for id, c := range f.categories {
		if c.Slug == slug {
			delete(f.categories, id)
		}
	}
	return nil
}

type fakeGenreRepo struct {
	genres map[uuid.UUID]*entity.Genre
}

func newFakeGenreRepo() *fakeGenreRepo {
	return &fakeGenreRepo{genres: make(map[uuid.UUID]*entity.Genre)}
}

func (f *fakeGenreRepo) Create(_ context.Context, genre *entity.Genre) error {
	for _, g := range f.genres {
		if g.Slug == genre.Slug {
			return repository.ErrDuplicateSlug
		}
	}
	f.genres[genre.ID] = genre
	return nil
}

func (f *fakeGenreRepo) FindBySlug(_ context.Context, slug string) (*entity.Genre, error) {
	for _, g := range f.genres {
		if g.Slug == slug {
			return g, nil
		}
	}
	return nil, nil
}

func (f *fakeGenreRepo) FindBySlugs(_ context.Context, slugs []string) ([]*entity.Genre, error) {
	var out []*entity.Genre
	for _, slug := range slugs {
		for _, g := range f.genres {
			if g.Slug == slug {
				out = append(out, g)
			}
		}
	}
	return out, nil
}

func (f *fakeGenreRepo) FindAll(_ context.Context, search string, limit, offset int) ([]*entity.Genre, error) {
	var out []*entity.Genre
	for _, g := range f.genres {
		if search == "" || strings.Contains(strings.ToLower(g.Name), strings.ToLower(search)) {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

func (f *fakeGenreRepo) Count(_ context.Context, search string) (int64, error) {
	all, _ := f.FindAll(context.Background(), search, len(f.genres)+1, 0)
	return int64(len(all)), nil
}

func (f *fakeGenreRepo) DeleteBySlug(_ context.Context, slug string) error {
	for id, g := range f.genres {
		if g.Slug == slug {
			delete(f.genres, id)
		}
	}
	return nil
}

type fakeTitleRepo struct {
	titles  map[uuid.UUID]*entity.Title
	reviews *fakeReviewRepo
	links   *fakeTitleGenreRepo
}

func newFakeTitleRepo(reviews *fakeReviewRepo, links *fakeTitleGenreRepo) *fakeTitleRepo {
	return &fakeTitleRepo{
		titles:  make(map[uuid.UUID]*entity.Title),
		reviews: reviews,
		links:   links,
	}
}

func (f *fakeTitleRepo) CreateWithGenres(_ context.Context, title *entity.Title, genreIDs []uuid.UUID) error {
	// Mirrors the foreign key: an unknown genre fails the whole insert,
	// leaving no title behind.
	for _, id := range genreIDs {
		if _, ok := f.links.genres.genres[id]; !ok {
			return fmt.Errorf("link genre %s to title %s: foreign key violation",
				id.String(), title.ID.String())
		}
	}
	f.titles[title.ID] = title
	f.links.byTitle[title.ID] = genreIDs
	return nil
}

// withRating mirrors the read-time AVG the SQL layer computes.
func (f *fakeTitleRepo) withRating(title *entity.Title) *entity.Title {
	clone := *title
	var sum, count float64
	for _, r := range f.reviews.reviews {
		if r.TitleID == title.ID {
			sum += float64(r.Score)
			count++
		}
	}
	if count > 0 {
		mean := sum / count
		clone.Rating = &mean
	} else {
		clone.Rating = nil
	}
	return &clone
}

func (f *fakeTitleRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Title, error) {
	if t, ok := f.titles[id]; ok {
		return f.withRating(t), nil
	}
	return nil, nil
}

func (f *fakeTitleRepo) FindAll(_ context.Context, filter repository.TitleFilter, limit, offset int) ([]*entity.Title, error) {
	var out []*entity.Title
	for _, t := range f.titles {
		if filter.Name != "" && !strings.Contains(strings.ToLower(t.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Year != 0 && t.Year != filter.Year {
			continue
		}
		out = append(out, f.withRating(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

func (f *fakeTitleRepo) Count(_ context.Context, filter repository.TitleFilter) (int64, error) {
	all, _ := f.FindAll(context.Background(), filter, len(f.titles)+1, 0)
	return int64(len(all)), nil
}

func (f *fakeTitleRepo) Update(_ context.Context, title *entity.Title) error {
	f.titles[title.ID] = title
	return nil
}

func (f *fakeTitleRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.titles, id)
	return nil
}

type fakeTitleGenreRepo struct {
	byTitle map[uuid.UUID][]uuid.UUID
	genres  *fakeGenreRepo
}

func newFakeTitleGenreRepo(genres *fakeGenreRepo) *fakeTitleGenreRepo {
	return &fakeTitleGenreRepo{byTitle: make(map[uuid.UUID][]uuid.UUID), genres: genres}
}

func (f *fakeTitleGenreRepo) Replace(_ context.Context, titleID uuid.UUID, genreIDs []uuid.UUID) error {
	f.byTitle[titleID] = genreIDs
	return nil
}

func (f *fakeTitleGenreRepo) FindGenresByTitleID(_ context.Context, titleID uuid.UUID) ([]*entity.Genre, error) {
	var out []*entity.Genre
	for _, id := range f.byTitle[titleID] {
		if g, ok := f.genres.genres[id]; ok {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakeReviewRepo struct {
	reviews map[uuid.UUID]*entity.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[uuid.UUID]*entity.Review)}
}

func (f *fakeReviewRepo) Create(_ context.Context, review *entity.Review) error {
	for _, r := range f.reviews {
		if r.AuthorID == review.AuthorID && r.TitleID == review.TitleID {
			return repository.ErrDuplicateReview
		}
	}
	f.reviews[review.ID] = review
	return nil
}

func (f *fakeReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	return f.reviews[id], nil
}

func (f *fakeReviewRepo) FindByTitleID(_ context.Context, titleID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	var out []*entity.Review
	for _, r := range f.reviews {
		if r.TitleID == titleID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

func (f *fakeReviewRepo) CountByTitleID(_ context.Context, titleID uuid.UUID) (int64, error) {
	all, _ := f.FindByTitleID(context.Background(), titleID, len(f.reviews)+1, 0)
	return int64(len(all)), nil
}

func (f *fakeReviewRepo) FindByAuthorAndTitle(_ context.Context, authorID, titleID uuid.UUID) (*entity.Review, error) {
	for _, r := range f.reviews {
		if r.AuthorID == authorID && r.TitleID == titleID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewRepo) Update(_ context.Context, review *entity.Review) error {
	f.reviews[review.ID] = review
	return nil
}

func (f *fakeReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.reviews, id)
	return nil
}

type fakeCommentRepo struct {
	comments map[uuid.UUID]*entity.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[uuid.UUID]*entity.Comment)}
}

func (f *fakeCommentRepo) Create(_ context.Context, comment *entity.Comment) error {
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeCommentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Comment, error) {
	return f.comments[id], nil
}

func (f *fakeCommentRepo) FindByReviewID(_ context.Context, reviewID uuid.UUID, limit, offset int) ([]*entity.Comment, error) {
	var out []*entity.Comment
	for _, c := range f.comments {
		if c.ReviewID == reviewID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

func (f *fakeCommentRepo) CountByReviewID(_ context.Context, reviewID uuid.UUID) (int64, error) {
	all, _ := f.FindByReviewID(context.Background(), reviewID, len(f.comments)+1, 0)
	return int64(len(all)), nil
}

func (f *fakeCommentRepo) Update(_ context.Context, comment *entity.Comment) error {
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeCommentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.comments, id)
	return nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit < len(items) {
		items = items[:limit]
	}
	return items
}

// fakeMailer records sent mail for assertions.
type fakeMailer struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeMailer) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	return nil
}

func (f *fakeMailer) SentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func newTestRepo() *repository.Repository {
	genres := newFakeGenreRepo()
	reviews := newFakeReviewRepo()
	links := newFakeTitleGenreRepo(genres)
	return &repository.Repository{
		User:       newFakeUserRepo(),
		Category:   newFakeCategoryRepo(),
		Genre:      genres,
		Title:      newFakeTitleRepo(reviews, links),
		TitleGenre: links,
		Review:     reviews,
		Comment:    newFakeCommentRepo(),
	}
}

func newTestConfig() *utils.Config {
	return &utils.Config{
		JWT: utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1},
		Auth: utils.AuthConfig{
			Secret:           "code-secret",
			ReservedUsername: "me",
		},
	}
}

func seedUser(repo *repository.Repository, username string, role entity.Role) *entity.User {
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
		IsActive: true,
		CodeSalt: NewCodeSalt(),
	}
	if err := repo.User.Create(context.Background(), user); err != nil {
		panic(err)
	}
	return user
}

func seedTitle(repo *repository.Repository, name string, year int) *entity.Title {
	now := time.Now()
	title := &entity.Title{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name: name,
		Year: year,
	}
	if err := repo.Title.CreateWithGenres(context.Background(), title, nil); err != nil {
		panic(err)
	}
	return title
}

func seedReview(repo *repository.Repository, title *entity.Title, author *entity.User, score int) *entity.Review {
	review := &entity.Review{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		TitleID:    title.ID,
		AuthorID:   author.ID,
		Score:      score,
		Text:       "seeded review",
	}
	if err := repo.Review.Create(context.Background(), review); err != nil {
		panic(err)
	}
	return review
}

func seedCategory(repo *repository.Repository, name, slug string) *entity.Category {
	category := &entity.Category{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Name:       name,
		Slug:       slug,
	}
	if err := repo.Category.Create(context.Background(), category); err != nil {
		panic(err)
	}
	return category
}

func seedGenre(repo *repository.Repository, name, slug string) *entity.Genre {
	genre := &entity.Genre{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Name:       name,
		Slug:       slug,
	}
	if err := repo.Genre.Create(context.Background(), genre); err != nil {
		panic(err)
	}
	return genre
}

func identityFor(user *entity.User) Identity {
	return Identity{
		ID:            user.ID,
		Username:      user.Username,
		Role:          user.Role,
		Authenticated: true,
	}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
