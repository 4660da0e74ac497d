package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/shared/authz"
	"blog-backend/pkg/jwt"
)

// fakeRepository is an in-memory author.Repository.
type fakeRepository struct {
	authors map[uuid.UUID]author.Author
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{authors: make(map[uuid.UUID]author.Author)}
}

func (r *fakeRepository) Create(_ context.Context, a *author.Author) error {
	for _, existing := range r.authors {
		if existing.Username == a.Username {
			return author.ErrUsernameAlreadyExists
		}
	}
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	r.authors[a.ID] = *a
	return nil
}

func (r *fakeRepository) FindByID(_ context.Context, id uuid.UUID) (*author.Author, error) {
	a, ok := r.authors[id]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	return &a, nil
}

func (r *fakeRepository) FindByUsername(_ context.Context, username string) (*author.Author, error) {
	for _, a := range r.authors {
		if a.Username == username {
			found := a
			return &found, nil
		}
	}
	return nil, author.ErrAuthorNotFound
}

func (r *fakeRepository) Update(_ context.Context, a *author.Author) error {
	if _, ok := r.authors[a.ID]; !ok {
		return author.ErrAuthorNotFound
	}
	a.UpdatedAt = time.Now()
	r.authors[a.ID] = *a
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.authors[id]; !ok {
		return author.ErrAuthorNotFound
	}
	delete(r.authors, id)
	return nil
}

func (r *fakeRepository) List(_ context.Context, limit, offset int) ([]author.Author, int, error) {
	all := make([]author.Author, 0, len(r.authors))
	for _, a := range r.authors {
		all = append(all, a)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func newTestService(repo author.Repository) author.Service {
	return NewAuthorService(repo, jwt.NewManager("test-secret", 15*time.Minute, 72*time.Hour))
}

func register(t *testing.T, svc author.Service, username string) *author.DTO {
	t.Helper()
	dto, err := svc.Register(context.Background(), author.RegisterRequest{
		Username: username,
		Password: "long-enough-password",
		FullName: "Author " + username,
	})
	require.NoError(t, err)
	return dto
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(newFakeRepository())

	dto := register(t, svc, "amara")
	assert.True(t, dto.Active)
	assert.NotEqual(t, uuid.Nil, dto.ID)

	tokens, err := svc.Login(context.Background(), author.LoginRequest{
		Username: "amara",
		Password: "long-enough-password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.Access)
	assert.NotEmpty(t, tokens.Refresh)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := newTestService(newFakeRepository())
	register(t, svc, "amara")

	_, errWrongPassword := svc.Login(context.Background(), author.LoginRequest{
		Username: "amara",
		Password: "not the password",
	})
	_, errUnknownUser := svc.Login(context.Background(), author.LoginRequest{
		Username: "nobody",
		Password: "long-enough-password",
	})

	// A caller must not be able to probe which usernames exist.
	assert.ErrorIs(t, errWrongPassword, author.ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknownUser, author.ErrInvalidCredentials)
}

func TestLoginInactiveAccountIsDistinct(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	dto := register(t, svc, "amara")

	a := repo.authors[dto.ID]
	a.Active = false
	repo.authors[dto.ID] = a

	_, err := svc.Login(context.Background(), author.LoginRequest{
		Username: "amara",
		Password: "long-enough-password",
	})
	assert.ErrorIs(t, err, author.ErrAccountInactive)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newTestService(newFakeRepository())
	register(t, svc, "amara")

	_, err := svc.Register(context.Background(), author.RegisterRequest{
		Username: "amara",
		Password: "another-password",
		FullName: "Someone Else",
	})
	assert.ErrorIs(t, err, author.ErrUsernameAlreadyExists)
}

func TestUpdateOwnership(t *testing.T) {
	svc := newTestService(newFakeRepository())
	dto := register(t, svc, "amara")

	req := author.UpdateRequest{Username: "amara", FullName: "Amara O."}

	// Anonymous callers get the unauthenticated error.
	_, err := svc.Update(context.Background(), nil, dto.ID, req)
	assert.ErrorIs(t, err, authz.ErrNotAuthenticated)

	// A different author gets the forbidden error.
	_, err = svc.Update(context.Background(), &authz.Actor{ID: uuid.New()}, dto.ID, req)
	assert.ErrorIs(t, err, authz.ErrForbidden)

	// The owner succeeds.
	updated, err := svc.Update(context.Background(), &authz.Actor{ID: dto.ID}, dto.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Amara O.", updated.FullName)
}

func TestPartialUpdateChangesPassword(t *testing.T) {
	svc := newTestService(newFakeRepository())
	dto := register(t, svc, "amara")

	newPassword := "a brand new password"
	_, err := svc.PartialUpdate(context.Background(), &authz.Actor{ID: dto.ID}, dto.ID, author.PartialUpdateRequest{
		Password: &newPassword,
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), author.LoginRequest{
		Username: "amara",
		Password: "long-enough-password",
	})
	assert.ErrorIs(t, err, author.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), author.LoginRequest{
		Username: "amara",
		Password: newPassword,
	})
	assert.NoError(t, err)
}

func TestPartialUpdateLeavesOtherFieldsAlone(t *testing.T) {
	svc := newTestService(newFakeRepository())
	dto := register(t, svc, "amara")

	fullName := "Renamed"
	updated, err := svc.PartialUpdate(context.Background(), &authz.Actor{ID: dto.ID}, dto.ID, author.PartialUpdateRequest{
		FullName: &fullName,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.FullName)
	assert.Equal(t, "amara", updated.Username)
}

func TestDeleteOwnership(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	dto := register(t, svc, "amara")

	err := svc.Delete(context.Background(), &authz.Actor{ID: uuid.New()}, dto.ID)
	assert.ErrorIs(t, err, authz.ErrForbidden)

	require.NoError(t, svc.Delete(context.Background(), &authz.Actor{ID: dto.ID}, dto.ID))

	_, err = svc.Get(context.Background(), dto.ID)
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)
}

func TestGetUnknownAuthor(t *testing.T) {
	svc := newTestService(newFakeRepository())

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)
}

func TestListPaginates(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	for i := 0; i < 13; i++ {
		register(t, svc, "author"+string(rune('a'+i)))
	}

	page1, total, err := svc.List(context.Background(), author.ListRequest{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 13, total)
	assert.Len(t, page1, author.PageSize)

	page2, total, err := svc.List(context.Background(), author.ListRequest{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 13, total)
	assert.Len(t, page2, 3)
}
