package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/domains/post"
	"blog-backend/internal/domains/post/service"
	"blog-backend/internal/shared/middleware"
	"blog-backend/pkg/jwt"
)

// fakeAuthorRepository backs the authentication middleware.
type fakeAuthorRepository struct {
	authors map[uuid.UUID]author.Author
}

func (r *fakeAuthorRepository) Create(_ context.Context, _ *author.Author) error { return nil }
func (r *fakeAuthorRepository) Update(_ context.Context, _ *author.Author) error { return nil }
func (r *fakeAuthorRepository) Delete(_ context.Context, _ uuid.UUID) error       { return nil }
func (r *fakeAuthorRepository) FindByUsername(_ context.Context, _ string) (*author.Author, error) {
	return nil, author.ErrAuthorNotFound
}
func (r *fakeAuthorRepository) List(_ context.Context, _, _ int) ([]author.Author, int, error) {
	return nil, 0, nil
}

func (r *fakeAuthorRepository) FindByID(_ context.Context, id uuid.UUID) (*author.Author, error) {
	a, ok := r.authors[id]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	return &a, nil
}

// fakePostRepository is an in-memory post.Repository that resolves
// author names from the author fixture.
type fakePostRepository struct {
	posts   map[uuid.UUID]post.Post
	authors *fakeAuthorRepository
}

func (r *fakePostRepository) Create(_ context.Context, p *post.Post) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	if a, ok := r.authors.authors[p.AuthorID]; ok {
		p.AuthorName = a.FullName
	}
	r.posts[p.ID] = *p
	return nil
}

func (r *fakePostRepository) FindByID(_ context.Context, id uuid.UUID) (*post.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, post.ErrPostNotFound
	}
	return &p, nil
}

func (r *fakePostRepository) Update(_ context.Context, p *post.Post) error {
	if _, ok := r.posts[p.ID]; !ok {
		return post.ErrPostNotFound
	}
	p.UpdatedAt = time.Now()
	r.posts[p.ID] = *p
	return nil
}

func (r *fakePostRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.posts[id]; !ok {
		return post.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepository) List(_ context.Context, filter post.Filter) ([]post.Post, int, error) {
	matched := make([]post.Post, 0, len(r.posts))
	for _, p := range r.posts {
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		if filter.AuthorID != nil && p.AuthorID != *filter.AuthorID {
			continue
		}
		matched = append(matched, p)
	}

	asc := filter.Ordering == "created_at" || filter.Ordering == "updated_at"
	sort.Slice(matched, func(i, j int) bool {
		if asc {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if filter.Offset >= total {
		return nil, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > total {
		end = total
	}
	return matched[filter.Offset:end], total, nil
}

type fixture struct {
	router     *gin.Engine
	jwtManager *jwt.Manager
	authors    *fakeAuthorRepository
	posts      *fakePostRepository
}

func newFixture() *fixture {
	gin.SetMode(gin.TestMode)

	authors := &fakeAuthorRepository{authors: make(map[uuid.UUID]author.Author)}
	posts := &fakePostRepository{posts: make(map[uuid.UUID]post.Post), authors: authors}

	jwtManager := jwt.NewManager("test-secret", 15*time.Minute, 72*time.Hour)
	h := NewPostHandler(service.NewPostService(posts))

	router := gin.New()
	api := router.Group("/api")
	group := api.Group("/posts", middleware.Authentication(jwtManager, authors))
	{
		group.GET("/", h.List)
		group.POST("/", h.Create)
		group.GET("/:id/", h.Retrieve)
		group.PUT("/:id/", h.Update)
		group.PATCH("/:id/", h.PartialUpdate)
		group.DELETE("/:id/", h.Delete)
	}

	return &fixture{router: router, jwtManager: jwtManager, authors: authors, posts: posts}
}

// newAuthor seeds an active author and returns its id and a valid
// access token.
func (f *fixture) newAuthor(t *testing.T, name string) (uuid.UUID, string) {
	t.Helper()
	a := author.Author{
		ID:       uuid.New(),
		Username: name,
		FullName: "Author " + name,
		Active:   true,
	}
	f.authors.authors[a.ID] = a

	access, _, err := f.jwtManager.GeneratePair(a.ID)
	require.NoError(t, err)
	return a.ID, access
}

func (f *fixture) seedPost(authorID uuid.UUID, title string, status post.Status, createdAt time.Time) uuid.UUID {
	p := post.Post{
		ID:        uuid.New(),
		Title:     title,
		Content:   "content of " + title,
		AuthorID:  authorID,
		Status:    status,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if a, ok := f.authors.authors[authorID]; ok {
		p.AuthorName = a.FullName
	}
	f.posts.posts[p.ID] = p
	return p.ID
}

func (f *fixture) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCreateAnonymous(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodPost, "/api/posts/", "", gin.H{
		"title":   "hello",
		"content": "world",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authentication credentials were not provided", decodeBody(t, w)["detail"])
}

func TestCreateSetsOwnerFromToken(t *testing.T) {
	f := newFixture()
	authorID, token := f.newAuthor(t, "amara")

	// Any author supplied in the body is ignored.
	w := f.do(http.MethodPost, "/api/posts/", token, gin.H{
		"title":   "hello",
		"content": "world",
		"status":  1,
		"author":  uuid.NewString(),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, authorID.String(), body["author"])
	assert.Equal(t, "Author amara", body["author_name"])
	assert.Equal(t, float64(post.StatusPublished), body["status"])
}

func TestCreateValidation(t *testing.T) {
	f := newFixture()
	_, token := f.newAuthor(t, "amara")

	w := f.do(http.MethodPost, "/api/posts/", token, gin.H{
		"title": "no content",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	details := decodeBody(t, w)["details"].(map[string]interface{})
	assert.Contains(t, details, "content")
}

func TestCreateRejectsInvalidStatus(t *testing.T) {
	f := newFixture()
	_, token := f.newAuthor(t, "amara")

	w := f.do(http.MethodPost, "/api/posts/", token, gin.H{
		"title":   "hello",
		"content": "world",
		"status":  7,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRetrieveIncludesAuthorName(t *testing.T) {
	f := newFixture()
	authorID, _ := f.newAuthor(t, "amara")
	postID := f.seedPost(authorID, "hello", post.StatusPublished, time.Now())

	w := f.do(http.MethodGet, "/api/posts/"+postID.String()+"/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "hello", body["title"])
	assert.Equal(t, authorID.String(), body["author"])
	assert.Equal(t, "Author amara", body["author_name"])
}

func TestUpdateWrongOwner(t *testing.T) {
	f := newFixture()
	authorID, _ := f.newAuthor(t, "amara")
	_, otherToken := f.newAuthor(t, "bisi")
	postID := f.seedPost(authorID, "hello", post.StatusDraft, time.Now())

	w := f.do(http.MethodPut, "/api/posts/"+postID.String()+"/", otherToken, gin.H{
		"title":   "stolen",
		"content": "mine now",
		"status":  1,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "You do not have permission to perform this action", decodeBody(t, w)["detail"])
}

func TestPartialUpdateByOwner(t *testing.T) {
	f := newFixture()
	authorID, token := f.newAuthor(t, "amara")
	postID := f.seedPost(authorID, "hello", post.StatusDraft, time.Now())

	w := f.do(http.MethodPatch, "/api/posts/"+postID.String()+"/", token, gin.H{
		"status": 1,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, float64(post.StatusPublished), body["status"])
	assert.Equal(t, "hello", body["title"])
}

func TestDeleteByOwner(t *testing.T) {
	f := newFixture()
	authorID, token := f.newAuthor(t, "amara")
	postID := f.seedPost(authorID, "hello", post.StatusDraft, time.Now())

	w := f.do(http.MethodDelete, "/api/posts/"+postID.String()+"/", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(http.MethodGet, "/api/posts/"+postID.String()+"/", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteAnonymous(t *testing.T) {
	f := newFixture()
	authorID, _ := f.newAuthor(t, "amara")
	postID := f.seedPost(authorID, "hello", post.StatusDraft, time.Now())

	w := f.do(http.MethodDelete, "/api/posts/"+postID.String()+"/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListFilters(t *testing.T) {
	f := newFixture()
	alice, _ := f.newAuthor(t, "alice")
	bob, _ := f.newAuthor(t, "bob")

	now := time.Now()
	f.seedPost(alice, "a-draft", post.StatusDraft, now)
	f.seedPost(alice, "a-published", post.StatusPublished, now)
	f.seedPost(bob, "b-published", post.StatusPublished, now)

	w := f.do(http.MethodGet, "/api/posts/?status=1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decodeBody(t, w)["count"])

	w = f.do(http.MethodGet, "/api/posts/?author="+alice.String(), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decodeBody(t, w)["count"])

	w = f.do(http.MethodGet, "/api/posts/?status=1&author="+bob.String(), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["count"])
	results := body["results"].([]interface{})
	require.Len(t, results, 1)
	assert.Equal(t, "b-published", results[0].(map[string]interface{})["title"])
}

func TestListOrdering(t *testing.T) {
	f := newFixture()
	authorID, _ := f.newAuthor(t, "amara")

	now := time.Now()
	f.seedPost(authorID, "oldest", post.StatusDraft, now.Add(-time.Hour))
	f.seedPost(authorID, "newest", post.StatusDraft, now)

	w := f.do(http.MethodGet, "/api/posts/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	results := decodeBody(t, w)["results"].([]interface{})
	require.Len(t, results, 2)
	assert.Equal(t, "newest", results[0].(map[string]interface{})["title"])

	w = f.do(http.MethodGet, "/api/posts/?ordering=created_at", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	results = decodeBody(t, w)["results"].([]interface{})
	require.Len(t, results, 2)
	assert.Equal(t, "oldest", results[0].(map[string]interface{})["title"])
}

func TestListIgnoresUnknownOrdering(t *testing.T) {
	f := newFixture()
	authorID, _ := f.newAuthor(t, "amara")

	now := time.Now()
	f.seedPost(authorID, "oldest", post.StatusDraft, now.Add(-time.Hour))
	f.seedPost(authorID, "newest", post.StatusDraft, now)

	// An unknown ordering key answers 200 with the default ordering.
	w := f.do(http.MethodGet, "/api/posts/?ordering=title", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	results := decodeBody(t, w)["results"].([]interface{})
	require.Len(t, results, 2)
	assert.Equal(t, "newest", results[0].(map[string]interface{})["title"])
}

func TestListPaginationPreservesQuery(t *testing.T) {
	f := newFixture()
	authorID, _ := f.newAuthor(t, "amara")

	now := time.Now()
	for i := 0; i < 13; i++ {
		f.seedPost(authorID, "post", post.StatusPublished, now.Add(time.Duration(i)*time.Second))
	}

	w := f.do(http.MethodGet, "/api/posts/?status=1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(13), body["count"])
	require.NotNil(t, body["next"])
	next := body["next"].(string)
	assert.Contains(t, next, "page=2")
	assert.Contains(t, next, "status=1")
	assert.Len(t, body["results"].([]interface{}), post.PageSize)
}

func TestListPageOutOfRange(t *testing.T) {
	f := newFixture()
	authorID, _ := f.newAuthor(t, "amara")
	f.seedPost(authorID, "only", post.StatusDraft, time.Now())

	w := f.do(http.MethodGet, "/api/posts/?page=5", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not Found", decodeBody(t, w)["error"])
}
