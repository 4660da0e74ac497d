package service

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/domains/post"
	"blog-backend/internal/shared/authz"
)

type postService struct {
	repo post.Repository
}

// NewPostService creates the post business logic layer.
func NewPostService(repo post.Repository) post.Service {
	return &postService{repo: repo}
}

func (s *postService) Create(ctx context.Context, actor *authz.Actor, req post.CreateRequest) (*post.DTO, error) {
	// Ownership is decided here, never by the request body.
	if err := authz.PostPolicy.Authorize(authz.ActionCreate, actor, nil).Err(); err != nil {
		return nil, err
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := &post.Post{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: actor.ID,
		Status:   req.Status,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	dto := p.ToDTO()
	return &dto, nil
}

func (s *postService) Get(ctx context.Context, id uuid.UUID) (*post.DTO, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := p.ToDTO()
	return &dto, nil
}

func (s *postService) List(ctx context.Context, req post.ListRequest) ([]post.DTO, int, error) {
	req.SetDefaults()
	if err := req.Validate(); err != nil {
		return nil, 0, err
	}

	filter := post.Filter{
		Ordering: req.Ordering,
		Limit:    post.PageSize,
		Offset:   (req.Page - 1) * post.PageSize,
	}
	if req.Status != nil {
		st := post.Status(*req.Status)
		filter.Status = &st
	}
	if req.Author != "" {
		// Validate has already checked the format.
		authorID, err := uuid.Parse(req.Author)
		if err != nil {
			return nil, 0, err
		}
		filter.AuthorID = &authorID
	}

	posts, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]post.DTO, 0, len(posts))
	for i := range posts {
		dtos = append(dtos, posts[i].ToDTO())
	}

	return dtos, total, nil
}

func (s *postService) Update(ctx context.Context, actor *authz.Actor, id uuid.UUID, req post.UpdateRequest) (*post.DTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.PostPolicy.Authorize(authz.ActionUpdate, actor, p).Err(); err != nil {
		return nil, err
	}

	p.Title = req.Title
	p.Content = req.Content
	p.Status = req.Status

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	dto := p.ToDTO()
	return &dto, nil
}

func (s *postService) PartialUpdate(ctx context.Context, actor *authz.Actor, id uuid.UUID, req post.PartialUpdateRequest) (*post.DTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.PostPolicy.Authorize(authz.ActionPartialUpdate, actor, p).Err(); err != nil {
		return nil, err
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Content != nil {
		p.Content = *req.Content
	}
	if req.Status != nil {
		p.Status = *req.Status
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	dto := p.ToDTO()
	return &dto, nil
}

func (s *postService) Delete(ctx context.Context, actor *authz.Actor, id uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := authz.PostPolicy.Authorize(authz.ActionDelete, actor, p).Err(); err != nil {
		return err
	}

	return s.repo.Delete(ctx, p.ID)
}
