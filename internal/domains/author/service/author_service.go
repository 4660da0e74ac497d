package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/shared/authz"
	"blog-backend/pkg/jwt"
)

type authorService struct {
	repo       author.Repository
	jwtManager *jwt.Manager
}

// NewAuthorService creates the author service. The JWT manager is
// injected so the service can act as the token issuer on login.
func NewAuthorService(repo author.Repository, jwtManager *jwt.Manager) author.Service {
	return &authorService{
		repo:       repo,
		jwtManager: jwtManager,
	}
}

func (s *authorService) Register(ctx context.Context, req author.RegisterRequest) (*author.DTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a := &author.Author{
		Username:    req.Username,
		FullName:    req.FullName,
		Description: req.Description,
		Active:      true,
	}
	if err := a.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	dto := a.ToDTO()
	return &dto, nil
}

func (s *authorService) Login(ctx context.Context, req author.LoginRequest) (*author.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		// Unknown username reports the same error as a wrong
		// password; the caller cannot probe for account existence.
		return nil, author.ErrInvalidCredentials
	}

	if !a.CheckPassword(req.Password) {
		return nil, author.ErrInvalidCredentials
	}

	if !a.Active {
		return nil, author.ErrAccountInactive
	}

	access, refresh, err := s.jwtManager.GeneratePair(a.ID)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	return &author.TokenResponse{Access: access, Refresh: refresh}, nil
}

func (s *authorService) Get(ctx context.Context, id uuid.UUID) (*author.DTO, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := a.ToDTO()
	return &dto, nil
}

func (s *authorService) List(ctx context.Context, req author.ListRequest) ([]author.DTO, int, error) {
	req.SetDefaults()
	if err := req.Validate(); err != nil {
		return nil, 0, err
	}

	offset := (req.Page - 1) * author.PageSize
	authors, total, err := s.repo.List(ctx, author.PageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]author.DTO, len(authors))
	for i := range authors {
		dtos[i] = authors[i].ToDTO()
	}

	return dtos, total, nil
}

func (s *authorService) Update(ctx context.Context, actor *authz.Actor, id uuid.UUID, req author.UpdateRequest) (*author.DTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Object-level check: an author may only modify itself.
	if err := authz.AuthorPolicy.Authorize(authz.ActionUpdate, actor, a).Err(); err != nil {
		return nil, err
	}

	a.Username = req.Username
	a.FullName = req.FullName
	a.Description = req.Description
	if req.Password != "" {
		if err := a.SetPassword(req.Password); err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	dto := a.ToDTO()
	return &dto, nil
}

func (s *authorService) PartialUpdate(ctx context.Context, actor *authz.Actor, id uuid.UUID, req author.PartialUpdateRequest) (*author.DTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.AuthorPolicy.Authorize(authz.ActionPartialUpdate, actor, a).Err(); err != nil {
		return nil, err
	}

	if req.Username != nil {
		a.Username = *req.Username
	}
	if req.FullName != nil {
		a.FullName = *req.FullName
	}
	if req.Description != nil {
		a.Description = req.Description
	}
	if req.Password != nil {
		if err := a.SetPassword(*req.Password); err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	dto := a.ToDTO()
	return &dto, nil
}

func (s *authorService) Delete(ctx context.Context, actor *authz.Actor, id uuid.UUID) error {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := authz.AuthorPolicy.Authorize(authz.ActionDelete, actor, a).Err(); err != nil {
		return err
	}

	return s.repo.Delete(ctx, a.ID)
}
