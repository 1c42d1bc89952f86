package service

import (
	"context"
	"strings"

	"github.com/emilythestrangee/blog-platform/backend/internal/dto"
	"github.com/emilythestrangee/blog-platform/backend/internal/models"
	"github.com/emilythestrangee/blog-platform/backend/internal/repository"
	"github.com/emilythestrangee/blog-platform/backend/internal/validation"
)

type TagService interface {
	List(ctx context.Context) ([]models.Tag, error)
	Create(ctx context.Context, req dto.CreateTagRequest) (*models.Tag, error)
	Get(ctx context.Context, name string) (*models.Tag, error)
}

type tagService struct {
	tags repository.TagRepository
}

func NewTagService(tags repository.TagRepository) TagService {
	return &tagService{tags: tags}
}

func (s *tagService) List(ctx context.Context) ([]models.Tag, error) {
	return s.tags.List(ctx)
}

func (s *tagService) Create(ctx context.Context, req dto.CreateTagRequest) (*models.Tag, error) {
	name := normalizeTagName(req.Name)

	var errs validation.Errors
	errs.Check("name", validation.TagName(name))
	if err := errs.Err(); err != nil {
		return nil, err
	}

	tag := &models.Tag{Name: name}
	if req.Description != nil {
		if description := strings.TrimSpace(*req.Description); description != "" {
			tag.Description = &description
		}
	}

	if err := s.tags.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *tagService) Get(ctx context.Context, name string) (*models.Tag, error) {
	return s.tags.GetByName(ctx, normalizeTagName(name))
}

func normalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
