package service

import (
	"context"
	"strings"

	"github.com/emilythestrangee/blog-platform/backend/internal/apperr"
	"github.com/emilythestrangee/blog-platform/backend/internal/dto"
	"github.com/emilythestrangee/blog-platform/backend/internal/models"
	"github.com/emilythestrangee/blog-platform/backend/internal/repository"
	"github.com/emilythestrangee/blog-platform/backend/internal/validation"
)

// A viewerID of 0 is an anonymous reader.
type PostService interface {
	Create(ctx context.Context, authorID int, req dto.CreatePostRequest) (*models.Post, error)
	Get(ctx context.Context, viewerID, id int) (*models.Post, error)
	// GetOwned loads a post for editing by its author without counting a view.
	GetOwned(ctx context.Context, actorID, id int) (*models.Post, error)
	List(ctx context.Context, query dto.PostQuery) ([]models.Post, int64, error)
	ListByAuthor(ctx context.Context, viewerID, authorID int, query dto.PageQuery) ([]models.Post, int64, error)
	Update(ctx context.Context, actorID, id int, req dto.UpdatePostRequest) (*models.Post, error)
	Delete(ctx context.Context, actorID, id int) error
	Count(ctx context.Context) (int64, error)
}

type postService struct {
	posts repository.PostRepository
	users repository.UserRepository
}

func NewPostService(posts repository.PostRepository, users repository.UserRepository) PostService {
	return &postService{posts: posts, users: users}
}

func (s *postService) Create(ctx context.Context, authorID int, req dto.CreatePostRequest) (*models.Post, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)

	var errs validation.Errors
	errs.Check("title", validation.Title(title))
	errs.Check("content", validation.Required(content))
	if err := errs.Err(); err != nil {
		return nil, err
	}

	tags, err := validation.NormalizeTags(req.Tags)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:      authorID,
		Title:       title,
		Content:     content,
		IsPublished: true,
	}
	if req.IsPublished != nil {
		post.IsPublished = *req.IsPublished
	}

	if err := s.posts.Create(ctx, post, tags); err != nil {
		return nil, err
	}
	return s.posts.GetByID(ctx, post.ID)
}

// Get returns a post visible to the viewer. Reading a published post counts as a view.
func (s *postService) Get(ctx context.Context, viewerID, id int) (*models.Post, error) {
	post, err := loadVisiblePost(ctx, s.posts, viewerID, id)
	if err != nil {
		return nil, err
	}

	if post.IsPublished {
		if err := s.posts.IncrementViews(ctx, post.ID); err != nil {
			return nil, err
		}
		post.ViewCounter++
	}
	return post, nil
}

func (s *postService) GetOwned(ctx context.Context, actorID, id int) (*models.Post, error) {
	return s.owned(ctx, actorID, id, "you can only edit your own posts")
}

func (s *postService) List(ctx context.Context, query dto.PostQuery) ([]models.Post, int64, error) {
	if err := query.Validate(); err != nil {
		return nil, 0, err
	}
	return s.posts.List(ctx, repository.PostFilter{
		Search:     strings.TrimSpace(query.Search),
		Tag:        strings.ToLower(strings.TrimSpace(query.Tag)),
		Pagination: repository.Pagination{Page: query.Page, PageSize: query.PageSize},
	})
}

// ListByAuthor lists an author's published posts. Authors also see their own drafts.
func (s *postService) ListByAuthor(ctx context.Context, viewerID, authorID int, query dto.PageQuery) ([]models.Post, int64, error) {
	if err := query.Validate(); err != nil {
		return nil, 0, err
	}
	if _, err := s.users.GetByID(ctx, authorID); err != nil {
		return nil, 0, err
	}
	return s.posts.List(ctx, repository.PostFilter{
		AuthorID:      authorID,
		IncludeDrafts: viewerID == authorID,
		Pagination:    repository.Pagination{Page: query.Page, PageSize: query.PageSize},
	})
}

func (s *postService) Update(ctx context.Context, actorID, id int, req dto.UpdatePostRequest) (*models.Post, error) {
	post, err := s.owned(ctx, actorID, id, "you can only edit your own posts")
	if err != nil {
		return nil, err
	}

	var errs validation.Errors
	if req.Title != nil {
		post.Title = strings.TrimSpace(*req.Title)
		errs.Check("title", validation.Title(post.Title))
	}
	if req.Content != nil {
		post.Content = strings.TrimSpace(*req.Content)
		errs.Check("content", validation.Required(post.Content))
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	if req.IsPublished != nil {
		post.IsPublished = *req.IsPublished
	}

	var tags []string
	if req.Tags != nil {
		if tags, err = validation.NormalizeTags(*req.Tags); err != nil {
			return nil, err
		}
	}

	if err := s.posts.Update(ctx, post, tags); err != nil {
		return nil, err
	}
	return s.posts.GetByID(ctx, id)
}

func (s *postService) Delete(ctx context.Context, actorID, id int) error {
	if _, err := s.owned(ctx, actorID, id, "you can only delete your own posts"); err != nil {
		return err
	}
	return s.posts.Delete(ctx, id)
}

func (s *postService) Count(ctx context.Context) (int64, error) {
	return s.posts.Count(ctx)
}

func (s *postService) owned(ctx context.Context, actorID, id int, denied string) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.UserID != actorID {
		return nil, apperr.Forbidden(denied)
	}
	return post, nil
}

// loadVisiblePost hides drafts from everyone but their author
func loadVisiblePost(ctx context.Context, posts repository.PostRepository, viewerID, id int) (*models.Post, error) {
	post, err := posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.IsPublished && post.UserID != viewerID {
		return nil, apperr.NotFound("post not found")
	}
	return post, nil
}
