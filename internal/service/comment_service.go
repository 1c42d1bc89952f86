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

var ErrParentNotFound = apperr.NotFound("parent comment not found")

type CommentService interface {
	Create(ctx context.Context, userID, postID int, req dto.CreateCommentRequest) (*models.Comment, error)
	ListByPost(ctx context.Context, viewerID, postID int, query dto.PageQuery) ([]models.Comment, int64, error)
	Replies(ctx context.Context, viewerID, commentID int, query dto.PageQuery) ([]models.Comment, int64, error)
	Update(ctx context.Context, actorID, id int, req dto.UpdateCommentRequest) (*models.Comment, error)
	Delete(ctx context.Context, actorID, id int) error
}

type commentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
}

func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository) CommentService {
	return &commentService{comments: comments, posts: posts}
}

// Create adds a comment to a post. A reply must point at a comment on the same post.
func (s *commentService) Create(ctx context.Context, userID, postID int, req dto.CreateCommentRequest) (*models.Comment, error) {
	body := strings.TrimSpace(req.Body)

	var errs validation.Errors
	errs.Check("body", validation.Required(body))
	if err := errs.Err(); err != nil {
		return nil, err
	}

	if _, err := loadVisiblePost(ctx, s.posts, userID, postID); err != nil {
		return nil, err
	}

	if req.ParentCommentID != nil {
		parent, err := s.comments.GetByID(ctx, *req.ParentCommentID)
		if err != nil {
			if apperr.IsKind(err, apperr.KindNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, err
		}
		if parent.PostID != postID {
			return nil, ErrParentNotFound
		}
	}

	comment := &models.Comment{
		PostID:          postID,
		UserID:          userID,
		ParentCommentID: req.ParentCommentID,
		Body:            body,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.comments.GetByID(ctx, comment.ID)
}

func (s *commentService) ListByPost(ctx context.Context, viewerID, postID int, query dto.PageQuery) ([]models.Comment, int64, error) {
	if err := query.Validate(); err != nil {
		return nil, 0, err
	}
	if _, err := loadVisiblePost(ctx, s.posts, viewerID, postID); err != nil {
		return nil, 0, err
	}
	return s.comments.ListByPost(ctx, postID, repository.Pagination{Page: query.Page, PageSize: query.PageSize})
}

// Replies lists direct replies. Threads on a draft are only visible to its author.
func (s *commentService) Replies(ctx context.Context, viewerID, commentID int, query dto.PageQuery) ([]models.Comment, int64, error) {
	if err := query.Validate(); err != nil {
		return nil, 0, err
	}
	parent, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, 0, err
	}
	if _, err := loadVisiblePost(ctx, s.posts, viewerID, parent.PostID); err != nil {
		return nil, 0, err
	}
	return s.comments.ListReplies(ctx, commentID, repository.Pagination{Page: query.Page, PageSize: query.PageSize})
}

func (s *commentService) Update(ctx context.Context, actorID, id int, req dto.UpdateCommentRequest) (*models.Comment, error) {
	comment, err := s.owned(ctx, actorID, id, "you can only edit your own comments")
	if err != nil {
		return nil, err
	}

	body := strings.TrimSpace(req.Body)
	var errs validation.Errors
	errs.Check("body", validation.Required(body))
	if err := errs.Err(); err != nil {
		return nil, err
	}

	comment.Body = body
	comment.WasEdited = true
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.comments.GetByID(ctx, id)
}

// Delete removes the comment. Its replies are kept and become top-level.
func (s *commentService) Delete(ctx context.Context, actorID, id int) error {
	if _, err := s.owned(ctx, actorID, id, "you can only delete your own comments"); err != nil {
		return err
	}
	return s.comments.Delete(ctx, id)
}

func (s *commentService) owned(ctx context.Context, actorID, id int, denied string) (*models.Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.UserID != actorID {
		return nil, apperr.Forbidden(denied)
	}
	return comment, nil
}
