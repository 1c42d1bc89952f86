package service

import (
	"context"

	"github.com/emilythestrangee/blog-platform/backend/internal/apperr"
	"github.com/emilythestrangee/blog-platform/backend/internal/dto"
	"github.com/emilythestrangee/blog-platform/backend/internal/models"
	"github.com/emilythestrangee/blog-platform/backend/internal/repository"
)

var (
	ErrAlreadyLiked      = apperr.Conflict("already liked")
	ErrNotLiked          = apperr.Conflict("not liked")
	ErrAlreadyBookmarked = apperr.Conflict("already bookmarked")
	ErrNotBookmarked     = apperr.Conflict("not bookmarked")
	ErrAlreadyFollowing  = apperr.Conflict("already following")
	ErrNotFollowing      = apperr.Conflict("not following")
	ErrSelfFollow        = apperr.Validation("you cannot follow yourself", nil)
)

// PostStatus is the viewer's relation to a post.
type PostStatus struct {
	Liked      bool
	Bookmarked bool
}

// ReactionService toggles set membership in the like, bookmark and follow relations.
// Adding an existing edge and removing a missing one are both conflicts.
type ReactionService interface {
	Like(ctx context.Context, userID, postID int) error
	Unlike(ctx context.Context, userID, postID int) error
	Bookmark(ctx context.Context, userID, postID int) error
	Unbookmark(ctx context.Context, userID, postID int) error
	Follow(ctx context.Context, followerID, followingID int) error
	Unfollow(ctx context.Context, followerID, followingID int) error

	IsFollowing(ctx context.Context, followerID, followingID int) (bool, error)
	PostStatus(ctx context.Context, userID, postID int) (PostStatus, error)

	Bookmarks(ctx context.Context, userID int, query dto.PageQuery) ([]models.Post, int64, error)
	Followers(ctx context.Context, userID int, query dto.PageQuery) ([]models.User, int64, error)
	Following(ctx context.Context, userID int, query dto.PageQuery) ([]models.User, int64, error)
}

type reactionService struct {
	relations repository.RelationRepository
	posts     repository.PostRepository
	users     repository.UserRepository
}

func NewReactionService(
	relations repository.RelationRepository,
	posts repository.PostRepository,
	users repository.UserRepository,
) ReactionService {
	return &reactionService{
		relations: relations,
		posts:     posts,
		users:     users,
	}
}

func (s *reactionService) Like(ctx context.Context, userID, postID int) error {
	if _, err := loadVisiblePost(ctx, s.posts, userID, postID); err != nil {
		return err
	}
	return conflictAs(s.relations.AddLike(ctx, userID, postID), ErrAlreadyLiked)
}

// Unlike only needs the post to exist, so a like can be withdrawn after unpublishing.
func (s *reactionService) Unlike(ctx context.Context, userID, postID int) error {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return err
	}
	ok, err := s.relations.RemoveLike(ctx, userID, postID)
	return missingAs(ok, err, ErrNotLiked)
}

func (s *reactionService) Bookmark(ctx context.Context, userID, postID int) error {
	if _, err := loadVisiblePost(ctx, s.posts, userID, postID); err != nil {
		return err
	}
	return conflictAs(s.relations.AddBookmark(ctx, userID, postID), ErrAlreadyBookmarked)
}

func (s *reactionService) Unbookmark(ctx context.Context, userID, postID int) error {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return err
	}
	ok, err := s.relations.RemoveBookmark(ctx, userID, postID)
	return missingAs(ok, err, ErrNotBookmarked)
}

func (s *reactionService) Follow(ctx context.Context, followerID, followingID int) error {
	if followerID == followingID {
		return ErrSelfFollow
	}
	if _, err := s.users.GetByID(ctx, followingID); err != nil {
		return err
	}
	return conflictAs(s.relations.Follow(ctx, followerID, followingID), ErrAlreadyFollowing)
}

func (s *reactionService) Unfollow(ctx context.Context, followerID, followingID int) error {
	if followerID == followingID {
		return ErrSelfFollow
	}
	if _, err := s.users.GetByID(ctx, followingID); err != nil {
		return err
	}
	ok, err := s.relations.Unfollow(ctx, followerID, followingID)
	return missingAs(ok, err, ErrNotFollowing)
}

func (s *reactionService) IsFollowing(ctx context.Context, followerID, followingID int) (bool, error) {
	return s.relations.IsFollowing(ctx, followerID, followingID)
}

func (s *reactionService) PostStatus(ctx context.Context, userID, postID int) (PostStatus, error) {
	var status PostStatus
	var err error
	if status.Liked, err = s.relations.HasLiked(ctx, userID, postID); err != nil {
		return PostStatus{}, err
	}
	if status.Bookmarked, err = s.relations.HasBookmarked(ctx, userID, postID); err != nil {
		return PostStatus{}, err
	}
	return status, nil
}

// Bookmarks lists the user's saved posts, most recently saved first
func (s *reactionService) Bookmarks(ctx context.Context, userID int, query dto.PageQuery) ([]models.Post, int64, error) {
	if err := query.Validate(); err != nil {
		return nil, 0, err
	}
	return s.posts.List(ctx, repository.PostFilter{
		BookmarkedBy: userID,
		Pagination:   repository.Pagination{Page: query.Page, PageSize: query.PageSize},
	})
}

func (s *reactionService) Followers(ctx context.Context, userID int, query dto.PageQuery) ([]models.User, int64, error) {
	return s.listUsers(ctx, userID, query, repository.UserFilter{FollowersOf: userID})
}

func (s *reactionService) Following(ctx context.Context, userID int, query dto.PageQuery) ([]models.User, int64, error) {
	return s.listUsers(ctx, userID, query, repository.UserFilter{FollowingOf: userID})
}

func (s *reactionService) listUsers(ctx context.Context, userID int, query dto.PageQuery, filter repository.UserFilter) ([]models.User, int64, error) {
	if err := query.Validate(); err != nil {
		return nil, 0, err
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, 0, err
	}
	filter.Pagination = repository.Pagination{Page: query.Page, PageSize: query.PageSize}
	return s.users.List(ctx, filter)
}

// conflictAs replaces a store conflict with the toggle's own message
func conflictAs(err error, conflict *apperr.Error) error {
	if apperr.IsKind(err, apperr.KindConflict) {
		return conflict
	}
	return err
}

// missingAs reports missing when a remove deleted nothing
func missingAs(ok bool, err error, missing *apperr.Error) error {
	if err != nil {
		return err
	}
	if !ok {
		return missing
	}
	return nil
}
