package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emilythestrangee/blog-platform/backend/internal/database"
	"github.com/emilythestrangee/blog-platform/backend/internal/models"
)

// RelationRepository manages the set-like edge tables: likes, bookmarks and follows.
// Add methods return a conflict error when the edge already exists. Remove methods
// report whether a row was actually deleted.
type RelationRepository interface {
	AddLike(ctx context.Context, userID, postID int) error
	RemoveLike(ctx context.Context, userID, postID int) (bool, error)
	HasLiked(ctx context.Context, userID, postID int) (bool, error)

	AddBookmark(ctx context.Context, userID, postID int) error
	RemoveBookmark(ctx context.Context, userID, postID int) (bool, error)
	HasBookmarked(ctx context.Context, userID, postID int) (bool, error)

	Follow(ctx context.Context, followerID, followingID int) error
	Unfollow(ctx context.Context, followerID, followingID int) (bool, error)
	IsFollowing(ctx context.Context, followerID, followingID int) (bool, error)
}

type relationRepository struct {
	db *gorm.DB
}

func NewRelationRepository(db *gorm.DB) RelationRepository {
	return &relationRepository{db: db}
}

func (r *relationRepository) AddLike(ctx context.Context, userID, postID int) error {
	return r.insert(ctx, &models.PostReaction{UserID: userID, PostID: postID}, postNotFound)
}

func (r *relationRepository) RemoveLike(ctx context.Context, userID, postID int) (bool, error) {
	return r.remove(ctx, &models.PostReaction{}, "user_id = ? AND post_id = ?", userID, postID)
}

func (r *relationRepository) HasLiked(ctx context.Context, userID, postID int) (bool, error) {
	return r.exists(ctx, &models.PostReaction{}, "user_id = ? AND post_id = ?", userID, postID)
}

func (r *relationRepository) AddBookmark(ctx context.Context, userID, postID int) error {
	return r.insert(ctx, &models.Bookmark{UserID: userID, PostID: postID}, postNotFound)
}

func (r *relationRepository) RemoveBookmark(ctx context.Context, userID, postID int) (bool, error) {
	return r.remove(ctx, &models.Bookmark{}, "user_id = ? AND post_id = ?", userID, postID)
}

func (r *relationRepository) HasBookmarked(ctx context.Context, userID, postID int) (bool, error) {
	return r.exists(ctx, &models.Bookmark{}, "user_id = ? AND post_id = ?", userID, postID)
}

func (r *relationRepository) Follow(ctx context.Context, followerID, followingID int) error {
	return r.insert(ctx, &models.Follow{FollowerID: followerID, FollowingID: followingID}, userNotFound)
}

func (r *relationRepository) Unfollow(ctx context.Context, followerID, followingID int) (bool, error) {
	return r.remove(ctx, &models.Follow{}, "follower_id = ? AND following_id = ?", followerID, followingID)
}

func (r *relationRepository) IsFollowing(ctx context.Context, followerID, followingID int) (bool, error) {
	return r.exists(ctx, &models.Follow{}, "follower_id = ? AND following_id = ?", followerID, followingID)
}

// insert relies on the composite primary key to reject duplicates
func (r *relationRepository) insert(ctx context.Context, edge interface{}, notFound string) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(edge).Error
	return database.TranslateError(err, notFound)
}

func (r *relationRepository) remove(ctx context.Context, model interface{}, query string, args ...interface{}) (bool, error) {
	result := r.db.WithContext(ctx).Where(query, args...).Delete(model)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *relationRepository) exists(ctx context.Context, model interface{}, query string, args ...interface{}) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(model).Where(query, args...).Count(&count).Error
	return count > 0, err
}
