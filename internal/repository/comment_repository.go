package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emilythestrangee/blog-platform/backend/internal/database"
	"github.com/emilythestrangee/blog-platform/backend/internal/models"
)

const commentNotFound = "comment not found"

const commentColumns = `comments.*,
	(SELECT COUNT(*) FROM comments r WHERE r.parent_comment_id = comments.id) AS replies_count`

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int) (*models.Comment, error)
	ListByPost(ctx context.Context, postID int, page Pagination) ([]models.Comment, int64, error)
	ListReplies(ctx context.Context, parentID int, page Pagination) ([]models.Comment, int64, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id int) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error
	if database.IsForeignKeyViolation(err) {
		return database.TranslateError(err, r.missingReference(ctx, comment))
	}
	return database.TranslateError(err, postNotFound)
}

// missingReference names the row a rejected comment pointed at, checking the parent first.
func (r *commentRepository) missingReference(ctx context.Context, comment *models.Comment) string {
	if comment.ParentCommentID != nil && !r.exists(ctx, &models.Comment{}, *comment.ParentCommentID) {
		return commentNotFound
	}
	if !r.exists(ctx, &models.User{}, comment.UserID) {
		return userNotFound
	}
	return postNotFound
}

func (r *commentRepository) exists(ctx context.Context, model any, id int) bool {
	var n int64
	if err := r.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return true
	}
	return n > 0
}

func (r *commentRepository) GetByID(ctx context.Context, id int) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Select(commentColumns).
		Preload("User").
		Where("comments.id = ?", id).
		First(&comment).Error
	if err != nil {
		return nil, database.TranslateError(err, commentNotFound)
	}
	return &comment, nil
}

// ListByPost returns every comment on the post, replies included, oldest first
func (r *commentRepository) ListByPost(ctx context.Context, postID int, page Pagination) ([]models.Comment, int64, error) {
	return r.list(ctx, whereColumn("comments.post_id", postID), page)
}

// ListReplies returns the direct replies to a comment, oldest first
func (r *commentRepository) ListReplies(ctx context.Context, parentID int, page Pagination) ([]models.Comment, int64, error) {
	return r.list(ctx, whereColumn("comments.parent_comment_id", parentID), page)
}

func (r *commentRepository) list(ctx context.Context, cond func(*gorm.DB) *gorm.DB, page Pagination) ([]models.Comment, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).Scopes(cond).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	comments := []models.Comment{}
	err := r.db.WithContext(ctx).
		Select(commentColumns).
		Scopes(cond).
		Preload("User").
		Order("comments.created_at ASC, comments.id ASC").
		Scopes(paginate(page)).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	result := r.db.WithContext(ctx).Model(comment).
		Omit(clause.Associations).
		Select("body", "was_edited").
		Updates(comment)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return database.TranslateError(gorm.ErrRecordNotFound, commentNotFound)
	}
	return nil
}

// Delete removes the comment. Its replies stay, with parent_comment_id set to NULL.
func (r *commentRepository) Delete(ctx context.Context, id int) error {
	result := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return database.TranslateError(gorm.ErrRecordNotFound, commentNotFound)
	}
	return nil
}

func whereColumn(column string, value int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" = ?", value)
	}
}
