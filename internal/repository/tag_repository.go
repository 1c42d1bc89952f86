package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/emilythestrangee/blog-platform/backend/internal/apperr"
	"github.com/emilythestrangee/blog-platform/backend/internal/database"
	"github.com/emilythestrangee/blog-platform/backend/internal/models"
)

const tagNotFound = "tag not found"

const tagColumns = `tags.*,
	(SELECT COUNT(*) FROM post_tags pt JOIN posts p ON p.id = pt.post_id
		WHERE pt.tag_id = tags.id AND p.is_published) AS posts_count`

type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	GetByName(ctx context.Context, name string) (*models.Tag, error)
	List(ctx context.Context) ([]models.Tag, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	err := r.db.WithContext(ctx).Create(tag).Error
	if database.IsUniqueViolation(err) {
		return apperr.Wrap(apperr.KindConflict, "tag already exists", err)
	}
	return err
}

func (r *tagRepository) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).Select(tagColumns).Where("tags.name = ?", name).First(&tag).Error; err != nil {
		return nil, database.TranslateError(err, tagNotFound)
	}
	return &tag, nil
}

// List returns every tag by name with the number of published posts using it
func (r *tagRepository) List(ctx context.Context) ([]models.Tag, error) {
	tags := []models.Tag{}
	if err := r.db.WithContext(ctx).Select(tagColumns).Order("tags.name").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}
