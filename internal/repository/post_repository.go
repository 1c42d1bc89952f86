package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emilythestrangee/blog-platform/backend/internal/database"
	"github.com/emilythestrangee/blog-platform/backend/internal/models"
)

const postNotFound = "post not found"

const postColumns = `posts.*,
	(SELECT COUNT(*) FROM post_reactions r WHERE r.post_id = posts.id) AS likes_count,
	(SELECT COUNT(*) FROM comments c WHERE c.post_id = posts.id) AS comments_count`

// PostFilter narrows a post listing. Only published posts match unless IncludeDrafts is set.
type PostFilter struct {
	Search        string
	Tag           string
	AuthorID      int
	BookmarkedBy  int
	IncludeDrafts bool
	Pagination
}

type PostRepository interface {
	// Create inserts the post and links tagNames, creating missing tags, in one transaction.
	Create(ctx context.Context, post *models.Post, tagNames []string) error
	GetByID(ctx context.Context, id int) (*models.Post, error)
	List(ctx context.Context, filter PostFilter) ([]models.Post, int64, error)
	// Update saves the editable fields. A non-nil tagNames replaces the whole tag set.
	Update(ctx context.Context, post *models.Post, tagNames []string) error
	Delete(ctx context.Context, id int) error
	IncrementViews(ctx context.Context, id int) error
	Count(ctx context.Context) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post, tagNames []string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(post).Error; err != nil {
			return err
		}
		return replacePostTags(tx, post.ID, tagNames)
	})
	return database.TranslateError(err, userNotFound)
}

// GetByID loads a post with its author, tags, like and comment counts
func (r *postRepository) GetByID(ctx context.Context, id int) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Select(postColumns).
		Preload("Author").
		Where("posts.id = ?", id).
		First(&post).Error
	if err != nil {
		return nil, database.TranslateError(err, postNotFound)
	}

	posts := []models.Post{post}
	if err := r.attachTags(ctx, posts); err != nil {
		return nil, err
	}
	return &posts[0], nil
}

func (r *postRepository) filtered(ctx context.Context, filter PostFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Post{})
	if !filter.IncludeDrafts {
		q = q.Where("posts.is_published = ?", true)
	}
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		q = q.Where("(posts.title ILIKE ? OR posts.content ILIKE ?)", pattern, pattern)
	}
	if filter.Tag != "" {
		q = q.Where(`EXISTS (
			SELECT 1 FROM post_tags pt JOIN tags t ON t.id = pt.tag_id
			WHERE pt.post_id = posts.id AND t.name = ?)`, filter.Tag)
	}
	if filter.AuthorID != 0 {
		q = q.Where("posts.user_id = ?", filter.AuthorID)
	}
	if filter.BookmarkedBy != 0 {
		q = q.Joins("JOIN bookmarks b ON b.post_id = posts.id AND b.user_id = ?", filter.BookmarkedBy)
	}
	return q
}

// List returns one page of posts, newest first, and the total matching the filter
func (r *postRepository) List(ctx context.Context, filter PostFilter) ([]models.Post, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "posts.created_at DESC, posts.id DESC"
	if filter.BookmarkedBy != 0 {
		order = "b.saved_at DESC, posts.id DESC"
	}

	posts := []models.Post{}
	err := r.filtered(ctx, filter).
		Select(postColumns).
		Preload("Author").
		Order(order).
		Scopes(paginate(filter.Pagination)).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	if err := r.attachTags(ctx, posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post, tagNames []string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(post).
			Omit(clause.Associations).
			Select("title", "content", "is_published").
			Updates(post)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if tagNames == nil {
			return nil
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		return replacePostTags(tx, post.ID, tagNames)
	})
	return database.TranslateError(err, postNotFound)
}

// Delete removes the post. Comments, tags links, likes and bookmarks cascade.
func (r *postRepository) Delete(ctx context.Context, id int) error {
	result := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return database.TranslateError(gorm.ErrRecordNotFound, postNotFound)
	}
	return nil
}

// IncrementViews bumps the counter in place, leaving updated_at alone
func (r *postRepository) IncrementViews(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("view_counter", gorm.Expr("view_counter + ?", 1)).Error
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&count).Error
	return count, err
}

type postTagRow struct {
	PostID      int
	ID          int
	Name        string
	Description *string
	CreatedAt   time.Time
}

func (r *postRepository) attachTags(ctx context.Context, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]int, len(posts))
	index := make(map[int]int, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
		index[posts[i].ID] = i
		posts[i].Tags = []models.Tag{}
	}

	var rows []postTagRow
	err := r.db.WithContext(ctx).
		Table("post_tags").
		Select("post_tags.post_id, tags.id, tags.name, tags.description, tags.created_at").
		Joins("JOIN tags ON tags.id = post_tags.tag_id").
		Where("post_tags.post_id IN ?", ids).
		Order("tags.name").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	for _, row := range rows {
		i := index[row.PostID]
		posts[i].Tags = append(posts[i].Tags, models.Tag{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
			CreatedAt:   row.CreatedAt,
		})
	}
	return nil
}

// replacePostTags looks up or creates each tag by name and links it to the post.
// Names must already be normalized.
func replacePostTags(tx *gorm.DB, postID int, tagNames []string) error {
	if len(tagNames) == 0 {
		return nil
	}

	tags, err := findOrCreateTags(tx, tagNames)
	if err != nil {
		return err
	}

	links := make([]models.PostTag, len(tags))
	for i, tag := range tags {
		links[i] = models.PostTag{PostID: postID, TagID: tag.ID}
	}
	return tx.Omit(clause.Associations).Create(&links).Error
}

func findOrCreateTags(tx *gorm.DB, names []string) ([]models.Tag, error) {
	candidates := make([]models.Tag, len(names))
	for i, name := range names {
		candidates[i] = models.Tag{Name: name}
	}

	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&candidates).Error
	if err != nil {
		return nil, err
	}

	var tags []models.Tag
	if err := tx.Where("name IN ?", names).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}
