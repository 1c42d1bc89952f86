package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/emilythestrangee/blog-platform/backend/internal/database"
	"github.com/emilythestrangee/blog-platform/backend/internal/models"
)

const userNotFound = "user not found"

const userColumns = `users.*,
	(SELECT COUNT(*) FROM posts p WHERE p.user_id = users.id AND p.is_published) AS posts_count,
	(SELECT COUNT(*) FROM user_subscriptions s WHERE s.following_id = users.id) AS followers_count,
	(SELECT COUNT(*) FROM user_subscriptions s WHERE s.follower_id = users.id) AS following_count`

// UserFilter narrows a user listing. FollowersOf and FollowingOf walk the follow graph.
type UserFilter struct {
	Search      string
	FollowersOf int
	FollowingOf int
	Pagination
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, filter UserFilter) ([]models.User, int64, error)
	Update(ctx context.Context, user *models.User) error
	UpdateLastLogin(ctx context.Context, id int, at time.Time) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return database.TranslateError(r.db.WithContext(ctx).Create(user).Error, userNotFound)
}

// GetByID loads a user together with its post and follow counts
func (r *userRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Select(userColumns).Where("users.id = ?", id).First(&user).Error
	if err != nil {
		return nil, database.TranslateError(err, userNotFound)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, database.TranslateError(err, userNotFound)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		return nil, database.TranslateError(err, userNotFound)
	}
	return &user, nil
}

func (r *userRepository) filtered(ctx context.Context, filter UserFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.User{})
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		q = q.Where("(users.username ILIKE ? OR users.email ILIKE ?)", pattern, pattern)
	}
	if filter.FollowersOf != 0 {
		q = q.Joins("JOIN user_subscriptions f ON f.follower_id = users.id AND f.following_id = ?", filter.FollowersOf)
	}
	if filter.FollowingOf != 0 {
		q = q.Joins("JOIN user_subscriptions f ON f.following_id = users.id AND f.follower_id = ?", filter.FollowingOf)
	}
	return q
}

// List returns one page of users and the total matching the filter
func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]models.User, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "users.id ASC"
	if filter.FollowersOf != 0 || filter.FollowingOf != 0 {
		order = "f.subscribed_at DESC, users.id DESC"
	}

	users := []models.User{}
	err := r.filtered(ctx, filter).
		Select(userColumns).
		Order(order).
		Scopes(paginate(filter.Pagination)).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Model(user).
		Select("email", "username", "password_hash", "profile_text", "avatar_path", "is_active").
		Updates(user).Error
	return database.TranslateError(err, userNotFound)
}

// UpdateLastLogin records a successful login without touching updated_at
func (r *userRepository) UpdateLastLogin(ctx context.Context, id int, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("last_login", at).Error
}

// Delete removes the user. Posts, comments and edges go with it through ON DELETE CASCADE.
func (r *userRepository) Delete(ctx context.Context, id int) error {
	result := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return database.TranslateError(gorm.ErrRecordNotFound, userNotFound)
	}
	return nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}
