package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/emilythestrangee/blog-platform/backend/internal/dto"
	"github.com/emilythestrangee/blog-platform/backend/internal/models"
	"github.com/emilythestrangee/blog-platform/backend/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, *service.Token, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.User), args.Get(1).(*service.Token), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, login, password string) (*models.User, *service.Token, error) {
	args := m.Called(ctx, login, password)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.User), args.Get(1).(*service.Token), args.Error(2)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *MockAuthService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Create(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, id int) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context, query dto.UserQuery) ([]models.User, int64, error) {
	args := m.Called(ctx, query)
	users, _ := args.Get(0).([]models.User)
	return users, args.Get(1).(int64), args.Error(2)
}

func (m *MockUserService) Update(ctx context.Context, actorID, id int, req dto.UpdateUserRequest) (*models.User, error) {
	args := m.Called(ctx, actorID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, actorID, id int) error {
	return m.Called(ctx, actorID, id).Error(0)
}

func (m *MockUserService) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) Create(ctx context.Context, authorID int, req dto.CreatePostRequest) (*models.Post, error) {
	args := m.Called(ctx, authorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) Get(ctx context.Context, viewerID, id int) (*models.Post, error) {
	args := m.Called(ctx, viewerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) GetOwned(ctx context.Context, actorID, id int) (*models.Post, error) {
	args := m.Called(ctx, actorID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) List(ctx context.Context, query dto.PostQuery) ([]models.Post, int64, error) {
	args := m.Called(ctx, query)
	posts, _ := args.Get(0).([]models.Post)
	return posts, args.Get(1).(int64), args.Error(2)
}

func (m *MockPostService) ListByAuthor(ctx context.Context, viewerID, authorID int, query dto.PageQuery) ([]models.Post, int64, error) {
	args := m.Called(ctx, viewerID, authorID, query)
	posts, _ := args.Get(0).([]models.Post)
	return posts, args.Get(1).(int64), args.Error(2)
}

func (m *MockPostService) Update(ctx context.Context, actorID, id int, req dto.UpdatePostRequest) (*models.Post, error) {
	args := m.Called(ctx, actorID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) Delete(ctx context.Context, actorID, id int) error {
	return m.Called(ctx, actorID, id).Error(0)
}

func (m *MockPostService) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) Create(ctx context.Context, userID, postID int, req dto.CreateCommentRequest) (*models.Comment, error) {
	args := m.Called(ctx, userID, postID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) ListByPost(ctx context.Context, viewerID, postID int, query dto.PageQuery) ([]models.Comment, int64, error) {
	args := m.Called(ctx, viewerID, postID, query)
	comments, _ := args.Get(0).([]models.Comment)
	return comments, args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentService) Replies(ctx context.Context, viewerID, commentID int, query dto.PageQuery) ([]models.Comment, int64, error) {
	args := m.Called(ctx, viewerID, commentID, query)
	comments, _ := args.Get(0).([]models.Comment)
	return comments, args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentService) Update(ctx context.Context, actorID, id int, req dto.UpdateCommentRequest) (*models.Comment, error) {
	args := m.Called(ctx, actorID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) Delete(ctx context.Context, actorID, id int) error {
	return m.Called(ctx, actorID, id).Error(0)
}

type MockTagService struct {
	mock.Mock
}

func (m *MockTagService) List(ctx context.Context) ([]models.Tag, error) {
	args := m.Called(ctx)
	tags, _ := args.Get(0).([]models.Tag)
	return tags, args.Error(1)
}

func (m *MockTagService) Create(ctx context.Context, req dto.CreateTagRequest) (*models.Tag, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tag), args.Error(1)
}

func (m *MockTagService) Get(ctx context.Context, name string) (*models.Tag, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tag), args.Error(1)
}

type MockReactionService struct {
	mock.Mock
}

func (m *MockReactionService) Like(ctx context.Context, userID, postID int) error {
	return m.Called(ctx, userID, postID).Error(0)
}

func (m *MockReactionService) Unlike(ctx context.Context, userID, postID int) error {
	return m.Called(ctx, userID, postID).Error(0)
}

func (m *MockReactionService) Bookmark(ctx context.Context, userID, postID int) error {
	return m.Called(ctx, userID, postID).Error(0)
}

func (m *MockReactionService) Unbookmark(ctx context.Context, userID, postID int) error {
	return m.Called(ctx, userID, postID).Error(0)
}

func (m *MockReactionService) Follow(ctx context.Context, followerID, followingID int) error {
	return m.Called(ctx, followerID, followingID).Error(0)
}

func (m *MockReactionService) Unfollow(ctx context.Context, followerID, followingID int) error {
	return m.Called(ctx, followerID, followingID).Error(0)
}

func (m *MockReactionService) IsFollowing(ctx context.Context, followerID, followingID int) (bool, error) {
	args := m.Called(ctx, followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReactionService) PostStatus(ctx context.Context, userID, postID int) (service.PostStatus, error) {
	args := m.Called(ctx, userID, postID)
	return args.Get(0).(service.PostStatus), args.Error(1)
}

func (m *MockReactionService) Bookmarks(ctx context.Context, userID int, query dto.PageQuery) ([]models.Post, int64, error) {
	args := m.Called(ctx, userID, query)
	posts, _ := args.Get(0).([]models.Post)
	return posts, args.Get(1).(int64), args.Error(2)
}

func (m *MockReactionService) Followers(ctx context.Context, userID int, query dto.PageQuery) ([]models.User, int64, error) {
	args := m.Called(ctx, userID, query)
	users, _ := args.Get(0).([]models.User)
	return users, args.Get(1).(int64), args.Error(2)
}

func (m *MockReactionService) Following(ctx context.Context, userID int, query dto.PageQuery) ([]models.User, int64, error) {
	args := m.Called(ctx, userID, query)
	users, _ := args.Get(0).([]models.User)
	return users, args.Get(1).(int64), args.Error(2)
}

type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) Health(ctx context.Context) map[string]string {
	return m.Called(ctx).Get(0).(map[string]string)
}
