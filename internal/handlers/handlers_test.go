package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/blog-platform/backend/internal/apperr"
	"github.com/emilythestrangee/blog-platform/backend/internal/config"
	"github.com/emilythestrangee/blog-platform/backend/internal/middleware"
	"github.com/emilythestrangee/blog-platform/backend/internal/models"
	"github.com/emilythestrangee/blog-platform/backend/internal/templates"
)

const validToken = "valid-token"

var alice = &models.User{ID: 1, Username: "alice", Email: "alice@example.com", IsActive: true}

type testEnv struct {
	router    *gin.Engine
	auth      *MockAuthService
	users     *MockUserService
	posts     *MockPostService
	comments  *MockCommentService
	tags      *MockTagService
	reactions *MockReactionService
	db        *MockHealthChecker
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		auth:      new(MockAuthService),
		users:     new(MockUserService),
		posts:     new(MockPostService),
		comments:  new(MockCommentService),
		tags:      new(MockTagService),
		reactions: new(MockReactionService),
		db:        new(MockHealthChecker),
	}
	env.auth.On("Authenticate", mock.Anything, validToken).Return(alice, nil).Maybe()
	env.auth.On("Authenticate", mock.Anything, mock.Anything).
		Return(nil, apperr.Unauthenticated("invalid token")).Maybe()

	h := NewHandler(Services{
		Auth:      env.auth,
		Users:     env.users,
		Posts:     env.posts,
		Comments:  env.comments,
		Tags:      env.tags,
		Reactions: env.reactions,
		DB:        env.db,
	}, &config.Config{AppEnv: "test"})

	tmpl, err := templates.Load()
	require.NoError(t, err)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.GET("/health", h.Health.Health)

	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuth(env.auth))
	requireAuth := middleware.RequireAuth(env.auth)

	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.GET("/auth/me", requireAuth, h.Auth.Me)

	api.GET("/users", h.User.List)
	api.POST("/users", h.User.Create)
	api.GET("/users/:id", h.User.Get)
	api.PUT("/users/:id", requireAuth, h.User.Update)
	api.DELETE("/users/:id", requireAuth, h.User.Delete)
	api.GET("/users/:id/posts", h.User.Posts)
	api.GET("/users/:id/followers", h.User.Followers)
	api.GET("/users/:id/following", h.User.Following)
	api.POST("/users/:id/follow", requireAuth, h.User.Follow)
	api.DELETE("/users/:id/follow", requireAuth, h.User.Unfollow)
	api.GET("/me/bookmarks", requireAuth, h.User.Bookmarks)

	api.GET("/posts", h.Post.List)
	api.POST("/posts", requireAuth, h.Post.Create)
	api.GET("/posts/:id", h.Post.Get)
	api.PUT("/posts/:id", requireAuth, h.Post.Update)
	api.DELETE("/posts/:id", requireAuth, h.Post.Delete)
	api.POST("/posts/:id/like", requireAuth, h.Post.Like)
	api.DELETE("/posts/:id/like", requireAuth, h.Post.Unlike)
	api.POST("/posts/:id/bookmark", requireAuth, h.Post.Bookmark)
	api.DELETE("/posts/:id/bookmark", requireAuth, h.Post.Unbookmark)
	api.GET("/posts/:id/comments", h.Comment.List)
	api.POST("/posts/:id/comments", requireAuth, h.Comment.Create)
	api.GET("/comments/:id/replies", h.Comment.Replies)
	api.PUT("/comments/:id", requireAuth, h.Comment.Update)
	api.DELETE("/comments/:id", requireAuth, h.Comment.Delete)

	api.GET("/tags", h.Tag.List)
	api.POST("/tags", requireAuth, h.Tag.Create)
	api.GET("/tags/:name", h.Tag.Get)

	site := r.Group("/")
	site.Use(middleware.OptionalAuth(env.auth))
	site.GET("/", h.Page.Index)
	site.GET("/login", h.Page.LoginForm)
	site.POST("/login", h.Page.Login)
	site.POST("/logout", h.Page.Logout)
	site.GET("/posts/:id", h.Page.ShowPost)
	write := site.Group("/", middleware.RequireLogin())
	write.GET("/posts/new", h.Page.NewPostForm)
	write.POST("/posts/new", h.Page.CreatePost)
	write.GET("/posts/:id/edit", h.Page.EditPostForm)
	write.POST("/posts/:id/edit", h.Page.UpdatePost)
	write.POST("/posts/:id/delete", h.Page.DeletePost)
	write.POST("/posts/:id/comments", h.Page.CreateComment)

	env.router = r
	return env
}

func (e *testEnv) assertExpectations(t *testing.T) {
	t.Helper()
	e.users.AssertExpectations(t)
	e.posts.AssertExpectations(t)
	e.comments.AssertExpectations(t)
	e.tags.AssertExpectations(t)
	e.reactions.AssertExpectations(t)
	e.db.AssertExpectations(t)
}

// do sends a JSON request, signed in as alice when authed is true
func (e *testEnv) do(method, path, body string, authed bool) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+validToken)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// submit posts an HTML form
func (e *testEnv) submit(path string, form url.Values, authed bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if authed {
		req.Header.Set("Authorization", "Bearer "+validToken)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
