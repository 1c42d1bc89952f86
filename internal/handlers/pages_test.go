package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/emilythestrangee/blog-platform/backend/internal/apperr"
	"github.com/emilythestrangee/blog-platform/backend/internal/dto"
	"github.com/emilythestrangee/blog-platform/backend/internal/middleware"
	"github.com/emilythestrangee/blog-platform/backend/internal/models"
	"github.com/emilythestrangee/blog-platform/backend/internal/service"
	"github.com/emilythestrangee/blog-platform/backend/internal/validation"
)

func tokenCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.TokenCookie {
			return c
		}
	}
	return nil
}

func TestPageHandler_Index(t *testing.T) {
	env := newTestEnv(t)
	query := dto.PostQuery{PageQuery: dto.PageQuery{Page: 1, PageSize: 20}, Tag: "go"}
	env.posts.On("List", mock.Anything, query).Return([]models.Post{*samplePost()}, int64(1), nil).Once()

	w := env.do(http.MethodGet, "/?tag=go", "", false)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Hello Gin")
	assert.Contains(t, body, `href="/posts/3"`)
	assert.Contains(t, body, "Page 1 of 1")
	assert.Contains(t, body, `href="/login"`)
	env.assertExpectations(t)
}

func TestPageHandler_IndexSignedIn(t *testing.T) {
	env := newTestEnv(t)
	env.posts.On("List", mock.Anything, mock.Anything).Return(nil, int64(0), nil).Once()

	w := env.do(http.MethodGet, "/", "", true)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "signed in as alice")
	assert.Contains(t, w.Body.String(), "No posts yet.")
}

func TestPageHandler_IndexInvalidPageSize(t *testing.T) {
	env := newTestEnv(t)
	env.posts.On("List", mock.Anything, mock.Anything).
		Return(nil, int64(0), validation.Pagination(1, 1000)).Once()

	w := env.do(http.MethodGet, "/?page_size=1000", "", false)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation failed")
}

func TestPageHandler_LoginSetsCookie(t *testing.T) {
	env := newTestEnv(t)
	env.auth.On("Login", mock.Anything, "alice", "secret1").
		Return(alice, &service.Token{Value: "jwt", ExpiresAt: time.Now().Add(time.Hour)}, nil).Once()

	w := env.submit("/login", url.Values{
		"username": {"alice"},
		"password": {"secret1"},
		"next":     {"/posts/3"},
	}, false)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/posts/3", w.Header().Get("Location"))
	cookie := tokenCookie(w)
	if assert.NotNil(t, cookie) {
		assert.Equal(t, "jwt", cookie.Value)
		assert.True(t, cookie.HttpOnly)
		assert.False(t, cookie.Secure)
		assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
		assert.Greater(t, cookie.MaxAge, 0)
	}
}

func TestPageHandler_LoginIgnoresOffsiteNext(t *testing.T) {
	env := newTestEnv(t)
	env.auth.On("Login", mock.Anything, "alice", "secret1").
		Return(alice, &service.Token{Value: "jwt", ExpiresAt: time.Now().Add(time.Hour)}, nil).Once()

	w := env.submit("/login", url.Values{
		"username": {"alice"},
		"password": {"secret1"},
		"next":     {"//evil.example.com"},
	}, false)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestPageHandler_LoginBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.auth.On("Login", mock.Anything, "alice", "nope").Return(nil, nil, service.ErrInvalidCredentials).Once()

	w := env.submit("/login", url.Values{"username": {"alice"}, "password": {"nope"}}, false)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid credentials")
	assert.Contains(t, w.Body.String(), `value="alice"`)
	assert.Nil(t, tokenCookie(w))
}

func TestPageHandler_LoginFormRedirectsSignedInUser(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/login?next=/posts/new", "", true)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/posts/new", w.Header().Get("Location"))

	w = env.do(http.MethodGet, "/login?next=/posts/new", "", false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="next" value="/posts/new"`)
}

func TestPageHandler_LogoutClearsCookie(t *testing.T) {
	env := newTestEnv(t)

	w := env.submit("/logout", url.Values{}, true)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	cookie := tokenCookie(w)
	if assert.NotNil(t, cookie) {
		assert.Empty(t, cookie.Value)
		assert.Less(t, cookie.MaxAge, 0)
	}
}

func TestPageHandler_WritePagesRedirectAnonymous(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/posts/new", "", false)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?next=%2Fposts%2Fnew", w.Header().Get("Location"))

	w = env.submit("/posts/3/comments", url.Values{"body": {"hi"}}, false)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	env.comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPageHandler_NewPostForm(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/posts/new", "", true)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `action="/posts/new"`)
	assert.Contains(t, w.Body.String(), "checked")
}

func TestPageHandler_CreatePost(t *testing.T) {
	env := newTestEnv(t)
	published := true
	req := dto.CreatePostRequest{Title: "Hello", Content: "World", IsPublished: &published, Tags: []string{"Go", "SQL"}}
	env.posts.On("Create", mock.Anything, 1, req).Return(&models.Post{ID: 7}, nil).Once()

	w := env.submit("/posts/new", url.Values{
		"title":        {"Hello"},
		"content":      {"World"},
		"tags":         {"Go, SQL ,"},
		"is_published": {"true"},
	}, true)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/posts/7", w.Header().Get("Location"))
	env.assertExpectations(t)
}

func TestPageHandler_CreatePostValidationRerendersForm(t *testing.T) {
	env := newTestEnv(t)
	errs := validation.Errors{{Field: "title", Message: "is required"}}
	env.posts.On("Create", mock.Anything, 1, mock.Anything).Return(nil, errs.Err()).Once()

	w := env.submit("/posts/new", url.Values{"content": {"draft body"}}, true)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "title: is required")
	assert.Contains(t, w.Body.String(), "draft body")
}

func TestPageHandler_ShowPost(t *testing.T) {
	env := newTestEnv(t)
	carol := models.User{ID: 3, Username: "carol"}
	env.posts.On("Get", mock.Anything, 0, 3).Return(samplePost(), nil).Once()
	env.comments.On("ListByPost", mock.Anything, 0, 3, dto.PageQuery{Page: 1, PageSize: validation.MaxPageSize}).
		Return([]models.Comment{{ID: 1, PostID: 3, User: carol, Body: "Nice post"}}, int64(1), nil).Once()

	w := env.do(http.MethodGet, "/posts/3", "", false)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Nice post")
	assert.Contains(t, body, "Comments (1)")
	assert.Contains(t, body, "to comment.")
	assert.NotContains(t, body, "/posts/3/edit")
	env.assertExpectations(t)
}

func TestPageHandler_ShowPostToAuthor(t *testing.T) {
	env := newTestEnv(t)
	post := samplePost()
	post.UserID = 1
	post.Author = *alice
	post.IsPublished = false
	env.posts.On("Get", mock.Anything, 1, 3).Return(post, nil).Once()
	env.comments.On("ListByPost", mock.Anything, 1, 3, mock.Anything).Return(nil, int64(0), nil).Once()

	w := env.do(http.MethodGet, "/posts/3", "", true)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/posts/3/edit")
	assert.Contains(t, w.Body.String(), "draft")
}

func TestPageHandler_ShowPostNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.posts.On("Get", mock.Anything, 0, 9).Return(nil, apperr.NotFound("post not found")).Once()

	w := env.do(http.MethodGet, "/posts/9", "", false)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "post not found")
}

func TestPageHandler_EditPostForm(t *testing.T) {
	env := newTestEnv(t)
	post := samplePost()
	post.Tags = []models.Tag{{Name: "go"}, {Name: "web"}}
	env.posts.On("GetOwned", mock.Anything, 1, 3).Return(post, nil).Once()
	env.posts.On("GetOwned", mock.Anything, 1, 4).Return(nil, apperr.Forbidden("you can only edit your own posts")).Once()

	w := env.do(http.MethodGet, "/posts/3/edit", "", true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="go, web"`)
	assert.Contains(t, w.Body.String(), `action="/posts/3/edit"`)

	w = env.do(http.MethodGet, "/posts/4/edit", "", true)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "you can only edit your own posts")
	env.assertExpectations(t)
}

func TestPageHandler_UpdatePostReplacesTags(t *testing.T) {
	env := newTestEnv(t)
	title, content, published := "New title", "New body", false
	tags := []string{}
	req := dto.UpdatePostRequest{Title: &title, Content: &content, IsPublished: &published, Tags: &tags}
	env.posts.On("Update", mock.Anything, 1, 3, req).Return(samplePost(), nil).Once()

	w := env.submit("/posts/3/edit", url.Values{"title": {title}, "content": {content}, "tags": {" , "}}, true)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/posts/3", w.Header().Get("Location"))
	env.assertExpectations(t)
}

func TestPageHandler_DeletePost(t *testing.T) {
	env := newTestEnv(t)
	env.posts.On("Delete", mock.Anything, 1, 3).Return(nil).Once()

	w := env.submit("/posts/3/delete", url.Values{}, true)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestPageHandler_CreateComment(t *testing.T) {
	env := newTestEnv(t)
	env.comments.On("Create", mock.Anything, 1, 3, dto.CreateCommentRequest{Body: "hi"}).
		Return(&models.Comment{ID: 9}, nil).Once()

	w := env.submit("/posts/3/comments", url.Values{"body": {"hi"}}, true)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/posts/3#comments", w.Header().Get("Location"))
}

func TestSafeRedirect(t *testing.T) {
	tests := map[string]string{
		"":                    "/",
		"/posts/3":            "/posts/3",
		"//evil.example.com":  "/",
		"/\\evil.example.com": "/",
		"https://example.com": "/",
	}
	for in, want := range tests {
		assert.Equal(t, want, safeRedirect(in), in)
	}
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"go", "web dev"}, splitTags(" go, ,web dev,"))
	assert.Equal(t, []string{}, splitTags(""))
}
