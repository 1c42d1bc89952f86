package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/blog-platform/backend/internal/apperr"
	"github.com/emilythestrangee/blog-platform/backend/internal/config"
	"github.com/emilythestrangee/blog-platform/backend/internal/dto"
	"github.com/emilythestrangee/blog-platform/backend/internal/middleware"
	"github.com/emilythestrangee/blog-platform/backend/internal/models"
	"github.com/emilythestrangee/blog-platform/backend/internal/service"
	"github.com/emilythestrangee/blog-platform/backend/internal/validation"
)

// PageHandler serves the server-rendered site. Templates come from the templates package.
type PageHandler struct {
	auth         service.AuthService
	posts        service.PostService
	comments     service.CommentService
	secureCookie bool
	now          func() time.Time
}

func NewPageHandler(auth service.AuthService, posts service.PostService, comments service.CommentService, cfg *config.Config) *PageHandler {
	return &PageHandler{
		auth:         auth,
		posts:        posts,
		comments:     comments,
		secureCookie: cfg.IsProduction(),
		now:          time.Now,
	}
}

// postForm is the shape of the new/edit post form
type postForm struct {
	Title       string `form:"title"`
	Content     string `form:"content"`
	Tags        string `form:"tags"`
	IsPublished bool   `form:"is_published"`
}

func (h *PageHandler) data(c *gin.Context, title string) gin.H {
	data := gin.H{"Title": title}
	if user, ok := middleware.CurrentUser(c); ok {
		data["User"] = user
	}
	return data
}

func (h *PageHandler) renderError(c *gin.Context, err error) {
	status := statusFor(apperr.KindOf(err))
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	data := h.data(c, http.StatusText(status))
	data["Status"] = status
	data["Message"] = errorMessage(err)
	c.HTML(status, "error.html", data)
}

// Index lists published posts with search, tag filter and pagination
func (h *PageHandler) Index(c *gin.Context) {
	var query dto.PostQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.renderError(c, apperr.Validation("invalid query parameters", err))
		return
	}

	posts, total, err := h.posts.List(c.Request.Context(), query)
	if err != nil {
		h.renderError(c, err)
		return
	}

	data := h.data(c, "Posts")
	data["Query"] = query
	data["Posts"] = dto.MapPage(posts, query.PageQuery, total, dto.FromPost)
	c.HTML(http.StatusOK, "index.html", data)
}

func (h *PageHandler) LoginForm(c *gin.Context) {
	next := safeRedirect(c.Query("next"))
	if _, ok := middleware.CurrentUser(c); ok {
		c.Redirect(http.StatusSeeOther, next)
		return
	}

	data := h.data(c, "Log in")
	data["Next"] = next
	c.HTML(http.StatusOK, "login.html", data)
}

// Login checks the credentials and stores the access token in an HttpOnly cookie
func (h *PageHandler) Login(c *gin.Context) {
	next := safeRedirect(c.PostForm("next"))
	data := h.data(c, "Log in")
	data["Next"] = next

	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		data["Error"] = "username and password are required"
		data["Username"] = c.PostForm("username")
		c.HTML(http.StatusBadRequest, "login.html", data)
		return
	}

	_, token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if !apperr.IsKind(err, apperr.KindUnauthenticated) {
			h.renderError(c, err)
			return
		}
		data["Error"] = errorMessage(err)
		data["Username"] = req.Username
		c.HTML(http.StatusUnauthorized, "login.html", data)
		return
	}

	maxAge := int(token.ExpiresAt.Sub(h.now()).Seconds())
	h.setTokenCookie(c, token.Value, maxAge)
	c.Redirect(http.StatusSeeOther, next)
}

func (h *PageHandler) Logout(c *gin.Context) {
	h.setTokenCookie(c, "", -1)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *PageHandler) setTokenCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, value, maxAge, "/", "", h.secureCookie, true)
}

func (h *PageHandler) NewPostForm(c *gin.Context) {
	h.renderPostForm(c, http.StatusOK, "New post", "/posts/new", postForm{IsPublished: true}, nil)
}

func (h *PageHandler) CreatePost(c *gin.Context) {
	var form postForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderError(c, apperr.Validation("invalid form", err))
		return
	}

	post, err := h.posts.Create(c.Request.Context(), middleware.CurrentUserID(c), dto.CreatePostRequest{
		Title:       form.Title,
		Content:     form.Content,
		IsPublished: &form.IsPublished,
		Tags:        splitTags(form.Tags),
	})
	if err != nil {
		if apperr.IsKind(err, apperr.KindValidation) {
			h.renderPostForm(c, http.StatusBadRequest, "New post", "/posts/new", form, fieldErrors(err))
			return
		}
		h.renderError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, postPath(post.ID))
}

// ShowPost renders a post with its comments
func (h *PageHandler) ShowPost(c *gin.Context) {
	id, ok := h.pageID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	viewerID := middleware.CurrentUserID(c)

	post, err := h.posts.Get(ctx, viewerID, id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	query := dto.PageQuery{Page: 1, PageSize: validation.MaxPageSize}
	comments, total, err := h.comments.ListByPost(ctx, viewerID, id, query)
	if err != nil {
		h.renderError(c, err)
		return
	}

	data := h.data(c, post.Title)
	data["Post"] = dto.FromPost(post)
	data["Comments"] = dto.MapPage(comments, query, total, dto.FromComment)
	data["CanEdit"] = viewerID == post.UserID
	c.HTML(http.StatusOK, "post.html", data)
}

func (h *PageHandler) EditPostForm(c *gin.Context) {
	id, ok := h.pageID(c)
	if !ok {
		return
	}

	post, err := h.posts.GetOwned(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	form := postForm{
		Title:       post.Title,
		Content:     post.Content,
		Tags:        joinTags(post.Tags),
		IsPublished: post.IsPublished,
	}
	h.renderPostForm(c, http.StatusOK, "Edit post", postPath(id)+"/edit", form, nil)
}

func (h *PageHandler) UpdatePost(c *gin.Context) {
	id, ok := h.pageID(c)
	if !ok {
		return
	}
	var form postForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderError(c, apperr.Validation("invalid form", err))
		return
	}

	tags := splitTags(form.Tags)
	_, err := h.posts.Update(c.Request.Context(), middleware.CurrentUserID(c), id, dto.UpdatePostRequest{
		Title:       &form.Title,
		Content:     &form.Content,
		IsPublished: &form.IsPublished,
		Tags:        &tags,
	})
	if err != nil {
		if apperr.IsKind(err, apperr.KindValidation) {
			h.renderPostForm(c, http.StatusBadRequest, "Edit post", postPath(id)+"/edit", form, fieldErrors(err))
			return
		}
		h.renderError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, postPath(id))
}

func (h *PageHandler) DeletePost(c *gin.Context) {
	id, ok := h.pageID(c)
	if !ok {
		return
	}

	if err := h.posts.Delete(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		h.renderError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (h *PageHandler) CreateComment(c *gin.Context) {
	id, ok := h.pageID(c)
	if !ok {
		return
	}

	_, err := h.comments.Create(c.Request.Context(), middleware.CurrentUserID(c), id, dto.CreateCommentRequest{
		Body: c.PostForm("body"),
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, postPath(id)+"#comments")
}

func (h *PageHandler) renderPostForm(c *gin.Context, status int, title, action string, form postForm, errs []validation.FieldError) {
	data := h.data(c, title)
	data["Action"] = action
	data["Form"] = form
	data["Errors"] = errs
	c.HTML(status, "post_form.html", data)
}

func (h *PageHandler) pageID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		h.renderError(c, apperr.NotFound("page not found"))
		return 0, false
	}
	return id, true
}

func postPath(id int) string {
	return fmt.Sprintf("/posts/%d", id)
}

// safeRedirect only allows local absolute paths
func safeRedirect(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

func splitTags(raw string) []string {
	tags := []string{}
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func joinTags(tags []models.Tag) string {
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.Name
	}
	return strings.Join(names, ", ")
}
