package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/emilythestrangee/blog-platform/backend/internal/apperr"
	"github.com/emilythestrangee/blog-platform/backend/internal/dto"
	"github.com/emilythestrangee/blog-platform/backend/internal/models"
	"github.com/emilythestrangee/blog-platform/backend/internal/repository"
	"github.com/emilythestrangee/blog-platform/backend/internal/validation"
)

var (
	ErrUsernameTaken   = apperr.Conflict("username already taken")
	ErrEmailRegistered = apperr.Conflict("email already registered")
)

type UserService interface {
	Create(ctx context.Context, req dto.RegisterRequest) (*models.User, error)
	Get(ctx context.Context, id int) (*models.User, error)
	List(ctx context.Context, query dto.UserQuery) ([]models.User, int64, error)
	Update(ctx context.Context, actorID, id int, req dto.UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, actorID, id int) error
	Count(ctx context.Context) (int64, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

// Create validates the input, checks that username and email are free and stores a bcrypt hash
func (s *userService) Create(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	var errs validation.Errors
	errs.Check("username", validation.Username(username))
	errs.Check("email", validation.Email(email))
	errs.Check("password", validation.Password(req.Password))
	if err := errs.Err(); err != nil {
		return nil, err
	}

	if err := s.ensureUsernameFree(ctx, username); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		ProfileText:  strings.TrimSpace(req.ProfileText),
		AvatarPath:   strings.TrimSpace(req.AvatarPath),
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Get(ctx context.Context, id int) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *userService) List(ctx context.Context, query dto.UserQuery) ([]models.User, int64, error) {
	if err := query.Validate(); err != nil {
		return nil, 0, err
	}
	return s.users.List(ctx, repository.UserFilter{
		Search:     strings.TrimSpace(query.Search),
		Pagination: repository.Pagination{Page: query.Page, PageSize: query.PageSize},
	})
}

// Update lets a user edit their own profile. Uniqueness is checked again for changed fields.
func (s *userService) Update(ctx context.Context, actorID, id int, req dto.UpdateUserRequest) (*models.User, error) {
	if actorID != id {
		return nil, apperr.Forbidden("you can only update your own profile")
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var errs validation.Errors
	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if msg := validation.Username(username); msg != "" {
			errs.Check("username", msg)
		} else if username != user.Username {
			if err := s.ensureUsernameFree(ctx, username); err != nil {
				return nil, err
			}
			user.Username = username
		}
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if msg := validation.Email(email); msg != "" {
			errs.Check("email", msg)
		} else if !strings.EqualFold(email, user.Email) {
			if err := s.ensureEmailFree(ctx, email); err != nil {
				return nil, err
			}
			user.Email = email
		}
	}
	if req.Password != nil {
		if msg := validation.Password(*req.Password); msg != "" {
			errs.Check("password", msg)
		} else {
			hash, err := HashPassword(*req.Password)
			if err != nil {
				return nil, fmt.Errorf("failed to hash password: %w", err)
			}
			user.PasswordHash = hash
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	if req.ProfileText != nil {
		user.ProfileText = strings.TrimSpace(*req.ProfileText)
	}
	if req.AvatarPath != nil {
		user.AvatarPath = strings.TrimSpace(*req.AvatarPath)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}

// Delete removes the account along with everything it owns
func (s *userService) Delete(ctx context.Context, actorID, id int) error {
	if actorID != id {
		return apperr.Forbidden("you can only delete your own account")
	}
	return s.users.Delete(ctx, id)
}

func (s *userService) Count(ctx context.Context) (int64, error) {
	return s.users.Count(ctx)
}

func (s *userService) ensureUsernameFree(ctx context.Context, username string) error {
	_, err := s.users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return ErrUsernameTaken
	case apperr.IsKind(err, apperr.KindNotFound):
		return nil
	default:
		return err
	}
}

func (s *userService) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return ErrEmailRegistered
	case apperr.IsKind(err, apperr.KindNotFound):
		return nil
	default:
		return err
	}
}
