package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go-blog-api/internal/auth"
	"go-blog-api/internal/model"
	"go-blog-api/pkg/apierror"
)

// UserRepository extends the auth-facing store with the CRUD surface the
// user endpoints need.
type UserRepository interface {
	UserStore
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, u model.User) (model.User, error)
	Update(ctx context.Context, u model.User) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.User, error)
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) List(ctx context.Context) ([]model.UserProfile, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	profiles := make([]model.UserProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.Profile())
	}
	return profiles, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (model.UserProfile, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return model.UserProfile{}, err
	}
	return user.Profile(), nil
}

// Register creates a user. The password is hashed here, at the explicit
// credential-change call site, so plaintext never travels past this point.
func (s *UserService) Register(ctx context.Context, req model.CreateUserRequest) (model.UserProfile, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	if len(username) < 3 {
		return model.UserProfile{}, apierror.BadRequest("username must be at least 3 characters", "username")
	}
	if len(req.Password) < 6 {
		return model.UserProfile{}, apierror.BadRequest("password must be at least 6 characters", "password")
	}

	taken, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return model.UserProfile{}, err
	}
	if taken {
		return model.UserProfile{}, model.ErrUsernameTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("register: %w", err)
	}

	now := time.Now().UTC()
	user, err := s.repo.Create(ctx, model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return model.UserProfile{}, err
	}

	return user.Profile(), nil
}

// Update lets a user change their own username, email or password. A
// password change re-hashes explicitly here.
func (s *UserService) Update(ctx context.Context, actorID int64, targetID int64, req model.UpdateUserRequest) (model.UserProfile, error) {
	if actorID != targetID {
		return model.UserProfile{}, model.ErrForbidden
	}

	user, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return model.UserProfile{}, err
	}

	if username := strings.TrimSpace(req.Username); username != "" && !strings.EqualFold(username, user.Username) {
		taken, err := s.repo.ExistsByUsername(ctx, username)
		if err != nil {
			return model.UserProfile{}, err
		}
		if taken {
			return model.UserProfile{}, model.ErrUsernameTaken
		}
		user.Username = username
	}

	if email := strings.TrimSpace(req.Email); email != "" {
		user.Email = email
	}

	user.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, user); err != nil {
		return model.UserProfile{}, err
	}

	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return model.UserProfile{}, apierror.New("BAD_REQUEST", "invalid password", "password", http.StatusBadRequest)
		}
		if err := s.repo.UpdatePassword(ctx, user.ID, hash); err != nil {
			return model.UserProfile{}, err
		}
	}

	return user.Profile(), nil
}

func (s *UserService) Delete(ctx context.Context, actorID int64, targetID int64) error {
	if actorID != targetID {
		return model.ErrForbidden
	}
	return s.repo.Delete(ctx, targetID)
}
