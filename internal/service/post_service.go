package service

import (
	"context"
	"strings"
	"time"

	"go-blog-api/internal/model"
	"go-blog-api/pkg/apierror"
)

type PostRepository interface {
	FindByID(ctx context.Context, id int64) (model.Post, error)
	List(ctx context.Context) ([]model.Post, error)
	Create(ctx context.Context, p model.Post) (int64, error)
	Update(ctx context.Context, p model.Post) error
	Delete(ctx context.Context, id int64) error
	ReplaceTags(ctx context.Context, postID int64, tagIDs []int64) error
}

type PostService struct {
	repo PostRepository
}

func NewPostService(repo PostRepository) *PostService {
	return &PostService{repo: repo}
}

func (s *PostService) List(ctx context.Context) ([]model.Post, error) {
	return s.repo.List(ctx)
}

func (s *PostService) Get(ctx context.Context, id int64) (model.Post, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *PostService) Create(ctx context.Context, author model.User, req model.CreatePostRequest) (model.Post, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || strings.TrimSpace(req.Content) == "" {
		return model.Post{}, apierror.BadRequest("title and content are required", "")
	}

	now := time.Now().UTC()
	id, err := s.repo.Create(ctx, model.Post{
		Title:     title,
		Content:   req.Content,
		User:      model.PostAuthor{ID: author.ID, Username: author.Username},
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return model.Post{}, err
	}

	if len(req.TagIDs) > 0 {
		if err := s.repo.ReplaceTags(ctx, id, req.TagIDs); err != nil {
			return model.Post{}, err
		}
	}

	return s.repo.FindByID(ctx, id)
}

// Update modifies a post. Only the author may do so.
func (s *PostService) Update(ctx context.Context, actorID int64, postID int64, req model.UpdatePostRequest) (model.Post, error) {
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return model.Post{}, err
	}

	if post.User.ID != actorID {
		return model.Post{}, model.ErrForbidden
	}

	title := strings.TrimSpace(req.Title)
	if title == "" || strings.TrimSpace(req.Content) == "" {
		return model.Post{}, apierror.BadRequest("title and content are required", "")
	}

	post.Title = title
	post.Content = req.Content
	post.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, post); err != nil {
		return model.Post{}, err
	}

	if req.TagIDs != nil {
		if err := s.repo.ReplaceTags(ctx, postID, req.TagIDs); err != nil {
			return model.Post{}, err
		}
	}

	return s.repo.FindByID(ctx, postID)
}

func (s *PostService) Delete(ctx context.Context, actorID int64, postID int64) error {
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.User.ID != actorID {
		return model.ErrForbidden
	}

	return s.repo.Delete(ctx, postID)
}
