package service

import (
	"context"
	"strings"

	"go-blog-api/internal/model"
	"go-blog-api/pkg/apierror"
)

type TagRepository interface {
	FindByID(ctx context.Context, id int64) (model.Tag, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, name string) (model.Tag, error)
	Update(ctx context.Context, t model.Tag) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.Tag, error)
	PostsWithTag(ctx context.Context, tagID int64) ([]model.PostSummary, error)
}

type TagService struct {
	repo TagRepository
}

func NewTagService(repo TagRepository) *TagService {
	return &TagService{repo: repo}
}

func (s *TagService) List(ctx context.Context) ([]model.Tag, error) {
	return s.repo.List(ctx)
}

func (s *TagService) Get(ctx context.Context, id int64) (model.TagDetail, error) {
	tag, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return model.TagDetail{}, err
	}

	posts, err := s.repo.PostsWithTag(ctx, id)
	if err != nil {
		return model.TagDetail{}, err
	}

	return model.TagDetail{ID: tag.ID, Name: tag.Name, Posts: posts}, nil
}

func (s *TagService) Create(ctx context.Context, name string) (model.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Tag{}, apierror.BadRequest("tag name is required", "name")
	}

	taken, err := s.repo.ExistsByName(ctx, name)
	if err != nil {
		return model.Tag{}, err
	}
	if taken {
		return model.Tag{}, model.ErrTagNameTaken
	}

	return s.repo.Create(ctx, name)
}

func (s *TagService) Rename(ctx context.Context, id int64, name string) (model.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Tag{}, apierror.BadRequest("tag name is required", "name")
	}

	tag, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return model.Tag{}, err
	}

	if name != tag.Name {
		taken, err := s.repo.ExistsByName(ctx, name)
		if err != nil {
			return model.Tag{}, err
		}
		if taken {
			return model.Tag{}, model.ErrTagNameTaken
		}
	}

	tag.Name = name
	if err := s.repo.Update(ctx, tag); err != nil {
		return model.Tag{}, err
	}

	return tag, nil
}

func (s *TagService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
