package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go-blog-api/internal/model"
)

type fakePostRepo struct {
	mu     sync.Mutex
	posts  map[int64]model.Post
	tags   map[int64][]int64
	known  map[int64]model.Tag
	nextID int64
}

func newFakePostRepo(knownTags ...model.Tag) *fakePostRepo {
	known := map[int64]model.Tag{}
	for _, t := range knownTags {
		known[t.ID] = t
	}
	return &fakePostRepo{
		posts:  map[int64]model.Post{},
		tags:   map[int64][]int64{},
		known:  known,
		nextID: 1,
	}
}

func (f *fakePostRepo) FindByID(_ context.Context, id int64) (model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	post, ok := f.posts[id]
	if !ok {
		return model.Post{}, model.ErrPostNotFound
	}

	post.Tags = []model.Tag{}
	for _, tagID := range f.tags[id] {
		if tag, ok := f.known[tagID]; ok {
			post.Tags = append(post.Tags, tag)
		}
	}
	return post, nil
}

func (f *fakePostRepo) List(ctx context.Context) ([]model.Post, error) {
	f.mu.Lock()
	ids := make([]int64, 0, len(f.posts))
	for id := range f.posts {
		ids = append(ids, id)
	}
	f.mu.Unlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	posts := make([]model.Post, 0, len(ids))
	for _, id := range ids {
		post, err := f.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (f *fakePostRepo) Create(_ context.Context, p model.Post) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p.ID = f.nextID
	f.nextID++
	f.posts[p.ID] = p
	return p.ID, nil
}

func (f *fakePostRepo) Update(_ context.Context, p model.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.posts[p.ID]
	if !ok {
		return model.ErrPostNotFound
	}
	stored.Title = p.Title
	stored.Content = p.Content
	stored.UpdatedAt = p.UpdatedAt
	f.posts[p.ID] = stored
	return nil
}

func (f *fakePostRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.posts[id]; !ok {
		return model.ErrPostNotFound
	}
	delete(f.posts, id)
	delete(f.tags, id)
	return nil
}

func (f *fakePostRepo) ReplaceTags(_ context.Context, postID int64, tagIDs []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	kept := make([]int64, 0, len(tagIDs))
	for _, id := range tagIDs {
		if _, ok := f.known[id]; ok {
			kept = append(kept, id)
		}
	}
	f.tags[postID] = kept
	return nil
}

func testAuthor(id int64, username string) model.User {
	return model.User{ID: id, Username: username, CreatedAt: time.Now().UTC()}
}

func TestPostCreate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates a post with tags", func(t *testing.T) {
		repo := newFakePostRepo(model.Tag{ID: 1, Name: "go"}, model.Tag{ID: 2, Name: "http"})
		svc := NewPostService(repo)

		post, err := svc.Create(ctx, testAuthor(1, "alice"), model.CreatePostRequest{
			Title:   "Hello",
			Content: "First post",
			TagIDs:  []int64{1, 2},
		})
		require.NoError(t, err)
		require.Equal(t, "Hello", post.Title)
		require.Equal(t, int64(1), post.User.ID)
		require.Len(t, post.Tags, 2)
	})

	t.Run("unknown tag ids are skipped", func(t *testing.T) {
		repo := newFakePostRepo(model.Tag{ID: 1, Name: "go"})
		svc := NewPostService(repo)

		post, err := svc.Create(ctx, testAuthor(1, "alice"), model.CreatePostRequest{
			Title:   "Hello",
			Content: "First post",
			TagIDs:  []int64{1, 99},
		})
		require.NoError(t, err)
		require.Len(t, post.Tags, 1)
	})

	t.Run("requires title and content", func(t *testing.T) {
		repo := newFakePostRepo()
		svc := NewPostService(repo)

		_, err := svc.Create(ctx, testAuthor(1, "alice"), model.CreatePostRequest{Title: " ", Content: "x"})
		require.Error(t, err)

		_, err = svc.Create(ctx, testAuthor(1, "alice"), model.CreatePostRequest{Title: "x", Content: ""})
		require.Error(t, err)
	})
}

func TestPostOwnership(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakePostRepo(model.Tag{ID: 1, Name: "go"})
	svc := NewPostService(repo)

	post, err := svc.Create(ctx, testAuthor(1, "alice"), model.CreatePostRequest{
		Title:   "Hello",
		Content: "First post",
	})
	require.NoError(t, err)

	t.Run("non-author cannot update", func(t *testing.T) {
		_, err := svc.Update(ctx, 2, post.ID, model.UpdatePostRequest{Title: "Hacked", Content: "x"})
		require.ErrorIs(t, err, model.ErrForbidden)
	})

	t.Run("non-author cannot delete", func(t *testing.T) {
		require.ErrorIs(t, svc.Delete(ctx, 2, post.ID), model.ErrForbidden)
	})

	t.Run("author updates content and tags", func(t *testing.T) {
		updated, err := svc.Update(ctx, 1, post.ID, model.UpdatePostRequest{
			Title:   "Hello again",
			Content: "Edited",
			TagIDs:  []int64{1},
		})
		require.NoError(t, err)
		require.Equal(t, "Hello again", updated.Title)
		require.Len(t, updated.Tags, 1)
	})

	t.Run("author deletes", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, 1, post.ID))
		_, err := svc.Get(ctx, post.ID)
		require.ErrorIs(t, err, model.ErrPostNotFound)
	})
}
