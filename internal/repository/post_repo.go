package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-blog-api/internal/model"
)

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

func (r *PostRepository) FindByID(ctx context.Context, id int64) (model.Post, error) {
	var p model.Post
	err := r.pool.QueryRow(ctx,
		`SELECT p.id, p.title, p.content, p.created_at, p.updated_at, u.id, u.username
		 FROM posts p
		 JOIN users u ON u.id = p.user_id
		 WHERE p.id = $1`, id).
		Scan(&p.ID, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt,
			&p.User.ID, &p.User.Username)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Post{}, model.ErrPostNotFound
	}
	if err != nil {
		return model.Post{}, fmt.Errorf("find post by id: %w", err)
	}

	tagsByPost, err := r.tagsForPosts(ctx, []int64{p.ID})
	if err != nil {
		return model.Post{}, err
	}
	p.Tags = tagsByPost[p.ID]
	if p.Tags == nil {
		p.Tags = []model.Tag{}
	}

	return p, nil
}

func (r *PostRepository) List(ctx context.Context) ([]model.Post, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.id, p.title, p.content, p.created_at, p.updated_at, u.id, u.username
		 FROM posts p
		 JOIN users u ON u.id = p.user_id
		 ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]model.Post, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt,
			&p.User.ID, &p.User.Username); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		p.Tags = []model.Tag{}
		posts = append(posts, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return posts, nil
	}

	tagsByPost, err := r.tagsForPosts(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if tags, ok := tagsByPost[posts[i].ID]; ok {
			posts[i].Tags = tags
		}
	}

	return posts, nil
}

func (r *PostRepository) Create(ctx context.Context, p model.Post) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO posts (title, content, user_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		p.Title, p.Content, p.User.ID, p.CreatedAt, p.UpdatedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create post: %w", err)
	}
	return id, nil
}

func (r *PostRepository) Update(ctx context.Context, p model.Post) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE posts SET title = $2, content = $3, updated_at = $4 WHERE id = $1`,
		p.ID, p.Title, p.Content, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

// ReplaceTags swaps the post's tag set for tagIDs. Unknown tag ids are
// ignored by the INSERT's FK subquery rather than failing the whole call.
func (r *PostRepository) ReplaceTags(ctx context.Context, postID int64, tagIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace tags: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("clear post tags: %w", err)
	}

	if len(tagIDs) > 0 {
		_, err = tx.Exec(ctx,
			`INSERT INTO post_tags (post_id, tag_id)
			 SELECT $1, t.id FROM tags t WHERE t.id = ANY($2)
			 ON CONFLICT DO NOTHING`,
			postID, tagIDs)
		if err != nil {
			return fmt.Errorf("attach post tags: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit replace tags: %w", err)
	}
	return nil
}

func (r *PostRepository) tagsForPosts(ctx context.Context, postIDs []int64) (map[int64][]model.Tag, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT pt.post_id, t.id, t.name
		 FROM post_tags pt
		 JOIN tags t ON t.id = pt.tag_id
		 WHERE pt.post_id = ANY($1)
		 ORDER BY t.id`, postIDs)
	if err != nil {
		return nil, fmt.Errorf("load post tags: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]model.Tag)
	for rows.Next() {
		var postID int64
		var t model.Tag
		if err := rows.Scan(&postID, &t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scan post tag: %w", err)
		}
		out[postID] = append(out[postID], t)
	}
	return out, rows.Err()
}
