package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-blog-api/internal/model"
)

type TagRepository struct {
	pool *pgxpool.Pool
}

func NewTagRepository(pool *pgxpool.Pool) *TagRepository {
	return &TagRepository{pool: pool}
}

func (r *TagRepository) FindByID(ctx context.Context, id int64) (model.Tag, error) {
	var t model.Tag
	err := r.pool.QueryRow(ctx,
		`SELECT id, name FROM tags WHERE id = $1`, id).Scan(&t.ID, &t.Name)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Tag{}, model.ErrTagNotFound
	}
	if err != nil {
		return model.Tag{}, fmt.Errorf("find tag by id: %w", err)
	}
	return t, nil
}

func (r *TagRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM tags WHERE name = $1)`,
		strings.TrimSpace(name)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check tag name exists: %w", err)
	}
	return exists, nil
}

func (r *TagRepository) Create(ctx context.Context, name string) (model.Tag, error) {
	var t model.Tag
	t.Name = name
	err := r.pool.QueryRow(ctx,
		`INSERT INTO tags (name) VALUES ($1) RETURNING id`, name).Scan(&t.ID)
	if err != nil {
		return model.Tag{}, fmt.Errorf("create tag: %w", err)
	}
	return t, nil
}

func (r *TagRepository) Update(ctx context.Context, t model.Tag) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE tags SET name = $2 WHERE id = $1`, t.ID, t.Name)
	if err != nil {
		return fmt.Errorf("update tag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTagNotFound
	}
	return nil
}

func (r *TagRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTagNotFound
	}
	return nil
}

func (r *TagRepository) List(ctx context.Context) ([]model.Tag, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM tags ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	tags := make([]model.Tag, 0)
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// PostsWithTag lists the posts carrying the tag, newest last.
func (r *TagRepository) PostsWithTag(ctx context.Context, tagID int64) ([]model.PostSummary, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.id, p.title
		 FROM posts p
		 JOIN post_tags pt ON pt.post_id = p.id
		 WHERE pt.tag_id = $1
		 ORDER BY p.id`, tagID)
	if err != nil {
		return nil, fmt.Errorf("list posts with tag: %w", err)
	}
	defer rows.Close()

	posts := make([]model.PostSummary, 0)
	for rows.Next() {
		var p model.PostSummary
		if err := rows.Scan(&p.ID, &p.Title); err != nil {
			return nil, fmt.Errorf("scan tagged post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
