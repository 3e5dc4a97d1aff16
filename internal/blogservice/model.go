package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	ErrRecordNotFound   = errors.New("record not found")
	ErrDuplicateTitle   = errors.New("duplicate title")
	ErrAuthorForeignKey = errors.New("author_id does not exist")
)

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

// ForeignKeyError is a helper function to check if the error is a foreign key
// constraint error.
func ForeignKeyError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23503" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

func uniqueViolation(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" && pqErr.Constraint == name
	}

	return false
}

func (m *BlogModel) insert(ctx context.Context, b *Blog) error {
	query := `
		INSERT INTO blogs (title, description, body, tags, author_id, state, reading_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, read_count, created_at, updated_at`

	args := []any{
		b.Title,
		b.Description,
		b.Body,
		pq.Array(b.Tags),
		b.Author.ID,
		b.State,
		b.ReadingTime,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&b.ID, &b.ReadCount, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		switch {
		case uniqueViolation(err, "blogs_title_key"):
			return ErrDuplicateTitle
		case ForeignKeyError(err, "blogs_author_id_fkey"):
			return ErrAuthorForeignKey
		default:
			return err
		}
	}

	return nil
}

// getBlogByID fetches a blog with its author populated from the users table.
func (m *BlogModel) getBlogByID(ctx context.Context, id int64) (*Blog, error) {
	query := `
		SELECT b.id, b.title, b.description, b.body, b.tags, b.state, b.read_count, b.reading_time, b.created_at, b.updated_at,
			u.id, u.first_name, u.last_name, u.email
		FROM blogs b
		JOIN users u ON u.id = b.author_id
		WHERE b.id = $1`

	row := m.db.QueryRowContext(ctx, query, id)

	var b Blog
	err := row.Scan(&b.ID, &b.Title, &b.Description, &b.Body, pq.Array(&b.Tags), &b.State, &b.ReadCount, &b.ReadingTime, &b.CreatedAt, &b.UpdatedAt,
		&b.Author.ID, &b.Author.FirstName, &b.Author.LastName, &b.Author.Email)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &b, nil
}

func (m *BlogModel) update(ctx context.Context, b *Blog) error {
	query := `
		UPDATE blogs
		SET title = $1, description = $2, body = $3, tags = $4, state = $5, reading_time = $6, updated_at = now()
		WHERE id = $7
		RETURNING updated_at`

	args := []any{
		b.Title,
		b.Description,
		b.Body,
		pq.Array(b.Tags),
		b.State,
		b.ReadingTime,
		b.ID,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&b.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrRecordNotFound
		case uniqueViolation(err, "blogs_title_key"):
			return ErrDuplicateTitle
		default:
			return err
		}
	}

	return nil
}

func (m *BlogModel) delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM blogs
		WHERE id = $1`

	res, err := m.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}

// incrementReadCount bumps the read counter by one and returns the new value. The
// increment happens in the store, but nothing serializes it against a concurrent
// fetch-then-respond of the same blog.
func (m *BlogModel) incrementReadCount(ctx context.Context, id int64) (int, error) {
	query := `
		UPDATE blogs
		SET read_count = read_count + 1
		WHERE id = $1
		RETURNING read_count`

	var count int
	err := m.db.QueryRowContext(ctx, query, id).Scan(&count)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return 0, ErrRecordNotFound
		default:
			return 0, err
		}
	}

	return count, nil
}

// listBlogs runs the dynamic list query. authorID restricts to one author when
// non-zero.
func (m *BlogModel) listBlogs(ctx context.Context, f ListFilters, authorID int64) ([]Blog, error) {
	where, args := f.where(authorID)

	args = append(args, f.Limit, f.offset())

	query := fmt.Sprintf(`
		SELECT b.id, b.title, b.description, b.body, b.tags, b.state, b.read_count, b.reading_time, b.created_at, b.updated_at,
			u.id, u.first_name, u.last_name, u.email
		FROM blogs b
		JOIN users u ON u.id = b.author_id
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`, where, f.orderBy(), len(args)-1, len(args))

	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []Blog{}
	for rows.Next() {
		var b Blog
		err := rows.Scan(&b.ID, &b.Title, &b.Description, &b.Body, pq.Array(&b.Tags), &b.State, &b.ReadCount, &b.ReadingTime, &b.CreatedAt, &b.UpdatedAt,
			&b.Author.ID, &b.Author.FirstName, &b.Author.LastName, &b.Author.Email)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

// countBlogs counts the documents matching the same filters as listBlogs, before
// pagination.
func (m *BlogModel) countBlogs(ctx context.Context, f ListFilters, authorID int64) (int, error) {
	where, args := f.where(authorID)

	query := fmt.Sprintf(`
		SELECT count(*)
		FROM blogs b
		WHERE %s`, where)

	var total int
	err := m.db.QueryRowContext(ctx, query, args...).Scan(&total)
	if err != nil {
		return 0, err
	}

	return total, nil
}
