package postgres

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/bookshare/internal/domain/entity"
	"github.com/oksasatya/bookshare/internal/domain/repository"
)

type BookRepository struct {
	pool *pgxpool.Pool
}

func NewBookRepository(pool *pgxpool.Pool) *BookRepository {
	return &BookRepository{pool: pool}
}

const bookColumns = `id::text, book_name, author_name, genre, book_description,
	cover_image, pdf, uploaded_by_user_id::text, uploaded_at`

func scanBook(row pgx.Row) (*entity.Book, error) {
	b := &entity.Book{}
	err := row.Scan(&b.ID, &b.BookName, &b.AuthorName, &b.Genre, &b.BookDescription,
		&b.CoverImage, &b.PDF, &b.UploadedByUserID, &b.UploadedAt)
	if err != nil {
		return nil, translate(err)
	}
	return b, nil
}

func collectBooks(rows pgx.Rows) ([]entity.Book, error) {
	defer rows.Close()
	out := make([]entity.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *BookRepository) Create(ctx context.Context, b *entity.Book) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO books (book_name, author_name, genre, book_description, cover_image, pdf, uploaded_by_user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id::text, uploaded_at
	`, b.BookName, b.AuthorName, b.Genre, b.BookDescription, b.CoverImage, b.PDF, b.UploadedByUserID)

	return translate(row.Scan(&b.ID, &b.UploadedAt))
}

func (r *BookRepository) GetByID(ctx context.Context, id string) (*entity.Book, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	return scanBook(r.pool.QueryRow(ctx, `SELECT `+bookColumns+` FROM books WHERE id = $1`, id))
}

func (r *BookRepository) FindByNameAndAuthor(ctx context.Context, bookName, authorName string) (*entity.Book, error) {
	return scanBook(r.pool.QueryRow(ctx, `
		SELECT `+bookColumns+` FROM books
		WHERE book_name = $1 AND author_name = $2
		LIMIT 1
	`, bookName, authorName))
}

func (r *BookRepository) ListNewestFirst(ctx context.Context) ([]entity.Book, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+bookColumns+` FROM books ORDER BY uploaded_at DESC, seq DESC`)
	if err != nil {
		return nil, err
	}
	return collectBooks(rows)
}

func (r *BookRepository) Search(ctx context.Context, q string, limit int) ([]entity.Book, error) {
	pattern := "%" + escapeLike(strings.TrimSpace(q)) + "%"
	rows, err := r.pool.Query(ctx, `
		SELECT `+bookColumns+` FROM books
		WHERE book_name ILIKE $1 OR author_name ILIKE $1 OR genre ILIKE $1 OR book_description ILIKE $1
		ORDER BY uploaded_at DESC, seq DESC
		LIMIT $2
	`, pattern, limit)
	if err != nil {
		return nil, err
	}
	return collectBooks(rows)
}

func (r *BookRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return repository.ErrNotFound
	}
	res, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

var _ repository.BookRepository = (*BookRepository)(nil)
