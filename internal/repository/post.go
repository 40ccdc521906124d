package repository

import (
	"context"
	"errors"

	"fling/internal/logger"
	"fling/internal/models"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var ErrPostNotFound = errors.New("пост не найден")

type PostRepository struct {
	db DB
}

func NewPostRepository(db DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	logger.Log.Info("Создание поста (repo)", zap.Int("author_id", post.AuthorID), zap.String("title", post.Title))
	query := `
	INSERT INTO posts (title, content, author_id)
	VALUES ($1, $2, $3)
	RETURNING id, date_posted`
	err := r.db.QueryRow(ctx, query, post.Title, post.Content, post.AuthorID).
		Scan(&post.ID, &post.DatePosted)
	if err != nil {
		logger.Log.Error("Ошибка создания поста (repo)", zap.Error(err))
	}
	return err
}

func (r *PostRepository) GetByID(ctx context.Context, id int) (*models.Post, error) {
	logger.Log.Debug("Получение поста по ID (repo)", zap.Int("post_id", id))
	query := `
	SELECT p.id, p.title, p.content, p.date_posted, p.author_id, u.username
	FROM posts p
	JOIN users u ON u.id = p.author_id
	WHERE p.id = $1`

	var p models.Post
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.Content, &p.DatePosted, &p.AuthorID, &p.AuthorName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		logger.Log.Error("Ошибка получения поста (repo)", zap.Error(err))
		return nil, err
	}
	return &p, nil
}

func (r *PostRepository) Delete(ctx context.Context, id int) error {
	logger.Log.Info("Удаление поста (repo)", zap.Int("post_id", id))
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		logger.Log.Error("Ошибка удаления поста (repo)", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPostNotFound
	}
	return nil
}

// ListPaginated — лента: новые сверху, при равном времени — позже вставленные.
func (r *PostRepository) ListPaginated(ctx context.Context, limit, offset int) ([]*models.Post, int, error) {
	logger.Log.Debug("Получение страницы постов (repo)", zap.Int("limit", limit), zap.Int("offset", offset))
	query := `
	SELECT p.id, p.title, p.content, p.date_posted, p.author_id, u.username
	FROM posts p
	JOIN users u ON u.id = p.author_id
	ORDER BY p.date_posted DESC, p.id DESC
	LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		logger.Log.Error("Ошибка получения постов (repo)", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	posts := []*models.Post{}
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.DatePosted, &p.AuthorID, &p.AuthorName); err != nil {
			logger.Log.Error("Ошибка сканирования поста (repo)", zap.Error(err))
			return nil, 0, err
		}
		posts = append(posts, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	// COUNT идёт вторым запросом: при параллельных вставках total
	// может разойтись со страницей на момент чтения.
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&total); err != nil {
		logger.Log.Error("Ошибка подсчёта постов (repo)", zap.Error(err))
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID int) ([]*models.Post, error) {
	logger.Log.Debug("Получение постов автора (repo)", zap.Int("author_id", authorID))
	query := `
	SELECT p.id, p.title, p.content, p.date_posted, p.author_id, u.username
	FROM posts p
	JOIN users u ON u.id = p.author_id
	WHERE p.author_id = $1
	ORDER BY p.date_posted DESC, p.id DESC`

	rows, err := r.db.Query(ctx, query, authorID)
	if err != nil {
		logger.Log.Error("Ошибка получения постов автора (repo)", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	posts := []*models.Post{}
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.DatePosted, &p.AuthorID, &p.AuthorName); err != nil {
			return nil, err
		}
		posts = append(posts, &p)
	}
	return posts, rows.Err()
}

func (r *PostRepository) CountByAuthor(ctx context.Context, authorID int) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts WHERE author_id = $1`, authorID).Scan(&total)
	if err != nil {
		logger.Log.Error("Ошибка подсчёта постов автора (repo)", zap.Error(err))
	}
	return total, err
}
