package services

import (
	"context"
	"errors"

	"fling/internal/logger"
	"fling/internal/models"

	"go.uber.org/zap"
)

// ErrNotPostAuthor — удалять пост может только его автор.
var ErrNotPostAuthor = errors.New("пост принадлежит другому пользователю")

const DefaultPageSize = 4

type PostRepo interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id int) (*models.Post, error)
	Delete(ctx context.Context, id int) error
	ListPaginated(ctx context.Context, limit, offset int) ([]*models.Post, int, error)
	ListByAuthor(ctx context.Context, authorID int) ([]*models.Post, error)
	CountByAuthor(ctx context.Context, authorID int) (int, error)
}

type PostService struct {
	repo PostRepo
}

func NewPostService(repo PostRepo) *PostService {
	return &PostService{repo: repo}
}

func (s *PostService) Create(ctx context.Context, authorID int, title, content string) (*models.Post, error) {
	logger.Log.Info("Создание поста (service)", zap.Int("author_id", authorID))
	post := &models.Post{
		Title:    title,
		Content:  content,
		AuthorID: authorID,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		logger.Log.Error("Ошибка создания поста (service)", zap.Error(err))
		return nil, err
	}
	return post, nil
}

func (s *PostService) GetByID(ctx context.Context, id int) (*models.Post, error) {
	return s.repo.GetByID(ctx, id)
}

// Delete удаляет пост, если userID — его автор.
// Чужой пост остаётся нетронутым, возвращается ErrNotPostAuthor.
func (s *PostService) Delete(ctx context.Context, postID, userID int) error {
	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		logger.Log.Warn("Попытка удалить чужой пост (service)",
			zap.Int("post_id", postID),
			zap.Int("author_id", post.AuthorID),
			zap.Int("user_id", userID),
		)
		return ErrNotPostAuthor
	}
	if err := s.repo.Delete(ctx, postID); err != nil {
		logger.Log.Error("Ошибка удаления поста (service)", zap.Error(err))
		return err
	}
	logger.Log.Info("Пост удалён (service)", zap.Int("post_id", postID), zap.Int("user_id", userID))
	return nil
}

// List отдаёт страницу ленты. Страница за пределами данных — это
// пустая страница, а не ошибка.
func (s *PostService) List(ctx context.Context, page, pageSize int) (*models.PostPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	offset := (page - 1) * pageSize

	posts, total, err := s.repo.ListPaginated(ctx, pageSize, offset)
	if err != nil {
		return nil, err
	}
	return &models.PostPage{
		Posts:    posts,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *PostService) ListByAuthor(ctx context.Context, authorID int) ([]*models.Post, int, error) {
	posts, err := s.repo.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountByAuthor(ctx, authorID)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}
