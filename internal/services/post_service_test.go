package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"fling/internal/models"
	"fling/internal/repository"
)

// Заглушка поверх среза: посты хранятся от новых к старым.
type mockPostRepo struct {
	posts  []*models.Post
	nextID int
}

func (m *mockPostRepo) Create(_ context.Context, post *models.Post) error {
	m.nextID++
	post.ID = m.nextID
	post.DatePosted = time.Now()
	m.posts = append([]*models.Post{post}, m.posts...)
	return nil
}

func (m *mockPostRepo) GetByID(_ context.Context, id int) (*models.Post, error) {
	for _, p := range m.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, repository.ErrPostNotFound
}

func (m *mockPostRepo) Delete(_ context.Context, id int) error {
	for i, p := range m.posts {
		if p.ID == id {
			m.posts = append(m.posts[:i], m.posts[i+1:]...)
			return nil
		}
	}
	return repository.ErrPostNotFound
}

func (m *mockPostRepo) ListPaginated(_ context.Context, limit, offset int) ([]*models.Post, int, error) {
	total := len(m.posts)
	if offset >= total {
		return []*models.Post{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return m.posts[offset:end], total, nil
}

func (m *mockPostRepo) ListByAuthor(_ context.Context, authorID int) ([]*models.Post, error) {
	var out []*models.Post
	for _, p := range m.posts {
		if p.AuthorID == authorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPostRepo) CountByAuthor(_ context.Context, authorID int) (int, error) {
	n := 0
	for _, p := range m.posts {
		if p.AuthorID == authorID {
			n++
		}
	}
	return n, nil
}

func seedPosts(t *testing.T, repo *mockPostRepo, service *PostService, n, authorID int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if _, err := service.Create(context.Background(), authorID, "Заголовок", "Текст"); err != nil {
			t.Fatalf("ошибка создания поста: %v", err)
		}
	}
}

func TestPostDelete_OnlyAuthor(t *testing.T) {
	repo := &mockPostRepo{}
	service := NewPostService(repo)

	post, err := service.Create(context.Background(), 1, "Заголовок", "Текст")
	if err != nil {
		t.Fatalf("ошибка создания поста: %v", err)
	}

	// чужой пользователь
	err = service.Delete(context.Background(), post.ID, 2)
	if !errors.Is(err, ErrNotPostAuthor) {
		t.Fatalf("ожидался отказ не-автору, получено: %v", err)
	}
	if _, err := service.GetByID(context.Background(), post.ID); err != nil {
		t.Fatal("пост не должен был удалиться")
	}

	// автор
	if err := service.Delete(context.Background(), post.ID, 1); err != nil {
		t.Fatalf("автор не смог удалить пост: %v", err)
	}
	if _, err := service.GetByID(context.Background(), post.ID); !errors.Is(err, repository.ErrPostNotFound) {
		t.Fatalf("пост остался после удаления: %v", err)
	}
}

func TestPostDelete_NotFound(t *testing.T) {
	service := NewPostService(&mockPostRepo{})
	err := service.Delete(context.Background(), 99, 1)
	if !errors.Is(err, repository.ErrPostNotFound) {
		t.Fatalf("ожидался ErrPostNotFound, получено: %v", err)
	}
}

func TestPostList_Pagination(t *testing.T) {
	repo := &mockPostRepo{}
	service := NewPostService(repo)
	seedPosts(t, repo, service, 10, 1)

	page, err := service.List(context.Background(), 1, 4)
	if err != nil {
		t.Fatalf("ошибка листинга: %v", err)
	}
	if len(page.Posts) != 4 || page.Total != 10 {
		t.Fatalf("первая страница: получено %d постов из %d", len(page.Posts), page.Total)
	}
	// новые раньше старых
	if page.Posts[0].ID < page.Posts[1].ID {
		t.Fatal("порядок не от новых к старым")
	}

	page, err = service.List(context.Background(), 3, 4)
	if err != nil {
		t.Fatalf("ошибка листинга: %v", err)
	}
	if len(page.Posts) != 2 {
		t.Fatalf("последняя страница: ожидалось 2 поста, получено %d", len(page.Posts))
	}
}

func TestPostList_PageOutOfRange(t *testing.T) {
	repo := &mockPostRepo{}
	service := NewPostService(repo)
	seedPosts(t, repo, service, 3, 1)

	page, err := service.List(context.Background(), 50, 4)
	if err != nil {
		t.Fatalf("страница за пределами данных не должна быть ошибкой: %v", err)
	}
	if len(page.Posts) != 0 || page.Total != 3 {
		t.Fatalf("ожидалась пустая страница с total=3, получено %d/%d", len(page.Posts), page.Total)
	}
}

func TestPostList_PageNormalized(t *testing.T) {
	repo := &mockPostRepo{}
	service := NewPostService(repo)
	seedPosts(t, repo, service, 5, 1)

	page, err := service.List(context.Background(), 0, 4)
	if err != nil {
		t.Fatalf("ошибка листинга: %v", err)
	}
	if page.Page != 1 || len(page.Posts) != 4 {
		t.Fatalf("page=0 должен приводиться к первой странице, получено page=%d, %d постов", page.Page, len(page.Posts))
	}
}

func TestPostListByAuthor(t *testing.T) {
	repo := &mockPostRepo{}
	service := NewPostService(repo)
	seedPosts(t, repo, service, 3, 1)
	seedPosts(t, repo, service, 2, 2)

	posts, total, err := service.ListByAuthor(context.Background(), 1)
	if err != nil {
		t.Fatalf("ошибка листинга по автору: %v", err)
	}
	if total != 3 || len(posts) != 3 {
		t.Fatalf("ожидалось 3 поста автора, получено %d (total %d)", len(posts), total)
	}
}
