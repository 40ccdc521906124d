package models

import "time"

type Post struct {
	ID         int       `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	DatePosted time.Time `json:"date_posted"`
	AuthorID   int       `json:"author_id"`
	// Имя автора подтягивается join-ом для выдачи ленты
	AuthorName string `json:"author_name,omitempty"`
}

// swagger:model CreatePostRequest
type CreatePostRequest struct {
	Title   string `json:"title"   example:"Мой первый пост"`
	Content string `json:"content" example:"Текст поста"`
}

// PostPage — страница ленты, новые сверху.
type PostPage struct {
	Posts    []*Post `json:"posts"`
	Total    int     `json:"total"`
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
}
