package models

import "time"

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	ImageFile    string    `json:"image_file"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UpdateProfileRequest — частичное обновление профиля.
// Картинка приходит отдельным multipart-полем, тут только текстовые поля.
type UpdateProfileRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
}

type UserProfileResponse struct {
	ID         int       `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email,omitempty"`
	ImageFile  string    `json:"image_file"`
	CreatedAt  time.Time `json:"created_at"`
	TotalPosts int       `json:"total_posts"`
	Posts      []*Post   `json:"posts,omitempty"`
}
