package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"fling/internal/models"
	"fling/internal/repository"
	"fling/internal/utils"
)

// Мок-репозиторий (заглушка)
type mockUserRepo struct {
	users    map[string]*models.User // по username
	tokens   map[int][]string
	lastUser *models.User
	nextID   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:  make(map[string]*models.User),
		tokens: make(map[int][]string),
	}
}

func (m *mockUserRepo) IsUsernameTaken(_ context.Context, username string) (bool, error) {
	_, exists := m.users[username]
	return exists, nil
}

func (m *mockUserRepo) IsEmailTaken(_ context.Context, email string) (bool, error) {
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *models.User) error {
	m.nextID++
	user.ID = m.nextID
	user.ImageFile = "default.jpg"
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.users[user.Username] = user
	m.lastUser = user
	return nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id int) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepo) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	u, ok := m.users[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepo) UpdateProfile(_ context.Context, id int, username, email string) error {
	for old, u := range m.users {
		if u.ID == id {
			delete(m.users, old)
			u.Username = username
			u.Email = email
			m.users[username] = u
			return nil
		}
	}
	return repository.ErrUserNotFound
}

func (m *mockUserRepo) UpdateImageFile(_ context.Context, id int, imageFile string) error {
	for _, u := range m.users {
		if u.ID == id {
			u.ImageFile = imageFile
			return nil
		}
	}
	return repository.ErrUserNotFound
}

func (m *mockUserRepo) UpdatePassword(_ context.Context, id int, passwordHash string) error {
	for _, u := range m.users {
		if u.ID == id {
			u.PasswordHash = passwordHash
			return nil
		}
	}
	return repository.ErrUserNotFound
}

func (m *mockUserRepo) SaveRefreshToken(_ context.Context, userID int, token string) error {
	m.tokens[userID] = append(m.tokens[userID], token)
	return nil
}

func (m *mockUserRepo) IsRefreshTokenValid(_ context.Context, userID int, token string) (bool, error) {
	for _, t := range m.tokens[userID] {
		if t == token {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) DeleteRefreshToken(_ context.Context, userID int, token string) error {
	// отсутствие токена — не ошибка
	rest := m.tokens[userID][:0]
	for _, t := range m.tokens[userID] {
		if t != token {
			rest = append(rest, t)
		}
	}
	m.tokens[userID] = rest
	return nil
}

func TestRegisterUser(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)

	user, err := service.RegisterUser(context.Background(), "testuser", "test@example.com", "secret1")
	if err != nil {
		t.Fatalf("ошибка регистрации: %v", err)
	}

	if repo.lastUser == nil || repo.lastUser.PasswordHash == "" {
		t.Fatal("пароль не захеширован или пользователь не сохранён")
	}
	if repo.lastUser.PasswordHash == "secret1" {
		t.Fatal("пароль сохранён открытым текстом")
	}
	if user.ID == 0 {
		t.Fatal("пользователю не присвоен ID")
	}
}

func TestRegisterUser_ThenLogin(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)

	if _, err := service.RegisterUser(context.Background(), "alice", "alice@x.com", "secret1"); err != nil {
		t.Fatalf("ошибка регистрации: %v", err)
	}

	access, refresh, user, err := service.LoginUser(context.Background(), "alice@x.com", "secret1", "mysecret", 15*time.Minute, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("ошибка логина: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("токены не сгенерированы")
	}
	if user.Username != "alice" {
		t.Fatalf("вернулся не тот пользователь: %s", user.Username)
	}

	ok, _ := repo.IsRefreshTokenValid(context.Background(), user.ID, refresh)
	if !ok {
		t.Fatal("refresh токен не сохранён")
	}
}

func TestRegisterUser_DuplicateUsername(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)

	if _, err := service.RegisterUser(context.Background(), "alice", "alice@x.com", "secret1"); err != nil {
		t.Fatalf("ошибка регистрации: %v", err)
	}

	_, err := service.RegisterUser(context.Background(), "alice", "other@x.com", "secret1")
	if !errors.Is(err, repository.ErrUsernameTaken) {
		t.Fatalf("ожидалась ошибка занятого username, получено: %v", err)
	}

	_, err = service.RegisterUser(context.Background(), "bob", "alice@x.com", "secret1")
	if !errors.Is(err, repository.ErrEmailTaken) {
		t.Fatalf("ожидалась ошибка занятого email, получено: %v", err)
	}
}

// Неизвестный email и неверный пароль снаружи неразличимы.
func TestLoginUser_UniformFailure(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)

	hashed, _ := utils.HashPassword("secret1")
	repo.users["alice"] = &models.User{ID: 1, Username: "alice", Email: "alice@x.com", PasswordHash: hashed}

	_, _, _, errWrongPass := service.LoginUser(context.Background(), "alice@x.com", "wrong", "s", time.Minute, time.Hour)
	_, _, _, errUnknown := service.LoginUser(context.Background(), "nobody@x.com", "secret1", "s", time.Minute, time.Hour)

	if !errors.Is(errWrongPass, ErrInvalidCredentials) {
		t.Fatalf("неверный пароль: ожидался ErrInvalidCredentials, получено %v", errWrongPass)
	}
	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Fatalf("неизвестный email: ожидался ErrInvalidCredentials, получено %v", errUnknown)
	}
	if errWrongPass.Error() != errUnknown.Error() {
		t.Fatal("тексты ошибок различаются — утечка существования аккаунта")
	}
}

func TestLogout_Idempotent(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)

	hashed, _ := utils.HashPassword("secret1")
	repo.users["alice"] = &models.User{ID: 1, Username: "alice", Email: "alice@x.com", PasswordHash: hashed}

	_, refresh, user, err := service.LoginUser(context.Background(), "alice@x.com", "secret1", "s", time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("ошибка логина: %v", err)
	}

	if err := service.Logout(context.Background(), user.ID, refresh); err != nil {
		t.Fatalf("первый выход: %v", err)
	}
	// повторный выход с тем же токеном — тоже успех
	if err := service.Logout(context.Background(), user.ID, refresh); err != nil {
		t.Fatalf("повторный выход: %v", err)
	}

	ok, _ := repo.IsRefreshTokenValid(context.Background(), user.ID, refresh)
	if ok {
		t.Fatal("refresh токен не удалён")
	}
}

func TestUpdateProfile_OwnValuesNotTaken(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)

	if _, err := service.RegisterUser(context.Background(), "alice", "alice@x.com", "secret1"); err != nil {
		t.Fatalf("ошибка регистрации: %v", err)
	}

	// свои же значения занятыми не считаются
	if err := service.UpdateProfile(context.Background(), 1, "alice", "alice@x.com"); err != nil {
		t.Fatalf("обновление своими значениями: %v", err)
	}
}

func TestUpdateProfile_TakenByOther(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)

	if _, err := service.RegisterUser(context.Background(), "alice", "alice@x.com", "secret1"); err != nil {
		t.Fatalf("ошибка регистрации: %v", err)
	}
	if _, err := service.RegisterUser(context.Background(), "bob", "bob@x.com", "secret1"); err != nil {
		t.Fatalf("ошибка регистрации: %v", err)
	}

	err := service.UpdateProfile(context.Background(), 2, "alice", "bob@x.com")
	if !errors.Is(err, repository.ErrUsernameTaken) {
		t.Fatalf("ожидалась ошибка занятого username, получено: %v", err)
	}
}
