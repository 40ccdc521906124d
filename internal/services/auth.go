package services

import (
	"context"
	"errors"
	"time"

	"fling/internal/logger"
	"fling/internal/models"
	"fling/internal/repository"
	"fling/internal/utils"

	"go.uber.org/zap"
)

// ErrInvalidCredentials — единый ответ и на неизвестный email, и на
// неверный пароль: по логину нельзя выяснить, существует ли аккаунт.
var ErrInvalidCredentials = errors.New("неверный логин или пароль")

type UserRepo interface {
	IsUsernameTaken(ctx context.Context, username string) (bool, error)
	IsEmailTaken(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateProfile(ctx context.Context, id int, username, email string) error
	UpdateImageFile(ctx context.Context, id int, imageFile string) error
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
	SaveRefreshToken(ctx context.Context, userID int, token string) error
	IsRefreshTokenValid(ctx context.Context, userID int, token string) (bool, error)
	DeleteRefreshToken(ctx context.Context, userID int, token string) error
}

type AuthService struct {
	repo UserRepo
}

func NewAuthService(repo UserRepo) *AuthService {
	return &AuthService{repo: repo}
}

func (s *AuthService) RegisterUser(ctx context.Context, username, email, plainPassword string) (*models.User, error) {
	logger.Log.Info("Регистрация пользователя (service)", zap.String("username", username), zap.String("email", email))
	if exists, err := s.repo.IsUsernameTaken(ctx, username); exists || err != nil {
		if err != nil {
			logger.Log.Error("Ошибка проверки username", zap.Error(err))
			return nil, err
		}
		return nil, repository.ErrUsernameTaken
	}
	if exists, err := s.repo.IsEmailTaken(ctx, email); exists || err != nil {
		if err != nil {
			logger.Log.Error("Ошибка проверки email", zap.Error(err))
			return nil, err
		}
		return nil, repository.ErrEmailTaken
	}

	hashed, err := utils.HashPassword(plainPassword)
	if err != nil {
		logger.Log.Error("Ошибка хеширования пароля", zap.Error(err))
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
	}

	// Предварительные проверки выше не атомарны с INSERT:
	// при гонке constraint в базе вернёт ту же пополевую ошибку.
	if err := s.repo.CreateUser(ctx, user); err != nil {
		logger.Log.Error("Ошибка создания пользователя", zap.Error(err))
		return nil, err
	}
	logger.Log.Info("Пользователь зарегистрирован (service)", zap.String("username", username))
	return user, nil
}

// LoginUser проверяет учётные данные и выдаёт пару токенов.
// remember управляет сроком жизни refresh-токена.
func (s *AuthService) LoginUser(
	ctx context.Context,
	email, password, jwtSecret string,
	accessTTL, refreshTTL time.Duration,
) (string, string, *models.User, error) {
	logger.Log.Info("Попытка входа (service)", zap.String("email", email))
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		logger.Log.Warn("Пользователь не найден (service)", zap.String("email", email), zap.Error(err))
		return "", "", nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Log.Warn("Неверный пароль (service)", zap.String("email", email))
		return "", "", nil, ErrInvalidCredentials
	}

	accessToken, err := utils.GenerateToken(jwtSecret, user.ID, accessTTL, utils.TokenTypeAccess)
	if err != nil {
		logger.Log.Error("Ошибка генерации access-токена", zap.Error(err))
		return "", "", nil, err
	}

	refreshToken, err := utils.GenerateToken(jwtSecret, user.ID, refreshTTL, utils.TokenTypeRefresh)
	if err != nil {
		logger.Log.Error("Ошибка генерации refresh-токена", zap.Error(err))
		return "", "", nil, err
	}

	if err := s.repo.SaveRefreshToken(ctx, user.ID, refreshToken); err != nil {
		logger.Log.Error("Ошибка сохранения refresh-токена", zap.Error(err))
		return "", "", nil, err
	}

	logger.Log.Info("Вход выполнен (service)", zap.String("email", email), zap.Int("user_id", user.ID))
	return accessToken, refreshToken, user, nil
}

func (s *AuthService) ValidateRefreshToken(ctx context.Context, userID int, token string) (bool, error) {
	logger.Log.Debug("Проверка refresh токена (service)", zap.Int("user_id", userID))
	return s.repo.IsRefreshTokenValid(ctx, userID, token)
}

// Logout идемпотентен: повторный выход с тем же токеном — тоже успех.
func (s *AuthService) Logout(ctx context.Context, userID int, token string) error {
	logger.Log.Info("Выход пользователя (service)", zap.Int("user_id", userID))
	return s.repo.DeleteRefreshToken(ctx, userID, token)
}

func (s *AuthService) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		logger.Log.Warn("Пользователь не найден по ID (service)", zap.Int("user_id", id), zap.Error(err))
	}
	return user, err
}

func (s *AuthService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		logger.Log.Warn("Пользователь не найден по username (service)", zap.String("username", username), zap.Error(err))
	}
	return user, err
}

// UpdateProfile меняет username/email текущего пользователя.
// Совпадение с собственными прежними значениями занятостью не считается.
func (s *AuthService) UpdateProfile(ctx context.Context, id int, username, email string) error {
	logger.Log.Info("Обновление профиля (service)", zap.Int("user_id", id))

	current, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return err
	}

	if username != current.Username {
		if exists, err := s.repo.IsUsernameTaken(ctx, username); exists || err != nil {
			if err != nil {
				return err
			}
			return repository.ErrUsernameTaken
		}
	}
	if email != current.Email {
		if exists, err := s.repo.IsEmailTaken(ctx, email); exists || err != nil {
			if err != nil {
				return err
			}
			return repository.ErrEmailTaken
		}
	}

	if err := s.repo.UpdateProfile(ctx, id, username, email); err != nil {
		logger.Log.Error("Ошибка обновления профиля (service)", zap.Error(err), zap.Int("user_id", id))
		return err
	}
	logger.Log.Info("Профиль обновлён (service)", zap.Int("user_id", id))
	return nil
}

func (s *AuthService) UpdateImage(ctx context.Context, id int, imageFile string) error {
	return s.repo.UpdateImageFile(ctx, id, imageFile)
}
