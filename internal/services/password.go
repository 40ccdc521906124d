package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fling/internal/logger"
	"fling/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Исходы проверки токена различаются намеренно: «истёк» и «подделан» —
// разные ситуации и для пользователя, и для логов.
var (
	ErrTokenInvalid = errors.New("неверный токен")
	ErrTokenExpired = errors.New("токен истёк")
)

type EmailSender interface {
	SendPasswordReset(ctx context.Context, to, resetLink string) error
}

type passwordUsers interface {
	FindUserIDByEmail(ctx context.Context, email string) (int, error)
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
}

// PasswordService выпускает и проверяет токены сброса пароля.
// Токен stateless: подписанный JWT с user_id и сроком жизни, в базе
// ничего не хранится и не отзывается — захваченный токен живёт до
// конца окна даже после успешного сброса.
type PasswordService struct {
	users       passwordUsers
	emailSender EmailSender
	siteURL     string
	jwtSecret   string
	tokenTTL    time.Duration
}

func NewPasswordService(users passwordUsers, emailSender EmailSender, siteURL, jwtSecret string, tokenTTL time.Duration) *PasswordService {
	if tokenTTL <= 0 {
		tokenTTL = 30 * time.Minute
	}
	return &PasswordService{
		users:       users,
		emailSender: emailSender,
		siteURL:     strings.TrimRight(siteURL, "/"),
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
	}
}

// IssueResetToken выпускает токен сброса для пользователя.
func (s *PasswordService) IssueResetToken(userID int) (string, error) {
	return utils.GenerateToken(s.jwtSecret, userID, s.tokenTTL, utils.TokenTypeReset)
}

// VerifyResetToken возвращает user_id из токена либо ErrTokenExpired /
// ErrTokenInvalid. Токены других типов (access, refresh) не принимаются.
func (s *PasswordService) VerifyResetToken(token string) (int, error) {
	userID, tokenType, err := utils.ParseToken(s.jwtSecret, token)
	// Тип проверяется раньше срока жизни: просроченный access/refresh —
	// это не истёкший reset-токен, а просто не reset-токен.
	if tokenType != utils.TokenTypeReset {
		return 0, ErrTokenInvalid
	}
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrTokenInvalid
	}
	return userID, nil
}

// RequestReset отправляет письмо со ссылкой на сброс.
// Возвращает nil всегда — не раскрываем, существует ли такой e-mail.
func (s *PasswordService) RequestReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	logger.Log.Info("Запрос на сброс пароля", zap.String("email", email))

	userID, err := s.users.FindUserIDByEmail(ctx, email)
	if err != nil {
		// Не раскрываем наличие почты пользователю, но логируем для нас:
		logger.Log.Warn("Не удалось найти пользователя по email при запросе сброса",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil
	}

	token, err := s.IssueResetToken(userID)
	if err != nil {
		logger.Log.Error("Ошибка генерации токена для сброса", zap.Error(err), zap.Int("user_id", userID))
		return nil
	}

	resetLink := fmt.Sprintf("%s/reset_password?token=%s", s.siteURL, token)
	if err := s.emailSender.SendPasswordReset(ctx, email, resetLink); err != nil {
		logger.Log.Error("Ошибка отправки письма для сброса пароля",
			zap.Int("user_id", userID),
			zap.String("email", email),
			zap.Error(err),
		)
		// Не фейлим намеренно — чтобы нельзя было брутить наличие e-mail
	}

	logger.Log.Info("Письмо со ссылкой на сброс пароля поставлено на отправку",
		zap.Int("user_id", userID),
		zap.String("email", email),
	)
	return nil
}

// ResetPassword подтверждает токен и устанавливает новый пароль.
// При невалидном или истёкшем токене ничего не меняется.
func (s *PasswordService) ResetPassword(ctx context.Context, token, newPassword string) error {
	logger.Log.Info("Попытка сброса пароля по токену")

	userID, err := s.VerifyResetToken(token)
	if err != nil {
		logger.Log.Warn("Неверный или просроченный токен при сбросе пароля", zap.Error(err))
		return err
	}

	pwHash, err := utils.HashPassword(newPassword)
	if err != nil {
		logger.Log.Error("Ошибка генерации хеша пароля", zap.Error(err), zap.Int("user_id", userID))
		return err
	}

	if err := s.users.UpdatePassword(ctx, userID, pwHash); err != nil {
		logger.Log.Error("Ошибка обновления пароля пользователя",
			zap.Int("user_id", userID),
			zap.Error(err),
		)
		return err
	}

	logger.Log.Info("Пароль успешно сброшен", zap.Int("user_id", userID))
	return nil
}
