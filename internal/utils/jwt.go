package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
	TokenTypeReset   = "reset"
)

var ErrUnexpectedSigningMethod = errors.New("неожиданный метод подписи токена")

// GenerateToken создаёт подписанный JWT указанного типа.
func GenerateToken(secret string, userID int, duration time.Duration, tokenType string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":    userID,
		"token_type": tokenType,
		"exp":        now.Add(duration).Unix(),
		"iat":        now.Unix(), // issued at — доп. уникальность
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken проверяет подпись и возвращает user_id и token_type.
// Просроченный токен возвращается с ошибкой, оборачивающей jwt.ErrTokenExpired,
// чтобы вызывающий мог отличить «истёк» от «подделан». Полезная нагрузка
// отдаётся и вместе с ошибкой: по token_type вызывающий отличает
// просроченный токен нужного типа от просроченного чужого.
func ParseToken(secret, tokenString string) (int, string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnexpectedSigningMethod
		}
		return []byte(secret), nil
	})

	userID, okID := claims["user_id"].(float64)
	tokenType, okType := claims["token_type"].(string)

	if err != nil {
		return int(userID), tokenType, err
	}
	if !token.Valid {
		return 0, "", jwt.ErrTokenUnverifiable
	}
	if !okID || !okType {
		return 0, "", jwt.ErrTokenInvalidClaims
	}
	return int(userID), tokenType, nil
}
