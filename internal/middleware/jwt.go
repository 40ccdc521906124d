package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"fling/internal/logger"
	"fling/internal/reqctx"
	"fling/internal/utils"

	"go.uber.org/zap"
)

// unauthorized отвечает 401 и подсказывает клиенту, куда вернуться
// после логина: исходный путь уходит в поле next.
func unauthorized(w http.ResponseWriter, r *http.Request, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": msg,
		"next":  r.URL.RequestURI(),
	})
}

// JWTAuth пропускает только запросы с валидным access-токеном.
func JWTAuth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				logger.WithCtx(r.Context()).Warn("JWTAuth: отсутствует access token")
				unauthorized(w, r, "Отсутствует access token")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			userID, tokenType, err := utils.ParseToken(jwtSecret, tokenString)
			if err != nil || tokenType != utils.TokenTypeAccess {
				logger.WithCtx(r.Context()).Warn("JWTAuth: неверный или просроченный токен", zap.Error(err))
				unauthorized(w, r, "Неверный или просроченный токен")
				return
			}

			ctx := context.WithValue(r.Context(), ContextUserID, userID)
			ctx = reqctx.WithUserID(ctx, userID)

			logger.WithCtx(ctx).Debug("JWTAuth: токен валиден", zap.Int("user_id", userID))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
