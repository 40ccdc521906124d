package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"fling/internal/config"
	"fling/internal/logger"
	"fling/internal/middleware"
	"fling/internal/repository"
	"fling/internal/services"
	"fling/internal/utils"
	helpers "fling/internal/utils/helpers"
	"fling/internal/validation"

	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
	Next     string `json:"next,omitempty"`
}

type loginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Username     string `json:"username"`
	RedirectTo   string `json:"redirect_to"`
}

// safeNext принимает только локальный путь — внешние адреса и
// protocol-relative ссылки превращаются в домашнюю страницу.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}

// Register godoc
// @Summary Регистрация нового пользователя
// @Tags auth
// @Accept json
// @Produce json
// @Param input body registerRequest true "Данные регистрации"
// @Success 201 {object} models.User
// @Failure 400 {string} string "Ошибка валидации"
// @Router /api/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.Warn("Ошибка декодирования JSON в Register", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	logger.Log.Info("Регистрация пользователя", zap.String("username", req.Username), zap.String("email", req.Email))

	if errs := validation.Registration(req.Username, req.Email, req.Password); len(errs) > 0 {
		helpers.ValidationErrors(w, errs)
		return
	}

	user, err := h.authService.RegisterUser(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		// Занятый username/email — пополевая ошибка, остальное — 500
		switch {
		case errors.Is(err, repository.ErrUsernameTaken):
			helpers.ValidationErrors(w, []validation.FieldError{{Field: "username", Message: err.Error()}})
		case errors.Is(err, repository.ErrEmailTaken):
			helpers.ValidationErrors(w, []validation.FieldError{{Field: "email", Message: err.Error()}})
		default:
			logger.Log.Error("Ошибка регистрации пользователя", zap.Error(err))
			helpers.Error(w, http.StatusInternalServerError, "Ошибка регистрации")
		}
		return
	}

	helpers.JSON(w, http.StatusCreated, user)
}

// Login godoc
// @Summary Авторизация пользователя
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginRequest true "Данные для входа"
// @Param next query string false "Куда вернуться после входа"
// @Success 200 {object} loginResponse
// @Failure 401 {string} string "Неверный логин или пароль"
// @Router /api/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.Warn("Ошибка декодирования JSON в Login", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	logger.Log.Info("Попытка входа", zap.String("email", req.Email))

	if errs := validation.Login(req.Email, req.Password); len(errs) > 0 {
		helpers.ValidationErrors(w, errs)
		return
	}

	accessTTL, _ := time.ParseDuration(h.cfg.AccessTokenTTL)
	// remember растягивает жизнь refresh-токена
	refreshTTL, _ := time.ParseDuration(h.cfg.SessionTokenTTL)
	if req.Remember {
		refreshTTL, _ = time.ParseDuration(h.cfg.RefreshTokenTTL)
	}

	access, refresh, user, err := h.authService.LoginUser(
		r.Context(),
		req.Email,
		req.Password,
		h.cfg.JWTSecret,
		accessTTL,
		refreshTTL,
	)
	if err != nil {
		logger.Log.Warn("Ошибка входа пользователя", zap.String("email", req.Email), zap.Error(err))
		helpers.Error(w, http.StatusUnauthorized, services.ErrInvalidCredentials.Error())
		return
	}

	next := req.Next
	if next == "" {
		next = r.URL.Query().Get("next")
	}

	logger.Log.Info("Вход выполнен", zap.String("email", req.Email), zap.Int("user_id", user.ID))
	resp := loginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		Username:     user.Username,
		RedirectTo:   safeNext(next),
	}

	helpers.JSON(w, http.StatusOK, resp)
}

// Refresh godoc
// @Summary Обновление access-токена
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]string
// @Failure 401 {string} string "Недействительный refresh токен"
// @Router /api/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		logger.Log.Warn("Отсутствует refresh token в Refresh")
		helpers.Error(w, http.StatusUnauthorized, "Отсутствует refresh token")
		return
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	userID, tokenType, err := utils.ParseToken(h.cfg.JWTSecret, tokenString)
	if err != nil || tokenType != utils.TokenTypeRefresh {
		logger.Log.Warn("Неверный или просроченный refresh token", zap.Error(err))
		helpers.Error(w, http.StatusUnauthorized, "Неверный или просроченный refresh token")
		return
	}

	isValid, err := h.authService.ValidateRefreshToken(r.Context(), userID, tokenString)
	if err != nil || !isValid {
		logger.Log.Warn("Недействительный refresh token", zap.Error(err))
		helpers.Error(w, http.StatusUnauthorized, "Недействительный refresh token")
		return
	}

	accessTTL, _ := time.ParseDuration(h.cfg.AccessTokenTTL)
	accessToken, err := utils.GenerateToken(h.cfg.JWTSecret, userID, accessTTL, utils.TokenTypeAccess)
	if err != nil {
		logger.Log.Error("Ошибка генерации токена", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка генерации токена")
		return
	}

	logger.Log.Info("Токен обновлён", zap.Int("user_id", userID))
	helpers.JSON(w, http.StatusOK, map[string]string{"access_token": accessToken})
}

// Logout godoc
// @Summary Выход (удаление refresh токена)
// @Description Выход идемпотентен: повторный вызов или отсутствующий токен — тоже успех.
// @Tags auth
// @Produce json
// @Success 200 {string} string "Выход выполнен"
// @Router /api/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	// Сессия безусловно становится анонимной: даже если токен
	// не разобрался, клиенту отвечаем успехом.
	if tokenString != "" && tokenString != authHeader {
		userID, tokenType, err := utils.ParseToken(h.cfg.JWTSecret, tokenString)
		if err == nil && tokenType == utils.TokenTypeRefresh {
			if err := h.authService.Logout(r.Context(), userID, tokenString); err != nil {
				logger.Log.Error("Ошибка при удалении токена", zap.Error(err))
			} else {
				logger.Log.Info("Пользователь вышел", zap.Int("user_id", userID))
			}
		}
	}

	helpers.JSON(w, http.StatusOK, "Выход выполнен")
}

// Me godoc
// @Summary Данные текущего пользователя
// @Tags profile
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {string} string "Нет доступа"
// @Router /api/account [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		helpers.Error(w, http.StatusNotFound, "Пользователь не найден")
		return
	}

	helpers.JSON(w, http.StatusOK, user)
}
