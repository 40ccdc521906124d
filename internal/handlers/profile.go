package handlers

import (
	"errors"
	"net/http"

	"fling/internal/config"
	"fling/internal/logger"
	"fling/internal/middleware"
	"fling/internal/models"
	"fling/internal/repository"
	"fling/internal/services"
	"fling/internal/utils"
	helpers "fling/internal/utils/helpers"
	"fling/internal/validation"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	authService *services.AuthService
	postService *services.PostService
	cfg         *config.Config
}

func NewProfileHandler(authService *services.AuthService, postService *services.PostService, cfg *config.Config) *ProfileHandler {
	return &ProfileHandler{
		authService: authService,
		postService: postService,
		cfg:         cfg,
	}
}

// Update godoc
// @Summary Обновление профиля (username, email, аватар)
// @Tags profile
// @Security ApiKeyAuth
// @Accept multipart/form-data
// @Produce json
// @Param username formData string true "Имя пользователя"
// @Param email formData string true "Email"
// @Param picture formData file false "Картинка профиля (jpg/png)"
// @Success 200 {object} models.User
// @Failure 400 {string} string "Ошибка валидации"
// @Router /api/profile [patch]
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil { // 10MB
		logger.Log.Warn("Ошибка разбора формы профиля", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Ошибка разбора формы")
		return
	}

	username := r.FormValue("username")
	email := r.FormValue("email")

	if errs := validation.Profile(username, email); len(errs) > 0 {
		helpers.ValidationErrors(w, errs)
		return
	}

	if err := h.authService.UpdateProfile(r.Context(), userID, username, email); err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameTaken):
			helpers.ValidationErrors(w, []validation.FieldError{{Field: "username", Message: err.Error()}})
		case errors.Is(err, repository.ErrEmailTaken):
			helpers.ValidationErrors(w, []validation.FieldError{{Field: "email", Message: err.Error()}})
		default:
			logger.Log.Error("Ошибка обновления профиля", zap.Error(err), zap.Int("user_id", userID))
			helpers.Error(w, http.StatusInternalServerError, "Ошибка обновления профиля")
		}
		return
	}

	// Аватар опционален
	if file, header, err := r.FormFile("picture"); err == nil {
		defer file.Close()

		filename, err := utils.SavePicture(file, header.Filename, h.cfg.UploadDir)
		if err != nil {
			if errors.Is(err, utils.ErrUnsupportedImageType) {
				helpers.ValidationErrors(w, []validation.FieldError{{Field: "picture", Message: err.Error()}})
				return
			}
			logger.Log.Error("Ошибка сохранения картинки профиля", zap.Error(err), zap.Int("user_id", userID))
			helpers.Error(w, http.StatusInternalServerError, "Ошибка сохранения картинки")
			return
		}

		if err := h.authService.UpdateImage(r.Context(), userID, filename); err != nil {
			logger.Log.Error("Ошибка обновления аватара", zap.Error(err), zap.Int("user_id", userID))
			helpers.Error(w, http.StatusInternalServerError, "Ошибка обновления аватара")
			return
		}
		logger.Log.Info("Аватар обновлён", zap.Int("user_id", userID), zap.String("image_file", filename))
	}

	user, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		helpers.Error(w, http.StatusInternalServerError, "Ошибка получения профиля")
		return
	}

	logger.Log.Info("Профиль обновлён", zap.Int("user_id", userID))
	helpers.JSON(w, http.StatusOK, user)
}

// PublicProfile godoc
// @Summary Публичный профиль пользователя с его постами
// @Tags profile
// @Produce json
// @Param username path string true "Имя пользователя"
// @Success 200 {object} models.UserProfileResponse
// @Failure 404 {string} string "Пользователь не найден"
// @Router /api/users/{username} [get]
func (h *ProfileHandler) PublicProfile(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	user, err := h.authService.GetUserByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			helpers.Error(w, http.StatusNotFound, "Пользователь не найден")
			return
		}
		logger.Log.Error("Ошибка получения профиля", zap.Error(err), zap.String("username", username))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка получения профиля")
		return
	}

	posts, total, err := h.postService.ListByAuthor(r.Context(), user.ID)
	if err != nil {
		logger.Log.Error("Ошибка получения постов автора", zap.Error(err), zap.Int("user_id", user.ID))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка получения постов")
		return
	}

	resp := models.UserProfileResponse{
		ID:         user.ID,
		Username:   user.Username,
		ImageFile:  user.ImageFile,
		CreatedAt:  user.CreatedAt,
		TotalPosts: total,
		Posts:      posts,
	}
	helpers.JSON(w, http.StatusOK, resp)
}
