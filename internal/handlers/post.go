package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"fling/internal/logger"
	"fling/internal/middleware"
	"fling/internal/models"
	"fling/internal/repository"
	"fling/internal/services"
	helpers "fling/internal/utils/helpers"
	"fling/internal/validation"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type PostHandler struct {
	postService *services.PostService
	pageSize    int
}

func NewPostHandler(postService *services.PostService, pageSize int) *PostHandler {
	if pageSize < 1 {
		pageSize = services.DefaultPageSize
	}
	return &PostHandler{postService: postService, pageSize: pageSize}
}

// List godoc
// @Summary Лента постов, новые сверху
// @Tags posts
// @Produce json
// @Param page query int false "Номер страницы (начиная с 1)"
// @Success 200 {object} models.PostPage
// @Failure 500 {string} string "Ошибка сервера"
// @Router /api/posts [get]
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	// Страница за концом ленты — валидный запрос с пустым результатом
	pageData, err := h.postService.List(r.Context(), page, h.pageSize)
	if err != nil {
		logger.Log.Error("Ошибка получения ленты", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка получения постов")
		return
	}
	helpers.JSON(w, http.StatusOK, pageData)
}

// Get godoc
// @Summary Получить пост по ID
// @Tags posts
// @Produce json
// @Param id path int true "ID поста"
// @Success 200 {object} models.Post
// @Failure 404 {string} string "Пост не найден"
// @Router /api/posts/{id} [get]
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный ID")
		return
	}

	post, err := h.postService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			helpers.Error(w, http.StatusNotFound, "Пост не найден")
			return
		}
		logger.Log.Error("Ошибка получения поста", zap.Error(err), zap.Int("post_id", id))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка получения поста")
		return
	}
	helpers.JSON(w, http.StatusOK, post)
}

// Create godoc
// @Summary Создать пост
// @Tags posts
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body models.CreatePostRequest true "Данные поста"
// @Success 201 {object} models.Post
// @Failure 400 {string} string "Ошибка валидации"
// @Router /api/posts [post]
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.Warn("Невалидный JSON при создании поста", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	if errs := validation.Post(req.Title, req.Content); len(errs) > 0 {
		helpers.ValidationErrors(w, errs)
		return
	}

	post, err := h.postService.Create(r.Context(), userID, req.Title, req.Content)
	if err != nil {
		logger.Log.Error("Ошибка создания поста", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка создания поста")
		return
	}

	logger.Log.Info("Пост создан", zap.Int("post_id", post.ID), zap.Int("user_id", userID))
	helpers.JSON(w, http.StatusCreated, post)
}

// Delete godoc
// @Summary Удалить свой пост
// @Tags posts
// @Security ApiKeyAuth
// @Param id path int true "ID поста"
// @Success 200 {string} string "Пост удалён"
// @Failure 403 {string} string "Чужой пост"
// @Failure 404 {string} string "Пост не найден"
// @Router /api/posts/{id} [delete]
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный ID")
		return
	}

	if err := h.postService.Delete(r.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrPostNotFound):
			helpers.Error(w, http.StatusNotFound, "Пост не найден")
		case errors.Is(err, services.ErrNotPostAuthor):
			helpers.Error(w, http.StatusForbidden, "Доступ запрещён")
		default:
			logger.Log.Error("Ошибка удаления поста", zap.Error(err), zap.Int("post_id", id))
			helpers.Error(w, http.StatusInternalServerError, "Ошибка удаления поста")
		}
		return
	}

	helpers.JSON(w, http.StatusOK, "Пост удалён")
}
