package app

import (
	"strconv"
	"time"

	"fling/internal/config"
	"fling/internal/db"
	"fling/internal/handlers"
	"fling/internal/repository"
	"fling/internal/routes"
	"fling/internal/services"

	"github.com/gorilla/mux"
)

// InitApp собирает зависимости один раз на старте процесса
// и протягивает их конструкторами — без глобальных синглтонов.
func InitApp(cfg *config.Config) (*mux.Router, error) {
	conn, err := db.NewPostgresConnection(cfg)
	if err != nil {
		return nil, err
	}

	if err := db.RunMigrations(cfg.GetDSN()); err != nil {
		return nil, err
	}

	// Репозитории
	userRepo := repository.NewUserRepository(conn)
	postRepo := repository.NewPostRepository(conn)

	// Сервисы
	authService := services.NewAuthService(userRepo)
	postService := services.NewPostService(postRepo)
	emailService := services.NewEmailService(cfg)

	resetTTLMin, _ := strconv.Atoi(cfg.PasswordResetTTLMin)
	passwordService := services.NewPasswordService(
		userRepo,
		emailService,
		cfg.SiteURL,
		cfg.JWTSecret,
		time.Duration(resetTTLMin)*time.Minute,
	)

	// Воркеры отправки писем
	for i := 0; i < 3; i++ {
		emailService.StartWorker()
	}

	pageSize, _ := strconv.Atoi(cfg.PageSize)

	// Хендлеры
	authHandler := handlers.NewAuthHandler(authService, cfg)
	passwordHandler := handlers.NewPasswordHandler(passwordService)
	postHandler := handlers.NewPostHandler(postService, pageSize)
	profileHandler := handlers.NewProfileHandler(authService, postService, cfg)

	// Маршруты
	router := mux.NewRouter()
	routes.InitRoutes(router, cfg.JWTSecret, authHandler, passwordHandler, postHandler, profileHandler)

	return router, nil
}
