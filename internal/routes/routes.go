package routes

import (
	"fling/internal/handlers"
	"fling/internal/middleware"

	"github.com/gorilla/mux"
)

func InitRoutes(
	router *mux.Router,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	passwordHandler *handlers.PasswordHandler,
	postHandler *handlers.PostHandler,
	profileHandler *handlers.ProfileHandler,
) {
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Logging)

	api := router.PathPrefix("/api").Subrouter()

	// --- Публичные маршруты ---
	api.HandleFunc("/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/refresh", authHandler.Refresh).Methods("POST")
	api.HandleFunc("/logout", authHandler.Logout).Methods("POST")

	api.HandleFunc("/password/forgot", passwordHandler.Forgot).Methods("POST")
	api.HandleFunc("/password/reset", passwordHandler.Reset).Methods("POST")

	api.HandleFunc("/posts", postHandler.List).Methods("GET")
	api.HandleFunc("/posts/{id:[0-9]+}", postHandler.Get).Methods("GET")
	api.HandleFunc("/users/{username}", profileHandler.PublicProfile).Methods("GET")

	// --- Защищённые JWT ---
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.JWTAuth(jwtSecret))

	protected.HandleFunc("/account", authHandler.Me).Methods("GET")
	protected.HandleFunc("/profile", profileHandler.Update).Methods("PATCH")
	protected.HandleFunc("/posts", postHandler.Create).Methods("POST")
	protected.HandleFunc("/posts/{id:[0-9]+}", postHandler.Delete).Methods("DELETE")
}
