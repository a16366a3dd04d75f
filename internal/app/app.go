package app

import (
	"authsvc/internal/app/deps"
	"authsvc/internal/app/services"
	forgotpassword "authsvc/internal/http/handlers/auth/forgot_password"
	login "authsvc/internal/http/handlers/auth/log_in"
	resetpassword "authsvc/internal/http/handlers/auth/reset_password"
	signup "authsvc/internal/http/handlers/auth/sign_up"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	isTestMode := deps.Config.IsTestMode

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/health", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusOK)
	})

	apiRouter := chi.NewRouter()
	apiRouter.Method(http.MethodPost, "/signup", signup.New(s.SignUp))
	apiRouter.Method(http.MethodPost, "/login", login.New(s.LogIn))
	apiRouter.Method(
		http.MethodPost,
		"/forgot-password",
		forgotpassword.New(s.SendPasswordResetToken, isTestMode),
	)
	apiRouter.Method(http.MethodPost, "/reset-password", resetpassword.New(s.ResetPassword))

	router.Mount("/api", apiRouter)

	return &http.Server{
		Addr:              deps.Config.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
