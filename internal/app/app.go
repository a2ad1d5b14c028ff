package app

import (
	"fmt"
	"net/http"
	"proposalai/internal/app/deps"
	"proposalai/internal/app/services"
	"proposalai/internal/http/handlers/auth"
	loginwithemail "proposalai/internal/http/handlers/auth/log_in_with_email"
	requestpasswordreset "proposalai/internal/http/handlers/auth/request_password_reset"
	resetpassword "proposalai/internal/http/handlers/auth/reset_password"
	signupwithemail "proposalai/internal/http/handlers/auth/sign_up_with_email"
	me "proposalai/internal/http/handlers/profile/me"
	calculatequote "proposalai/internal/http/handlers/proposals/calculate_quote"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func NewRouter(allowedOrigins []string, s *services.Services) http.Handler {
	authRouter := chi.NewRouter()
	authRouter.Method(http.MethodPost, "/signup", signupwithemail.New(s.SignUpWithEmail))
	authRouter.Method(http.MethodPost, "/login", loginwithemail.New(s.LogInWithEmail))
	authRouter.Method(
		http.MethodPost,
		"/password_reset/token",
		requestpasswordreset.New(s.RequestPasswordReset),
	)
	authRouter.Method(http.MethodPut, "/password_reset", resetpassword.New(s.ResetPassword))

	profileRouter := chi.NewRouter()
	profileRouter.Use(auth.SetAuthTokenToContext)
	profileRouter.Method(http.MethodGet, "/me", me.New(s.GetCurrentAccount))

	proposalsRouter := chi.NewRouter()
	proposalsRouter.Use(auth.SetAuthTokenToContext)
	proposalsRouter.Method(http.MethodPost, "/quote", calculatequote.New(s.CalculateQuote))

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/auth", authRouter)
	router.Mount("/profile", profileRouter)
	router.Mount("/proposals", proposalsRouter)

	return router
}

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler:           NewRouter(deps.Config.AllowedOrigins, s),
		Addr:              address,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
