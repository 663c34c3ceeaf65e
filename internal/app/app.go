package app

import (
	"fmt"
	"net/http"
	"time"

	"linkea/internal/app/deps"
	"linkea/internal/app/services"
	"linkea/internal/http/handlers/auth"
	loginwithemail "linkea/internal/http/handlers/auth/log_in_with_email"
	resetpassword "linkea/internal/http/handlers/auth/reset_password"
	sendpasswordresettoken "linkea/internal/http/handlers/auth/send_password_reset_token"
	signupwithemail "linkea/internal/http/handlers/auth/sign_up_with_email"
	getuserbyhandle "linkea/internal/http/handlers/profiles/get_user_by_handle"
	searchbyhandle "linkea/internal/http/handlers/profiles/search_by_handle"
	"linkea/internal/http/handlers/user/me"
	updateprofile "linkea/internal/http/handlers/user/update_profile"
	uploadimage "linkea/internal/http/handlers/user/upload_image"
	"linkea/internal/http/metrics"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := NewRouter(RouterOptions{
		AllowedOrigins:       deps.Config.AllowedOrigins(),
		HideAccountExistence: deps.Config.HideAccountExistence,
		Metrics:              metrics.NewHTTP(registry),
		ReportPanics:         deps.Config.SentryDsn != "",
	}, s)

	return &http.Server{
		Handler:           router,
		Addr:              fmt.Sprintf("0.0.0.0:%d", deps.Config.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

type RouterOptions struct {
	AllowedOrigins       []string
	HideAccountExistence bool
	Metrics              *metrics.HTTP
	ReportPanics         bool
}

func NewRouter(opts RouterOptions, s *services.Services) http.Handler {
	authRouter := chi.NewRouter()
	authRouter.Method(http.MethodPost, "/register", signupwithemail.New(s.SignUpWithEmail))
	authRouter.Method(http.MethodPost, "/login", loginwithemail.New(s.LogInWithEmail, opts.HideAccountExistence))
	authRouter.Method(
		http.MethodPost,
		"/forgot-password",
		sendpasswordresettoken.New(s.SendPasswordResetToken, opts.HideAccountExistence),
	)
	authRouter.Method(http.MethodPost, "/reset-password/{token}", resetpassword.New(s.ResetPassword))

	userRouter := chi.NewRouter()
	userRouter.Use(auth.SetCredentialToContext)
	userRouter.Method(http.MethodGet, "/", me.New(s.GetUser))
	userRouter.Method(http.MethodPatch, "/", updateprofile.New(s.UpdateProfile))
	userRouter.Method(http.MethodPost, "/image", uploadimage.New(s.UploadImage))

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	if opts.ReportPanics {
		router.Use(sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle)
	}
	router.Use(middleware.Recoverer)
	router.Use(opts.Metrics.Middleware)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/auth", authRouter)
	router.Mount("/user", userRouter)
	router.Method(http.MethodGet, "/profiles/{handle}", getuserbyhandle.New(s.GetUserByHandle))
	router.Method(http.MethodPost, "/search", searchbyhandle.New(s.SearchByHandle))
	router.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())

	return router
}
