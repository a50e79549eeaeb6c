package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/taskboard/api/internal/core/ports"
	"github.com/taskboard/api/internal/logging"
)

type RouterConfig struct {
	UserHandler       *UserHandler
	TaskHandler       *TaskHandler
	Tokens            ports.TokenManager
	Users             ports.UserRepository
	Logger            *slog.Logger
	RateLimitRequests int
	RateLimitWindow   time.Duration
	// WSHandler, when set, is mounted at /ws.
	WSHandler http.Handler
}

func NewHandler(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)

	limiter := httprate.LimitByIP(cfg.RateLimitRequests, cfg.RateLimitWindow)
	authenticate := Authenticator(cfg.Tokens, cfg.Users)

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Server is running"))
	})

	r.Route("/users", func(r chi.Router) {
		r.With(limiter).Post("/create", cfg.UserHandler.Register)
		r.With(limiter).Post("/login", cfg.UserHandler.Login)
		r.Post("/logout", cfg.UserHandler.Logout)
		r.Get("/whoami", cfg.UserHandler.WhoAmI)
		r.Get("/", cfg.UserHandler.ListUsers)
		r.Get("/{id}", cfg.UserHandler.GetUser)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/", cfg.TaskHandler.ListTasks)
		r.Post("/", cfg.TaskHandler.CreateTask)
		r.Put("/{id}", cfg.TaskHandler.UpdateTask)
		r.Delete("/{id}", cfg.TaskHandler.DeleteTask)
	})

	if cfg.WSHandler != nil {
		r.Handle("/ws", cfg.WSHandler)
	}

	return r
}
