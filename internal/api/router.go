package api

import (
	"net/http"

	"github.com/Atharva2908/task-manager/internal/api/handlers"
	"github.com/Atharva2908/task-manager/internal/infrastructure/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Tasks         *handlers.TaskHandler
	TimeLogs      *handlers.TimeLogHandler
	Users         *handlers.UserHandler
	Comments      *handlers.CommentHandler
	Notifications *handlers.NotificationHandler
}

func NewRouter(h Handlers, jwtManager *auth.JWTManager) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(Authenticator(jwtManager))

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", h.Tasks.ListTasks)
			r.Post("/", h.Tasks.CreateTask)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Tasks.GetTask)
				r.Put("/", h.Tasks.UpdateTask)
				r.Delete("/", h.Tasks.DeleteTask)

				r.Get("/time-logs", h.TimeLogs.ListTimeLogs)
				r.Post("/time-logs", h.TimeLogs.LogTime)
				r.Route("/timer", func(r chi.Router) {
					r.Get("/", h.TimeLogs.TimerStatus)
					r.Post("/start", h.TimeLogs.StartTimer)
					r.Post("/stop", h.TimeLogs.StopTimer)
					r.Post("/reset", h.TimeLogs.ResetTimer)
					r.Post("/retry", h.TimeLogs.RetryTimer)
				})
			})
		})

		r.Get("/users", h.Users.ListUsers)

		r.Route("/comments", func(r chi.Router) {
			r.Post("/", h.Comments.CreateComment)
			r.Get("/task/{taskID}", h.Comments.ListTaskComments)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", h.Notifications.ListNotifications)
			r.Put("/{id}/read", h.Notifications.MarkRead)
			r.Delete("/{id}", h.Notifications.DeleteNotification)
		})
	})

	return r
}
