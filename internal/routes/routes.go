package routes

import (
	"net/http"

	"github.com/streakly/streakly/internal/app"
	"github.com/streakly/streakly/internal/handler"
	"github.com/streakly/streakly/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler(app.Cfg.AppName)
	health := handler.NewHealthHandler(app.DB)
	auth := handler.NewAuthHandler(app.AuthService)
	habit := handler.NewHabitHandler(app.HabitService)
	report := handler.NewReportHandler(app.ReportService)
	note := handler.NewNoteHandler(app.NoteService)
	todo := handler.NewTodoHandler(app.TodoService)
	export := handler.NewExportHandler(app.ExportService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /{$}", home.Index)
	mux.HandleFunc("GET /healthz", health.Healthz)

	// Auth (rate limited)
	rateLimiter := middleware.RateLimitAuth()

	mux.HandleFunc("POST /auth/register", rateLimiter(middleware.RequireGuest(auth.Register)))
	mux.HandleFunc("POST /auth/login", rateLimiter(middleware.RequireGuest(auth.Login)))
	mux.HandleFunc("POST /auth/logout", auth.Logout)

	// ============================================================================
	// PROTECTED ROUTES (/app/*)
	// ============================================================================

	// Habits
	mux.HandleFunc("GET /app/habits", middleware.RequireAuth(habit.List))
	mux.HandleFunc("GET /app/habits/view/{view}", middleware.RequireAuth(habit.List))
	mux.HandleFunc("GET /app/habits/{id}", middleware.RequireAuth(habit.Detail))
	mux.HandleFunc("POST /app/habits", middleware.RequireAuth(habit.Create))
	mux.HandleFunc("POST /app/habits/{id}/entries/{date}/toggle", middleware.RequireAuth(habit.ToggleEntry))
	mux.HandleFunc("POST /app/habits/{id}/complete", middleware.RequireAuth(habit.Complete))
	mux.HandleFunc("POST /app/habits/{id}/delete", middleware.RequireAuth(habit.Delete))
	mux.HandleFunc("POST /app/habits/{id}/purge", middleware.RequireAuth(habit.Purge))

	// Reports
	mux.HandleFunc("GET /app/reports", middleware.RequireAuth(report.Report))

	// Notes
	mux.HandleFunc("GET /app/notes", middleware.RequireAuth(note.List))
	mux.HandleFunc("POST /app/notes", middleware.RequireAuth(note.Create))
	mux.HandleFunc("POST /app/notes/import", middleware.RequireAuth(note.Import))
	mux.HandleFunc("POST /app/notes/{id}/delete", middleware.RequireAuth(note.Delete))

	// To-dos
	mux.HandleFunc("GET /app/todos", middleware.RequireAuth(todo.List))
	mux.HandleFunc("GET /app/todos/{id}", middleware.RequireAuth(todo.Detail))
	mux.HandleFunc("POST /app/todos", middleware.RequireAuth(todo.Create))
	mux.HandleFunc("POST /app/todos/{id}/status", middleware.RequireAuth(todo.ToggleStatus))
	mux.HandleFunc("POST /app/todos/{id}/delete", middleware.RequireAuth(todo.Delete))

	// Export
	mux.HandleFunc("GET /app/export", middleware.RequireAuth(export.Export))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	mux.HandleFunc("/{path...}", home.NotFound)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.RequestLogging,
		middleware.CSRFProtection(app.Cfg.IsProduction()),
		middleware.AuthMiddleware(app.AuthService),
	)

	return handler
}
