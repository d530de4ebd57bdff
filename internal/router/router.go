package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"wellness-backend/internal/handlers"
	"wellness-backend/internal/middleware"
	"wellness-backend/internal/websocket"
)

func New(
	jwtAuth *middleware.JWTAuth,
	metricHandler *handlers.MetricHandler,
	dashboardHandler *handlers.DashboardHandler,
	chatHandler *handlers.ChatHandler,
	wsHub *websocket.Hub,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(frontendURL))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Metric Routes ────
		r.Route("/metrics", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/", metricHandler.Create)
			r.Get("/", metricHandler.List)
			r.Delete("/{id}", metricHandler.Delete)
		})

		// ──── Dashboard Routes ────
		r.Route("/dashboard", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/", dashboardHandler.Overview)
			r.Get("/score", dashboardHandler.Score)
			r.Get("/insights", dashboardHandler.Insights)
			r.Get("/series", dashboardHandler.Series)
		})

		// ──── Chat Routes ────
		r.Group(func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/chat", chatHandler.Send)
		})

		// ──── WebSocket ────
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	return r
}
