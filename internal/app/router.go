package app

import (
	"database/sql"
	"net/http"
	"time"

	"mcqreview/internal/app/observability"
	"mcqreview/internal/donestate"
	"mcqreview/internal/question"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the API and the static client. db is only used when the
// done state is kept in Postgres and may be nil otherwise.
func NewRouter(cfg Config, db *sql.DB) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	collector := observability.NewCollector()
	r.Use(collector.Middleware)

	questionSvc := question.NewService(cfg.DataDir)
	questionHandler := question.NewHandler(questionSvc)

	doneStore := donestate.NewStore(newDoneBackend(cfg, db))
	doneHandler := donestate.NewHandler(doneStore)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	r.Get("/metrics", collector.MetricsHandler)

	limiter := NewIPRateLimiter(cfg.APIRateLimitPerMin, time.Minute)
	r.Route("/api", func(api chi.Router) {
		api.Use(RateLimitMiddleware(limiter))
		api.Use(CSRFMiddleware(cfg.CSRFEnforced))

		api.Get("/files", questionHandler.ListFiles)
		api.Get("/questions", questionHandler.ListQuestions)

		api.Get("/done", doneHandler.Get)
		api.Post("/done", doneHandler.Replace)
		api.Post("/done/toggle", doneHandler.Toggle)
	})

	static := http.FileServer(http.Dir(cfg.StaticDir))
	r.Get("/", static.ServeHTTP)
	r.Get("/*", static.ServeHTTP)

	return r
}

func newDoneBackend(cfg Config, db *sql.DB) donestate.Backend {
	if cfg.DoneBackend == DoneBackendPostgres && db != nil {
		return donestate.NewPostgresBackend(db)
	}
	return donestate.NewFileBackend(cfg.CacheDir)
}
