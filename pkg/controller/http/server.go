package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pipehq/workboard/pkg/usecase"
	"github.com/pipehq/workboard/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

type Options func(*Server)

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Use(tenantMiddleware)

		r.Route("/{entityType}", func(r chi.Router) {
			r.Get("/columns", s.handleColumnCatalog)
			r.Get("/workboards", s.handleListWorkboards)
			r.Post("/filters/validate", s.handleValidateFilter)
			r.Post("/rows/{recordID}/cell", s.handleEditCell)
		})

		r.Route("/workboards", func(r chi.Router) {
			r.Post("/", s.handleCreateWorkboard)
			r.Route("/{workboardID}", func(r chi.Router) {
				r.Get("/", s.handleGetWorkboard)
				r.Put("/", s.handleSaveView)
				r.Delete("/", s.handleDeleteWorkboard)
				r.Get("/columns/available", s.handleAvailableColumns)
				r.Post("/columns", s.handleAddColumn)
				r.Delete("/columns/{field}", s.handleRemoveColumn)
				r.Post("/columns/move", s.handleMoveColumn)
				r.Post("/filters", s.handleAddFilter)
				r.Delete("/filters/{index}", s.handleRemoveFilter)
				r.Post("/query", s.handleQuery)
			})
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
