package api

import (
	"net/http"
	"time"

	currencyapi "github.com/futig/trip-planner-backend/internal/api/currency"
	"github.com/futig/trip-planner-backend/internal/api/middleware"
	tripapi "github.com/futig/trip-planner-backend/internal/api/trip"
	"github.com/futig/trip-planner-backend/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// IndexCheck reports whether a searchable index snapshot is loaded.
type IndexCheck interface {
	Ready() bool
}

// GeneratorCheck reports whether the generation backend is usable.
type GeneratorCheck interface {
	Reachable() bool
}

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	tripHandler *tripapi.Handler,
	currencyHandler *currencyapi.Handler,
	index IndexCheck,
	generator GeneratorCheck,
	requestTimeout time.Duration,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS)
	r.Use(chimiddleware.Timeout(requestTimeout))

	r.Get("/health", healthHandler(index, generator))

	r.Route("/api", func(r chi.Router) {
		tripapi.RegisterRoutes(r, tripHandler)
		currencyapi.RegisterRoutes(r, currencyHandler)
	})

	return r
}

type healthStatus struct {
	Status    string `json:"status"`
	Index     bool   `json:"index"`
	Generator bool   `json:"generator"`
}

// healthHandler reports readiness: the service can only plan trips when
// an index snapshot is loaded and the generation backend is reachable.
func healthHandler(index IndexCheck, generator GeneratorCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := healthStatus{
			Index:     index.Ready(),
			Generator: generator.Reachable(),
		}

		if st.Index && st.Generator {
			st.Status = "ready"
			response.JSON(w, http.StatusOK, st)
			return
		}

		st.Status = "not_ready"
		response.JSON(w, http.StatusServiceUnavailable, st)
	}
}
