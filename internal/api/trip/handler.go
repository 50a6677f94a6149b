package trip

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/futig/trip-planner-backend/internal/entity"
	"github.com/futig/trip-planner-backend/internal/pkg/logger"
	"github.com/futig/trip-planner-backend/internal/pkg/response"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase TripUsecase
}

func NewHandler(usecase TripUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// PlanTrip handles POST /api/plan-trip
func (h *Handler) PlanTrip(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "PlanTrip")

	var req entity.TripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Warn(ctx, "invalid request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctxzap.Info(ctx, "planning trip",
		zap.String("destination", req.Destination),
		zap.String("dates", req.Dates),
	)

	resp, err := h.usecase.PlanTrip(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, resp)
}

// Reindex handles POST /api/reindex
func (h *Handler) Reindex(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Reindex")

	ctxzap.Info(ctx, "rebuilding index")

	manifest, err := h.usecase.RebuildIndex(ctx)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, manifest)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	ctxzap.Error(ctx, "request failed", zap.Error(err))

	switch {
	case errors.Is(err, entity.ErrMissingField),
		errors.Is(err, entity.ErrInvalidFormat),
		errors.Is(err, entity.ErrInvalidParameter):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, entity.ErrGenerationRejected):
		response.Error(w, http.StatusUnprocessableEntity, "request rejected by content policy")
	case errors.Is(err, entity.ErrGenerationTimeout):
		response.Error(w, http.StatusGatewayTimeout, "generation timed out")
	case errors.Is(err, entity.ErrIndexUnavailable),
		errors.Is(err, entity.ErrGenerationUnavailable):
		response.Error(w, http.StatusServiceUnavailable, "service temporarily unavailable")
	case errors.Is(err, entity.ErrMalformedOutput):
		response.Error(w, http.StatusBadGateway, "generation produced an unusable response")
	case errors.Is(err, entity.ErrNoDocuments):
		response.Error(w, http.StatusUnprocessableEntity, "knowledge base folder is missing or unreadable")
	default:
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
