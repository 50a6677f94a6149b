package currency

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/futig/trip-planner-backend/internal/entity"
	"github.com/futig/trip-planner-backend/internal/pkg/logger"
	"github.com/futig/trip-planner-backend/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase CurrencyUsecase
}

func NewHandler(usecase CurrencyUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// RegisterRoutes registers currency routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/convert-currency", h.Convert)
}

// Convert handles POST /api/convert-currency
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ConvertCurrency")

	var req entity.ConvertCurrencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Warn(ctx, "invalid request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.usecase.Convert(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, resp)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	ctxzap.Error(ctx, "request failed", zap.Error(err))

	switch {
	case errors.Is(err, entity.ErrMissingField),
		errors.Is(err, entity.ErrInvalidFormat),
		errors.Is(err, entity.ErrInvalidParameter),
		errors.Is(err, entity.ErrUnknownCurrency):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, entity.ErrRatesUnavailable):
		response.Error(w, http.StatusServiceUnavailable, "exchange rates temporarily unavailable")
	default:
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
