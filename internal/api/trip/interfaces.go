package trip

import (
	"context"

	"github.com/futig/trip-planner-backend/internal/entity"
	"github.com/futig/trip-planner-backend/internal/index"
)

type TripUsecase interface {
	PlanTrip(ctx context.Context, req *entity.TripRequest) (*entity.PlanTripResponse, error)
	RebuildIndex(ctx context.Context) (*index.Manifest, error)
}
