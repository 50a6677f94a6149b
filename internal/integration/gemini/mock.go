package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/futig/trip-planner-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector returns a canned itinerary for local development.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (m *MockConnector) Generate(ctx context.Context, prompt *entity.Prompt) (*entity.RawOutput, error) {
	ctxzap.Info(ctx, "[MOCK] generating itinerary", zap.Bool("grounded", prompt.Grounded))

	itin := entity.Itinerary{
		Hotels: []entity.Hotel{
			{
				Name:        "Grand Central Hotel",
				Description: "Comfortable hotel near the main station",
				PriceRange:  "$150-250/night",
				MapLink:     "https://www.google.com/maps/search/?api=1&query=Grand+Central+Hotel",
			},
		},
		Restaurants: []entity.Restaurant{
			{
				Name:    "Old Town Bistro",
				Cuisine: "Local",
				Reason:  "Popular with locals, seasonal menu",
				MapLink: "https://www.google.com/maps/search/?api=1&query=Old+Town+Bistro",
			},
		},
		Days: []entity.ItineraryDay{
			{
				Day:  1,
				Date: "Day 1",
				Activities: []entity.Activity{
					{
						Time:        "10:00",
						Name:        "City Museum",
						Description: "Start with the city's history",
						MapLink:     "https://www.google.com/maps/search/?api=1&query=City+Museum",
					},
				},
			},
		},
	}

	data, err := json.Marshal(itin)
	if err != nil {
		return nil, fmt.Errorf("marshal mock itinerary: %w", err)
	}
	return &entity.RawOutput{Text: string(data)}, nil
}

func (m *MockConnector) Reachable() bool { return true }
