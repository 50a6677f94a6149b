package prompt

import (
	"fmt"
	"strings"

	"github.com/futig/trip-planner-backend/internal/entity"
)

func requestBody(req *entity.TripRequest) string {
	prefs := req.Preferences
	if prefs == "" {
		prefs = "any"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Plan a complete trip to %s for dates %s. ", req.Destination, req.Dates)
	fmt.Fprintf(&b, "Consider these preferences: %s. ", prefs)
	b.WriteString("Provide the output as a JSON object with three top-level keys: 'hotels', 'restaurants', and 'itinerary'.\n\n")
	b.WriteString("For 'hotels', suggest 3 highly-rated hotels. Include name, description, approximate price range, and a full, absolute Google Maps search link.\n\n")
	b.WriteString("For 'restaurants', suggest 3 popular restaurants. Include name, cuisine type, a brief reason for recommendation, and a full, absolute Google Maps search link.\n\n")
	b.WriteString("For 'itinerary', plan a day-by-day itinerary. Each day has a 'day' (integer), 'date' (string), and an 'activities' array; each activity has a 'name', 'description', and a 'map_link'.\n")
	b.WriteString("Ensure all map_link values are full, absolute Google Maps search URLs that open Google Maps pointing at the exact location.")
	return b.String()
}

// groundedPrompt embeds the retrieved context and constrains the model
// to it. Chunks arrive in descending score order and are kept that way.
func groundedPrompt(req *entity.TripRequest, relevant []entity.ScoredChunk) string {
	var b strings.Builder
	b.WriteString("You are a travel planner. Use ONLY the travel guide context below to plan the trip. ")
	b.WriteString("If the context does not cover something, say it is not covered by the guide instead of inventing facts. ")
	b.WriteString("Do not recommend any hotel, restaurant or attraction that is not mentioned in the context.\n\n")
	b.WriteString("--- CONTEXT ---\n")
	for _, sc := range relevant {
		b.WriteString(sc.Chunk.Text)
		b.WriteString("\n\n")
	}
	b.WriteString("--- END CONTEXT ---\n\n")
	b.WriteString(requestBody(req))
	return b.String()
}

// fallbackPrompt omits context entirely and lets the model use its own
// general knowledge.
func fallbackPrompt(req *entity.TripRequest) string {
	var b strings.Builder
	b.WriteString("You are a travel planner. Use your general knowledge of the destination to plan the trip.\n\n")
	b.WriteString(requestBody(req))
	return b.String()
}
