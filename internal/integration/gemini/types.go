package gemini

// Wire types for the generateContent API.

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string         `json:"responseMimeType,omitempty"`
	ResponseSchema   map[string]any `json:"responseSchema,omitempty"`
}

type generateResponse struct {
	Candidates     []candidate     `json:"candidates"`
	PromptFeedback *promptFeedback `json:"promptFeedback,omitempty"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

type promptFeedback struct {
	BlockReason string `json:"blockReason"`
}

// itinerarySchema is the structured-output schema the model is asked to
// conform to: hotels, restaurants and a day-by-day itinerary, every entry
// carrying an absolute map link.
var itinerarySchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"hotels": map[string]any{
			"type": "ARRAY",
			"items": map[string]any{
				"type": "OBJECT",
				"properties": map[string]any{
					"name":        map[string]any{"type": "STRING"},
					"description": map[string]any{"type": "STRING"},
					"price_range": map[string]any{"type": "STRING"},
					"map_link":    map[string]any{"type": "STRING", "description": "Full Google Maps search link"},
				},
				"required": []string{"name", "description", "map_link"},
			},
		},
		"restaurants": map[string]any{
			"type": "ARRAY",
			"items": map[string]any{
				"type": "OBJECT",
				"properties": map[string]any{
					"name":                  map[string]any{"type": "STRING"},
					"cuisine":               map[string]any{"type": "STRING"},
					"recommendation_reason": map[string]any{"type": "STRING"},
					"map_link":              map[string]any{"type": "STRING", "description": "Full Google Maps search link"},
				},
				"required": []string{"name", "cuisine", "recommendation_reason", "map_link"},
			},
		},
		"itinerary": map[string]any{
			"type": "ARRAY",
			"items": map[string]any{
				"type": "OBJECT",
				"properties": map[string]any{
					"day":  map[string]any{"type": "INTEGER"},
					"date": map[string]any{"type": "STRING"},
					"activities": map[string]any{
						"type": "ARRAY",
						"items": map[string]any{
							"type": "OBJECT",
							"properties": map[string]any{
								"time":        map[string]any{"type": "STRING", "description": "Optional time for the activity"},
								"name":        map[string]any{"type": "STRING"},
								"description": map[string]any{"type": "STRING"},
								"map_link":    map[string]any{"type": "STRING", "description": "Full Google Maps search link"},
							},
							"required": []string{"name", "description", "map_link"},
						},
					},
				},
				"required": []string{"day", "date", "activities"},
			},
		},
	},
	"required": []string{"hotels", "restaurants", "itinerary"},
}
