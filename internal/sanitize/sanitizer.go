package sanitize

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/futig/trip-planner-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Sanitizer validates and repairs raw model output before it is treated
// as an itinerary. Schema and URL checks are hard; entity grounding is a
// defensive filter that flags but does not drop.
type Sanitizer struct {
	logger *zap.Logger
}

func NewSanitizer(logger *zap.Logger) *Sanitizer {
	return &Sanitizer{logger: logger}
}

// Sanitize parses the raw output against the itinerary schema, repairs
// or clears malformed URL fields, and cross-checks entity names against
// the grounded context. Idempotent: running it again over its own output
// changes nothing.
func (s *Sanitizer) Sanitize(ctx context.Context, raw *entity.RawOutput, p *entity.Prompt) (*entity.Itinerary, error) {
	itin, err := parseItinerary(raw.Text)
	if err != nil {
		return nil, err
	}

	repaired, cleared := s.sanitizeURLs(ctx, itin)
	if repaired+cleared > 0 {
		ctxzap.Info(ctx, "sanitized itinerary URLs",
			zap.Int("repaired", repaired),
			zap.Int("cleared", cleared),
		)
	}

	if p != nil && p.Grounded {
		s.flagUngroundedEntities(ctx, itin, p.Context)
	}

	return itin, nil
}

// parseItinerary decodes the model output. If direct decoding fails, one
// repair attempt extracts the outermost JSON object from surrounding
// prose. Missing required top-level fields are a hard failure.
func parseItinerary(text string) (*entity.Itinerary, error) {
	fields, err := topLevelFields(text)
	if err != nil {
		extracted, ok := extractJSONObject(text)
		if !ok {
			return nil, fmt.Errorf("%w: no JSON object in output", entity.ErrMalformedOutput)
		}
		fields, err = topLevelFields(extracted)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", entity.ErrMalformedOutput, err)
		}
		text = extracted
	}

	for _, required := range []string{"hotels", "restaurants", "itinerary"} {
		if _, ok := fields[required]; !ok {
			return nil, fmt.Errorf("%w: missing required field %q", entity.ErrMalformedOutput, required)
		}
	}

	var itin entity.Itinerary
	if err := json.Unmarshal([]byte(text), &itin); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrMalformedOutput, err)
	}

	// Schema guarantees arrays, never null.
	if itin.Hotels == nil {
		itin.Hotels = []entity.Hotel{}
	}
	if itin.Restaurants == nil {
		itin.Restaurants = []entity.Restaurant{}
	}
	if itin.Days == nil {
		itin.Days = []entity.ItineraryDay{}
	}
	return &itin, nil
}

func topLevelFields(text string) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// extractJSONObject returns the substring from the first '{' to the last
// '}'. Good enough for models that wrap JSON in prose or code fences.
func extractJSONObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// sanitizeURLs repairs every URL-shaped field in place. Unrepairable
// values are cleared rather than propagated as broken links.
func (s *Sanitizer) sanitizeURLs(ctx context.Context, itin *entity.Itinerary) (repaired, cleared int) {
	fix := func(link *string) {
		fixed, ok := RepairURL(*link)
		if !ok {
			ctxzap.Warn(ctx, "clearing unrepairable URL", zap.String("url", *link))
			*link = ""
			cleared++
			return
		}
		if fixed != *link {
			*link = fixed
			repaired++
		}
	}

	for i := range itin.Hotels {
		fix(&itin.Hotels[i].MapLink)
	}
	for i := range itin.Restaurants {
		fix(&itin.Restaurants[i].MapLink)
	}
	for i := range itin.Days {
		for j := range itin.Days[i].Activities {
			fix(&itin.Days[i].Activities[j].MapLink)
		}
	}
	return repaired, cleared
}

// flagUngroundedEntities logs hotel and restaurant names that cannot be
// traced back to the retrieved context. They are flagged, not dropped:
// name matching is fuzzy enough that false positives are likely.
func (s *Sanitizer) flagUngroundedEntities(ctx context.Context, itin *entity.Itinerary, contextChunks []entity.ScoredChunk) {
	var b strings.Builder
	for _, sc := range contextChunks {
		b.WriteString(strings.ToLower(sc.Chunk.Text))
		b.WriteString("\n")
	}
	corpus := b.String()

	check := func(kind, name string) {
		if name == "" {
			return
		}
		if !strings.Contains(corpus, strings.ToLower(name)) {
			ctxzap.Warn(ctx, "entity not traceable to grounded context",
				zap.String("kind", kind),
				zap.String("name", name),
			)
		}
	}

	for _, h := range itin.Hotels {
		check("hotel", h.Name)
	}
	for _, r := range itin.Restaurants {
		check("restaurant", r.Name)
	}
}
