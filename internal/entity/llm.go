package entity

// Prompt is the assembled generation input. Grounded prompts carry the
// retrieved context they were built from so the sanitizer can cross-check
// entity names against it.
type Prompt struct {
	Text     string
	Grounded bool
	Context  []ScoredChunk
}

// RawOutput is the unvalidated model output. It must pass through the
// sanitizer before being treated as an Itinerary.
type RawOutput struct {
	Text string
}
