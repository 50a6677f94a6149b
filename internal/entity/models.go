package entity

import "strings"

// TripRequest is the request payload for trip planning.
// Destination and Dates are required; Preferences is free text.
type TripRequest struct {
	Destination string `json:"destination"`
	Dates       string `json:"dates"`
	Preferences string `json:"preferences,omitempty"`
}

// Fingerprint returns a stable cache key for the request.
func (r *TripRequest) Fingerprint() string {
	return strings.ToLower(strings.TrimSpace(r.Destination)) + "|" +
		strings.TrimSpace(r.Dates) + "|" +
		strings.ToLower(strings.TrimSpace(r.Preferences))
}

// Itinerary is the structured trip plan returned to the caller.
// After sanitization every MapLink is either an absolute URL or empty.
type Itinerary struct {
	Hotels      []Hotel        `json:"hotels"`
	Restaurants []Restaurant   `json:"restaurants"`
	Days        []ItineraryDay `json:"itinerary"`
}

type Hotel struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceRange  string `json:"price_range,omitempty"`
	MapLink     string `json:"map_link"`
}

type Restaurant struct {
	Name    string `json:"name"`
	Cuisine string `json:"cuisine"`
	Reason  string `json:"recommendation_reason"`
	MapLink string `json:"map_link"`
}

type ItineraryDay struct {
	Day        int        `json:"day"`
	Date       string     `json:"date"`
	Activities []Activity `json:"activities"`
}

type Activity struct {
	Time        string `json:"time,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MapLink     string `json:"map_link"`
}

// PlanTripResponse wraps an itinerary with pipeline metadata.
type PlanTripResponse struct {
	Data     *Itinerary `json:"data"`
	Grounded bool       `json:"grounded"`
}

// ConvertCurrencyRequest is the request payload for currency conversion.
type ConvertCurrencyRequest struct {
	Amount       float64 `json:"amount"`
	FromCurrency string  `json:"from_currency"`
	ToCurrency   string  `json:"to_currency"`
}

// ConvertCurrencyResponse carries the conversion result.
type ConvertCurrencyResponse struct {
	Amount          float64 `json:"amount"`
	FromCurrency    string  `json:"from_currency"`
	ToCurrency      string  `json:"to_currency"`
	ConvertedAmount float64 `json:"converted_amount"`
	Rate            float64 `json:"rate"`
}
