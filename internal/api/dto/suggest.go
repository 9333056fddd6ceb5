package dto

type SuggestionResponse struct {
	Label string  `json:"label"`
	Lon   float64 `json:"lon"`
	Lat   float64 `json:"lat"`
}

type SuggestResponse struct {
	Suggestions []SuggestionResponse `json:"suggestions"`
}
