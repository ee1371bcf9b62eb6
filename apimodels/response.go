package apimodels

// AnalysisResult is the normalized product identification returned by the
// analyze endpoint. All fields are guaranteed to be populated: string fields
// fall back to fixed defaults, Confidence is clamped to [0,1] and
// SearchQueries always contains at least one entry.
type AnalysisResult struct {
	// Short, e-commerce-searchable product title
	Title string `json:"title"`

	// Brand name, "Unknown" when not identifiable
	Brand string `json:"brand"`

	// Product category, e.g. "Electronics" or "Footwear"
	Category string `json:"category"`

	// Model-reported confidence in [0,1]
	Confidence float64 `json:"confidence"`

	// Alternate search terms for finding this product
	SearchQueries []string `json:"searchQueries"`
}

// ChatResponse carries the assistant's reply for the chat endpoint.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// ErrorResponse is the uniform error body for 4xx/5xx responses.
type ErrorResponse struct {
	Error string `json:"error"`
}
