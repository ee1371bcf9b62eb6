package apimodels

// ChatRequest is the JSON body accepted by the chat endpoint.
type ChatRequest struct {
	// Message is the user's question. Required.
	Message string `json:"message"`

	// Context is the most recent analysis result, folded into the
	// assistant's prompt when present.
	Context *AnalysisResult `json:"context,omitempty"`

	// Image is an optional data URI of the analyzed photo so the
	// assistant can answer questions about what is visible in it.
	Image string `json:"image,omitempty"`
}
