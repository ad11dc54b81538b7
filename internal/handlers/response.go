package handlers

// MessageResponse carries a human-readable outcome message.
// swagger:model MessageResponse
type MessageResponse struct {
	// Outcome message
	// example: User created successfully
	Message string `json:"message"`
}

// ErrorResponse carries the underlying error detail for unexpected failures.
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error detail
	// example: store unavailable
	Error string `json:"error"`
}
