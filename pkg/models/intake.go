package models

// Represents a "Request a Quote" submission from the contact section
type QuoteRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Service  string `json:"service"`
	Budget   string `json:"budget"`
	Timeline string `json:"timeline"`
	Message  string `json:"message"`
}

// NewsletterRequest is a newsletter sign-up
type NewsletterRequest struct {
	Email string `json:"email"`
}

// ContactRequest is a plain contact message
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// APIResponse is the body returned by every intake endpoint
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
