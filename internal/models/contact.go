package models

// ContactSubmission is a marketing-site contact form post. Pointers let
// validation tell a missing field apart from an empty one.
type ContactSubmission struct {
	Name    *string `json:"name" validate:"required"`
	Email   *string `json:"email" validate:"required,email"`
	Message *string `json:"message" validate:"required"`
}
