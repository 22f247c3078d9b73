package models

type DemoChatRequest struct {
	Message *string `json:"message" validate:"required"`
}

type DemoChatResponse struct {
	Reply string `json:"reply"`
}
