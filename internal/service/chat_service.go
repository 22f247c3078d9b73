package service

import "strings"

const (
	ReplyPricing  = "Starter £25/mo • Pro £49/mo. Cancel anytime."
	ReplyGreeting = "Hi! I’m ZenithCordAI 🤖 — ask me about plans or features."
	ReplyFallback = "ZenithCordAI captures leads & books calls 24/7. Ask about pricing or features!"
)

// SelectReply picks the canned demo reply for message. Pricing keywords win over greetings.
func SelectReply(message string) string {
	msg := strings.ToLower(message)
	if strings.Contains(msg, "price") || strings.Contains(msg, "cost") {
		return ReplyPricing
	}
	if strings.Contains(msg, "hello") || strings.Contains(msg, "hi") {
		return ReplyGreeting
	}
	return ReplyFallback
}

type ChatService struct{}

func NewChatService() *ChatService {
	return &ChatService{}
}

func (s *ChatService) Reply(message string) string {
	return SelectReply(message)
}
