package services

import (
	"context"
	"math/rand"
)

var mockResponses = []string{
	"I understand you're asking about that topic. Could you provide more details?",
	"That's an interesting question! Let me think about it...",
	"Based on the information provided, here's what I can suggest.",
	"I'd be happy to help with that. Here are some thoughts.",
	"Thanks for asking! Here's my perspective on that matter.",
	"Cool,My knowledge on that is a bit limited, but here's what I know.",
	"I'm not sure about that, but I can help you find more information.",
	"Let's explore that topic together. Here's a starting point.",
	"That's a great question! Here's what I've found.",
	"I appreciate your curiosity! Here's some information that might help.",
}

// MockProvider answers with a pseudo-randomly chosen canned response and
// zero token usage. It is selected at startup when no OpenAI credential is
// configured so the app stays usable offline.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (*MockProvider) GenerateReply(ctx context.Context, chatID, latestUserContent string) (Reply, error) {
	return Reply{Content: mockResponses[rand.Intn(len(mockResponses))], Tokens: 0}, nil
}
