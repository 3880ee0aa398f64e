package services

import "context"

// Reply is what a completion provider returns on success.
type Reply struct {
	Content string
	Tokens  int
}

// Provider turns the latest user content plus the stored chat context into
// a new assistant reply. Failure is signaled uniformly through the error
// return; the orchestrator never inspects the cause, it only decides
// between persisting the reply and persisting a placeholder.
type Provider interface {
	GenerateReply(ctx context.Context, chatID, latestUserContent string) (Reply, error)
}
