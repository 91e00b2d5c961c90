// Package ai wraps the hosted language-model collaborator behind a small
// provider interface. Timeouts live here, not in the engine.
package ai

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Provider interface {
	Generate(messages []Message) (string, error)
}
