package provider

import (
	"context"
	"time"
)

// Message one chat message sent to the model
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request chat-completions request
type Request struct {
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

// Usage token accounting reported by the provider
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response text content of the first choice
type Response struct {
	Content  string `json:"content"`
	Usage    Usage  `json:"usage"`
	CacheHit bool   `json:"cache_hit,omitempty"`
}

// Provider a chat-completions backend
type Provider interface {
	// Generate sends one request and returns the first choice
	Generate(ctx context.Context, req *Request) (*Response, error)

	// GetModel model name sent with every request
	GetModel() string

	// GetTimeout per-call deadline
	GetTimeout() time.Duration

	// Close releases idle connections
	Close() error
}

// NewRequest builds a system + user request
func NewRequest(system, prompt string, maxTokens int) *Request {
	var messages []Message
	if system != "" {
		messages = append(messages, Message{Role: "system", Content: system})
	}
	messages = append(messages, Message{Role: "user", Content: prompt})
	return &Request{
		Messages:  messages,
		MaxTokens: maxTokens,
	}
}
