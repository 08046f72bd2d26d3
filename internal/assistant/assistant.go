// Package assistant produces the companion's chat replies.
package assistant

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"

	"go.uber.org/zap"

	"github.com/mpcbarbosa/SeniorCare/config"
)

// Turn is one message of the conversation so far.
type Turn struct {
	Role    string
	Content string
}

// Request is everything a responder may use to reply.
type Request struct {
	UserName string
	Language string
	History  []Turn
	Message  string
}

type Responder interface {
	Name() string
	Reply(ctx context.Context, req Request) (string, error)
}

// New picks the responder configured by cfg.Provider.
func New(cfg *config.AssistantConfig, logger *zap.Logger) (Responder, error) {
	switch cfg.Provider {
	case "", ProviderCanned:
		return NewCanned(nil), nil
	case ProviderOpenAI:
		return NewOpenAI(cfg, &http.Client{Timeout: cfg.Timeout}, logger), nil
	default:
		return nil, fmt.Errorf("unknown assistant provider %q", cfg.Provider)
	}
}

const (
	ProviderCanned = "canned"
	ProviderOpenAI = "openai"
)

// ── canned ──

// Canned answers with one of a few fixed phrases.
type Canned struct {
	pick func(n int) int
}

// NewCanned uses pick to choose a phrase index; nil picks at random.
func NewCanned(pick func(n int) int) *Canned {
	if pick == nil {
		pick = rand.IntN
	}
	return &Canned{pick: pick}
}

func (c *Canned) Name() string { return ProviderCanned }

func (c *Canned) Reply(_ context.Context, req Request) (string, error) {
	phrases := cannedPhrases(req.UserName)
	return phrases[c.pick(len(phrases))], nil
}

func cannedPhrases(name string) []string {
	greeting := "Hello! How can I help?"
	if name != "" {
		greeting = fmt.Sprintf("Hello %s! How can I help?", name)
	}
	return []string{
		greeting,
		"It's lovely to talk to you. It's a beautiful day outside.",
		"I'm here for whatever you need. Shall we chat for a while?",
		"Have you taken your medication today?",
		"Remember to drink water regularly!",
	}
}
