package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/mpcbarbosa/SeniorCare/config"
)

// ErrUnavailable is returned while the provider is throttled or failing.
var ErrUnavailable = errors.New("assistant temporarily unavailable")

const systemPrompt = "You are a warm, patient companion for an older adult. " +
	"Answer in short, simple sentences. Never give medical diagnoses; " +
	"suggest contacting a caregiver or doctor for health concerns."

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// OpenAI talks to any OpenAI-compatible chat-completions endpoint.
type OpenAI struct {
	cfg     *config.AssistantConfig
	client  *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[string]
	logger  *zap.Logger
}

func NewOpenAI(cfg *config.AssistantConfig, client *http.Client, logger *zap.Logger) *OpenAI {
	rpm := cfg.RequestsPerMin
	if rpm <= 0 {
		rpm = 30
	}
	o := &OpenAI{
		cfg:     cfg,
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(float64(rpm)/60.0), max(1, rpm/10)),
		logger:  logger,
	}
	o.breaker = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "assistant",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	return o
}

func (o *OpenAI) Name() string { return ProviderOpenAI }

func (o *OpenAI) Reply(ctx context.Context, req Request) (string, error) {
	if !o.limiter.Allow() {
		return "", ErrUnavailable
	}
	reply, err := o.breaker.Execute(func() (string, error) {
		return o.complete(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", ErrUnavailable
	}
	return reply, err
}

func (o *OpenAI) complete(ctx context.Context, req Request) (string, error) {
	messages := make([]chatMessage, 0, len(req.History)+2)
	prompt := systemPrompt
	if req.UserName != "" {
		prompt += " The user's name is " + req.UserName + "."
	}
	if req.Language != "" {
		prompt += " Reply in the language with code " + req.Language + "."
	}
	messages = append(messages, chatMessage{Role: "system", Content: prompt})
	for _, t := range req.History {
		messages = append(messages, chatMessage{Role: t.Role, Content: t.Content})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Message})

	body, err := json.Marshal(chatRequest{
		Model:       o.cfg.Model,
		Messages:    messages,
		MaxTokens:   o.cfg.MaxTokens,
		Temperature: o.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := strings.TrimRight(o.cfg.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+o.cfg.APIKey)

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("assistant api error (status %d): %s", resp.StatusCode, string(b))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", errors.New("assistant api returned no choices")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
