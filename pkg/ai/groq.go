package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/entities"
	"github.com/ShashankMk031/ZenAI-AI-Backend/pkg/config"
)

const groqService = "groq"

// GroqClient talks to Groq's OpenAI-compatible API
type GroqClient struct {
	client *resty.Client
}

// NewGroqClient creates a Groq client using values from the provided config
func NewGroqClient(cfg *config.GroqConfig) *GroqClient {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = "https://api.groq.com"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	client := resty.New().
		SetBaseURL(base).
		SetAuthToken(cfg.APIKey).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &GroqClient{client: client}
}

// ChatMessage is one message of a chat completion request
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ModelList is the response of the models endpoint
type ModelList struct {
	Data []struct {
		ID     string `json:"id"`
		Active *bool  `json:"active,omitempty"`
	} `json:"data"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// ListModels returns the IDs of the models currently served
func (g *GroqClient) ListModels(ctx context.Context) ([]string, error) {
	var list ModelList
	var apiErr apiError
	resp, err := g.client.R().
		SetContext(ctx).
		SetResult(&list).
		SetError(&apiErr).
		Get("/openai/v1/models")
	if err != nil {
		return nil, &entities.TransportError{Service: groqService, Op: "list models", Err: err}
	}
	if resp.IsError() {
		return nil, &entities.TransportError{
			Service:    groqService,
			Op:         "list models",
			StatusCode: resp.StatusCode(),
			Err:        errors.New(errorMessage(apiErr, resp)),
		}
	}

	models := make([]string, 0, len(list.Data))
	for _, m := range list.Data {
		if m.Active != nil && !*m.Active {
			continue
		}
		models = append(models, m.ID)
	}
	return models, nil
}

// Complete sends a single-turn chat completion and returns the reply text
func (g *GroqClient) Complete(ctx context.Context, model, prompt string, temperature float64) (string, error) {
	reqBody := ChatRequest{
		Model:       model,
		Messages:    []ChatMessage{{Role: "user", Content: prompt}},
		Temperature: temperature,
	}

	var cr ChatResponse
	var apiErr apiError
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&cr).
		SetError(&apiErr).
		Post("/openai/v1/chat/completions")
	if err != nil {
		return "", &entities.TransportError{Service: groqService, Op: "chat completion", Err: err}
	}
	if resp.IsError() {
		return "", &entities.TransportError{
			Service:    groqService,
			Op:         "chat completion",
			StatusCode: resp.StatusCode(),
			Err:        errors.New(errorMessage(apiErr, resp)),
		}
	}
	if len(cr.Choices) == 0 {
		return "", &entities.TransportError{Service: groqService, Op: "chat completion", Err: errors.New("empty response from groq")}
	}
	return cr.Choices[0].Message.Content, nil
}

func errorMessage(apiErr apiError, resp *resty.Response) string {
	if apiErr.Error.Message != "" {
		return apiErr.Error.Message
	}
	return fmt.Sprintf("groq returned status %d", resp.StatusCode())
}
