// Package openai talks to an OpenAI-compatible provider for embeddings and
// chat completions. The two request paths share one Client so transport,
// auth, and failure handling live in a single place.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopgrid/catalog-assistant/internal/core/schema"
	"github.com/shopgrid/catalog-assistant/internal/infrastructure/resilience"
)

const DefaultBaseURL = "https://api.openai.com/v1"

type Client struct {
	baseURL    string
	apiKey     string
	chatModel  string
	embedModel string
	httpClient *http.Client
	exec       *resilience.Executor
}

func New(baseURL, apiKey, chatModel, embedModel string, exec *resilience.Executor) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		chatModel:  chatModel,
		embedModel: embedModel,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		exec:       exec,
	}
}

// Embedder converts text into fixed-dimension vectors.
type Embedder struct {
	client *Client
}

func NewEmbedder(client *Client) *Embedder {
	return &Embedder{client: client}
}

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
}

func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if err := e.client.requireKey("embed"); err != nil {
		return nil, err
	}

	var response embeddingResponse
	err := e.client.execute(ctx, "embed", func(ctx context.Context) error {
		response = embeddingResponse{}
		return e.client.postJSON(ctx, "/embeddings", embeddingRequest{
			Model: e.client.embedModel,
			Input: texts,
		}, &response, "embed")
	})
	if err != nil {
		return nil, err
	}

	if len(response.Data) != len(texts) {
		return nil, wrapProviderError("embed", fmt.Errorf("expected %d embeddings, got %d", len(texts), len(response.Data)))
	}
	vectors := make([][]float32, len(texts))
	for _, item := range response.Data {
		if item.Index < 0 || item.Index >= len(vectors) {
			return nil, wrapProviderError("embed", fmt.Errorf("embedding index %d out of range", item.Index))
		}
		if len(item.Embedding) == 0 {
			return nil, wrapProviderError("embed", errors.New("response missing embedding field"))
		}
		vectors[item.Index] = item.Embedding
	}
	return vectors, nil
}

func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, wrapProviderError("embed", errors.New("empty embedding result"))
	}
	return vectors[0], nil
}

// Completer fills a task schema's output field via chat completions.
type Completer struct {
	client *Client
}

func NewCompleter(client *Client) *Completer {
	return &Completer{client: client}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Completer) Complete(ctx context.Context, task schema.Task, inputs map[string]string) (map[string]string, error) {
	prompt, err := task.Render(inputs)
	if err != nil {
		return nil, err
	}
	if err := c.client.requireKey(task.Name); err != nil {
		return nil, err
	}

	var messages []chatMessage
	if task.Instruction != "" {
		messages = append(messages, chatMessage{Role: "system", Content: task.Instruction})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	var response chatResponse
	err = c.client.execute(ctx, task.Name, func(ctx context.Context) error {
		response = chatResponse{}
		return c.client.postJSON(ctx, "/chat/completions", chatRequest{
			Model:    c.client.chatModel,
			Messages: messages,
		}, &response, task.Name)
	})
	if err != nil {
		return nil, err
	}

	if len(response.Choices) == 0 {
		return nil, wrapProviderError(task.Name, errors.New("response has no choices"))
	}
	return map[string]string{
		task.Output.Name: strings.TrimSpace(response.Choices[0].Message.Content),
	}, nil
}

func (c *Client) execute(ctx context.Context, operation string, fn func(context.Context) error) error {
	if c.exec == nil {
		return wrapProviderError(operation, fn(ctx))
	}
	err := c.exec.Execute(ctx, operation, fn, classifyProviderError)
	return wrapProviderError(operation, err)
}
