package asi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/contextcart/ragsearch/internal/core/domain"
	"github.com/contextcart/ragsearch/internal/infrastructure/resilience"
)

const (
	chatCompletionsPath = "/v1/chat/completions"
	requestTimeout      = 30 * time.Second
)

// OutputSchema is the generation constraint attached to a chat request.
// Constrained generation is a strong hint, not a guarantee: callers still
// parse the returned content defensively.
type OutputSchema struct {
	Name   string
	Strict bool
	Schema *jsonschema.Schema
}

// Client is the single defended transport to the generative provider.
// Prompt content stays caller-specific; validation, the timeout bound and
// the error taxonomy live here.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	exec       *resilience.Executor
}

func New(baseURL, apiKey string, exec *resilience.Executor) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: requestTimeout},
		exec:       exec,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type jsonSchemaFormat struct {
	Name   string             `json:"name"`
	Strict bool               `json:"strict"`
	Schema *jsonschema.Schema `json:"schema"`
}

type responseFormat struct {
	Type       string           `json:"type"`
	JSONSchema jsonSchemaFormat `json:"json_schema"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate sends one schema-constrained chat request and returns the raw
// model text. The content is not parsed or validated here; that is the
// caller's responsibility.
func (c *Client) Generate(ctx context.Context, message, systemPrompt, model string, schema OutputSchema) (string, error) {
	const op = "generate"

	if strings.TrimSpace(message) == "" {
		return "", domain.WrapError(domain.ErrInvalidInput, op, errors.New("message must be a non-empty string"))
	}
	if strings.TrimSpace(systemPrompt) == "" {
		return "", domain.WrapError(domain.ErrInvalidInput, op, errors.New("system prompt must be a non-empty string"))
	}
	if strings.TrimSpace(model) == "" {
		return "", domain.WrapError(domain.ErrInvalidInput, op, errors.New("model name must be a non-empty string"))
	}
	if c.apiKey == "" {
		return "", domain.WrapError(domain.ErrInvalidInput, op, errors.New("generation api key is not configured"))
	}

	request := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: message},
		},
	}
	if schema.Schema != nil {
		request.ResponseFormat = &responseFormat{
			Type: "json_schema",
			JSONSchema: jsonSchemaFormat{
				Name:   schema.Name,
				Strict: schema.Strict,
				Schema: schema.Schema,
			},
		}
	}

	var content string
	call := func(ctx context.Context) error {
		var err error
		content, err = c.complete(ctx, op, request)
		return err
	}

	if c.exec == nil {
		if err := call(ctx); err != nil {
			return "", err
		}
		return content, nil
	}

	if err := c.exec.Execute(ctx, "asi."+op, call, recordsProviderFailure); err != nil {
		if resilience.IsCircuitOpen(err) {
			return "", domain.WrapError(domain.ErrProvider, op, err)
		}
		return "", err
	}
	return content, nil
}

func (c *Client) complete(ctx context.Context, op string, request chatRequest) (string, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("marshal %s request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatCompletionsPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", domain.WrapError(domain.ErrProviderTimeout, op,
				fmt.Errorf("request timed out after %s", requestTimeout))
		}
		return "", domain.WrapError(domain.ErrProvider, op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", domain.WrapError(domain.ErrProvider, op, httpStatusError(resp))
	}

	var envelope chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", domain.WrapError(domain.ErrMalformedResponse, op, fmt.Errorf("decode response: %w", err))
	}
	// Only a missing envelope is a provider contract breach. Content that is
	// present but empty is model output; the caller's parse rejects it with
	// the raw text attached.
	if len(envelope.Choices) == 0 {
		return "", domain.WrapError(domain.ErrMalformedResponse, op, errors.New("no choices in response"))
	}
	return envelope.Choices[0].Message.Content, nil
}

func httpStatusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return fmt.Errorf("provider status: %s", resp.Status)
	}
	return fmt.Errorf("provider status: %s: %s", resp.Status, msg)
}

func isTimeout(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// recordsProviderFailure keeps validation errors off the breaker; only
// transport-class failures say anything about provider health.
func recordsProviderFailure(err error) bool {
	return domain.IsKind(err, domain.ErrProvider) ||
		domain.IsKind(err, domain.ErrProviderTimeout) ||
		domain.IsKind(err, domain.ErrMalformedResponse)
}
