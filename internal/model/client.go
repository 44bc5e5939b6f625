package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/krestn/HomeAI/internal/config"
	apperrors "github.com/krestn/HomeAI/internal/errors"
)

// Client implements Generator against an OpenAI-compatible API.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewClient creates a provider client from config.
func NewClient(cfg config.ProviderConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		client:  &http.Client{Timeout: timeout},
	}
}

// Generate sends a completion request and returns either text or a
// function call.
func (c *Client) Generate(ctx context.Context, req *Request) (*Response, error) {
	body := map[string]any{
		"model":    c.model,
		"messages": req.Messages,
	}
	if len(req.Functions) > 0 {
		body["functions"] = req.Functions
		body["function_call"] = "auto"
	}
	if req.MaxTokens > 0 {
		body["max_tokens"] = req.MaxTokens
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeProviderParseError,
			"failed to marshal provider request", apperrors.CategoryDegraded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeProviderUnavailable,
			"failed to create provider request", apperrors.CategoryDegraded)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeProviderUnavailable,
			"provider request failed", apperrors.CategoryDegraded)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeProviderUnavailable,
			"failed to read provider response", apperrors.CategoryDegraded)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.New(apperrors.CodeProviderUnavailable,
			fmt.Sprintf("provider returned status %d: %s", resp.StatusCode, respBody),
			apperrors.CategoryDegraded)
	}

	var completion completionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeProviderParseError,
			"failed to parse provider response", apperrors.CategoryDegraded)
	}
	if len(completion.Choices) == 0 {
		return nil, apperrors.New(apperrors.CodeProviderParseError,
			"no choices in provider response", apperrors.CategoryDegraded)
	}

	msg := completion.Choices[0].Message
	out := &Response{Text: msg.Content}
	if msg.FunctionCall != nil {
		out.FunctionCall = &FunctionCall{
			Name:      msg.FunctionCall.Name,
			Arguments: msg.FunctionCall.Arguments,
		}
	}
	return out, nil
}

// ============================================================
// Provider API Types
// ============================================================

type completionResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role         string `json:"role"`
			Content      string `json:"content"`
			FunctionCall *struct {
				Name      string `json:"name"`
				Arguments string `json:"arguments"`
			} `json:"function_call"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}
