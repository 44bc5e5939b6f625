package model

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krestn/HomeAI/internal/config"
)

func TestGenerateText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-3.5-turbo", body["model"])
		assert.NotContains(t, body, "functions")

		fmt.Fprint(w, `{"choices": [{"message": {"role": "assistant", "content": "Hi there."}}]}`)
	}))
	defer srv.Close()

	client := NewClient(config.ProviderConfig{APIKey: "test-key", BaseURL: srv.URL, Model: "gpt-3.5-turbo"})

	resp, err := client.Generate(context.Background(), &Request{
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hi there.", resp.Text)
	assert.Nil(t, resp.FunctionCall)
}

func TestGenerateFunctionCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "auto", body["function_call"])

		fmt.Fprint(w, `{"choices": [{"message": {"role": "assistant", "content": "",
			"function_call": {"name": "get_home_value", "arguments": "{\"address\": \"42 Maple St\"}"}}}]}`)
	}))
	defer srv.Close()

	client := NewClient(config.ProviderConfig{BaseURL: srv.URL, Model: "gpt-3.5-turbo"})

	resp, err := client.Generate(context.Background(), &Request{
		Messages:  []Message{{Role: RoleUser, Content: "what's my home worth"}},
		Functions: []Function{{Name: "get_home_value", Parameters: map[string]any{"type": "object"}}},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.FunctionCall)
	assert.Equal(t, "get_home_value", resp.FunctionCall.Name)
	assert.JSONEq(t, `{"address": "42 Maple St"}`, resp.FunctionCall.Arguments)
}

func TestGenerateErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(config.ProviderConfig{BaseURL: srv.URL})

	_, err := client.Generate(context.Background(), &Request{
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGenerateNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices": []}`)
	}))
	defer srv.Close()

	client := NewClient(config.ProviderConfig{BaseURL: srv.URL})

	_, err := client.Generate(context.Background(), &Request{
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	})
	require.Error(t, err)
}
