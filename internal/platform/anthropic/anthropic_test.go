package anthropic_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tili-api/internal/generation"
	"github.com/phrazzld/tili-api/internal/platform/anthropic"
	"github.com/phrazzld/tili-api/internal/platform/logger"
)

func newBackend(t *testing.T, handler http.HandlerFunc) *anthropic.Backend {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	log, _ := logger.NewBufferLogger()
	b, err := anthropic.New(anthropic.Config{APIKey: "test-key", BaseURL: server.URL}, log)
	require.NoError(t, err)
	return b
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := anthropic.New(anthropic.Config{APIKey: "  "}, nil)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	b, err := anthropic.New(anthropic.Config{APIKey: "k"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "anthropic", b.Name())
	assert.Equal(t, anthropic.DefaultModel, b.Model())
}

func TestGenerate_SendsMessagesRequest(t *testing.T) {
	t.Parallel()

	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			Model     string `json:"model"`
			MaxTokens int    `json:"max_tokens"`
			System    string `json:"system"`
			Messages  []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, anthropic.DefaultModel, body.Model)
		assert.Equal(t, 512, body.MaxTokens)
		assert.Equal(t, "be helpful", body.System)
		if assert.Len(t, body.Messages, 1) {
			assert.Equal(t, "user", body.Messages[0].Role)
			assert.Equal(t, "사과", body.Messages[0].Content)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"{\"korean\":\"사과\"}"}],"stop_reason":"end_turn"}`))
	})

	text, err := b.Generate(context.Background(), "be helpful", "사과")
	require.NoError(t, err)
	assert.Equal(t, `{"korean":"사과"}`, text)
}

func TestGenerate_SkipsNonTextBlocks(t *testing.T) {
	t.Parallel()

	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[{"type":"thinking","text":"hmm"},{"type":"text","text":"answer"}]}`))
	})

	text, err := b.Generate(context.Background(), "s", "u")
	require.NoError(t, err)
	assert.Equal(t, "answer", text)
}

func TestGenerate_NoTextBlockReturnsEmpty(t *testing.T) {
	t.Parallel()

	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[],"stop_reason":"max_tokens"}`))
	})

	text, err := b.Generate(context.Background(), "s", "u")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestGenerate_StatusClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status    int
		transient bool
	}{
		{http.StatusBadRequest, false},
		{http.StatusUnauthorized, false},
		{http.StatusNotFound, false},
		{http.StatusRequestTimeout, true},
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
		{529, true},
	}

	for _, tc := range tests {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			t.Parallel()

			b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(`{"type":"error","error":{"type":"some_error","message":"nope"}}`))
			})

			_, err := b.Generate(context.Background(), "s", "u")
			require.Error(t, err)
			assert.Equal(t, tc.transient, errors.Is(err, generation.ErrTransientFailure))

			var backendErr *generation.BackendError
			require.ErrorAs(t, err, &backendErr)
			assert.Equal(t, tc.status, backendErr.StatusCode)
			assert.Equal(t, "nope", backendErr.Message)
		})
	}
}

func TestGenerate_TransportErrorIsTransient(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	b, err := anthropic.New(anthropic.Config{APIKey: "k", BaseURL: url}, nil)
	require.NoError(t, err)

	_, err = b.Generate(context.Background(), "s", "u")
	assert.ErrorIs(t, err, generation.ErrTransientFailure)
}

func TestGenerate_CancelledContextIsNotTransient(t *testing.T) {
	t.Parallel()

	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"x"}]}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Generate(ctx, "s", "u")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, generation.ErrTransientFailure)
}
