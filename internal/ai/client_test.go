package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(baseURL string, cache ModelCache) *Client {
	return NewClient(baseURL, "llama3", 5*time.Second, 5, cache, zap.NewNop().Sugar())
}

func TestChatSendsSystemPromptAndTrimsHistory(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			json.NewEncoder(w).Encode(map[string]any{"models": []map[string]string{{"name": "tinyllama"}}})
		case "/api/chat":
			json.NewDecoder(r.Body).Decode(&got)
			json.NewEncoder(w).Encode(map[string]any{"message": map[string]string{"role": "assistant", "content": "hello there"}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	history := make([]Message, 10)
	for i := range history {
		history[i] = Message{Role: "user", Content: "turn"}
	}

	answer, err := newTestClient(srv.URL, nil).Chat(context.Background(), "how do I upload?", history)
	require.NoError(t, err)
	assert.Equal(t, "hello there", answer)

	assert.Equal(t, "tinyllama", got.Model)
	assert.False(t, got.Stream)
	// system prompt + 6 kept history turns + user message
	require.Len(t, got.Messages, 8)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user", got.Messages[7].Role)
	assert.Equal(t, "how do I upload?", got.Messages[7].Content)
}

func TestChatTruncatesLongMessage(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/chat" {
			json.NewDecoder(r.Body).Decode(&got)
		}
		json.NewEncoder(w).Encode(map[string]any{"message": map[string]string{"content": "ok"}})
	}))
	defer srv.Close()

	long := strings.Repeat("x", 5000)
	_, err := newTestClient(srv.URL, nil).Chat(context.Background(), long, nil)
	require.NoError(t, err)
	last := got.Messages[len(got.Messages)-1]
	assert.Len(t, last.Content, maxMessageLen)
}

func TestModelDiscoveryFallsBackToDefault(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			w.WriteHeader(http.StatusInternalServerError)
		case "/api/generate":
			json.NewDecoder(r.Body).Decode(&got)
			json.NewEncoder(w).Encode(map[string]string{"response": "a story"})
		}
	}))
	defer srv.Close()

	story, err := newTestClient(srv.URL, nil).GenerateStory(context.Background(), "Tree Drive", "200 saplings")
	require.NoError(t, err)
	assert.Equal(t, "a story", story)
	assert.Equal(t, "llama3", got.Model)
	assert.Contains(t, got.Prompt, `"Tree Drive"`)
	assert.Contains(t, got.Prompt, "200 saplings")
}

func TestModelDiscoveryEmptyListUsesDefault(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			json.NewEncoder(w).Encode(map[string]any{"models": []any{}})
		case "/api/chat":
			json.NewDecoder(r.Body).Decode(&got)
			json.NewEncoder(w).Encode(map[string]any{"message": map[string]string{"content": "ok"}})
		}
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, nil).Chat(context.Background(), "hi", nil)
	require.NoError(t, err)
	assert.Equal(t, "llama3", got.Model)
}

type memCache struct{ name string }

func (c *memCache) Get(context.Context) (string, bool) { return c.name, c.name != "" }
func (c *memCache) Set(_ context.Context, name string) { c.name = name }

func TestModelCacheSkipsDiscovery(t *testing.T) {
	tagsCalls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			tagsCalls++
			json.NewEncoder(w).Encode(map[string]any{"models": []map[string]string{{"name": "tinyllama"}}})
		case "/api/chat":
			json.NewEncoder(w).Encode(map[string]any{"message": map[string]string{"content": "ok"}})
		}
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, &memCache{})
	_, err := c.Chat(context.Background(), "one", nil)
	require.NoError(t, err)
	_, err = c.Chat(context.Background(), "two", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, tagsCalls)
}

func TestUnreachableGatewayReturnsError(t *testing.T) {
	// nothing listens on port 1
	c := newTestClient("http://127.0.0.1:1", nil)

	_, err := c.Chat(context.Background(), "hi", nil)
	assert.Error(t, err)

	_, err = c.GenerateStory(context.Background(), "t", "c")
	assert.Error(t, err)
}

func TestUpstreamErrorStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags" {
			json.NewEncoder(w).Encode(map[string]any{"models": []map[string]string{{"name": "tinyllama"}}})
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, nil).Chat(context.Background(), "hi", nil)
	assert.Error(t, err)
}
