// Package ai talks to the locally-run Ollama server behind the site's chat
// and story features. Callers treat every error here as "gateway offline"
// and substitute the fixed fallback text; nothing in this package retries.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const systemPrompt = `You are the helpful AI assistant for the NSS IIIT–Naya Raipur website.
Answer concisely and accurately about: slideshow uploads (category 'gallery'), header logo uploads (category 'logo'), photo gallery categories (education, health, environment, community), admin login/upload/delete flow, events/initiatives/about/contact sections.
If the user asks for steps, give short, numbered steps. If you don't know, say so.`

const storyPrompt = `Write a clean, concise, and engaging news story (approx 150-200 words) about the following NSS initiative: "%s".
        Context: %s.
        Focus on the impact, student involvement, and community benefit. Write it in a journalistic tone suitable for a college newspaper. Do not include any preamble, just the story.`

// Fallback texts returned to users whenever the gateway misbehaves.
const (
	FallbackAnswer = "The AI Editor is currently offline. Please check the 'Initiatives' section for the latest updates."
	FallbackStory  = "Our editorial team is currently compiling the full report for this story. Please check back later for the detailed article."
	EmptyAnswer    = "Sorry, I couldn't generate a response."
)

const maxMessageLen = 2000
const maxHistoryTurns = 6

// Message is one chat turn in Ollama's wire format.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ModelCache remembers the discovered model name between requests. It is
// optional; a nil cache means discovery runs on every request.
type ModelCache interface {
	Get(ctx context.Context) (string, bool)
	Set(ctx context.Context, name string)
}

type Client struct {
	baseURL      string
	defaultModel string
	http         *http.Client
	cb           *gobreaker.CircuitBreaker
	cache        ModelCache
	log          *zap.SugaredLogger
}

func NewClient(baseURL, defaultModel string, timeout time.Duration, maxFailures uint32, cache ModelCache, log *zap.SugaredLogger) *Client {
	st := gobreaker.Settings{
		Name:        "ollama",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Infow("circuit breaker state", "name", name, "from", from.String(), "to", to.String())
		},
	}
	return &Client{
		baseURL:      baseURL,
		defaultModel: defaultModel,
		http:         &http.Client{Timeout: timeout},
		cb:           gobreaker.NewCircuitBreaker(st),
		cache:        cache,
		log:          log,
	}
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type chatResponse struct {
	Message Message `json:"message"`
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Chat sends the site system prompt, the trailing history and the user
// message, and returns the model's reply.
func (c *Client) Chat(ctx context.Context, message string, history []Message) (string, error) {
	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}
	if runes := []rune(message); len(runes) > maxMessageLen {
		message = string(runes[:maxMessageLen])
	}

	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: "system", Content: systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, Message{Role: "user", Content: message})

	req := chatRequest{Model: c.resolveModel(ctx), Messages: messages, Stream: false}
	var resp chatResponse
	if err := c.postJSON(ctx, "/api/chat", req, &resp); err != nil {
		return "", err
	}
	return resp.Message.Content, nil
}

// GenerateStory asks for a short news story about an initiative. background
// is free text interpolated into the prompt.
func (c *Client) GenerateStory(ctx context.Context, topic, background string) (string, error) {
	req := generateRequest{
		Model:  c.resolveModel(ctx),
		Prompt: fmt.Sprintf(storyPrompt, topic, background),
		Stream: false,
	}
	var resp generateResponse
	if err := c.postJSON(ctx, "/api/generate", req, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}

// resolveModel asks the gateway which models are installed and picks the
// first; any failure falls back to the configured default. A cache hit
// skips the lookup entirely.
func (c *Client) resolveModel(ctx context.Context) string {
	if c.cache != nil {
		if name, ok := c.cache.Get(ctx); ok {
			return name
		}
	}
	var tags tagsResponse
	if err := c.getJSON(ctx, "/api/tags", &tags); err != nil || len(tags.Models) == 0 || tags.Models[0].Name == "" {
		c.log.Debugw("model discovery failed, using default", "model", c.defaultModel)
		return c.defaultModel
	}
	name := tags.Models[0].Name
	if c.cache != nil {
		c.cache.Set(ctx, name)
	}
	return name
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// do executes the request through the circuit breaker; a non-2xx status
// counts as a breaker failure like a transport error.
func (c *Client) do(req *http.Request, out any) error {
	res, err := c.cb.Execute(func() (any, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			io.Copy(io.Discard, resp.Body)
			return nil, fmt.Errorf("ollama status %d", resp.StatusCode)
		}
		var payload json.RawMessage
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, err
		}
		return payload, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(res.(json.RawMessage), out)
}
