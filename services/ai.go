// services/ai.go - Pass-through client for the external LLM used by
// route narration and chat. No orchestration, no retries.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
)

const travelSystemPrompt = "You are a helpful travel assistant specialized in route planning and travel recommendations. " +
	"Provide practical advice about routes, points of interest, and travel optimization."

// AIClient talks to an OpenAI-compatible chat completions endpoint.
type AIClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	sessionID  string
}

// NewAIClient builds a client from the environment. A missing API key is
// allowed; calls then return a canned fallback so the rest of the API
// keeps working.
func NewAIClient() *AIClient {
	baseURL := os.Getenv("LLM_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := os.Getenv("LLM_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &AIClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:   baseURL,
		apiKey:    os.Getenv("LLM_API_KEY"),
		model:     model,
		sessionID: uuid.New().String(),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	User     string        `json:"user,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// SendMessage sends one user prompt under the travel system prompt and
// returns the assistant reply.
func (c *AIClient) SendMessage(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "AI narration is not configured. Set LLM_API_KEY to enable route explanations and chat.", nil
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: travelSystemPrompt},
			{Role: "user", Content: prompt},
		},
		User: c.sessionID,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding LLM response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("LLM error: %s", parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK || len(parsed.Choices) == 0 {
		return "", fmt.Errorf("LLM returned status %d with no choices", resp.StatusCode)
	}

	return parsed.Choices[0].Message.Content, nil
}

// SessionID identifies this client instance in LLM requests.
func (c *AIClient) SessionID() string {
	return c.sessionID
}

var aiClient *AIClient

// InitAI sets up the shared LLM client.
func InitAI() {
	aiClient = NewAIClient()
	if aiClient.apiKey == "" {
		log.Println("Warning: LLM_API_KEY not set, AI responses will use fallback text")
	}
}

// GetAIClient returns the shared LLM client, building one on first use.
func GetAIClient() *AIClient {
	if aiClient == nil {
		InitAI()
	}
	return aiClient
}
