// Package agent talks to an OpenAI-compatible chat-completions API on
// behalf of the support assistant. The model is prompted to answer as a
// strict JSON object so the reply can be parsed into services.AgentReply.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hervital/hervital/internal/services"
)

const systemPrompt = `You are a compassionate mental health support assistant for HerVital, an app serving rural communities.
Provide supportive, empathetic responses while being mindful of cultural sensitivity.
If the user expresses severe distress, suicidal thoughts, or immediate danger, respond with concern and suggest they seek immediate professional help or emergency services.
Keep responses concise but caring. Focus on self-care tips, coping strategies, and emotional support.
If appropriate, suggest booking an appointment or trying meditation features within the app.
Respond in JSON format with: { "response": "your message", "sentiment": "positive/negative/neutral", "escalationNeeded": true/false, "suggestedActions": ["action1", "action2"] }`

const defaultModel = "gpt-4o"

type Client struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
}

// NewClient targets api.openai.com unless baseURL overrides it (any
// chat-completions-compatible endpoint works).
func NewClient(apiKey, baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if model == "" {
		model = defaultModel
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Reply sends one user message and parses the model's JSON answer.
func (c *Client) Reply(ctx context.Context, message string) (*services.AgentReply, error) {
	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: message},
		},
	}
	req.ResponseFormat.Type = "json_object"

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("chat completion request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("chat completion status %d: %s", resp.StatusCode, string(b))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode chat completion: %w", err)
	}
	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	var reply services.AgentReply
	if err := json.Unmarshal([]byte(out.Choices[0].Message.Content), &reply); err != nil {
		return nil, fmt.Errorf("parse assistant reply: %w", err)
	}
	return &reply, nil
}

var _ services.AgentClient = (*Client)(nil)
