package gemini

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Client is the Gemini generateContent API client.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
}

// NewClient creates a new Gemini API client.
func NewClient(apiKey, baseURL, model string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ---- Gemini Request/Response Types (internal, not exposed to consumers) ----

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// ---- Client Methods ----

// GenerateReviewSummary produces a short review combining the plot context with
// the user's own comments. A single best-effort call, no retries.
func (c *Client) GenerateReviewSummary(title, overview, userComments string, userRating *float64) (string, error) {
	ratingText := "watched"
	if userRating != nil {
		ratingText = fmt.Sprintf("rated %.1f/10", *userRating)
	}

	prompt := fmt.Sprintf(`You are a movie review assistant. Based on the following information, generate a SHORT, engaging review summary (2-3 sentences maximum) that captures the user's perspective.

Movie: %s
Plot: %s
User's thoughts: %s
User %s

Generate a natural, conversational review summary that combines the plot context with the user's personal opinion. Keep it concise and engaging.`,
		title, overview, userComments, ratingText)

	payload := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     0.7,
			MaxOutputTokens: 150,
			TopP:            0.8,
			TopK:            40,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode Gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	resp, err := c.http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("Gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(resp.Body)
		slog.Error("Gemini API error", "status", resp.StatusCode, "body", string(errBody))
		return "", fmt.Errorf("Gemini returned status %d", resp.StatusCode)
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode Gemini response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("Gemini returned no candidates")
	}

	text := strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", fmt.Errorf("Gemini returned empty text")
	}

	slog.Debug("generated review summary", "chars", len(text))
	return text, nil
}
