package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/SuperiorKe/sms-africas-talking/app/config"
	"github.com/SuperiorKe/sms-africas-talking/app/utils/logging"

	"go.uber.org/zap"
)

// GeminiClient wraps a single generateContent call. One call per turn,
// no retry; the SMS gateway would retry the whole webhook anyway.
type GeminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	persona    Persona
	httpClient *http.Client
}

func NewGeminiClient(cfg config.Config) *GeminiClient {
	return &GeminiClient{
		apiKey:  cfg.GeminiAPIKey,
		model:   cfg.GeminiModel,
		baseURL: cfg.GeminiBaseURL,
		persona: LoadPersona(cfg.PersonaFile),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *GeminiClient) Ready() bool {
	return c.apiKey != ""
}

func (c *GeminiClient) Persona() Persona {
	return c.persona
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type safetyRating struct {
	Category    string `json:"category"`
	Probability string `json:"probability"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason   string         `json:"blockReason"`
		SafetyRatings []safetyRating `json:"safetyRatings"`
	} `json:"promptFeedback"`
}

// Reply returns the tutor's answer for one turn. It never returns an
// error: provider failures, empty candidates and safety blocks all map
// to the persona's canned replies so the caller always has something
// deliverable.
func (c *GeminiClient) Reply(ctx context.Context, message, transcript string) string {
	defer logging.LogDuration(ctx, "gemini_reply")()

	if !c.Ready() {
		logging.AppLogger.Warn("gemini not configured, sending static reply")
		return c.persona.Unavailable
	}

	resp, err := c.generate(ctx, buildPrompt(c.persona, message, transcript))
	if err != nil {
		logging.ErrorLogger.Error("gemini request failed", zap.Error(err))
		return c.persona.Fallback
	}

	if len(resp.Candidates) > 0 && len(resp.Candidates[0].Content.Parts) > 0 {
		return capReply(resp.Candidates[0].Content.Parts[0].Text)
	}

	logging.AppLogger.Warn("gemini response had no candidates")
	if resp.blockedBySafety() {
		return c.persona.Refusal
	}
	return c.persona.Unclear
}

func (c *GeminiClient) generate(ctx context.Context, prompt string) (*generateResponse, error) {
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("gemini request failed: %s - %s", resp.Status, string(b))
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode gemini response: %w", err)
	}
	return &parsed, nil
}

// blockedBySafety reports whether the prompt feedback carries a safety
// rating above LOW probability.
func (r *generateResponse) blockedBySafety() bool {
	if r.PromptFeedback == nil {
		return false
	}
	if r.PromptFeedback.BlockReason != "" {
		return true
	}
	for _, rating := range r.PromptFeedback.SafetyRatings {
		if rating.Probability != "NEGLIGIBLE" && rating.Probability != "LOW" {
			return true
		}
	}
	return false
}
