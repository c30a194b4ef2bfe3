// Package ai turns natural-language input like "remind me to wish Asha every
// monday at 8" into a structured reminder draft.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"

	"waremind/internal/models"
)

type Client struct {
	client *openai.Client
	model  string
}

func New(apiKey, baseURL, model string) *Client {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL

	return &Client{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

// Draft is the structured reminder suggestion extracted from user text. The
// frontend pre-fills the reminder form with it; nothing is persisted here.
type Draft struct {
	ContactName string           `json:"contact_name"`
	PhoneNumber string           `json:"phone_number"`
	Message     string           `json:"message"`
	Time        models.TimeOfDay `json:"time"`
	Frequency   models.Frequency `json:"frequency"`
	WeekDays    []string         `json:"week_days,omitempty"`
	MonthDay    int              `json:"month_day,omitempty"`
	Date        string           `json:"date,omitempty"` // YYYY-MM-DD, for once
	Confidence  float64          `json:"confidence"`
	RawResponse string           `json:"-"`
}

const systemPromptTemplate = `You convert a user's natural-language request into a WhatsApp reminder draft.

Current time: %s

Rules:
1. frequency is one of: daily, weekly, monthly, once.
2. week_days (tags: sun, mon, tue, wed, thu, fri, sat) only for weekly; month_day (1-31) only for monthly; date (YYYY-MM-DD) only for once.
3. Resolve relative dates ("tomorrow", "next monday") against the current time.
4. time is the 24h wall-clock firing time. Default to 09:00 when the user gives none.
5. message is the WhatsApp text to send; keep the user's wording.
6. confidence is your 0-1 estimate that the draft matches the request.`

func systemPrompt(now time.Time) string {
	return fmt.Sprintf(systemPromptTemplate, now.Format("2006-01-02 15:04 (Monday)"))
}

var draftSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"contact_name": {"type": "string"},
		"phone_number": {"type": "string"},
		"message": {"type": "string"},
		"time": {
			"type": "object",
			"properties": {
				"hour": {"type": "integer", "minimum": 0, "maximum": 23},
				"minute": {"type": "integer", "minimum": 0, "maximum": 59}
			},
			"required": ["hour", "minute"],
			"additionalProperties": false
		},
		"frequency": {"type": "string", "enum": ["daily", "weekly", "monthly", "once"]},
		"week_days": {"type": "array", "items": {"type": "string", "enum": ["sun", "mon", "tue", "wed", "thu", "fri", "sat"]}},
		"month_day": {"type": "integer", "minimum": 1, "maximum": 31},
		"date": {"type": "string"},
		"confidence": {"type": "number", "minimum": 0, "maximum": 1}
	},
	"required": ["message", "time", "frequency", "confidence"],
	"additionalProperties": false
}`)

// ParseDraft asks the model for a reminder draft matching the user's text.
func (c *Client) ParseDraft(ctx context.Context, userMessage string, now time.Time) (*Draft, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt(now),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userMessage,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "reminder_draft",
				Schema: draftSchema,
				Strict: true,
			},
		},
		Temperature: 0.1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call AI API: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from AI")
	}

	content := resp.Choices[0].Message.Content
	draft := &Draft{RawResponse: content}
	if err := json.Unmarshal([]byte(content), draft); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}
	return draft, nil
}
