package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const slackMessageLimit = 4000

// Slack posts digests to a channel via the Slack Web API
// (chat.postMessage with a bot token).
type Slack struct {
	client  *http.Client
	apiURL  string
	token   string
	channel string
}

// NewSlack creates a Slack notifier for the given bot token and
// channel ID.
func NewSlack(token, channel string) *Slack {
	return &Slack{
		client:  &http.Client{Timeout: 10 * time.Second},
		apiURL:  "https://slack.com/api/chat.postMessage",
		token:   token,
		channel: channel,
	}
}

func (s *Slack) Name() string { return "slack" }

// Send posts the intro message with the relationship summary, then each
// matrix table as fenced code blocks, chunked to the message limit.
func (s *Slack) Send(ctx context.Context, d *Digest) error {
	intro := fmt.Sprintf(">*%s*\n%s\n", d.Title(), d.Summary)
	if err := s.postMessage(ctx, intro); err != nil {
		return err
	}

	for _, table := range d.Tables {
		for _, part := range chunk(table, slackMessageLimit) {
			if err := s.postMessage(ctx, "\n```\n"+part+"\n```"); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Slack) postMessage(ctx context.Context, text string) error {
	payload := map[string]any{
		"channel": s.channel,
		"text":    text,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post slack message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack API status %d", resp.StatusCode)
	}

	// The Web API reports failures in the body with HTTP 200.
	var result struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode slack response: %w", err)
	}
	if !result.OK {
		return fmt.Errorf("slack API error: %s", result.Error)
	}
	return nil
}
