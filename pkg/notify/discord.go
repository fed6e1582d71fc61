package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Discord messages cap at 2000 characters; leave room for code fences.
const discordMessageLimit = 1900

// Discord sends digests via Discord webhook.
type Discord struct {
	client     *http.Client
	webhookURL string
}

// NewDiscord creates a new Discord notifier.
func NewDiscord(webhookURL string) *Discord {
	return &Discord{
		client:     &http.Client{Timeout: 10 * time.Second},
		webhookURL: webhookURL,
	}
}

func (dc *Discord) Name() string { return "discord" }

// Send posts the summary as an embed, then the matrix tables as fenced
// messages chunked to the platform limit.
func (dc *Discord) Send(ctx context.Context, d *Digest) error {
	embed := map[string]any{
		"title":       d.Title(),
		"description": d.Summary,
		"color":       0x7B68EE,
		"timestamp":   d.Date.UTC().Format(time.RFC3339),
	}
	if err := dc.post(ctx, map[string]any{
		"embeds": []map[string]any{embed},
	}); err != nil {
		return err
	}

	for _, table := range d.Tables {
		for _, part := range chunk(table, discordMessageLimit) {
			if err := dc.post(ctx, map[string]any{
				"content": "```\n" + part + "\n```",
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (dc *Discord) post(ctx context.Context, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, dc.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := dc.client.Do(req)
	if err != nil {
		return fmt.Errorf("send discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("discord webhook status %d", resp.StatusCode)
	}
	return nil
}
