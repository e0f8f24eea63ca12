// Package notes is a thin client for the note storage service, used only to
// pick one reminder-worthy note for a user at delivery time.
package notes

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

type ReminderContent struct {
	NoteID string `json:"id"`
	Text   string `json:"text"`
	Source string `json:"source,omitempty"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// PickOne fetches one random note for the user. A user without notes is not
// an error: the result is simply nil.
func (c *Client) PickOne(ctx context.Context, userID string) (*ReminderContent, error) {
	url := fmt.Sprintf("%s/internal/users/%s/notes/random", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build notes request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("notes service request failed",
			"user_id", userID,
			"error", err,
		)

		return nil, fmt.Errorf("notes service request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var content ReminderContent
		if err := json.NewDecoder(resp.Body).Decode(&content); err != nil {
			return nil, fmt.Errorf("failed to decode notes response: %w", err)
		}

		return &content, nil
	case http.StatusNotFound, http.StatusNoContent:
		slog.Debug("no notes available for user",
			"user_id", userID,
		)

		return nil, nil //nolint:nilnil
	default:
		return nil, fmt.Errorf("notes service returned status %d", resp.StatusCode)
	}
}
