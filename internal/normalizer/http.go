package normalizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to the normalizer sidecar over HTTP+JSON. Each capability maps
// to one endpoint; requests and replies are tiny so a shared http.Client with
// a global timeout is enough.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient builds a Client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type textPayload struct {
	Text string `json:"text"`
}

type sentencesPayload struct {
	Sentences []string `json:"sentences"`
}

// CorrectSpelling corrects a single word via POST /spelling.
func (c *Client) CorrectSpelling(ctx context.Context, word string) (string, error) {
	var out textPayload
	if err := c.post(ctx, "/spelling", textPayload{Text: word}, &out); err != nil {
		return "", err
	}
	return out.Text, nil
}

// CorrectSpacing corrects whitespace via POST /spacing.
func (c *Client) CorrectSpacing(ctx context.Context, text string) (string, error) {
	var out textPayload
	if err := c.post(ctx, "/spacing", textPayload{Text: text}, &out); err != nil {
		return "", err
	}
	return out.Text, nil
}

// SplitSentences segments the text via POST /sentences.
func (c *Client) SplitSentences(ctx context.Context, text string) ([]string, error) {
	var out sentencesPayload
	if err := c.post(ctx, "/sentences", textPayload{Text: text}, &out); err != nil {
		return nil, err
	}
	return out.Sentences, nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("normalizer %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("normalizer %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(data)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode normalizer %s reply: %w", path, err)
	}
	return nil
}
