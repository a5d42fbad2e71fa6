package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/samber/oops"
)

// Message type 0 is a regular user message.
const MessageTypeDefault = 0

// Message is the upstream shape of one channel message. Optional fields
// simply stay zero when absent from the payload.
type Message struct {
	ID          string       `json:"id"`
	Type        int          `json:"type"`
	Content     string       `json:"content"`
	Timestamp   string       `json:"timestamp"`
	Embeds      []Embed      `json:"embeds"`
	Attachments []Attachment `json:"attachments"`
}

// Embed is rich-preview metadata attached by the platform, never an
// uploaded file.
type Embed struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Image       *EmbedMedia `json:"image"`
	Thumbnail   *EmbedMedia `json:"thumbnail"`
	Video       *EmbedMedia `json:"video"`
}

// EmbedMedia holds the URL of an embed's image, thumbnail or video.
type EmbedMedia struct {
	URL string `json:"url"`
}

// Attachment is a file uploaded directly to a message.
type Attachment struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	URL         string `json:"url"`
	Size        int64  `json:"size"`
}

// Channel is the reduced projection of the upstream channel object
// exposed by the diagnostic endpoint.
type Channel struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Type          int    `json:"type"`
	GuildID       string `json:"guild_id"`
	LastMessageID string `json:"last_message_id"`
}

// UpstreamError carries a non-success status and body from the Discord
// API so the HTTP layer can mirror them verbatim.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("discord api returned status %d", e.Status)
}

// DecodeError means the upstream answered 2xx but the body was not the
// JSON we expected. The raw body is kept for diagnostics.
type DecodeError struct {
	Body string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("discord api returned malformed payload: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Client talks to the Discord REST API with a bot token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a Discord API client. The timeout applies to every call.
func New(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Messages fetches up to limit recent messages from a channel, most
// recent first. No pagination.
func (c *Client) Messages(ctx context.Context, channelID string, limit int) ([]Message, error) {
	endpoint := fmt.Sprintf("%s/channels/%s/messages?limit=%d", c.baseURL, url.PathEscape(channelID), limit)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var messages []Message
	if err := json.Unmarshal(body, &messages); err != nil {
		return nil, &DecodeError{Body: string(body), Err: err}
	}

	return messages, nil
}

// Channel fetches the channel object for the diagnostic endpoint.
func (c *Client) Channel(ctx context.Context, channelID string) (*Channel, error) {
	endpoint := fmt.Sprintf("%s/channels/%s", c.baseURL, url.PathEscape(channelID))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var channel Channel
	if err := json.Unmarshal(body, &channel); err != nil {
		return nil, &DecodeError{Body: string(body), Err: err}
	}

	return &channel, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, oops.With("endpoint", endpoint).Wrap(err)
	}
	req.Header.Set("Authorization", "Bot "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, oops.With("endpoint", endpoint, "context", "discord api request failed").Wrap(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, oops.With("endpoint", endpoint, "context", "reading discord api response").Wrap(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}
