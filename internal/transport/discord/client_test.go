package discord

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMessages(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bot test-token" {
			t.Errorf("Authorization header = %q, want %q", got, "Bot test-token")
		}
		if got := r.URL.Path; got != "/channels/123/messages" {
			t.Errorf("path = %q, want %q", got, "/channels/123/messages")
		}
		if got := r.URL.Query().Get("limit"); got != "20" {
			t.Errorf("limit = %q, want %q", got, "20")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":"1","type":0,"content":"hello","timestamp":"2024-05-01T10:00:00.000000+00:00","embeds":[],"attachments":[]},
			{"id":"2","type":0,"content":"","attachments":[{"id":"9","filename":"a.png","content_type":"image/png","url":"https://cdn.example/a.png","size":10}]}
		]`))
	}))
	defer ts.Close()

	c := New(ts.URL, "test-token", 5*time.Second)
	messages, err := c.Messages(context.Background(), "123", 20)
	if err != nil {
		t.Fatalf("Messages() error = %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("len(messages) = %d, want 2", len(messages))
	}
	if messages[0].Content != "hello" {
		t.Errorf("messages[0].Content = %q, want %q", messages[0].Content, "hello")
	}
	if len(messages[1].Attachments) != 1 || messages[1].Attachments[0].Filename != "a.png" {
		t.Errorf("messages[1].Attachments = %+v, want one a.png", messages[1].Attachments)
	}
}

func TestMessagesUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"Missing Access","code":50001}`))
	}))
	defer ts.Close()

	c := New(ts.URL, "test-token", 5*time.Second)
	_, err := c.Messages(context.Background(), "123", 20)

	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("Messages() error = %v, want *UpstreamError", err)
	}
	if upstreamErr.Status != http.StatusForbidden {
		t.Errorf("Status = %d, want %d", upstreamErr.Status, http.StatusForbidden)
	}
	if upstreamErr.Body == "" {
		t.Error("Body is empty, want upstream body forwarded")
	}
}

func TestMessagesMalformedPayload(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer ts.Close()

	c := New(ts.URL, "test-token", 5*time.Second)
	_, err := c.Messages(context.Background(), "123", 20)

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("Messages() error = %v, want *DecodeError", err)
	}
	if decodeErr.Body != "<html>not json</html>" {
		t.Errorf("Body = %q, want raw body kept", decodeErr.Body)
	}
}

func TestChannel(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Path; got != "/channels/123" {
			t.Errorf("path = %q, want %q", got, "/channels/123")
		}
		w.Write([]byte(`{"id":"123","name":"announcements","type":0,"guild_id":"777","last_message_id":"999","extra_field":"ignored"}`))
	}))
	defer ts.Close()

	c := New(ts.URL, "test-token", 5*time.Second)
	channel, err := c.Channel(context.Background(), "123")
	if err != nil {
		t.Fatalf("Channel() error = %v", err)
	}
	if channel.Name != "announcements" || channel.GuildID != "777" || channel.LastMessageID != "999" {
		t.Errorf("Channel() = %+v, want reduced projection populated", channel)
	}
}
