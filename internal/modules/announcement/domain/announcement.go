package domain

// Announcement is the client-facing representation of one qualifying
// channel message. Built fresh on every feed request, never persisted.
type Announcement struct {
	ID        string      `json:"id"`
	Content   string      `json:"content"`
	Timestamp string      `json:"timestamp"`
	Media     []MediaItem `json:"media"`
}

// MediaItem represents one piece of media attached to an announcement.
// URL is either a local /downloads/ path (mirrored attachment) or the
// original remote URL (embeds, or mirror fallback).
type MediaItem struct {
	URL         string    `json:"url"`
	Type        MediaType `json:"type"`
	Name        string    `json:"name,omitempty"`
	ContentType string    `json:"contentType,omitempty"`
}
