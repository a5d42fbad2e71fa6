package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dkosarev/discord-announce-relay/internal/modules/announcement/domain"
	"github.com/gorilla/feeds"
)

// handleRSS renders the same announcement list as RSS 2.0 for feed
// readers. Local media paths are made absolute against the request host.
func (s *Server) handleRSS(w http.ResponseWriter, r *http.Request) {
	announcements, err := s.announcements.FetchAnnouncements(r.Context())
	if err != nil {
		s.writeUpstreamError(w, err)
		return
	}

	baseURL := fmt.Sprintf("%s://%s", getScheme(r), r.Host)

	feed := &feeds.Feed{
		Title:       "Announcements",
		Link:        &feeds.Link{Href: baseURL + "/rss"},
		Description: "Recent announcements relayed from Discord",
		Created:     time.Now(),
	}

	for _, a := range announcements {
		feed.Items = append(feed.Items, announcementToFeedItem(a, baseURL))
	}

	rss, err := feed.ToRss()
	if err != nil {
		s.logger.Error("Error converting feed to RSS", "error", err)
		http.Error(w, "Failed to generate RSS", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300") // Cache for 5 minutes
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(rss))
}

func announcementToFeedItem(a domain.Announcement, baseURL string) *feeds.Item {
	link := baseURL + "/api/announcements"
	if len(a.Media) > 0 {
		link = absoluteMediaURL(a.Media[0].URL, baseURL)
	}

	description := a.Content
	if description == "" {
		description = "Media announcement"
	}

	item := &feeds.Item{
		Title:       truncate(description, 100),
		Link:        &feeds.Link{Href: link},
		Description: description,
		Id:          a.ID,
	}

	if created, err := time.Parse(time.RFC3339, a.Timestamp); err == nil {
		item.Created = created
	}

	return item
}

func absoluteMediaURL(url, baseURL string) string {
	if strings.HasPrefix(url, "/") {
		return baseURL + url
	}
	return url
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
