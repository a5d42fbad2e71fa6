package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	announcementService "github.com/dkosarev/discord-announce-relay/internal/modules/announcement/service"
	"github.com/dkosarev/discord-announce-relay/internal/shared/config"
	apperrors "github.com/dkosarev/discord-announce-relay/internal/shared/errors"
	"github.com/dkosarev/discord-announce-relay/internal/transport/discord"
	sloghttp "github.com/samber/slog-http"
)

// Server handles HTTP requests for the announcements feed
type Server struct {
	cfg           *config.Config
	announcements *announcementService.Service
	logger        *slog.Logger
	httpServer    *http.Server
}

// New creates a new HTTP server
func New(cfg *config.Config, announcements *announcementService.Service) *Server {
	return &Server{
		cfg:           cfg,
		announcements: announcements,
		logger:        slog.Default(),
	}
}

// SetLogger sets the logger
func (s *Server) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	// Feed endpoints
	mux.HandleFunc("GET /api/announcements", s.handleAnnouncements)
	mux.HandleFunc("GET /api/channel", s.handleChannel)
	mux.HandleFunc("GET /rss", s.handleRSS)

	// Mirrored attachments
	mux.HandleFunc("GET /downloads/{name}", s.handleDownload)

	// Health check endpoint
	mux.HandleFunc("GET /health", s.handleHealth)

	// Root endpoint with instructions
	mux.HandleFunc("GET /", s.handleRoot)

	return mux
}

// Start starts the HTTP server
func (s *Server) Start() error {
	mux := s.routes()

	addr := fmt.Sprintf(":%s", s.cfg.HTTPPort)
	s.logger.Info("Announcements server starting", "addr", addr)

	// Use slog-http middleware with recovery
	handler := sloghttp.Recovery(mux)
	handler = sloghttp.New(s.logger)(handler)
	handler = corsMiddleware(s.cfg.AllowedOrigins, handler)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s.httpServer.ListenAndServe()
}

// Shutdown stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleAnnouncements(w http.ResponseWriter, r *http.Request) {
	announcements, err := s.announcements.FetchAnnouncements(r.Context())
	if err != nil {
		s.writeUpstreamError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(announcements)
}

func (s *Server) handleChannel(w http.ResponseWriter, r *http.Request) {
	channel, err := s.announcements.Channel(r.Context())
	if err != nil {
		s.writeUpstreamError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(channel)
}

// writeUpstreamError maps feed errors onto responses: missing
// configuration and unexpected failures become 500, upstream statuses
// are mirrored verbatim, undecodable upstream payloads become 502.
func (s *Server) writeUpstreamError(w http.ResponseWriter, err error) {
	var upstreamErr *discord.UpstreamError
	var decodeErr *discord.DecodeError

	switch {
	case errors.Is(err, apperrors.ErrMissingBotToken) || errors.Is(err, apperrors.ErrMissingChannelID):
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	case errors.As(err, &upstreamErr):
		writeJSON(w, upstreamErr.Status, map[string]any{
			"error":  "discord api error",
			"status": upstreamErr.Status,
			"body":   upstreamErr.Body,
		})
	case errors.As(err, &decodeErr):
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error": "invalid response from discord api",
			"body":  decodeErr.Body,
		})
	default:
		s.logger.Error("Request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// handleDownload serves mirrored attachments. Names are message-derived
// and never rewritten, so clients may cache aggressively.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		http.NotFound(w, r)
		return
	}

	f, err := os.Open(filepath.Join(s.cfg.MirrorPath, name))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=86400, immutable")
	w.Header().Set("ETag", fmt.Sprintf(`"%x-%x"`, info.ModTime().Unix(), info.Size()))
	http.ServeContent(w, r, name, info.ModTime(), f)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	html := `<!DOCTYPE html>
<html>
<head>
    <title>Discord Announcements Relay</title>
    <style>
        body { font-family: Arial, sans-serif; max-width: 800px; margin: 50px auto; padding: 20px; }
        h1 { color: #333; }
        .info { background: #f5f5f5; padding: 15px; border-radius: 5px; margin: 20px 0; }
        code { background: #e8e8e8; padding: 2px 6px; border-radius: 3px; }
    </style>
</head>
<body>
    <h1>Discord Announcements Relay</h1>
    <div class="info">
        <p>This service relays recent messages from a Discord channel as an announcements feed.</p>
        <p>JSON feed: <code>/api/announcements</code></p>
        <p>RSS feed: <code>/rss</code></p>
        <p>Channel info: <code>/api/channel</code></p>
    </div>
    <p><a href="/health">Health Check</a></p>
</body>
</html>`
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
