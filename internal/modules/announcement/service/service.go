package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dkosarev/discord-announce-relay/internal/modules/announcement/domain"
	mirrorService "github.com/dkosarev/discord-announce-relay/internal/modules/mirror/service"
	"github.com/dkosarev/discord-announce-relay/internal/shared/config"
	"github.com/dkosarev/discord-announce-relay/internal/shared/errors"
	"github.com/dkosarev/discord-announce-relay/internal/transport/discord"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

const (
	// fetchLimit is how many recent messages are requested upstream.
	fetchLimit = 20
	// maxAnnouncements caps the final feed size.
	maxAnnouncements = 8
	// maxConcurrentMessages bounds the per-request media fan-out.
	maxConcurrentMessages = 4
)

// Service turns recent channel messages into the announcements feed.
type Service struct {
	cfg     *config.Config
	discord *discord.Client
	mirror  *mirrorService.Service
	logger  *slog.Logger

	// configErr is decided once at construction; every request that
	// needs the upstream gets the same answer.
	configErr error
}

// New creates an announcement service.
func New(cfg *config.Config, discordClient *discord.Client, mirror *mirrorService.Service) *Service {
	return &Service{
		cfg:       cfg,
		discord:   discordClient,
		mirror:    mirror,
		logger:    slog.Default(),
		configErr: validateConfig(cfg),
	}
}

// SetLogger sets the logger
func (s *Service) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

func validateConfig(cfg *config.Config) error {
	if cfg.DiscordBotToken == "" {
		return errors.ErrMissingBotToken
	}
	if cfg.DiscordChannelID == "" {
		return errors.ErrMissingChannelID
	}
	return nil
}

// FetchAnnouncements pulls the latest channel messages and reshapes them
// into at most maxAnnouncements announcements, in upstream order.
func (s *Service) FetchAnnouncements(ctx context.Context) ([]domain.Announcement, error) {
	if s.configErr != nil {
		return nil, s.configErr
	}

	messages, err := s.discord.Messages(ctx, s.cfg.DiscordChannelID, fetchLimit)
	if err != nil {
		return nil, err
	}

	kept := lo.Filter(messages, func(msg discord.Message, _ int) bool {
		return msg.Type == discord.MessageTypeDefault || len(msg.Embeds) > 0 || len(msg.Attachments) > 0
	})

	// Fan out per message; results land by index so upstream order is
	// preserved regardless of completion order. Mirror failures never
	// fail the group, so a slow attachment only delays its own slot.
	results := make([]domain.Announcement, len(kept))
	var g errgroup.Group
	g.SetLimit(maxConcurrentMessages)
	for i, msg := range kept {
		g.Go(func() error {
			results[i] = s.buildAnnouncement(ctx, msg)
			return nil
		})
	}
	g.Wait()

	announcements := lo.Filter(results, func(a domain.Announcement, _ int) bool {
		return a.Content != "" || len(a.Media) > 0
	})

	if len(announcements) > maxAnnouncements {
		announcements = announcements[:maxAnnouncements]
	}

	return announcements, nil
}

// Channel fetches the reduced channel projection for diagnostics.
func (s *Service) Channel(ctx context.Context) (*discord.Channel, error) {
	if s.configErr != nil {
		return nil, s.configErr
	}
	return s.discord.Channel(ctx, s.cfg.DiscordChannelID)
}

func (s *Service) buildAnnouncement(ctx context.Context, msg discord.Message) domain.Announcement {
	content := strings.TrimSpace(msg.Content)
	if content == "" && len(msg.Embeds) > 0 {
		content = embedFallbackText(msg.Embeds[0])
	}
	content = strings.TrimSpace(Sanitize(content))

	return domain.Announcement{
		ID:        msg.ID,
		Content:   content,
		Timestamp: msg.Timestamp,
		Media:     s.extractMedia(ctx, msg),
	}
}

func embedFallbackText(embed discord.Embed) string {
	if embed.Title != "" {
		return embed.Title + "\n" + embed.Description
	}
	return embed.Description
}

// extractMedia builds the media list for one message: attachments first
// (mirrored, falling back to the remote URL), then embeds (always
// remote). Deduplicated by resulting URL, first occurrence wins.
func (s *Service) extractMedia(ctx context.Context, msg discord.Message) []domain.MediaItem {
	items := make([]domain.MediaItem, 0, len(msg.Attachments)+len(msg.Embeds))
	seen := make(map[string]bool)

	add := func(item domain.MediaItem) {
		if item.URL == "" || seen[item.URL] {
			return
		}
		seen[item.URL] = true
		items = append(items, item)
	}

	for _, att := range msg.Attachments {
		item := classifyAttachment(att)
		item.URL = att.URL

		local, err := s.mirror.Mirror(ctx, att.URL, msg.ID, att.Filename)
		if err != nil {
			s.logger.Warn("Attachment mirror failed, keeping remote URL",
				"message_id", msg.ID, "filename", att.Filename, "error", err)
		} else {
			item.URL = local
		}

		add(item)
	}

	for _, embed := range msg.Embeds {
		switch {
		case embed.Video != nil && embed.Video.URL != "":
			// A video embed's static image is just its thumbnail;
			// adding both would duplicate the preview.
			add(domain.MediaItem{URL: embed.Video.URL, Type: domain.MediaTypeVideo})
		case embed.Image != nil && embed.Image.URL != "":
			add(domain.MediaItem{URL: embed.Image.URL, Type: classifyEmbedImage(embed.Image.URL)})
		case embed.Thumbnail != nil && embed.Thumbnail.URL != "":
			add(domain.MediaItem{URL: embed.Thumbnail.URL, Type: classifyEmbedImage(embed.Thumbnail.URL)})
		}
	}

	return items
}
