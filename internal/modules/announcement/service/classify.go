package service

import (
	"strings"

	"github.com/dkosarev/discord-announce-relay/internal/modules/announcement/domain"
	"github.com/dkosarev/discord-announce-relay/internal/transport/discord"
)

var imageExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"webp": true,
}

var videoExtensions = map[string]bool{
	"mp4":  true,
	"webm": true,
	"mov":  true,
}

// classifyAttachment decides the media type from the content-type header
// when present, otherwise from the extension of the original URL. Gif
// always beats the generic image type. Anything unrecognized becomes a
// plain file and keeps its original name and content type.
func classifyAttachment(att discord.Attachment) domain.MediaItem {
	ct := strings.ToLower(att.ContentType)

	if ct != "" {
		switch {
		case ct == "image/gif":
			return domain.MediaItem{Type: domain.MediaTypeGif}
		case strings.HasPrefix(ct, "image/"):
			return domain.MediaItem{Type: domain.MediaTypeImage}
		case strings.HasPrefix(ct, "video/"):
			return domain.MediaItem{Type: domain.MediaTypeVideo}
		default:
			return domain.MediaItem{Type: domain.MediaTypeFile, Name: att.Filename, ContentType: att.ContentType}
		}
	}

	switch ext := urlExtension(att.URL); {
	case ext == "gif":
		return domain.MediaItem{Type: domain.MediaTypeGif}
	case imageExtensions[ext]:
		return domain.MediaItem{Type: domain.MediaTypeImage}
	case videoExtensions[ext]:
		return domain.MediaItem{Type: domain.MediaTypeVideo}
	default:
		return domain.MediaItem{Type: domain.MediaTypeFile, Name: att.Filename, ContentType: att.ContentType}
	}
}

// classifyEmbedImage distinguishes animated previews from static ones.
func classifyEmbedImage(url string) domain.MediaType {
	if urlExtension(url) == "gif" {
		return domain.MediaTypeGif
	}
	return domain.MediaTypeImage
}

func urlExtension(rawURL string) string {
	path := strings.SplitN(rawURL, "?", 2)[0]
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		path = path[idx+1:]
	}
	if idx := strings.LastIndex(path, "."); idx >= 0 {
		return strings.ToLower(path[idx+1:])
	}
	return ""
}
