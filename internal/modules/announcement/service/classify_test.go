package service

import (
	"testing"

	"github.com/dkosarev/discord-announce-relay/internal/modules/announcement/domain"
	"github.com/dkosarev/discord-announce-relay/internal/transport/discord"
)

func TestClassifyAttachment(t *testing.T) {
	tests := []struct {
		name string
		att  discord.Attachment
		want domain.MediaType
	}{
		{
			name: "gif by content type",
			att:  discord.Attachment{Filename: "anim.gif", ContentType: "image/gif", URL: "https://cdn.example/anim.gif"},
			want: domain.MediaTypeGif,
		},
		{
			name: "gif by extension without content type",
			att:  discord.Attachment{Filename: "anim.gif", URL: "https://cdn.example/anim.gif"},
			want: domain.MediaTypeGif,
		},
		{
			name: "gif extension with query string",
			att:  discord.Attachment{Filename: "anim.gif", URL: "https://cdn.example/anim.gif?ex=123&is=456"},
			want: domain.MediaTypeGif,
		},
		{
			name: "png by content type",
			att:  discord.Attachment{Filename: "pic.png", ContentType: "image/png", URL: "https://cdn.example/pic.png"},
			want: domain.MediaTypeImage,
		},
		{
			name: "jpeg by extension",
			att:  discord.Attachment{Filename: "pic.jpeg", URL: "https://cdn.example/pic.jpeg"},
			want: domain.MediaTypeImage,
		},
		{
			name: "webp by extension",
			att:  discord.Attachment{Filename: "pic.webp", URL: "https://cdn.example/pic.webp"},
			want: domain.MediaTypeImage,
		},
		{
			name: "mp4 by content type",
			att:  discord.Attachment{Filename: "clip.mp4", ContentType: "video/mp4", URL: "https://cdn.example/clip.mp4"},
			want: domain.MediaTypeVideo,
		},
		{
			name: "mov by extension",
			att:  discord.Attachment{Filename: "clip.mov", URL: "https://cdn.example/clip.mov"},
			want: domain.MediaTypeVideo,
		},
		{
			name: "content type wins over extension",
			att:  discord.Attachment{Filename: "report.png", ContentType: "application/pdf", URL: "https://cdn.example/report.png"},
			want: domain.MediaTypeFile,
		},
		{
			name: "unknown extension",
			att:  discord.Attachment{Filename: "notes.txt", URL: "https://cdn.example/notes.txt"},
			want: domain.MediaTypeFile,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyAttachment(tt.att)
			if got.Type != tt.want {
				t.Errorf("classifyAttachment(%+v).Type = %q, want %q", tt.att, got.Type, tt.want)
			}
		})
	}
}

func TestClassifyAttachmentFileKeepsNameAndContentType(t *testing.T) {
	att := discord.Attachment{Filename: "report.pdf", ContentType: "application/pdf", URL: "https://cdn.example/report.pdf"}
	got := classifyAttachment(att)
	if got.Type != domain.MediaTypeFile {
		t.Fatalf("Type = %q, want %q", got.Type, domain.MediaTypeFile)
	}
	if got.Name != "report.pdf" || got.ContentType != "application/pdf" {
		t.Errorf("got Name=%q ContentType=%q, want original name and content type", got.Name, got.ContentType)
	}
}

func TestClassifyEmbedImage(t *testing.T) {
	tests := []struct {
		url  string
		want domain.MediaType
	}{
		{"https://media.example/preview.gif", domain.MediaTypeGif},
		{"https://media.example/preview.gif?size=large", domain.MediaTypeGif},
		{"https://media.example/preview.png", domain.MediaTypeImage},
		{"https://media.example/preview", domain.MediaTypeImage},
	}
	for _, tt := range tests {
		if got := classifyEmbedImage(tt.url); got != tt.want {
			t.Errorf("classifyEmbedImage(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
