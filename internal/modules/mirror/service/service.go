package service

import (
	"context"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/dkosarev/discord-announce-relay/internal/modules/mirror/repository"
	"github.com/samber/oops"
)

// PublicPrefix is the route under which mirrored files are served.
const PublicPrefix = "/downloads/"

// maxFilenameLen bounds sanitized names to stay well under common
// filesystem limits once the message id is prepended.
const maxFilenameLen = 180

const fallbackFilename = "attachment"

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Service mirrors remote attachments to local storage. Mirror never
// falls back to the remote URL itself; that is the caller's job.
type Service struct {
	repo       repository.Repository
	httpClient *http.Client
}

// New creates a mirror service. The timeout applies to each fetch.
func New(repo repository.Repository, timeout time.Duration) *Service {
	return &Service{
		repo: repo,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Mirror ensures a local copy of remoteURL exists and returns its public
// path. The local name is derived from (messageID, filename), so the
// call is idempotent: once a file exists it is returned immediately with
// no remote check.
func (s *Service) Mirror(ctx context.Context, remoteURL, messageID, filename string) (string, error) {
	name := localName(remoteURL, messageID, filename)

	if s.repo.Has(name) {
		return PublicPrefix + name, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, remoteURL, nil)
	if err != nil {
		return "", oops.With("url", remoteURL).Wrap(err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", oops.With("url", remoteURL, "context", "attachment fetch failed").Wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", oops.With("url", remoteURL, "status", resp.StatusCode).Errorf("attachment fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", oops.With("url", remoteURL, "context", "reading attachment body").Wrap(err)
	}

	if err := s.repo.Store(name, data); err != nil {
		return "", err
	}

	return PublicPrefix + name, nil
}

func localName(remoteURL, messageID, filename string) string {
	if filename == "" {
		filename = lastPathSegment(remoteURL)
	}

	name := SanitizeFilename(filename)
	if name == "" {
		name = fallbackFilename
	}

	return messageID + "_" + name
}

// SanitizeFilename strips everything outside [A-Za-z0-9._-], collapsing
// runs into a single underscore, trims leading/trailing separators and
// caps the length.
func SanitizeFilename(filename string) string {
	name := unsafeChars.ReplaceAllString(filename, "_")
	name = strings.Trim(name, "._-")
	if len(name) > maxFilenameLen {
		name = name[:maxFilenameLen]
		name = strings.Trim(name, "._-")
	}
	return name
}

func lastPathSegment(remoteURL string) string {
	trimmed := strings.SplitN(remoteURL, "?", 2)[0]
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}
