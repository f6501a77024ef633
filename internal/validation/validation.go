// Package validation checks and normalizes submitted video links.
package validation

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	// ErrInvalidURL is returned when the input cannot be parsed as an absolute URL.
	ErrInvalidURL = errors.New("invalid url")

	// ErrEmptyURL is returned for blank input. It matches ErrInvalidURL under errors.Is.
	ErrEmptyURL = fmt.Errorf("empty url: %w", ErrInvalidURL)

	// ErrUnsupportedSource is returned when the host is not a supported video platform.
	ErrUnsupportedSource = errors.New("unsupported source")
)

const (
	shortLinkHost = "youtu.be"
	primaryHost   = "youtube.com"
)

// Link is a validated submission. RawURL is the trimmed input and is the
// value used for deduplication and storage. VideoID may be empty.
type Link struct {
	RawURL  string
	VideoID string
}

// HasVideoID reports whether an identifier could be extracted.
func (l *Link) HasVideoID() bool {
	return l.VideoID != ""
}

type Validator struct {
	shortHosts   []string
	primaryHosts []string
}

// New returns a Validator accepting youtu.be short links and youtube.com URLs.
func New() *Validator {
	return &Validator{
		shortHosts:   []string{shortLinkHost},
		primaryHosts: []string{primaryHost},
	}
}

// Normalize trims and validates raw, then extracts the video identifier.
func (v *Validator) Normalize(raw string) (*Link, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, ErrEmptyURL
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: missing scheme or host", ErrInvalidURL)
	}

	host := strings.ToLower(parsed.Hostname())
	link := &Link{RawURL: trimmed}

	switch {
	case hostMatches(host, v.shortHosts):
		link.VideoID = firstSegment(parsed.Path)
	case hostMatches(host, v.primaryHosts):
		link.VideoID = primaryVideoID(parsed)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, host)
	}

	return link, nil
}

// Substring match, so m.youtube.com and www.youtube.com are accepted.
func hostMatches(host string, candidates []string) bool {
	for _, c := range candidates {
		if strings.Contains(host, c) {
			return true
		}
	}
	return false
}

func firstSegment(path string) string {
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			return part
		}
	}
	return ""
}

func primaryVideoID(u *url.URL) string {
	if id := u.Query().Get("v"); id != "" {
		return id
	}

	parts := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })
	for i, part := range parts {
		if part == "shorts" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}
