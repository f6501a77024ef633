// Package youtube resolves video metadata through the YouTube Data API v3.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// VideosListCost is the quota cost of one videos.list call with a single part.
const VideosListCost = 1

var (
	// ErrVideoNotFound is returned when the API answers with no items.
	ErrVideoNotFound = errors.New("video not found")

	// ErrInvalidDuration is returned for durations that are not PT#H#M#S.
	ErrInvalidDuration = errors.New("invalid duration format")

	durationRegex = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)
)

// Config holds the Data API client settings.
type Config struct {
	APIKey   string
	Endpoint string
	Timeout  time.Duration
}

// Client wraps the YouTube Data API v3 client
type Client struct {
	service *youtube.Service
	timeout time.Duration
}

// NewClient creates a new YouTube API client. Extra options are appended after
// the ones derived from cfg, so callers can inject an HTTP client.
func NewClient(ctx context.Context, cfg Config, opts ...option.ClientOption) (*Client, error) {
	var clientOpts []option.ClientOption
	if cfg.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(cfg.Endpoint))
	}
	clientOpts = append(clientOpts, opts...)

	if len(clientOpts) == 0 {
		return nil, fmt.Errorf("YouTube API key is required")
	}

	service, err := youtube.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		service: service,
		timeout: timeout,
	}, nil
}

// FetchDuration returns the length of a video in seconds.
func (c *Client) FetchDuration(ctx context.Context, videoID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	response, err := c.service.Videos.List([]string{"contentDetails"}).Id(videoID).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to fetch video from YouTube API: %w", err)
	}

	if len(response.Items) == 0 || response.Items[0].ContentDetails == nil {
		return 0, fmt.Errorf("%w: %s", ErrVideoNotFound, videoID)
	}

	return ParseVideoDuration(response.Items[0].ContentDetails.Duration)
}

// ParseVideoDuration converts ISO 8601 duration to seconds
// Example: "PT4M13S" -> 253 seconds
func ParseVideoDuration(duration string) (int, error) {
	match := durationRegex.FindStringSubmatch(duration)
	if match == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, duration)
	}

	total := 0
	for i, unit := range []int{3600, 60, 1} {
		if match[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(match[i+1])
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, duration)
		}
		total += n * unit
	}

	return total, nil
}
