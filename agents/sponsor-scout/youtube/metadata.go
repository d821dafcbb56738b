package youtube

import (
	"context"
	"fmt"

	"sponsor-scout/internal/models"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// MetadataClient reads public video metadata (title, channel) used to label
// each video inside the combined transcript. Only an API key is needed; no
// user-account scopes are involved.
type MetadataClient struct {
	service *youtube.Service
}

func NewMetadataClient(ctx context.Context, apiKey string) (*MetadataClient, error) {
	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &MetadataClient{service: service}, nil
}

// VideoInfo looks up one video's snippet.
func (c *MetadataClient) VideoInfo(ctx context.Context, videoID string) (*models.Video, error) {
	call := c.service.Videos.List([]string{"snippet"}).Id(videoID)

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get video metadata for %s: %w", videoID, err)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("video %s not found", videoID)
	}

	item := resp.Items[0]
	return &models.Video{
		ID:           item.Id,
		Title:        item.Snippet.Title,
		ChannelTitle: item.Snippet.ChannelTitle,
		URL:          fmt.Sprintf("https://www.youtube.com/watch?v=%s", item.Id),
	}, nil
}
