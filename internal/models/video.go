package models

// Video holds the public metadata used for batch headers. Title and channel
// stay empty when no YouTube API key is configured.
type Video struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ChannelTitle string `json:"channel_title"`
	URL          string `json:"url"`
}
