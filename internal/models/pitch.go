package models

import "time"

// VideoResult is the per-video outcome of a batch. A failed video carries its
// error message here instead of aborting the siblings.
type VideoResult struct {
	URL          string `json:"url"`
	VideoID      string `json:"video_id,omitempty"`
	Title        string `json:"title,omitempty"`
	ChannelTitle string `json:"channel_title,omitempty"`
	Strategy     string `json:"strategy,omitempty"`
	CharCount    int    `json:"char_count,omitempty"`
	Error        string `json:"error,omitempty"`
}

func (v *VideoResult) Succeeded() bool {
	return v.Error == ""
}

// PitchReport is the result of one full pipeline run.
type PitchReport struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Pitch       string         `json:"pitch"`
	Videos      []*VideoResult `json:"videos"`
	Succeeded   int            `json:"succeeded"`
	Failed      int            `json:"failed"`
}
