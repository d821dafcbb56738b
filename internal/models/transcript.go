package models

// TranscriptSegment is one captioned unit as returned by the transcript
// source. Only Text is consumed downstream; timings are kept because the
// source provides them and callers may want them for export.
type TranscriptSegment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// TranscriptResult is the full transcript for one video reduced to a single
// text blob, together with the acquisition strategy that produced it.
type TranscriptResult struct {
	VideoID   string `json:"video_id"`
	Text      string `json:"text"`
	CharCount int    `json:"char_count"`
	Strategy  string `json:"strategy"`
}
