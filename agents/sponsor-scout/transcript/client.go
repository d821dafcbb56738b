package transcript

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"sponsor-scout/internal/models"
)

const (
	watchURLFormat = "https://www.youtube.com/watch?v=%s"

	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"
	// The cookie session must look like the browser the cookies came from
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
)

// CaptionTrack describes one transcript track advertised by the video's
// player payload.
type CaptionTrack struct {
	BaseURL        string
	LanguageCode   string
	Name           string
	Generated      bool // auto-generated (ASR) rather than uploaded
	IsTranslatable bool
}

// Source is the transcript source contract consumed by the fallback chain.
// Client is the network-backed implementation; tests substitute fakes.
type Source interface {
	ListTracks(ctx context.Context, videoID string) ([]CaptionTrack, error)
	FetchTrack(ctx context.Context, track CaptionTrack, translateTo string) ([]models.TranscriptSegment, error)
}

// Client fetches caption tracks through the public watch page. It carries an
// optional cookie jar so a browser session export can get past origin blocks.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient builds the unauthenticated direct client.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  defaultUserAgent,
	}
}

// NewCookieClient builds a client whose session carries the cookies exported
// to cookieFile and a realistic browser identification header.
func NewCookieClient(timeout time.Duration, cookieFile string) (*Client, error) {
	cookies, err := loadCookieFile(cookieFile)
	if err != nil {
		return nil, err
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	base, _ := url.Parse("https://www.youtube.com/")
	jar.SetCookies(base, cookies)

	return &Client{
		httpClient: &http.Client{Timeout: timeout, Jar: jar},
		userAgent:  browserUserAgent,
	}, nil
}

// ListTracks loads the watch page and extracts the caption track list from
// the embedded player payload.
func (c *Client) ListTracks(ctx context.Context, videoID string) ([]CaptionTrack, error) {
	body, err := c.get(ctx, fmt.Sprintf(watchURLFormat, videoID))
	if err != nil {
		return nil, err
	}

	if strings.Contains(body, "class=\"g-recaptcha\"") {
		return nil, fmt.Errorf("%w: the source is asking for a captcha", ErrBlocked)
	}

	payload, err := extractCaptionsJSON(body)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []struct {
				BaseURL string `json:"baseUrl"`
				Name    struct {
					SimpleText string `json:"simpleText"`
				} `json:"name"`
				LanguageCode   string `json:"languageCode"`
				Kind           string `json:"kind"`
				IsTranslatable bool   `json:"isTranslatable"`
			} `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	}
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse caption track list for %s: %w", videoID, err)
	}

	raw := parsed.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w (video %s)", ErrTranscriptsDisabled, videoID)
	}

	tracks := make([]CaptionTrack, 0, len(raw))
	for _, t := range raw {
		tracks = append(tracks, CaptionTrack{
			BaseURL:        t.BaseURL,
			LanguageCode:   t.LanguageCode,
			Name:           t.Name.SimpleText,
			Generated:      t.Kind == "asr",
			IsTranslatable: t.IsTranslatable,
		})
	}
	return tracks, nil
}

// FetchTrack downloads one track and returns its segments. A non-empty
// translateTo differing from the track language requests a server-side
// translation of the track.
func (c *Client) FetchTrack(ctx context.Context, track CaptionTrack, translateTo string) ([]models.TranscriptSegment, error) {
	trackURL := track.BaseURL
	if translateTo != "" && translateTo != track.LanguageCode {
		if !track.IsTranslatable {
			return nil, fmt.Errorf("%w: track %s is not translatable", ErrNoTranscriptFound, track.LanguageCode)
		}
		trackURL += "&tlang=" + url.QueryEscape(translateTo)
	}

	body, err := c.get(ctx, trackURL)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Texts []struct {
			Start    float64 `xml:"start,attr"`
			Duration float64 `xml:"dur,attr"`
			Content  string  `xml:",chardata"`
		} `xml:"text"`
	}
	if err := xml.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse caption payload: %w", err)
	}

	segments := make([]models.TranscriptSegment, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		text := strings.TrimSpace(html.UnescapeString(t.Content))
		if text == "" {
			continue
		}
		segments = append(segments, models.TranscriptSegment{
			Text:     text,
			Start:    t.Start,
			Duration: t.Duration,
		})
	}

	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: track %s came back empty", ErrNoTranscriptFound, track.LanguageCode)
	}

	return segments, nil
}

func (c *Client) get(ctx context.Context, requestURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", wrapTransport(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusForbidden:
		return "", fmt.Errorf("%w (HTTP %d)", ErrBlocked, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("transcript source returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", wrapTransport(err)
	}
	return string(body), nil
}

// extractCaptionsJSON cuts the captions object out of the player payload
// embedded in the watch page.
func extractCaptionsJSON(body string) (string, error) {
	_, after, found := strings.Cut(body, `"captions":`)
	if !found {
		return "", ErrTranscriptsDisabled
	}
	payload, _, found := strings.Cut(after, `,"videoDetails"`)
	if !found {
		return "", fmt.Errorf("unrecognized watch page layout: captions block has no terminator")
	}
	return strings.TrimSpace(payload), nil
}
