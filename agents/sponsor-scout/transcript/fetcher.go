package transcript

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"sponsor-scout/internal/models"
	"sponsor-scout/shared/config"
)

// Strategy names reported in TranscriptResult.
const (
	StrategyDirect     = "direct"
	StrategyCookie     = "cookie-session"
	StrategyTranslated = "translated"
)

// Options tunes one fetch call.
type Options struct {
	// UseCookies enables the cookie-session strategy. It only runs when a
	// cookie client was actually configured.
	UseCookies bool
}

// strategy is one entry of the ordered fallback chain. Keeping the chain as
// data makes the fallback policy visible and testable instead of hiding it in
// exception flow.
type strategy struct {
	name      string
	available func() bool
	run       func(ctx context.Context, videoID string) ([]models.TranscriptSegment, error)
}

// Fetcher obtains transcript text for a video id by walking an ordered chain
// of acquisition strategies: direct fetch, cookie-authenticated session, then
// any-language/translated track. The chain short-circuits on the first
// success and on terminal failures (captions disabled, nothing fetchable).
type Fetcher struct {
	direct      Source
	cookie      Source
	languages   []string
	translateTo string
}

// NewFetcher wires the network-backed fetcher. A missing cookie file is a
// soft failure: the cookie-session strategy is skipped, not fatal.
func NewFetcher(cfg *config.TranscriptConfig) *Fetcher {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	f := &Fetcher{
		direct:      NewClient(timeout),
		languages:   cfg.Languages,
		translateTo: cfg.Languages[0],
	}

	if _, err := os.Stat(cfg.CookieFile); err == nil {
		cookie, err := NewCookieClient(timeout, cfg.CookieFile)
		if err != nil {
			log.Printf("Warning: cookie file %s is unusable, cookie strategy disabled: %v", cfg.CookieFile, err)
		} else {
			f.cookie = cookie
			log.Printf("Cookie session loaded from %s", cfg.CookieFile)
		}
	}

	return f
}

// Fetch runs the fallback chain for one video id.
func (f *Fetcher) Fetch(ctx context.Context, videoID string, opts Options) (*models.TranscriptResult, error) {
	chain := []strategy{
		{
			name:      StrategyDirect,
			available: func() bool { return true },
			run: func(ctx context.Context, id string) ([]models.TranscriptSegment, error) {
				return f.fetchPreferred(ctx, f.direct, id)
			},
		},
		{
			name:      StrategyCookie,
			available: func() bool { return opts.UseCookies && f.cookie != nil },
			run: func(ctx context.Context, id string) ([]models.TranscriptSegment, error) {
				return f.fetchPreferred(ctx, f.cookie, id)
			},
		},
		{
			name:      StrategyTranslated,
			available: func() bool { return true },
			run: func(ctx context.Context, id string) ([]models.TranscriptSegment, error) {
				return f.fetchAnyTrack(ctx, id, opts.UseCookies)
			},
		},
	}

	var attempts []string
	for _, s := range chain {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !s.available() {
			log.Printf("Skipping %s strategy for %s (not configured)", s.name, videoID)
			continue
		}

		segments, err := s.run(ctx, videoID)
		if err != nil {
			if isTerminal(err) {
				// No later strategy can recover; surface immediately
				return nil, err
			}
			log.Printf("Strategy %s failed for %s: %v", s.name, videoID, err)
			attempts = append(attempts, fmt.Sprintf("%s: %v", s.name, err))
			continue
		}

		result := joinSegments(videoID, s.name, segments)
		log.Printf("Fetched transcript for %s via %s (%d chars)", videoID, s.name, result.CharCount)
		return result, nil
	}

	return nil, fmt.Errorf("%w for video %s [%s] - wait and retry, supply a browser cookie export, change network egress, or try a different video",
		ErrAllMethodsFailed, videoID, strings.Join(attempts, "; "))
}

// fetchPreferred picks the best track in a preferred language: uploaded
// captions win over auto-generated ones, earlier preferred languages win over
// later ones.
func (f *Fetcher) fetchPreferred(ctx context.Context, source Source, videoID string) ([]models.TranscriptSegment, error) {
	tracks, err := source.ListTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}

	for _, lang := range f.languages {
		var generated *CaptionTrack
		for i := range tracks {
			if tracks[i].LanguageCode != lang {
				continue
			}
			if !tracks[i].Generated {
				return source.FetchTrack(ctx, tracks[i], "")
			}
			if generated == nil {
				generated = &tracks[i]
			}
		}
		if generated != nil {
			return source.FetchTrack(ctx, *generated, "")
		}
	}

	return nil, fmt.Errorf("%w (have: %s)", errNoPreferredTrack, trackLanguages(tracks))
}

// fetchAnyTrack is the last-resort strategy: walk every advertised track
// regardless of language and return the first one that can be fetched,
// translating into the target language when the track is not already in it.
// The cookie session is only used when the caller opted in.
func (f *Fetcher) fetchAnyTrack(ctx context.Context, videoID string, useCookies bool) ([]models.TranscriptSegment, error) {
	source := f.direct
	if useCookies && f.cookie != nil {
		source = f.cookie
	}

	tracks, err := source.ListTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w (video %s): no caption tracks advertised", ErrNoTranscriptFound, videoID)
	}

	var lastErr, lastRetryable error
	for _, track := range tracks {
		translateTo := ""
		if !f.isPreferred(track.LanguageCode) {
			translateTo = f.translateTo
		}

		segments, err := source.FetchTrack(ctx, track, translateTo)
		if err != nil {
			lastErr = err
			if !isTerminal(err) {
				lastRetryable = err
			}
			continue
		}
		return segments, nil
	}

	// A retryable per-track failure (a block, a timeout) must surface as
	// retryable, not as a missing transcript, so the chain can exhaust into
	// its remediation error.
	if lastRetryable != nil {
		return nil, fmt.Errorf("every caption track failed for video %s: %w", videoID, lastRetryable)
	}
	return nil, fmt.Errorf("%w (video %s): %v", ErrNoTranscriptFound, videoID, lastErr)
}

func (f *Fetcher) isPreferred(lang string) bool {
	for _, l := range f.languages {
		if l == lang {
			return true
		}
	}
	return false
}

// joinSegments reduces segments to the single space-joined text blob the
// pitch pipeline consumes.
func joinSegments(videoID, strategyName string, segments []models.TranscriptSegment) *models.TranscriptResult {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		parts = append(parts, s.Text)
	}
	text := strings.Join(parts, " ")

	return &models.TranscriptResult{
		VideoID:   videoID,
		Text:      text,
		CharCount: len(text),
		Strategy:  strategyName,
	}
}

func trackLanguages(tracks []CaptionTrack) string {
	langs := make([]string, 0, len(tracks))
	for _, t := range tracks {
		langs = append(langs, t.LanguageCode)
	}
	return strings.Join(langs, ", ")
}
