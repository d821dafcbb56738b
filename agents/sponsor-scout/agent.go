package sponsorscout

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"sponsor-scout/agents/sponsor-scout/transcript"
	"sponsor-scout/agents/sponsor-scout/youtube"
	"sponsor-scout/internal/models"
	"sponsor-scout/shared/ai"
	"sponsor-scout/shared/config"
	"sponsor-scout/shared/monitoring"
	"sponsor-scout/shared/sponsors"
)

// TranscriptFetcher obtains transcript text for one video id.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID string, opts transcript.Options) (*models.TranscriptResult, error)
}

// PitchGenerator runs the completion call over the combined transcript.
type PitchGenerator interface {
	GeneratePitch(ctx context.Context, transcriptText string, videoCount int) (string, error)
}

// MetadataLookup enriches batch headers with video title and channel.
// Optional; the pipeline works without it.
type MetadataLookup interface {
	VideoInfo(ctx context.Context, videoID string) (*models.Video, error)
}

// Agent drives the full pipeline: URLs -> video ids -> transcripts -> one
// pitch. Per-video failures are collected into the report rather than
// aborting the batch; only a batch with zero transcripts stops before the
// completion call.
type Agent struct {
	config   *config.Config
	fetcher  TranscriptFetcher
	pitcher  PitchGenerator
	metadata MetadataLookup
	sponsors *sponsors.Database
	monitor  *monitoring.Monitor
}

// PitchMetrics summarizes one run for the monitor.
type PitchMetrics struct {
	URLs       int
	Fetched    int
	Failed     int
	PitchChars int
}

func (m PitchMetrics) GetSummary() string {
	return fmt.Sprintf("processed %d URLs, fetched %d transcripts, %d failed, pitch %d chars",
		m.URLs, m.Fetched, m.Failed, m.PitchChars)
}

func NewAgent(cfg *config.Config) *Agent {
	return &Agent{
		config:  cfg,
		monitor: monitoring.NewMonitor(),
	}
}

func (a *Agent) Name() string {
	return "Sponsor Scout"
}

func (a *Agent) Monitor() *monitoring.Monitor {
	return a.monitor
}

// Initialize wires the pipeline. The sponsor database is loaded exactly once
// here and injected into the pitcher; nothing reloads or mutates it later.
func (a *Agent) Initialize() error {
	log.Printf("Initializing %s...", a.Name())

	if a.sponsors == nil {
		db, err := sponsors.Load(a.config.Sponsors.DatabaseFile)
		if err != nil {
			return fmt.Errorf("failed to load sponsor database: %w", err)
		}
		a.sponsors = db
	}

	if a.pitcher == nil {
		pitcher, err := ai.NewPitcher(&a.config.AI, a.sponsors)
		if err != nil {
			return fmt.Errorf("failed to create pitch generator: %w", err)
		}
		a.pitcher = pitcher
		log.Println("Pitch generator initialized")
	}

	if a.fetcher == nil {
		a.fetcher = transcript.NewFetcher(&a.config.Transcript)
		log.Println("Transcript fetcher initialized")
	}

	if a.metadata == nil && a.config.YouTube.APIKey != "" {
		client, err := youtube.NewMetadataClient(context.Background(), a.config.YouTube.APIKey)
		if err != nil {
			return fmt.Errorf("failed to create YouTube metadata client: %w", err)
		}
		a.metadata = client
		log.Println("YouTube metadata client initialized")
	}

	return nil
}

// GeneratePitch runs the pipeline for a batch of URLs.
func (a *Agent) GeneratePitch(ctx context.Context, urls []string, opts transcript.Options) (*models.PitchReport, error) {
	startTime := time.Now()

	if len(urls) == 0 {
		return nil, fmt.Errorf("at least one video URL is required")
	}

	report := &models.PitchReport{GeneratedAt: time.Now()}
	var fetched []*models.VideoResult
	var transcripts []*models.TranscriptResult

	for i, url := range urls {
		// Cancellation is honored between videos, not mid-call
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result := &models.VideoResult{URL: url}
		report.Videos = append(report.Videos, result)

		videoID, err := transcript.ExtractVideoID(url)
		if err != nil {
			log.Printf("Skipping URL %d/%d: %v", i+1, len(urls), err)
			result.Error = err.Error()
			continue
		}
		result.VideoID = videoID

		log.Printf("Fetching transcript %d/%d: %s", i+1, len(urls), videoID)
		tr, err := a.fetcher.Fetch(ctx, videoID, opts)
		if err != nil {
			log.Printf("Warning: transcript fetch failed for %s: %v", videoID, err)
			result.Error = err.Error()
			continue
		}

		result.Strategy = tr.Strategy
		result.CharCount = tr.CharCount
		a.enrichMetadata(ctx, result)

		fetched = append(fetched, result)
		transcripts = append(transcripts, tr)
	}

	report.Succeeded = len(fetched)
	report.Failed = len(report.Videos) - len(fetched)

	if len(transcripts) == 0 {
		err := fmt.Errorf("no transcripts could be fetched for any of the %d URLs", len(urls))
		a.monitor.RecordCriticalFailure(err, time.Since(startTime))
		return report, err
	}
	if report.Failed > 0 {
		a.monitor.RecordPartialFailure(
			fmt.Errorf("%d of %d videos failed", report.Failed, len(report.Videos)),
			time.Since(startTime))
	}

	combined := buildCombinedTranscript(fetched, transcripts)

	log.Printf("Generating pitch from %d transcripts (%d chars combined)...", len(transcripts), len(combined))
	pitch, err := a.pitcher.GeneratePitch(ctx, combined, len(transcripts))
	if err != nil {
		a.monitor.RecordCriticalFailure(err, time.Since(startTime))
		return report, err
	}
	report.Pitch = pitch

	metrics := PitchMetrics{
		URLs:       len(urls),
		Fetched:    report.Succeeded,
		Failed:     report.Failed,
		PitchChars: len(pitch),
	}
	a.monitor.RecordSuccess(metrics.GetSummary(), time.Since(startTime))

	return report, nil
}

// enrichMetadata is best effort: a metadata failure never fails the video.
func (a *Agent) enrichMetadata(ctx context.Context, result *models.VideoResult) {
	if a.metadata == nil {
		return
	}
	video, err := a.metadata.VideoInfo(ctx, result.VideoID)
	if err != nil {
		log.Printf("Warning: metadata lookup failed for %s: %v", result.VideoID, err)
		return
	}
	result.Title = video.Title
	result.ChannelTitle = video.ChannelTitle
}

// buildCombinedTranscript concatenates the successful transcripts with a
// per-video header block so the model can tell the videos apart.
func buildCombinedTranscript(videos []*models.VideoResult, transcripts []*models.TranscriptResult) string {
	var sb strings.Builder

	for i, tr := range transcripts {
		v := videos[i]

		title := v.Title
		if title == "" {
			title = v.VideoID
		}
		sb.WriteString(fmt.Sprintf("Video %d of %d: %s\n", i+1, len(transcripts), title))
		if v.ChannelTitle != "" {
			sb.WriteString(fmt.Sprintf("Channel: %s\n", v.ChannelTitle))
		}
		sb.WriteString("\n")
		sb.WriteString(tr.Text)

		if i < len(transcripts)-1 {
			sb.WriteString("\n\n---\n\n")
		}
	}

	return sb.String()
}
