package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"sponsor-scout/shared/config"
	"sponsor-scout/shared/sponsors"

	"google.golang.org/genai"
)

// ErrEmptyResponse signals that the completion call succeeded but carried no
// usable text. Callers must treat this as a failure, never as an empty pitch.
var ErrEmptyResponse = errors.New("model returned no text content")

// Pitcher assembles the sponsorship-pitch prompt and runs the completion
// call. The system prompt embeds the full sponsor database and is built once;
// the database never changes after load.
type Pitcher struct {
	client          *genai.Client
	model           string
	maxOutputTokens int32
	charBudget      int
	timeout         time.Duration
	systemPrompt    string
}

func NewPitcher(cfg *config.AIConfig, db *sponsors.Database) (*Pitcher, error) {
	ctx := context.Background()
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	// The completion call must never block unbounded: the transport carries a
	// timeout and GeneratePitch adds a per-call deadline on top.
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.GeminiAPIKey,
		HTTPClient: &http.Client{Timeout: timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Pitcher{
		client:          client,
		model:           cfg.Model,
		maxOutputTokens: int32(cfg.MaxOutputTokens),
		charBudget:      cfg.TranscriptCharBudget,
		timeout:         timeout,
		systemPrompt:    buildSystemPrompt(db),
	}, nil
}

// GeneratePitch runs one completion call over the combined transcript text.
// The transcript is truncated to the configured character budget before the
// user message is assembled; this is the only truncation point.
func (p *Pitcher) GeneratePitch(ctx context.Context, transcriptText string, videoCount int) (string, error) {
	if strings.TrimSpace(transcriptText) == "" {
		return "", fmt.Errorf("transcript text is empty")
	}

	truncated := truncateTranscript(transcriptText, p.charBudget)
	if len(truncated) < len(transcriptText) {
		log.Printf("Transcript truncated from %d to %d characters to fit the prompt budget",
			len(transcriptText), len(truncated))
	}

	contents := []*genai.Content{
		genai.NewContentFromText(buildUserMessage(truncated, videoCount), genai.RoleUser),
	}

	callCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	result, err := p.client.Models.GenerateContent(callCtx, p.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(p.systemPrompt, genai.RoleUser),
		MaxOutputTokens:   p.maxOutputTokens,
	})
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("pitch generation timed out after %v: %w", p.timeout, context.DeadlineExceeded)
		}
		return "", p.classifyAPIError(err)
	}

	text := result.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}

	return text, nil
}

// classifyAPIError wraps transport failures, distinguishing the retired-model
// case so users get a hint instead of a bare 404.
func (p *Pitcher) classifyAPIError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("pitch generation timed out: %w", err)
	}
	msg := err.Error()
	if strings.Contains(msg, "NOT_FOUND") || strings.Contains(msg, "404") {
		return fmt.Errorf("model %q was not found - it may have been retired, pick a current model in the config: %w", p.model, err)
	}
	return fmt.Errorf("pitch generation failed: %w", err)
}

// truncateTranscript keeps the prefix and drops the remainder, backing the
// cut off to a rune boundary so a multi-byte character is never split. Lossy
// but deliberate: long inputs are always truncated, never rejected.
func truncateTranscript(text string, budget int) string {
	if len(text) <= budget {
		return text
	}
	cut := budget
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

func buildUserMessage(transcriptText string, videoCount int) string {
	noun := "video"
	if videoCount != 1 {
		noun = "videos"
	}
	return fmt.Sprintf(`Here are the transcripts of %d %s from the creator's channel:

%s

Build the sponsorship pitch for this creator.`, videoCount, noun, transcriptText)
}

func buildSystemPrompt(db *sponsors.Database) string {
	return fmt.Sprintf(`You are a talent manager who matches YouTube creators with SaaS sponsors.

You may ONLY recommend companies from the sponsor database below. Never invent
companies, pricing, or contact details that are not in the database.

SPONSOR DATABASE (%d companies):

%s

Respond with exactly this structure, in markdown:

## Creator Profile
Who this creator is, their content style, and their niche, inferred from the
transcripts.

## Audience Analysis
Who watches this content: demographics, interests, and buying power.

## Sponsor Matches
The 3 best-fit companies from the database, ranked. For each: why it fits,
a match confidence (high/medium/low), and the expected pricing range from
the database.

## Outreach Email Draft
A short, personalized email the creator could send to the top match.

Constraints:
- Be honest about match confidence; not every creator fits every sponsor.
- Ground every claim in the transcripts or the database; no fabricated data.
- If the transcripts give too little signal for a section, say so briefly.`,
		db.Len(), db.FormatForPrompt())
}
