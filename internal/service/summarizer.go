package service

import (
	"context"
	"strings"
	"time"

	"github.com/ad-tracker/ytsummary-go/internal/metrics"
	"github.com/ad-tracker/ytsummary-go/pkg/logger"

	"go.uber.org/zap"
)

// SummaryPlaceholder is stored when no summary could be generated.
const SummaryPlaceholder = "Summary unavailable."

// SummaryResult is generated text for a link. Degraded is set when Text is
// the placeholder.
type SummaryResult struct {
	Text     string
	Degraded bool
}

// TextGenerator produces text for a prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Summarizer produces summaries for video links. It never returns an error.
type Summarizer struct {
	generator TextGenerator
}

// NewSummarizer creates a Summarizer. A nil generator always yields the placeholder.
func NewSummarizer(generator TextGenerator) *Summarizer {
	return &Summarizer{generator: generator}
}

// BuildSummaryPrompt returns the prompt sent for url.
func BuildSummaryPrompt(url string) string {
	return "Make me a summary for this video, " + url
}

// Summarize returns a summary of the video at url.
func (s *Summarizer) Summarize(ctx context.Context, url string) SummaryResult {
	if s.generator == nil {
		metrics.RecordExternalCall(metrics.ServiceGemini, metrics.ResultSkipped, 0)
		return SummaryResult{Text: SummaryPlaceholder, Degraded: true}
	}

	start := time.Now()
	text, err := s.generator.GenerateText(ctx, BuildSummaryPrompt(url))
	elapsed := time.Since(start)

	if err == nil && strings.TrimSpace(text) == "" {
		err = errEmptySummary
	}
	if err != nil {
		metrics.RecordExternalCall(metrics.ServiceGemini, metrics.ResultFailure, elapsed)
		logger.Log.Warn("summary generation failed",
			zap.String("url", url),
			zap.Error(err),
			zap.Duration("elapsed", elapsed),
		)
		return SummaryResult{Text: SummaryPlaceholder, Degraded: true}
	}

	metrics.RecordExternalCall(metrics.ServiceGemini, metrics.ResultSuccess, elapsed)
	return SummaryResult{Text: text}
}
