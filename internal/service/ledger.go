package service

import (
	"context"
	"time"

	"github.com/ad-tracker/ytsummary-go/internal/db"
	dbmodels "github.com/ad-tracker/ytsummary-go/internal/db/models"
	"github.com/ad-tracker/ytsummary-go/internal/metrics"
	"github.com/ad-tracker/ytsummary-go/internal/models"
	"github.com/ad-tracker/ytsummary-go/internal/validation"
	"github.com/ad-tracker/ytsummary-go/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

// LinkLookup finds and bumps existing submissions.
type LinkLookup interface {
	GetByUserAndURL(ctx context.Context, userID, url string) (*dbmodels.VideoLink, error)
	IncrementCount(ctx context.Context, id uuid.UUID) (int, error)
}

// DurationSource resolves video durations without failing.
type DurationSource interface {
	Resolve(ctx context.Context, videoID string) DurationResult
}

// Persister stores a first-time submission.
type Persister interface {
	PersistNewSubmission(ctx context.Context, userID, url string, durationSeconds int) (*PersistResult, error)
}

// EventPublisher sends submission events to a broker.
type EventPublisher interface {
	PublishSubmission(ctx context.Context, event *models.SubmissionEvent) error
}

// SubmitResult describes a successful submission.
type SubmitResult struct {
	Outcome          models.SubmissionOutcome
	VideoID          string
	Link             *dbmodels.VideoLink
	Summary          *dbmodels.Summary
	Relation         *dbmodels.VideoLinkSummary
	DurationDegraded bool
	SummaryDegraded  bool
}

// Message is the confirmation shown to the submitter.
func (r *SubmitResult) Message() string {
	if r.Outcome == models.OutcomeDuplicate {
		return "We already have this URL. Count updated."
	}
	return "Summary created!"
}

// Ledger is the entry point for link submissions. It validates the link,
// deduplicates it against the user's history, and either bumps the existing
// count or resolves, summarizes and stores the new link.
type Ledger struct {
	validator *validation.Validator
	links     LinkLookup
	durations DurationSource
	persister Persister
	publisher EventPublisher // Optional
}

// NewLedger creates a new Ledger.
func NewLedger(links LinkLookup, durations DurationSource, persister Persister) *Ledger {
	return &Ledger{
		validator: validation.New(),
		links:     links,
		durations: durations,
		persister: persister,
	}
}

// SetPublisher sets the broker publisher for submission events (optional)
func (l *Ledger) SetPublisher(publisher EventPublisher) {
	l.publisher = publisher
}

// Submit records rawURL for userID.
func (l *Ledger) Submit(ctx context.Context, userID, rawURL string) (*SubmitResult, error) {
	result, err := l.submit(ctx, userID, rawURL)
	if err != nil {
		metrics.RecordSubmission(ErrorKind(err))
		return nil, err
	}

	metrics.RecordSubmission(string(result.Outcome))
	l.publish(ctx, userID, result)

	return result, nil
}

func (l *Ledger) submit(ctx context.Context, userID, rawURL string) (*SubmitResult, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	link, err := l.validator.Normalize(rawURL)
	if err != nil {
		return nil, err
	}

	log := logger.Log.With(zap.String("user_id", userID), zap.String("url", link.RawURL))

	existing, err := l.links.GetByUserAndURL(ctx, userID, link.RawURL)
	switch {
	case err == nil:
		count, err := l.links.IncrementCount(ctx, existing.ID)
		if err != nil {
			log.Error("failed to increment submission count", zap.Error(err))
			return nil, persistErr(StepIncrement, err)
		}
		existing.Count = count
		log.Info("duplicate submission", zap.Int("count", count))
		return &SubmitResult{
			Outcome: models.OutcomeDuplicate,
			VideoID: link.VideoID,
			Link:    existing,
		}, nil
	case !db.IsNotFound(err):
		log.Error("existing link lookup failed", zap.Error(err))
		return nil, ErrStorageUnavailable
	}

	duration := l.durations.Resolve(ctx, link.VideoID)

	persisted, err := l.persister.PersistNewSubmission(ctx, userID, link.RawURL, duration.Seconds)
	if err != nil {
		log.Error("failed to persist submission", zap.Error(err))
		return nil, err
	}

	log.Info("submission recorded",
		zap.String("outcome", string(persisted.Outcome)),
		zap.String("url_id", persisted.Link.ID.String()),
		zap.Int("video_duration", persisted.Link.VideoDuration),
		zap.Bool("duration_degraded", duration.Degraded),
		zap.Bool("summary_degraded", persisted.SummaryDegraded),
	)

	return &SubmitResult{
		Outcome:          persisted.Outcome,
		VideoID:          link.VideoID,
		Link:             persisted.Link,
		Summary:          persisted.Summary,
		Relation:         persisted.Relation,
		DurationDegraded: duration.Degraded,
		SummaryDegraded:  persisted.SummaryDegraded,
	}, nil
}

func (l *Ledger) publish(ctx context.Context, userID string, result *SubmitResult) {
	if l.publisher == nil {
		return
	}

	event := &models.SubmissionEvent{
		ID:              uuid.New(),
		UserID:          userID,
		URL:             result.Link.URL,
		VideoID:         result.VideoID,
		Outcome:         result.Outcome,
		URLID:           result.Link.ID,
		Count:           result.Link.Count,
		VideoDuration:   result.Link.VideoDuration,
		SummaryDegraded: result.SummaryDegraded,
		OccurredAt:      time.Now().UTC(),
	}
	if result.Summary != nil {
		id := result.Summary.ID
		event.SummaryID = &id
	}

	// The submission is already committed; a slow or cancelled client must not
	// drop the event.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := l.publisher.PublishSubmission(pubCtx, event); err != nil {
		metrics.RecordPublish("failed")
		logger.Log.Warn("failed to publish submission event",
			zap.String("event_id", event.ID.String()),
			zap.Error(err),
		)
		return
	}
	metrics.RecordPublish("published")
}
