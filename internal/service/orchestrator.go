package service

import (
	"context"

	"github.com/ad-tracker/ytsummary-go/internal/db"
	dbmodels "github.com/ad-tracker/ytsummary-go/internal/db/models"
	"github.com/ad-tracker/ytsummary-go/internal/db/repository"
	"github.com/ad-tracker/ytsummary-go/internal/models"
	"github.com/ad-tracker/ytsummary-go/pkg/logger"

	"go.uber.org/zap"
)

// SummaryProvider produces a summary for a link. It must not fail.
type SummaryProvider interface {
	Summarize(ctx context.Context, url string) SummaryResult
}

// PersistResult is what a persistence run stored. Summary and Relation are nil
// when the run lost an insert race and only bumped the existing count.
type PersistResult struct {
	Outcome         models.SubmissionOutcome
	Link            *dbmodels.VideoLink
	Summary         *dbmodels.Summary
	Relation        *dbmodels.VideoLinkSummary
	SummaryDegraded bool
}

// Orchestrator writes a new submission as one transaction: link, summary, relation.
type Orchestrator struct {
	pool       db.Pool
	summarizer SummaryProvider
}

// NewOrchestrator creates a new Orchestrator.
func NewOrchestrator(pool db.Pool, summarizer SummaryProvider) *Orchestrator {
	return &Orchestrator{
		pool:       pool,
		summarizer: summarizer,
	}
}

// PersistNewSubmission stores a first-time submission. If another request
// stored the same (user, url) first, the existing row's count is bumped and
// the outcome is duplicate. Any failure rolls the whole unit back.
func (o *Orchestrator) PersistNewSubmission(ctx context.Context, userID, url string, durationSeconds int) (*PersistResult, error) {
	tx, err := o.pool.Begin(ctx)
	if err != nil {
		return nil, persistErr(StepURLRecord, err)
	}
	defer tx.Rollback(ctx) // Rollback is safe to call even if committed

	links := repository.NewVideoLinkRepository(tx)
	summaries := repository.NewSummaryRepository(tx)
	relations := repository.NewVideoLinkSummaryRepository(tx)

	link := dbmodels.NewVideoLink(userID, url, durationSeconds)
	inserted, err := links.UpsertForSubmission(ctx, link)
	if err != nil {
		return nil, persistErr(StepURLRecord, err)
	}

	if !inserted {
		if err := tx.Commit(ctx); err != nil {
			return nil, persistErr(StepCommit, err)
		}
		logger.Log.Info("concurrent submission won the insert race",
			zap.String("url_id", link.ID.String()),
			zap.Int("count", link.Count),
		)
		return &PersistResult{Outcome: models.OutcomeDuplicate, Link: link}, nil
	}

	// The new row stays locked until commit, so a concurrent duplicate waits
	// here and then takes the conflict branch above.
	result := o.summarizer.Summarize(ctx, url)

	summary := dbmodels.NewSummary(userID, result.Text)
	if err := summaries.Create(ctx, summary); err != nil {
		return nil, persistErr(StepSummaryRecord, err)
	}

	relation := dbmodels.NewVideoLinkSummary(link.ID, summary.ID)
	if err := relations.Create(ctx, relation); err != nil {
		return nil, persistErr(StepRelation, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, persistErr(StepCommit, db.WrapError(err, "commit submission"))
	}

	return &PersistResult{
		Outcome:         models.OutcomeCreated,
		Link:            link,
		Summary:         summary,
		Relation:        relation,
		SummaryDegraded: result.Degraded,
	}, nil
}
