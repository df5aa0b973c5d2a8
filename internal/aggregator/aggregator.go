package aggregator

import (
	"context"
	"log/slog"
	"sync"

	"github.com/simplifyx/scamguard/internal/alert"
	"github.com/simplifyx/scamguard/internal/detector"
	"github.com/simplifyx/scamguard/internal/model"
)

// Source identifies which analysis path produced a finding batch.
type Source int

const (
	// SourceNavigation is the synchronous URL-structure path.
	SourceNavigation Source = iota

	// SourceDomainAge is the asynchronous domain-age path.
	SourceDomainAge

	// SourceContent is the page-text classification path. Its batch marks
	// content analysis complete, even when empty.
	SourceContent

	// SourceForm is a form-submission event observed in the page.
	SourceForm
)

// String returns the source name for logging.
func (s Source) String() string {
	switch s {
	case SourceNavigation:
		return "navigation"
	case SourceDomainAge:
		return "domain_age"
	case SourceContent:
		return "content"
	case SourceForm:
		return "form"
	default:
		return "unknown"
	}
}

// Aggregator merges finding batches into per-page risk state and fires the
// threshold-crossing alert.
type Aggregator struct {
	store      Store
	dispatcher alert.Dispatcher
	threshold  int

	// syncDetectors run inline on navigation (URL structure).
	syncDetectors []detector.Detector

	// asyncDetectors run in a background goroutine per navigation
	// (domain age) and report through OnFindingsArrive.
	asyncDetectors []detector.Detector

	logger *slog.Logger
	wg     sync.WaitGroup
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithLogger sets the aggregator's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Aggregator) {
		a.logger = logger
	}
}

// WithSyncDetectors sets the detectors run inline on navigation.
func WithSyncDetectors(detectors ...detector.Detector) Option {
	return func(a *Aggregator) {
		a.syncDetectors = detectors
	}
}

// WithAsyncDetectors sets the detectors run in the background per navigation.
func WithAsyncDetectors(detectors ...detector.Detector) Option {
	return func(a *Aggregator) {
		a.asyncDetectors = detectors
	}
}

// New creates an aggregator over the given store and alert dispatcher.
func New(store Store, dispatcher alert.Dispatcher, threshold int, opts ...Option) *Aggregator {
	a := &Aggregator{
		store:      store,
		dispatcher: dispatcher,
		threshold:  threshold,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// OnNavigationComplete seeds a fresh risk state for the page, runs the
// synchronous detectors, and kicks off the asynchronous ones. Any previous
// state for the same page identifier is replaced; findings addressed to the
// old lifetime are discarded when they arrive.
func (a *Aggregator) OnNavigationComplete(ctx context.Context, pageID, url string) {
	a.store.Put(model.NewPageRiskState(pageID, url, a.threshold))

	a.logger.Info("navigation complete, analysis started",
		"page_id", pageID,
		"url", url,
	)

	ev := &detector.Evidence{PageURL: url}
	findings := detector.Run(ctx, a.syncDetectors, ev, a.logger)
	a.OnFindingsArrive(ctx, pageID, SourceNavigation, findings)

	if len(a.asyncDetectors) == 0 {
		return
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		late := detector.Run(ctx, a.asyncDetectors, ev, a.logger)
		a.OnFindingsArrive(ctx, pageID, SourceDomainAge, late)
	}()
}

// OnFindingsArrive merges a finding batch into the page's state and fires
// the alert when the batch pushes the total across the threshold.
//
// The crossing decision (prior < threshold <= new, alert not yet fired)
// is evaluated and the fired flag set inside the page's critical section;
// the dispatch itself happens after the lock is released. Batches for an
// unknown page identifier are discarded silently: the page navigated away
// while the analysis was in flight.
func (a *Aggregator) OnFindingsArrive(ctx context.Context, pageID string, source Source, findings []model.Finding) {
	var (
		fire   bool
		reason string
		total  int
	)

	ok := a.store.With(pageID, func(state *model.PageRiskState) {
		prior := state.Append(findings)
		total = state.TotalScore

		switch source {
		case SourceContent:
			state.ContentAnalysisComplete = true
			state.State = model.StateFullyAnalyzed
		case SourceNavigation:
			if state.State == model.StateCreated {
				state.State = model.StatePartiallyAnalyzed
			}
		}

		if !state.AlertFired && prior < state.Threshold && state.TotalScore >= state.Threshold {
			state.AlertFired = true
			fire = true
			reason = alertReason(state.Findings, findings)
		}
	})
	if !ok {
		a.logger.Debug("discarding findings for departed page",
			"page_id", pageID,
			"source", source.String(),
			"count", len(findings),
		)
		return
	}

	if len(findings) > 0 {
		a.logger.Info("findings merged",
			"page_id", pageID,
			"source", source.String(),
			"count", len(findings),
			"total_score", total,
		)
	}

	if fire {
		a.dispatcher.Dispatch(ctx, pageID, reason)
	}
}

// alertReason picks the human-readable reason for the alert: the first
// finding of the batch that caused the crossing, falling back to the first
// finding overall for an empty batch (which cannot cross, but stay safe).
func alertReason(all, batch []model.Finding) string {
	if len(batch) > 0 {
		return batch[0].Description
	}
	if len(all) > 0 {
		return all[0].Description
	}
	return "page risk score exceeded the configured threshold"
}

// OnPageClosed drops the page's state. Analysis results still in flight for
// this page will be discarded on arrival.
func (a *Aggregator) OnPageClosed(pageID string) {
	a.store.Delete(pageID)
	a.logger.Debug("page closed, risk state dropped", "page_id", pageID)
}

// Report returns an immutable snapshot of the page's current risk state.
func (a *Aggregator) Report(pageID string) (*model.RiskReport, bool) {
	return a.store.Snapshot(pageID)
}

// Wait blocks until all background detector runs have reported. Intended
// for one-shot scans and tests; the live pipeline never needs it.
func (a *Aggregator) Wait() {
	a.wg.Wait()
}
