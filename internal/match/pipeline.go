package match

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"acheiBack/internal/config"
	"acheiBack/internal/models"
)

// Logger is the minimal logger interface required by the pipeline.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// MatchStore persists match pairs. Upsert is insert-if-absent on the canonical pair
// key and reports whether a new row was created, so concurrent workers converge to
// the same final state without duplicates.
type MatchStore interface {
	Upsert(ctx context.Context, m models.Match) (bool, error)
	MarkNotified(ctx context.Context, itemAID, itemBID, itemID int) error
	ListUnnotified(ctx context.Context, limit int) ([]models.Match, error)
}

// JobStore holds deferred match jobs. Schedule upserts on item id, so a newer edit
// supersedes a pending job for the same item.
type JobStore interface {
	Schedule(ctx context.Context, job models.MatchJob) error
	ListDue(ctx context.Context, now time.Time) ([]models.MatchJob, error)
	Finish(ctx context.Context, itemID, version int) error
}

// Notifier delivers a match alert to a user. A non-nil error is the retryable
// failure outcome.
type Notifier interface {
	Deliver(ctx context.Context, userID int, summary models.MatchSummary) error
}

// Pipeline orchestrates candidate retrieval, scoring, persistence of match links and
// notification dispatch. Jobs run off the request path; Schedule never blocks the
// item handlers.
type Pipeline struct {
	source   ItemSource
	index    *Index
	matches  MatchStore
	jobs     JobStore
	notifier Notifier
	logger   Logger
	cfg      config.MatcherConfig

	mu       sync.Mutex
	inflight map[int]struct{}
}

func New(source ItemSource, matches MatchStore, jobs JobStore, notifier Notifier, logger Logger, cfg config.MatcherConfig) *Pipeline {
	cfg.Normalize()
	return &Pipeline{
		source:   source,
		index:    NewIndex(source, cfg.MinPool, cfg.MaxCandidates),
		matches:  matches,
		jobs:     jobs,
		notifier: notifier,
		logger:   logger,
		cfg:      cfg,
		inflight: make(map[int]struct{}),
	}
}

// Schedule enqueues a delayed match job for the item, capturing its current version.
// The delay debounces rapid consecutive edits; a second call for the same item
// replaces the pending job.
func (p *Pipeline) Schedule(ctx context.Context, itemID int) error {
	item, err := p.source.Get(ctx, itemID)
	if err != nil {
		if errors.Is(err, models.ErrItemNotFound) {
			return nil
		}
		return err
	}
	return p.jobs.Schedule(ctx, models.MatchJob{
		ItemID:  item.ID,
		Version: item.Version,
		RunAt:   time.Now().Add(p.cfg.Debounce),
	})
}

// Run starts the job loop and blocks until ctx is cancelled.
func (p *Pipeline) Run(ctx context.Context) {
	ticker := time.NewTicker(p.cfg.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *Pipeline) tick(ctx context.Context) {
	jobs, err := p.jobs.ListDue(ctx, time.Now())
	if err != nil {
		p.logger.Errorf("match: list due jobs failed: %v", err)
		return
	}

	sem := make(chan struct{}, p.cfg.Workers)
	var wg sync.WaitGroup
	for _, job := range jobs {
		if !p.claim(job.ItemID) {
			// a worker is already on this item, the job stays due for the next tick
			continue
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(job models.MatchJob) {
			defer wg.Done()
			defer func() { <-sem }()
			defer p.release(job.ItemID)
			if err := p.process(ctx, job); err != nil {
				if errors.Is(err, context.Canceled) {
					return
				}
				p.logger.Errorf("match: process item %d failed: %v", job.ItemID, err)
			}
		}(job)
	}
	wg.Wait()
}

func (p *Pipeline) claim(itemID int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, busy := p.inflight[itemID]; busy {
		return false
	}
	p.inflight[itemID] = struct{}{}
	return true
}

func (p *Pipeline) release(itemID int) {
	p.mu.Lock()
	delete(p.inflight, itemID)
	p.mu.Unlock()
}

type scored struct {
	item  models.Item
	score float64
}

func (p *Pipeline) process(ctx context.Context, job models.MatchJob) error {
	item, err := p.source.Get(ctx, job.ItemID)
	if errors.Is(err, models.ErrItemNotFound) {
		// deleted before the job ran
		return p.jobs.Finish(ctx, job.ItemID, job.Version)
	}
	if err != nil {
		// transient, the job stays due and is retried next tick
		return err
	}
	if item.Version != job.Version {
		// superseded by a newer edit whose own job is queued
		return p.jobs.Finish(ctx, job.ItemID, job.Version)
	}
	if !models.ValidStatus(item.Status) {
		p.logger.Errorf("match: item %d has invalid status %q, dropping job", item.ID, item.Status)
		if err := p.jobs.Finish(ctx, job.ItemID, job.Version); err != nil {
			return err
		}
		return models.ErrInvalidItemStatus
	}

	candidates, err := p.index.Candidates(ctx, item)
	if err != nil {
		return err
	}

	accepted := p.rank(item, candidates)
	for _, cand := range accepted {
		a, b := models.CanonicalPair(item.ID, cand.item.ID)
		m := models.Match{
			ItemAID:   a,
			ItemBID:   b,
			Score:     cand.score,
			CreatedAt: time.Now(),
		}
		created, err := p.matches.Upsert(ctx, m)
		if err != nil {
			p.logger.Errorf("match: persist pair (%d,%d) failed: %v", a, b, err)
			continue
		}
		if !created {
			continue
		}
		p.logger.Infof("match: new pair (%d,%d) score=%.2f", a, b, cand.score)
		p.notifyPair(ctx, item, cand.item, m)
	}

	return p.jobs.Finish(ctx, job.ItemID, job.Version)
}

// rank scores each candidate, keeps those at or above the threshold and sorts them
// by score descending with item id as tie-break. A malformed candidate is skipped,
// never failing the whole job.
func (p *Pipeline) rank(item models.Item, candidates []models.Item) []scored {
	accepted := make([]scored, 0, len(candidates))
	for _, cand := range candidates {
		if cand.ID == item.ID || cand.Status == item.Status || !models.ValidStatus(cand.Status) {
			p.logger.Infof("match: skipping candidate %d for item %d", cand.ID, item.ID)
			continue
		}
		s := Score(item, cand)
		if s >= p.cfg.Threshold {
			accepted = append(accepted, scored{item: cand, score: s})
		}
	}
	sort.Slice(accepted, func(i, j int) bool {
		if accepted[i].score != accepted[j].score {
			return accepted[i].score > accepted[j].score
		}
		return accepted[i].item.ID < accepted[j].item.ID
	})
	return accepted
}

// notifyPair alerts both item owners. Delivery is marked per endpoint as soon as
// that side's owner has been reached, so a partial failure leaves only the failed
// side pending and the sweeper never re-alerts an owner who already got the push.
func (p *Pipeline) notifyPair(ctx context.Context, a, b models.Item, m models.Match) {
	ida, idb := models.CanonicalPair(a.ID, b.ID)
	for _, dir := range [2][2]models.Item{{a, b}, {b, a}} {
		owner, counterpart := dir[0], dir[1]
		if m.NotifiedFor(owner.ID) != nil {
			continue
		}
		if owner.UserID != nil {
			summary := models.MatchSummary{
				ItemID:          owner.ID,
				ItemName:        owner.Name,
				CounterpartID:   counterpart.ID,
				CounterpartName: counterpart.Name,
				Status:          counterpart.Status,
				Barcode:         counterpart.Barcode(),
				Score:           m.Score,
			}
			if err := p.deliverWithRetry(ctx, *owner.UserID, summary); err != nil {
				p.logger.Errorf("match: notify user %d about items (%d,%d) failed: %v", *owner.UserID, a.ID, b.ID, err)
				continue
			}
		}
		// anonymous side counts as delivered, nobody to alert
		if err := p.matches.MarkNotified(ctx, ida, idb, owner.ID); err != nil {
			p.logger.Errorf("match: mark notified (%d,%d) for item %d failed: %v", ida, idb, owner.ID, err)
		}
	}
}

func (p *Pipeline) deliverWithRetry(ctx context.Context, userID int, summary models.MatchSummary) error {
	backoff := p.cfg.NotifyBackoff
	var lastErr error
	for attempt := 0; attempt < p.cfg.NotifyAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
		if lastErr = p.notifier.Deliver(ctx, userID, summary); lastErr == nil {
			return nil
		}
	}
	return lastErr
}

// SweepUnnotified re-drives notification for matches that were persisted but never
// fully delivered.
func (p *Pipeline) SweepUnnotified(ctx context.Context, limit int) (int, error) {
	pending, err := p.matches.ListUnnotified(ctx, limit)
	if err != nil {
		return 0, err
	}
	processed := 0
	for _, m := range pending {
		a, err := p.source.Get(ctx, m.ItemAID)
		if err != nil {
			if !errors.Is(err, models.ErrItemNotFound) {
				p.logger.Errorf("match: sweep load item %d failed: %v", m.ItemAID, err)
			}
			continue
		}
		b, err := p.source.Get(ctx, m.ItemBID)
		if err != nil {
			if !errors.Is(err, models.ErrItemNotFound) {
				p.logger.Errorf("match: sweep load item %d failed: %v", m.ItemBID, err)
			}
			continue
		}
		p.notifyPair(ctx, a, b, m)
		processed++
	}
	return processed, nil
}
