package match

import (
	"context"
	"errors"
	"testing"
	"time"

	"acheiBack/internal/config"
	"acheiBack/internal/models"
)

type testLogger struct{}

func (testLogger) Infof(string, ...interface{})  {}
func (testLogger) Errorf(string, ...interface{}) {}

type memMatchStore struct {
	rows map[[2]int]models.Match
}

func newMemMatchStore() *memMatchStore {
	return &memMatchStore{rows: make(map[[2]int]models.Match)}
}

func (s *memMatchStore) Upsert(ctx context.Context, m models.Match) (bool, error) {
	key := [2]int{m.ItemAID, m.ItemBID}
	if _, ok := s.rows[key]; ok {
		return false, nil
	}
	s.rows[key] = m
	return true, nil
}

func (s *memMatchStore) MarkNotified(ctx context.Context, a, b, itemID int) error {
	key := [2]int{a, b}
	m, ok := s.rows[key]
	if !ok {
		return models.ErrNoRecord
	}
	now := time.Now()
	if m.ItemAID == itemID {
		m.NotifiedAAt = &now
	} else {
		m.NotifiedBAt = &now
	}
	s.rows[key] = m
	return nil
}

func (s *memMatchStore) ListUnnotified(ctx context.Context, limit int) ([]models.Match, error) {
	var pending []models.Match
	for _, m := range s.rows {
		if m.NotifiedAAt == nil || m.NotifiedBAt == nil {
			pending = append(pending, m)
		}
	}
	return pending, nil
}

type memJobStore struct {
	jobs map[int]models.MatchJob
}

func newMemJobStore() *memJobStore {
	return &memJobStore{jobs: make(map[int]models.MatchJob)}
}

func (s *memJobStore) Schedule(ctx context.Context, job models.MatchJob) error {
	s.jobs[job.ItemID] = job
	return nil
}

func (s *memJobStore) ListDue(ctx context.Context, now time.Time) ([]models.MatchJob, error) {
	var due []models.MatchJob
	for _, job := range s.jobs {
		if !job.RunAt.After(now) {
			due = append(due, job)
		}
	}
	return due, nil
}

func (s *memJobStore) Finish(ctx context.Context, itemID, version int) error {
	if job, ok := s.jobs[itemID]; ok && job.Version == version {
		delete(s.jobs, itemID)
	}
	return nil
}

type stubNotifier struct {
	delivered []int
	failures  int
	failFor   map[int]int // remaining failures per user
}

func (n *stubNotifier) Deliver(ctx context.Context, userID int, summary models.MatchSummary) error {
	if n.failFor[userID] > 0 {
		n.failFor[userID]--
		return errors.New("push gateway unavailable")
	}
	if n.failures > 0 {
		n.failures--
		return errors.New("push gateway unavailable")
	}
	n.delivered = append(n.delivered, userID)
	return nil
}

func (n *stubNotifier) deliveredTo(userID int) int {
	var count int
	for _, id := range n.delivered {
		if id == userID {
			count++
		}
	}
	return count
}

func testConfig() config.MatcherConfig {
	cfg := config.MatcherConfig{
		NotifyBackoff: time.Millisecond,
		Tick:          time.Hour,
	}
	cfg.Normalize()
	return cfg
}

// pairFixture is the end-to-end scenario: a lost and a found item in the same
// category and location with identical names.
func pairFixture() (*stubSource, models.Item, models.Item) {
	lost := models.Item{ID: 1, UserID: intp(10), Name: "Casio watch", Status: models.StatusLost, CategoryID: intp(1), LocationID: intp(2), Version: 1}
	found := models.Item{ID: 2, UserID: intp(20), Name: "Casio watch", Status: models.StatusFound, CategoryID: intp(1), LocationID: intp(2), Version: 1}
	source := &stubSource{
		items: map[int]models.Item{1: lost, 2: found},
		pools: map[string][]models.Item{"found:cat:loc": {found}, "found:cat": {found}, "found": {found}},
	}
	return source, lost, found
}

func TestProcessPersistsMatchAndNotifiesBothOwners(t *testing.T) {
	source, lost, _ := pairFixture()
	matches := newMemMatchStore()
	jobs := newMemJobStore()
	notifier := &stubNotifier{}
	p := New(source, matches, jobs, notifier, testLogger{}, testConfig())

	job := models.MatchJob{ItemID: lost.ID, Version: lost.Version}
	jobs.jobs[job.ItemID] = job
	if err := p.process(context.Background(), job); err != nil {
		t.Fatalf("process error: %v", err)
	}

	m, ok := matches.rows[[2]int{1, 2}]
	if !ok {
		t.Fatalf("expected match (1,2) persisted, rows: %v", matches.rows)
	}
	if m.Score < 0.6 {
		t.Fatalf("expected score >= 0.6, got %f", m.Score)
	}
	if m.NotifiedAAt == nil || m.NotifiedBAt == nil {
		t.Fatal("expected both sides marked as notified")
	}
	if len(notifier.delivered) != 2 {
		t.Fatalf("expected 2 deliveries, got %v", notifier.delivered)
	}
	if len(jobs.jobs) != 0 {
		t.Fatal("expected job to be finished")
	}
}

func TestProcessIsIdempotent(t *testing.T) {
	source, lost, _ := pairFixture()
	matches := newMemMatchStore()
	notifier := &stubNotifier{}
	p := New(source, matches, newMemJobStore(), notifier, testLogger{}, testConfig())

	job := models.MatchJob{ItemID: lost.ID, Version: lost.Version}
	for i := 0; i < 2; i++ {
		if err := p.process(context.Background(), job); err != nil {
			t.Fatalf("process run %d error: %v", i, err)
		}
	}

	if len(matches.rows) != 1 {
		t.Fatalf("expected a single match row, got %d", len(matches.rows))
	}
	if len(notifier.delivered) != 2 {
		t.Fatalf("expected owners notified once each, got %v", notifier.delivered)
	}
}

func TestProcessStaleVersionIsNoOp(t *testing.T) {
	source, lost, _ := pairFixture()
	matches := newMemMatchStore()
	jobs := newMemJobStore()
	notifier := &stubNotifier{}
	p := New(source, matches, jobs, notifier, testLogger{}, testConfig())

	// item was edited after the job was captured
	edited := lost
	edited.Version = 2
	source.items[lost.ID] = edited

	stale := models.MatchJob{ItemID: lost.ID, Version: 1}
	jobs.jobs[stale.ItemID] = models.MatchJob{ItemID: lost.ID, Version: 2}
	if err := p.process(context.Background(), stale); err != nil {
		t.Fatalf("process error: %v", err)
	}

	if len(matches.rows) != 0 {
		t.Fatal("stale job must not persist matches")
	}
	if len(notifier.delivered) != 0 {
		t.Fatal("stale job must not notify")
	}
	if _, ok := jobs.jobs[lost.ID]; !ok {
		t.Fatal("the newer job must survive a stale finish")
	}
}

func TestProcessDeletedItemAbortsSilently(t *testing.T) {
	source, lost, _ := pairFixture()
	delete(source.items, lost.ID)
	jobs := newMemJobStore()
	jobs.jobs[lost.ID] = models.MatchJob{ItemID: lost.ID, Version: 1}
	p := New(source, newMemMatchStore(), jobs, &stubNotifier{}, testLogger{}, testConfig())

	if err := p.process(context.Background(), models.MatchJob{ItemID: lost.ID, Version: 1}); err != nil {
		t.Fatalf("expected silent no-op, got %v", err)
	}
	if len(jobs.jobs) != 0 {
		t.Fatal("expected job finished for deleted item")
	}
}

func TestProcessSkipsNotificationForOwnerlessItem(t *testing.T) {
	source, lost, found := pairFixture()
	found.UserID = nil
	source.items[found.ID] = found
	source.pools = map[string][]models.Item{"found:cat:loc": {found}}
	matches := newMemMatchStore()
	notifier := &stubNotifier{}
	p := New(source, matches, newMemJobStore(), notifier, testLogger{}, testConfig())

	if err := p.process(context.Background(), models.MatchJob{ItemID: lost.ID, Version: 1}); err != nil {
		t.Fatalf("process error: %v", err)
	}

	if len(notifier.delivered) != 1 {
		t.Fatalf("expected a single delivery, got %v", notifier.delivered)
	}
	if m := matches.rows[[2]int{1, 2}]; m.NotifiedAAt == nil || m.NotifiedBAt == nil {
		t.Fatal("pair with one anonymous side still counts as notified")
	}
}

func TestNotifyRetryExhaustionLeavesMatchUnnotified(t *testing.T) {
	source, lost, _ := pairFixture()
	matches := newMemMatchStore()
	notifier := &stubNotifier{failures: 100}
	p := New(source, matches, newMemJobStore(), notifier, testLogger{}, testConfig())

	if err := p.process(context.Background(), models.MatchJob{ItemID: lost.ID, Version: 1}); err != nil {
		t.Fatalf("process error: %v", err)
	}

	m, ok := matches.rows[[2]int{1, 2}]
	if !ok {
		t.Fatal("match must stay persisted after notify failure")
	}
	if m.NotifiedAAt != nil || m.NotifiedBAt != nil {
		t.Fatal("match must be flagged unnotified after retry exhaustion")
	}

	// gateway recovers, the sweeper re-drives delivery
	notifier.failures = 0
	processed, err := p.SweepUnnotified(context.Background(), 10)
	if err != nil {
		t.Fatalf("sweep error: %v", err)
	}
	if processed != 1 {
		t.Fatalf("expected 1 swept match, got %d", processed)
	}
	if m := matches.rows[[2]int{1, 2}]; m.NotifiedAAt == nil || m.NotifiedBAt == nil {
		t.Fatal("expected match notified after sweep")
	}
	if len(notifier.delivered) != 2 {
		t.Fatalf("expected both owners delivered by sweep, got %v", notifier.delivered)
	}
}

func TestPartialDeliveryOnlyRetriesFailedOwner(t *testing.T) {
	source, lost, _ := pairFixture()
	matches := newMemMatchStore()
	notifier := &stubNotifier{failFor: map[int]int{20: 100}}
	p := New(source, matches, newMemJobStore(), notifier, testLogger{}, testConfig())

	if err := p.process(context.Background(), models.MatchJob{ItemID: lost.ID, Version: 1}); err != nil {
		t.Fatalf("process error: %v", err)
	}

	m, ok := matches.rows[[2]int{1, 2}]
	if !ok {
		t.Fatal("match must stay persisted after partial notify failure")
	}
	if m.NotifiedAAt == nil {
		t.Fatal("delivered side must be marked notified")
	}
	if m.NotifiedBAt != nil {
		t.Fatal("failed side must stay pending")
	}

	// gateway recovers for the failed owner
	notifier.failFor = nil
	processed, err := p.SweepUnnotified(context.Background(), 10)
	if err != nil {
		t.Fatalf("sweep error: %v", err)
	}
	if processed != 1 {
		t.Fatalf("expected 1 swept match, got %d", processed)
	}
	if got := notifier.deliveredTo(10); got != 1 {
		t.Fatalf("owner 10 must not be alerted again, delivered %d times", got)
	}
	if got := notifier.deliveredTo(20); got != 1 {
		t.Fatalf("expected owner 20 delivered once by sweep, delivered %d times", got)
	}
	if m := matches.rows[[2]int{1, 2}]; m.NotifiedAAt == nil || m.NotifiedBAt == nil {
		t.Fatal("expected both sides notified after sweep")
	}
}

func TestScheduleSupersedesPendingJob(t *testing.T) {
	source, lost, _ := pairFixture()
	jobs := newMemJobStore()
	p := New(source, newMemMatchStore(), jobs, &stubNotifier{}, testLogger{}, testConfig())

	if err := p.Schedule(context.Background(), lost.ID); err != nil {
		t.Fatalf("schedule error: %v", err)
	}

	edited := lost
	edited.Version = 2
	source.items[lost.ID] = edited
	if err := p.Schedule(context.Background(), lost.ID); err != nil {
		t.Fatalf("schedule error: %v", err)
	}

	if len(jobs.jobs) != 1 {
		t.Fatalf("expected one pending job, got %d", len(jobs.jobs))
	}
	if jobs.jobs[lost.ID].Version != 2 {
		t.Fatalf("expected latest version captured, got %d", jobs.jobs[lost.ID].Version)
	}
}

func TestScheduleForMissingItemIsNoOp(t *testing.T) {
	jobs := newMemJobStore()
	p := New(&stubSource{items: map[int]models.Item{}}, newMemMatchStore(), jobs, &stubNotifier{}, testLogger{}, testConfig())

	if err := p.Schedule(context.Background(), 99); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(jobs.jobs) != 0 {
		t.Fatal("no job expected for missing item")
	}
}

func TestRankOrdersByScoreThenID(t *testing.T) {
	p := New(&stubSource{}, newMemMatchStore(), newMemJobStore(), &stubNotifier{}, testLogger{}, testConfig())

	item := models.Item{ID: 1, Name: "wallet", Status: models.StatusLost, CategoryID: intp(1), LocationID: intp(2)}
	twinA := models.Item{ID: 9, Name: "wallet", Status: models.StatusFound, CategoryID: intp(1), LocationID: intp(2)}
	twinB := models.Item{ID: 3, Name: "wallet", Status: models.StatusFound, CategoryID: intp(1), LocationID: intp(2)}
	weaker := models.Item{ID: 2, Name: "wallet", Status: models.StatusFound, CategoryID: intp(1)}
	sameStatus := models.Item{ID: 4, Name: "wallet", Status: models.StatusLost, CategoryID: intp(1), LocationID: intp(2)}

	ranked := p.rank(item, []models.Item{weaker, twinA, sameStatus, twinB})
	if len(ranked) != 3 {
		t.Fatalf("expected 3 accepted candidates, got %d", len(ranked))
	}
	if ranked[0].item.ID != 3 || ranked[1].item.ID != 9 {
		t.Fatalf("expected tie broken by id (3 before 9), got %d then %d", ranked[0].item.ID, ranked[1].item.ID)
	}
	if ranked[2].item.ID != 2 {
		t.Fatalf("expected weaker candidate last, got %d", ranked[2].item.ID)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	source, _, _ := pairFixture()
	p := New(source, newMemMatchStore(), newMemJobStore(), &stubNotifier{}, testLogger{}, testConfig())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}
