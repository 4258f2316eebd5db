package match

import (
	"context"
	"testing"

	"acheiBack/internal/models"
)

type stubSource struct {
	items   map[int]models.Item
	pools   map[string][]models.Item
	filters []CandidateFilter
}

func poolKey(f CandidateFilter) string {
	key := f.Status
	if f.CategoryID != nil {
		key += ":cat"
	}
	if f.LocationID != nil {
		key += ":loc"
	}
	return key
}

func (s *stubSource) Get(ctx context.Context, id int) (models.Item, error) {
	item, ok := s.items[id]
	if !ok {
		return models.Item{}, models.ErrItemNotFound
	}
	return item, nil
}

func (s *stubSource) ListCandidates(ctx context.Context, f CandidateFilter) ([]models.Item, error) {
	s.filters = append(s.filters, f)
	pool := s.pools[poolKey(f)]
	if f.Limit > 0 && len(pool) > f.Limit {
		pool = pool[:f.Limit]
	}
	return pool, nil
}

func foundItems(n int) []models.Item {
	items := make([]models.Item, n)
	for i := range items {
		items[i] = models.Item{ID: 100 + i, Status: models.StatusFound}
	}
	return items
}

func TestIndexUsesCategoryAndLocationFilter(t *testing.T) {
	source := &stubSource{pools: map[string][]models.Item{
		"found:cat:loc": foundItems(8),
	}}
	ix := NewIndex(source, 5, 200)

	got, err := ix.Candidates(context.Background(), lostItem(1))
	if err != nil {
		t.Fatalf("Candidates error: %v", err)
	}
	if len(got) != 8 {
		t.Fatalf("expected 8 candidates, got %d", len(got))
	}
	if len(source.filters) != 1 {
		t.Fatalf("expected a single query, got %d", len(source.filters))
	}
	if source.filters[0].CategoryID == nil || source.filters[0].LocationID == nil {
		t.Fatalf("expected category+location filter, got %+v", source.filters[0])
	}
}

func TestIndexFallsBackToCategoryOnly(t *testing.T) {
	source := &stubSource{pools: map[string][]models.Item{
		"found:cat:loc": foundItems(2),
		"found:cat":     foundItems(6),
	}}
	ix := NewIndex(source, 5, 200)

	got, err := ix.Candidates(context.Background(), lostItem(1))
	if err != nil {
		t.Fatalf("Candidates error: %v", err)
	}
	if len(got) != 6 {
		t.Fatalf("expected category-only pool of 6, got %d", len(got))
	}
	if len(source.filters) != 2 {
		t.Fatalf("expected two queries, got %d", len(source.filters))
	}
	if source.filters[1].LocationID != nil {
		t.Fatalf("second query should drop the location filter")
	}
}

func TestIndexFallsBackToUnfilteredCappedScan(t *testing.T) {
	source := &stubSource{pools: map[string][]models.Item{
		"found": foundItems(300),
	}}
	ix := NewIndex(source, 5, 200)

	got, err := ix.Candidates(context.Background(), lostItem(1))
	if err != nil {
		t.Fatalf("Candidates error: %v", err)
	}
	if len(got) != 200 {
		t.Fatalf("expected pool capped at 200, got %d", len(got))
	}
	last := source.filters[len(source.filters)-1]
	if last.CategoryID != nil || last.LocationID != nil {
		t.Fatalf("final query should be unfiltered, got %+v", last)
	}
	if last.Limit != 200 {
		t.Fatalf("expected limit 200, got %d", last.Limit)
	}
}

func TestIndexSparseItemSkipsAttributeQueries(t *testing.T) {
	source := &stubSource{pools: map[string][]models.Item{
		"lost": foundItems(3),
	}}
	ix := NewIndex(source, 5, 200)

	item := models.Item{ID: 1, Status: models.StatusFound}
	if _, err := ix.Candidates(context.Background(), item); err != nil {
		t.Fatalf("Candidates error: %v", err)
	}
	if len(source.filters) != 1 {
		t.Fatalf("sparse item should go straight to the capped scan, got %d queries", len(source.filters))
	}
}

func TestIndexRejectsInvalidStatus(t *testing.T) {
	ix := NewIndex(&stubSource{}, 5, 200)

	if _, err := ix.Candidates(context.Background(), models.Item{ID: 1, Status: "stolen"}); err == nil {
		t.Fatal("expected error for invalid status")
	}
}
