package match

import (
	"context"

	"acheiBack/internal/models"
)

// ItemSource is the read-only view over the item record store required by the
// matching subsystem.
type ItemSource interface {
	Get(ctx context.Context, id int) (models.Item, error)
	ListCandidates(ctx context.Context, f CandidateFilter) ([]models.Item, error)
}

// CandidateFilter narrows the candidate pool by status and optional attribute
// equality. Limit caps the result size.
type CandidateFilter struct {
	Status     string
	CategoryID *int
	LocationID *int
	Limit      int
}

// Index produces a bounded candidate pool of opposite-status items for a given item.
// It filters by category and location first, relaxes to category only, then to an
// unfiltered capped scan, so that even items with sparse metadata get a non-trivial
// pool to score against.
type Index struct {
	source  ItemSource
	minPool int
	maxCand int
}

func NewIndex(source ItemSource, minPool, maxCandidates int) *Index {
	return &Index{source: source, minPool: minPool, maxCand: maxCandidates}
}

func (ix *Index) Candidates(ctx context.Context, item models.Item) ([]models.Item, error) {
	opposite := models.OppositeStatus(item.Status)
	if opposite == "" {
		return nil, models.ErrInvalidItemStatus
	}

	if item.CategoryID != nil && item.LocationID != nil {
		items, err := ix.source.ListCandidates(ctx, CandidateFilter{
			Status:     opposite,
			CategoryID: item.CategoryID,
			LocationID: item.LocationID,
			Limit:      ix.maxCand,
		})
		if err != nil {
			return nil, err
		}
		if len(items) >= ix.minPool {
			return items, nil
		}
	}

	if item.CategoryID != nil {
		items, err := ix.source.ListCandidates(ctx, CandidateFilter{
			Status:     opposite,
			CategoryID: item.CategoryID,
			Limit:      ix.maxCand,
		})
		if err != nil {
			return nil, err
		}
		if len(items) >= ix.minPool {
			return items, nil
		}
	}

	return ix.source.ListCandidates(ctx, CandidateFilter{
		Status: opposite,
		Limit:  ix.maxCand,
	})
}
