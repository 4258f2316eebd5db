package models

import "time"

// Match is a symmetric link between one lost and one found item. The pair is stored
// in canonical order (ItemAID < ItemBID) so each unordered pair has one row. Delivery
// is tracked per endpoint: a null NotifiedAAt/NotifiedBAt means that side's owner has
// not been alerted yet.
type Match struct {
	ItemAID     int        `json:"item_a_id"`
	ItemBID     int        `json:"item_b_id"`
	Score       float64    `json:"score"`
	CreatedAt   time.Time  `json:"created_at"`
	NotifiedAAt *time.Time `json:"notified_a_at,omitempty"`
	NotifiedBAt *time.Time `json:"notified_b_at,omitempty"`
}

// NotifiedFor returns the delivery timestamp of the given endpoint, nil when that
// side's owner has not been alerted.
func (m Match) NotifiedFor(itemID int) *time.Time {
	if m.ItemAID == itemID {
		return m.NotifiedAAt
	}
	return m.NotifiedBAt
}

// CanonicalPair orders two item ids ascending.
func CanonicalPair(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

// Other returns the counterpart item id for the given endpoint.
func (m Match) Other(itemID int) int {
	if m.ItemAID == itemID {
		return m.ItemBID
	}
	return m.ItemAID
}

// MatchJob is a deferred unit of work to (re-)evaluate one item's matches. Version is
// the item version captured at schedule time; a job whose version no longer matches
// the item is stale and must no-op.
type MatchJob struct {
	ItemID  int       `json:"item_id"`
	Version int       `json:"version"`
	RunAt   time.Time `json:"run_at"`
}

// MatchSummary is the payload handed to the notifier when a new match is recorded.
type MatchSummary struct {
	ItemID          int     `json:"item_id"`
	ItemName        string  `json:"item_name"`
	CounterpartID   int     `json:"counterpart_id"`
	CounterpartName string  `json:"counterpart_name"`
	Status          string  `json:"status"`
	Barcode         string  `json:"barcode"`
	Score           float64 `json:"score"`
}

// MatchView is the response shape of the item matches endpoint.
type MatchView struct {
	ID          int     `json:"id"`
	Barcode     string  `json:"barcode"`
	Status      string  `json:"status"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Score       float64 `json:"score"`
}
