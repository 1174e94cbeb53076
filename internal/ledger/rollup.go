package ledger

// Rollup is a bounded, ordered history of per-day totals. Appending past
// capacity evicts the oldest record.
type Rollup[R any] struct {
	capacity int
	records  []R
}

func NewRollup[R any](capacity int, records []R) *Rollup[R] {
	r := &Rollup[R]{capacity: capacity}
	for _, rec := range records {
		r.Append(rec)
	}
	return r
}

func (r *Rollup[R]) Append(rec R) {
	r.records = append(r.records, rec)
	if over := len(r.records) - r.capacity; over > 0 {
		r.records = append([]R(nil), r.records[over:]...)
	}
}

func (r *Rollup[R]) Records() []R {
	return append([]R(nil), r.records...)
}

func (r *Rollup[R]) Len() int { return len(r.records) }
