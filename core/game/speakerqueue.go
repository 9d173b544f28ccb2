package game

// SpeakerQueue orders pending actors within a phase and drains one at a
// time. At most one current speaker exists system-wide; the queue must be
// exhausted before any phase-advance event fires.
type SpeakerQueue struct {
	pending []string
	current string
}

// Enqueue replaces the pending queue for the current sub-phase. A player
// appears at most once per batch; duplicates are dropped.
func (q *SpeakerQueue) Enqueue(ids []string) {
	q.pending = q.pending[:0]
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		q.pending = append(q.pending, id)
	}
}

// Next pops the front id and marks it the current speaker. Ids rejected by
// eligible are skipped rather than invoked, which covers players eliminated
// while still queued. Returns false once the queue is drained.
func (q *SpeakerQueue) Next(eligible func(id string) bool) (string, bool) {
	for len(q.pending) > 0 {
		id := q.pending[0]
		q.pending = q.pending[1:]
		if eligible != nil && !eligible(id) {
			continue
		}
		q.current = id
		return id, true
	}

	q.current = ""
	return "", false
}

// Current returns the current speaker id, or "" when nobody holds the floor.
func (q *SpeakerQueue) Current() string { return q.current }

// Pending reports how many actors are still queued.
func (q *SpeakerQueue) Pending() int { return len(q.pending) }
