package game

import "github.com/lupine-games/werewolf-core/core/events"

// Vote is one standing vote. Re-votes replace the record in place so a
// voter keeps their original position in tally-discovery order.
type Vote struct {
	VoterID  string
	TargetID string
}

// Ballot collects one voting round (police election or day elimination).
// It is owned by the Game and cleared after each round resolves; a round
// resolves exactly once.
type Ballot struct {
	purpose    events.BallotPurpose
	voters     map[string]bool
	candidates map[string]bool
	votes      []Vote
}

func newBallot(purpose events.BallotPurpose, voterIDs, candidateIDs []string) *Ballot {
	ballot := &Ballot{
		purpose:    purpose,
		voters:     make(map[string]bool, len(voterIDs)),
		candidates: make(map[string]bool, len(candidateIDs)),
	}
	for _, id := range voterIDs {
		ballot.voters[id] = true
	}
	for _, id := range candidateIDs {
		ballot.candidates[id] = true
	}
	return ballot
}

// cast records a vote, replacing any prior vote from the same voter.
func (b *Ballot) cast(voterID, targetID string) {
	for i, record := range b.votes {
		if record.VoterID == voterID {
			b.votes[i].TargetID = targetID
			return
		}
	}
	b.votes = append(b.votes, Vote{VoterID: voterID, TargetID: targetID})
}

// complete reports whether every eligible voter has a standing vote.
func (b *Ballot) complete() bool {
	return len(b.votes) == len(b.voters)
}

// tally counts standing votes per target.
func (b *Ballot) tally() map[string]int {
	counts := make(map[string]int, len(b.votes))
	for _, record := range b.votes {
		counts[record.TargetID]++
	}
	return counts
}

// winner returns the plurality target. Ties break to the first target in
// tally-discovery order: targets are discovered in the order of their first
// standing vote, and only a strictly higher count displaces the leader. An
// empty tally yields no winner.
func (b *Ballot) winner() (string, bool) {
	counts := b.tally()

	var leader string
	leaderCount := 0
	seen := make(map[string]bool, len(counts))
	for _, record := range b.votes {
		if seen[record.TargetID] {
			continue
		}
		seen[record.TargetID] = true
		if counts[record.TargetID] > leaderCount {
			leader = record.TargetID
			leaderCount = counts[record.TargetID]
		}
	}

	return leader, leaderCount > 0
}

// PluralityWinner applies the ballot tie-break rule to a standalone vote
// sequence, used for the werewolves' victim choice. Abstentions (empty
// target ids) are skipped.
func PluralityWinner(votes []Vote) (string, bool) {
	ballot := &Ballot{}
	for _, record := range votes {
		if record.TargetID == "" {
			continue
		}
		ballot.cast(record.VoterID, record.TargetID)
	}
	return ballot.winner()
}
