package events

const (
	// KindVotingStarted identifies a freshly opened ballot.
	KindVotingStarted Kind = "voting.started"
)

// BallotPurpose discriminates what an open ballot decides.
type BallotPurpose string

const (
	// BallotPolice elects the police chief.
	BallotPolice BallotPurpose = "police"
	// BallotElimination decides the day elimination.
	BallotElimination BallotPurpose = "elimination"
)

// VotingStarted marks an opened ballot with its eligible voters and
// candidates.
type VotingStarted struct {
	Base
	Day        int
	Purpose    BallotPurpose
	Voters     []Seat
	Candidates []Seat
}

// NewVotingStarted creates a voting started event.
func NewVotingStarted(day int, purpose BallotPurpose, voters, candidates []Seat) VotingStarted {
	return VotingStarted{Base: NewBase(KindVotingStarted), Day: day, Purpose: purpose, Voters: voters, Candidates: candidates}
}
