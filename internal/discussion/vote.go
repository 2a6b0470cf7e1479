package discussion

// VoteChange is the outcome of toggling a vote: the state the user ends in
// and the counter deltas to apply.
type VoteChange struct {
	Next      VoteState
	DeltaUp   int
	DeltaDown int
}

// Transition applies requested to the user's current vote (nil when the user
// has not voted). Repeating the current vote removes it.
func Transition(current *VoteType, requested VoteType) VoteChange {
	if current == nil {
		if requested == Upvote {
			return VoteChange{Next: Upvoted, DeltaUp: 1}
		}
		return VoteChange{Next: Downvoted, DeltaDown: 1}
	}

	switch {
	case *current == Upvote && requested == Upvote:
		return VoteChange{Next: NoVote, DeltaUp: -1}
	case *current == Downvote && requested == Downvote:
		return VoteChange{Next: NoVote, DeltaDown: -1}
	case requested == Upvote:
		return VoteChange{Next: Upvoted, DeltaUp: 1, DeltaDown: -1}
	default:
		return VoteChange{Next: Downvoted, DeltaUp: -1, DeltaDown: 1}
	}
}
