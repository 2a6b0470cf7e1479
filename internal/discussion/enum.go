package discussion

type Status string

const (
	StatusOpen   Status = "OPEN"
	StatusClosed Status = "CLOSED"
)

var AllStatuses = []Status{
	StatusOpen,
	StatusClosed,
}

func (s Status) IsValid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type VoteType string

const (
	Upvote   VoteType = "UPVOTE"
	Downvote VoteType = "DOWNVOTE"
)

func (t VoteType) IsValid() bool {
	return t == Upvote || t == Downvote
}

// VoteState is what a user's vote on a discussion looks like after a toggle.
type VoteState string

const (
	NoVote    VoteState = "NO_VOTE"
	Upvoted   VoteState = "UPVOTED"
	Downvoted VoteState = "DOWNVOTED"
)
