package discussion

type CreateDiscussionDTO struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

type CreateReplyDTO struct {
	DiscussionID string `json:"discussionId"`
	Content      string `json:"content"`
}

type VoteDTO struct {
	Type VoteType `json:"type"`
}

type VoteResponse struct {
	Message string    `json:"message"`
	State   VoteState `json:"state"`
	Stats   Stats     `json:"stats"`
}

// Page is one slice of the newest-first discussion list.
type Page struct {
	Items      []Discussion
	NextCursor string
}
