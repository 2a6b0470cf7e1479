package speedtest

import "github.com/google/uuid"

type QuestionsResponse struct {
	SessionID uuid.UUID              `json:"session_id"`
	TimeLimit int                    `json:"time_limit"`
	Questions []QuantitativeQuestion `json:"questions"`
}

type TimeLimitResponse struct {
	TimeLimit int `json:"timeLimit"`
}

// SubmitDTO carries one answer index per issued question, in issue order.
type SubmitDTO struct {
	SessionID string `json:"session_id"`
	Answers   []*int `json:"answers"`
}

type SubmitResponse struct {
	Message string   `json:"message"`
	Score   int      `json:"score"`
	Total   int      `json:"total"`
	Details []Result `json:"details"`
}

type SubmissionsResponse struct {
	Submissions []Submission `json:"submissions"`
}
