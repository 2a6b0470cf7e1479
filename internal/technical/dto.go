package technical

type QuestionsResponse struct {
	Questions []Question `json:"questions"`
}

type SubmitDTO struct {
	QuestionID string `json:"question_id"`
	Language   string `json:"language"`
	Code       string `json:"code"`
}
