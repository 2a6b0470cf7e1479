package quiz

import (
	"time"

	util "github.com/crackit360/crackit360-api/internal/utils"
	"github.com/google/uuid"
)

type QuestionsResponse struct {
	Questions []Question `json:"questions"`
}

type Answer struct {
	QuestionID string `json:"question_id"`
	Selected   *int   `json:"selected"`
}

type SubmitDTO struct {
	StudentID string             `json:"student_id"`
	Answers   []Answer           `json:"answers"`
	StartTime *util.EpochSeconds `json:"start_time"`
	Track     string             `json:"track"`
}

type SubmitResponse struct {
	Message    string  `json:"message"`
	QuizScore  int     `json:"quiz_score"`
	BonusScore int     `json:"bonus_score"`
	TotalScore int     `json:"total_score"`
	Accuracy   float64 `json:"accuracy"`
	TimeTaken  float64 `json:"time_taken"`
}

type ResultResponse struct {
	ID        uuid.UUID `json:"id"`
	Track     string    `json:"track"`
	Score     int       `json:"score"`
	Bonus     int       `json:"bonus"`
	Total     int       `json:"total"`
	Accuracy  float64   `json:"accuracy"`
	TimeTaken float64   `json:"timeTaken"`
	Date      time.Time `json:"date"`
}

type ResultsResponse struct {
	Results []ResultResponse `json:"results"`
}

type TrackStats struct {
	Attempts        int     `json:"attempts"`
	TotalScore      int     `json:"totalScore"`
	TotalAccuracy   float64 `json:"totalAccuracy"`
	BestScore       int     `json:"bestScore"`
	AverageScore    float64 `json:"averageScore"`
	AverageAccuracy float64 `json:"averageAccuracy"`
}

type StatsResponse struct {
	TotalAttempts   int                    `json:"totalAttempts"`
	AverageScore    float64                `json:"averageScore"`
	AverageAccuracy float64                `json:"averageAccuracy"`
	TotalTimeTaken  float64                `json:"totalTimeTaken"`
	TrackStats      map[string]*TrackStats `json:"trackStats"`
}

func toResultResponse(r AttemptRecord) ResultResponse {
	return ResultResponse{
		ID:        r.ID,
		Track:     r.Track,
		Score:     r.QuizScore,
		Bonus:     r.BonusScore,
		Total:     r.TotalScore,
		Accuracy:  r.Accuracy,
		TimeTaken: r.TimeTaken,
		Date:      r.Date,
	}
}
