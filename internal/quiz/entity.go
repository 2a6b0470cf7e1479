package quiz

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const DefaultTrack = "General"

type Question struct {
	ID            uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id" yaml:"-"`
	Question      string                      `gorm:"type:text;not null" json:"question" yaml:"question"`
	Options       datatypes.JSONSlice[string] `gorm:"not null" json:"options" yaml:"options"`
	CorrectAnswer int                         `gorm:"not null" json:"correctAnswer" yaml:"correct_answer"`
	Explanation   string                      `gorm:"type:text" json:"explanation" yaml:"explanation"`
	Difficulty    string                      `gorm:"type:text;not null;default:Easy" json:"difficulty" yaml:"difficulty"`
	Topic         string                      `gorm:"type:text;not null;default:General;index" json:"topic" yaml:"topic"`
	CreatedAt     time.Time                   `gorm:"index" json:"-" yaml:"-"`
}

func (Question) TableName() string { return "quiz_questions" }

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// Attempt is the latest projection for a user: the questions already served
// and the scores of the most recent submission.
type Attempt struct {
	UserID       uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	AttemptedIDs datatypes.JSONSlice[string] `gorm:"column:attempted_ids"`
	QuizScore    int                         `gorm:"not null;default:0"`
	BonusScore   int                         `gorm:"not null;default:0"`
	TotalScore   int                         `gorm:"not null;default:0"`
	Accuracy     float64                     `gorm:"not null;default:0"`
	TimeTaken    float64                     `gorm:"not null;default:0"`
	Date         *time.Time
	UpdatedAt    time.Time
}

func (Attempt) TableName() string { return "quiz_attempts" }

// AttemptRecord is one submission in the append-only history.
type AttemptRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_quiz_history_user_date"`
	Track      string    `gorm:"type:text;not null;default:General"`
	QuizScore  int       `gorm:"not null"`
	BonusScore int       `gorm:"not null"`
	TotalScore int       `gorm:"not null"`
	Accuracy   float64   `gorm:"not null"`
	TimeTaken  float64   `gorm:"not null"`
	Date       time.Time `gorm:"not null;index:idx_quiz_history_user_date"`
}

func (AttemptRecord) TableName() string { return "quiz_attempt_history" }

func (r *AttemptRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
