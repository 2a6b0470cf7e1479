package speedtest

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuantitativeQuestion stores the correct answer as option text.
type QuantitativeQuestion struct {
	ID            uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id" yaml:"-"`
	Topic         string                      `gorm:"type:text;not null;index:idx_quant_topic_level" json:"topic" yaml:"topic"`
	Level         Level                       `gorm:"type:text;not null;index:idx_quant_topic_level" json:"level" yaml:"level"`
	Question      string                      `gorm:"type:text;not null" json:"question" yaml:"question"`
	Options       datatypes.JSONSlice[string] `gorm:"not null" json:"options" yaml:"options"`
	CorrectAnswer string                      `gorm:"type:text;not null" json:"-" yaml:"correct_answer"`
	Explanation   string                      `gorm:"type:text" json:"-" yaml:"explanation"`
	CreatedAt     time.Time                   `json:"-" yaml:"-"`
}

func (QuantitativeQuestion) TableName() string { return "quantitative_questions" }

func (q *QuantitativeQuestion) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// Session is the snapshot of the question set issued to a user.
type Session struct {
	ID          uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Topic       string                      `gorm:"type:text;not null"`
	Level       Level                       `gorm:"type:text;not null"`
	QuestionIDs datatypes.JSONSlice[string] `gorm:"column:question_ids;not null"`
	TimeLimit   int                         `gorm:"not null"`
	IssuedAt    time.Time                   `gorm:"not null"`
}

func (Session) TableName() string { return "speed_test_sessions" }

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type Result struct {
	QuestionID      string `json:"question_id"`
	UserAnswerIndex *int   `json:"user_answer_index"`
	CorrectAnswer   string `json:"correct_answer"`
	IsCorrect       bool   `json:"is_correct"`
}

type Submission struct {
	ID             uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID                   `gorm:"type:uuid;not null;index:idx_speed_sub_user_time" json:"user_id"`
	SessionID      uuid.UUID                   `gorm:"type:uuid;not null;index" json:"session_id"`
	Topic          string                      `gorm:"type:text;not null" json:"topic"`
	Level          Level                       `gorm:"type:text;not null" json:"level"`
	Score          int                         `gorm:"not null" json:"score"`
	TotalQuestions int                         `gorm:"not null" json:"total_questions"`
	Results        datatypes.JSONSlice[Result] `gorm:"not null" json:"results"`
	SubmittedAt    time.Time                   `gorm:"not null;index:idx_speed_sub_user_time" json:"submitted_at"`
}

func (Submission) TableName() string { return "speed_test_submissions" }

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
