package technical

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TestCase struct {
	Input          string `json:"input" yaml:"input"`
	ExpectedOutput string `json:"expected_output" yaml:"expected_output"`
}

type Question struct {
	ID          uuid.UUID                     `gorm:"type:uuid;primaryKey" json:"id" yaml:"-"`
	Title       string                        `gorm:"type:text;not null" json:"title" yaml:"title"`
	Description string                        `gorm:"type:text;not null" json:"description" yaml:"description"`
	Difficulty  string                        `gorm:"type:text;not null;default:Easy" json:"difficulty" yaml:"difficulty"`
	Topic       string                        `gorm:"type:text;index" json:"topic" yaml:"topic"`
	TestCases   datatypes.JSONSlice[TestCase] `gorm:"not null" json:"test_cases" yaml:"test_cases"`
	CreatedAt   time.Time                     `json:"created_at" yaml:"-"`
}

func (Question) TableName() string { return "technical_questions" }

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

type CaseResult struct {
	Input    string `json:"input"`
	Expected string `json:"expected_output"`
	Actual   string `json:"actual_output"`
	Status   string `json:"status"`
	Passed   bool   `json:"passed"`
}

type Submission struct {
	ID          uuid.UUID                       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID                       `gorm:"type:uuid;not null;index" json:"user_id"`
	QuestionID  uuid.UUID                       `gorm:"type:uuid;not null;index" json:"question_id"`
	Language    string                          `gorm:"type:text;not null" json:"language"`
	Passed      int                             `gorm:"not null" json:"passed"`
	Total       int                             `gorm:"not null" json:"total"`
	Status      string                          `gorm:"type:text;not null" json:"status"`
	Results     datatypes.JSONSlice[CaseResult] `gorm:"not null" json:"results"`
	SubmittedAt time.Time                       `gorm:"not null" json:"submitted_at"`
}

func (Submission) TableName() string { return "technical_submissions" }

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
