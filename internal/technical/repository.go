package technical

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrQuestionNotFound = errors.New("technical question not found")

type Repository interface {
	CreateQuestions(ctx context.Context, questions []Question) error
	ListQuestions(ctx context.Context) ([]Question, error)
	FindQuestion(ctx context.Context, id uuid.UUID) (*Question, error)
	CreateSubmission(ctx context.Context, s *Submission) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateQuestions(ctx context.Context, questions []Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&questions).Error
}

func (r *repository) ListQuestions(ctx context.Context) ([]Question, error) {
	var out []Question
	err := r.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&out).Error
	return out, err
}

func (r *repository) FindQuestion(ctx context.Context, id uuid.UUID) (*Question, error) {
	var q Question
	err := r.db.WithContext(ctx).First(&q, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *repository) CreateSubmission(ctx context.Context, s *Submission) error {
	return r.db.WithContext(ctx).Create(s).Error
}
