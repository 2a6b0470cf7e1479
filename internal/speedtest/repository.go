package speedtest

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("speed test session not found")

type Repository interface {
	CreateQuestions(ctx context.Context, questions []QuantitativeQuestion) error
	FindQuestions(ctx context.Context, topic string, level Level, limit int) ([]QuantitativeQuestion, error)
	QuestionsByID(ctx context.Context, ids []string) (map[string]QuantitativeQuestion, error)
	DeleteQuestion(ctx context.Context, id uuid.UUID) error
	CreateSession(ctx context.Context, s *Session) error
	FindSession(ctx context.Context, id, userID uuid.UUID) (*Session, error)
	CreateSubmission(ctx context.Context, s *Submission) error
	ListSubmissions(ctx context.Context, userID uuid.UUID, limit int) ([]Submission, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateQuestions(ctx context.Context, questions []QuantitativeQuestion) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&questions).Error
}

func (r *repository) FindQuestions(ctx context.Context, topic string, level Level, limit int) ([]QuantitativeQuestion, error) {
	var out []QuantitativeQuestion
	err := r.db.WithContext(ctx).
		Where("topic = ? AND level = ?", topic, level).
		Order("created_at ASC").Order("id ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *repository) QuestionsByID(ctx context.Context, ids []string) (map[string]QuantitativeQuestion, error) {
	out := make(map[string]QuantitativeQuestion, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []QuantitativeQuestion
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, q := range rows {
		out[q.ID.String()] = q
	}
	return out, nil
}

func (r *repository) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&QuantitativeQuestion{}, "id = ?", id).Error
}

func (r *repository) CreateSession(ctx context.Context, s *Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// FindSession scopes the lookup to the owner, so another user's session
// reads as missing.
func (r *repository) FindSession(ctx context.Context, id, userID uuid.UUID) (*Session, error) {
	var s Session
	err := r.db.WithContext(ctx).First(&s, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) CreateSubmission(ctx context.Context, s *Submission) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) ListSubmissions(ctx context.Context, userID uuid.UUID, limit int) ([]Submission, error) {
	var out []Submission
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("submitted_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}
