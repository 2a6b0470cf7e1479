package quiz

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Picker chooses which of the available questions to serve.
type Picker func(available []Question) []Question

type QuizRepository interface {
	CreateQuestions(ctx context.Context, questions []Question) error
	// ReserveQuestions picks from the questions the user has not seen and
	// records the picked ids as attempted, atomically.
	ReserveQuestions(ctx context.Context, userID uuid.UUID, pick Picker) ([]Question, error)
	CorrectAnswers(ctx context.Context, questionIDs []string) (map[string]int, error)
	GetAttempt(ctx context.Context, userID uuid.UUID) (*Attempt, error)
	RecordSubmission(ctx context.Context, record *AttemptRecord) error
	ListHistory(ctx context.Context, userID uuid.UUID, limit int) ([]AttemptRecord, error)
}

type quizRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) CreateQuestions(ctx context.Context, questions []Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&questions).Error
}

func (r *quizRepository) ReserveQuestions(ctx context.Context, userID uuid.UUID, pick Picker) ([]Question, error) {
	var selected []Question

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seed := Attempt{UserID: userID, AttemptedIDs: datatypes.JSONSlice[string]{}}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
			return err
		}

		var attempt Attempt
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&attempt, "user_id = ?", userID).Error; err != nil {
			return err
		}

		q := tx.Order("created_at ASC").Order("id ASC")
		if len(attempt.AttemptedIDs) > 0 {
			q = q.Where("id NOT IN ?", []string(attempt.AttemptedIDs))
		}
		var available []Question
		if err := q.Find(&available).Error; err != nil {
			return err
		}

		selected = pick(available)
		if len(selected) == 0 {
			return nil
		}

		attempted := append([]string{}, attempt.AttemptedIDs...)
		for _, s := range selected {
			attempted = append(attempted, s.ID.String())
		}
		return tx.Model(&Attempt{}).Where("user_id = ?", userID).
			Update("attempted_ids", datatypes.JSONSlice[string](attempted)).Error
	})
	if err != nil {
		return nil, err
	}
	return selected, nil
}

func (r *quizRepository) CorrectAnswers(ctx context.Context, questionIDs []string) (map[string]int, error) {
	out := make(map[string]int, len(questionIDs))

	// Ids that are not UUIDs match no question and would fail the uuid cast.
	ids := make([]string, 0, len(questionIDs))
	for _, id := range questionIDs {
		if _, err := uuid.Parse(id); err == nil {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return out, nil
	}

	var rows []Question
	err := r.db.WithContext(ctx).
		Select("id", "correct_answer").
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, q := range rows {
		out[q.ID.String()] = q.CorrectAnswer
	}
	return out, nil
}

func (r *quizRepository) GetAttempt(ctx context.Context, userID uuid.UUID) (*Attempt, error) {
	var attempt Attempt
	if err := r.db.WithContext(ctx).First(&attempt, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attempt, nil
}

// RecordSubmission appends to the history and upserts the latest projection
// in one transaction. attempted_ids is left untouched on conflict.
func (r *quizRepository) RecordSubmission(ctx context.Context, record *AttemptRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return err
		}

		date := record.Date
		latest := Attempt{
			UserID:       record.UserID,
			AttemptedIDs: datatypes.JSONSlice[string]{},
			QuizScore:    record.QuizScore,
			BonusScore:   record.BonusScore,
			TotalScore:   record.TotalScore,
			Accuracy:     record.Accuracy,
			TimeTaken:    record.TimeTaken,
			Date:         &date,
			UpdatedAt:    time.Now(),
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"quiz_score", "bonus_score", "total_score", "accuracy", "time_taken", "date", "updated_at",
			}),
		}).Create(&latest).Error
	})
}

func (r *quizRepository) ListHistory(ctx context.Context, userID uuid.UUID, limit int) ([]AttemptRecord, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []AttemptRecord
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
