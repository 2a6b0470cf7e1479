package speedtest

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/crackit360/crackit360-api/internal/apperr"
	"github.com/crackit360/crackit360-api/internal/config"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	DefaultQuestions = 15
	maxQuestions     = 50
	maxSubmissions   = 50
)

type Service interface {
	TimeLimit(level string, questions int) (*TimeLimitResponse, error)
	Questions(ctx context.Context, userID uuid.UUID, topic, level string, limit int) (*QuestionsResponse, error)
	Submit(ctx context.Context, userID uuid.UUID, dto SubmitDTO) (*SubmitResponse, error)
	Submissions(ctx context.Context, userID uuid.UUID) (*SubmissionsResponse, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) TimeLimit(level string, questions int) (*TimeLimitResponse, error) {
	l, ok := ParseLevel(level)
	if !ok {
		return nil, apperr.Validation("Invalid level")
	}
	if questions <= 0 {
		questions = DefaultQuestions
	}
	return &TimeLimitResponse{TimeLimit: int(l.TimeLimit(questions).Seconds())}, nil
}

func (s *service) Questions(ctx context.Context, userID uuid.UUID, topic, level string, limit int) (*QuestionsResponse, error) {
	log := config.WithContext(ctx)

	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, apperr.Validation("topic is required")
	}
	l, ok := ParseLevel(level)
	if !ok {
		return nil, apperr.Validation("Invalid level")
	}
	if limit <= 0 {
		limit = DefaultQuestions
	}
	if limit > maxQuestions {
		limit = maxQuestions
	}

	questions, err := s.repo.FindQuestions(ctx, topic, l, limit)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if len(questions) == 0 {
		return nil, apperr.NotFound("No questions found for this topic and level")
	}

	ids := make([]string, len(questions))
	for i, q := range questions {
		ids[i] = q.ID.String()
	}
	session := &Session{
		UserID:      userID,
		Topic:       topic,
		Level:       l,
		QuestionIDs: ids,
		TimeLimit:   int(l.TimeLimit(len(questions)).Seconds()),
		IssuedAt:    s.now().UTC(),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, apperr.Internal(err)
	}

	log.WithFields(logrus.Fields{
		"session_id": session.ID,
		"topic":      topic,
		"level":      l,
		"questions":  len(questions),
	}).Info("Speed test issued")

	return &QuestionsResponse{
		SessionID: session.ID,
		TimeLimit: session.TimeLimit,
		Questions: questions,
	}, nil
}

func (s *service) Submit(ctx context.Context, userID uuid.UUID, dto SubmitDTO) (*SubmitResponse, error) {
	log := config.WithContext(ctx)

	sessionID, err := uuid.Parse(strings.TrimSpace(dto.SessionID))
	if err != nil {
		return nil, apperr.Validation("invalid session_id")
	}

	session, err := s.repo.FindSession(ctx, sessionID, userID)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, apperr.NotFound("Speed test session not found")
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}

	bank, err := s.repo.QuestionsByID(ctx, session.QuestionIDs)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	results := Grade(session.QuestionIDs, bank, dto.Answers)
	score := 0
	for _, r := range results {
		if r.IsCorrect {
			score++
		}
	}

	sub := &Submission{
		UserID:         userID,
		SessionID:      session.ID,
		Topic:          session.Topic,
		Level:          session.Level,
		Score:          score,
		TotalQuestions: len(session.QuestionIDs),
		Results:        results,
		SubmittedAt:    s.now().UTC(),
	}
	if err := s.repo.CreateSubmission(ctx, sub); err != nil {
		return nil, apperr.Internal(err)
	}

	log.WithFields(logrus.Fields{
		"session_id": session.ID,
		"score":      score,
		"total":      sub.TotalQuestions,
	}).Info("Speed test submitted")

	return &SubmitResponse{
		Message: "Test submitted successfully",
		Score:   score,
		Total:   sub.TotalQuestions,
		Details: results,
	}, nil
}

func (s *service) Submissions(ctx context.Context, userID uuid.UUID) (*SubmissionsResponse, error) {
	subs, err := s.repo.ListSubmissions(ctx, userID, maxSubmissions)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if subs == nil {
		subs = []Submission{}
	}
	return &SubmissionsResponse{Submissions: subs}, nil
}

// Grade scores answers against the issued ids in order. Missing, null and
// out-of-range answers are incorrect, as are questions no longer in bank.
func Grade(issued []string, bank map[string]QuantitativeQuestion, answers []*int) []Result {
	results := make([]Result, len(issued))
	for i, id := range issued {
		res := Result{QuestionID: id}
		if i < len(answers) {
			res.UserAnswerIndex = answers[i]
		}

		q, ok := bank[id]
		if ok {
			res.CorrectAnswer = q.CorrectAnswer
			if idx := res.UserAnswerIndex; idx != nil && *idx >= 0 && *idx < len(q.Options) {
				res.IsCorrect = q.Options[*idx] == q.CorrectAnswer
			}
		}
		results[i] = res
	}
	return results
}
