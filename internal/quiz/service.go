package quiz

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/crackit360/crackit360-api/internal/apperr"
	"github.com/crackit360/crackit360-api/internal/config"
	util "github.com/crackit360/crackit360-api/internal/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	ModeRandom   = "random"
	defaultLimit = 5
	maxLimit     = 50
	maxResults   = 50
)

var ErrNoNewQuestions = errors.New("no new questions available for this user")

type QuizService interface {
	Questions(ctx context.Context, userID uuid.UUID, mode string, limit int) (*QuestionsResponse, error)
	Submit(ctx context.Context, userID uuid.UUID, dto SubmitDTO) (*SubmitResponse, error)
	Results(ctx context.Context, userID uuid.UUID) (*ResultsResponse, error)
	Stats(ctx context.Context, userID uuid.UUID) (*StatsResponse, error)
}

type quizService struct {
	repo QuizRepository
	now  func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

type Option func(*quizService)

// WithClock replaces time.Now, used to grade submissions.
func WithClock(now func() time.Time) Option {
	return func(s *quizService) { s.now = now }
}

// WithRand makes random selection reproducible.
func WithRand(rng *rand.Rand) Option {
	return func(s *quizService) { s.rng = rng }
}

func NewService(repo QuizRepository, opts ...Option) QuizService {
	s := &quizService{
		repo: repo,
		now:  time.Now,
		rng:  rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *quizService) Questions(ctx context.Context, userID uuid.UUID, mode string, limit int) (*QuestionsResponse, error) {
	log := config.WithContext(ctx)

	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if mode == "" {
		mode = ModeRandom
	}

	selected, err := s.repo.ReserveQuestions(ctx, userID, func(available []Question) []Question {
		return s.pick(available, mode, limit)
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if len(selected) == 0 {
		return nil, ErrNoNewQuestions
	}

	log.WithFields(logrus.Fields{"mode": mode, "served": len(selected)}).Debug("Quiz questions reserved")
	return &QuestionsResponse{Questions: selected}, nil
}

func (s *quizService) pick(available []Question, mode string, limit int) []Question {
	n := limit
	if n > len(available) {
		n = len(available)
	}
	if mode != ModeRandom {
		return available[:n]
	}

	shuffled := append([]Question(nil), available...)
	s.mu.Lock()
	s.rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	s.mu.Unlock()
	return shuffled[:n]
}

func (s *quizService) Submit(ctx context.Context, userID uuid.UUID, dto SubmitDTO) (*SubmitResponse, error) {
	log := config.WithContext(ctx)

	if strings.TrimSpace(dto.StudentID) == "" || len(dto.Answers) == 0 || dto.StartTime == nil || dto.StartTime.IsZero() {
		return nil, apperr.Validation("Missing data fields")
	}

	now := s.now()
	elapsed := now.Sub(dto.StartTime.Time)
	if elapsed < 0 {
		elapsed = 0
	}

	ids := make([]string, 0, len(dto.Answers))
	for _, a := range dto.Answers {
		ids = append(ids, a.QuestionID)
	}
	correctIdx, err := s.repo.CorrectAnswers(ctx, ids)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	correct := CountCorrect(dto.Answers, correctIdx)
	bonus := TimeBonus(elapsed)
	track := strings.TrimSpace(dto.Track)
	if track == "" {
		track = DefaultTrack
	}

	record := &AttemptRecord{
		UserID:     userID,
		Track:      track,
		QuizScore:  correct,
		BonusScore: bonus,
		TotalScore: correct + bonus,
		Accuracy:   Accuracy(correct, len(dto.Answers)),
		TimeTaken:  util.Round2(elapsed.Seconds()),
		Date:       now.UTC(),
	}
	if err := s.repo.RecordSubmission(ctx, record); err != nil {
		return nil, apperr.Internal(err)
	}

	log.WithFields(logrus.Fields{
		"quiz_score":  record.QuizScore,
		"bonus_score": record.BonusScore,
		"time_taken":  record.TimeTaken,
	}).Info("Quiz submitted")

	return &SubmitResponse{
		Message:    "Quiz submitted successfully",
		QuizScore:  record.QuizScore,
		BonusScore: record.BonusScore,
		TotalScore: record.TotalScore,
		Accuracy:   record.Accuracy,
		TimeTaken:  record.TimeTaken,
	}, nil
}

func (s *quizService) Results(ctx context.Context, userID uuid.UUID) (*ResultsResponse, error) {
	records, err := s.repo.ListHistory(ctx, userID, maxResults)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	out := &ResultsResponse{Results: make([]ResultResponse, 0, len(records))}
	for _, r := range records {
		out.Results = append(out.Results, toResultResponse(r))
	}
	return out, nil
}

func (s *quizService) Stats(ctx context.Context, userID uuid.UUID) (*StatsResponse, error) {
	records, err := s.repo.ListHistory(ctx, userID, 0)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return summarize(records), nil
}

func summarize(records []AttemptRecord) *StatsResponse {
	stats := &StatsResponse{TrackStats: map[string]*TrackStats{}}
	if len(records) == 0 {
		return stats
	}

	var totalScore int
	var totalAccuracy float64
	for _, r := range records {
		totalScore += r.QuizScore
		totalAccuracy += r.Accuracy
		stats.TotalTimeTaken += r.TimeTaken

		ts, ok := stats.TrackStats[r.Track]
		if !ok {
			ts = &TrackStats{}
			stats.TrackStats[r.Track] = ts
		}
		ts.Attempts++
		ts.TotalScore += r.QuizScore
		ts.TotalAccuracy += r.Accuracy
		if r.QuizScore > ts.BestScore {
			ts.BestScore = r.QuizScore
		}
	}

	for _, ts := range stats.TrackStats {
		ts.AverageScore = util.Round2(float64(ts.TotalScore) / float64(ts.Attempts))
		ts.AverageAccuracy = util.Round2(ts.TotalAccuracy / float64(ts.Attempts))
	}

	n := float64(len(records))
	stats.TotalAttempts = len(records)
	stats.AverageScore = util.Round2(float64(totalScore) / n)
	stats.AverageAccuracy = util.Round2(totalAccuracy / n)
	stats.TotalTimeTaken = util.Round2(stats.TotalTimeTaken)
	return stats
}
