package technical

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/crackit360/crackit360-api/internal/apperr"
	"github.com/crackit360/crackit360-api/internal/config"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	StatusAccepted = "Accepted"
	StatusFailed   = "Failed"

	// caseParallelism bounds concurrent judge calls per submission.
	caseParallelism = 4
)

type Service interface {
	Questions(ctx context.Context) (*QuestionsResponse, error)
	Run(ctx context.Context, req RunRequest) (*RunResult, error)
	Submit(ctx context.Context, userID uuid.UUID, dto SubmitDTO) (*Submission, error)
}

type service struct {
	repo  Repository
	judge Judge
	now   func() time.Time
}

func NewService(repo Repository, judge Judge) Service {
	return &service{repo: repo, judge: judge, now: time.Now}
}

func (s *service) Questions(ctx context.Context) (*QuestionsResponse, error) {
	qs, err := s.repo.ListQuestions(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if qs == nil {
		qs = []Question{}
	}
	return &QuestionsResponse{Questions: qs}, nil
}

func (s *service) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	if strings.TrimSpace(req.Code) == "" {
		return nil, apperr.Validation("code is required")
	}
	res, err := s.judge.Run(ctx, req)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Judge run failed")
		return nil, apperr.Upstream("code execution service unavailable", err)
	}
	return res, nil
}

func (s *service) Submit(ctx context.Context, userID uuid.UUID, dto SubmitDTO) (*Submission, error) {
	log := config.WithContext(ctx)

	if strings.TrimSpace(dto.Code) == "" {
		return nil, apperr.Validation("code is required")
	}
	questionID, err := uuid.Parse(strings.TrimSpace(dto.QuestionID))
	if err != nil {
		return nil, apperr.Validation("invalid question_id")
	}

	q, err := s.repo.FindQuestion(ctx, questionID)
	if errors.Is(err, ErrQuestionNotFound) {
		return nil, apperr.NotFound("Question not found")
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if len(q.TestCases) == 0 {
		return nil, apperr.Validation("question has no test cases")
	}

	results := make([]CaseResult, len(q.TestCases))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(caseParallelism)
	for i, tc := range q.TestCases {
		g.Go(func() error {
			out, err := s.judge.Run(gctx, RunRequest{Language: dto.Language, Code: dto.Code, Stdin: tc.Input})
			if err != nil {
				return err
			}
			expected := strings.TrimSpace(tc.ExpectedOutput)
			results[i] = CaseResult{
				Input:    tc.Input,
				Expected: expected,
				Actual:   out.Stdout,
				Status:   out.Status,
				Passed:   out.Stdout == expected,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.WithError(err).Error("Judge run failed during submission")
		return nil, apperr.Upstream("code execution service unavailable", err)
	}

	passed := 0
	for _, r := range results {
		if r.Passed {
			passed++
		}
	}
	status := StatusFailed
	if passed == len(results) {
		status = StatusAccepted
	}

	sub := &Submission{
		UserID:      userID,
		QuestionID:  q.ID,
		Language:    dto.Language,
		Passed:      passed,
		Total:       len(results),
		Status:      status,
		Results:     results,
		SubmittedAt: s.now().UTC(),
	}
	if err := s.repo.CreateSubmission(ctx, sub); err != nil {
		return nil, apperr.Internal(err)
	}

	log.WithFields(logrus.Fields{
		"question_id": q.ID,
		"passed":      passed,
		"total":       len(results),
	}).Info("Technical submission graded")
	return sub, nil
}
