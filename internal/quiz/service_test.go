package quiz_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/crackit360/crackit360-api/internal/apperr"
	"github.com/crackit360/crackit360-api/internal/quiz"
	"github.com/crackit360/crackit360-api/internal/testutil"
	util "github.com/crackit360/crackit360-api/internal/utils"
	"github.com/google/uuid"
)

func newRepo(t *testing.T, n int) (quiz.QuizRepository, []quiz.Question) {
	t.Helper()
	db := testutil.NewDB(t, &quiz.Question{}, &quiz.Attempt{}, &quiz.AttemptRecord{})
	repo := quiz.NewRepository(db)

	base := time.Now().Add(-time.Hour)
	questions := make([]quiz.Question, n)
	for i := range questions {
		questions[i] = quiz.Question{
			Question:      "Q" + string(rune('A'+i)),
			Options:       []string{"w", "x", "y", "z"},
			CorrectAnswer: i % 4,
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		}
	}
	if err := repo.CreateQuestions(context.Background(), questions); err != nil {
		t.Fatalf("seed questions: %v", err)
	}
	return repo, questions
}

func TestQuestionsNeverRepeat(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t, 7)
	svc := quiz.NewService(repo, quiz.WithRand(rand.New(rand.NewPCG(1, 2))))
	userID := uuid.New()

	seen := map[uuid.UUID]bool{}
	for _, want := range []int{5, 2} {
		res, err := svc.Questions(ctx, userID, "", 5)
		if err != nil {
			t.Fatalf("Questions: %v", err)
		}
		if len(res.Questions) != want {
			t.Fatalf("served %d questions, want %d", len(res.Questions), want)
		}
		for _, q := range res.Questions {
			if seen[q.ID] {
				t.Fatalf("question %s served twice", q.ID)
			}
			seen[q.ID] = true
		}
	}

	if _, err := svc.Questions(ctx, userID, "", 5); !errors.Is(err, quiz.ErrNoNewQuestions) {
		t.Fatalf("exhausted bank err = %v, want ErrNoNewQuestions", err)
	}

	// Other users have their own history.
	res, err := svc.Questions(ctx, uuid.New(), "", 5)
	if err != nil || len(res.Questions) != 5 {
		t.Fatalf("fresh user: %v, %d questions", err, len(res.Questions))
	}
}

func TestQuestionsSequentialMode(t *testing.T) {
	ctx := context.Background()
	repo, questions := newRepo(t, 4)
	svc := quiz.NewService(repo)

	res, err := svc.Questions(ctx, uuid.New(), "sequential", 3)
	if err != nil {
		t.Fatalf("Questions: %v", err)
	}
	for i, q := range res.Questions {
		if q.ID != questions[i].ID {
			t.Fatalf("position %d = %s, want %s", i, q.ID, questions[i].ID)
		}
	}
}

func TestSubmitScoresAndRecords(t *testing.T) {
	ctx := context.Background()
	repo, questions := newRepo(t, 3)

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := quiz.NewService(repo, quiz.WithClock(func() time.Time { return now }))
	userID := uuid.New()

	start := util.FromFloat(float64(now.Add(-90*time.Second).Unix()) + 0.5)
	right0, right1, wrong := questions[0].CorrectAnswer, questions[1].CorrectAnswer, questions[2].CorrectAnswer+1
	dto := quiz.SubmitDTO{
		StudentID: userID.String(),
		StartTime: &start,
		Track:     "Aptitude",
		Answers: []quiz.Answer{
			{QuestionID: questions[0].ID.String(), Selected: &right0},
			{QuestionID: questions[1].ID.String(), Selected: &right1},
			{QuestionID: questions[2].ID.String(), Selected: &wrong},
			{QuestionID: questions[2].ID.String(), Selected: nil},
		},
	}

	res, err := svc.Submit(ctx, userID, dto)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.QuizScore != 2 || res.BonusScore != 4 || res.TotalScore != 6 {
		t.Fatalf("scores = %+v", res)
	}
	if res.Accuracy != 50 || res.TimeTaken != 89.5 {
		t.Fatalf("accuracy/time = %v/%v", res.Accuracy, res.TimeTaken)
	}

	attempt, err := repo.GetAttempt(ctx, userID)
	if err != nil || attempt == nil {
		t.Fatalf("GetAttempt: %v, %v", attempt, err)
	}
	if attempt.TotalScore != 6 || attempt.Date == nil {
		t.Fatalf("latest attempt = %+v", attempt)
	}

	results, err := svc.Results(ctx, userID)
	if err != nil {
		t.Fatalf("Results: %v", err)
	}
	if len(results.Results) != 1 || results.Results[0].Track != "Aptitude" {
		t.Fatalf("results = %+v", results.Results)
	}
}

func TestSubmitGradesMalformedIDsWrong(t *testing.T) {
	ctx := context.Background()
	repo, questions := newRepo(t, 1)
	svc := quiz.NewService(repo)
	userID := uuid.New()

	start := util.FromFloat(float64(time.Now().Unix() - 10))
	sel := questions[0].CorrectAnswer
	res, err := svc.Submit(ctx, userID, quiz.SubmitDTO{
		StudentID: userID.String(),
		StartTime: &start,
		Answers: []quiz.Answer{
			{QuestionID: questions[0].ID.String(), Selected: &sel},
			{QuestionID: "not-a-uuid", Selected: &sel},
		},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.QuizScore != 1 || res.Accuracy != 50 {
		t.Fatalf("score/accuracy = %d/%v, want 1/50", res.QuizScore, res.Accuracy)
	}

	got, err := repo.CorrectAnswers(ctx, []string{"not-a-uuid", "42"})
	if err != nil || len(got) != 0 {
		t.Fatalf("CorrectAnswers(malformed) = %v, %v", got, err)
	}
}

func TestSubmitKeepsAttemptedIDs(t *testing.T) {
	ctx := context.Background()
	repo, questions := newRepo(t, 2)
	svc := quiz.NewService(repo)
	userID := uuid.New()

	if _, err := svc.Questions(ctx, userID, "", 2); err != nil {
		t.Fatalf("Questions: %v", err)
	}

	start := util.FromFloat(float64(time.Now().Unix() - 10))
	sel := questions[0].CorrectAnswer
	_, err := svc.Submit(ctx, userID, quiz.SubmitDTO{
		StudentID: userID.String(),
		StartTime: &start,
		Answers:   []quiz.Answer{{QuestionID: questions[0].ID.String(), Selected: &sel}},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	attempt, _ := repo.GetAttempt(ctx, userID)
	if len(attempt.AttemptedIDs) != 2 {
		t.Fatalf("attempted ids = %v, want 2", attempt.AttemptedIDs)
	}
}

func TestSubmitFutureStartClampsToZero(t *testing.T) {
	repo, questions := newRepo(t, 1)
	now := time.Now()
	svc := quiz.NewService(repo, quiz.WithClock(func() time.Time { return now }))
	userID := uuid.New()

	start := util.FromFloat(float64(now.Add(time.Minute).Unix()))
	sel := questions[0].CorrectAnswer
	res, err := svc.Submit(context.Background(), userID, quiz.SubmitDTO{
		StudentID: userID.String(),
		StartTime: &start,
		Answers:   []quiz.Answer{{QuestionID: questions[0].ID.String(), Selected: &sel}},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.TimeTaken != 0 || res.BonusScore != 5 {
		t.Fatalf("future start: time=%v bonus=%d", res.TimeTaken, res.BonusScore)
	}
}

func TestSubmitMissingFields(t *testing.T) {
	repo, _ := newRepo(t, 1)
	svc := quiz.NewService(repo)
	userID := uuid.New()
	start := util.FromFloat(1_700_000_000)

	cases := map[string]quiz.SubmitDTO{
		"no student": {Answers: []quiz.Answer{{QuestionID: "x"}}, StartTime: &start},
		"no answers": {StudentID: userID.String(), StartTime: &start},
		"no start":   {StudentID: userID.String(), Answers: []quiz.Answer{{QuestionID: "x"}}},
	}
	for name, dto := range cases {
		_, err := svc.Submit(context.Background(), userID, dto)
		if !apperr.Is(err, apperr.KindValidation) || apperr.Message(err) != "Missing data fields" {
			t.Errorf("%s: err = %v", name, err)
		}
	}
}

func TestStatsEmpty(t *testing.T) {
	repo, _ := newRepo(t, 0)
	svc := quiz.NewService(repo)

	stats, err := svc.Stats(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalAttempts != 0 || len(stats.TrackStats) != 0 {
		t.Fatalf("stats = %+v", stats)
	}
}
