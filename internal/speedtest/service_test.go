package speedtest_test

import (
	"context"
	"testing"
	"time"

	"github.com/crackit360/crackit360-api/internal/apperr"
	"github.com/crackit360/crackit360-api/internal/speedtest"
	"github.com/crackit360/crackit360-api/internal/testutil"
	"github.com/google/uuid"
)

func newRepo(t *testing.T) speedtest.Repository {
	t.Helper()
	db := testutil.NewDB(t, &speedtest.QuantitativeQuestion{}, &speedtest.Session{}, &speedtest.Submission{})
	return speedtest.NewRepository(db)
}

func seed(t *testing.T, repo speedtest.Repository, topic string, level speedtest.Level, n int, base time.Time) []speedtest.QuantitativeQuestion {
	t.Helper()
	qs := make([]speedtest.QuantitativeQuestion, n)
	for i := range qs {
		qs[i] = speedtest.QuantitativeQuestion{
			Topic:         topic,
			Level:         level,
			Question:      "What is 1+1?",
			Options:       []string{"1", "2", "3"},
			CorrectAnswer: "2",
			CreatedAt:     base.Add(time.Duration(i) * time.Second),
		}
	}
	if err := repo.CreateQuestions(context.Background(), qs); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return qs
}

func intp(v int) *int { return &v }

func TestTimeLimit(t *testing.T) {
	svc := speedtest.NewService(newRepo(t))

	res, err := svc.TimeLimit("medium", 0)
	if err != nil || res.TimeLimit != 900 {
		t.Fatalf("medium default = %+v, %v", res, err)
	}
	res, err = svc.TimeLimit("hard", 10)
	if err != nil || res.TimeLimit != 900 {
		t.Fatalf("hard x10 = %+v, %v", res, err)
	}
	if _, err := svc.TimeLimit("nope", 5); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("invalid level err = %v", err)
	}
}

func TestGradesAgainstIssuedSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	svc := speedtest.NewService(repo)
	userID := uuid.New()

	base := time.Now().Add(-time.Hour)
	issued := seed(t, repo, "Percentages", speedtest.LevelEasy, 3, base)

	res, err := svc.Questions(ctx, userID, "Percentages", "EASY", 0)
	if err != nil {
		t.Fatalf("Questions: %v", err)
	}
	if len(res.Questions) != 3 || res.TimeLimit != 3*45 {
		t.Fatalf("issued %d questions, limit %d", len(res.Questions), res.TimeLimit)
	}

	// The bank changes after issue: an older question appears, one issued
	// question is removed.
	seed(t, repo, "Percentages", speedtest.LevelEasy, 2, base.Add(-time.Hour))
	if err := repo.DeleteQuestion(ctx, issued[2].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	out, err := svc.Submit(ctx, userID, speedtest.SubmitDTO{
		SessionID: res.SessionID.String(),
		Answers:   []*int{intp(1), intp(0), intp(1)},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if out.Total != 3 || out.Score != 1 {
		t.Fatalf("score = %d/%d, want 1/3", out.Score, out.Total)
	}
	for i, d := range out.Details {
		if d.QuestionID != res.Questions[i].ID.String() {
			t.Fatalf("detail %d graded %s, issued %s", i, d.QuestionID, res.Questions[i].ID)
		}
	}
	if out.Details[2].IsCorrect {
		t.Fatal("deleted question graded as correct")
	}

	subs, err := svc.Submissions(ctx, userID)
	if err != nil || len(subs.Submissions) != 1 {
		t.Fatalf("submissions = %+v, %v", subs, err)
	}
	if got := subs.Submissions[0]; got.Score != 1 || len(got.Results) != 3 || got.Topic != "Percentages" {
		t.Fatalf("stored submission = %+v", got)
	}
}

func TestSubmitForeignOrUnknownSession(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	svc := speedtest.NewService(repo)
	seed(t, repo, "Ratios", speedtest.LevelHard, 1, time.Now())

	owner := uuid.New()
	res, err := svc.Questions(ctx, owner, "Ratios", "hard", 5)
	if err != nil {
		t.Fatalf("Questions: %v", err)
	}

	_, err = svc.Submit(ctx, uuid.New(), speedtest.SubmitDTO{SessionID: res.SessionID.String()})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("foreign session err = %v", err)
	}
	_, err = svc.Submit(ctx, owner, speedtest.SubmitDTO{SessionID: uuid.NewString()})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("unknown session err = %v", err)
	}
	_, err = svc.Submit(ctx, owner, speedtest.SubmitDTO{SessionID: "nope"})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("malformed session err = %v", err)
	}
}

func TestQuestionsValidation(t *testing.T) {
	ctx := context.Background()
	svc := speedtest.NewService(newRepo(t))

	tests := []struct {
		name, topic, level string
		kind               apperr.Kind
	}{
		{"missing topic", "", "easy", apperr.KindValidation},
		{"bad level", "Ratios", "extreme", apperr.KindValidation},
		{"empty bank", "Ratios", "easy", apperr.KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Questions(ctx, uuid.New(), tt.topic, tt.level, 15)
			if !apperr.Is(err, tt.kind) {
				t.Fatalf("err = %v, want kind %v", err, tt.kind)
			}
		})
	}
}
