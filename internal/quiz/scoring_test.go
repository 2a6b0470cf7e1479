package quiz

import (
	"testing"
	"time"
)

func TestBonusForPercent(t *testing.T) {
	tests := []struct {
		pct  float64
		want int
	}{
		{100, 5}, {80, 5}, {79.99, 4},
		{75, 4}, {60, 4}, {59.99, 3},
		{50, 3}, {40, 3}, {39.99, 2},
		{25, 2}, {20, 2}, {19.99, 1},
		{0, 1}, {-40, 1},
	}
	for _, tt := range tests {
		if got := BonusForPercent(tt.pct); got != tt.want {
			t.Errorf("BonusForPercent(%v) = %d, want %d", tt.pct, got, tt.want)
		}
	}
}

func TestTimeBonus(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		want    int
	}{
		{-5 * time.Second, 5},
		{0, 5},
		{60 * time.Second, 5},
		{61 * time.Second, 4},
		{120 * time.Second, 4},
		{180 * time.Second, 3},
		{240 * time.Second, 2},
		{241 * time.Second, 1},
		{time.Hour, 1},
	}
	for _, tt := range tests {
		if got := TimeBonus(tt.elapsed); got != tt.want {
			t.Errorf("TimeBonus(%v) = %d, want %d", tt.elapsed, got, tt.want)
		}
	}
}

func TestCountCorrectAndAccuracy(t *testing.T) {
	zero, one, two := 0, 1, 2
	answers := []Answer{
		{QuestionID: "a", Selected: &one},
		{QuestionID: "b", Selected: &zero},
		{QuestionID: "c", Selected: nil},
		{QuestionID: "missing", Selected: &two},
	}
	correct := map[string]int{"a": 1, "b": 2, "c": 0}

	n := CountCorrect(answers, correct)
	if n != 1 {
		t.Fatalf("CountCorrect = %d, want 1", n)
	}
	if got := Accuracy(n, len(answers)); got != 25 {
		t.Errorf("Accuracy = %v, want 25", got)
	}
	if got := Accuracy(0, 0); got != 0 {
		t.Errorf("Accuracy(0,0) = %v, want 0", got)
	}
}

func TestSummarize(t *testing.T) {
	records := []AttemptRecord{
		{Track: "DSA", QuizScore: 3, Accuracy: 60, TimeTaken: 10.111},
		{Track: "DSA", QuizScore: 4, Accuracy: 80, TimeTaken: 20.222},
		{Track: "General", QuizScore: 2, Accuracy: 40, TimeTaken: 30},
	}

	s := summarize(records)
	if s.TotalAttempts != 3 {
		t.Fatalf("TotalAttempts = %d", s.TotalAttempts)
	}
	if s.AverageScore != 3 || s.AverageAccuracy != 60 {
		t.Errorf("averages = %v/%v, want 3/60", s.AverageScore, s.AverageAccuracy)
	}
	if s.TotalTimeTaken != 60.33 {
		t.Errorf("TotalTimeTaken = %v, want 60.33", s.TotalTimeTaken)
	}

	dsa := s.TrackStats["DSA"]
	if dsa == nil || dsa.Attempts != 2 || dsa.BestScore != 4 || dsa.AverageScore != 3.5 || dsa.AverageAccuracy != 70 {
		t.Errorf("DSA stats = %+v", dsa)
	}

	empty := summarize(nil)
	if empty.TotalAttempts != 0 || empty.TrackStats == nil {
		t.Errorf("empty summary = %+v", empty)
	}
}
