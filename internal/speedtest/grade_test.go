package speedtest

import (
	"testing"
	"time"
)

func intp(v int) *int { return &v }

func TestGrade(t *testing.T) {
	bank := map[string]QuantitativeQuestion{
		"q1": {Options: []string{"2", "4", "6"}, CorrectAnswer: "4"},
		"q2": {Options: []string{"a", "b"}, CorrectAnswer: "a"},
		"q3": {Options: []string{"x", "y"}, CorrectAnswer: "y"},
		"q4": {Options: []string{"m", "n"}, CorrectAnswer: "n"},
	}
	issued := []string{"q1", "q2", "q3", "q4", "gone"}

	tests := []struct {
		name    string
		answers []*int
		want    []bool
	}{
		{"all right", []*int{intp(1), intp(0), intp(1), intp(1), intp(0)}, []bool{true, true, true, true, false}},
		{"short answers", []*int{intp(1)}, []bool{true, false, false, false, false}},
		{"null and out of range", []*int{nil, intp(5), intp(-1), intp(0)}, []bool{false, false, false, false, false}},
		{"no answers", nil, []bool{false, false, false, false, false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Grade(issued, bank, tt.answers)
			if len(got) != len(issued) {
				t.Fatalf("len = %d, want %d", len(got), len(issued))
			}
			for i, r := range got {
				if r.QuestionID != issued[i] {
					t.Errorf("result %d id = %s", i, r.QuestionID)
				}
				if r.IsCorrect != tt.want[i] {
					t.Errorf("result %d correct = %v, want %v", i, r.IsCorrect, tt.want[i])
				}
			}
		})
	}
}

func TestLevels(t *testing.T) {
	tests := []struct {
		in   string
		ok   bool
		want time.Duration
	}{
		{"easy", true, 15 * 45 * time.Second},
		{"Medium", true, 15 * 60 * time.Second},
		{" HARD ", true, 15 * 90 * time.Second},
		{"brutal", false, 0},
	}
	for _, tt := range tests {
		l, ok := ParseLevel(tt.in)
		if ok != tt.ok {
			t.Fatalf("ParseLevel(%q) ok = %v", tt.in, ok)
		}
		if ok && l.TimeLimit(15) != tt.want {
			t.Errorf("%q TimeLimit(15) = %v, want %v", tt.in, l.TimeLimit(15), tt.want)
		}
	}
}
