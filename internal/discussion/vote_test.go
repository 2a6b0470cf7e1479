package discussion_test

import (
	"testing"

	"github.com/crackit360/crackit360-api/internal/discussion"
)

func TestTransition(t *testing.T) {
	up, down := discussion.Upvote, discussion.Downvote

	cases := []struct {
		name      string
		current   *discussion.VoteType
		requested discussion.VoteType
		want      discussion.VoteChange
	}{
		{"none then up", nil, up, discussion.VoteChange{Next: discussion.Upvoted, DeltaUp: 1}},
		{"none then down", nil, down, discussion.VoteChange{Next: discussion.Downvoted, DeltaDown: 1}},
		{"up then up removes", &up, up, discussion.VoteChange{Next: discussion.NoVote, DeltaUp: -1}},
		{"up then down switches", &up, down, discussion.VoteChange{Next: discussion.Downvoted, DeltaUp: -1, DeltaDown: 1}},
		{"down then down removes", &down, down, discussion.VoteChange{Next: discussion.NoVote, DeltaDown: -1}},
		{"down then up switches", &down, up, discussion.VoteChange{Next: discussion.Upvoted, DeltaUp: 1, DeltaDown: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := discussion.Transition(tc.current, tc.requested); got != tc.want {
				t.Errorf("Transition() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range discussion.AllStatuses {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if discussion.Status("ARCHIVED").IsValid() {
		t.Errorf("ARCHIVED should be invalid")
	}
	if discussion.VoteType("SIDEVOTE").IsValid() {
		t.Errorf("SIDEVOTE should be invalid")
	}
}
