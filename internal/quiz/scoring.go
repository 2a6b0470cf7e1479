package quiz

import "time"

// bonusWindow is the time over which the speed bonus decays to its floor.
const bonusWindow = 300 * time.Second

// TimeBonus maps how fast a quiz was finished to a 1..5 bonus. Negative
// elapsed times count as zero.
func TimeBonus(elapsed time.Duration) int {
	if elapsed < 0 {
		elapsed = 0
	}
	return BonusForPercent(100 - elapsed.Seconds()*100/bonusWindow.Seconds())
}

// BonusForPercent maps the remaining share of the bonus window, clamped at
// zero, to a tier.
func BonusForPercent(pct float64) int {
	if pct < 0 {
		pct = 0
	}
	switch {
	case pct >= 80:
		return 5
	case pct >= 60:
		return 4
	case pct >= 40:
		return 3
	case pct >= 20:
		return 2
	default:
		return 1
	}
}

// CountCorrect counts answers whose selection equals the stored index.
// Unknown questions and unanswered entries never count.
func CountCorrect(answers []Answer, correct map[string]int) int {
	n := 0
	for _, a := range answers {
		want, ok := correct[a.QuestionID]
		if ok && a.Selected != nil && *a.Selected == want {
			n++
		}
	}
	return n
}

func Accuracy(correct, answered int) float64 {
	if answered == 0 {
		return 0
	}
	return float64(correct) / float64(answered) * 100
}
