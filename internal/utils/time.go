package util

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// EpochSeconds is a timestamp clients send as fractional Unix seconds,
// e.g. the value of Date.now()/1000.
type EpochSeconds struct {
	time.Time
}

func FromFloat(seconds float64) EpochSeconds {
	whole, frac := math.Modf(seconds)
	return EpochSeconds{Time: time.Unix(int64(whole), int64(frac*1e9))}
}

func (e *EpochSeconds) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid epoch seconds %q: %w", s, err)
	}
	if f <= 0 || math.IsInf(f, 0) || math.IsNaN(f) {
		return fmt.Errorf("invalid epoch seconds %q", s)
	}
	*e = FromFloat(f)
	return nil
}

func (e EpochSeconds) MarshalJSON() ([]byte, error) {
	if e.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(strconv.FormatFloat(e.Seconds(), 'f', 3, 64)), nil
}

// Seconds returns the timestamp as fractional Unix seconds.
func (e EpochSeconds) Seconds() float64 {
	return float64(e.UnixNano()) / 1e9
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
