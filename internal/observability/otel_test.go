package observability

import (
	"context"
	"testing"

	"github.com/crackit360/crackit360-api/internal/config"
)

func TestClampRatio(t *testing.T) {
	tests := map[float64]float64{-1: 0, 0: 0, 0.25: 0.25, 1: 1, 4: 1}
	for in, want := range tests {
		if got := clampRatio(in); got != want {
			t.Errorf("clampRatio(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestInitDisabled(t *testing.T) {
	shutdown := Init(context.Background(), config.Settings{})
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("noop shutdown: %v", err)
	}
}

func TestInitStdout(t *testing.T) {
	s := config.Settings{Env: "test", OTel: config.OTelSettings{Enabled: true, SampleRatio: 1}}
	shutdown := Init(context.Background(), s)
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
