package technical

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/crackit360/crackit360-api/internal/config"
)

func TestJudgeRun(t *testing.T) {
	var got submissionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-rapidapi-key") != "key" || r.Header.Get("x-rapidapi-host") != "judge.test" {
			t.Errorf("missing rapidapi headers: %v", r.Header)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Write([]byte(`{"stdout":"42\n","stderr":null,"compile_output":null,"time":"0.015","memory":3120,"status":{"id":3,"description":"Accepted"}}`))
	}))
	defer srv.Close()

	j := NewJudge(config.JudgeSettings{URL: srv.URL, APIKey: "key", Host: "judge.test"})
	res, err := j.Run(context.Background(), RunRequest{Language: "C++", Code: "int main(){}", Stdin: "6 7"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got.LanguageID != 54 || got.CPUTimeLimit != 3 || got.MemoryLimit != 512000 || got.Stdin != "6 7" {
		t.Errorf("request = %+v", got)
	}
	want := RunResult{Stdout: "42", Time: 0.015, Memory: 3120, Status: "Accepted"}
	if *res != want {
		t.Errorf("result = %+v, want %+v", *res, want)
	}
}

func TestJudgeErrors(t *testing.T) {
	t.Run("bad status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, err := NewJudge(config.JudgeSettings{URL: srv.URL}).Run(context.Background(), RunRequest{Code: "x"})
		if err == nil {
			t.Fatal("expected error for 429")
		}
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		j := NewJudge(config.JudgeSettings{URL: srv.URL, Timeout: 20 * time.Millisecond})
		if _, err := j.Run(context.Background(), RunRequest{Code: "x"}); err == nil {
			t.Fatal("expected timeout error")
		}
	})
}

func TestLanguageID(t *testing.T) {
	tests := map[string]int{"Python": 71, "C": 50, "C++": 54, "Java": 62, "Rust": 71, "": 71}
	for lang, want := range tests {
		if got := LanguageID(lang); got != want {
			t.Errorf("LanguageID(%q) = %d, want %d", lang, got, want)
		}
	}
}
