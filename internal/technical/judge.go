package technical

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/crackit360/crackit360-api/internal/config"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	cpuTimeLimit = 3
	memoryLimit  = 512000
	defaultLang  = 71
)

var languageIDs = map[string]int{
	"Python": 71,
	"C":      50,
	"C++":    54,
	"Java":   62,
}

// LanguageID maps a display name to its Judge0 id. Unknown names run as Python.
func LanguageID(language string) int {
	if id, ok := languageIDs[language]; ok {
		return id
	}
	return defaultLang
}

type RunRequest struct {
	Language string `json:"language"`
	Code     string `json:"code"`
	Stdin    string `json:"stdin"`
}

type RunResult struct {
	Stdout        string  `json:"stdout"`
	Stderr        string  `json:"stderr"`
	CompileOutput string  `json:"compile_output"`
	Time          float64 `json:"time"`
	Memory        float64 `json:"memory"`
	Status        string  `json:"status"`
}

type Judge interface {
	Run(ctx context.Context, req RunRequest) (*RunResult, error)
}

type judgeClient struct {
	cfg  config.JudgeSettings
	http *http.Client
}

func NewJudge(cfg config.JudgeSettings) Judge {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &judgeClient{
		cfg: cfg,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type submissionRequest struct {
	LanguageID   int    `json:"language_id"`
	SourceCode   string `json:"source_code"`
	Stdin        string `json:"stdin"`
	CPUTimeLimit int    `json:"cpu_time_limit"`
	MemoryLimit  int    `json:"memory_limit"`
}

// Judge0 reports time as a quoted decimal and memory as a number; either
// may be null.
type submissionResponse struct {
	Stdout        *string         `json:"stdout"`
	Stderr        *string         `json:"stderr"`
	CompileOutput *string         `json:"compile_output"`
	Time          json.RawMessage `json:"time"`
	Memory        json.RawMessage `json:"memory"`
	Status        struct {
		Description string `json:"description"`
	} `json:"status"`
}

func (c *judgeClient) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	body, err := json.Marshal(submissionRequest{
		LanguageID:   LanguageID(req.Language),
		SourceCode:   req.Code,
		Stdin:        req.Stdin,
		CPUTimeLimit: cpuTimeLimit,
		MemoryLimit:  memoryLimit,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build judge request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-rapidapi-host", c.cfg.Host)
	httpReq.Header.Set("x-rapidapi-key", c.cfg.APIKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("judge request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read judge response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("judge returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out submissionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode judge response: %w", err)
	}

	return &RunResult{
		Stdout:        trimmed(out.Stdout),
		Stderr:        trimmed(out.Stderr),
		CompileOutput: trimmed(out.CompileOutput),
		Time:          number(out.Time),
		Memory:        number(out.Memory),
		Status:        out.Status.Description,
	}, nil
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func number(raw json.RawMessage) float64 {
	s := strings.Trim(string(raw), `"`)
	if s == "" || s == "null" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
