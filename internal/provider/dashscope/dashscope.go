package dashscope

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fhuszti/imgbatch/internal/config"
	"github.com/fhuszti/imgbatch/internal/logger"
	"github.com/fhuszti/imgbatch/internal/port"
)

const Name = "dashscope"

const (
	statusSucceeded = "SUCCEEDED"
	statusFailed    = "FAILED"
	statusCanceled  = "CANCELED"
	statusUnknown   = "UNKNOWN"
)

type Provider struct {
	baseURL string
	apiKey  string
	http    *http.Client
	poll    time.Duration
	limit   time.Duration
	t2i     config.GenerationParams
	edit    config.GenerationParams
}

// compile-time check: *Provider must satisfy port.ImageProvider
var _ port.ImageProvider = (*Provider)(nil)

func New(cfg config.DashScopeSettings) *Provider {
	poll := cfg.PollInterval
	if poll <= 0 {
		poll = 2 * time.Second
	}
	return &Provider{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout},
		poll:    poll,
		limit:   cfg.TaskTimeout,
		t2i:     cfg.T2I,
		edit:    cfg.Edit,
	}
}

func (p *Provider) Name() string { return Name }

type synthesisInput struct {
	Prompt       string `json:"prompt"`
	Function     string `json:"function,omitempty"`
	BaseImageURL string `json:"base_image_url,omitempty"`
}

type synthesisParameters struct {
	N         int    `json:"n"`
	Size      string `json:"size,omitempty"`
	Seed      int64  `json:"seed,omitempty"`
	Watermark bool   `json:"watermark"`
}

type synthesisRequest struct {
	Model      string              `json:"model"`
	Input      synthesisInput      `json:"input"`
	Parameters synthesisParameters `json:"parameters"`
}

type taskOutput struct {
	TaskID     string `json:"task_id"`
	TaskStatus string `json:"task_status"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Results    []struct {
		URL     string `json:"url"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"results"`
}

type taskResponse struct {
	RequestID string     `json:"request_id"`
	Output    taskOutput `json:"output"`
	Code      string     `json:"code"`
	Message   string     `json:"message"`
}

// Generate submits an asynchronous synthesis task and polls it until it
// reaches a terminal status.
func (p *Provider) Generate(ctx context.Context, in port.GenerateInput) (port.GenerateOutput, error) {
	endpoint, body, err := p.buildRequest(in)
	if err != nil {
		return port.GenerateOutput{}, err
	}

	var submitted taskResponse
	if err := p.do(ctx, http.MethodPost, endpoint, body, true, &submitted); err != nil {
		return port.GenerateOutput{}, fmt.Errorf("dashscope: submit task: %w", err)
	}
	taskID := submitted.Output.TaskID
	if taskID == "" {
		return port.GenerateOutput{}, errors.New("dashscope: submit task: response has no task_id")
	}
	logger.Debugf(ctx, "dashscope task %s submitted", taskID)

	pollCtx := ctx
	if p.limit > 0 {
		var cancel context.CancelFunc
		pollCtx, cancel = context.WithTimeout(ctx, p.limit)
		defer cancel()
	}

	last := "PENDING"
	expired := func() error {
		return fmt.Errorf("dashscope: task %s still %s after %s", taskID, strings.ToLower(last), p.limit)
	}

	ticker := time.NewTicker(p.poll)
	defer ticker.Stop()
	for {
		select {
		case <-pollCtx.Done():
			if ctx.Err() != nil {
				return port.GenerateOutput{}, ctx.Err()
			}
			return port.GenerateOutput{}, expired()
		case <-ticker.C:
		}

		var status taskResponse
		if err := p.do(pollCtx, http.MethodGet, "/api/v1/tasks/"+taskID, nil, false, &status); err != nil {
			if ctx.Err() == nil && pollCtx.Err() != nil {
				return port.GenerateOutput{}, expired()
			}
			return port.GenerateOutput{}, fmt.Errorf("dashscope: poll task %s: %w", taskID, err)
		}
		if status.Output.TaskStatus != "" {
			last = status.Output.TaskStatus
		}

		switch status.Output.TaskStatus {
		case statusSucceeded:
			var out port.GenerateOutput
			for _, r := range status.Output.Results {
				if r.URL != "" {
					out.URLs = append(out.URLs, r.URL)
				}
			}
			return out, nil
		case statusFailed, statusCanceled, statusUnknown:
			return port.GenerateOutput{}, fmt.Errorf("dashscope: task %s %s: %s %s",
				taskID, strings.ToLower(status.Output.TaskStatus), status.Output.Code, status.Output.Message)
		}
	}
}

func (p *Provider) buildRequest(in port.GenerateInput) (string, []byte, error) {
	req := synthesisRequest{Input: synthesisInput{Prompt: in.Prompt}, Parameters: synthesisParameters{N: 1}}
	endpoint := "/api/v1/services/aigc/text2image/image-synthesis"

	params := p.t2i
	if in.Kind.NeedsSource() {
		params = p.edit
		if in.Source == nil || in.Source.DataURI == "" {
			return "", nil, errors.New("dashscope: edit task without source image")
		}
		endpoint = "/api/v1/services/aigc/image2image/image-synthesis"
		req.Input.Function = params.Function
		req.Input.BaseImageURL = in.Source.DataURI
	}
	req.Model = params.Model
	req.Parameters.Size = params.Size
	req.Parameters.Seed = params.Seed
	req.Parameters.Watermark = params.Watermark

	body, err := json.Marshal(req)
	if err != nil {
		return "", nil, fmt.Errorf("dashscope: encode request: %w", err)
	}
	return endpoint, body, nil
}

func (p *Provider) do(ctx context.Context, method, path string, body []byte, async bool, out *taskResponse) error {
	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if async {
		req.Header.Set("X-DashScope-Async", "enable")
	}

	resp, err := p.http.Do(req)
	if err != nil {
		return err
	}
	defer func(b io.ReadCloser) { _ = b.Close() }(resp.Body)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr taskResponse
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("api status %d: %s %s", resp.StatusCode, apiErr.Code, apiErr.Message)
		}
		return fmt.Errorf("api status %d", resp.StatusCode)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
