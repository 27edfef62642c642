package dashscope

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fhuszti/imgbatch/internal/config"
	"github.com/fhuszti/imgbatch/internal/model"
	"github.com/fhuszti/imgbatch/internal/port"
)

func newTestProvider(url string) *Provider {
	return New(config.DashScopeSettings{
		APIKey:       "sk-test",
		BaseURL:      url,
		Timeout:      5 * time.Second,
		PollInterval: time.Millisecond,
		T2I:          config.GenerationParams{Model: "wan2.2-t2i-flash", Size: "1024*1024"},
		Edit:         config.GenerationParams{Model: "wanx2.1-imageedit", Function: "description_edit"},
	})
}

func TestGenerate_SubmitAndPoll(t *testing.T) {
	var polls atomic.Int32
	var submitted synthesisRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("missing bearer token")
		}
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/services/aigc/text2image/image-synthesis":
			if r.Header.Get("X-DashScope-Async") != "enable" {
				t.Errorf("submit must be async")
			}
			if err := json.NewDecoder(r.Body).Decode(&submitted); err != nil {
				t.Errorf("decode body: %v", err)
			}
			_, _ = w.Write([]byte(`{"output":{"task_id":"t-1","task_status":"PENDING"}}`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/tasks/t-1":
			if polls.Add(1) < 3 {
				_, _ = w.Write([]byte(`{"output":{"task_id":"t-1","task_status":"RUNNING"}}`))
				return
			}
			_, _ = w.Write([]byte(`{"output":{"task_id":"t-1","task_status":"SUCCEEDED","results":[{"url":"https://oss.example/1.png"}]}}`))
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	out, err := newTestProvider(srv.URL).Generate(context.Background(), port.GenerateInput{Kind: model.TaskTypeT2I, Prompt: "A red fox"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(out.URLs) != 1 || out.URLs[0] != "https://oss.example/1.png" {
		t.Errorf("URLs = %v", out.URLs)
	}
	if polls.Load() != 3 {
		t.Errorf("polled %d times, want 3", polls.Load())
	}
	if submitted.Model != "wan2.2-t2i-flash" || submitted.Input.Prompt != "A red fox" || submitted.Parameters.N != 1 || submitted.Parameters.Size != "1024*1024" {
		t.Errorf("unexpected request %+v", submitted)
	}
}

func TestGenerate_EditUsesImage2Image(t *testing.T) {
	var submitted synthesisRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if r.URL.Path != "/api/v1/services/aigc/image2image/image-synthesis" {
				t.Errorf("unexpected submit path %s", r.URL.Path)
			}
			_ = json.NewDecoder(r.Body).Decode(&submitted)
			_, _ = w.Write([]byte(`{"output":{"task_id":"t-2"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"output":{"task_status":"SUCCEEDED","results":[{"url":"https://oss.example/2.jpg"}]}}`))
	}))
	defer srv.Close()

	src := &port.SourceImage{DataURI: "data:image/jpeg;base64,AAAA"}
	if _, err := newTestProvider(srv.URL).Generate(context.Background(), port.GenerateInput{Kind: model.TaskTypeTIE, Prompt: "watercolor", Source: src}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if submitted.Model != "wanx2.1-imageedit" || submitted.Input.Function != "description_edit" || submitted.Input.BaseImageURL != src.DataURI {
		t.Errorf("unexpected request %+v", submitted)
	}
}

func TestGenerate_TaskFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			_, _ = w.Write([]byte(`{"output":{"task_id":"t-3"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"output":{"task_status":"FAILED","code":"DataInspectionFailed","message":"unsafe content"}}`))
	}))
	defer srv.Close()

	_, err := newTestProvider(srv.URL).Generate(context.Background(), port.GenerateInput{Kind: model.TaskTypeT2I, Prompt: "x"})
	if err == nil || !strings.Contains(err.Error(), "DataInspectionFailed") {
		t.Fatalf("expected failed task error, got %v", err)
	}
}

func TestGenerate_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"InvalidApiKey","message":"Invalid API-key provided."}`))
	}))
	defer srv.Close()

	_, err := newTestProvider(srv.URL).Generate(context.Background(), port.GenerateInput{Kind: model.TaskTypeT2I, Prompt: "x"})
	if err == nil || !strings.Contains(err.Error(), "Invalid API-key") {
		t.Fatalf("expected api error, got %v", err)
	}
}

func TestGenerate_EditWithoutSource(t *testing.T) {
	p := newTestProvider("http://127.0.0.1:0")
	if _, err := p.Generate(context.Background(), port.GenerateInput{Kind: model.TaskTypeTIE, Prompt: "x"}); err == nil {
		t.Fatal("expected error for edit task without source")
	}
}

func TestGenerate_ContextCancelledWhilePolling(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			_, _ = w.Write([]byte(`{"output":{"task_id":"t-4"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"output":{"task_status":"RUNNING"}}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := newTestProvider(srv.URL).Generate(ctx, port.GenerateInput{Kind: model.TaskTypeT2I, Prompt: "x"}); err == nil {
		t.Fatal("expected error after context deadline")
	}
}

func TestGenerate_TaskTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			_, _ = w.Write([]byte(`{"output":{"task_id":"t-5"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"output":{"task_status":"RUNNING"}}`))
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	p.limit = 30 * time.Millisecond

	start := time.Now()
	_, err := p.Generate(context.Background(), port.GenerateInput{Kind: model.TaskTypeT2I, Prompt: "x"})
	if err == nil {
		t.Fatal("expected error once the task timeout elapses")
	}
	if !strings.Contains(err.Error(), "t-5 still running") {
		t.Errorf("unexpected error: %v", err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("task timeout must not look like a cancelled run: %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Errorf("Generate took %v, expected it to stop near the task timeout", time.Since(start))
	}
}
