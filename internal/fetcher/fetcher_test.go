package fetcher

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetch_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	img, err := New(time.Second).Fetch(context.Background(), srv.URL+"/a.png")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	defer img.Body.Close()

	body, _ := io.ReadAll(img.Body)
	if string(body) != "png-bytes" {
		t.Errorf("body = %q", body)
	}
	if img.ContentType != "image/png" || img.SizeBytes != 9 {
		t.Errorf("got type=%q size=%d", img.ContentType, img.SizeBytes)
	}
}

func TestFetch_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	if _, err := New(time.Second).Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for 403")
	}
}

func TestFetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	if _, err := New(20*time.Millisecond).Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestFetch_BadURL(t *testing.T) {
	if _, err := New(time.Second).Fetch(context.Background(), "://nope"); err == nil {
		t.Fatal("expected error for malformed url")
	}
}
