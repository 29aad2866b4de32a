package model_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"subtran/internal/model"
)

func newManager(t *testing.T, dir, url string, opts ...model.Option) *model.Manager {
	t.Helper()
	opts = append(opts,
		model.WithProgress(false),
		model.WithStatfs(func(string) (uint64, error) { return 10 << 30, nil }),
	)
	return model.NewManager(dir, url, 1, 0, opts...)
}

func TestEnsureDownloadsAndInstalls(t *testing.T) {
	payload := []byte("model-bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	dir := t.TempDir()
	mgr := newManager(t, dir, server.URL+"/translate-en_hu-1_9.argosmodel")

	installed, err := mgr.Installed()
	if err != nil || installed {
		t.Fatalf("expected not installed, got %v err=%v", installed, err)
	}

	if err := mgr.Ensure(context.Background()); err != nil {
		t.Fatalf("Ensure: %v", err)
	}

	installed, err = mgr.Installed()
	if err != nil || !installed {
		t.Fatalf("expected installed, got %v err=%v", installed, err)
	}

	path, err := mgr.Path()
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if filepath.Base(path) != "translate-en_hu-1_9.argosmodel" {
		t.Fatalf("unexpected model file name: %q", path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read model: %v", err)
	}
	if string(content) != string(payload) {
		t.Fatalf("model content mismatch: %q", content)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) == ".tmp" {
			t.Fatalf("temp file left behind: %s", entry.Name())
		}
	}
}

func TestEnsureSkipsWhenInstalled(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte("bytes"))
	}))
	defer server.Close()

	mgr := newManager(t, t.TempDir(), server.URL+"/pack.argosmodel")
	if err := mgr.Ensure(context.Background()); err != nil {
		t.Fatalf("first Ensure: %v", err)
	}
	if err := mgr.Ensure(context.Background()); err != nil {
		t.Fatalf("second Ensure: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single download, got %d", calls.Load())
	}
}

func TestEnsureRejectsLowDiskSpace(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected download with low disk space")
	}))
	defer server.Close()

	mgr := model.NewManager(t.TempDir(), server.URL+"/pack.argosmodel", 1, 0,
		model.WithProgress(false),
		model.WithStatfs(func(string) (uint64, error) { return 100, nil }),
	)
	err := mgr.Ensure(context.Background())
	if !errors.Is(err, model.ErrInsufficientSpace) {
		t.Fatalf("expected ErrInsufficientSpace, got %v", err)
	}
}

func TestEnsureFailsOnHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	dir := t.TempDir()
	mgr := newManager(t, dir, server.URL+"/pack.argosmodel")
	if err := mgr.Ensure(context.Background()); err == nil {
		t.Fatal("expected error for 404 download")
	}
	if installed, _ := mgr.Installed(); installed {
		t.Fatal("model must not be marked installed after failed download")
	}
}

func TestPathWithoutURL(t *testing.T) {
	mgr := model.NewManager(t.TempDir(), "", 0, 0, model.WithProgress(false))
	if _, err := mgr.Path(); err == nil {
		t.Fatal("expected error for missing download url")
	}
}
